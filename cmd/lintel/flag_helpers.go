package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const flagDateLayout = "2006-01-02"

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

func shouldUseEditor(hasFlags bool, editFlag bool, noEditFlag bool, interactive bool) bool {
	if editFlag {
		return true
	}
	if noEditFlag {
		return false
	}
	if hasFlags {
		return false
	}
	return interactive
}

// parseDateFlag parses a YYYY-MM-DD flag value.
func parseDateFlag(name, value string) (time.Time, error) {
	parsed, err := time.Parse(flagDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: use YYYY-MM-DD", name, value)
	}
	return parsed, nil
}

// parseMoneyFlag parses a dollar amount like "1234.56" or "1234" into
// cents. A leading "$" is tolerated.
func parseMoneyFlag(name, value string) (int64, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "$"))
	if trimmed == "" {
		return 0, fmt.Errorf("invalid %s amount %q", name, value)
	}

	negative := strings.HasPrefix(trimmed, "-")
	if negative {
		trimmed = trimmed[1:]
	}

	whole := trimmed
	fraction := ""
	if dot := strings.IndexByte(trimmed, '.'); dot >= 0 {
		whole, fraction = trimmed[:dot], trimmed[dot+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(fraction) > 2 {
		return 0, fmt.Errorf("invalid %s amount %q: at most two decimal places", name, value)
	}
	for len(fraction) < 2 {
		fraction += "0"
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s amount %q", name, value)
	}
	cents, err := strconv.ParseInt(fraction, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s amount %q", name, value)
	}

	total := dollars*100 + cents
	if negative {
		total = -total
	}
	return total, nil
}

// formatMoney renders cents as a dollar string.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func formatDateValue(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format(flagDateLayout)
}
