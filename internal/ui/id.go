package ui

import (
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/lintelhq/lintel/internal/ids"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID returns an ID with its unique prefix highlighted.
func HighlightID(id string, prefixLen int) string {
	if id == "" {
		return id
	}

	if prefixLen <= 0 || prefixLen > len(id) {
		return id
	}

	if !ansiEnabled() {
		return id
	}

	prefix := id[:prefixLen]
	suffix := id[prefixLen:]
	return ansiBold + ansiCyan + prefix + ansiReset + suffix
}

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// UniqueIDPrefixLengths returns the shortest unique prefix length for each ID.
func UniqueIDPrefixLengths(values []string) map[string]int {
	return ids.UniquePrefixLengths(values)
}

// PrefixLength looks up the unique prefix length for an ID, tolerating
// mixed-case input. Returns 0 when unknown.
func PrefixLength(lengths map[string]int, id string) int {
	if len(lengths) == 0 || id == "" {
		return 0
	}
	return lengths[strings.ToLower(id)]
}
