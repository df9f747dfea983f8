// Package project implements the construction-program data layer: an
// in-memory store of projects, tasks, risks, expenses, milestones, and
// site messages.
//
// The store is the single source of truth for the dashboard. The HTTP
// service shares one store across requests; the CLI loads a store from
// a plan file, mutates it, and writes the plan back. Reads return
// copies, so callers never alias store-internal slices.
//
// The public API mirrors the CLI commands:
//   - CreateX, UpdateX, DeleteX for entity lifecycle
//   - GetX, ListX for querying
//   - GanttItems, Snapshot for the timeline engine and dashboard views
package project

import internalstrings "github.com/lintelhq/lintel/internal/strings"

// Status represents the state of a project or task.
type Status string

const (
	// StatusNotStarted indicates work has not begun.
	StatusNotStarted Status = "Not Started"

	// StatusInProgress indicates work is underway.
	StatusInProgress Status = "In Progress"

	// StatusCompleted indicates work is finished.
	StatusCompleted Status = "Completed"

	// StatusBlocked indicates work is stopped on an impediment.
	StatusBlocked Status = "Blocked"

	// StatusOnHold indicates work is intentionally paused.
	StatusOnHold Status = "On Hold"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusBlocked, StatusOnHold}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsTerminal returns true when the status ends active work on a task.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// ParseStatus normalizes user input into a Status, tolerating case,
// surrounding whitespace, and hyphen/underscore separators. Unknown
// values return ErrInvalidStatus.
func ParseStatus(value string) (Status, error) {
	key := normalizeEnumKey(value)
	for _, status := range ValidStatuses() {
		if key == normalizeEnumKey(string(status)) {
			return status, nil
		}
	}
	return "", invalidStatusError(Status(value))
}

// Severity grades a risk's impact or likelihood.
type Severity string

const (
	// SeverityLow is a minor impact or unlikely event.
	SeverityLow Severity = "low"

	// SeverityMedium is a moderate impact or plausible event.
	SeverityMedium Severity = "medium"

	// SeverityHigh is a major impact or likely event.
	SeverityHigh Severity = "high"
)

// ValidSeverities returns all valid severity values.
func ValidSeverities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh}
}

// IsValid returns true if the severity is a known valid value.
func (s Severity) IsValid() bool {
	for _, valid := range ValidSeverities() {
		if s == valid {
			return true
		}
	}
	return false
}

// SeverityRank returns the sort rank for a severity, highest first.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// ParseSeverity normalizes user input into a Severity.
func ParseSeverity(value string) (Severity, error) {
	severity := Severity(internalstrings.NormalizeLowerTrimSpace(value))
	if !severity.IsValid() {
		return "", invalidSeverityError(severity)
	}
	return severity, nil
}

// normalizeEnumKey folds case, separators, and interior whitespace so
// "in-progress", "IN PROGRESS", and "in_progress" all match.
func normalizeEnumKey(value string) string {
	value = internalstrings.NormalizeLowerTrimSpace(value)
	out := make([]byte, 0, len(value))
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case ' ', '-', '_':
			continue
		default:
			out = append(out, value[i])
		}
	}
	return string(out)
}

const (
	// MaxTitleLength is the maximum allowed length for entity titles and names.
	MaxTitleLength = 500

	// MaxProgress is the upper bound of task progress percent.
	MaxProgress = 100
)
