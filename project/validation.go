package project

import (
	"errors"
	"fmt"

	"github.com/lintelhq/lintel/internal/validation"
)

var (
	// ErrNotFound is returned when an entity with the given ID doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyTitle is returned when a title or name is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidSeverity is returned when an invalid severity or likelihood is provided.
	ErrInvalidSeverity = errors.New("invalid severity")

	// ErrInvalidProgress is returned when progress is outside 0-100.
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// ErrUnknownProject is returned when an entity references a project that doesn't exist.
	ErrUnknownProject = errors.New("unknown project")

	// ErrMissingEndDate is returned when a task has no due date.
	ErrMissingEndDate = errors.New("end date is required")

	// ErrMissingTargetDate is returned when a milestone has no target date.
	ErrMissingTargetDate = errors.New("target date is required")

	// ErrNegativeAmount is returned when a money amount is negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptyAuthor is returned when a message has no author.
	ErrEmptyAuthor = errors.New("author cannot be empty")

	// ErrEmptyBody is returned when a message has no body.
	ErrEmptyBody = errors.New("message body cannot be empty")

	// ErrEndBeforeStart is returned when a date range ends before it starts.
	ErrEndBeforeStart = errors.New("end date precedes start date")
)

func invalidStatusError(status Status) error {
	return validation.FormatInvalidValueError(ErrInvalidStatus, status, ValidStatuses())
}

func invalidSeverityError(severity Severity) error {
	return validation.FormatInvalidValueError(ErrInvalidSeverity, severity, ValidSeverities())
}

// ValidateTitle checks if a title or name is valid.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateProgress checks if a progress percent is valid.
func ValidateProgress(progress int) error {
	if progress < 0 || progress > MaxProgress {
		return fmt.Errorf("%w: got %d", ErrInvalidProgress, progress)
	}
	return nil
}

// ValidateAmount checks if a money amount is valid.
func ValidateAmount(cents int64) error {
	if cents < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeAmount, cents)
	}
	return nil
}

// ValidateTask checks if a task struct is valid.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if !t.Status.IsValid() {
		return invalidStatusError(t.Status)
	}
	if err := ValidateProgress(t.Progress); err != nil {
		return err
	}
	if t.End.IsZero() {
		return ErrMissingEndDate
	}
	if t.Start != nil && t.End.Before(*t.Start) {
		return fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, t.End.Format("2006-01-02"), t.Start.Format("2006-01-02"))
	}
	return nil
}

// ValidateProject checks if a project struct is valid.
func ValidateProject(p *Project) error {
	if err := ValidateTitle(p.Name); err != nil {
		return err
	}
	if !p.Status.IsValid() {
		return invalidStatusError(p.Status)
	}
	if err := ValidateAmount(p.BudgetCents); err != nil {
		return err
	}
	if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
		return fmt.Errorf("%w: %s < %s", ErrEndBeforeStart, p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
	}
	return nil
}

// ValidateRisk checks if a risk struct is valid.
func ValidateRisk(r *Risk) error {
	if err := ValidateTitle(r.Title); err != nil {
		return err
	}
	if !r.Severity.IsValid() {
		return invalidSeverityError(r.Severity)
	}
	if !r.Likelihood.IsValid() {
		return fmt.Errorf("likelihood: %w", invalidSeverityError(r.Likelihood))
	}
	return nil
}
