package project

import "time"

// Project represents a single construction project.
type Project struct {
	// ID is a unique identifier (8-char alphanumeric, derived from initial name + timestamp).
	ID string `json:"id" yaml:"id"`

	// Name is the short project name (max 500 chars).
	Name string `json:"name" yaml:"name"`

	// Client is the commissioning party.
	Client string `json:"client,omitempty" yaml:"client,omitempty"`

	// Location is the site address or area.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Status is the current state of the project.
	Status Status `json:"status" yaml:"status"`

	// BudgetCents is the approved budget in cents.
	BudgetCents int64 `json:"budget_cents" yaml:"budget_cents"`

	// Start is the planned start date.
	Start time.Time `json:"start_date" yaml:"start_date"`

	// End is the planned completion date.
	End time.Time `json:"end_date" yaml:"end_date"`

	// Description provides additional context about the project.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CreatedAt is when the project was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the project was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Task represents one unit of site work within a project.
type Task struct {
	// ID is a unique identifier.
	ID string `json:"id" yaml:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Title is the short summary of the task (max 500 chars).
	Title string `json:"title" yaml:"title"`

	// Trade is the discipline performing the work (excavation, framing, electrical, ...).
	Trade string `json:"trade,omitempty" yaml:"trade,omitempty"`

	// Assignee is the crew or person responsible.
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`

	// Start is the planned start date. Nil means the task has only a
	// due date; timeline callers substitute End.
	Start *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`

	// End is the due date. Always set.
	End time.Time `json:"end_date" yaml:"end_date"`

	// Progress is the completion percent (0-100).
	Progress int `json:"progress" yaml:"progress"`

	// Status is the current state of the task.
	Status Status `json:"status" yaml:"status"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`

	// CompletedAt is when the task entered Completed (nil otherwise).
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`

	// BlockedAt is when the task entered Blocked (nil otherwise).
	BlockedAt *time.Time `json:"blocked_at,omitempty" yaml:"blocked_at,omitempty"`
}

// EffectiveStart returns the task's start date, substituting the due
// date when no start is recorded.
func (t Task) EffectiveStart() time.Time {
	if t.Start != nil {
		return *t.Start
	}
	return t.End
}

// Overdue reports whether the task is past due and not completed.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return t.End.Before(now)
}
