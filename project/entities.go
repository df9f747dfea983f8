package project

import "time"

// Risk represents a tracked project risk.
type Risk struct {
	// ID is a unique identifier.
	ID string `json:"id" yaml:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Title is the short summary of the risk (max 500 chars).
	Title string `json:"title" yaml:"title"`

	// Severity grades the impact if the risk materializes.
	Severity Severity `json:"severity" yaml:"severity"`

	// Likelihood grades how probable the risk is.
	Likelihood Severity `json:"likelihood" yaml:"likelihood"`

	// Mitigation describes the planned response.
	Mitigation string `json:"mitigation,omitempty" yaml:"mitigation,omitempty"`

	// Open is true while the risk is being tracked.
	Open bool `json:"open" yaml:"open"`

	// CreatedAt is when the risk was recorded.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the risk was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Expense represents a cost booked against a project.
type Expense struct {
	// ID is a unique identifier.
	ID string `json:"id" yaml:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Description says what the money was spent on.
	Description string `json:"description" yaml:"description"`

	// Category groups expenses (materials, labor, equipment, permits, ...).
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// AmountCents is the expense amount in cents.
	AmountCents int64 `json:"amount_cents" yaml:"amount_cents"`

	// IncurredOn is the date the cost was incurred.
	IncurredOn time.Time `json:"incurred_on" yaml:"incurred_on"`

	// Approved is true once the expense has been signed off.
	Approved bool `json:"approved" yaml:"approved"`

	// CreatedAt is when the expense was recorded.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Milestone represents a dated project milestone.
type Milestone struct {
	// ID is a unique identifier.
	ID string `json:"id" yaml:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Title is the short summary of the milestone (max 500 chars).
	Title string `json:"title" yaml:"title"`

	// Target is the date the milestone is due. Milestones are
	// point-duration: on the timeline they start and end on this date.
	Target time.Time `json:"target_date" yaml:"target_date"`

	// Completed is true once the milestone has been reached.
	Completed bool `json:"completed" yaml:"completed"`

	// CreatedAt is when the milestone was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is when the milestone was last modified.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Message represents a site log entry.
type Message struct {
	// ID is a unique identifier.
	ID string `json:"id" yaml:"id"`

	// ProjectID references the owning project.
	ProjectID string `json:"project_id" yaml:"project_id"`

	// Author is the person posting the message.
	Author string `json:"author" yaml:"author"`

	// Body is the message text.
	Body string `json:"body" yaml:"body"`

	// CreatedAt is when the message was posted.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
