package project

import (
	"fmt"
	"time"
)

// CreateExpenseOptions configures a new expense.
type CreateExpenseOptions struct {
	// ProjectID references the owning project. Required.
	ProjectID string `json:"project_id"`

	// Category groups the expense (materials, labor, equipment, permits, ...).
	Category string `json:"category,omitempty"`

	// AmountCents is the expense amount in cents. Must be >= 0.
	AmountCents int64 `json:"amount_cents"`

	// IncurredOn is the date the cost was incurred. Defaults to today.
	IncurredOn time.Time `json:"incurred_on,omitempty"`
}

// CreateExpense books a new unapproved expense with the given description.
func (s *Store) CreateExpense(description string, opts CreateExpenseOptions) (*Expense, error) {
	if err := ValidateTitle(description); err != nil {
		return nil, err
	}
	if err := ValidateAmount(opts.AmountCents); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(opts.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	incurred := opts.IncurredOn
	if incurred.IsZero() {
		incurred = now
	}
	created := Expense{
		ID:          GenerateID(description, now),
		ProjectID:   opts.ProjectID,
		Description: description,
		Category:    opts.Category,
		AmountCents: opts.AmountCents,
		IncurredOn:  incurred,
		CreatedAt:   now,
	}

	s.expenses = append(s.expenses, created)
	return &created, nil
}

// ExpenseFilter narrows ListExpenses output.
type ExpenseFilter struct {
	// ProjectID keeps only expenses in this project when non-empty.
	ProjectID string `json:"project_id,omitempty"`

	// ApprovedOnly keeps only signed-off expenses.
	ApprovedOnly bool `json:"approved_only,omitempty"`

	// Category keeps only expenses in this category when non-empty.
	Category string `json:"category,omitempty"`
}

// ListExpenses returns expenses in creation order.
func (s *Store) ListExpenses(filter ExpenseFilter) ([]Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Expense, 0, len(s.expenses))
	for _, item := range s.expenses {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		if filter.ApprovedOnly && !item.Approved {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdateExpenseOptions configures fields to update on an expense.
// Nil pointers mean "don't update this field".
type UpdateExpenseOptions struct {
	Description *string    `json:"description,omitempty"`
	Category    *string    `json:"category,omitempty"`
	AmountCents *int64     `json:"amount_cents,omitempty"`
	IncurredOn  *time.Time `json:"incurred_on,omitempty"`
	Approved    *bool      `json:"approved,omitempty"`
}

// UpdateExpense updates an expense and returns the result.
func (s *Store) UpdateExpense(id string, opts UpdateExpenseOptions) (*Expense, error) {
	if opts.Description != nil {
		if err := ValidateTitle(*opts.Description); err != nil {
			return nil, err
		}
	}
	if opts.AmountCents != nil {
		if err := ValidateAmount(*opts.AmountCents); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		updated := s.expenses[i]
		if opts.Description != nil {
			updated.Description = *opts.Description
		}
		if opts.Category != nil {
			updated.Category = *opts.Category
		}
		if opts.AmountCents != nil {
			updated.AmountCents = *opts.AmountCents
		}
		if opts.IncurredOn != nil {
			updated.IncurredOn = *opts.IncurredOn
		}
		if opts.Approved != nil {
			updated.Approved = *opts.Approved
		}
		s.expenses[i] = updated
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: expense %q", ErrNotFound, id)
}

// ApproveExpense marks an expense as signed off.
func (s *Store) ApproveExpense(id string) (*Expense, error) {
	approved := true
	return s.UpdateExpense(id, UpdateExpenseOptions{Approved: &approved})
}

// DeleteExpense removes an expense from the store.
func (s *Store) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: expense %q", ErrNotFound, id)
}
