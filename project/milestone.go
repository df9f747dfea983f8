package project

import (
	"fmt"
	"time"
)

// CreateMilestoneOptions configures a new milestone.
type CreateMilestoneOptions struct {
	// ProjectID references the owning project. Required.
	ProjectID string `json:"project_id"`

	// Target is the date the milestone is due. Required.
	Target time.Time `json:"target_date"`
}

// CreateMilestone creates a new milestone with the given title.
func (s *Store) CreateMilestone(title string, opts CreateMilestoneOptions) (*Milestone, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if opts.Target.IsZero() {
		return nil, ErrMissingTargetDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(opts.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	created := Milestone{
		ID:        GenerateID(title, now),
		ProjectID: opts.ProjectID,
		Title:     title,
		Target:    opts.Target,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.milestones = append(s.milestones, created)
	return &created, nil
}

// MilestoneFilter narrows ListMilestones output.
type MilestoneFilter struct {
	// ProjectID keeps only milestones in this project when non-empty.
	ProjectID string `json:"project_id,omitempty"`

	// PendingOnly keeps only milestones not yet completed.
	PendingOnly bool `json:"pending_only,omitempty"`
}

// ListMilestones returns milestones in creation order.
func (s *Store) ListMilestones(filter MilestoneFilter) ([]Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Milestone, 0, len(s.milestones))
	for _, item := range s.milestones {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		if filter.PendingOnly && item.Completed {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdateMilestoneOptions configures fields to update on a milestone.
// Nil pointers mean "don't update this field".
type UpdateMilestoneOptions struct {
	Title     *string    `json:"title,omitempty"`
	Target    *time.Time `json:"target_date,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
}

// UpdateMilestone updates a milestone and returns the result.
func (s *Store) UpdateMilestone(id string, opts UpdateMilestoneOptions) (*Milestone, error) {
	if opts.Title != nil {
		if err := ValidateTitle(*opts.Title); err != nil {
			return nil, err
		}
	}
	if opts.Target != nil && opts.Target.IsZero() {
		return nil, ErrMissingTargetDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.milestones {
		if s.milestones[i].ID != id {
			continue
		}
		updated := s.milestones[i]
		if opts.Title != nil {
			updated.Title = *opts.Title
		}
		if opts.Target != nil {
			updated.Target = *opts.Target
		}
		if opts.Completed != nil {
			updated.Completed = *opts.Completed
		}
		updated.UpdatedAt = s.now()
		s.milestones[i] = updated
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: milestone %q", ErrNotFound, id)
}

// CompleteMilestone marks a milestone as reached.
func (s *Store) CompleteMilestone(id string) (*Milestone, error) {
	completed := true
	return s.UpdateMilestone(id, UpdateMilestoneOptions{Completed: &completed})
}

// DeleteMilestone removes a milestone from the store.
func (s *Store) DeleteMilestone(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.milestones {
		if s.milestones[i].ID == id {
			s.milestones = append(s.milestones[:i], s.milestones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: milestone %q", ErrNotFound, id)
}
