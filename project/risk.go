package project

import "fmt"

// CreateRiskOptions configures a new risk.
type CreateRiskOptions struct {
	// ProjectID references the owning project. Required.
	ProjectID string `json:"project_id"`

	// Severity grades the impact. Defaults to SeverityMedium.
	Severity Severity `json:"severity,omitempty"`

	// Likelihood grades the probability. Defaults to SeverityMedium.
	Likelihood Severity `json:"likelihood,omitempty"`

	// Mitigation describes the planned response.
	Mitigation string `json:"mitigation,omitempty"`
}

// CreateRisk records a new open risk with the given title.
func (s *Store) CreateRisk(title string, opts CreateRiskOptions) (*Risk, error) {
	if opts.Severity == "" {
		opts.Severity = SeverityMedium
	}
	if opts.Likelihood == "" {
		opts.Likelihood = SeverityMedium
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(opts.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	created := Risk{
		ID:         GenerateID(title, now),
		ProjectID:  opts.ProjectID,
		Title:      title,
		Severity:   opts.Severity,
		Likelihood: opts.Likelihood,
		Mitigation: opts.Mitigation,
		Open:       true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := ValidateRisk(&created); err != nil {
		return nil, err
	}

	s.risks = append(s.risks, created)
	return &created, nil
}

// RiskFilter narrows ListRisks output.
type RiskFilter struct {
	// ProjectID keeps only risks in this project when non-empty.
	ProjectID string `json:"project_id,omitempty"`

	// OpenOnly keeps only risks still being tracked.
	OpenOnly bool `json:"open_only,omitempty"`
}

// ListRisks returns risks in creation order.
func (s *Store) ListRisks(filter RiskFilter) ([]Risk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Risk, 0, len(s.risks))
	for _, item := range s.risks {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		if filter.OpenOnly && !item.Open {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdateRiskOptions configures fields to update on a risk.
// Nil pointers mean "don't update this field".
type UpdateRiskOptions struct {
	Title      *string   `json:"title,omitempty"`
	Severity   *Severity `json:"severity,omitempty"`
	Likelihood *Severity `json:"likelihood,omitempty"`
	Mitigation *string   `json:"mitigation,omitempty"`
	Open       *bool     `json:"open,omitempty"`
}

// UpdateRisk updates a risk and returns the result.
func (s *Store) UpdateRisk(id string, opts UpdateRiskOptions) (*Risk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.risks {
		if s.risks[i].ID != id {
			continue
		}
		updated := s.risks[i]
		if opts.Title != nil {
			updated.Title = *opts.Title
		}
		if opts.Severity != nil {
			updated.Severity = *opts.Severity
		}
		if opts.Likelihood != nil {
			updated.Likelihood = *opts.Likelihood
		}
		if opts.Mitigation != nil {
			updated.Mitigation = *opts.Mitigation
		}
		if opts.Open != nil {
			updated.Open = *opts.Open
		}
		updated.UpdatedAt = s.now()
		if err := ValidateRisk(&updated); err != nil {
			return nil, err
		}
		s.risks[i] = updated
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: risk %q", ErrNotFound, id)
}

// CloseRisk marks a risk as no longer tracked.
func (s *Store) CloseRisk(id string) (*Risk, error) {
	closed := false
	return s.UpdateRisk(id, UpdateRiskOptions{Open: &closed})
}

// DeleteRisk removes a risk from the store.
func (s *Store) DeleteRisk(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.risks {
		if s.risks[i].ID == id {
			s.risks = append(s.risks[:i], s.risks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: risk %q", ErrNotFound, id)
}
