package project

import (
	"fmt"
	"time"
)

// CreateProjectOptions configures a new project.
type CreateProjectOptions struct {
	// Client is the commissioning party.
	Client string `json:"client,omitempty"`

	// Location is the site address or area.
	Location string `json:"location,omitempty"`

	// Status is the initial state. Defaults to StatusNotStarted.
	Status Status `json:"status,omitempty"`

	// BudgetCents is the approved budget in cents.
	BudgetCents int64 `json:"budget_cents,omitempty"`

	// Start is the planned start date.
	Start time.Time `json:"start_date,omitempty"`

	// End is the planned completion date.
	End time.Time `json:"end_date,omitempty"`

	// Description provides additional context.
	Description string `json:"description,omitempty"`
}

// CreateProject creates a new project with the given name.
func (s *Store) CreateProject(name string, opts CreateProjectOptions) (*Project, error) {
	if opts.Status == "" {
		opts.Status = StatusNotStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	created := Project{
		ID:          GenerateID(name, now),
		Name:        name,
		Client:      opts.Client,
		Location:    opts.Location,
		Status:      opts.Status,
		BudgetCents: opts.BudgetCents,
		Start:       opts.Start,
		End:         opts.End,
		Description: opts.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := ValidateProject(&created); err != nil {
		return nil, err
	}

	s.projects = append(s.projects, created)
	return &created, nil
}

// GetProject returns the project with the given ID.
func (s *Store) GetProject(id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.projects {
		if s.projects[i].ID == id {
			found := s.projects[i]
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: project %q", ErrNotFound, id)
}

// ProjectFilter narrows ListProjects output.
type ProjectFilter struct {
	// Status keeps only projects with this status when non-empty.
	Status Status `json:"status,omitempty"`
}

// ListProjects returns projects in creation order.
func (s *Store) ListProjects(filter ProjectFilter) ([]Project, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalidStatusError(filter.Status)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, 0, len(s.projects))
	for _, item := range s.projects {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdateProjectOptions configures fields to update on a project.
// Nil pointers mean "don't update this field".
type UpdateProjectOptions struct {
	Name        *string    `json:"name,omitempty"`
	Client      *string    `json:"client,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	BudgetCents *int64     `json:"budget_cents,omitempty"`
	Start       *time.Time `json:"start_date,omitempty"`
	End         *time.Time `json:"end_date,omitempty"`
	Description *string    `json:"description,omitempty"`
}

// UpdateProject updates a project and returns the result.
func (s *Store) UpdateProject(id string, opts UpdateProjectOptions) (*Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.projects {
		if s.projects[i].ID != id {
			continue
		}
		updated := s.projects[i]
		if opts.Name != nil {
			updated.Name = *opts.Name
		}
		if opts.Client != nil {
			updated.Client = *opts.Client
		}
		if opts.Location != nil {
			updated.Location = *opts.Location
		}
		if opts.Status != nil {
			updated.Status = *opts.Status
		}
		if opts.BudgetCents != nil {
			updated.BudgetCents = *opts.BudgetCents
		}
		if opts.Start != nil {
			updated.Start = *opts.Start
		}
		if opts.End != nil {
			updated.End = *opts.End
		}
		if opts.Description != nil {
			updated.Description = *opts.Description
		}
		updated.UpdatedAt = s.now()
		if err := ValidateProject(&updated); err != nil {
			return nil, err
		}
		s.projects[i] = updated
		return &updated, nil
	}
	return nil, fmt.Errorf("%w: project %q", ErrNotFound, id)
}

// DeleteProject removes a project and all entities that reference it.
func (s *Store) DeleteProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i := range s.projects {
		if s.projects[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("%w: project %q", ErrNotFound, id)
	}
	s.projects = append(s.projects[:index], s.projects[index+1:]...)

	s.tasks = deleteByProject(s.tasks, id, func(t Task) string { return t.ProjectID })
	s.risks = deleteByProject(s.risks, id, func(r Risk) string { return r.ProjectID })
	s.expenses = deleteByProject(s.expenses, id, func(e Expense) string { return e.ProjectID })
	s.milestones = deleteByProject(s.milestones, id, func(m Milestone) string { return m.ProjectID })
	s.messages = deleteByProject(s.messages, id, func(m Message) string { return m.ProjectID })
	return nil
}

func deleteByProject[T any](items []T, projectID string, key func(T) string) []T {
	kept := items[:0]
	for _, item := range items {
		if key(item) != projectID {
			kept = append(kept, item)
		}
	}
	return kept
}

// CreateTaskOptions configures a new task.
type CreateTaskOptions struct {
	// ProjectID references the owning project. Required.
	ProjectID string `json:"project_id"`

	// Trade is the discipline performing the work.
	Trade string `json:"trade,omitempty"`

	// Assignee is the crew or person responsible.
	Assignee string `json:"assignee,omitempty"`

	// Start is the planned start date. Nil means due-date only.
	Start *time.Time `json:"start_date,omitempty"`

	// End is the due date. Required.
	End time.Time `json:"end_date"`

	// Progress is the initial completion percent. Defaults to 0.
	Progress int `json:"progress,omitempty"`

	// Status is the initial state. Defaults to StatusNotStarted.
	Status Status `json:"status,omitempty"`
}

// CreateTask creates a new task with the given title.
func (s *Store) CreateTask(title string, opts CreateTaskOptions) (*Task, error) {
	if opts.Status == "" {
		opts.Status = StatusNotStarted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireProject(opts.ProjectID); err != nil {
		return nil, err
	}

	now := s.now()
	created := Task{
		ID:        GenerateID(title, now),
		ProjectID: opts.ProjectID,
		Title:     title,
		Trade:     opts.Trade,
		Assignee:  opts.Assignee,
		Start:     copyTimePtr(opts.Start),
		End:       opts.End,
		Progress:  opts.Progress,
		Status:    opts.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyTaskStatusStamps(&created, created.Status, now)
	if err := ValidateTask(&created); err != nil {
		return nil, err
	}

	s.tasks = append(s.tasks, created)
	result := copyTask(created)
	return &result, nil
}

// GetTask returns the task with the given ID.
func (s *Store) GetTask(id string) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			found := copyTask(s.tasks[i])
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: task %q", ErrNotFound, id)
}

// TaskFilter narrows ListTasks output.
type TaskFilter struct {
	// ProjectID keeps only tasks in this project when non-empty.
	ProjectID string `json:"project_id,omitempty"`

	// Status keeps only tasks with this status when non-empty.
	Status Status `json:"status,omitempty"`

	// Assignee keeps only tasks assigned to this name when non-empty.
	Assignee string `json:"assignee,omitempty"`
}

// ListTasks returns tasks in creation order.
func (s *Store) ListTasks(filter TaskFilter) ([]Task, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, invalidStatusError(filter.Status)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, 0, len(s.tasks))
	for _, item := range s.tasks {
		if filter.ProjectID != "" && item.ProjectID != filter.ProjectID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Assignee != "" && item.Assignee != filter.Assignee {
			continue
		}
		out = append(out, copyTask(item))
	}
	return out, nil
}

// UpdateTaskOptions configures fields to update on a task.
// Nil pointers mean "don't update this field".
type UpdateTaskOptions struct {
	Title    *string    `json:"title,omitempty"`
	Trade    *string    `json:"trade,omitempty"`
	Assignee *string    `json:"assignee,omitempty"`
	Start    *time.Time `json:"start_date,omitempty"`
	End      *time.Time `json:"end_date,omitempty"`
	Progress *int       `json:"progress,omitempty"`
	Status   *Status    `json:"status,omitempty"`
}

// UpdateTask updates a task and returns the result. Status transitions
// stamp CompletedAt/BlockedAt; entering Completed forces progress to 100.
func (s *Store) UpdateTask(id string, opts UpdateTaskOptions) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		updated := copyTask(s.tasks[i])
		previous := updated.Status
		if opts.Title != nil {
			updated.Title = *opts.Title
		}
		if opts.Trade != nil {
			updated.Trade = *opts.Trade
		}
		if opts.Assignee != nil {
			updated.Assignee = *opts.Assignee
		}
		if opts.Start != nil {
			updated.Start = copyTimePtr(opts.Start)
		}
		if opts.End != nil {
			updated.End = *opts.End
		}
		if opts.Progress != nil {
			updated.Progress = *opts.Progress
		}
		now := s.now()
		if opts.Status != nil && *opts.Status != previous {
			updated.Status = *opts.Status
			applyTaskStatusStamps(&updated, updated.Status, now)
		}
		updated.UpdatedAt = now
		if err := ValidateTask(&updated); err != nil {
			return nil, err
		}
		s.tasks[i] = updated
		result := copyTask(updated)
		return &result, nil
	}
	return nil, fmt.Errorf("%w: task %q", ErrNotFound, id)
}

// applyTaskStatusStamps records transition timestamps and keeps
// progress consistent with terminal statuses.
func applyTaskStatusStamps(t *Task, next Status, now time.Time) {
	switch next {
	case StatusCompleted:
		t.CompletedAt = &now
		t.BlockedAt = nil
		t.Progress = MaxProgress
	case StatusBlocked:
		t.BlockedAt = &now
		t.CompletedAt = nil
	default:
		t.CompletedAt = nil
		t.BlockedAt = nil
	}
}

// DeleteTask removes a task from the store.
func (s *Store) DeleteTask(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: task %q", ErrNotFound, id)
}
