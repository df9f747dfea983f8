package project

import (
	"fmt"
	"sync"
	"time"

	"github.com/lintelhq/lintel/internal/ids"
)

// Store holds the full construction program in memory. It is safe for
// concurrent use: the HTTP service shares one store across requests.
// All list and get operations return copies.
type Store struct {
	mu         sync.RWMutex
	projects   []Project
	tasks      []Task
	risks      []Risk
	expenses   []Expense
	milestones []Milestone
	messages   []Message
	watchers   map[chan Message]struct{}

	// now supplies timestamps for creates and status transitions.
	// Tests override it for deterministic output.
	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// GenerateID creates a unique 8-character alphanumeric ID from a title and timestamp.
func GenerateID(title string, timestamp time.Time) string {
	return ids.GenerateWithTimestamp(title, timestamp, ids.DefaultLength)
}

// hasProject reports whether a project with the given ID exists.
// Callers must hold the lock.
func (s *Store) hasProject(projectID string) bool {
	for i := range s.projects {
		if s.projects[i].ID == projectID {
			return true
		}
	}
	return false
}

// requireProject validates a non-empty project reference.
// Callers must hold the lock.
func (s *Store) requireProject(projectID string) error {
	if projectID == "" {
		return fmt.Errorf("%w: project id is required", ErrUnknownProject)
	}
	if !s.hasProject(projectID) {
		return fmt.Errorf("%w: %q", ErrUnknownProject, projectID)
	}
	return nil
}

// Counts reports per-entity totals, used by plan write summaries.
type Counts struct {
	Projects   int `json:"projects"`
	Tasks      int `json:"tasks"`
	Risks      int `json:"risks"`
	Expenses   int `json:"expenses"`
	Milestones int `json:"milestones"`
	Messages   int `json:"messages"`
}

// Count returns per-entity totals.
func (s *Store) Count() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Projects:   len(s.projects),
		Tasks:      len(s.tasks),
		Risks:      len(s.risks),
		Expenses:   len(s.expenses),
		Milestones: len(s.milestones),
		Messages:   len(s.messages),
	}
}

func copyTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func copyTask(t Task) Task {
	t.Start = copyTimePtr(t.Start)
	t.CompletedAt = copyTimePtr(t.CompletedAt)
	t.BlockedAt = copyTimePtr(t.BlockedAt)
	return t
}
