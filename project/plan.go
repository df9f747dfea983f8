package project

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrNoPlan is returned when the plan file doesn't exist.
var ErrNoPlan = errors.New("plan file not found")

// Plan is the on-disk YAML representation of a whole store. The CLI
// works plan-file-in, plan-file-out; the server may seed from a plan at
// startup but never writes one back.
type Plan struct {
	Projects   []Project   `yaml:"projects"`
	Tasks      []Task      `yaml:"tasks,omitempty"`
	Risks      []Risk      `yaml:"risks,omitempty"`
	Expenses   []Expense   `yaml:"expenses,omitempty"`
	Milestones []Milestone `yaml:"milestones,omitempty"`
	Messages   []Message   `yaml:"messages,omitempty"`
}

// LoadPlan reads a plan file into a fresh store. Entities are validated
// on load so a hand-edited plan fails fast with the offending entity
// named.
func LoadPlan(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNoPlan, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", path, err)
	}

	store := NewStore()
	if err := store.load(plan); err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}
	return store, nil
}

// load replaces the store contents with the plan's entities.
func (s *Store) load(plan Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range plan.Projects {
		if err := ValidateProject(&plan.Projects[i]); err != nil {
			return fmt.Errorf("project %q: %w", plan.Projects[i].ID, err)
		}
	}
	s.projects = append([]Project(nil), plan.Projects...)

	for i := range plan.Tasks {
		if err := ValidateTask(&plan.Tasks[i]); err != nil {
			return fmt.Errorf("task %q: %w", plan.Tasks[i].ID, err)
		}
		if err := s.requireProject(plan.Tasks[i].ProjectID); err != nil {
			return fmt.Errorf("task %q: %w", plan.Tasks[i].ID, err)
		}
	}
	s.tasks = append([]Task(nil), plan.Tasks...)

	for i := range plan.Risks {
		if err := ValidateRisk(&plan.Risks[i]); err != nil {
			return fmt.Errorf("risk %q: %w", plan.Risks[i].ID, err)
		}
		if err := s.requireProject(plan.Risks[i].ProjectID); err != nil {
			return fmt.Errorf("risk %q: %w", plan.Risks[i].ID, err)
		}
	}
	s.risks = append([]Risk(nil), plan.Risks...)

	for i := range plan.Expenses {
		if err := s.requireProject(plan.Expenses[i].ProjectID); err != nil {
			return fmt.Errorf("expense %q: %w", plan.Expenses[i].ID, err)
		}
	}
	s.expenses = append([]Expense(nil), plan.Expenses...)

	for i := range plan.Milestones {
		if err := s.requireProject(plan.Milestones[i].ProjectID); err != nil {
			return fmt.Errorf("milestone %q: %w", plan.Milestones[i].ID, err)
		}
	}
	s.milestones = append([]Milestone(nil), plan.Milestones...)

	for i := range plan.Messages {
		if err := s.requireProject(plan.Messages[i].ProjectID); err != nil {
			return fmt.Errorf("message %q: %w", plan.Messages[i].ID, err)
		}
	}
	s.messages = append([]Message(nil), plan.Messages...)

	return nil
}

// PlanDocument returns the store contents as a plan.
func (s *Store) PlanDocument() Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, copyTask(task))
	}

	return Plan{
		Projects:   append([]Project(nil), s.projects...),
		Tasks:      tasks,
		Risks:      append([]Risk(nil), s.risks...),
		Expenses:   append([]Expense(nil), s.expenses...),
		Milestones: append([]Milestone(nil), s.milestones...),
		Messages:   append([]Message(nil), s.messages...),
	}
}

// WritePlan writes the store to a plan file via a temp file and atomic
// rename, so a crash mid-write never truncates an existing plan.
func WritePlan(path string, store *Store) error {
	data, err := yaml.Marshal(store.PlanDocument())
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp plan: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp plan: %w", err)
	}
	return nil
}
