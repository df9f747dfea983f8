package project

import (
	"sort"
	"time"
)

const (
	snapshotMilestoneLimit = 5
	snapshotMessageLimit   = 5
)

// Snapshot is the dashboard state summary: the web overview renders it
// and the chat assistant receives it as application context.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	Projects ProjectMetrics `json:"projects"`
	Tasks    TaskMetrics    `json:"tasks"`
	Risks    RiskMetrics    `json:"risks"`
	Expenses ExpenseMetrics `json:"expenses"`

	// UpcomingMilestones lists the next pending milestones by target date.
	UpcomingMilestones []Milestone `json:"upcoming_milestones"`

	// RecentMessages lists the latest site log entries, newest last.
	RecentMessages []Message `json:"recent_messages"`
}

// ProjectMetrics counts projects by state.
type ProjectMetrics struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	OnHold    int `json:"on_hold"`
}

// TaskMetrics counts tasks by state.
type TaskMetrics struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Blocked    int `json:"blocked"`
	Overdue    int `json:"overdue"`
}

// RiskMetrics counts open risks by severity.
type RiskMetrics struct {
	Open   int `json:"open"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ExpenseMetrics totals spend against budget, in cents.
type ExpenseMetrics struct {
	BudgetCents    int64 `json:"budget_cents"`
	ApprovedCents  int64 `json:"approved_cents"`
	SubmittedCents int64 `json:"submitted_cents"`
}

// RemainingCents is the budget left after approved spend.
func (m ExpenseMetrics) RemainingCents() int64 {
	return m.BudgetCents - m.ApprovedCents
}

// Snapshot computes the dashboard summary. The reference time decides
// task overdue-ness and which milestones count as upcoming; callers
// supply it so output stays deterministic.
func (s *Store) Snapshot(reference time.Time) Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Snapshot{GeneratedAt: reference}

	snapshot.Projects.Total = len(s.projects)
	for _, item := range s.projects {
		switch item.Status {
		case StatusInProgress:
			snapshot.Projects.Active++
		case StatusCompleted:
			snapshot.Projects.Completed++
		case StatusOnHold:
			snapshot.Projects.OnHold++
		}
		snapshot.Expenses.BudgetCents += item.BudgetCents
	}

	snapshot.Tasks.Total = len(s.tasks)
	for _, item := range s.tasks {
		switch item.Status {
		case StatusCompleted:
			snapshot.Tasks.Completed++
		case StatusInProgress:
			snapshot.Tasks.InProgress++
		case StatusBlocked:
			snapshot.Tasks.Blocked++
		}
		if item.Overdue(reference) {
			snapshot.Tasks.Overdue++
		}
	}

	for _, item := range s.risks {
		if !item.Open {
			continue
		}
		snapshot.Risks.Open++
		switch item.Severity {
		case SeverityHigh:
			snapshot.Risks.High++
		case SeverityMedium:
			snapshot.Risks.Medium++
		case SeverityLow:
			snapshot.Risks.Low++
		}
	}

	for _, item := range s.expenses {
		snapshot.Expenses.SubmittedCents += item.AmountCents
		if item.Approved {
			snapshot.Expenses.ApprovedCents += item.AmountCents
		}
	}

	upcoming := make([]Milestone, 0, len(s.milestones))
	for _, item := range s.milestones {
		if item.Completed || item.Target.Before(reference) {
			continue
		}
		upcoming = append(upcoming, item)
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Target.Before(upcoming[j].Target)
	})
	if len(upcoming) > snapshotMilestoneLimit {
		upcoming = upcoming[:snapshotMilestoneLimit]
	}
	snapshot.UpcomingMilestones = upcoming

	messages := append([]Message(nil), s.messages...)
	if len(messages) > snapshotMessageLimit {
		messages = messages[len(messages)-snapshotMessageLimit:]
	}
	snapshot.RecentMessages = messages

	return snapshot
}
