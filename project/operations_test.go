package project

import (
	"errors"
	"testing"
)

func TestStore_CreateProject(t *testing.T) {
	store := newTestStore(t)

	created, err := store.CreateProject("Riverside Apartments", CreateProjectOptions{
		Client:      "Harbor Development Group",
		BudgetCents: 4_250_000_00,
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	if created.Name != "Riverside Apartments" {
		t.Errorf("expected name 'Riverside Apartments', got %q", created.Name)
	}
	if created.Status != StatusNotStarted {
		t.Errorf("expected status 'Not Started', got %q", created.Status)
	}
	if len(created.ID) != 8 {
		t.Errorf("expected 8-char ID, got %q", created.ID)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_CreateProject_Invalid(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name    string
		title   string
		opts    CreateProjectOptions
		wantErr error
	}{
		{"empty name", "", CreateProjectOptions{}, ErrEmptyTitle},
		{"bad status", "Depot", CreateProjectOptions{Status: Status("finished")}, ErrInvalidStatus},
		{"negative budget", "Depot", CreateProjectOptions{BudgetCents: -1}, ErrNegativeAmount},
		{"end before start", "Depot", CreateProjectOptions{Start: date(2025, 6, 1), End: date(2025, 5, 1)}, ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateProject(tt.title, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_UpdateProject(t *testing.T) {
	store := newTestStore(t)
	created := newTestProject(t, store)

	newStatus := StatusOnHold
	newClient := "Metro Authority"
	updated, err := store.UpdateProject(created.ID, UpdateProjectOptions{
		Status: &newStatus,
		Client: &newClient,
	})
	if err != nil {
		t.Fatalf("failed to update project: %v", err)
	}

	if updated.Status != StatusOnHold {
		t.Errorf("expected status 'On Hold', got %q", updated.Status)
	}
	if updated.Client != "Metro Authority" {
		t.Errorf("expected client 'Metro Authority', got %q", updated.Client)
	}
	if updated.Name != created.Name {
		t.Errorf("name should be unchanged, got %q", updated.Name)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_UpdateProject_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UpdateProject("missing1", UpdateProjectOptions{})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got error %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteProject_Cascades(t *testing.T) {
	store := newTestStore(t)
	created := newTestProject(t, store)

	if _, err := store.CreateTask("Excavation", CreateTaskOptions{ProjectID: created.ID, End: date(2025, 3, 1)}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.CreateRisk("Steel delay", CreateRiskOptions{ProjectID: created.ID}); err != nil {
		t.Fatalf("failed to create risk: %v", err)
	}

	if err := store.DeleteProject(created.ID); err != nil {
		t.Fatalf("failed to delete project: %v", err)
	}

	counts := store.Count()
	if counts.Projects != 0 || counts.Tasks != 0 || counts.Risks != 0 {
		t.Errorf("expected cascade delete, got %+v", counts)
	}
}

func TestStore_CreateTask(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.CreateTask("Foundation pour", CreateTaskOptions{
		ProjectID: proj.ID,
		Trade:     "Concrete",
		Start:     datePtr(2025, 2, 3),
		End:       date(2025, 2, 21),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if created.Status != StatusNotStarted {
		t.Errorf("expected status 'Not Started', got %q", created.Status)
	}
	if created.Progress != 0 {
		t.Errorf("expected progress 0, got %d", created.Progress)
	}
	if created.Start == nil || !created.Start.Equal(date(2025, 2, 3)) {
		t.Errorf("expected start 2025-02-03, got %v", created.Start)
	}
}

func TestStore_CreateTask_Invalid(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	tests := []struct {
		name    string
		title   string
		opts    CreateTaskOptions
		wantErr error
	}{
		{"unknown project", "Framing", CreateTaskOptions{ProjectID: "nope1234", End: date(2025, 3, 1)}, ErrUnknownProject},
		{"missing project", "Framing", CreateTaskOptions{End: date(2025, 3, 1)}, ErrUnknownProject},
		{"missing end", "Framing", CreateTaskOptions{ProjectID: proj.ID}, ErrMissingEndDate},
		{"empty title", "", CreateTaskOptions{ProjectID: proj.ID, End: date(2025, 3, 1)}, ErrEmptyTitle},
		{"bad progress", "Framing", CreateTaskOptions{ProjectID: proj.ID, End: date(2025, 3, 1), Progress: 150}, ErrInvalidProgress},
		{"end before start", "Framing", CreateTaskOptions{ProjectID: proj.ID, Start: datePtr(2025, 4, 1), End: date(2025, 3, 1)}, ErrEndBeforeStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateTask(tt.title, tt.opts)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStore_UpdateTask_StatusStamps(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.CreateTask("Electrical rough-in", CreateTaskOptions{
		ProjectID: proj.ID,
		End:       date(2025, 4, 15),
		Progress:  40,
		Status:    StatusInProgress,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	completed := StatusCompleted
	done, err := store.UpdateTask(created.ID, UpdateTaskOptions{Status: &completed})
	if err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("expected CompletedAt to be stamped")
	}
	if done.Progress != 100 {
		t.Errorf("completion should force progress to 100, got %d", done.Progress)
	}

	blocked := StatusBlocked
	stuck, err := store.UpdateTask(created.ID, UpdateTaskOptions{Status: &blocked})
	if err != nil {
		t.Fatalf("failed to block task: %v", err)
	}
	if stuck.BlockedAt == nil {
		t.Fatal("expected BlockedAt to be stamped")
	}
	if stuck.CompletedAt != nil {
		t.Error("leaving Completed should clear CompletedAt")
	}

	reopened := StatusInProgress
	active, err := store.UpdateTask(created.ID, UpdateTaskOptions{Status: &reopened})
	if err != nil {
		t.Fatalf("failed to reopen task: %v", err)
	}
	if active.BlockedAt != nil || active.CompletedAt != nil {
		t.Error("returning to In Progress should clear transition stamps")
	}
}

func TestStore_ListTasks_Filter(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)
	other, err := store.CreateProject("Transit Depot Retrofit", CreateProjectOptions{})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	mustCreateTask := func(title, projectID string, status Status, assignee string) {
		t.Helper()
		if _, err := store.CreateTask(title, CreateTaskOptions{
			ProjectID: projectID,
			End:       date(2025, 5, 1),
			Status:    status,
			Assignee:  assignee,
		}); err != nil {
			t.Fatalf("failed to create task %q: %v", title, err)
		}
	}
	mustCreateTask("Excavation", proj.ID, StatusCompleted, "Ortiz crew")
	mustCreateTask("Framing", proj.ID, StatusInProgress, "Keller crew")
	mustCreateTask("Survey", other.ID, StatusNotStarted, "Patel & Sons")

	tests := []struct {
		name   string
		filter TaskFilter
		want   int
	}{
		{"all", TaskFilter{}, 3},
		{"by project", TaskFilter{ProjectID: proj.ID}, 2},
		{"by status", TaskFilter{Status: StatusInProgress}, 1},
		{"by assignee", TaskFilter{Assignee: "Ortiz crew"}, 1},
		{"project and status", TaskFilter{ProjectID: proj.ID, Status: StatusNotStarted}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListTasks(tt.filter)
			if err != nil {
				t.Fatalf("failed to list tasks: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d tasks, want %d", len(got), tt.want)
			}
		})
	}

	if _, err := store.ListTasks(TaskFilter{Status: Status("bogus")}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("got error %v, want ErrInvalidStatus", err)
	}
}

func TestStore_ListReturnsCopies(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.CreateTask("Framing", CreateTaskOptions{
		ProjectID: proj.ID,
		Start:     datePtr(2025, 3, 3),
		End:       date(2025, 4, 1),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	listed, err := store.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	*listed[0].Start = date(1999, 1, 1)
	listed[0].Title = "mutated"

	reread, err := store.GetTask(created.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if reread.Title != "Framing" || !reread.Start.Equal(date(2025, 3, 3)) {
		t.Error("mutating a listed task should not affect the store")
	}
}

func TestStore_RiskLifecycle(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.CreateRisk("Steel delivery slipping", CreateRiskOptions{
		ProjectID: proj.ID,
		Severity:  SeverityHigh,
	})
	if err != nil {
		t.Fatalf("failed to create risk: %v", err)
	}
	if !created.Open {
		t.Error("new risks should be open")
	}
	if created.Likelihood != SeverityMedium {
		t.Errorf("expected default likelihood 'medium', got %q", created.Likelihood)
	}

	closed, err := store.CloseRisk(created.ID)
	if err != nil {
		t.Fatalf("failed to close risk: %v", err)
	}
	if closed.Open {
		t.Error("closed risk should not be open")
	}

	open, err := store.ListRisks(RiskFilter{OpenOnly: true})
	if err != nil {
		t.Fatalf("failed to list risks: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("expected no open risks, got %d", len(open))
	}

	if _, err := store.CreateRisk("Bad", CreateRiskOptions{ProjectID: proj.ID, Severity: Severity("catastrophic")}); !errors.Is(err, ErrInvalidSeverity) {
		t.Errorf("got error %v, want ErrInvalidSeverity", err)
	}
}

func TestStore_ExpenseLifecycle(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.CreateExpense("Crane rental", CreateExpenseOptions{
		ProjectID:   proj.ID,
		Category:    "equipment",
		AmountCents: 42_000_00,
	})
	if err != nil {
		t.Fatalf("failed to create expense: %v", err)
	}
	if created.Approved {
		t.Error("new expenses should not be approved")
	}
	if created.IncurredOn.IsZero() {
		t.Error("IncurredOn should default to the clock")
	}

	approved, err := store.ApproveExpense(created.ID)
	if err != nil {
		t.Fatalf("failed to approve expense: %v", err)
	}
	if !approved.Approved {
		t.Error("expected expense to be approved")
	}

	if _, err := store.CreateExpense("Bad", CreateExpenseOptions{ProjectID: proj.ID, AmountCents: -5}); !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("got error %v, want ErrNegativeAmount", err)
	}
}

func TestStore_MilestoneLifecycle(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.CreateMilestone("Topping out", CreateMilestoneOptions{
		ProjectID: proj.ID,
		Target:    date(2025, 8, 15),
	})
	if err != nil {
		t.Fatalf("failed to create milestone: %v", err)
	}
	if created.Completed {
		t.Error("new milestones should not be completed")
	}

	done, err := store.CompleteMilestone(created.ID)
	if err != nil {
		t.Fatalf("failed to complete milestone: %v", err)
	}
	if !done.Completed {
		t.Error("expected milestone to be completed")
	}

	pending, err := store.ListMilestones(MilestoneFilter{PendingOnly: true})
	if err != nil {
		t.Fatalf("failed to list milestones: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected no pending milestones, got %d", len(pending))
	}

	if _, err := store.CreateMilestone("No date", CreateMilestoneOptions{ProjectID: proj.ID}); !errors.Is(err, ErrMissingTargetDate) {
		t.Errorf("got error %v, want ErrMissingTargetDate", err)
	}
}

func TestStore_PostMessage(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	created, err := store.PostMessage("Framing inspection passed.", PostMessageOptions{
		ProjectID: proj.ID,
		Author:    "J. Keller",
	})
	if err != nil {
		t.Fatalf("failed to post message: %v", err)
	}
	if created.Author != "J. Keller" {
		t.Errorf("expected author 'J. Keller', got %q", created.Author)
	}

	if _, err := store.PostMessage("", PostMessageOptions{ProjectID: proj.ID, Author: "x"}); !errors.Is(err, ErrEmptyBody) {
		t.Errorf("got error %v, want ErrEmptyBody", err)
	}
	if _, err := store.PostMessage("hi", PostMessageOptions{ProjectID: proj.ID}); !errors.Is(err, ErrEmptyAuthor) {
		t.Errorf("got error %v, want ErrEmptyAuthor", err)
	}
}

func TestStore_ListMessages_Limit(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	for _, body := range []string{"first", "second", "third"} {
		if _, err := store.PostMessage(body, PostMessageOptions{ProjectID: proj.ID, Author: "site"}); err != nil {
			t.Fatalf("failed to post message: %v", err)
		}
	}

	latest, err := store.ListMessages(MessageFilter{Limit: 2})
	if err != nil {
		t.Fatalf("failed to list messages: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("got %d messages, want 2", len(latest))
	}
	if latest[0].Body != "second" || latest[1].Body != "third" {
		t.Errorf("limit should keep the most recent messages, got %q then %q", latest[0].Body, latest[1].Body)
	}
}
