package project

import (
	"errors"
	"testing"
)

func TestStore_GanttItems(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)

	task, err := store.CreateTask("Framing", CreateTaskOptions{
		ProjectID: proj.ID,
		Start:     datePtr(2025, 3, 3),
		End:       date(2025, 4, 11),
		Progress:  60,
		Status:    StatusInProgress,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	dueOnly, err := store.CreateTask("Elevator inspection", CreateTaskOptions{
		ProjectID: proj.ID,
		End:       date(2025, 4, 18),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	milestone, err := store.CreateMilestone("Topping out", CreateMilestoneOptions{
		ProjectID: proj.ID,
		Target:    date(2025, 8, 15),
	})
	if err != nil {
		t.Fatalf("failed to create milestone: %v", err)
	}

	items, err := store.GanttItems(proj.ID)
	if err != nil {
		t.Fatalf("failed to build gantt items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	if items[0].ID != task.ID || !items[0].Start.Equal(date(2025, 3, 3)) {
		t.Errorf("task item mismatch: %+v", items[0])
	}
	if items[0].Status != "In Progress" || items[0].Progress != 60 {
		t.Errorf("task progress/status mismatch: %+v", items[0])
	}

	if items[1].ID != dueOnly.ID {
		t.Fatalf("expected due-only task second, got %+v", items[1])
	}
	if !items[1].Start.Equal(items[1].End) {
		t.Error("a due-date-only task should start and end on its due date")
	}

	if items[2].ID != milestone.ID {
		t.Fatalf("expected milestone last, got %+v", items[2])
	}
	if !items[2].Start.Equal(date(2025, 8, 15)) || !items[2].End.Equal(date(2025, 8, 15)) {
		t.Error("milestones should be point-duration on the target date")
	}
	if items[2].Status != "Not Started" || items[2].Progress != 0 {
		t.Errorf("pending milestone should map to Not Started/0, got %+v", items[2])
	}

	if _, err := store.CompleteMilestone(milestone.ID); err != nil {
		t.Fatalf("failed to complete milestone: %v", err)
	}
	items, err = store.GanttItems(proj.ID)
	if err != nil {
		t.Fatalf("failed to rebuild gantt items: %v", err)
	}
	if items[2].Status != "Completed" || items[2].Progress != 100 {
		t.Errorf("completed milestone should map to Completed/100, got %+v", items[2])
	}
}

func TestStore_GanttItems_UnknownProject(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.GanttItems("missing1"); !errors.Is(err, ErrUnknownProject) {
		t.Errorf("got error %v, want ErrUnknownProject", err)
	}
}

func TestStore_GanttItems_AllProjects(t *testing.T) {
	store := newTestStore(t)
	first := newTestProject(t, store)
	second, err := store.CreateProject("Transit Depot Retrofit", CreateProjectOptions{})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	for _, projectID := range []string{first.ID, second.ID} {
		if _, err := store.CreateTask("Survey", CreateTaskOptions{ProjectID: projectID, End: date(2025, 5, 1)}); err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
	}

	items, err := store.GanttItems("")
	if err != nil {
		t.Fatalf("failed to build gantt items: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("empty project ID should include all projects, got %d items", len(items))
	}
}
