package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPlan_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	proj := newTestProject(t, store)
	if _, err := store.CreateTask("Framing", CreateTaskOptions{
		ProjectID: proj.ID,
		Start:     datePtr(2025, 3, 3),
		End:       date(2025, 4, 11),
		Status:    StatusInProgress,
		Progress:  60,
	}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := store.CreateRisk("Steel delay", CreateRiskOptions{ProjectID: proj.ID}); err != nil {
		t.Fatalf("failed to create risk: %v", err)
	}
	if _, err := store.PostMessage("Inspection passed.", PostMessageOptions{ProjectID: proj.ID, Author: "J. Keller"}); err != nil {
		t.Fatalf("failed to post message: %v", err)
	}

	path := filepath.Join(t.TempDir(), "lintel.yaml")
	if err := WritePlan(path, store); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}

	loaded, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}

	if got, want := loaded.Count(), store.Count(); got != want {
		t.Errorf("counts differ after round trip: got %+v, want %+v", got, want)
	}

	tasks, err := loaded.ListTasks(TaskFilter{})
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].Title != "Framing" || tasks[0].Progress != 60 || tasks[0].Status != StatusInProgress {
		t.Errorf("task fields lost in round trip: %+v", tasks[0])
	}
	if tasks[0].Start == nil || !tasks[0].Start.Equal(date(2025, 3, 3)) {
		t.Errorf("optional start date lost in round trip: %v", tasks[0].Start)
	}
}

func TestLoadPlan_Missing(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrNoPlan) {
		t.Errorf("got error %v, want ErrNoPlan", err)
	}
}

func TestLoadPlan_RejectsInvalidEntities(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		plan    string
		wantErr error
	}{
		{
			name: "bad status",
			plan: `projects:
  - id: abc12345
    name: Riverside
    status: finished
`,
			wantErr: ErrInvalidStatus,
		},
		{
			name: "orphan task",
			plan: `projects: []
tasks:
  - id: def12345
    project_id: missing1
    title: Framing
    status: In Progress
    end_date: 2025-04-11T00:00:00Z
`,
			wantErr: ErrUnknownProject,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.plan), 0o644); err != nil {
				t.Fatalf("failed to write plan: %v", err)
			}
			_, err := LoadPlan(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWritePlan_Atomic(t *testing.T) {
	store := newTestStore(t)
	newTestProject(t, store)

	path := filepath.Join(t.TempDir(), "lintel.yaml")
	if err := WritePlan(path, store); err != nil {
		t.Fatalf("failed to write plan: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}
