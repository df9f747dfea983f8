package dashtui

import (
	"testing"
	"time"

	"github.com/lintelhq/lintel/project"
)

func TestParseProgress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "empty", input: "", want: 0},
		{name: "numeric", input: "45", want: 45},
		{name: "percent suffix", input: "80%", want: 80},
		{name: "padded", input: " 100 ", want: 100},
		{name: "invalid", input: "half", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "range", input: "120", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseProgress(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	status, err := parseTaskStatus("in progress")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != project.StatusInProgress {
		t.Fatalf("expected %q, got %q", project.StatusInProgress, status)
	}

	status, err = parseTaskStatus("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != project.StatusNotStarted {
		t.Fatalf("expected %q, got %q", project.StatusNotStarted, status)
	}

	if _, err := parseTaskStatus("not-a-status"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseOptionalDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *time.Time
		wantErr bool
	}{
		{name: "empty", input: ""},
		{name: "dash", input: "-"},
		{name: "valid", input: "2025-06-11", want: timePtr(time.Date(2025, time.June, 11, 0, 0, 0, 0, time.UTC))},
		{name: "invalid", input: "June 11", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseOptionalDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got != nil && !got.Equal(*tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestOrderTasksForDisplay(t *testing.T) {
	tasks := []project.Task{
		{ID: "t1", Status: project.StatusCompleted},
		{ID: "t2", Status: project.StatusInProgress},
		{ID: "t3", Status: project.StatusBlocked},
		{ID: "t4", Status: project.StatusNotStarted},
	}

	ordered := orderTasksForDisplay(tasks)
	got := make([]string, 0, len(ordered))
	for _, item := range ordered {
		got = append(got, item.ID)
	}
	want := []string{"t2", "t4", "t3", "t1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}
