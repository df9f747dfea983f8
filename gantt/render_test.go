package gantt

import (
	"strings"
	"testing"
	"time"

	"github.com/lintelhq/lintel/timeline"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func monthLayout(t *testing.T, items []timeline.Item) timeline.Layout {
	t.Helper()
	layout, err := timeline.ComputeLayout(timeline.ZoomMonth, date(2025, time.June, 11), 2025, items)
	if err != nil {
		t.Fatalf("failed to compute layout: %v", err)
	}
	return layout
}

func TestRenderText(t *testing.T) {
	layout := monthLayout(t, []timeline.Item{
		{ID: "a1", Title: "Foundation pour", Start: date(2025, time.March, 1), End: date(2025, time.March, 20), Progress: 60, Status: "In Progress"},
		{ID: "b2", Title: "Roof inspection", Start: date(2025, time.September, 5), End: date(2025, time.September, 5), Status: "Not Started"},
	})

	out := RenderText(layout, RenderOptions{Width: 100, NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (two header rows, two items):\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Jan") || !strings.Contains(lines[0], "Dec") {
		t.Errorf("header row missing month labels: %q", lines[0])
	}
	if !strings.Contains(lines[1], "2025") {
		t.Errorf("sublabel row missing year: %q", lines[1])
	}
	if !strings.Contains(lines[2], "Foundation pour") || !strings.Contains(lines[2], barRune) {
		t.Errorf("item row missing label or bar: %q", lines[2])
	}
	if !strings.Contains(lines[3], milestoneMarker) {
		t.Errorf("milestone row should use the diamond marker: %q", lines[3])
	}
}

func TestRenderText_SkipsInvisibleItems(t *testing.T) {
	layout := monthLayout(t, []timeline.Item{
		{ID: "a1", Title: "Prior year work", Start: date(2024, time.March, 1), End: date(2024, time.April, 1), Status: "Completed"},
	})

	out := RenderText(layout, RenderOptions{Width: 80, NoColor: true})
	if strings.Contains(out, "Prior year work") {
		t.Errorf("items outside the window should be elided:\n%s", out)
	}
}

func TestRenderText_TruncatesLongLabels(t *testing.T) {
	long := strings.Repeat("x", 3*labelColumnWidth)
	layout := monthLayout(t, []timeline.Item{
		{ID: "a1", Title: long, Start: date(2025, time.March, 1), End: date(2025, time.March, 20), Status: "In Progress"},
	})

	out := RenderText(layout, RenderOptions{Width: 60, NoColor: true})
	if strings.Contains(out, long) {
		t.Error("long labels should be truncated")
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated labels should carry the ellipsis tail")
	}
}

func TestRenderText_BarPositionTracksLeft(t *testing.T) {
	layout := monthLayout(t, []timeline.Item{
		{ID: "early", Title: "Early", Start: date(2025, time.January, 1), End: date(2025, time.February, 1), Status: "In Progress"},
		{ID: "late", Title: "Late", Start: date(2025, time.November, 1), End: date(2025, time.December, 1), Status: "In Progress"},
	})

	out := RenderText(layout, RenderOptions{Width: 100, NoColor: true})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	earlyCol := strings.Index(lines[2], barRune)
	lateCol := strings.Index(lines[3], barRune)
	if earlyCol < 0 || lateCol < 0 {
		t.Fatalf("missing bars:\n%s", out)
	}
	if earlyCol >= lateCol {
		t.Errorf("January bar at column %d should sit left of November bar at %d", earlyCol, lateCol)
	}
}
