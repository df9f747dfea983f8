package timeline

import (
	"errors"
	"math"
	"testing"
	"time"
)

func monthConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := NewConfig(ZoomMonth, time.Time{}, 2025)
	if err != nil {
		t.Fatalf("NewConfig error: %v", err)
	}
	return cfg
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPositionItem_InsideWindow(t *testing.T) {
	cfg := monthConfig(t)

	// 2025-03-01 is 59 days after 2025-01-01; 2025-03-31 is 89.
	pos := PositionItem(Item{
		Start: date(2025, time.March, 1),
		End:   date(2025, time.March, 31),
	}, cfg)

	if pos.StartOffsetDays != 59 {
		t.Errorf("StartOffsetDays = %d, want 59", pos.StartOffsetDays)
	}
	if pos.EndOffsetDays != 89 {
		t.Errorf("EndOffsetDays = %d, want 89", pos.EndOffsetDays)
	}
	if pos.DurationDays != 30 {
		t.Errorf("DurationDays = %d, want 30", pos.DurationDays)
	}
	if want := 59.0 / 365.0; !almostEqual(pos.Left, want) {
		t.Errorf("Left = %v, want %v", pos.Left, want)
	}
	if want := 30.0 / 365.0; !almostEqual(pos.Width, want) {
		t.Errorf("Width = %v, want %v", pos.Width, want)
	}
	if !pos.Visible {
		t.Error("Visible = false, want true")
	}
}

func TestPositionItem_MilestoneGetsWidthFloor(t *testing.T) {
	cfg := monthConfig(t)

	pos := PositionItem(Item{
		Start: date(2025, time.June, 15),
		End:   date(2025, time.June, 15),
	}, cfg)

	if pos.DurationDays != 1 {
		t.Errorf("DurationDays = %d, want 1", pos.DurationDays)
	}
	if !almostEqual(pos.Width, MinWidthFraction) {
		t.Errorf("Width = %v, want the %v floor", pos.Width, MinWidthFraction)
	}
}

func TestPositionItem_ClampsToWindow(t *testing.T) {
	cfg := monthConfig(t)

	pos := PositionItem(Item{
		Start: date(2024, time.November, 1),
		End:   date(2025, time.February, 1),
	}, cfg)

	if pos.StartOffsetDays != 0 {
		t.Errorf("StartOffsetDays = %d, want 0", pos.StartOffsetDays)
	}
	if pos.Left != 0 {
		t.Errorf("Left = %v, want 0", pos.Left)
	}
	if !pos.Visible {
		t.Error("Visible = false, want true: the range overlaps the window")
	}
}

func TestPositionItem_RightEdgeShiftsLeft(t *testing.T) {
	cfg := monthConfig(t)

	// One day at the very end of the window: the floor would overflow,
	// so the bar shifts left instead of shrinking.
	pos := PositionItem(Item{
		Start: date(2025, time.December, 30),
		End:   date(2025, time.December, 31),
	}, cfg)

	if !almostEqual(pos.Width, MinWidthFraction) {
		t.Errorf("Width = %v, want the %v floor", pos.Width, MinWidthFraction)
	}
	if want := 1 - MinWidthFraction; !almostEqual(pos.Left, want) {
		t.Errorf("Left = %v, want %v", pos.Left, want)
	}
	if pos.Left+pos.Width > 1+1e-9 {
		t.Errorf("Left+Width = %v, exceeds the window", pos.Left+pos.Width)
	}
}

func TestPositionItem_OutsideWindowNotVisible(t *testing.T) {
	cfg := monthConfig(t)

	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"before", date(2024, time.March, 1), date(2024, time.April, 1)},
		{"after", date(2026, time.March, 1), date(2026, time.April, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := PositionItem(Item{Start: tt.start, End: tt.end}, cfg)
			if pos.Visible {
				t.Error("Visible = true, want false")
			}
			if pos.Left < 0 || pos.Left+pos.Width > 1+1e-9 {
				t.Errorf("coordinates out of range: Left = %v, Width = %v", pos.Left, pos.Width)
			}
		})
	}
}

func TestPositionItem_BoundaryDatesAreVisible(t *testing.T) {
	cfg := monthConfig(t)

	// Ends exactly on the window start day.
	pos := PositionItem(Item{
		Start: date(2024, time.December, 1),
		End:   date(2025, time.January, 1),
	}, cfg)
	if !pos.Visible {
		t.Error("item ending on the window start: Visible = false, want true")
	}

	// Starts exactly on the window end day.
	pos = PositionItem(Item{
		Start: date(2025, time.December, 31),
		End:   date(2026, time.January, 15),
	}, cfg)
	if !pos.Visible {
		t.Error("item starting on the window end: Visible = false, want true")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		status   string
		want     Category
	}{
		{"completed wins over progress", 10, "Completed", CategoryDone},
		{"blocked wins over progress", 90, "Blocked", CategoryBlocked},
		{"past halfway", 51, "In Progress", CategoryActiveHigh},
		{"at halfway", 50, "In Progress", CategoryActiveLow},
		{"not started", 0, "Not Started", CategoryActiveLow},
		{"unknown status falls through", 80, "On Hold", CategoryActiveHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.progress, tt.status); got != tt.want {
				t.Errorf("Classify(%d, %q) = %q, want %q", tt.progress, tt.status, got, tt.want)
			}
		})
	}
}

func TestComputeLayout(t *testing.T) {
	items := []Item{
		{ID: "b", Start: date(2025, time.May, 1), End: date(2025, time.May, 20), Progress: 60, Status: "In Progress"},
		{ID: "a", Start: date(2025, time.February, 1), End: date(2025, time.February, 10), Progress: 100, Status: "Completed"},
	}

	layout, err := ComputeLayout(ZoomMonth, time.Time{}, 2025, items)
	if err != nil {
		t.Fatalf("ComputeLayout error: %v", err)
	}

	if got := len(layout.Items); got != 2 {
		t.Fatalf("len(Items) = %d, want 2", got)
	}
	// Input order is preserved; items are not sorted.
	if layout.Items[0].ID != "b" || layout.Items[1].ID != "a" {
		t.Errorf("item order = [%s %s], want input order [b a]", layout.Items[0].ID, layout.Items[1].ID)
	}
	if got := layout.Items[0].Category; got != CategoryActiveHigh {
		t.Errorf("item b category = %q, want %q", got, CategoryActiveHigh)
	}
	if got := layout.Items[1].Category; got != CategoryDone {
		t.Errorf("item a category = %q, want %q", got, CategoryDone)
	}
}

func TestComputeLayout_InvalidZoom(t *testing.T) {
	_, err := ComputeLayout(Zoom("decade"), time.Time{}, 2025, nil)
	if !errors.Is(err, ErrInvalidZoom) {
		t.Errorf("error = %v, want ErrInvalidZoom", err)
	}
}

func TestItem_IsMilestone(t *testing.T) {
	day := date(2025, time.July, 4)
	if !(Item{Start: day, End: day}).IsMilestone() {
		t.Error("same-day item: IsMilestone() = false, want true")
	}
	if (Item{Start: day, End: day.AddDate(0, 0, 1)}).IsMilestone() {
		t.Error("ranged item: IsMilestone() = true, want false")
	}
}
