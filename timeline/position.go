package timeline

// MinWidthFraction is the floor applied to every item's width: 2% of
// the visible window, so even zero-duration milestones stay clickable.
const MinWidthFraction = 0.02

// Position is an item's normalized geometry within the visible window.
// Left and Width are fractions of the window width, both in [0, 1].
// Items outside the window still carry coordinates; Visible tells
// callers whether they intersect the window at all.
type Position struct {
	StartOffsetDays int     `json:"start_offset_days"`
	EndOffsetDays   int     `json:"end_offset_days"`
	DurationDays    int     `json:"duration_days"`
	Left            float64 `json:"left"`
	Width           float64 `json:"width"`
	Visible         bool    `json:"visible"`
}

// PositionItem maps an item's date range onto normalized horizontal
// coordinates within the config's visible window.
//
// Offsets are whole-day distances from the window start, clamped to the
// window. Duration has a one-day minimum so milestones render. When the
// width floor would push a bar past the right edge, the bar shifts left
// instead of shrinking below the floor.
func PositionItem(item Item, cfg Config) Position {
	totalDays := cfg.TotalDays()

	startOffset := clampDays(daysBetween(cfg.Start, item.Start), totalDays)
	endOffset := clampDays(daysBetween(cfg.Start, item.End), totalDays)

	duration := endOffset - startOffset
	if duration < 1 {
		duration = 1
	}

	left := float64(startOffset) / float64(totalDays)
	if left < 0 {
		left = 0
	}

	width := float64(duration) / float64(totalDays)
	if width < MinWidthFraction {
		width = MinWidthFraction
	}

	if left+width > 1 {
		left = 1 - width
	}

	visible := !dateOf(item.Start).After(cfg.End) && !dateOf(item.End).Before(cfg.Start)

	return Position{
		StartOffsetDays: startOffset,
		EndOffsetDays:   endOffset,
		DurationDays:    duration,
		Left:            left,
		Width:           width,
		Visible:         visible,
	}
}

func clampDays(days, totalDays int) int {
	if days < 0 {
		return 0
	}
	if days > totalDays {
		return totalDays
	}
	return days
}
