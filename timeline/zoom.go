package timeline

import (
	internalstrings "github.com/lintelhq/lintel/internal/strings"
)

// Zoom selects the timeline granularity. It controls how many buckets
// the header has and what calendar period each bucket covers.
type Zoom string

const (
	// ZoomWeek shows eight 7-day buckets anchored to the reference date.
	ZoomWeek Zoom = "week"

	// ZoomMonth shows the twelve calendar months of a year.
	ZoomMonth Zoom = "month"

	// ZoomQuarter shows the four calendar quarters of a year.
	ZoomQuarter Zoom = "quarter"
)

// ValidZooms returns all valid zoom values.
func ValidZooms() []Zoom {
	return []Zoom{ZoomWeek, ZoomMonth, ZoomQuarter}
}

// IsValid returns true if the zoom is a known valid value.
func (z Zoom) IsValid() bool {
	for _, valid := range ValidZooms() {
		if z == valid {
			return true
		}
	}
	return false
}

// BucketCount returns the number of header buckets for the zoom level,
// or 0 for an invalid zoom.
func (z Zoom) BucketCount() int {
	switch z {
	case ZoomWeek:
		return 8
	case ZoomMonth:
		return 12
	case ZoomQuarter:
		return 4
	default:
		return 0
	}
}

// ParseZoom normalizes user input into a Zoom, tolerating case and
// surrounding whitespace. Unknown values return ErrInvalidZoom.
func ParseZoom(value string) (Zoom, error) {
	zoom := Zoom(internalstrings.NormalizeLowerTrimSpace(value))
	if !zoom.IsValid() {
		return "", invalidZoomError(zoom)
	}
	return zoom, nil
}
