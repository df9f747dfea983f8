package timeline

import (
	"fmt"
	"strconv"
	"time"
)

// Bucket is one column of the timeline header: a fixed calendar period
// with inclusive day boundaries.
type Bucket struct {
	Label    string    `json:"label"`
	Sublabel string    `json:"sublabel"`
	Start    time.Time `json:"range_start"`
	End      time.Time `json:"range_end"`
}

// Days returns the inclusive day count of the bucket.
func (b Bucket) Days() int {
	return daysBetween(b.Start, b.End) + 1
}

// Config is the derived bucket configuration for a zoom level: the
// ordered, contiguous bucket sequence plus the overall visible window
// it spans. Configs are recomputed on every call, never cached.
type Config struct {
	Zoom    Zoom      `json:"zoom"`
	Buckets []Bucket  `json:"buckets"`
	Start   time.Time `json:"range_start"`
	End     time.Time `json:"range_end"`
}

// TotalDays returns the inclusive day count of the visible window,
// never less than 1.
func (c Config) TotalDays() int {
	total := daysBetween(c.Start, c.End) + 1
	if total < 1 {
		return 1
	}
	return total
}

// NewConfig builds the bucket sequence for a zoom level. Week mode is
// anchored to the most recent Sunday on or before reference; month and
// quarter modes cover the given year. A year of zero or less defaults
// to the reference date's year. Invalid zoom levels are rejected before
// any bucket is built.
func NewConfig(zoom Zoom, reference time.Time, year int) (Config, error) {
	if !zoom.IsValid() {
		return Config{}, invalidZoomError(zoom)
	}
	if year <= 0 {
		year = dateOf(reference).Year()
	}

	var buckets []Bucket
	switch zoom {
	case ZoomWeek:
		buckets = weekBuckets(reference)
	case ZoomMonth:
		buckets = monthBuckets(year)
	case ZoomQuarter:
		buckets = quarterBuckets(year)
	}

	return Config{
		Zoom:    zoom,
		Buckets: buckets,
		Start:   buckets[0].Start,
		End:     buckets[len(buckets)-1].End,
	}, nil
}

// weekBuckets returns eight contiguous 7-day buckets. Bucket 0 starts
// on the most recent Sunday on or before the reference date.
func weekBuckets(reference time.Time) []Bucket {
	anchor := dateOf(reference)
	anchor = anchor.AddDate(0, 0, -int(anchor.Weekday()))

	count := ZoomWeek.BucketCount()
	buckets := make([]Bucket, 0, count)
	for i := 0; i < count; i++ {
		start := anchor.AddDate(0, 0, 7*i)
		buckets = append(buckets, Bucket{
			Label:    fmt.Sprintf("Week %d", i+1),
			Sublabel: fmt.Sprintf("%d/%d", start.Day(), int(start.Month())),
			Start:    start,
			End:      start.AddDate(0, 0, 6),
		})
	}
	return buckets
}

// monthBuckets returns the twelve calendar months of year. Month ends
// come from rolling the next month's first day back one day, which
// keeps February correct in leap years.
func monthBuckets(year int) []Bucket {
	count := ZoomMonth.BucketCount()
	buckets := make([]Bucket, 0, count)
	for month := 1; month <= count; month++ {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		buckets = append(buckets, Bucket{
			Label:    start.Format("Jan"),
			Sublabel: strconv.Itoa(year),
			Start:    start,
			End:      start.AddDate(0, 1, -1),
		})
	}
	return buckets
}

// quarterBuckets returns the four calendar quarters of year.
func quarterBuckets(year int) []Bucket {
	count := ZoomQuarter.BucketCount()
	buckets := make([]Bucket, 0, count)
	for q := 0; q < count; q++ {
		start := time.Date(year, time.Month(3*q+1), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, -1)
		buckets = append(buckets, Bucket{
			Label:    fmt.Sprintf("Q%d", q+1),
			Sublabel: start.Format("Jan") + "-" + end.Format("Jan"),
			Start:    start,
			End:      end,
		})
	}
	return buckets
}

// dateOf truncates a timestamp to its calendar date at midnight UTC.
// All day arithmetic happens on these normalized dates so daylight
// saving shifts in the caller's location cannot skew day counts.
func dateOf(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day difference from a to b. Both are
// normalized to dates first; the result is negative when b precedes a.
func daysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)) / (24 * time.Hour))
}
