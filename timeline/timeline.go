// Package timeline computes Gantt chart layout geometry.
//
// Given a zoom level and a collection of dated items, the package
// produces the timeline header buckets (labels plus calendar-day
// boundaries) and, for each item, a normalized horizontal position and
// width expressed as fractions of the visible window. Rendering is left
// to callers: the package emits only numbers and label strings, never
// markup.
//
// Everything here is a pure function of its inputs. The reference date
// anchoring week mode is always supplied by the caller, so repeated
// calls with identical inputs produce identical output.
package timeline

import "time"

// Item is a task or milestone placed on the timeline. Start and End are
// calendar dates; Start == End represents a milestone. Callers with an
// item that has only a due date substitute End for the missing Start
// before building the Item.
type Item struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Start    time.Time `json:"start_date"`
	End      time.Time `json:"end_date"`
	Progress int       `json:"progress"`
	Status   string    `json:"status"`
}

// IsMilestone reports whether the item is a point-duration marker.
func (i Item) IsMilestone() bool {
	return dateOf(i.Start).Equal(dateOf(i.End))
}

// PositionedItem pairs an item with its computed geometry and color
// category.
type PositionedItem struct {
	Item
	Position
	Category Category `json:"category"`
}

// Layout is the full result of a timeline computation: the bucket
// configuration plus every input item positioned against it, in input
// order.
type Layout struct {
	Config Config           `json:"config"`
	Items  []PositionedItem `json:"items"`
}

// ComputeLayout builds the bucket configuration for the requested zoom
// level and positions and classifies every item against it. The only
// error condition is an invalid zoom level, rejected before any layout
// math runs.
func ComputeLayout(zoom Zoom, reference time.Time, year int, items []Item) (Layout, error) {
	cfg, err := NewConfig(zoom, reference, year)
	if err != nil {
		return Layout{}, err
	}

	positioned := make([]PositionedItem, 0, len(items))
	for _, item := range items {
		positioned = append(positioned, PositionedItem{
			Item:     item,
			Position: PositionItem(item, cfg),
			Category: Classify(item.Progress, item.Status),
		})
	}

	return Layout{Config: cfg, Items: positioned}, nil
}
