package timeline

// Category is the visual bucket an item renders in. It drives colors
// only; it is a lookup, not a state machine.
type Category string

const (
	// CategoryDone marks completed items.
	CategoryDone Category = "done"

	// CategoryBlocked marks blocked items.
	CategoryBlocked Category = "blocked"

	// CategoryActiveHigh marks in-flight items past the halfway point.
	CategoryActiveHigh Category = "active-high"

	// CategoryActiveLow marks in-flight items at or below the halfway point.
	CategoryActiveLow Category = "active-low"
)

// Completed and Blocked status literals recognized by Classify.
const (
	StatusCompleted = "Completed"
	StatusBlocked   = "Blocked"
)

// Classify maps a progress/status pair to its color category. Status
// wins over progress; the result is total over all inputs.
func Classify(progress int, status string) Category {
	switch status {
	case StatusCompleted:
		return CategoryDone
	case StatusBlocked:
		return CategoryBlocked
	}
	if progress > 50 {
		return CategoryActiveHigh
	}
	return CategoryActiveLow
}
