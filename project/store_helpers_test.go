package project

import (
	"testing"
	"time"
)

// testEpoch is the fixed wall clock used by test stores. Each call to
// the store clock advances one second so generated IDs stay unique.
var testEpoch = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore()
	tick := 0
	store.now = func() time.Time {
		tick++
		return testEpoch.Add(time.Duration(tick) * time.Second)
	}
	return store
}

// newTestProject creates a project to attach child entities to.
func newTestProject(t *testing.T, store *Store) *Project {
	t.Helper()

	created, err := store.CreateProject("Riverside Apartments", CreateProjectOptions{
		Status: StatusInProgress,
		Start:  date(2025, 1, 6),
		End:    date(2025, 12, 19),
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return created
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year, month, day int) *time.Time {
	value := date(year, month, day)
	return &value
}
