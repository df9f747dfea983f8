package project

import (
	"fmt"

	"github.com/lintelhq/lintel/timeline"
)

// GanttItems converts a project's tasks and milestones into timeline
// items, in creation order with tasks before milestones. A task with
// only a due date is treated as starting and ending on that date. An
// empty projectID includes every project.
func (s *Store) GanttItems(projectID string) ([]timeline.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if projectID != "" && !s.hasProject(projectID) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProject, projectID)
	}

	items := make([]timeline.Item, 0, len(s.tasks)+len(s.milestones))
	for _, task := range s.tasks {
		if projectID != "" && task.ProjectID != projectID {
			continue
		}
		items = append(items, timeline.Item{
			ID:       task.ID,
			Title:    task.Title,
			Start:    task.EffectiveStart(),
			End:      task.End,
			Progress: task.Progress,
			Status:   string(task.Status),
		})
	}
	for _, milestone := range s.milestones {
		if projectID != "" && milestone.ProjectID != projectID {
			continue
		}
		status := string(StatusNotStarted)
		progress := 0
		if milestone.Completed {
			status = string(StatusCompleted)
			progress = MaxProgress
		}
		items = append(items, timeline.Item{
			ID:       milestone.ID,
			Title:    milestone.Title,
			Start:    milestone.Target,
			End:      milestone.Target,
			Progress: progress,
			Status:   status,
		})
	}
	return items, nil
}
