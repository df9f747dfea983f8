package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lintelhq/lintel/project"
)

const taskDateLayout = "2006-01-02"

// TaskData represents the data used to render the TOML template.
type TaskData struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// ID is the task ID (only for updates).
	ID string
	// Title is the task title.
	Title string
	// Project is the owning project ID.
	Project string
	// Trade is the discipline performing the work.
	Trade string
	// Assignee is the crew or person responsible.
	Assignee string
	// Start is the planned start date (YYYY-MM-DD, blank for due-date only).
	Start string
	// End is the due date (YYYY-MM-DD).
	End string
	// Progress is the completion percent (0-100).
	Progress int
	// Status is the task status.
	Status string
}

// DefaultCreateData returns TaskData with default values for creating a new task.
func DefaultCreateData() TaskData {
	return TaskData{
		IsUpdate: false,
		Status:   string(project.StatusNotStarted),
	}
}

// DataFromTask creates TaskData from an existing task for editing.
func DataFromTask(t *project.Task) TaskData {
	data := TaskData{
		IsUpdate: true,
		ID:       t.ID,
		Title:    t.Title,
		Project:  t.ProjectID,
		Trade:    t.Trade,
		Assignee: t.Assignee,
		End:      t.End.Format(taskDateLayout),
		Progress: t.Progress,
		Status:   string(t.Status),
	}
	if t.Start != nil {
		data.Start = t.Start.Format(taskDateLayout)
	}
	return data
}

var taskTemplate = template.Must(template.New("task").Parse(`title = {{ printf "%q" .Title }}
 project = {{ printf "%q" .Project }}
 trade = {{ printf "%q" .Trade }}
 assignee = {{ printf "%q" .Assignee }}
 start = {{ printf "%q" .Start }} # YYYY-MM-DD, leave blank when only a due date is known
 end = {{ printf "%q" .End }} # YYYY-MM-DD
 progress = {{ .Progress }} # 0-100
 status = {{ printf "%q" .Status }} # Not Started, In Progress, Completed, Blocked, On Hold
`))

// RenderTaskTOML renders the task data as a TOML string for editing.
func RenderTaskTOML(data TaskData) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask represents the parsed result from the TOML editor output.
type ParsedTask struct {
	Title    string `toml:"title"`
	Project  string `toml:"project"`
	Trade    string `toml:"trade"`
	Assignee string `toml:"assignee"`
	Start    string `toml:"start"`
	End      string `toml:"end"`
	Progress int    `toml:"progress"`
	Status   string `toml:"status"`

	// StartDate and EndDate are the parsed date fields.
	StartDate *time.Time `toml:"-"`
	EndDate   time.Time  `toml:"-"`

	// StatusValue is the parsed status field.
	StatusValue project.Status `toml:"-"`
}

// ParseTaskTOML parses the TOML content from the editor.
func ParseTaskTOML(content string) (*ParsedTask, error) {
	var parsed ParsedTask
	if _, err := toml.Decode(content, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	if err := project.ValidateTitle(parsed.Title); err != nil {
		return nil, err
	}
	if err := project.ValidateProgress(parsed.Progress); err != nil {
		return nil, err
	}

	status := strings.TrimSpace(parsed.Status)
	if status == "" {
		parsed.StatusValue = project.StatusNotStarted
	} else {
		value, err := project.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		parsed.StatusValue = value
	}

	if start := strings.TrimSpace(parsed.Start); start != "" {
		date, err := time.Parse(taskDateLayout, start)
		if err != nil {
			return nil, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", start)
		}
		parsed.StartDate = &date
	}

	end := strings.TrimSpace(parsed.End)
	if end == "" {
		return nil, fmt.Errorf("end date is required (YYYY-MM-DD)")
	}
	date, err := time.Parse(taskDateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: use YYYY-MM-DD", end)
	}
	parsed.EndDate = date

	return &parsed, nil
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "lintel-task-*.toml")
}

// EditTaskWithData opens the editor with pre-populated data and returns the parsed result.
func EditTaskWithData(data TaskData) (*ParsedTask, error) {
	content, err := RenderTaskTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited))
}

// ToCreateOptions converts a ParsedTask to project.CreateTaskOptions.
func (p *ParsedTask) ToCreateOptions() project.CreateTaskOptions {
	return project.CreateTaskOptions{
		ProjectID: p.Project,
		Trade:     p.Trade,
		Assignee:  p.Assignee,
		Start:     p.StartDate,
		End:       p.EndDate,
		Progress:  p.Progress,
		Status:    p.StatusValue,
	}
}

// ToUpdateOptions converts a ParsedTask to project.UpdateTaskOptions.
func (p *ParsedTask) ToUpdateOptions() project.UpdateTaskOptions {
	opts := project.UpdateTaskOptions{
		Title:    &p.Title,
		Trade:    &p.Trade,
		Assignee: &p.Assignee,
		End:      &p.EndDate,
		Progress: &p.Progress,
		Status:   &p.StatusValue,
	}
	if p.StartDate != nil {
		opts.Start = p.StartDate
	}
	return opts
}
