package dashtui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/project"
	"github.com/mattn/go-runewidth"
)

const taskDateLayout = "2006-01-02"

type taskItem struct {
	task    project.Task
	isDraft bool
}

func (item taskItem) FilterValue() string {
	if item.isDraft {
		return "draft"
	}
	return item.task.Title
}

type taskItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	doneStyle     lipgloss.Style
	now           func() time.Time
}

func newTaskItemDelegate(now func() time.Time) taskItemDelegate {
	return taskItemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("22")),
		doneStyle:     valueMuted,
		now:           now,
	}
}

func (d taskItemDelegate) Height() int                             { return 1 }
func (d taskItemDelegate) Spacing() int                            { return 0 }
func (d taskItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(taskItem)
	if !ok {
		return
	}

	line := formatTaskItem(item, m.Width())
	style := d.normalStyle
	if index == m.Index() {
		style = d.selectedStyle
	} else if !item.isDraft && item.task.Status == project.StatusCompleted {
		style = d.doneStyle
	} else if !item.isDraft && item.task.Overdue(d.now()) {
		style = overdueStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatTaskItem(item taskItem, width int) string {
	id := item.task.ID
	if item.isDraft {
		id = "draft"
	}
	title := strings.TrimSpace(item.task.Title)
	if title == "" {
		title = "(untitled)"
	}
	meta := fmt.Sprintf("%s %d%%", item.task.Status, item.task.Progress)
	if item.task.Trade != "" {
		meta = item.task.Trade + " " + meta
	}
	line := fmt.Sprintf("%s  %s  [%s]", id, title, meta)
	return truncateText(line, width)
}

// orderTasksForDisplay groups active work first, then blocked, then
// completed, keeping store order within each group.
func orderTasksForDisplay(tasks []project.Task) []project.Task {
	if len(tasks) == 0 {
		return nil
	}
	active := make([]project.Task, 0, len(tasks))
	blocked := make([]project.Task, 0, len(tasks))
	done := make([]project.Task, 0, len(tasks))
	for _, item := range tasks {
		switch item.Status {
		case project.StatusBlocked:
			blocked = append(blocked, item)
		case project.StatusCompleted:
			done = append(done, item)
		default:
			active = append(active, item)
		}
	}
	ordered := make([]project.Task, 0, len(tasks))
	ordered = append(ordered, active...)
	ordered = append(ordered, blocked...)
	ordered = append(ordered, done...)
	return ordered
}

type taskFieldKind int

const (
	fieldTitle taskFieldKind = iota
	fieldProject
	fieldTrade
	fieldAssignee
	fieldStart
	fieldEnd
	fieldProgress
	fieldStatus
)

type taskField struct {
	kind  taskFieldKind
	label string
	input textinput.Model
}

func newTaskField(kind taskFieldKind, label, value string) taskField {
	input := textinput.New()
	input.SetValue(value)
	input.Prompt = ""
	if kind == fieldTitle {
		input.CharLimit = project.MaxTitleLength
	}
	return taskField{kind: kind, label: label, input: input}
}

func (field taskField) Value() string {
	return field.input.Value()
}

func (field taskField) Focus() taskField {
	field.input.Focus()
	return field
}

func (field taskField) Blur() taskField {
	field.input.Blur()
	return field
}

func (field taskField) Update(msg tea.Msg) (taskField, tea.Cmd) {
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return field, cmd
}

type taskDetailModel struct {
	task       project.Task
	isDraft    bool
	fields     []taskField
	fieldIndex int
	focused    bool
	dirty      bool
	viewport   viewport.Model
}

func newTaskDetailModel() taskDetailModel {
	return taskDetailModel{viewport: viewport.New(0, 0)}
}

func (model *taskDetailModel) SetTask(item project.Task, isDraft bool) {
	wasFocused := model.focused
	model.task = item
	model.isDraft = isDraft
	model.fields = buildTaskFields(item)
	model.fieldIndex = 0
	model.focused = false
	model.dirty = false
	if wasFocused {
		model.focused = true
		if len(model.fields) > 0 {
			model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Focus()
		}
	}
	model.refreshViewport(true)
}

func (model *taskDetailModel) SetSize(width, height int) {
	inputWidth := width - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i, field := range model.fields {
		field.input.Width = inputWidth
		model.fields[i] = field
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	model.viewport.Width = width
	model.viewport.Height = height
	model.refreshViewport(false)
}

func (model *taskDetailModel) Focus() {
	if model.focused {
		return
	}
	model.focused = true
	if len(model.fields) > 0 {
		model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Focus()
	}
	model.refreshViewport(false)
}

func (model *taskDetailModel) Blur() {
	model.focused = false
	for i := range model.fields {
		model.fields[i] = model.fields[i].Blur()
	}
	model.refreshViewport(false)
}

func (model taskDetailModel) IsDirty() bool {
	return model.dirty
}

func (model taskDetailModel) Update(msg tea.Msg) (taskDetailModel, tea.Cmd, bool) {
	if !model.focused {
		return model, nil, false
	}

	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab":
			model = model.advanceField(1)
			return model, nil, false
		case "shift+tab", "backtab":
			model = model.advanceField(-1)
			return model, nil, false
		case "ctrl+s":
			return model, nil, true
		case "pgup", "pgdown", "home", "end":
			model.viewport, cmd = model.viewport.Update(key)
			return model, cmd, false
		}
	}

	if _, ok := msg.(tea.MouseMsg); ok {
		model.viewport, cmd = model.viewport.Update(msg)
		return model, cmd, false
	}

	if len(model.fields) == 0 {
		return model, nil, false
	}

	model.fields[model.fieldIndex], cmd = model.fields[model.fieldIndex].Update(msg)
	model.dirty = model.computeDirty()
	model.refreshViewport(false)
	return model, cmd, false
}

func (model taskDetailModel) advanceField(delta int) taskDetailModel {
	if len(model.fields) == 0 {
		return model
	}
	model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Blur()
	model.fieldIndex = (model.fieldIndex + delta + len(model.fields)) % len(model.fields)
	model.fields[model.fieldIndex] = model.fields[model.fieldIndex].Focus()
	model.refreshViewport(false)
	return model
}

func (model taskDetailModel) computeDirty() bool {
	values := model.valuesByKind()
	if strings.TrimSpace(values[fieldTitle]) != strings.TrimSpace(model.task.Title) {
		return true
	}
	if strings.TrimSpace(values[fieldTrade]) != model.task.Trade {
		return true
	}
	if strings.TrimSpace(values[fieldAssignee]) != model.task.Assignee {
		return true
	}
	if strings.TrimSpace(values[fieldStart]) != formatDatePtr(model.task.Start) {
		return true
	}
	if strings.TrimSpace(values[fieldEnd]) != formatDate(model.task.End) {
		return true
	}
	if strings.TrimSpace(values[fieldProgress]) != strconv.Itoa(model.task.Progress) {
		return true
	}
	if strings.TrimSpace(values[fieldStatus]) != string(model.task.Status) {
		return true
	}
	return false
}

func (model taskDetailModel) valuesByKind() map[taskFieldKind]string {
	values := make(map[taskFieldKind]string, len(model.fields))
	for _, field := range model.fields {
		values[field.kind] = field.Value()
	}
	return values
}

func (model taskDetailModel) View() string {
	return model.viewport.View()
}

func (model *taskDetailModel) refreshViewport(reset bool) {
	model.viewport.SetContent(model.renderContent())
	if reset {
		model.viewport.GotoTop()
	}
}

func (model taskDetailModel) renderContent() string {
	if model.task.ID == "" && !model.isDraft {
		return valueMuted.Render("No task selected")
	}

	lines := make([]string, 0, len(model.fields)+8)
	lines = append(lines, labelStyle.Render("Editable"))
	for _, field := range model.fields {
		lines = append(lines, fmt.Sprintf("%s: %s", labelStyle.Render(field.label), field.input.View()))
	}

	lines = append(lines, "")
	lines = append(lines, labelStyle.Render("Read-only"))
	lines = append(lines, formatDetailRow("ID", model.task.ID))
	lines = append(lines, formatDetailRow("Created", formatTimestamp(model.task.CreatedAt)))
	lines = append(lines, formatDetailRow("Updated", formatTimestamp(model.task.UpdatedAt)))
	lines = append(lines, formatDetailRow("Completed", formatTimestampPtr(model.task.CompletedAt)))
	lines = append(lines, formatDetailRow("Blocked", formatTimestampPtr(model.task.BlockedAt)))

	content := strings.Join(lines, "\n")
	width := model.viewport.Width
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

func (model taskDetailModel) buildCreateOptions() (string, project.CreateTaskOptions, error) {
	values := model.valuesByKind()
	title := strings.TrimSpace(values[fieldTitle])
	start, err := parseOptionalDate(values[fieldStart])
	if err != nil {
		return "", project.CreateTaskOptions{}, err
	}
	end, err := parseRequiredDate(values[fieldEnd], "due date")
	if err != nil {
		return "", project.CreateTaskOptions{}, err
	}
	progress, err := parseProgress(values[fieldProgress])
	if err != nil {
		return "", project.CreateTaskOptions{}, err
	}
	status, err := parseTaskStatus(values[fieldStatus])
	if err != nil {
		return "", project.CreateTaskOptions{}, err
	}
	return title, project.CreateTaskOptions{
		ProjectID: strings.TrimSpace(values[fieldProject]),
		Trade:     strings.TrimSpace(values[fieldTrade]),
		Assignee:  strings.TrimSpace(values[fieldAssignee]),
		Start:     start,
		End:       end,
		Progress:  progress,
		Status:    status,
	}, nil
}

func (model taskDetailModel) buildUpdateOptions() (project.UpdateTaskOptions, error) {
	values := model.valuesByKind()
	start, err := parseOptionalDate(values[fieldStart])
	if err != nil {
		return project.UpdateTaskOptions{}, err
	}
	end, err := parseRequiredDate(values[fieldEnd], "due date")
	if err != nil {
		return project.UpdateTaskOptions{}, err
	}
	progress, err := parseProgress(values[fieldProgress])
	if err != nil {
		return project.UpdateTaskOptions{}, err
	}
	status, err := parseTaskStatus(values[fieldStatus])
	if err != nil {
		return project.UpdateTaskOptions{}, err
	}
	title := strings.TrimSpace(values[fieldTitle])
	trade := strings.TrimSpace(values[fieldTrade])
	assignee := strings.TrimSpace(values[fieldAssignee])
	return project.UpdateTaskOptions{
		Title:    &title,
		Trade:    &trade,
		Assignee: &assignee,
		Start:    start,
		End:      &end,
		Progress: &progress,
		Status:   &status,
	}, nil
}

func buildTaskFields(item project.Task) []taskField {
	status := item.Status
	if status == "" {
		status = project.StatusNotStarted
	}
	return []taskField{
		newTaskField(fieldTitle, "Title", item.Title),
		newTaskField(fieldProject, "Project", item.ProjectID),
		newTaskField(fieldTrade, "Trade", item.Trade),
		newTaskField(fieldAssignee, "Assignee", item.Assignee),
		newTaskField(fieldStart, "Start", formatDatePtr(item.Start)),
		newTaskField(fieldEnd, "Due", formatDate(item.End)),
		newTaskField(fieldProgress, "Progress", strconv.Itoa(item.Progress)),
		newTaskField(fieldStatus, "Status", string(status)),
	}
}

func parseTaskStatus(value string) (project.Status, error) {
	if internalstrings.IsBlank(value) {
		return project.StatusNotStarted, nil
	}
	return project.ParseStatus(value)
}

func parseProgress(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	trimmed = strings.TrimSuffix(trimmed, "%")
	progress, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid progress %q", value)
	}
	if progress < 0 || progress > project.MaxProgress {
		return 0, fmt.Errorf("progress must be between 0 and %d", project.MaxProgress)
	}
	return progress, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "-" {
		return nil, nil
	}
	parsed, err := time.Parse(taskDateLayout, trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return &parsed, nil
}

func parseRequiredDate(value, label string) (time.Time, error) {
	parsed, err := time.Parse(taskDateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (want YYYY-MM-DD)", label, value)
	}
	return parsed, nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(taskDateLayout)
}

func formatDatePtr(value *time.Time) string {
	if value == nil {
		return ""
	}
	return formatDate(*value)
}

func formatDetailRow(label, value string) string {
	return fmt.Sprintf("%s: %s", labelStyle.Render(label), valueMuted.Render(valueOrDash(value)))
}

func truncateText(value string, width int) string {
	if width <= 0 {
		return value
	}
	return runewidth.Truncate(value, width, "...")
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04:05")
}

func formatTimestampPtr(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return formatTimestamp(*value)
}

func valueOrDash(value string) string {
	if internalstrings.IsBlank(value) {
		return "-"
	}
	return value
}
