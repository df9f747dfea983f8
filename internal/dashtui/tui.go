// Package dashtui is the interactive terminal dashboard. It renders a
// two-tab layout (projects and tasks) with a list pane and a detail
// pane, all driven through the dashboard API client.
package dashtui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lintelhq/lintel/dash"
	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/project"
)

// timeNow is swapped in tests for deterministic overdue styling.
var timeNow = time.Now

type tabKind int

const (
	tabProjects tabKind = iota
	tabTasks
)

type focusPane int

const (
	focusList focusPane = iota
	focusDetail
)

type statusLevel int

const (
	statusNone statusLevel = iota
	statusInfo
	statusError
)

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalCompleteTask
	modalDiscardEdits
)

type model struct {
	ctx               context.Context
	client            *dash.Client
	width             int
	height            int
	activeTab         tabKind
	focus             focusPane
	projectList       list.Model
	taskList          list.Model
	projectDetail     projectDetailModel
	taskDetail        taskDetailModel
	modal             confirmModal
	status            string
	statusLevel       statusLevel
	selectedProjectID string
	selectedTaskID    string
	tailProjectID     string
	tailMessages      <-chan project.Message
	tailErrors        <-chan error
	tailCancel        context.CancelFunc
}

type confirmModal struct {
	kind        modalKind
	message     string
	confirmText string
	cancelText  string
	selected    int
}

// Run starts the dashboard TUI and blocks until the user quits.
func Run(ctx context.Context, client *dash.Client) error {
	if client == nil {
		return fmt.Errorf("dashboard client is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	program := tea.NewProgram(newModel(ctx, client), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func newModel(ctx context.Context, client *dash.Client) model {
	projectList := list.New(nil, newProjectItemDelegate(), 0, 0)
	projectList.Title = "Projects"
	projectList.SetShowStatusBar(false)
	projectList.SetFilteringEnabled(false)
	projectList.SetShowHelp(false)
	projectList.SetShowPagination(false)

	taskList := list.New(nil, newTaskItemDelegate(timeNow), 0, 0)
	taskList.Title = "Tasks"
	taskList.SetShowStatusBar(false)
	taskList.SetFilteringEnabled(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)

	return model{
		ctx:           ctx,
		client:        client,
		activeTab:     tabProjects,
		focus:         focusList,
		projectList:   projectList,
		taskList:      taskList,
		projectDetail: newProjectDetailModel(),
		taskDetail:    newTaskDetailModel(),
		modal:         confirmModal{kind: modalNone},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.loadProjectsCmd(), m.loadTasksCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.modal.kind != modalNone {
		return m.updateModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	case tea.KeyMsg:
		updated, cmd, handled := m.handleKey(msg)
		if handled {
			return updated, cmd
		}
		m = updated
	case projectsLoadedMsg:
		return m.handleProjectsLoaded(msg)
	case tasksLoadedMsg:
		m.handleTasksLoaded(msg)
	case taskSavedMsg:
		return m.handleTaskSaved(msg)
	case taskCompletedMsg:
		return m.handleTaskCompleted(msg)
	case messageTailMsg:
		return m.handleMessageTail(msg)
	case messageTailErrMsg:
		return m.handleMessageTailErr(msg)
	}

	var cmd tea.Cmd
	if m.activeTab == tabProjects {
		cmd = m.updateProjectsTab(msg)
	} else {
		cmd = m.updateTasksTab(msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading dashboard..."
	}
	helpLine := m.renderHelpLine()
	statusLine := m.renderStatusLine()
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)

	listContent := m.projectList.View()
	detailContent := m.projectDetail.View()
	if m.activeTab == tabTasks {
		listContent = m.taskList.View()
		detailContent = m.taskDetail.View()
	}

	listPane := m.renderPane(listContent, leftWidth, contentHeight, m.focus == focusList)
	detailPane := m.renderPane(detailContent, rightWidth, contentHeight, m.focus == focusDetail)
	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)

	view := strings.Join([]string{m.renderTabs(), helpLine, content, statusLine}, "\n")
	if m.modal.kind != modalNone {
		view = m.renderModalOverlay(view)
	}
	return view
}

func (m model) updateProjectsTab(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == focusList {
		m.projectList, cmd = m.projectList.Update(msg)
		if m.updateProjectSelection() {
			return tea.Batch(cmd, m.startMessageTail())
		}
		return cmd
	}

	var detailCmd tea.Cmd
	m.projectDetail, detailCmd = m.projectDetail.Update(msg)
	return detailCmd
}

func (m model) updateTasksTab(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == focusList {
		m.taskList, cmd = m.taskList.Update(msg)
		m.updateTaskSelection()
		return cmd
	}

	updated, detailCmd, saveRequested := m.taskDetail.Update(msg)
	m.taskDetail = updated
	if saveRequested {
		return tea.Batch(detailCmd, m.saveTaskCmd())
	}
	return detailCmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd, bool) {
	key := msg.String()
	if key == "?" && !(m.activeTab == tabTasks && m.focus == focusDetail) {
		return m.openHelp(), nil, true
	}

	if updated, cmd, handled := m.handleListNavigation(key); handled {
		return updated, cmd, true
	}

	switch key {
	case "ctrl+c":
		m.stopMessageTail()
		return m, tea.Quit, true
	case "q":
		if m.focus == focusList {
			m.stopMessageTail()
			return m, tea.Quit, true
		}
	case "tab":
		if m.focus == focusList {
			updated, cmd := m.switchTab()
			return updated, cmd, true
		}
	case "shift+tab", "backtab":
		if m.focus == focusList {
			updated, cmd := m.switchTab()
			return updated, cmd, true
		}
	case "1":
		updated, cmd := m.activateTab(tabProjects)
		return updated, cmd, true
	case "2":
		updated, cmd := m.activateTab(tabTasks)
		return updated, cmd, true
	case "[", "]":
		updated, cmd := m.switchTab()
		return updated, cmd, true
	case "enter":
		if m.focus == focusList {
			return m.enterDetail(), nil, true
		}
	case "esc":
		return m.exitDetail(), nil, true
	case "r":
		if m.focus == focusList {
			m.setStatus("Reloading", statusInfo)
			return m, tea.Batch(m.loadProjectsCmd(), m.loadTasksCmd()), true
		}
	case "c":
		if m.activeTab == tabTasks && m.focus == focusList {
			return m.startTaskDraft(), nil, true
		}
	case "d":
		if m.activeTab == tabTasks && m.focus == focusList {
			return m.promptCompleteTask(), nil, true
		}
	}

	return m, nil, false
}

func (m model) switchTab() (model, tea.Cmd) {
	if m.activeTab == tabProjects {
		return m.activateTab(tabTasks)
	}
	return m.activateTab(tabProjects)
}

func (m model) activateTab(target tabKind) (model, tea.Cmd) {
	if target == m.activeTab {
		return m, nil
	}
	if m.activeTab == tabProjects {
		m.stopMessageTail()
	}
	if m.focus == focusDetail {
		m = m.setFocus(focusList)
	}
	m.activeTab = target
	if m.activeTab == tabProjects {
		m.updateProjectSelection()
		return m, m.startMessageTail()
	}
	m.updateTaskSelection()
	return m, nil
}

func (m model) enterDetail() model {
	if m.focus == focusDetail {
		return m
	}
	return m.setFocus(focusDetail)
}

func (m model) exitDetail() model {
	if m.focus != focusDetail {
		return m
	}
	if m.activeTab == tabTasks && m.taskDetail.IsDirty() {
		m.modal = confirmModal{
			kind:        modalDiscardEdits,
			message:     "Discard unsaved task changes?",
			confirmText: "Discard",
			cancelText:  "Keep editing",
			selected:    1,
		}
		return m
	}
	return m.setFocus(focusList)
}

func (m model) setFocus(target focusPane) model {
	if m.focus == target {
		return m
	}
	m.focus = target
	if m.activeTab == tabTasks {
		if target == focusDetail {
			m.taskDetail.Focus()
		} else {
			m.taskDetail.Blur()
		}
	}
	return m
}

func (m model) startTaskDraft() model {
	for i, item := range m.taskList.Items() {
		if taskItem, ok := item.(taskItem); ok && taskItem.isDraft {
			m.taskList.Select(i)
			m.taskDetail.SetTask(taskItem.task, true)
			return m.setFocus(focusDetail)
		}
	}

	draft := project.Task{Status: project.StatusNotStarted}
	if m.selectedProjectID != "" {
		draft.ProjectID = m.selectedProjectID
	}
	items := append([]list.Item{taskItem{task: draft, isDraft: true}}, m.taskList.Items()...)
	m.taskList.SetItems(items)
	m.taskList.Select(0)
	m.selectedTaskID = ""
	m.taskDetail.SetTask(draft, true)
	m.setStatus("Editing new task", statusInfo)
	return m.setFocus(focusDetail)
}

func (m model) promptCompleteTask() model {
	item, ok := m.currentTaskItem()
	if !ok || item.isDraft || item.task.ID == "" {
		m.setStatus("Save the task before completing it", statusError)
		return m
	}
	if item.task.Status == project.StatusCompleted {
		m.setStatus("Task is already completed", statusInfo)
		return m
	}
	m.modal = confirmModal{
		kind:        modalCompleteTask,
		message:     fmt.Sprintf("Mark task %s as completed?", item.task.ID),
		confirmText: "Complete",
		cancelText:  "Cancel",
		selected:    1,
	}
	return m
}

func (m *model) updateProjectSelection() bool {
	item, ok := m.currentProjectItem()
	selectedID := ""
	if ok {
		selectedID = item.project.ID
	}
	if selectedID == m.selectedProjectID && ok {
		return false
	}
	if ok {
		m.projectDetail.SetProject(item.project)
	} else {
		m.projectDetail.SetProject(project.Project{})
	}
	m.selectedProjectID = selectedID
	m.stopMessageTail()
	return ok && selectedID != ""
}

func (m *model) updateTaskSelection() {
	item, ok := m.currentTaskItem()
	selectedID := ""
	if ok && !item.isDraft {
		selectedID = item.task.ID
	}
	if selectedID == m.selectedTaskID && ok {
		return
	}
	if ok {
		m.taskDetail.SetTask(item.task, item.isDraft)
	} else {
		m.taskDetail.SetTask(project.Task{}, false)
	}
	m.selectedTaskID = selectedID
}

func (m model) handleProjectsLoaded(msg projectsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Project load failed: %v", msg.err), statusError)
		return m, nil
	}
	items := make([]list.Item, 0, len(msg.projects))
	for _, item := range msg.projects {
		items = append(items, projectItem{project: item})
	}
	m.projectList.SetItems(items)
	if m.selectedProjectID != "" {
		m.selectProjectByID(m.selectedProjectID)
	}
	if len(m.projectList.Items()) > 0 && m.projectList.Index() < 0 {
		m.projectList.Select(0)
	}
	if m.updateProjectSelection() {
		return m, m.startMessageTail()
	}
	return m, nil
}

func (m *model) handleTasksLoaded(msg tasksLoadedMsg) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Task load failed: %v", msg.err), statusError)
		return
	}
	ordered := orderTasksForDisplay(msg.tasks)
	items := make([]list.Item, 0, len(ordered))
	for _, item := range ordered {
		items = append(items, taskItem{task: item})
	}
	if m.taskDetail.isDraft {
		items = append([]list.Item{taskItem{task: m.taskDetail.task, isDraft: true}}, items...)
	}
	m.taskList.SetItems(items)
	if m.selectedTaskID != "" {
		m.selectTaskByID(m.selectedTaskID)
	}
	if len(m.taskList.Items()) > 0 && m.taskList.Index() < 0 {
		m.taskList.Select(0)
	}
	m.updateTaskSelection()
}

func (m model) handleTaskSaved(msg taskSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), statusError)
		return m, nil
	}
	m.taskDetail.SetTask(msg.task, false)
	m.selectedTaskID = msg.task.ID
	m.setStatus("Task saved", statusInfo)
	return m, m.loadTasksCmd()
}

func (m model) handleTaskCompleted(msg taskCompletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Complete failed: %v", msg.err), statusError)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Completed task %s", msg.task.ID), statusInfo)
	return m, m.loadTasksCmd()
}

func (m model) handleMessageTail(msg messageTailMsg) (tea.Model, tea.Cmd) {
	if msg.projectID != m.tailProjectID {
		return m, nil
	}
	m.projectDetail.AppendMessage(msg.message)
	return m, m.waitForMessageCmd()
}

func (m model) handleMessageTailErr(msg messageTailErrMsg) (tea.Model, tea.Cmd) {
	if msg.projectID != m.tailProjectID {
		return m, nil
	}
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("Site log stream error: %v", msg.err), statusError)
	}
	return m, nil
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.modal.kind == modalHelp {
		switch key.String() {
		case "?", "esc":
			m.modal = confirmModal{kind: modalNone}
			return m, nil
		case "ctrl+c", "q":
			m.stopMessageTail()
			return m, tea.Quit
		}
		return m, nil
	}
	selection := m.modal.selected
	switch key.String() {
	case "left", "right", "tab", "shift+tab", "backtab":
		if selection == 0 {
			selection = 1
		} else {
			selection = 0
		}
		m.modal.selected = selection
		return m, nil
	case "enter":
		confirm := selection == 0
		return m.resolveModal(confirm)
	case "esc":
		return m.resolveModal(false)
	}
	return m, nil
}

func (m model) resolveModal(confirm bool) (tea.Model, tea.Cmd) {
	kind := m.modal.kind
	m.modal = confirmModal{kind: modalNone}
	if !confirm {
		return m, nil
	}
	switch kind {
	case modalCompleteTask:
		return m, m.completeTaskCmd()
	case modalDiscardEdits:
		m = m.discardTaskEdits()
		return m, nil
	default:
		return m, nil
	}
}

func (m model) discardTaskEdits() model {
	if m.taskDetail.isDraft {
		items := make([]list.Item, 0, len(m.taskList.Items()))
		for _, item := range m.taskList.Items() {
			if taskItem, ok := item.(taskItem); ok && taskItem.isDraft {
				continue
			}
			items = append(items, item)
		}
		m.taskList.SetItems(items)
		m.taskDetail.SetTask(project.Task{}, false)
		if len(items) > 0 {
			m.taskList.Select(0)
		}
		m.selectedTaskID = ""
	} else {
		if item, ok := m.currentTaskItem(); ok {
			m.taskDetail.SetTask(item.task, false)
		}
	}
	m.taskDetail.Blur()
	m.focus = focusList
	m.setStatus("Edits discarded", statusInfo)
	return m
}

func (m model) currentProjectItem() (projectItem, bool) {
	item := m.projectList.SelectedItem()
	if item == nil {
		return projectItem{}, false
	}
	current, ok := item.(projectItem)
	return current, ok
}

func (m model) currentTaskItem() (taskItem, bool) {
	item := m.taskList.SelectedItem()
	if item == nil {
		return taskItem{}, false
	}
	current, ok := item.(taskItem)
	return current, ok
}

func (m *model) resize() {
	contentHeight := m.height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}
	leftWidth, rightWidth := splitWidths(m.width)
	listHeight := contentHeight - 2
	if listHeight < 1 {
		listHeight = 1
	}
	listWidth := leftWidth - 4
	if listWidth < 1 {
		listWidth = 1
	}
	innerDetailWidth := rightWidth - 4
	if innerDetailWidth < 1 {
		innerDetailWidth = 1
	}
	innerDetailHeight := contentHeight - 2
	if innerDetailHeight < 1 {
		innerDetailHeight = 1
	}
	m.projectList.SetSize(listWidth, listHeight)
	m.taskList.SetSize(listWidth, listHeight)
	m.projectDetail.SetSize(innerDetailWidth, innerDetailHeight)
	m.taskDetail.SetSize(innerDetailWidth, innerDetailHeight)
}

func splitWidths(width int) (int, int) {
	left := width / 3
	if left < 30 {
		left = 30
	}
	if left > width-20 {
		left = width / 2
	}
	right := width - left
	if right < 20 {
		right = 20
		left = width - right
	}
	return left, right
}

func (m model) renderTabs() string {
	labels := []string{"[1] Projects", "[2] Tasks"}
	parts := make([]string, 0, len(labels))
	for i, label := range labels {
		style := tabInactiveStyle
		if (i == 0 && m.activeTab == tabProjects) || (i == 1 && m.activeTab == tabTasks) {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(label))
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	helpHint := valueMuted.Render("Press ? for help")
	spacerWidth := m.width - lipgloss.Width(content) - lipgloss.Width(helpHint)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := strings.Repeat(" ", spacerWidth)
	return tabBarStyle.Width(m.width).Render(content + spacer + helpHint)
}

func (m model) renderPane(content string, width, height int, focused bool) string {
	style := paneStyle
	if focused {
		style = paneActiveStyle
	}
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return style.Width(width).Height(height).Render(content)
}

func (m model) renderStatusLine() string {
	text := m.status
	if internalstrings.IsBlank(text) {
		return ""
	}
	style := valueMuted
	if m.statusLevel == statusError {
		style = statusErrorStyle
	} else if m.statusLevel == statusInfo {
		style = statusSuccessStyle
	}
	return style.Render(text)
}

func (m model) renderHelpLine() string {
	text := internalstrings.TrimSpace(m.helpSummary())
	if text == "" {
		return ""
	}
	return helpBarStyle.Width(m.width).Render(truncateText(text, m.width))
}

func (m model) helpSummary() string {
	if m.activeTab == tabTasks {
		if m.focus == focusDetail {
			return "Keys: tab next field | shift+tab prev | ctrl+s save | esc back | pgup/pgdown scroll"
		}
		return "Keys: up/down move | enter edit | c new | d complete | r reload | tab switch tabs | ? help | q quit"
	}
	if m.focus == focusDetail {
		return "Keys: up/down/pgup/pgdown scroll | esc back | ? help | q quit"
	}
	return "Keys: up/down move | enter detail | r reload | tab switch tabs | ? help | q quit"
}

func (m *model) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
}

func (m model) renderModalOverlay(content string) string {
	if m.modal.kind == modalNone {
		return content
	}
	modal := m.modalView()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func (m model) modalView() string {
	if m.modal.kind == modalHelp {
		modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
		return modalStyle.Render(m.helpContent())
	}
	buttons := make([]string, 0, 2)
	for i, option := range []string{m.modal.confirmText, m.modal.cancelText} {
		style := valueMuted
		if i == m.modal.selected {
			style = selectedText
		}
		buttons = append(buttons, style.Render("["+option+"]"))
	}
	content := strings.Join([]string{m.modal.message, "", strings.Join(buttons, " ")}, "\n")
	modalStyle := lipgloss.NewStyle().Border(borderASCII).Padding(1, 2)
	return modalStyle.Render(content)
}

func (m model) handleListNavigation(key string) (model, tea.Cmd, bool) {
	if m.focus != focusList {
		return m, nil, false
	}
	switch key {
	case "up", "k":
		return m.moveListSelection(-1)
	case "down", "j":
		return m.moveListSelection(1)
	case "home":
		return m.moveListSelection(-1 * len(m.activeItems()))
	case "end":
		return m.moveListSelection(len(m.activeItems()))
	}
	return m, nil, false
}

func (m model) moveListSelection(delta int) (model, tea.Cmd, bool) {
	items := m.activeItems()
	if len(items) == 0 {
		return m, nil, true
	}
	current := m.activeIndex()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	if next == current {
		return m, nil, true
	}
	if m.activeTab == tabTasks {
		m.taskList.Select(next)
		m.updateTaskSelection()
		return m, nil, true
	}
	m.projectList.Select(next)
	if m.updateProjectSelection() {
		return m, m.startMessageTail(), true
	}
	return m, nil, true
}

func (m model) activeItems() []list.Item {
	if m.activeTab == tabTasks {
		return m.taskList.Items()
	}
	return m.projectList.Items()
}

func (m model) activeIndex() int {
	if m.activeTab == tabTasks {
		return m.taskList.Index()
	}
	return m.projectList.Index()
}

func (m model) openHelp() model {
	m.modal = confirmModal{kind: modalHelp}
	return m
}

func (m model) helpContent() string {
	sections := []string{
		labelStyle.Render("Global"),
		"q or ctrl+c: quit",
		"[ or ] / 1 or 2 / tab: switch tabs",
		"r: reload from the server",
		"?: toggle help",
		"",
		labelStyle.Render("Navigation"),
		"up/down or j/k: move selection",
		"enter: focus detail pane",
		"esc: return to list",
		"",
		labelStyle.Render("Tasks"),
		"c: create task",
		"d: mark task completed",
		"ctrl+s: save task",
		"tab/shift+tab: next/previous field",
		"",
		labelStyle.Render("Detail Scroll"),
		"pgup/pgdown/home/end: scroll detail",
		"",
		labelStyle.Render("Help"),
		"press ? or esc to close",
	}
	return strings.Join(sections, "\n")
}

func (m model) loadProjectsCmd() tea.Cmd {
	return func() tea.Msg {
		projects, err := m.client.ListProjects(m.ctx, project.ProjectFilter{})
		return projectsLoadedMsg{projects: projects, err: err}
	}
}

func (m model) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.client.ListTasks(m.ctx, project.TaskFilter{})
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m model) saveTaskCmd() tea.Cmd {
	return func() tea.Msg {
		if m.taskDetail.isDraft {
			title, opts, err := m.taskDetail.buildCreateOptions()
			if err != nil {
				return taskSavedMsg{err: err}
			}
			created, err := m.client.CreateTask(m.ctx, title, opts)
			if err != nil {
				return taskSavedMsg{err: err}
			}
			return taskSavedMsg{task: *created}
		}

		opts, err := m.taskDetail.buildUpdateOptions()
		if err != nil {
			return taskSavedMsg{err: err}
		}
		updated, err := m.client.UpdateTask(m.ctx, m.taskDetail.task.ID, opts)
		if err != nil {
			return taskSavedMsg{err: err}
		}
		return taskSavedMsg{task: *updated}
	}
}

func (m model) completeTaskCmd() tea.Cmd {
	item, ok := m.currentTaskItem()
	if !ok || item.task.ID == "" {
		return func() tea.Msg { return taskCompletedMsg{err: fmt.Errorf("no task selected")} }
	}
	return func() tea.Msg {
		status := project.StatusCompleted
		updated, err := m.client.UpdateTask(m.ctx, item.task.ID, project.UpdateTaskOptions{Status: &status})
		if err != nil {
			return taskCompletedMsg{err: err}
		}
		return taskCompletedMsg{task: *updated}
	}
}

func (m *model) startMessageTail() tea.Cmd {
	projectID := m.selectedProjectID
	if projectID == "" || m.client == nil {
		return nil
	}
	if m.tailProjectID == projectID {
		return m.waitForMessageCmd()
	}
	m.stopMessageTail()
	ctx, cancel := context.WithCancel(m.ctx)
	m.tailCancel = cancel
	m.tailProjectID = projectID
	m.tailMessages, m.tailErrors = m.client.StreamMessages(ctx, projectID)
	return m.waitForMessageCmd()
}

func (m model) waitForMessageCmd() tea.Cmd {
	if m.tailMessages == nil || m.tailErrors == nil {
		return nil
	}
	projectID := m.tailProjectID
	return func() tea.Msg {
		select {
		case message, ok := <-m.tailMessages:
			if !ok {
				return messageTailErrMsg{projectID: projectID}
			}
			return messageTailMsg{projectID: projectID, message: message}
		case err, ok := <-m.tailErrors:
			if !ok {
				return messageTailErrMsg{projectID: projectID}
			}
			return messageTailErrMsg{projectID: projectID, err: err}
		}
	}
}

func (m *model) stopMessageTail() {
	if m.tailCancel != nil {
		m.tailCancel()
		m.tailCancel = nil
	}
	m.tailProjectID = ""
	m.tailMessages = nil
	m.tailErrors = nil
}

func (m *model) selectProjectByID(id string) {
	if id == "" {
		return
	}
	for i, item := range m.projectList.Items() {
		projectItem, ok := item.(projectItem)
		if ok && projectItem.project.ID == id {
			m.projectList.Select(i)
			return
		}
	}
}

func (m *model) selectTaskByID(id string) {
	if id == "" {
		return
	}
	for i, item := range m.taskList.Items() {
		taskItem, ok := item.(taskItem)
		if ok && taskItem.task.ID == id {
			m.taskList.Select(i)
			return
		}
	}
}

type projectsLoadedMsg struct {
	projects []project.Project
	err      error
}

type tasksLoadedMsg struct {
	tasks []project.Task
	err   error
}

type taskSavedMsg struct {
	task project.Task
	err  error
}

type taskCompletedMsg struct {
	task project.Task
	err  error
}

type messageTailMsg struct {
	projectID string
	message   project.Message
}

type messageTailErrMsg struct {
	projectID string
	err       error
}
