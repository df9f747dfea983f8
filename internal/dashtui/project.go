package dashtui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/project"
)

type projectItem struct {
	project project.Project
}

func (item projectItem) FilterValue() string {
	return item.project.Name
}

type projectItemDelegate struct {
	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
}

func newProjectItemDelegate() projectItemDelegate {
	return projectItemDelegate{
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("22")),
	}
}

func (d projectItemDelegate) Height() int                             { return 1 }
func (d projectItemDelegate) Spacing() int                            { return 0 }
func (d projectItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d projectItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(projectItem)
	if !ok {
		return
	}

	line := formatProjectItem(item, m.Width())
	style := d.normalStyle
	if index == m.Index() {
		style = d.selectedStyle
	}
	fmt.Fprint(w, style.Render(line))
}

func formatProjectItem(item projectItem, width int) string {
	line := fmt.Sprintf("%s  %s  [%s]", item.project.ID, item.project.Name, item.project.Status)
	return truncateText(line, width)
}

// projectDetailModel shows a project's facts and its site log. The log
// tail streams in live while the project stays selected.
type projectDetailModel struct {
	project  project.Project
	log      []string
	viewport viewport.Model
	active   bool
}

func newProjectDetailModel() projectDetailModel {
	return projectDetailModel{viewport: viewport.New(0, 0)}
}

func (model *projectDetailModel) SetSize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	model.viewport.Width = width
	model.viewport.Height = height
	model.viewport.SetContent(model.renderContent())
}

func (model *projectDetailModel) SetProject(item project.Project) {
	model.project = item
	model.log = nil
	model.active = item.ID != ""
	model.viewport.SetContent(model.renderContent())
	model.viewport.GotoTop()
}

func (model *projectDetailModel) AppendMessage(message project.Message) {
	stickToBottom := model.viewport.AtBottom()
	line := fmt.Sprintf("%s  %s: %s",
		message.CreatedAt.Format("01-02 15:04"), message.Author, message.Body)
	model.log = append(model.log, line)
	model.viewport.SetContent(model.renderContent())
	if stickToBottom {
		model.viewport.GotoBottom()
	}
}

func (model projectDetailModel) Update(msg tea.Msg) (projectDetailModel, tea.Cmd) {
	model.viewport, _ = model.viewport.Update(msg)
	return model, nil
}

func (model projectDetailModel) View() string {
	if !model.active {
		return valueMuted.Render("No project selected")
	}
	return model.viewport.View()
}

func (model projectDetailModel) renderContent() string {
	if model.project.ID == "" {
		return ""
	}
	lines := []string{
		labelStyle.Render(model.project.Name),
		formatDetailRow("ID", model.project.ID),
		formatDetailRow("Client", model.project.Client),
		formatDetailRow("Location", model.project.Location),
		formatDetailRow("Status", string(model.project.Status)),
		formatDetailRow("Budget", formatBudget(model.project.BudgetCents)),
		formatDetailRow("Start", formatDate(model.project.Start)),
		formatDetailRow("End", formatDate(model.project.End)),
	}
	if !internalstrings.IsBlank(model.project.Description) {
		lines = append(lines, "", model.project.Description)
	}
	lines = append(lines, "", labelStyle.Render("Site log"))
	if len(model.log) == 0 {
		lines = append(lines, valueMuted.Render("-"))
	} else {
		lines = append(lines, model.log...)
	}
	return strings.Join(lines, "\n")
}

func formatBudget(cents int64) string {
	if cents == 0 {
		return "-"
	}
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
