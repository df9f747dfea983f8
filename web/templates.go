package web

import (
	"fmt"
	"html/template"
	"time"

	"github.com/lintelhq/lintel/project"
	"github.com/lintelhq/lintel/timeline"
)

var pageTemplates = newTemplates()

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"formatDate":         formatDate,
		"formatOptionalDate": formatOptionalDate,
		"formatDateTime":     formatDateTime,
		"formatMoney":        formatMoney,
		"statusOptions":      project.ValidStatuses,
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02")
}

func formatOptionalDate(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return formatDate(*value)
}

func formatDateTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02 15:04")
}

// formatMoney renders cents as dollars. Negative amounts keep the sign
// ahead of the dollar mark.
func formatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// categoryClass maps a timeline category to the CSS class that colors
// its bar.
func categoryClass(category timeline.Category) string {
	switch category {
	case timeline.CategoryDone:
		return "bar-done"
	case timeline.CategoryBlocked:
		return "bar-blocked"
	case timeline.CategoryActiveHigh:
		return "bar-active-high"
	default:
		return "bar-active-low"
	}
}

const pageTemplate = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Lintel {{if eq .ActivePage "gantt"}}Gantt{{else}}Dashboard{{end}}</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #26221c;
      background: radial-gradient(circle at top left, #eef1ea 0%, #fbfbf7 55%, #f2f0e7 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #cfd3c4;
      background: rgba(255, 255, 255, 0.72);
      backdrop-filter: blur(6px);
    }
    header h1 {
      margin: 0 0 8px 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    .tabs {
      display: flex;
      gap: 12px;
    }
    .tab {
      padding: 8px 14px;
      border-radius: 999px;
      text-decoration: none;
      color: #565b4c;
      border: 1px solid transparent;
    }
    .tab.active {
      color: #171a12;
      border-color: #c3c8b4;
      background: #eff2e6;
      font-weight: 600;
    }
    main {
      padding: 18px 24px 28px;
      display: flex;
      flex-direction: column;
      gap: 18px;
    }
    .pane {
      background: #ffffff;
      border: 1px solid #cfd3c4;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(44, 56, 28, 0.08);
      padding: 16px 20px;
    }
    .pane h2 {
      margin: 0 0 12px 0;
      font-size: 16px;
    }
    .metrics {
      display: grid;
      grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
      gap: 12px;
    }
    .metric {
      border: 1px solid #dde0d2;
      border-radius: 10px;
      padding: 12px 14px;
    }
    .metric .value {
      font-size: 22px;
      font-weight: 600;
      display: block;
    }
    .metric .label {
      color: #6b7060;
      font-size: 12px;
      text-transform: uppercase;
      letter-spacing: 0.06em;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      text-align: left;
      padding: 6px 10px;
      border-bottom: 1px solid #e5e7db;
    }
    th {
      color: #565b4c;
      font-size: 12px;
      text-transform: uppercase;
      letter-spacing: 0.06em;
    }
    .muted {
      color: #6b7060;
    }
    .error {
      padding: 10px 12px;
      border-radius: 8px;
      background: #f6dad5;
      border: 1px solid #d9a79f;
      color: #5c1d14;
    }
    .badge {
      display: inline-block;
      padding: 2px 8px;
      border-radius: 999px;
      font-size: 12px;
      border: 1px solid #c3c8b4;
    }
    .badge.high {
      background: #f6dad5;
      border-color: #d9a79f;
    }
    .gantt-header, .gantt-row {
      display: flex;
      align-items: center;
      gap: 10px;
    }
    .gantt-label {
      width: 200px;
      flex-shrink: 0;
      font-size: 13px;
      overflow: hidden;
      white-space: nowrap;
      text-overflow: ellipsis;
    }
    .gantt-track {
      position: relative;
      flex: 1;
      height: 20px;
      background: #f4f5ee;
      border-radius: 4px;
      margin: 3px 0;
    }
    .gantt-buckets {
      display: flex;
      flex: 1;
      font-size: 11px;
      color: #6b7060;
    }
    .gantt-buckets span {
      flex: 1;
      border-left: 1px solid #dde0d2;
      padding-left: 4px;
      overflow: hidden;
      white-space: nowrap;
    }
    .bar {
      position: absolute;
      top: 3px;
      height: 14px;
      border-radius: 3px;
      min-width: 4px;
    }
    .bar.milestone {
      border-radius: 50%;
      width: 14px !important;
    }
    .bar-done { background: #2e7d32; }
    .bar-blocked { background: #c62828; }
    .bar-active-high { background: #1565c0; }
    .bar-active-low { background: #90a4ae; }
    .field {
      display: flex;
      flex-direction: column;
      gap: 6px;
      margin-bottom: 12px;
    }
    form.inline {
      display: flex;
      flex-wrap: wrap;
      gap: 10px;
      align-items: flex-end;
    }
    form.inline .field {
      margin-bottom: 0;
    }
    input[type="text"],
    input[type="date"],
    input[type="number"],
    select,
    textarea {
      padding: 8px 10px;
      border-radius: 8px;
      border: 1px solid #c3c8b4;
      font-family: inherit;
      font-size: 14px;
      background: #fdfdf9;
      box-sizing: border-box;
    }
    textarea {
      width: 100%;
      min-height: 80px;
      resize: vertical;
    }
    button {
      padding: 8px 14px;
      border-radius: 8px;
      border: 1px solid #aeb49c;
      background: #e7ebd8;
      font-family: inherit;
      cursor: pointer;
    }
    .button-link {
      display: inline-block;
      padding: 6px 12px;
      border-radius: 8px;
      border: 1px solid #c3c8b4;
      background: #f2f4e9;
      text-decoration: none;
      color: #26221c;
      font-size: 14px;
    }
    .chat-answer {
      background: #f8f9f2;
      border: 1px solid #dde0d2;
      border-radius: 8px;
      padding: 12px;
      white-space: pre-wrap;
      font-size: 14px;
    }
  </style>
</head>
<body>
  <header>
    <h1>Lintel Site Dashboard</h1>
    <nav class="tabs">
      <a class="tab {{if eq .ActivePage "overview"}}active{{end}}" href="/">Overview</a>
      <a class="tab {{if eq .ActivePage "gantt"}}active{{end}}" href="/gantt">Gantt</a>
    </nav>
  </header>
  <main>
    {{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{end}}

{{define "foot"}}  </main>
</body>
</html>
{{end}}

{{define "ganttChart"}}
  <div class="gantt-header">
    <span class="gantt-label"></span>
    <div class="gantt-buckets">
      {{range .Buckets}}<span title="{{.Sublabel}}">{{.Label}}</span>{{end}}
    </div>
  </div>
  {{range .Rows}}
    <div class="gantt-row">
      <span class="gantt-label" title="{{.Title}}">{{.Title}}</span>
      <div class="gantt-track">
        <span class="bar {{.Class}}{{if .Milestone}} milestone{{end}}" style="left:{{.LeftPct}}%;width:{{.WidthPct}}%"></span>
      </div>
    </div>
  {{else}}
    <p class="muted">Nothing scheduled in this window.</p>
  {{end}}
{{end}}

{{define "overview"}}{{template "head" .}}
    <section class="pane">
      <h2>Program Health</h2>
      <div class="metrics">
        <div class="metric"><span class="value">{{.Snapshot.Projects.Active}}/{{.Snapshot.Projects.Total}}</span><span class="label">Active projects</span></div>
        <div class="metric"><span class="value">{{.Snapshot.Tasks.Completed}}/{{.Snapshot.Tasks.Total}}</span><span class="label">Tasks complete</span></div>
        <div class="metric"><span class="value">{{.Snapshot.Tasks.Overdue}}</span><span class="label">Overdue tasks</span></div>
        <div class="metric"><span class="value">{{.Snapshot.Risks.Open}}</span><span class="label">Open risks</span></div>
        <div class="metric"><span class="value">{{formatMoney .Snapshot.Expenses.ApprovedCents}}</span><span class="label">Approved spend</span></div>
        <div class="metric"><span class="value">{{formatMoney .Snapshot.Expenses.RemainingCents}}</span><span class="label">Budget remaining</span></div>
      </div>
    </section>

    <section class="pane">
      <h2>Schedule</h2>
      {{template "ganttChart" .Gantt}}
      <p><a class="button-link" href="/gantt">Full gantt</a> <a class="button-link" href="/export/gantt.svg">Download SVG</a></p>
    </section>

    <section class="pane">
      <h2>Projects</h2>
      <table>
        <tr><th>Name</th><th>Client</th><th>Location</th><th>Status</th><th>Budget</th></tr>
        {{range .Projects}}
          <tr>
            <td>{{.Name}}</td>
            <td>{{.Client}}</td>
            <td>{{.Location}}</td>
            <td><span class="badge">{{.Status}}</span></td>
            <td>{{formatMoney .BudgetCents}}</td>
          </tr>
        {{else}}
          <tr><td colspan="5" class="muted">No projects yet.</td></tr>
        {{end}}
      </table>
    </section>

    <section class="pane">
      <h2>Tasks</h2>
      <table>
        <tr><th>Title</th><th>Trade</th><th>Assignee</th><th>Start</th><th>Due</th><th>Progress</th><th>Status</th></tr>
        {{range .Tasks}}
          <tr>
            <td>{{.Title}}</td>
            <td>{{.Trade}}</td>
            <td>{{.Assignee}}</td>
            <td>{{formatOptionalDate .Start}}</td>
            <td>{{formatDate .End}}</td>
            <td>{{.Progress}}%</td>
            <td><span class="badge">{{.Status}}</span></td>
          </tr>
        {{else}}
          <tr><td colspan="7" class="muted">No tasks yet.</td></tr>
        {{end}}
      </table>
      <h2>Add Task</h2>
      <form class="inline" method="post" action="/tasks/create">
        <div class="field">
          <label for="task-title">Title</label>
          <input id="task-title" type="text" name="title" required>
        </div>
        <div class="field">
          <label for="task-project">Project ID</label>
          <input id="task-project" type="text" name="project_id">
        </div>
        <div class="field">
          <label for="task-trade">Trade</label>
          <input id="task-trade" type="text" name="trade">
        </div>
        <div class="field">
          <label for="task-assignee">Assignee</label>
          <input id="task-assignee" type="text" name="assignee">
        </div>
        <div class="field">
          <label for="task-start">Start</label>
          <input id="task-start" type="date" name="start_date">
        </div>
        <div class="field">
          <label for="task-end">Due</label>
          <input id="task-end" type="date" name="end_date" required>
        </div>
        <div class="field">
          <label for="task-status">Status</label>
          <select id="task-status" name="status">
            {{range statusOptions}}<option value="{{.}}">{{.}}</option>{{end}}
          </select>
        </div>
        <button type="submit">Add task</button>
      </form>
    </section>

    <section class="pane">
      <h2>Open Risks</h2>
      <table>
        <tr><th>Title</th><th>Severity</th><th>Likelihood</th><th>Mitigation</th></tr>
        {{range .Risks}}
          <tr>
            <td>{{.Title}}</td>
            <td><span class="badge {{if eq .Severity "high"}}high{{end}}">{{.Severity}}</span></td>
            <td>{{.Likelihood}}</td>
            <td>{{.Mitigation}}</td>
          </tr>
        {{else}}
          <tr><td colspan="4" class="muted">No open risks.</td></tr>
        {{end}}
      </table>
    </section>

    <section class="pane">
      <h2>Site Log</h2>
      <table>
        <tr><th>When</th><th>Author</th><th>Message</th></tr>
        {{range .Messages}}
          <tr>
            <td class="muted">{{formatDateTime .CreatedAt}}</td>
            <td>{{.Author}}</td>
            <td>{{.Body}}</td>
          </tr>
        {{else}}
          <tr><td colspan="3" class="muted">No messages yet.</td></tr>
        {{end}}
      </table>
      <form class="inline" method="post" action="/messages/post">
        <div class="field">
          <label for="msg-author">Author</label>
          <input id="msg-author" type="text" name="author" required>
        </div>
        <div class="field">
          <label for="msg-project">Project ID</label>
          <input id="msg-project" type="text" name="project_id">
        </div>
        <div class="field">
          <label for="msg-body">Message</label>
          <input id="msg-body" type="text" name="body" required>
        </div>
        <button type="submit">Post</button>
      </form>
    </section>

    <section class="pane">
      <h2>Ask the Assistant</h2>
      <form method="post" action="/chat">
        <div class="field">
          <textarea name="question" placeholder="Which trades are blocked this week?">{{.ChatQuestion}}</textarea>
        </div>
        <button type="submit">Ask</button>
      </form>
      {{if .ChatAnswer}}<div class="chat-answer">{{.ChatAnswer}}</div>{{end}}
    </section>
{{template "foot" .}}{{end}}

{{define "gantt"}}{{template "head" .}}
    <section class="pane">
      <h2>Gantt</h2>
      <form class="inline" method="get" action="/gantt">
        <div class="field">
          <label for="gantt-zoom">Zoom</label>
          <select id="gantt-zoom" name="zoom">
            {{range .Gantt.ZoomOptions}}<option value="{{.}}" {{if eq . $.Gantt.Zoom}}selected{{end}}>{{.}}</option>{{end}}
          </select>
        </div>
        <div class="field">
          <label for="gantt-year">Year</label>
          <input id="gantt-year" type="number" name="year" value="{{.Gantt.Year}}">
        </div>
        <div class="field">
          <label for="gantt-project">Project ID</label>
          <input id="gantt-project" type="text" name="project" value="{{.Gantt.Project}}">
        </div>
        <button type="submit">Apply</button>
      </form>
      {{template "ganttChart" .Gantt}}
      <p><a class="button-link" href="/export/gantt.svg?zoom={{.Gantt.Zoom}}&amp;year={{.Gantt.Year}}&amp;project={{.Gantt.Project}}">Download SVG</a></p>
    </section>
{{template "foot" .}}{{end}}
`
