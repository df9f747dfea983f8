// Package web serves the server-rendered dashboard UI.
//
// The handler talks to the dash API through its client, so the same
// code works whether the API runs in-process or on another host. Pages
// are plain html/template renders with form POSTs; there is no
// client-side framework.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/lintelhq/lintel/dash"
	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/project"
	"github.com/lintelhq/lintel/timeline"
)

// Options configures the web handler.
type Options struct {
	// APIAddr is the address of the dash API server. Required.
	APIAddr string

	// Logger receives request failures. Defaults to stderr with a
	// "web: " prefix.
	Logger *log.Logger

	// Now supplies the timeline reference date. Defaults to time.Now.
	Now func() time.Time
}

// Handler serves the dashboard pages.
type Handler struct {
	client *dash.Client
	mux    *http.ServeMux
	logger *log.Logger
	now    func() time.Time
}

// NewHandler creates a web handler over the given API address.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "web: ", log.LstdFlags)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	handler := &Handler{
		client: dash.NewClient(opts.APIAddr),
		logger: logger,
		now:    now,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.handleOverview)
	mux.HandleFunc("/gantt", handler.handleGantt)
	mux.HandleFunc("/tasks/create", handler.handleTaskCreate)
	mux.HandleFunc("/messages/post", handler.handleMessagePost)
	mux.HandleFunc("/chat", handler.handleChat)
	mux.HandleFunc("/export/gantt.svg", handler.handleExportSVG)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Serve runs the UI server on the given address.
func (h *Handler) Serve(addr string) error {
	server := &http.Server{Addr: addr, Handler: h, ErrorLog: h.logger}
	return server.ListenAndServe()
}

type overviewData struct {
	ActivePage string
	Error      string

	Snapshot project.Snapshot
	Projects []project.Project
	Tasks    []project.Task
	Risks    []project.Risk
	Messages []project.Message

	Gantt ganttView

	ChatQuestion string
	ChatAnswer   string
}

type ganttView struct {
	Zoom    string
	Year    int
	Project string
	Buckets []timeline.Bucket
	Rows    []ganttRow

	ZoomOptions []string
}

// ganttRow carries percentage strings ready for inline styles.
type ganttRow struct {
	Title     string
	LeftPct   string
	WidthPct  string
	Class     string
	Milestone bool
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	data := h.loadOverview(r.Context(), r.URL.Query().Get("err"))
	data.ChatQuestion = r.URL.Query().Get("q")
	data.ChatAnswer = r.URL.Query().Get("answer")
	h.render(w, "overview", data)
}

func (h *Handler) handleGantt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	view, err := h.loadGantt(r.Context(), query.Get("zoom"), query.Get("year"), query.Get("project"))
	data := overviewData{ActivePage: "gantt", Gantt: view}
	if err != nil {
		data.Error = err.Error()
	}
	h.render(w, "gantt", data)
}

func (h *Handler) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "invalid form input")
		return
	}
	title := internalstrings.TrimSpace(r.FormValue("title"))
	opts := project.CreateTaskOptions{
		ProjectID: internalstrings.TrimSpace(r.FormValue("project_id")),
		Trade:     internalstrings.TrimSpace(r.FormValue("trade")),
		Assignee:  internalstrings.TrimSpace(r.FormValue("assignee")),
	}
	if raw := internalstrings.TrimSpace(r.FormValue("start_date")); raw != "" {
		parsed, err := parseDateField(raw, "start date")
		if err != nil {
			h.redirectError(w, r, err.Error())
			return
		}
		opts.Start = &parsed
	}
	end, err := parseDateField(r.FormValue("end_date"), "due date")
	if err != nil {
		h.redirectError(w, r, err.Error())
		return
	}
	opts.End = end
	if raw := internalstrings.TrimSpace(r.FormValue("status")); raw != "" {
		status, err := project.ParseStatus(raw)
		if err != nil {
			h.redirectError(w, r, err.Error())
			return
		}
		opts.Status = status
	}

	if _, err := h.client.CreateTask(r.Context(), title, opts); err != nil {
		h.redirectError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleMessagePost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "invalid form input")
		return
	}
	opts := project.PostMessageOptions{
		ProjectID: internalstrings.TrimSpace(r.FormValue("project_id")),
		Author:    internalstrings.TrimSpace(r.FormValue("author")),
	}
	if _, err := h.client.PostMessage(r.Context(), r.FormValue("body"), opts); err != nil {
		h.redirectError(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "invalid form input")
		return
	}
	question := internalstrings.TrimSpace(r.FormValue("question"))
	answer, err := h.client.Chat(r.Context(), question, nil)
	if err != nil {
		h.redirectError(w, r, err.Error())
		return
	}
	target := "/?" + url.Values{"q": {question}, "answer": {answer}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) handleExportSVG(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	query := r.URL.Query()
	year := 0
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}
	svg, err := h.client.GanttSVG(r.Context(), query.Get("zoom"), year, query.Get("project"))
	if err != nil {
		h.logf("export gantt svg: %v", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Disposition", `attachment; filename="gantt.svg"`)
	_, _ = w.Write(svg)
}

// loadOverview gathers everything the front page shows. Fetch errors
// surface in the page banner instead of failing the render.
func (h *Handler) loadOverview(ctx context.Context, errBanner string) overviewData {
	data := overviewData{ActivePage: "overview", Error: errBanner}

	snapshot, err := h.client.Dashboard(ctx)
	if err != nil {
		data.Error = joinBanner(data.Error, err)
		return data
	}
	data.Snapshot = snapshot

	if data.Projects, err = h.client.ListProjects(ctx, project.ProjectFilter{}); err != nil {
		data.Error = joinBanner(data.Error, err)
	}
	if data.Tasks, err = h.client.ListTasks(ctx, project.TaskFilter{}); err != nil {
		data.Error = joinBanner(data.Error, err)
	}
	if data.Risks, err = h.client.ListRisks(ctx, project.RiskFilter{OpenOnly: true}); err != nil {
		data.Error = joinBanner(data.Error, err)
	}
	if data.Messages, err = h.client.ListMessages(ctx, project.MessageFilter{Limit: 10}); err != nil {
		data.Error = joinBanner(data.Error, err)
	}

	view, err := h.loadGantt(ctx, "", "", "")
	if err != nil {
		data.Error = joinBanner(data.Error, err)
	}
	data.Gantt = view
	return data
}

func (h *Handler) loadGantt(ctx context.Context, zoomValue, yearValue, projectID string) (ganttView, error) {
	if zoomValue == "" {
		zoomValue = string(timeline.ZoomMonth)
	}
	year := h.now().Year()
	if yearValue != "" {
		parsed, err := strconv.Atoi(yearValue)
		if err != nil {
			return ganttView{}, fmt.Errorf("invalid year %q", yearValue)
		}
		year = parsed
	}
	view := ganttView{
		Zoom:        zoomValue,
		Year:        year,
		Project:     projectID,
		ZoomOptions: zoomOptions(),
	}

	reference := h.now()
	layout, err := h.client.Timeline(ctx, zoomValue, &reference, year, projectID)
	if err != nil {
		return view, err
	}
	view.Buckets = layout.Config.Buckets
	for _, item := range layout.Items {
		if !item.Visible {
			continue
		}
		view.Rows = append(view.Rows, ganttRow{
			Title:     itemTitle(item),
			LeftPct:   percentValue(item.Left),
			WidthPct:  percentValue(item.Width),
			Class:     categoryClass(item.Category),
			Milestone: item.IsMilestone(),
		})
	}
	return view, nil
}

func (h *Handler) render(w http.ResponseWriter, page string, data overviewData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, page, data); err != nil {
		h.logf("render %s: %v", page, err)
	}
}

func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/?err="+url.QueryEscape(message), http.StatusSeeOther)
}

func (h *Handler) logf(format string, args ...any) {
	if h == nil || h.logger == nil {
		return
	}
	h.logger.Printf(format, args...)
}

func joinBanner(banner string, err error) string {
	if banner == "" {
		return err.Error()
	}
	return banner + "; " + err.Error()
}

func parseDateField(value, field string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", internalstrings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s (want YYYY-MM-DD)", field)
	}
	return parsed, nil
}

func itemTitle(item timeline.PositionedItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}

func percentValue(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 2, 64)
}

func zoomOptions() []string {
	zooms := timeline.ValidZooms()
	options := make([]string, 0, len(zooms))
	for _, zoom := range zooms {
		options = append(options, string(zoom))
	}
	return options
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
