// Package dash implements the dashboard HTTP service and its client.
//
// The server exposes the shared in-memory project store as a JSON API
// in RPC-over-POST style, plus an NDJSON message stream, a timeline
// layout endpoint, an SVG export, and the chat assistant round trip.
// State lives only in the store; restarting the server starts fresh
// unless it was seeded from a plan file.
package dash

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"
	"time"

	"github.com/lintelhq/lintel/assistant"
	"github.com/lintelhq/lintel/gantt"
	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/playbook"
	"github.com/lintelhq/lintel/project"
	"github.com/lintelhq/lintel/timeline"
)

const shutdownTimeout = 5 * time.Second

// ErrNoAssistant is returned by the chat endpoint when no assistant
// client is configured.
var ErrNoAssistant = errors.New("chat assistant is not configured")

// ServerOptions configures a dashboard server.
type ServerOptions struct {
	// Store is the shared project store. Required.
	Store *project.Store

	// Assistant handles /api/chat. Nil disables the endpoint.
	Assistant *assistant.Client

	// Logger receives request and panic logs. Defaults to stderr with a
	// "dash: " prefix.
	Logger *log.Logger

	// Now supplies the snapshot reference time. Defaults to time.Now.
	Now func() time.Time
}

// Server handles dashboard RPCs.
type Server struct {
	store     *project.Store
	assistant *assistant.Client
	logger    *log.Logger
	now       func() time.Time
	heartbeat time.Duration
}

// NewServer creates a dashboard server over the given store.
func NewServer(opts ServerOptions) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "dash: ", log.LstdFlags)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		store:     opts.Store,
		assistant: opts.Assistant,
		logger:    logger,
		now:       now,
	}, nil
}

// Handler returns the HTTP handler for dashboard RPCs.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/dashboard", s.handleDashboard)

	mux.HandleFunc("/api/project/create", s.handleProjectCreate)
	mux.HandleFunc("/api/project/list", s.handleProjectList)
	mux.HandleFunc("/api/project/update", s.handleProjectUpdate)
	mux.HandleFunc("/api/project/delete", s.handleProjectDelete)

	mux.HandleFunc("/api/task/create", s.handleTaskCreate)
	mux.HandleFunc("/api/task/list", s.handleTaskList)
	mux.HandleFunc("/api/task/update", s.handleTaskUpdate)
	mux.HandleFunc("/api/task/delete", s.handleTaskDelete)

	mux.HandleFunc("/api/risk/create", s.handleRiskCreate)
	mux.HandleFunc("/api/risk/list", s.handleRiskList)
	mux.HandleFunc("/api/risk/update", s.handleRiskUpdate)
	mux.HandleFunc("/api/risk/delete", s.handleRiskDelete)

	mux.HandleFunc("/api/expense/create", s.handleExpenseCreate)
	mux.HandleFunc("/api/expense/list", s.handleExpenseList)
	mux.HandleFunc("/api/expense/update", s.handleExpenseUpdate)
	mux.HandleFunc("/api/expense/delete", s.handleExpenseDelete)

	mux.HandleFunc("/api/milestone/create", s.handleMilestoneCreate)
	mux.HandleFunc("/api/milestone/list", s.handleMilestoneList)
	mux.HandleFunc("/api/milestone/update", s.handleMilestoneUpdate)
	mux.HandleFunc("/api/milestone/delete", s.handleMilestoneDelete)

	mux.HandleFunc("/api/message/post", s.handleMessagePost)
	mux.HandleFunc("/api/message/list", s.handleMessageList)
	mux.HandleFunc("/api/message/stream", s.handleMessageStream)

	mux.HandleFunc("/api/timeline", s.handleTimeline)
	mux.HandleFunc("/api/gantt.svg", s.handleGanttSVG)
	mux.HandleFunc("/api/chat", s.handleChat)

	return s.recoverHandler(mux)
}

// Serve runs the server on the given address until the context is
// canceled or an interrupt arrives, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:     addr,
		Handler:  s.Handler(),
		ErrorLog: s.logger,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("server stopped: %v", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logf("interrupt received, shutting down")
	case <-ctx.Done():
		s.logf("context canceled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := server.Shutdown(shutdownCtx)
	listenErr := <-listenErrs
	if errors.Is(listenErr, http.ErrServerClosed) {
		listenErr = nil
	}
	return errors.Join(shutdownErr, listenErr)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Counts: s.store.Count()})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.Snapshot(s.now()))
}

func (s *Server) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload projectCreateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.CreateProject(payload.Name, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse{Project: *created})
}

func (s *Server) handleProjectList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload projectListRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	projects, err := s.store.ListProjects(payload.Filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectListResponse{Projects: projects})
}

func (s *Server) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload projectUpdateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateProject(payload.ID, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, projectResponse{Project: *updated})
}

func (s *Server) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload deleteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteProject(payload.ID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload taskCreateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.CreateTask(payload.Title, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Task: *created})
}

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload taskListRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	tasks, err := s.store.ListTasks(payload.Filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskListResponse{Tasks: tasks})
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload taskUpdateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateTask(payload.ID, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, taskResponse{Task: *updated})
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload deleteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteTask(payload.ID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleRiskCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload riskCreateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.CreateRisk(payload.Title, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, riskResponse{Risk: *created})
}

func (s *Server) handleRiskList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload riskListRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	risks, err := s.store.ListRisks(payload.Filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, riskListResponse{Risks: risks})
}

func (s *Server) handleRiskUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload riskUpdateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateRisk(payload.ID, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, riskResponse{Risk: *updated})
}

func (s *Server) handleRiskDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload deleteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteRisk(payload.ID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleExpenseCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload expenseCreateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.CreateExpense(payload.Description, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseResponse{Expense: *created})
}

func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload expenseListRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	expenses, err := s.store.ListExpenses(payload.Filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseListResponse{Expenses: expenses})
}

func (s *Server) handleExpenseUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload expenseUpdateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateExpense(payload.ID, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenseResponse{Expense: *updated})
}

func (s *Server) handleExpenseDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload deleteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteExpense(payload.ID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleMilestoneCreate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload milestoneCreateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	created, err := s.store.CreateMilestone(payload.Title, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestoneResponse{Milestone: *created})
}

func (s *Server) handleMilestoneList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload milestoneListRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	milestones, err := s.store.ListMilestones(payload.Filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestoneListResponse{Milestones: milestones})
}

func (s *Server) handleMilestoneUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload milestoneUpdateRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	updated, err := s.store.UpdateMilestone(payload.ID, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, milestoneResponse{Milestone: *updated})
}

func (s *Server) handleMilestoneDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload deleteRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := s.store.DeleteMilestone(payload.ID); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyResponse{})
}

func (s *Server) handleMessagePost(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload messagePostRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	posted, err := s.store.PostMessage(payload.Body, payload.Options)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: *posted})
}

func (s *Server) handleMessageList(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload messageListRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	messages, err := s.store.ListMessages(payload.Filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageListResponse{Messages: messages})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload timelineRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	layout, err := s.computeLayout(payload.Zoom, payload.Reference, payload.Year, payload.ProjectID)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timelineResponse{Layout: layout})
}

func (s *Server) handleGanttSVG(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodGet) {
		return
	}
	query := r.URL.Query()
	zoomValue := query.Get("zoom")
	if zoomValue == "" {
		zoomValue = string(timeline.ZoomMonth)
	}
	year := s.now().Year()
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid year %q", raw))
			return
		}
		year = parsed
	}

	layout, err := s.computeLayout(zoomValue, nil, year, query.Get("project"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	title := "Gantt Timeline"
	if projectID := query.Get("project"); projectID != "" {
		if proj, err := s.store.GetProject(projectID); err == nil {
			title = proj.Name
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	if err := gantt.WriteSVG(w, layout, gantt.SVGOptions{Title: title, GeneratedAt: s.now()}); err != nil {
		s.logf("write gantt svg: %v", err)
	}
}

func (s *Server) computeLayout(zoomValue string, reference *time.Time, year int, projectID string) (timeline.Layout, error) {
	zoom, err := timeline.ParseZoom(zoomValue)
	if err != nil {
		return timeline.Layout{}, err
	}
	ref := s.now()
	if reference != nil {
		ref = *reference
	}
	if year == 0 {
		year = ref.Year()
	}
	items, err := s.store.GanttItems(projectID)
	if err != nil {
		return timeline.Layout{}, err
	}
	return timeline.ComputeLayout(zoom, ref, year, items)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.requireMethod(w, r, http.MethodPost) {
		return
	}
	var payload chatRequest
	if err := decodeJSON(w, r, &payload); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if internalstrings.IsBlank(payload.Question) {
		s.writeError(w, r, http.StatusBadRequest, assistant.ErrEmptyQuestion)
		return
	}
	if s.assistant == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrNoAssistant)
		return
	}
	answer, err := s.assistant.Ask(r.Context(), payload.Question, s.store.Snapshot(s.now()), payload.Playbooks)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, assistant.ErrNoAPIKey):
			status = http.StatusServiceUnavailable
		case errors.Is(err, assistant.ErrEmptyQuestion):
			status = http.StatusBadRequest
		}
		s.writeError(w, r, status, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

// writeStoreError maps store and layout errors onto HTTP statuses.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeError(w, r, statusForError(err), err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, project.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrEmptyTitle),
		errors.Is(err, project.ErrTitleTooLong),
		errors.Is(err, project.ErrInvalidStatus),
		errors.Is(err, project.ErrInvalidSeverity),
		errors.Is(err, project.ErrInvalidProgress),
		errors.Is(err, project.ErrUnknownProject),
		errors.Is(err, project.ErrMissingEndDate),
		errors.Is(err, project.ErrMissingTargetDate),
		errors.Is(err, project.ErrNegativeAmount),
		errors.Is(err, project.ErrEmptyAuthor),
		errors.Is(err, project.ErrEmptyBody),
		errors.Is(err, project.ErrEndBeforeStart),
		errors.Is(err, timeline.ErrInvalidZoom):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logRequestError(r, status, err)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) logRequestError(r *http.Request, status int, err error) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("request %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)
}

func (s *Server) logf(format string, args ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

type healthResponse struct {
	Status string         `json:"status"`
	Counts project.Counts `json:"counts"`
}

type projectCreateRequest struct {
	Name    string                       `json:"name"`
	Options project.CreateProjectOptions `json:"options"`
}

type projectUpdateRequest struct {
	ID      string                       `json:"id"`
	Options project.UpdateProjectOptions `json:"options"`
}

type projectListRequest struct {
	Filter project.ProjectFilter `json:"filter"`
}

type projectResponse struct {
	Project project.Project `json:"project"`
}

type projectListResponse struct {
	Projects []project.Project `json:"projects"`
}

type taskCreateRequest struct {
	Title   string                    `json:"title"`
	Options project.CreateTaskOptions `json:"options"`
}

type taskUpdateRequest struct {
	ID      string                    `json:"id"`
	Options project.UpdateTaskOptions `json:"options"`
}

type taskListRequest struct {
	Filter project.TaskFilter `json:"filter"`
}

type taskResponse struct {
	Task project.Task `json:"task"`
}

type taskListResponse struct {
	Tasks []project.Task `json:"tasks"`
}

type riskCreateRequest struct {
	Title   string                    `json:"title"`
	Options project.CreateRiskOptions `json:"options"`
}

type riskUpdateRequest struct {
	ID      string                    `json:"id"`
	Options project.UpdateRiskOptions `json:"options"`
}

type riskListRequest struct {
	Filter project.RiskFilter `json:"filter"`
}

type riskResponse struct {
	Risk project.Risk `json:"risk"`
}

type riskListResponse struct {
	Risks []project.Risk `json:"risks"`
}

type expenseCreateRequest struct {
	Description string                       `json:"description"`
	Options     project.CreateExpenseOptions `json:"options"`
}

type expenseUpdateRequest struct {
	ID      string                       `json:"id"`
	Options project.UpdateExpenseOptions `json:"options"`
}

type expenseListRequest struct {
	Filter project.ExpenseFilter `json:"filter"`
}

type expenseResponse struct {
	Expense project.Expense `json:"expense"`
}

type expenseListResponse struct {
	Expenses []project.Expense `json:"expenses"`
}

type milestoneCreateRequest struct {
	Title   string                         `json:"title"`
	Options project.CreateMilestoneOptions `json:"options"`
}

type milestoneUpdateRequest struct {
	ID      string                         `json:"id"`
	Options project.UpdateMilestoneOptions `json:"options"`
}

type milestoneListRequest struct {
	Filter project.MilestoneFilter `json:"filter"`
}

type milestoneResponse struct {
	Milestone project.Milestone `json:"milestone"`
}

type milestoneListResponse struct {
	Milestones []project.Milestone `json:"milestones"`
}

type messagePostRequest struct {
	Body    string                     `json:"body"`
	Options project.PostMessageOptions `json:"options"`
}

type messageListRequest struct {
	Filter project.MessageFilter `json:"filter"`
}

type messageResponse struct {
	Message project.Message `json:"message"`
}

type messageListResponse struct {
	Messages []project.Message `json:"messages"`
}

type messageStreamRequest struct {
	ProjectID string `json:"project_id,omitempty"`
}

type timelineRequest struct {
	Zoom      string     `json:"zoom"`
	Reference *time.Time `json:"reference,omitempty"`
	Year      int        `json:"year,omitempty"`
	ProjectID string     `json:"project_id,omitempty"`
}

type timelineResponse struct {
	Layout timeline.Layout `json:"layout"`
}

type chatRequest struct {
	Question  string              `json:"question"`
	Playbooks []playbook.Playbook `json:"playbooks,omitempty"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type deleteRequest struct {
	ID string `json:"id"`
}

type emptyResponse struct{}
