package dash

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lintelhq/lintel/assistant"
	"github.com/lintelhq/lintel/project"
)

var testReference = time.Date(2025, time.June, 11, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ServerOptions) (*Server, *httptest.Server, *Client) {
	t.Helper()
	if opts.Store == nil {
		opts.Store = project.NewStore()
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return testReference }
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	server, err := NewServer(opts)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	httpServer := httptest.NewServer(server.Handler())
	t.Cleanup(httpServer.Close)
	return server, httpServer, NewClient(httpServer.URL)
}

func createTestProject(t *testing.T, client *Client) *project.Project {
	t.Helper()
	created, err := client.CreateProject(context.Background(), "Riverside Apartments", project.CreateProjectOptions{
		Client:      "Harborview Development",
		BudgetCents: 250_000_00,
		Start:       time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return created
}

func TestServer_Health(t *testing.T) {
	_, _, client := newTestServer(t, ServerOptions{})
	counts, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	if counts.Projects != 0 {
		t.Errorf("got %d projects, want 0", counts.Projects)
	}
}

func TestServer_ProjectLifecycle(t *testing.T) {
	_, _, client := newTestServer(t, ServerOptions{})
	ctx := context.Background()

	created := createTestProject(t, client)
	if created.ID == "" || created.Status != project.StatusNotStarted {
		t.Errorf("unexpected created project: %+v", created)
	}

	status := project.StatusInProgress
	updated, err := client.UpdateProject(ctx, created.ID, project.UpdateProjectOptions{Status: &status})
	if err != nil {
		t.Fatalf("failed to update project: %v", err)
	}
	if updated.Status != project.StatusInProgress {
		t.Errorf("got status %q, want %q", updated.Status, project.StatusInProgress)
	}

	projects, err := client.ListProjects(ctx, project.ProjectFilter{Status: project.StatusInProgress})
	if err != nil {
		t.Fatalf("failed to list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("got %d projects, want 1", len(projects))
	}

	if err := client.DeleteProject(ctx, created.ID); err != nil {
		t.Fatalf("failed to delete project: %v", err)
	}
	projects, err = client.ListProjects(ctx, project.ProjectFilter{})
	if err != nil {
		t.Fatalf("failed to list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("got %d projects after delete, want 0", len(projects))
	}
}

func TestServer_TaskStatusStamps(t *testing.T) {
	_, _, client := newTestServer(t, ServerOptions{})
	ctx := context.Background()
	proj := createTestProject(t, client)

	created, err := client.CreateTask(ctx, "Framing", project.CreateTaskOptions{
		ProjectID: proj.ID,
		End:       time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	done := project.StatusCompleted
	updated, err := client.UpdateTask(ctx, created.ID, project.UpdateTaskOptions{Status: &done})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Error("completing a task should stamp CompletedAt")
	}
	if updated.Progress != project.MaxProgress {
		t.Errorf("got progress %d, want %d", updated.Progress, project.MaxProgress)
	}
}

func TestServer_ErrorStatuses(t *testing.T) {
	_, httpServer, client := newTestServer(t, ServerOptions{})
	ctx := context.Background()
	proj := createTestProject(t, client)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "unknown project id",
			path:       "/api/project/update",
			body:       `{"id": "nope1234", "options": {}}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid status",
			path:       "/api/project/list",
			body:       `{"filter": {"status": "finished"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field",
			path:       "/api/task/create",
			body:       `{"title": "x", "bogus": true}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "task without end date",
			path:       "/api/task/create",
			body:       `{"title": "Framing", "options": {"project_id": "` + proj.ID + `"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid zoom",
			path:       "/api/timeline",
			body:       `{"zoom": "decade"}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, httpServer.URL+tt.path, strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("got status %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var payload map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("error responses must be JSON: %v", err)
			}
			if payload["error"] == "" {
				t.Error("error responses must carry an error message")
			}
		})
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	_, httpServer, _ := newTestServer(t, ServerOptions{})
	resp, err := http.Get(httpServer.URL + "/api/project/create")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("got status %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
	if allow := resp.Header.Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow = %q, want POST", allow)
	}
}

func TestServer_Dashboard(t *testing.T) {
	store := project.SeedDemo(testReference)
	_, _, client := newTestServer(t, ServerOptions{Store: store})

	snapshot, err := client.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("failed to fetch dashboard: %v", err)
	}
	if snapshot.Projects.Total == 0 || snapshot.Tasks.Total == 0 {
		t.Errorf("seeded dashboard should have entities: %+v", snapshot)
	}
	if !snapshot.GeneratedAt.Equal(testReference) {
		t.Errorf("GeneratedAt = %v, want %v", snapshot.GeneratedAt, testReference)
	}
}

func TestServer_Timeline(t *testing.T) {
	_, _, client := newTestServer(t, ServerOptions{})
	ctx := context.Background()
	proj := createTestProject(t, client)
	if _, err := client.CreateTask(ctx, "Framing", project.CreateTaskOptions{
		ProjectID: proj.ID,
		Start:     timePtr(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)),
		End:       time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	layout, err := client.Timeline(ctx, "month", nil, 2025, proj.ID)
	if err != nil {
		t.Fatalf("failed to compute timeline: %v", err)
	}
	if len(layout.Config.Buckets) != 12 {
		t.Errorf("got %d buckets, want 12", len(layout.Config.Buckets))
	}
	if len(layout.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(layout.Items))
	}
	if got := layout.Items[0].StartOffsetDays; got != 59 {
		t.Errorf("StartOffsetDays = %d, want 59", got)
	}
}

func TestServer_GanttSVG(t *testing.T) {
	_, httpServer, client := newTestServer(t, ServerOptions{})
	ctx := context.Background()
	proj := createTestProject(t, client)
	if _, err := client.CreateTask(ctx, "Framing", project.CreateTaskOptions{
		ProjectID: proj.ID,
		End:       time.Date(2025, time.April, 11, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	resp, err := http.Get(httpServer.URL + "/api/gantt.svg?zoom=month&year=2025&project=" + proj.ID)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", got)
	}

	svg, err := client.GanttSVG(ctx, "month", 2025, proj.ID)
	if err != nil {
		t.Fatalf("failed to fetch SVG: %v", err)
	}
	if !strings.Contains(string(svg), "Riverside Apartments") {
		t.Error("SVG should carry the project name as title")
	}
}

func TestServer_Chat(t *testing.T) {
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Two tasks remain."}]}}]}`))
	}))
	defer fake.Close()

	helper := assistant.New(assistant.Options{Endpoint: fake.URL, Key: "test-key"})
	_, _, client := newTestServer(t, ServerOptions{Assistant: helper})

	answer, err := client.Chat(context.Background(), "What remains?", nil)
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if answer != "Two tasks remain." {
		t.Errorf("answer = %q", answer)
	}
}

func TestServer_ChatWithoutAssistant(t *testing.T) {
	_, _, client := newTestServer(t, ServerOptions{})
	_, err := client.Chat(context.Background(), "anyone there?", nil)
	if err == nil || !strings.Contains(err.Error(), ErrNoAssistant.Error()) {
		t.Errorf("got error %v, want ErrNoAssistant text", err)
	}
}

func TestServer_ChatRejectsBlankQuestion(t *testing.T) {
	_, _, client := newTestServer(t, ServerOptions{})
	_, err := client.Chat(context.Background(), "   ", nil)
	if err == nil || !strings.Contains(err.Error(), assistant.ErrEmptyQuestion.Error()) {
		t.Errorf("got error %v, want empty-question text", err)
	}
}

func TestServer_StreamMessages(t *testing.T) {
	store := project.NewStore()
	server, _, client := newTestServer(t, ServerOptions{Store: store})
	server.heartbeat = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	proj := createTestProject(t, client)
	if _, err := client.PostMessage(ctx, "Site cleared.", project.PostMessageOptions{ProjectID: proj.ID, Author: "J. Keller"}); err != nil {
		t.Fatalf("failed to post message: %v", err)
	}

	messages, errCh := client.StreamMessages(ctx, proj.ID)

	// Snapshot replay first.
	select {
	case got := <-messages:
		if got.Body != "Site cleared." {
			t.Errorf("got snapshot message %q", got.Body)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot message")
	}

	// Then the live tail.
	if _, err := client.PostMessage(ctx, "Rebar delivered.", project.PostMessageOptions{ProjectID: proj.ID, Author: "M. Osei"}); err != nil {
		t.Fatalf("failed to post message: %v", err)
	}
	select {
	case got := <-messages:
		if got.Body != "Rebar delivered." {
			t.Errorf("got tail message %q", got.Body)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tail message")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("stream should end cleanly on cancel, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream to end")
	}
}

func TestServer_RecoversFromPanic(t *testing.T) {
	store := project.NewStore()
	server, err := NewServer(ServerOptions{Store: store, Logger: discardLogger(), Now: func() time.Time { panic("boom") }})
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	if recorder.Code != http.StatusInternalServerError {
		t.Errorf("got status %d, want 500", recorder.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("panic responses must be JSON: %v", err)
	}
	if payload["error"] != "internal server error" {
		t.Errorf("got error %q", payload["error"])
	}
}

func TestNewServer_RequiresStore(t *testing.T) {
	if _, err := NewServer(ServerOptions{}); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestResolveAddr(t *testing.T) {
	tests := []struct {
		name       string
		flagAddr   string
		configAddr string
		want       string
		wantErr    bool
	}{
		{name: "default", want: "127.0.0.1:8475"},
		{name: "flag wins", flagAddr: ":9000", configAddr: ":8000", want: ":9000"},
		{name: "config fallback", configAddr: "0.0.0.0:8000", want: "0.0.0.0:8000"},
		{name: "bare port", flagAddr: "9000", want: "127.0.0.1:9000"},
		{name: "bad port", flagAddr: "nope", wantErr: true},
		{name: "port out of range", flagAddr: "70000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveAddr(tt.flagAddr, tt.configAddr)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAddr failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func timePtr(value time.Time) *time.Time {
	return &value
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
