package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lintelhq/lintel/playbook"
	"github.com/lintelhq/lintel/project"
)

type capturedRequest struct {
	path  string
	query string
	body  generateRequest
}

func newFakeEndpoint(t *testing.T, reply string, status int) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.query = r.URL.RawQuery
		if err := json.NewDecoder(r.Body).Decode(&captured.body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		if status != http.StatusOK {
			http.Error(w, "backend unhappy", status)
			return
		}
		response := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func testSnapshot() project.Snapshot {
	return project.Snapshot{
		Projects: project.ProjectMetrics{Total: 2, Active: 1},
		Tasks:    project.TaskMetrics{Total: 6, Overdue: 1},
		Expenses: project.ExpenseMetrics{BudgetCents: 500_000_00, ApprovedCents: 120_000_00},
	}
}

func TestAsk(t *testing.T) {
	server, captured := newFakeEndpoint(t, "One task is overdue.", http.StatusOK)
	client := New(Options{Endpoint: server.URL, Key: "test-key"})

	reply, err := client.Ask(context.Background(), "What is overdue?", testSnapshot(), nil)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply != "One task is overdue." {
		t.Errorf("reply = %q", reply)
	}

	if want := "/" + DefaultModel + ":generateContent"; captured.path != want {
		t.Errorf("request path = %q, want %q", captured.path, want)
	}
	if !strings.Contains(captured.query, "key=test-key") {
		t.Errorf("request query %q missing API key", captured.query)
	}
	if len(captured.body.Contents) != 1 || len(captured.body.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", captured.body)
	}

	prompt := captured.body.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "What is overdue?") {
		t.Error("prompt missing the question")
	}
	if !strings.Contains(prompt, `"overdue": 1`) {
		t.Error("prompt missing the snapshot JSON")
	}
	if captured.body.GenerationConfig.MaxOutputTokens == 0 {
		t.Error("generation config not set")
	}
}

func TestAsk_PlaybookModelAndInstructions(t *testing.T) {
	server, captured := newFakeEndpoint(t, "ok", http.StatusOK)
	client := New(Options{Endpoint: server.URL, Key: "test-key"})

	playbooks := []playbook.Playbook{
		{Name: "safety", Instructions: "Always mention PPE requirements."},
		{Name: "qa", Instructions: "Walk the punch list.", Model: "gemini-2.0-pro"},
	}
	if _, err := client.Ask(context.Background(), "Plan today's walkthrough", testSnapshot(), playbooks); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if want := "/gemini-2.0-pro:generateContent"; captured.path != want {
		t.Errorf("request path = %q, want %q (playbook model should win)", captured.path, want)
	}
	prompt := captured.body.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Playbook: safety") || !strings.Contains(prompt, "PPE requirements") {
		t.Error("prompt missing playbook instructions")
	}
}

func TestAsk_Errors(t *testing.T) {
	t.Run("no API key", func(t *testing.T) {
		client := New(Options{})
		if _, err := client.Ask(context.Background(), "hello", project.Snapshot{}, nil); !errors.Is(err, ErrNoAPIKey) {
			t.Errorf("got error %v, want ErrNoAPIKey", err)
		}
	})

	t.Run("blank question", func(t *testing.T) {
		client := New(Options{Key: "k"})
		if _, err := client.Ask(context.Background(), "  ", project.Snapshot{}, nil); !errors.Is(err, ErrEmptyQuestion) {
			t.Errorf("got error %v, want ErrEmptyQuestion", err)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		server, _ := newFakeEndpoint(t, "", http.StatusInternalServerError)
		client := New(Options{Endpoint: server.URL, Key: "k"})
		_, err := client.Ask(context.Background(), "hello", project.Snapshot{}, nil)
		if err == nil || !strings.Contains(err.Error(), "backend unhappy") {
			t.Errorf("error should carry the response body, got %v", err)
		}
	})

	t.Run("empty candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"candidates": []}`))
		}))
		defer server.Close()
		client := New(Options{Endpoint: server.URL, Key: "k"})
		if _, err := client.Ask(context.Background(), "hello", project.Snapshot{}, nil); !errors.Is(err, ErrEmptyReply) {
			t.Errorf("got error %v, want ErrEmptyReply", err)
		}
	})
}

func TestStripFenceWrapper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "hello world", "hello world"},
		{"surrounding whitespace", "  hello\n", "hello"},
		{"bare fence", "```\nhello\n```", "hello"},
		{"language tag", "```markdown\nhello\n```", "hello"},
		{"nested fences kept whole", "```\nprose\n```go\ncode\n```\n```", "```\nprose\n```go\ncode\n```\n```"},
		{"fence only at start", "```go\ncode", "```go\ncode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFenceWrapper(tt.input); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderAnswer(t *testing.T) {
	out := RenderAnswer("# Status\n\nAll clear.", 60)
	if !strings.Contains(out, "Status") || !strings.Contains(out, "All clear.") {
		t.Errorf("rendered answer lost content: %q", out)
	}

	if out := RenderAnswer("plain", 0); !strings.Contains(out, "plain") {
		t.Errorf("zero width should still render: %q", out)
	}
}
