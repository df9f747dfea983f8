// Package assistant implements the chat assistant client.
//
// The assistant forwards a user question plus a snapshot of the current
// dashboard state to a generateContent-style LLM endpoint and returns
// the markdown-like reply. Model behavior is entirely the remote
// service's concern; this package only builds the prompt, makes the
// request, and cleans up the reply for rendering.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	internalstrings "github.com/lintelhq/lintel/internal/strings"
	"github.com/lintelhq/lintel/playbook"
	"github.com/lintelhq/lintel/project"
)

const (
	// DefaultEndpoint is the base URL for the Gemini generateContent API.
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

	// DefaultModel is used when neither config nor playbook names one.
	DefaultModel = "gemini-2.0-flash"

	// maxErrorBodyBytes caps how much of an error response body is
	// echoed into the returned error.
	maxErrorBodyBytes = 2048
)

var (
	// ErrNoAPIKey is returned when no API key is configured.
	ErrNoAPIKey = errors.New("assistant API key is not configured")

	// ErrEmptyQuestion is returned when the question is blank.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrEmptyReply is returned when the endpoint answers with no candidates.
	ErrEmptyReply = errors.New("assistant returned an empty reply")
)

// Options configures a Client.
type Options struct {
	// Endpoint is the base URL of the generateContent API.
	// Defaults to DefaultEndpoint.
	Endpoint string

	// Model is the model name appended to the endpoint path.
	// Defaults to DefaultModel. A playbook's frontmatter model
	// override wins over this.
	Model string

	// Key is the API key. Required before Ask is called.
	Key string

	// HTTPClient overrides the HTTP client, mainly for tests.
	HTTPClient *http.Client
}

// Client calls the assistant endpoint.
type Client struct {
	endpoint string
	model    string
	key      string
	client   *http.Client
}

// New creates an assistant client.
func New(opts Options) *Client {
	endpoint := internalstrings.TrimTrailingSlash(strings.TrimSpace(opts.Endpoint))
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		key:      strings.TrimSpace(opts.Key),
		client:   client,
	}
}

// Ask forwards the question and dashboard snapshot to the endpoint and
// returns the reply text. Playbooks extend the prompt; a playbook that
// names a model in its frontmatter overrides the client's model for
// this question.
func (c *Client) Ask(ctx context.Context, question string, snapshot project.Snapshot, playbooks []playbook.Playbook) (string, error) {
	if internalstrings.IsBlank(question) {
		return "", ErrEmptyQuestion
	}
	if c.key == "" {
		return "", ErrNoAPIKey
	}

	prompt, err := buildPrompt(question, snapshot, playbooks)
	if err != nil {
		return "", err
	}

	model := c.model
	for _, pb := range playbooks {
		if pb.Model != "" {
			model = pb.Model
		}
	}

	reply, err := c.generate(ctx, model, prompt)
	if err != nil {
		return "", err
	}
	return stripFenceWrapper(reply), nil
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 2048,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.endpoint, model, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", fmt.Errorf("assistant returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyReply
	}

	reply := decoded.Candidates[0].Content.Parts[0].Text
	if internalstrings.IsBlank(reply) {
		return "", ErrEmptyReply
	}
	return reply, nil
}

// stripFenceWrapper unwraps replies that are a single fenced code
// block, a habit of markdown-tuned models when asked for plain text.
func stripFenceWrapper(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") {
		return trimmed
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "```"), "```")
	if newline := strings.IndexByte(inner, '\n'); newline >= 0 {
		// Drop the language tag line, if any.
		firstLine := strings.TrimSpace(inner[:newline])
		if !strings.ContainsAny(firstLine, " \t") {
			inner = inner[newline+1:]
		}
	}
	if strings.Contains(inner, "```") {
		// More fences inside: the reply mixes prose and code, keep it whole.
		return trimmed
	}
	return strings.TrimSpace(inner)
}
