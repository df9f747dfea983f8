package dash

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lintelhq/lintel/playbook"
	"github.com/lintelhq/lintel/project"
	"github.com/lintelhq/lintel/timeline"
)

// Client calls dashboard RPCs.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// Health checks the server and returns its entity counts.
func (c *Client) Health(ctx context.Context) (project.Counts, error) {
	var response healthResponse
	if err := c.get(ctx, "/healthz", &response); err != nil {
		return project.Counts{}, err
	}
	return response.Counts, nil
}

// Dashboard fetches the current snapshot.
func (c *Client) Dashboard(ctx context.Context) (project.Snapshot, error) {
	var snapshot project.Snapshot
	if err := c.get(ctx, "/api/dashboard", &snapshot); err != nil {
		return project.Snapshot{}, err
	}
	return snapshot, nil
}

// CreateProject creates a project on the server.
func (c *Client) CreateProject(ctx context.Context, name string, opts project.CreateProjectOptions) (*project.Project, error) {
	var response projectResponse
	if err := c.post(ctx, "/api/project/create", projectCreateRequest{Name: name, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Project, nil
}

// ListProjects lists projects matching the filter.
func (c *Client) ListProjects(ctx context.Context, filter project.ProjectFilter) ([]project.Project, error) {
	var response projectListResponse
	if err := c.post(ctx, "/api/project/list", projectListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Projects, nil
}

// UpdateProject updates a project on the server.
func (c *Client) UpdateProject(ctx context.Context, id string, opts project.UpdateProjectOptions) (*project.Project, error) {
	var response projectResponse
	if err := c.post(ctx, "/api/project/update", projectUpdateRequest{ID: id, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Project, nil
}

// DeleteProject removes a project and everything that references it.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.post(ctx, "/api/project/delete", deleteRequest{ID: id}, &emptyResponse{})
}

// CreateTask creates a task on the server.
func (c *Client) CreateTask(ctx context.Context, title string, opts project.CreateTaskOptions) (*project.Task, error) {
	var response taskResponse
	if err := c.post(ctx, "/api/task/create", taskCreateRequest{Title: title, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Task, nil
}

// ListTasks lists tasks matching the filter.
func (c *Client) ListTasks(ctx context.Context, filter project.TaskFilter) ([]project.Task, error) {
	var response taskListResponse
	if err := c.post(ctx, "/api/task/list", taskListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Tasks, nil
}

// UpdateTask updates a task on the server.
func (c *Client) UpdateTask(ctx context.Context, id string, opts project.UpdateTaskOptions) (*project.Task, error) {
	var response taskResponse
	if err := c.post(ctx, "/api/task/update", taskUpdateRequest{ID: id, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.post(ctx, "/api/task/delete", deleteRequest{ID: id}, &emptyResponse{})
}

// CreateRisk records a risk on the server.
func (c *Client) CreateRisk(ctx context.Context, title string, opts project.CreateRiskOptions) (*project.Risk, error) {
	var response riskResponse
	if err := c.post(ctx, "/api/risk/create", riskCreateRequest{Title: title, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Risk, nil
}

// ListRisks lists risks matching the filter.
func (c *Client) ListRisks(ctx context.Context, filter project.RiskFilter) ([]project.Risk, error) {
	var response riskListResponse
	if err := c.post(ctx, "/api/risk/list", riskListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Risks, nil
}

// UpdateRisk updates a risk on the server.
func (c *Client) UpdateRisk(ctx context.Context, id string, opts project.UpdateRiskOptions) (*project.Risk, error) {
	var response riskResponse
	if err := c.post(ctx, "/api/risk/update", riskUpdateRequest{ID: id, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Risk, nil
}

// CloseRisk marks a risk as no longer tracked.
func (c *Client) CloseRisk(ctx context.Context, id string) (*project.Risk, error) {
	closed := false
	return c.UpdateRisk(ctx, id, project.UpdateRiskOptions{Open: &closed})
}

// DeleteRisk removes a risk.
func (c *Client) DeleteRisk(ctx context.Context, id string) error {
	return c.post(ctx, "/api/risk/delete", deleteRequest{ID: id}, &emptyResponse{})
}

// CreateExpense books an expense on the server.
func (c *Client) CreateExpense(ctx context.Context, description string, opts project.CreateExpenseOptions) (*project.Expense, error) {
	var response expenseResponse
	if err := c.post(ctx, "/api/expense/create", expenseCreateRequest{Description: description, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Expense, nil
}

// ListExpenses lists expenses matching the filter.
func (c *Client) ListExpenses(ctx context.Context, filter project.ExpenseFilter) ([]project.Expense, error) {
	var response expenseListResponse
	if err := c.post(ctx, "/api/expense/list", expenseListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Expenses, nil
}

// ApproveExpense marks an expense as signed off.
func (c *Client) ApproveExpense(ctx context.Context, id string) (*project.Expense, error) {
	approved := true
	var response expenseResponse
	if err := c.post(ctx, "/api/expense/update", expenseUpdateRequest{ID: id, Options: project.UpdateExpenseOptions{Approved: &approved}}, &response); err != nil {
		return nil, err
	}
	return &response.Expense, nil
}

// DeleteExpense removes an expense.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	return c.post(ctx, "/api/expense/delete", deleteRequest{ID: id}, &emptyResponse{})
}

// CreateMilestone creates a milestone on the server.
func (c *Client) CreateMilestone(ctx context.Context, title string, opts project.CreateMilestoneOptions) (*project.Milestone, error) {
	var response milestoneResponse
	if err := c.post(ctx, "/api/milestone/create", milestoneCreateRequest{Title: title, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Milestone, nil
}

// ListMilestones lists milestones matching the filter.
func (c *Client) ListMilestones(ctx context.Context, filter project.MilestoneFilter) ([]project.Milestone, error) {
	var response milestoneListResponse
	if err := c.post(ctx, "/api/milestone/list", milestoneListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Milestones, nil
}

// CompleteMilestone marks a milestone as reached.
func (c *Client) CompleteMilestone(ctx context.Context, id string) (*project.Milestone, error) {
	completed := true
	var response milestoneResponse
	if err := c.post(ctx, "/api/milestone/update", milestoneUpdateRequest{ID: id, Options: project.UpdateMilestoneOptions{Completed: &completed}}, &response); err != nil {
		return nil, err
	}
	return &response.Milestone, nil
}

// DeleteMilestone removes a milestone.
func (c *Client) DeleteMilestone(ctx context.Context, id string) error {
	return c.post(ctx, "/api/milestone/delete", deleteRequest{ID: id}, &emptyResponse{})
}

// PostMessage appends a message to the site log.
func (c *Client) PostMessage(ctx context.Context, body string, opts project.PostMessageOptions) (*project.Message, error) {
	var response messageResponse
	if err := c.post(ctx, "/api/message/post", messagePostRequest{Body: body, Options: opts}, &response); err != nil {
		return nil, err
	}
	return &response.Message, nil
}

// ListMessages lists site log messages matching the filter.
func (c *Client) ListMessages(ctx context.Context, filter project.MessageFilter) ([]project.Message, error) {
	var response messageListResponse
	if err := c.post(ctx, "/api/message/list", messageListRequest{Filter: filter}, &response); err != nil {
		return nil, err
	}
	return response.Messages, nil
}

// Timeline computes a Gantt layout on the server.
func (c *Client) Timeline(ctx context.Context, zoom string, reference *time.Time, year int, projectID string) (timeline.Layout, error) {
	var response timelineResponse
	request := timelineRequest{Zoom: zoom, Reference: reference, Year: year, ProjectID: projectID}
	if err := c.post(ctx, "/api/timeline", request, &response); err != nil {
		return timeline.Layout{}, err
	}
	return response.Layout, nil
}

// Chat asks the assistant a question and returns its answer.
func (c *Client) Chat(ctx context.Context, question string, playbooks []playbook.Playbook) (string, error) {
	var response chatResponse
	if err := c.post(ctx, "/api/chat", chatRequest{Question: question, Playbooks: playbooks}, &response); err != nil {
		return "", err
	}
	return response.Answer, nil
}

// GanttSVG fetches the SVG export for the given view.
func (c *Client) GanttSVG(ctx context.Context, zoom string, year int, projectID string) ([]byte, error) {
	query := url.Values{}
	if zoom != "" {
		query.Set("zoom", zoom)
	}
	if year != 0 {
		query.Set("year", strconv.Itoa(year))
	}
	if projectID != "" {
		query.Set("project", projectID)
	}
	target := c.baseURL + "/api/gantt.svg"
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, readErrorResponse(resp)
	}
	return io.ReadAll(resp.Body)
}

// StreamMessages opens the live message stream. The message channel
// closes when the stream ends; the error channel then reports why (nil
// for a clean end, including context cancellation).
func (c *Client) StreamMessages(ctx context.Context, projectID string) (<-chan project.Message, <-chan error) {
	messages := make(chan project.Message, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(messages)
		payload, err := json.Marshal(messageStreamRequest{ProjectID: projectID})
		if err != nil {
			errCh <- err
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/message/stream", bytes.NewReader(payload))
		if err != nil {
			errCh <- err
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.client.Do(req)
		if err != nil {
			errCh <- err
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			errCh <- readErrorResponse(resp)
			return
		}
		decoder := json.NewDecoder(resp.Body)
		for {
			var event StreamEvent
			if err := decoder.Decode(&event); err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					errCh <- nil
					return
				}
				errCh <- err
				return
			}
			if event.Type != "message" || event.Message == nil {
				continue
			}
			select {
			case messages <- *event.Message:
			case <-ctx.Done():
				errCh <- nil
				return
			}
		}
	}()

	return messages, errCh
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if message, ok := payload["error"]; ok {
			return fmt.Errorf("dash error: %s", message)
		}
	}
	return fmt.Errorf("dash error: %s", resp.Status)
}
