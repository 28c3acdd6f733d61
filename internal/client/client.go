// ABOUTME: HTTP client for the weekplan task API, used by the CLI subcommands
// ABOUTME: Decodes the {success,data,...} envelopes and surfaces API errors with their status

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/2389/weekplan/internal/store"
	"github.com/2389/weekplan/internal/tasks"
)

// DefaultURL is used when no base URL is configured.
const DefaultURL = "http://localhost:3000"

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// envelope covers every JSON body the API returns.
type envelope struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Count      int               `json:"count"`
	Data       json.RawMessage   `json:"data"`
	Statistics *tasks.Statistics `json:"statistics"`
	Error      string            `json:"error"`
}

// Client talks to a weekplan server.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a client for baseURL (DefaultURL when empty).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// BaseURL returns the server address the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListTasks returns all tasks, or those on day when day is not empty.
func (c *Client) ListTasks(ctx context.Context, day string) ([]*store.Task, error) {
	path := "/api/tasks"
	if day != "" {
		path += "?" + url.Values{"day": {day}}.Encode()
	}

	env, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var list []*store.Task
	if err := json.Unmarshal(env.Data, &list); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	return list, nil
}

// GetTask returns task id.
func (c *Client) GetTask(ctx context.Context, id int) (*store.Task, error) {
	env, err := c.do(ctx, http.MethodGet, taskPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeTask(env)
}

// CreateTask adds a task and returns it with its assigned id.
func (c *Client) CreateTask(ctx context.Context, req tasks.CreateRequest) (*store.Task, error) {
	env, err := c.do(ctx, http.MethodPost, "/api/tasks", req)
	if err != nil {
		return nil, err
	}
	return decodeTask(env)
}

// UpdateTask applies the supplied fields of req to task id.
func (c *Client) UpdateTask(ctx context.Context, id int, req tasks.UpdateRequest) (*store.Task, error) {
	env, err := c.do(ctx, http.MethodPut, taskPath(id), req)
	if err != nil {
		return nil, err
	}
	return decodeTask(env)
}

// DeleteTask removes task id and returns what was removed.
func (c *Client) DeleteTask(ctx context.Context, id int) (*store.Task, error) {
	env, err := c.do(ctx, http.MethodDelete, taskPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decodeTask(env)
}

// Statistics returns the aggregate counts.
func (c *Client) Statistics(ctx context.Context) (*tasks.Statistics, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/tasks/statistics", nil)
	if err != nil {
		return nil, err
	}
	if env.Statistics == nil {
		return nil, fmt.Errorf("response has no statistics")
	}
	return env.Statistics, nil
}

// Health checks that the server answers GET /health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return nil
}

// do sends a request with an optional JSON body and decodes the envelope.
func (c *Client) do(ctx context.Context, method, path string, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp.StatusCode, &env, decodeErr, raw)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}
	return &env, nil
}

// errorFromResponse builds an APIError from the best message available.
func errorFromResponse(status int, env *envelope, decodeErr error, raw []byte) error {
	msg := strings.TrimSpace(string(raw))
	if decodeErr == nil && env.Error != "" {
		msg = env.Error
		if env.Message != "" {
			msg += ": " + env.Message
		}
	}
	return &APIError{StatusCode: status, Message: msg}
}

func decodeTask(env *envelope) (*store.Task, error) {
	var t store.Task
	if err := json.Unmarshal(env.Data, &t); err != nil {
		return nil, fmt.Errorf("decoding task: %w", err)
	}
	return &t, nil
}

func taskPath(id int) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}
