// Package api is the HTTP client for the Creative Marketing demo API.
package api

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
)

const (
	// DefaultBaseURL is where the demo API listens by default
	DefaultBaseURL = "http://127.0.0.1:8000"

	// DefaultTimeout bounds a single request. Generation calls an LLM so
	// this is generous.
	DefaultTimeout = 2 * time.Minute
)

// Client talks JSON to the demo API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. A zero timeout means DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Error is a request the server answered but did not accept: either a
// non-200 status or a body with success=false.
type Error struct {
	StatusCode int
	Detail     string
	Message    string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Detail)
	}
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Reason returns the most specific server-supplied explanation, or ""
func (e *Error) Reason() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Message
}

// Login checks credentials. The returned error is *Error when the server
// rejected them.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	status, err := c.do(ctx, http.MethodPost, "/api/login", LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK || !resp.Success {
		return nil, &Error{StatusCode: status, Detail: string(resp.Detail), Message: resp.Message}
	}
	if resp.UID == "" {
		return nil, &Error{StatusCode: status, Message: "response has no uid"}
	}
	return &resp, nil
}

// GenerateTask asks the API to generate marketing content. The returned
// error is *Error when the server answered without success.
func (c *Client) GenerateTask(ctx context.Context, req GenerateTaskRequest) (*GenerateTaskResponse, error) {
	var resp GenerateTaskResponse
	status, err := c.do(ctx, http.MethodPost, "/api/generate_task", req, &resp)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK || !resp.Success {
		return nil, &Error{StatusCode: status, Detail: string(resp.Detail), Message: resp.Message}
	}
	if resp.Output == nil {
		return nil, &Error{StatusCode: status, Message: "response has no output"}
	}
	return &resp, nil
}

// ListTasks returns the stored history for uid
func (c *Client) ListTasks(ctx context.Context, uid string) (*TasksResponse, error) {
	var resp TasksResponse
	status, err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(uid), nil, &resp)
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK || !resp.Success {
		return nil, &Error{StatusCode: status, Detail: string(resp.Detail)}
	}
	return &resp, nil
}

// do executes a request and decodes the JSON body into out whatever the
// status. It only fails on transport or decode errors.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("unmarshal response (HTTP %d): %w", resp.StatusCode, err)
	}

	return resp.StatusCode, nil
}
