package remote

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

	"worknest-console/internal/logger"
	"worknest-console/internal/metrics"
)

// Client talks to the WorkNest REST backend.
type Client struct {
	BaseURL    string
	Origin     string
	HTTPClient *http.Client
	token      string
}

// NewClient creates a backend client. A zero timeout waits for the backend indefinitely.
func NewClient(baseURL, origin string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if origin == "" {
		origin = baseURL
	}
	return &Client{
		BaseURL: baseURL,
		Origin:  strings.TrimRight(origin, "/"),
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithToken returns a copy of the client that sends the given bearer token.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = token
	return &clone
}

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status int
	Path   string
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend %s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Path, e.Status, e.Detail)
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Result is the free-form message body the backend returns for most mutations.
type Result map[string]interface{}

// Message returns the "message" field, if any.
func (r Result) Message() string {
	if msg, ok := r["message"].(string); ok {
		return msg
	}
	return ""
}

// doRequest sends a JSON request. label is the route template used for metrics.
func (c *Client) doRequest(ctx context.Context, method, label, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", label, err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, label, result)
}

func (c *Client) send(req *http.Request, label string, result interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.ObserveBackendCall(req.Method, label, 0, time.Since(start))
		logger.WarnLog(req.Context(), "backend %s %s unreachable: %v", req.Method, label, err)
		return fmt.Errorf("backend %s %s: %w", req.Method, label, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackendCall(req.Method, label, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Path: req.URL.Path, Detail: readDetail(resp.Body)}
		logger.WarnLog(req.Context(), "backend request failed: %s", apiErr.Error())
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode %s response: %w", label, err)
		}
	}
	return nil
}

// readDetail extracts the backend's {"detail": ...} message.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return strings.TrimSpace(string(raw))
	}
	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text
	}
	return string(body.Detail)
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

// deletePath builds a soft-delete path carrying the actor as a query parameter.
func deletePath(prefix string, id, deletedBy int64) string {
	q := url.Values{}
	q.Set("deleted_by", strconv.FormatInt(deletedBy, 10))
	return idPath(prefix, id) + "?" + q.Encode()
}
