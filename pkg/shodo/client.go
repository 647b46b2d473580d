// Package shodo talks to the Shodo proofreading API: submit a lint job, poll
// it by id, and reconcile its heterogeneous result messages into a canonical
// shape.
package shodo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iWorld-y/press_radar/pkg/logger"
)

// Error is any non-success outcome from the Shodo API.
type Error struct {
	Op      string
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Client is a Shodo API client. It is stateless and safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient builds a client for the given project root URL
// (e.g. https://api.shodo.ink/@org/project/).
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Lint submits text for proofreading and returns the job id.
func (c *Client) Lint(ctx context.Context, text, lintType string) (string, error) {
	if lintType == "" {
		lintType = "text"
	}

	payload, err := json.Marshal(map[string]string{"body": text, "type": lintType})
	if err != nil {
		return "", fmt.Errorf("marshal lint request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/lint/", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create lint request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", &Error{Op: "lint", Status: status, Message: statusMessage("lint", status)}
	}

	parsed := parseBody(body)
	for _, key := range []string{"lint_id", "id", "task_id"} {
		if id := stringValue(parsed[key]); id != "" {
			return id, nil
		}
	}
	return "", &Error{Op: "lint", Status: status, Message: "Shodo response has no lint id"}
}

// Fetch retrieves the state of a lint job. Malformed bodies never fail: a
// non-JSON body is wrapped as {"raw": body} and an empty body becomes an
// empty map. Only HTTP failures return an error.
func (c *Client) Fetch(ctx context.Context, lintID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/lint/"+lintID+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("create fetch request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &Error{Op: "fetch", Status: status, Message: statusMessage("fetch", status)}
	}

	return parseBody(body), nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &Error{Op: req.Method, Message: fmt.Sprintf("Shodo request failed: %v", err)}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, &Error{Op: req.Method, Status: res.StatusCode, Message: fmt.Sprintf("Shodo read body failed: %v", err)}
	}
	if res.StatusCode >= 300 {
		logger.Log.Warnf("shodo %s %s -> %d: %s", req.Method, req.URL.Path, res.StatusCode, truncate(string(body), 256))
	}
	return res.StatusCode, body, nil
}

// statusMessage maps HTTP failures to the fixed operator-facing messages.
func statusMessage(op string, status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Shodo API認証エラー (TOKEN不正)"
	case http.StatusNotFound:
		return "Shodo API URL誤り"
	case http.StatusUnprocessableEntity:
		return "Shodo API リクエスト形式エラー"
	default:
		return fmt.Sprintf("Shodo %s failed (%d)", op, status)
	}
}

// parseBody decodes a response body leniently: a JSON object passes through,
// anything else is preserved under "raw", and an empty body becomes {}.
func parseBody(body []byte) map[string]any {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return map[string]any{}
	}
	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err == nil && obj != nil {
		return obj
	}
	return map[string]any{"raw": string(body)}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%v", t)
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
