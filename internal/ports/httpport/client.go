// Package httpport calls plugin tools and extension operations over HTTP.
package httpport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseBytes = 4 << 20

// Client posts rendered arguments as JSON and returns the JSON reply.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. timeout bounds a whole request; the
// dispatcher applies its own, usually shorter, deadline through ctx.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// InvokeTool implements dispatch.ToolInvoker:
// POST {base}/plugins/{plugin}/tools/{tool}/invoke
func (c *Client) InvokeTool(ctx context.Context, pluginID, toolName string, args json.RawMessage) (json.RawMessage, error) {
	path := "/plugins/" + url.PathEscape(pluginID) + "/tools/" + url.PathEscape(toolName) + "/invoke"
	return c.post(ctx, path, args)
}

// CallOperation implements dispatch.ExtensionCaller:
// POST {base}/extensions/{extension}/operations/{operation}
func (c *Client) CallOperation(ctx context.Context, extensionID, operation string, args json.RawMessage) (json.RawMessage, error) {
	path := "/extensions/" + url.PathEscape(extensionID) + "/operations/" + url.PathEscape(operation)
	return c.post(ctx, path, args)
}

func (c *Client) post(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Debug("[HTTPPort] Non-success reply", "path", path, "status", resp.StatusCode)
		return nil, fmt.Errorf("POST %s: status %d: %s", path, resp.StatusCode, truncate(data, 256))
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("POST %s: response is not JSON", path)
	}
	return json.RawMessage(data), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
