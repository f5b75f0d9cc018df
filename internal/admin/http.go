package admin

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

// HTTPClient talks to a running Kong Admin API.
type HTTPClient struct {
	adminURL string
	client   *http.Client
}

// NewHTTPClient creates a client for the given Kong Admin URL.
func NewHTTPClient(adminURL string) *HTTPClient {
	return &HTTPClient{
		adminURL: strings.TrimRight(adminURL, "/"),
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// post issues one Admin API call. Any non-2xx status is a failure
// carrying the response body as diagnostic text.
func (c *HTTPClient) post(ctx context.Context, path string, payload any, action string) (Object, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.adminURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to %s: %s", action, string(respBody))
	}

	var obj Object
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &obj); err != nil {
			return nil, fmt.Errorf("failed to %s: unexpected response: %w", action, err)
		}
	}
	return obj, nil
}

// CreateService creates a service.
func (c *HTTPClient) CreateService(ctx context.Context, name, serviceURL string) (Object, error) {
	return c.post(ctx, "/services", map[string]any{"name": name, "url": serviceURL}, "create service")
}

// CreateRoute creates a route under the named service.
func (c *HTTPClient) CreateRoute(ctx context.Context, serviceName string, paths []string, name string) (Object, error) {
	payload := map[string]any{"paths": paths}
	if name != "" {
		payload["name"] = name
	}
	path := fmt.Sprintf("/services/%s/routes", url.PathEscape(serviceName))
	return c.post(ctx, path, payload, "create route")
}

// CreatePlugin creates a global plugin.
func (c *HTTPClient) CreatePlugin(ctx context.Context, name string, config map[string]any) (Object, error) {
	payload := map[string]any{"name": name}
	if config != nil {
		payload["config"] = config
	}
	return c.post(ctx, "/plugins", payload, "create plugin")
}

// CreateConsumer creates a consumer.
func (c *HTTPClient) CreateConsumer(ctx context.Context, username string) (Object, error) {
	return c.post(ctx, "/consumers", map[string]any{"username": username}, "create consumer")
}

// AddConsumerAuth attaches credentials of the given type to a consumer.
// When credentials is nil a demonstration credential is synthesized.
func (c *HTTPClient) AddConsumerAuth(ctx context.Context, username, authType string, credentials map[string]any) (Object, error) {
	if credentials == nil {
		var err error
		credentials, err = defaultCredentials(username, authType)
		if err != nil {
			return nil, fmt.Errorf("failed to add consumer auth: %w", err)
		}
	}
	path := fmt.Sprintf("/consumers/%s/%s", url.PathEscape(username), url.PathEscape(authType))
	return c.post(ctx, path, credentials, "add consumer auth")
}
