// Package customapi provides a generic JSON REST client for self-hosted
// integration backends. Authentication is either a static bearer token or an
// OAuth2 client-credentials flow.
package customapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2/clientcredentials"
)

// Config holds custom API client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Version string // API version prefix, e.g. "v1"
	Timeout time.Duration

	// OAuth2 client-credentials settings. When ClientID is set the client
	// authenticates via OAuth2 instead of the static API key.
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
	OAuthScopes       []string
}

// Client is the HTTP wrapper for a generic JSON REST API.
type Client struct {
	baseURL    string
	apiKey     string
	version    string
	httpClient *http.Client
	useOAuth   bool
}

// New creates a custom API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("customapi: base URL is required")
	}
	if cfg.Version == "" {
		cfg.Version = "v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		version: cfg.Version,
	}

	if cfg.OAuthClientID != "" {
		if cfg.OAuthTokenURL == "" {
			return nil, fmt.Errorf("customapi: oauth token URL is required when client ID is set")
		}
		ccfg := &clientcredentials.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			TokenURL:     cfg.OAuthTokenURL,
			Scopes:       cfg.OAuthScopes,
		}
		c.httpClient = ccfg.Client(context.Background())
		c.httpClient.Timeout = cfg.Timeout
		c.useOAuth = true
	} else {
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("customapi: api key is required")
		}
		c.httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Version returns the configured API version prefix.
func (c *Client) Version() string {
	return c.version
}

// Get performs a GET request against path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// APIInfo describes the outcome of a connectivity probe.
type APIInfo struct {
	Reachable  bool   `json:"reachable"`
	Endpoint   string `json:"endpoint"`
	StatusCode int    `json:"status_code"`
	Detail     string `json:"detail,omitempty"`
}

// TestConnection probes the API. It tries the version-less /health endpoint
// first and falls back to the API root when it is absent.
func (c *Client) TestConnection(ctx context.Context) (*APIInfo, error) {
	probes := []string{
		"/health",
		"/",
	}

	var lastErr error
	for _, probe := range probes {
		status, err := c.probe(ctx, probe)
		if err != nil {
			lastErr = err
			continue
		}
		if status == http.StatusNotFound {
			continue
		}
		return &APIInfo{
			Reachable:  status < http.StatusInternalServerError,
			Endpoint:   probe,
			StatusCode: status,
		}, nil
	}

	if lastErr != nil {
		return &APIInfo{Reachable: false, Detail: lastErr.Error()}, nil
	}
	return &APIInfo{Reachable: false, Detail: "no probe endpoint responded"}, nil
}

func (c *Client) probe(ctx context.Context, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("customapi: build probe request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("customapi: probe %s: %w", path, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (map[string]interface{}, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("customapi: marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return nil, fmt.Errorf("customapi: build request: %w", err)
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("customapi: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       string(raw),
		}
	}

	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		// Some endpoints return a bare array. Wrap it so callers always get
		// a map.
		var arr []interface{}
		if arrErr := json.Unmarshal(raw, &arr); arrErr == nil {
			return map[string]interface{}{"items": arr}, nil
		}
		return nil, fmt.Errorf("customapi: decode response: %w", err)
	}
	return out, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if !c.useOAuth {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// APIError is a non-2xx response from the custom API.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("customapi: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsNotFound reports whether the error is a 404 from the custom API.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}
