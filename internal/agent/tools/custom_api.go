package tools

import (
	"context"
	"fmt"
	"net/url"

	"integration-agent/internal/agent"
	"integration-agent/pkg/customapi"
)

// CustomAPIGetTool performs a raw GET against the custom API.
type CustomAPIGetTool struct {
	client *customapi.Client
}

// NewCustomAPIGetTool creates a new custom API GET tool.
func NewCustomAPIGetTool(client *customapi.Client) agent.Tool {
	return &CustomAPIGetTool{client: client}
}

func (t *CustomAPIGetTool) Name() string {
	return "custom_api_get"
}

func (t *CustomAPIGetTool) Description() string {
	return "Make a GET request to a custom API endpoint path."
}

func (t *CustomAPIGetTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"endpoint": map[string]interface{}{
				"type":        "string",
				"description": "API endpoint path (e.g. issues/PROJ-1)",
			},
			"params": map[string]interface{}{
				"type":        "object",
				"description": "Optional query parameters",
			},
		},
		"required": []string{"endpoint"},
	}
}

func (t *CustomAPIGetTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	endpoint, ok := params["endpoint"].(string)
	if !ok || endpoint == "" {
		return nil, fmt.Errorf("endpoint parameter is required")
	}

	query := url.Values{}
	if raw, ok := params["params"].(map[string]interface{}); ok {
		for k, v := range raw {
			query.Set(k, fmt.Sprintf("%v", v))
		}
	}

	result, err := t.client.Get(ctx, endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("api get failed: %w", err)
	}

	return map[string]interface{}{
		"type": "api_response",
		"data": result,
	}, nil
}

// CustomAPIPostTool performs a raw POST against the custom API.
type CustomAPIPostTool struct {
	client *customapi.Client
}

// NewCustomAPIPostTool creates a new custom API POST tool.
func NewCustomAPIPostTool(client *customapi.Client) agent.Tool {
	return &CustomAPIPostTool{client: client}
}

func (t *CustomAPIPostTool) Name() string {
	return "custom_api_post"
}

func (t *CustomAPIPostTool) Description() string {
	return "Make a POST request with a JSON body to a custom API endpoint path."
}

func (t *CustomAPIPostTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"endpoint": map[string]interface{}{
				"type":        "string",
				"description": "API endpoint path (e.g. issues)",
			},
			"data": map[string]interface{}{
				"type":        "object",
				"description": "JSON request body",
			},
		},
		"required": []string{"endpoint", "data"},
	}
}

func (t *CustomAPIPostTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	endpoint, ok := params["endpoint"].(string)
	if !ok || endpoint == "" {
		return nil, fmt.Errorf("endpoint parameter is required")
	}
	body, ok := params["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("data parameter is required")
	}

	result, err := t.client.Post(ctx, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("api post failed: %w", err)
	}

	return map[string]interface{}{
		"type": "api_response",
		"data": result,
	}, nil
}

// TestConnectionTool probes the custom API for reachability.
type TestConnectionTool struct {
	client *customapi.Client
}

// NewTestConnectionTool creates a new test connection tool.
func NewTestConnectionTool(client *customapi.Client) agent.Tool {
	return &TestConnectionTool{client: client}
}

func (t *TestConnectionTool) Name() string {
	return "test_api_connection"
}

func (t *TestConnectionTool) Description() string {
	return "Test the custom API connection and report the reachable endpoint."
}

func (t *TestConnectionTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
		"required":   []string{},
	}
}

func (t *TestConnectionTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	info, err := t.client.TestConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("connection test failed: %w", err)
	}

	return map[string]interface{}{
		"type": "connection_status",
		"data": info,
	}, nil
}
