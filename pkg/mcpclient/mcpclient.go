// Package mcpclient wraps a stdio MCP server process behind a small
// call-oriented client.
package mcpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Config holds settings for launching the MCP server process.
type Config struct {
	Command string
	Args    []string
	Env     []string
	Timeout time.Duration
}

// Client manages a stdio MCP server subprocess.
type Client struct {
	mcp     *client.Client
	timeout time.Duration
	name    string
}

// New launches the MCP server process and performs the initialize handshake.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Command == "" {
		return nil, fmt.Errorf("mcpclient: command is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	c, err := client.NewStdioMCPClient(cfg.Command, cfg.Env, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: start %s: %w", cfg.Command, err)
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "integration-agent",
		Version: "1.0.0",
	}
	initReq.Params.Capabilities = mcp.ClientCapabilities{}

	initResp, err := c.Initialize(initCtx, initReq)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("mcpclient: initialize %s: %w", cfg.Command, err)
	}

	return &Client{
		mcp:     c,
		timeout: cfg.Timeout,
		name:    initResp.ServerInfo.Name,
	}, nil
}

// ServerName returns the name reported by the MCP server during initialize.
func (c *Client) ServerName() string {
	return c.name
}

// ListTools returns the names of tools exposed by the server.
func (c *Client) ListTools(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.mcp.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("mcpclient: list tools: %w", err)
	}

	names := make([]string, 0, len(resp.Tools))
	for _, tool := range resp.Tools {
		names = append(names, tool.Name)
	}
	return names, nil
}

// CallTool invokes a named tool and decodes the first text content block as
// JSON. Non-JSON text is returned under the "text" key.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mcpclient: call %s: %w", name, err)
	}

	text := firstText(result)
	if result.IsError {
		return nil, fmt.Errorf("mcpclient: tool %s failed: %s", name, text)
	}

	if text == "" {
		return map[string]interface{}{}, nil
	}

	var out map[string]interface{}
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return map[string]interface{}{"text": text}, nil
	}
	return out, nil
}

// Close shuts down the MCP server process.
func (c *Client) Close() error {
	return c.mcp.Close()
}

func firstText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
