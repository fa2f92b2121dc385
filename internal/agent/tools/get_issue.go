package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/issue"
)

// GetIssueTool fetches a single issue by key.
type GetIssueTool struct {
	uc issue.UseCase
}

// NewGetIssueTool creates a new get issue tool.
func NewGetIssueTool(uc issue.UseCase) agent.Tool {
	return &GetIssueTool{uc: uc}
}

func (t *GetIssueTool) Name() string {
	return "jira_get_issue"
}

func (t *GetIssueTool) Description() string {
	return "Get a specific issue by key, including status, type, assignee and description."
}

func (t *GetIssueTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"issue_key": map[string]interface{}{
				"type":        "string",
				"description": "The issue key (e.g. PROJ-123)",
			},
		},
		"required": []string{"issue_key"},
	}
}

func (t *GetIssueTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	key, ok := params["issue_key"].(string)
	if !ok || key == "" {
		return nil, fmt.Errorf("issue_key parameter is required")
	}

	iss, err := t.uc.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get issue failed: %w", err)
	}

	return map[string]interface{}{
		"type": "issue",
		"data": iss,
	}, nil
}
