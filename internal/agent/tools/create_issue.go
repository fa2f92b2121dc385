package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/issue"
)

// CreateIssueTool creates a new issue.
type CreateIssueTool struct {
	uc issue.UseCase
}

// NewCreateIssueTool creates a new create issue tool.
func NewCreateIssueTool(uc issue.UseCase) agent.Tool {
	return &CreateIssueTool{uc: uc}
}

func (t *CreateIssueTool) Name() string {
	return "jira_create_issue"
}

func (t *CreateIssueTool) Description() string {
	return "Create a new issue in a project with a summary, optional description and issue type."
}

func (t *CreateIssueTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"project_key": map[string]interface{}{
				"type":        "string",
				"description": "Project key the issue belongs to",
			},
			"summary": map[string]interface{}{
				"type":        "string",
				"description": "Issue summary",
			},
			"description": map[string]interface{}{
				"type":        "string",
				"description": "Issue description",
			},
			"issue_type": map[string]interface{}{
				"type":        "string",
				"description": "Issue type (default Task)",
			},
			"priority": map[string]interface{}{
				"type":        "string",
				"description": "Priority name",
			},
			"assignee": map[string]interface{}{
				"type":        "string",
				"description": "Assignee account ID or username",
			},
		},
		"required": []string{"project_key", "summary"},
	}
}

func (t *CreateIssueTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	projectKey, ok := params["project_key"].(string)
	if !ok || projectKey == "" {
		return nil, fmt.Errorf("project_key parameter is required")
	}
	summary, ok := params["summary"].(string)
	if !ok || summary == "" {
		return nil, fmt.Errorf("summary parameter is required")
	}

	input := issue.CreateInput{
		ProjectKey: projectKey,
		Summary:    summary,
	}
	if d, ok := params["description"].(string); ok {
		input.Description = d
	}
	if it, ok := params["issue_type"].(string); ok {
		input.IssueType = it
	}
	if p, ok := params["priority"].(string); ok {
		input.Priority = p
	}
	if a, ok := params["assignee"].(string); ok {
		input.Assignee = a
	}

	created, err := t.uc.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create issue failed: %w", err)
	}

	return map[string]interface{}{
		"type": "issue_created",
		"data": created,
	}, nil
}
