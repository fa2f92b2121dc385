package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/issue"
)

// AddCommentTool adds a comment to an issue.
type AddCommentTool struct {
	uc issue.UseCase
}

// NewAddCommentTool creates a new add comment tool.
func NewAddCommentTool(uc issue.UseCase) agent.Tool {
	return &AddCommentTool{uc: uc}
}

func (t *AddCommentTool) Name() string {
	return "jira_add_comment"
}

func (t *AddCommentTool) Description() string {
	return "Add a comment to an existing issue."
}

func (t *AddCommentTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"issue_key": map[string]interface{}{
				"type":        "string",
				"description": "The issue key (e.g. PROJ-123)",
			},
			"comment": map[string]interface{}{
				"type":        "string",
				"description": "Comment body",
			},
		},
		"required": []string{"issue_key", "comment"},
	}
}

func (t *AddCommentTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	key, ok := params["issue_key"].(string)
	if !ok || key == "" {
		return nil, fmt.Errorf("issue_key parameter is required")
	}
	comment, ok := params["comment"].(string)
	if !ok || comment == "" {
		return nil, fmt.Errorf("comment parameter is required")
	}

	added, err := t.uc.AddComment(ctx, key, comment)
	if err != nil {
		return nil, fmt.Errorf("add comment failed: %w", err)
	}

	return map[string]interface{}{
		"type": "comment_added",
		"data": added,
	}, nil
}
