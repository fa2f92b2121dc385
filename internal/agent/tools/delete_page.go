package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/page"
)

// DeletePageTool removes a page by ID.
type DeletePageTool struct {
	uc page.UseCase
}

// NewDeletePageTool creates a new delete page tool.
func NewDeletePageTool(uc page.UseCase) agent.Tool {
	return &DeletePageTool{uc: uc}
}

func (t *DeletePageTool) Name() string {
	return "confluence_delete_page"
}

func (t *DeletePageTool) Description() string {
	return "Delete a page by ID. This cannot be undone."
}

func (t *DeletePageTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"page_id": map[string]interface{}{
				"type":        "string",
				"description": "ID of the page to delete",
			},
		},
		"required": []string{"page_id"},
	}
}

func (t *DeletePageTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	id, ok := params["page_id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("page_id parameter is required")
	}

	if err := t.uc.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete page failed: %w", err)
	}

	return map[string]interface{}{
		"type": "page_deleted",
		"data": map[string]string{"page_id": id},
	}, nil
}
