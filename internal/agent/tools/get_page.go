package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/page"
)

// GetPageTool fetches a single page by ID.
type GetPageTool struct {
	uc page.UseCase
}

// NewGetPageTool creates a new get page tool.
func NewGetPageTool(uc page.UseCase) agent.Tool {
	return &GetPageTool{uc: uc}
}

func (t *GetPageTool) Name() string {
	return "confluence_get_page"
}

func (t *GetPageTool) Description() string {
	return "Get a page by ID, including its storage-format body and version."
}

func (t *GetPageTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"page_id": map[string]interface{}{
				"type":        "string",
				"description": "Page ID",
			},
		},
		"required": []string{"page_id"},
	}
}

func (t *GetPageTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	id, ok := params["page_id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("page_id parameter is required")
	}

	p, err := t.uc.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get page failed: %w", err)
	}

	return map[string]interface{}{
		"type": "page",
		"data": p,
	}, nil
}
