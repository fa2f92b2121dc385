package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/page"
)

// CreatePageTool creates a new page.
type CreatePageTool struct {
	uc page.UseCase
}

// NewCreatePageTool creates a new create page tool.
func NewCreatePageTool(uc page.UseCase) agent.Tool {
	return &CreatePageTool{uc: uc}
}

func (t *CreatePageTool) Name() string {
	return "confluence_create_page"
}

func (t *CreatePageTool) Description() string {
	return "Create a new page in a space with a title and storage-format HTML content."
}

func (t *CreatePageTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"space_key": map[string]interface{}{
				"type":        "string",
				"description": "Space key the page belongs to",
			},
			"title": map[string]interface{}{
				"type":        "string",
				"description": "Page title",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Page body in storage-format HTML",
			},
			"parent_page_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional parent page ID",
			},
		},
		"required": []string{"space_key", "title", "content"},
	}
}

func (t *CreatePageTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	spaceKey, ok := params["space_key"].(string)
	if !ok || spaceKey == "" {
		return nil, fmt.Errorf("space_key parameter is required")
	}
	title, ok := params["title"].(string)
	if !ok || title == "" {
		return nil, fmt.Errorf("title parameter is required")
	}
	content, ok := params["content"].(string)
	if !ok || content == "" {
		return nil, fmt.Errorf("content parameter is required")
	}

	input := page.CreateInput{
		SpaceKey: spaceKey,
		Title:    title,
		Body:     content,
	}
	if parent, ok := params["parent_page_id"].(string); ok {
		input.ParentID = parent
	}

	created, err := t.uc.Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("create page failed: %w", err)
	}

	return map[string]interface{}{
		"type": "page_created",
		"data": created,
	}, nil
}
