package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/page"
)

// AddPageCommentTool adds a comment to a page.
type AddPageCommentTool struct {
	uc page.UseCase
}

// NewAddPageCommentTool creates a new add page comment tool.
func NewAddPageCommentTool(uc page.UseCase) agent.Tool {
	return &AddPageCommentTool{uc: uc}
}

func (t *AddPageCommentTool) Name() string {
	return "confluence_add_comment"
}

func (t *AddPageCommentTool) Description() string {
	return "Add a comment to an existing page."
}

func (t *AddPageCommentTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"page_id": map[string]interface{}{
				"type":        "string",
				"description": "ID of the page to comment on",
			},
			"comment": map[string]interface{}{
				"type":        "string",
				"description": "Comment body",
			},
		},
		"required": []string{"page_id", "comment"},
	}
}

func (t *AddPageCommentTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	id, ok := params["page_id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("page_id parameter is required")
	}
	comment, ok := params["comment"].(string)
	if !ok || comment == "" {
		return nil, fmt.Errorf("comment parameter is required")
	}

	added, err := t.uc.AddComment(ctx, id, comment)
	if err != nil {
		return nil, fmt.Errorf("add page comment failed: %w", err)
	}

	return map[string]interface{}{
		"type": "comment_added",
		"data": added,
	}, nil
}

// GetPageCommentsTool lists the comments on a page.
type GetPageCommentsTool struct {
	uc page.UseCase
}

// NewGetPageCommentsTool creates a new get page comments tool.
func NewGetPageCommentsTool(uc page.UseCase) agent.Tool {
	return &GetPageCommentsTool{uc: uc}
}

func (t *GetPageCommentsTool) Name() string {
	return "confluence_get_comments"
}

func (t *GetPageCommentsTool) Description() string {
	return "List the comments on a page."
}

func (t *GetPageCommentsTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"page_id": map[string]interface{}{
				"type":        "string",
				"description": "Page ID",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of comments to return (default 20)",
			},
		},
		"required": []string{"page_id"},
	}
}

func (t *GetPageCommentsTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	id, ok := params["page_id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("page_id parameter is required")
	}

	limit := 0
	if v, ok := params["limit"].(float64); ok {
		limit = int(v)
	}

	comments, err := t.uc.GetComments(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("get page comments failed: %w", err)
	}

	return map[string]interface{}{
		"type":  "comments",
		"data":  comments,
		"count": len(comments),
	}, nil
}
