// Package mcp implements the page repository over an MCP server process
// (e.g. mcp-atlassian's Confluence tools).
package mcp

import (
	"context"
	"fmt"
	"strings"

	"integration-agent/internal/model"
	"integration-agent/internal/page"
	"integration-agent/internal/page/repository"
	pagecustom "integration-agent/internal/page/repository/custom"
	pkgLog "integration-agent/pkg/log"
)

// ToolCaller is the part of the MCP client this repository needs.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
}

type implRepository struct {
	caller ToolCaller
	l      pkgLog.Logger
}

// New creates a page repository backed by an MCP server.
func New(caller ToolCaller, l pkgLog.Logger) repository.PageRepository {
	return &implRepository{
		caller: caller,
		l:      l,
	}
}

func (r *implRepository) GetPage(ctx context.Context, id string) (model.Page, error) {
	raw, err := r.caller.CallTool(ctx, "confluence_get_page", map[string]interface{}{
		"page_id": id,
	})
	if err != nil {
		return model.Page{}, r.mapError(id, err)
	}
	return pagecustom.NormalizePage(raw), nil
}

func (r *implRepository) GetPageByTitle(ctx context.Context, spaceKey, title string) (model.Page, error) {
	raw, err := r.caller.CallTool(ctx, "confluence_get_page", map[string]interface{}{
		"space_key": spaceKey,
		"title":     title,
	})
	if err != nil {
		return model.Page{}, r.mapError(title, err)
	}
	return pagecustom.NormalizePage(raw), nil
}

func (r *implRepository) SearchPages(ctx context.Context, opt repository.SearchOptions) (model.PageSearchResult, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.caller.CallTool(ctx, "confluence_search", map[string]interface{}{
		"query": opt.CQL,
		"limit": limit,
	})
	if err != nil {
		r.l.Errorf(ctx, "mcp repository: page search failed: %v", err)
		return model.PageSearchResult{}, err
	}

	items := itemList(raw)
	pages := make([]model.Page, 0, len(items))
	for _, item := range items {
		pages = append(pages, pagecustom.NormalizePage(item))
	}

	total := len(pages)
	if v, ok := raw["total"].(float64); ok {
		total = int(v)
	}

	return model.PageSearchResult{
		Pages: pages,
		Total: total,
		Limit: limit,
		Start: opt.Start,
	}, nil
}

func (r *implRepository) CreatePage(ctx context.Context, opt repository.CreatePageOptions) (model.Page, error) {
	args := map[string]interface{}{
		"space_key": opt.SpaceKey,
		"title":     opt.Title,
		"content":   opt.Body,
	}
	if opt.ParentID != "" {
		args["parent_id"] = opt.ParentID
	}

	raw, err := r.caller.CallTool(ctx, "confluence_create_page", args)
	if err != nil {
		r.l.Errorf(ctx, "mcp repository: create page %q failed: %v", opt.Title, err)
		return model.Page{}, err
	}
	return pagecustom.NormalizePage(raw), nil
}

func (r *implRepository) UpdatePage(ctx context.Context, id string, opt repository.UpdatePageOptions) (model.Page, error) {
	args := map[string]interface{}{
		"page_id": id,
	}
	if opt.Title != nil {
		args["title"] = *opt.Title
	}
	if opt.Body != nil {
		args["content"] = *opt.Body
	}

	raw, err := r.caller.CallTool(ctx, "confluence_update_page", args)
	if err != nil {
		return model.Page{}, r.mapError(id, err)
	}
	return pagecustom.NormalizePage(raw), nil
}

func (r *implRepository) DeletePage(ctx context.Context, id string) error {
	_, err := r.caller.CallTool(ctx, "confluence_delete_page", map[string]interface{}{
		"page_id": id,
	})
	if err != nil {
		return r.mapError(id, err)
	}
	return nil
}

func (r *implRepository) AddComment(ctx context.Context, id, body string) (model.Comment, error) {
	raw, err := r.caller.CallTool(ctx, "confluence_add_comment", map[string]interface{}{
		"page_id": id,
		"content": body,
	})
	if err != nil {
		return model.Comment{}, r.mapError(id, err)
	}
	return pagecustom.NormalizeComment(raw), nil
}

func (r *implRepository) ListComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.caller.CallTool(ctx, "confluence_get_comments", map[string]interface{}{
		"page_id": id,
		"limit":   limit,
	})
	if err != nil {
		return nil, r.mapError(id, err)
	}

	items := itemList(raw)
	comments := make([]model.Comment, 0, len(items))
	for _, item := range items {
		comments = append(comments, pagecustom.NormalizeComment(item))
	}
	return comments, nil
}

func (r *implRepository) GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error) {
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.caller.CallTool(ctx, "confluence_get_page_children", map[string]interface{}{
		"page_id": id,
		"limit":   limit,
	})
	if err != nil {
		return nil, r.mapError(id, err)
	}

	items := itemList(raw)
	pages := make([]model.Page, 0, len(items))
	for _, item := range items {
		pages = append(pages, pagecustom.NormalizePage(item))
	}
	return pages, nil
}

func (r *implRepository) ListSpaces(ctx context.Context) ([]model.Space, error) {
	raw, err := r.caller.CallTool(ctx, "confluence_get_spaces", nil)
	if err != nil {
		r.l.Errorf(ctx, "mcp repository: list spaces failed: %v", err)
		return nil, err
	}

	items := itemList(raw)
	spaces := make([]model.Space, 0, len(items))
	for _, item := range items {
		s := model.Space{}
		if v, ok := item["id"].(string); ok {
			s.ID = v
		}
		if v, ok := item["key"].(string); ok {
			s.Key = v
		}
		if v, ok := item["name"].(string); ok {
			s.Name = v
		}
		spaces = append(spaces, s)
	}
	return spaces, nil
}

func (r *implRepository) mapError(ref string, err error) error {
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "not found") || strings.Contains(lower, "does not exist") {
		return fmt.Errorf("%w: %s", page.ErrPageNotFound, ref)
	}
	return err
}

func itemList(raw map[string]interface{}) []map[string]interface{} {
	for _, k := range []string{"pages", "results", "items", "comments", "spaces"} {
		arr, ok := raw[k].([]interface{})
		if !ok {
			continue
		}
		out := make([]map[string]interface{}, 0, len(arr))
		for _, item := range arr {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
