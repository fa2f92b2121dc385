// Package custom implements the page repository against a generic
// self-hosted REST API, normalizing common field aliases and translating
// CQL queries into flat filter parameters.
package custom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"integration-agent/internal/model"
	"integration-agent/internal/page"
	"integration-agent/internal/page/repository"
	"integration-agent/pkg/customapi"
	pkgLog "integration-agent/pkg/log"
)

type implRepository struct {
	client *customapi.Client
	l      pkgLog.Logger
}

// New creates a page repository backed by the custom API.
func New(client *customapi.Client, l pkgLog.Logger) repository.PageRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) pagePath(parts ...string) string {
	path := "/" + r.client.Version() + "/pages"
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

func (r *implRepository) GetPage(ctx context.Context, id string) (model.Page, error) {
	raw, err := r.client.Get(ctx, r.pagePath(id), nil)
	if err != nil {
		if customapi.IsNotFound(err) {
			return model.Page{}, fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
		}
		r.l.Errorf(ctx, "custom repository: get page %s failed: %v", id, err)
		return model.Page{}, err
	}
	return NormalizePage(raw), nil
}

func (r *implRepository) GetPageByTitle(ctx context.Context, spaceKey, title string) (model.Page, error) {
	query := url.Values{}
	query.Set("space", spaceKey)
	query.Set("title", title)
	query.Set("limit", "1")

	raw, err := r.client.Get(ctx, r.pagePath(), query)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: find %q in %s failed: %v", title, spaceKey, err)
		return model.Page{}, err
	}

	items := pageItems(raw)
	if len(items) == 0 {
		return model.Page{}, fmt.Errorf("%w: %q in space %s", page.ErrPageNotFound, title, spaceKey)
	}
	return NormalizePage(items[0]), nil
}

func (r *implRepository) SearchPages(ctx context.Context, opt repository.SearchOptions) (model.PageSearchResult, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = 20
	}

	query := cqlToFilters(opt.CQL)
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(opt.Start))

	raw, err := r.client.Get(ctx, r.pagePath("search"), query)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: page search failed: %v", err)
		return model.PageSearchResult{}, err
	}

	items := pageItems(raw)
	pages := make([]model.Page, 0, len(items))
	for _, item := range items {
		pages = append(pages, NormalizePage(item))
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
	body := map[string]interface{}{
		"space": opt.SpaceKey,
		"title": opt.Title,
		"body":  opt.Body,
	}
	if opt.ParentID != "" {
		body["parent_id"] = opt.ParentID
	}

	raw, err := r.client.Post(ctx, r.pagePath(), body)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: create page %q failed: %v", opt.Title, err)
		return model.Page{}, err
	}
	return NormalizePage(raw), nil
}

func (r *implRepository) UpdatePage(ctx context.Context, id string, opt repository.UpdatePageOptions) (model.Page, error) {
	body := map[string]interface{}{}
	if opt.Title != nil {
		body["title"] = *opt.Title
	}
	if opt.Body != nil {
		body["body"] = *opt.Body
	}

	raw, err := r.client.Put(ctx, r.pagePath(id), body)
	if err != nil {
		if customapi.IsNotFound(err) {
			return model.Page{}, fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
		}
		r.l.Errorf(ctx, "custom repository: update page %s failed: %v", id, err)
		return model.Page{}, err
	}
	return NormalizePage(raw), nil
}

func (r *implRepository) DeletePage(ctx context.Context, id string) error {
	_, err := r.client.Delete(ctx, r.pagePath(id))
	if err != nil {
		if customapi.IsNotFound(err) {
			return fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
		}
		r.l.Errorf(ctx, "custom repository: delete page %s failed: %v", id, err)
		return err
	}
	return nil
}

func (r *implRepository) AddComment(ctx context.Context, id, body string) (model.Comment, error) {
	raw, err := r.client.Post(ctx, r.pagePath(id, "comments"), map[string]string{"body": body})
	if err != nil {
		if customapi.IsNotFound(err) {
			return model.Comment{}, fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
		}
		r.l.Errorf(ctx, "custom repository: add comment to page %s failed: %v", id, err)
		return model.Comment{}, err
	}
	return NormalizeComment(raw), nil
}

func (r *implRepository) ListComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	raw, err := r.client.Get(ctx, r.pagePath(id, "comments"), query)
	if err != nil {
		if customapi.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
		}
		return nil, err
	}

	items := pageItems(raw)
	comments := make([]model.Comment, 0, len(items))
	for _, item := range items {
		comments = append(comments, NormalizeComment(item))
	}
	return comments, nil
}

func (r *implRepository) GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error) {
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	raw, err := r.client.Get(ctx, r.pagePath(id, "children"), query)
	if err != nil {
		if customapi.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
		}
		return nil, err
	}

	items := pageItems(raw)
	pages := make([]model.Page, 0, len(items))
	for _, item := range items {
		pages = append(pages, NormalizePage(item))
	}
	return pages, nil
}

func (r *implRepository) ListSpaces(ctx context.Context) ([]model.Space, error) {
	raw, err := r.client.Get(ctx, "/"+r.client.Version()+"/spaces", nil)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: list spaces failed: %v", err)
		return nil, err
	}

	items := pageItems(raw)
	spaces := make([]model.Space, 0, len(items))
	for _, item := range items {
		spaces = append(spaces, model.Space{
			ID:          stringField(item, "id"),
			Key:         stringField(item, "key", "slug"),
			Name:        stringField(item, "name", "title"),
			Description: stringField(item, "description"),
		})
	}
	return spaces, nil
}
