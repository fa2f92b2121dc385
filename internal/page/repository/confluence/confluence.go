package confluence

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"integration-agent/internal/model"
	"integration-agent/internal/page"
	"integration-agent/internal/page/repository"
	pkgLog "integration-agent/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a new Confluence-backed page repository.
func New(client *Client, l pkgLog.Logger) repository.PageRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) GetPage(ctx context.Context, id string) (model.Page, error) {
	raw, err := r.client.GetContent(ctx, id)
	if err != nil {
		return model.Page{}, r.mapError(ctx, "get page", id, err)
	}
	return toModelPage(raw), nil
}

func (r *implRepository) GetPageByTitle(ctx context.Context, spaceKey, title string) (model.Page, error) {
	found, err := r.client.FindContent(ctx, spaceKey, title)
	if err != nil {
		r.l.Errorf(ctx, "confluence repository: find %q in %s failed: %v", title, spaceKey, err)
		return model.Page{}, err
	}
	if len(found.Results) == 0 {
		return model.Page{}, fmt.Errorf("%w: %q in space %s", page.ErrPageNotFound, title, spaceKey)
	}
	return toModelPage(&found.Results[0]), nil
}

func (r *implRepository) SearchPages(ctx context.Context, opt repository.SearchOptions) (model.PageSearchResult, error) {
	limit := opt.Limit
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.client.SearchContent(ctx, opt.CQL, limit, opt.Start)
	if err != nil {
		r.l.Errorf(ctx, "confluence repository: search failed: %v", err)
		return model.PageSearchResult{}, err
	}

	pages := make([]model.Page, 0, len(raw.Results))
	for _, c := range raw.Results {
		pages = append(pages, toModelPage(&c))
	}

	total := raw.TotalSize
	if total == 0 {
		total = raw.Size
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
		"type":  "page",
		"title": opt.Title,
		"space": map[string]string{"key": opt.SpaceKey},
		"body": map[string]interface{}{
			"storage": map[string]string{
				"value":          opt.Body,
				"representation": "storage",
			},
		},
	}
	if opt.ParentID != "" {
		body["ancestors"] = []map[string]string{{"id": opt.ParentID}}
	}

	created, err := r.client.CreateContent(ctx, body)
	if err != nil {
		r.l.Errorf(ctx, "confluence repository: create %q failed: %v", opt.Title, err)
		return model.Page{}, err
	}
	return toModelPage(created), nil
}

// UpdatePage fetches the current version, then PUTs the new content with
// version.number+1 as the Confluence API requires.
func (r *implRepository) UpdatePage(ctx context.Context, id string, opt repository.UpdatePageOptions) (model.Page, error) {
	current, err := r.client.GetContent(ctx, id)
	if err != nil {
		return model.Page{}, r.mapError(ctx, "update page", id, err)
	}

	title := current.Title
	if opt.Title != nil {
		title = *opt.Title
	}
	bodyValue := ""
	if current.Body != nil && current.Body.Storage != nil {
		bodyValue = current.Body.Storage.Value
	}
	if opt.Body != nil {
		bodyValue = *opt.Body
	}

	version := 1
	if current.Version != nil {
		version = current.Version.Number
	}

	body := map[string]interface{}{
		"type":    "page",
		"title":   title,
		"version": map[string]int{"number": version + 1},
		"body": map[string]interface{}{
			"storage": map[string]string{
				"value":          bodyValue,
				"representation": "storage",
			},
		},
	}

	updated, err := r.client.UpdateContent(ctx, id, body)
	if err != nil {
		return model.Page{}, r.mapError(ctx, "update page", id, err)
	}
	return toModelPage(updated), nil
}

func (r *implRepository) DeletePage(ctx context.Context, id string) error {
	if err := r.client.DeleteContent(ctx, id); err != nil {
		return r.mapError(ctx, "delete page", id, err)
	}
	return nil
}

func (r *implRepository) AddComment(ctx context.Context, id, body string) (model.Comment, error) {
	created, err := r.client.CreateComment(ctx, id, body)
	if err != nil {
		return model.Comment{}, r.mapError(ctx, "add comment", id, err)
	}
	return toModelComment(created), nil
}

func (r *implRepository) ListComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.client.GetComments(ctx, id, limit)
	if err != nil {
		return nil, r.mapError(ctx, "list comments", id, err)
	}

	comments := make([]model.Comment, 0, len(raw.Results))
	for _, c := range raw.Results {
		comments = append(comments, toModelComment(&c))
	}
	return comments, nil
}

func (r *implRepository) GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error) {
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.client.GetChildPages(ctx, id, limit)
	if err != nil {
		return nil, r.mapError(ctx, "get children", id, err)
	}

	pages := make([]model.Page, 0, len(raw.Results))
	for _, c := range raw.Results {
		pages = append(pages, toModelPage(&c))
	}
	return pages, nil
}

func (r *implRepository) ListSpaces(ctx context.Context) ([]model.Space, error) {
	raw, err := r.client.ListSpaces(ctx)
	if err != nil {
		r.l.Errorf(ctx, "confluence repository: list spaces failed: %v", err)
		return nil, err
	}

	spaces := make([]model.Space, 0, len(raw.Results))
	for _, s := range raw.Results {
		spaces = append(spaces, model.Space{
			ID:   s.ID.String(),
			Key:  s.Key,
			Name: s.Name,
		})
	}
	return spaces, nil
}

func (r *implRepository) mapError(ctx context.Context, op, id string, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", page.ErrPageNotFound, id)
	}
	r.l.Errorf(ctx, "confluence repository: %s %s failed: %v", op, id, err)
	return err
}

func toModelComment(raw *apiContent) model.Comment {
	out := model.Comment{ID: raw.ID}
	if raw.Body != nil && raw.Body.Storage != nil {
		out.Body = raw.Body.Storage.Value
	}
	if raw.Version != nil {
		out.Updated = raw.Version.When
		if raw.Version.By != nil {
			out.Author = model.User{
				Name:        raw.Version.By.Username,
				DisplayName: raw.Version.By.DisplayName,
			}
		}
	}
	if raw.History != nil {
		out.Created = raw.History.CreatedDate
	}
	return out
}

func toModelPage(raw *apiContent) model.Page {
	out := model.Page{
		ID:    raw.ID,
		Title: raw.Title,
	}
	if raw.Space != nil {
		out.SpaceKey = raw.Space.Key
	}
	if raw.Body != nil && raw.Body.Storage != nil {
		out.Body = raw.Body.Storage.Value
	}
	if raw.Version != nil {
		out.Version = raw.Version.Number
		out.Updated = raw.Version.When
	}
	if raw.History != nil {
		out.Created = raw.History.CreatedDate
	}
	if len(raw.Ancestors) > 0 {
		out.ParentID = raw.Ancestors[len(raw.Ancestors)-1].ID
	}
	if raw.Links != nil && raw.Links.WebUI != "" {
		out.WebURL = raw.Links.Base + raw.Links.WebUI
	}
	return out
}
