package repository

import (
	"context"

	"integration-agent/internal/model"
)

// PageRepository is the interface for wiki page data access. It is
// implemented by the Confluence, custom API, and MCP backends.
type PageRepository interface {
	GetPage(ctx context.Context, id string) (model.Page, error)
	GetPageByTitle(ctx context.Context, spaceKey, title string) (model.Page, error)
	SearchPages(ctx context.Context, opt SearchOptions) (model.PageSearchResult, error)
	CreatePage(ctx context.Context, opt CreatePageOptions) (model.Page, error)
	UpdatePage(ctx context.Context, id string, opt UpdatePageOptions) (model.Page, error)
	DeletePage(ctx context.Context, id string) error
	GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error)
	AddComment(ctx context.Context, id, body string) (model.Comment, error)
	ListComments(ctx context.Context, id string, limit int) ([]model.Comment, error)
	ListSpaces(ctx context.Context) ([]model.Space, error)
}

// SearchOptions holds CQL search parameters.
type SearchOptions struct {
	CQL   string
	Limit int // default 20
	Start int
}

// CreatePageOptions holds the parameters for creating a page.
type CreatePageOptions struct {
	SpaceKey string
	Title    string
	Body     string // storage-format HTML
	ParentID string
}

// UpdatePageOptions holds page changes. Nil pointers mean unchanged.
// The backend is responsible for bumping the version number.
type UpdatePageOptions struct {
	Title *string
	Body  *string
}
