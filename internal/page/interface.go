package page

import (
	"context"

	"integration-agent/internal/model"
)

// UseCase defines the business logic interface for the page domain.
type UseCase interface {
	// Get fetches a page by its ID, including its storage-format body.
	Get(ctx context.Context, id string) (model.Page, error)

	// GetByTitle fetches a page by space key and exact title.
	GetByTitle(ctx context.Context, spaceKey, title string) (model.Page, error)

	// Search runs a CQL query and returns matching pages.
	Search(ctx context.Context, input SearchInput) (SearchOutput, error)

	// Create creates a new page.
	Create(ctx context.Context, input CreateInput) (model.Page, error)

	// Update replaces page content, bumping the version number.
	Update(ctx context.Context, id string, input UpdateInput) (model.Page, error)

	// Delete removes a page.
	Delete(ctx context.Context, id string) error

	// GetChildren lists the direct child pages of a page.
	GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error)

	// AddComment adds a comment to a page.
	AddComment(ctx context.Context, id, body string) (model.Comment, error)

	// GetComments lists comments on a page.
	GetComments(ctx context.Context, id string, limit int) ([]model.Comment, error)

	// ListSpaces lists accessible spaces.
	ListSpaces(ctx context.Context) ([]model.Space, error)
}
