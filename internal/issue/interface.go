package issue

import (
	"context"

	"integration-agent/internal/model"
)

// UseCase defines the business logic interface for the issue domain.
type UseCase interface {
	// Get fetches a single issue by its key.
	Get(ctx context.Context, key string) (model.Issue, error)

	// Search runs a JQL query and returns matching issues.
	Search(ctx context.Context, input SearchInput) (SearchOutput, error)

	// Create creates a new issue.
	Create(ctx context.Context, input CreateInput) (model.Issue, error)

	// Update applies field changes to an existing issue.
	Update(ctx context.Context, key string, input UpdateInput) (model.Issue, error)

	// AddComment adds a comment to an issue.
	AddComment(ctx context.Context, key, body string) (model.Comment, error)

	// GetComments lists comments on an issue.
	GetComments(ctx context.Context, key string, limit int) ([]model.Comment, error)

	// ListTransitions lists the transitions available for an issue.
	ListTransitions(ctx context.Context, key string) ([]model.Transition, error)

	// Transition moves an issue to a new status by transition name or ID.
	Transition(ctx context.Context, key, target string) error

	// ListProjects lists accessible projects.
	ListProjects(ctx context.Context) ([]model.Project, error)
}
