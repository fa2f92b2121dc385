package repository

import (
	"context"

	"integration-agent/internal/model"
)

// IssueRepository is the interface for issue tracker data access. It is
// implemented by the Jira, custom API, and MCP backends.
type IssueRepository interface {
	GetIssue(ctx context.Context, key string) (model.Issue, error)
	SearchIssues(ctx context.Context, opt SearchOptions) (model.IssueSearchResult, error)
	CreateIssue(ctx context.Context, opt CreateIssueOptions) (model.Issue, error)
	UpdateIssue(ctx context.Context, key string, opt UpdateIssueOptions) (model.Issue, error)
	AddComment(ctx context.Context, key, body string) (model.Comment, error)
	ListComments(ctx context.Context, key string, limit int) ([]model.Comment, error)
	ListTransitions(ctx context.Context, key string) ([]model.Transition, error)
	TransitionIssue(ctx context.Context, key, transitionID string) error
	ListProjects(ctx context.Context) ([]model.Project, error)
}

// SearchOptions holds JQL search parameters.
type SearchOptions struct {
	JQL        string
	MaxResults int // default 20
	StartAt    int
}

// CreateIssueOptions holds the parameters for creating an issue.
type CreateIssueOptions struct {
	ProjectKey  string
	Summary     string
	Description string
	IssueType   string
	Priority    string
	Labels      []string
	Assignee    string
	Extra       map[string]interface{} // raw fields passed through unchanged
}

// UpdateIssueOptions holds field changes. Nil pointers mean unchanged.
type UpdateIssueOptions struct {
	Summary     *string
	Description *string
	Priority    *string
	Labels      []string
	Assignee    *string
	Extra       map[string]interface{}
}
