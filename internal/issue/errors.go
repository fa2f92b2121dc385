package issue

import "errors"

// Domain-specific errors for the issue package.
var (
	ErrIssueNotFound      = errors.New("issue not found")
	ErrInvalidIssueKey    = errors.New("invalid issue key")
	ErrEmptySummary       = errors.New("issue summary is empty")
	ErrEmptyProject       = errors.New("project key is empty")
	ErrEmptyQuery         = errors.New("search query is empty")
	ErrEmptyComment       = errors.New("comment body is empty")
	ErrTransitionNotFound = errors.New("transition not found")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)
