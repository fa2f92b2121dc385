package page

import "errors"

// Domain-specific errors for the page package.
var (
	ErrPageNotFound     = errors.New("page not found")
	ErrEmptyTitle       = errors.New("page title is empty")
	ErrEmptySpace       = errors.New("space key is empty")
	ErrEmptyBody        = errors.New("page body is empty")
	ErrEmptyComment     = errors.New("comment body is empty")
	ErrEmptyQuery       = errors.New("search query is empty")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
