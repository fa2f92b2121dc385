package page

import "integration-agent/internal/model"

// SearchInput is the input for a CQL search.
type SearchInput struct {
	CQL   string `json:"cql"`
	Limit int    `json:"limit"` // default 20
	Start int    `json:"start"`
}

// SearchOutput is the result of a CQL search.
type SearchOutput struct {
	Pages []model.Page `json:"pages"`
	Total int          `json:"total"`
	Limit int          `json:"limit"`
	Start int          `json:"start"`
}

// CreateInput is the input for page creation. Body is storage-format HTML.
type CreateInput struct {
	SpaceKey string `json:"space_key"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	ParentID string `json:"parent_id,omitempty"`
}

// UpdateInput carries page changes. Nil pointers mean unchanged.
type UpdateInput struct {
	Title *string `json:"title,omitempty"`
	Body  *string `json:"body,omitempty"`
}
