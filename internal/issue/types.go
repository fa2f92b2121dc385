package issue

import "integration-agent/internal/model"

// SearchInput is the input for a JQL search.
type SearchInput struct {
	JQL        string `json:"jql"`
	MaxResults int    `json:"max_results"` // default 20
	StartAt    int    `json:"start_at"`
}

// SearchOutput is the result of a JQL search.
type SearchOutput struct {
	Issues     []model.Issue `json:"issues"`
	Total      int           `json:"total"`
	MaxResults int           `json:"max_results"`
	StartAt    int           `json:"start_at"`
}

// CreateInput is the input for issue creation. Fields holds any extra
// raw fields the caller wants passed through unchanged.
type CreateInput struct {
	ProjectKey  string                 `json:"project_key"`
	Summary     string                 `json:"summary"`
	Description string                 `json:"description,omitempty"`
	IssueType   string                 `json:"issue_type,omitempty"` // default "Task"
	Priority    string                 `json:"priority,omitempty"`
	Labels      []string               `json:"labels,omitempty"`
	Assignee    string                 `json:"assignee,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}

// UpdateInput carries field changes for an issue update. Nil pointers mean
// the field is left unchanged.
type UpdateInput struct {
	Summary     *string                `json:"summary,omitempty"`
	Description *string                `json:"description,omitempty"`
	Priority    *string                `json:"priority,omitempty"`
	Labels      []string               `json:"labels,omitempty"`
	Assignee    *string                `json:"assignee,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}
