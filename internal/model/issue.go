package model

// Issue is the backend-neutral issue representation. Custom API backends
// normalize their field aliases into this shape so the rest of the
// service never sees backend-specific payloads.
type Issue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Self   string `json:"self,omitempty"`
	Fields IssueFields
}

// IssueFields mirrors the Jira "fields" envelope.
type IssueFields struct {
	Summary     string   `json:"summary"`
	Description string   `json:"description"` // plain text, ADF already flattened
	IssueType   string   `json:"issue_type"`
	Priority    string   `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Project     string   `json:"project,omitempty"`
	Status      Status   `json:"status"`
	Assignee    *User    `json:"assignee,omitempty"`
	Reporter    *User    `json:"reporter,omitempty"`
	Created     string   `json:"created,omitempty"`
	Updated     string   `json:"updated,omitempty"`
}

// Status is an issue workflow status.
type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User is an account reference on an issue or comment.
type User struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"display_name"`
}

// Comment is a single issue or page comment.
type Comment struct {
	ID      string `json:"id"`
	Author  User   `json:"author"`
	Body    string `json:"body"`
	Created string `json:"created,omitempty"`
	Updated string `json:"updated,omitempty"`
}

// Transition is an available workflow transition for an issue.
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	To   string `json:"to,omitempty"`
}

// Project is an issue container (Jira project or custom API project).
type Project struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Lead        string `json:"lead,omitempty"`
}

// IssueSearchResult is a paged issue search response.
type IssueSearchResult struct {
	Issues     []Issue `json:"issues"`
	Total      int     `json:"total"`
	MaxResults int     `json:"max_results"`
	StartAt    int     `json:"start_at"`
}
