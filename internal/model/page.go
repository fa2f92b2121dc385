package model

// Page is the backend-neutral wiki page representation.
type Page struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	SpaceKey string `json:"space_key,omitempty"`
	Body     string `json:"body,omitempty"` // storage-format HTML
	Version  int    `json:"version"`
	ParentID string `json:"parent_id,omitempty"`
	WebURL   string `json:"web_url,omitempty"`
	Created  string `json:"created,omitempty"`
	Updated  string `json:"updated,omitempty"`
}

// Space is a page container (Confluence space or custom API collection).
type Space struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PageSearchResult is a paged page search response.
type PageSearchResult struct {
	Pages []Page `json:"pages"`
	Total int    `json:"total"`
	Limit int    `json:"limit"`
	Start int    `json:"start"`
}
