package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Client is the HTTP wrapper for the Jira Cloud REST API v3.
type Client struct {
	baseURL    string
	username   string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new Jira HTTP client using basic auth.
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		apiToken:   apiToken,
		httpClient: &http.Client{},
	}
}

// GetIssue fetches an issue via GET /rest/api/3/issue/{key}.
func (c *Client) GetIssue(ctx context.Context, key string) (*apiIssue, error) {
	var issue apiIssue
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/3/issue/"+key, nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// SearchIssues runs a JQL query via GET /rest/api/3/search.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults, startAt int) (*apiSearchResponse, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("startAt", strconv.Itoa(startAt))

	var result apiSearchResponse
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/3/search?"+q.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateIssue creates an issue via POST /rest/api/3/issue.
func (c *Client) CreateIssue(ctx context.Context, fields map[string]interface{}) (*apiIssue, error) {
	body := map[string]interface{}{"fields": fields}

	var created apiIssue
	if err := c.doJSON(ctx, http.MethodPost, "/rest/api/3/issue", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssue applies field changes via PUT /rest/api/3/issue/{key}.
// Jira returns 204 with no body on success.
func (c *Client) UpdateIssue(ctx context.Context, key string, fields map[string]interface{}) error {
	body := map[string]interface{}{"fields": fields}
	return c.doJSON(ctx, http.MethodPut, "/rest/api/3/issue/"+key, body, nil)
}

// AddComment posts a comment via POST /rest/api/3/issue/{key}/comment.
func (c *Client) AddComment(ctx context.Context, key string, adfBody map[string]interface{}) (*apiComment, error) {
	body := map[string]interface{}{"body": adfBody}

	var comment apiComment
	if err := c.doJSON(ctx, http.MethodPost, "/rest/api/3/issue/"+key+"/comment", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments fetches comments via GET /rest/api/3/issue/{key}/comment.
func (c *Client) ListComments(ctx context.Context, key string, maxResults int) (*apiCommentPage, error) {
	q := url.Values{}
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("orderBy", "-created")

	var page apiCommentPage
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/3/issue/"+key+"/comment?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListTransitions fetches transitions via GET /rest/api/3/issue/{key}/transitions.
func (c *Client) ListTransitions(ctx context.Context, key string) (*apiTransitionList, error) {
	var list apiTransitionList
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/3/issue/"+key+"/transitions", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// DoTransition performs a transition via POST /rest/api/3/issue/{key}/transitions.
func (c *Client) DoTransition(ctx context.Context, key, transitionID string) error {
	body := map[string]interface{}{
		"transition": map[string]string{"id": transitionID},
	}
	return c.doJSON(ctx, http.MethodPost, "/rest/api/3/issue/"+key+"/transitions", body, nil)
}

// ListProjects fetches projects via GET /rest/api/3/project/search.
func (c *Client) ListProjects(ctx context.Context) (*apiProjectPage, error) {
	var page apiProjectPage
	if err := c.doJSON(ctx, http.MethodGet, "/rest/api/3/project/search", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal jira request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build jira request: %w", err)
	}
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call jira API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(resp.Body)
		return &StatusError{Code: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode jira response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx Jira API response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira API error %d: %s", e.Code, e.Body)
}

// ---- Wire types scoped to this package ----

type apiIssue struct {
	ID     string    `json:"id"`
	Key    string    `json:"key"`
	Self   string    `json:"self"`
	Fields apiFields `json:"fields"`
}

type apiFields struct {
	Summary     string      `json:"summary"`
	Description interface{} `json:"description"` // ADF document
	IssueType   *apiNamed   `json:"issuetype"`
	Priority    *apiNamed   `json:"priority"`
	Labels      []string    `json:"labels"`
	Project     *apiProject `json:"project"`
	Status      *apiStatus  `json:"status"`
	Assignee    *apiUser    `json:"assignee"`
	Reporter    *apiUser    `json:"reporter"`
	Created     string      `json:"created"`
	Updated     string      `json:"updated"`
}

type apiNamed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type apiUser struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type apiProject struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Lead        *struct {
		DisplayName string `json:"displayName"`
	} `json:"lead"`
}

type apiSearchResponse struct {
	Issues     []apiIssue `json:"issues"`
	Total      int        `json:"total"`
	MaxResults int        `json:"maxResults"`
	StartAt    int        `json:"startAt"`
}

type apiComment struct {
	ID      string      `json:"id"`
	Author  *apiUser    `json:"author"`
	Body    interface{} `json:"body"` // ADF document
	Created string      `json:"created"`
	Updated string      `json:"updated"`
}

type apiCommentPage struct {
	Comments []apiComment `json:"comments"`
	Total    int          `json:"total"`
}

type apiTransition struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	To   *apiStatus `json:"to"`
}

type apiTransitionList struct {
	Transitions []apiTransition `json:"transitions"`
}

type apiProjectPage struct {
	Values []apiProject `json:"values"`
	Total  int          `json:"total"`
}
