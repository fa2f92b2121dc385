package confluence

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

const contentExpand = "body.storage,version,space,ancestors,history"

// Client is the HTTP wrapper for the Confluence Cloud REST API.
type Client struct {
	baseURL    string
	username   string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a new Confluence HTTP client using basic auth.
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		username:   username,
		apiToken:   apiToken,
		httpClient: &http.Client{},
	}
}

// GetContent fetches a page via GET /wiki/rest/api/content/{id}.
func (c *Client) GetContent(ctx context.Context, id string) (*apiContent, error) {
	q := url.Values{}
	q.Set("expand", contentExpand)

	var content apiContent
	if err := c.doJSON(ctx, http.MethodGet, "/wiki/rest/api/content/"+id+"?"+q.Encode(), nil, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// FindContent looks up a page by space key and title via GET /wiki/rest/api/content.
func (c *Client) FindContent(ctx context.Context, spaceKey, title string) (*apiContentPage, error) {
	q := url.Values{}
	q.Set("spaceKey", spaceKey)
	q.Set("title", title)
	q.Set("type", "page")
	q.Set("expand", contentExpand)

	var page apiContentPage
	if err := c.doJSON(ctx, http.MethodGet, "/wiki/rest/api/content?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SearchContent runs a CQL query via GET /wiki/rest/api/content/search.
func (c *Client) SearchContent(ctx context.Context, cql string, limit, start int) (*apiContentPage, error) {
	q := url.Values{}
	q.Set("cql", cql)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("start", strconv.Itoa(start))
	q.Set("expand", "body.storage,version,space")

	var page apiContentPage
	if err := c.doJSON(ctx, http.MethodGet, "/wiki/rest/api/content/search?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateContent creates a page via POST /wiki/rest/api/content.
func (c *Client) CreateContent(ctx context.Context, body map[string]interface{}) (*apiContent, error) {
	var created apiContent
	if err := c.doJSON(ctx, http.MethodPost, "/wiki/rest/api/content", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateContent updates a page via PUT /wiki/rest/api/content/{id}.
func (c *Client) UpdateContent(ctx context.Context, id string, body map[string]interface{}) (*apiContent, error) {
	var updated apiContent
	if err := c.doJSON(ctx, http.MethodPut, "/wiki/rest/api/content/"+id, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteContent removes a page via DELETE /wiki/rest/api/content/{id}.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/wiki/rest/api/content/"+id, nil, nil)
}

// CreateComment adds a footer comment to a page via POST /wiki/rest/api/content
// with a comment container.
func (c *Client) CreateComment(ctx context.Context, pageID, body string) (*apiContent, error) {
	payload := map[string]interface{}{
		"type":      "comment",
		"container": map[string]string{"id": pageID, "type": "page"},
		"body": map[string]interface{}{
			"storage": map[string]string{
				"value":          body,
				"representation": "storage",
			},
		},
	}

	var created apiContent
	if err := c.doJSON(ctx, http.MethodPost, "/wiki/rest/api/content", payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetComments lists footer comments via GET /wiki/rest/api/content/{id}/child/comment.
func (c *Client) GetComments(ctx context.Context, id string, limit int) (*apiContentPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("expand", "body.storage,version,history")

	var page apiContentPage
	if err := c.doJSON(ctx, http.MethodGet, "/wiki/rest/api/content/"+id+"/child/comment?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetChildPages lists child pages via GET /wiki/rest/api/content/{id}/child/page.
func (c *Client) GetChildPages(ctx context.Context, id string, limit int) (*apiContentPage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("expand", "version,space")

	var page apiContentPage
	if err := c.doJSON(ctx, http.MethodGet, "/wiki/rest/api/content/"+id+"/child/page?"+q.Encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListSpaces lists spaces via GET /wiki/rest/api/space.
func (c *Client) ListSpaces(ctx context.Context) (*apiSpacePage, error) {
	var page apiSpacePage
	if err := c.doJSON(ctx, http.MethodGet, "/wiki/rest/api/space?limit=50", nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal confluence request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build confluence request: %w", err)
	}
	req.SetBasicAuth(c.username, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call confluence API: %w", err)
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
		return fmt.Errorf("failed to decode confluence response: %w", err)
	}
	return nil
}

// StatusError is a non-2xx Confluence API response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("confluence API error %d: %s", e.Code, e.Body)
}

// ---- Wire types scoped to this package ----

type apiContent struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Title     string        `json:"title"`
	Space     *apiSpace     `json:"space"`
	Body      *apiBody      `json:"body"`
	Version   *apiVersion   `json:"version"`
	Ancestors []apiContent  `json:"ancestors"`
	History   *apiHistory   `json:"history"`
	Links     *apiLinks     `json:"_links"`
}

type apiBody struct {
	Storage *apiStorage `json:"storage"`
}

type apiStorage struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type apiVersion struct {
	Number int      `json:"number"`
	When   string   `json:"when"`
	By     *apiUser `json:"by"`
}

type apiUser struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type apiHistory struct {
	CreatedDate string `json:"createdDate"`
}

type apiLinks struct {
	Base  string `json:"base"`
	WebUI string `json:"webui"`
}

type apiSpace struct {
	ID          json.Number `json:"id"`
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	Description interface{} `json:"description"`
}

type apiContentPage struct {
	Results []apiContent `json:"results"`
	Size    int          `json:"size"`
	Limit   int          `json:"limit"`
	Start   int          `json:"start"`
	// search responses report totalSize instead of size
	TotalSize int `json:"totalSize"`
}

type apiSpacePage struct {
	Results []apiSpace `json:"results"`
}
