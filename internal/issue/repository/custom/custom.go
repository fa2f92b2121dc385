// Package custom implements the issue repository against a generic
// self-hosted REST API. The API is not required to speak Jira's dialect:
// common field aliases are normalized and JQL queries are translated into
// flat filter parameters.
package custom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"integration-agent/internal/issue"
	"integration-agent/internal/issue/repository"
	"integration-agent/internal/model"
	"integration-agent/pkg/customapi"
	pkgLog "integration-agent/pkg/log"
)

type implRepository struct {
	client *customapi.Client
	l      pkgLog.Logger
}

// New creates an issue repository backed by the custom API.
func New(client *customapi.Client, l pkgLog.Logger) repository.IssueRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) issuePath(parts ...string) string {
	path := "/" + r.client.Version() + "/issues"
	for _, p := range parts {
		path += "/" + p
	}
	return path
}

func (r *implRepository) GetIssue(ctx context.Context, key string) (model.Issue, error) {
	raw, err := r.client.Get(ctx, r.issuePath(key), nil)
	if err != nil {
		if customapi.IsNotFound(err) {
			return model.Issue{}, fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
		}
		r.l.Errorf(ctx, "custom repository: get issue %s failed: %v", key, err)
		return model.Issue{}, err
	}
	return NormalizeIssue(raw), nil
}

func (r *implRepository) SearchIssues(ctx context.Context, opt repository.SearchOptions) (model.IssueSearchResult, error) {
	maxResults := opt.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	query := jqlToFilters(opt.JQL)
	query.Set("limit", strconv.Itoa(maxResults))
	query.Set("offset", strconv.Itoa(opt.StartAt))

	raw, err := r.client.Get(ctx, r.issuePath("search"), query)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: search failed: %v", err)
		return model.IssueSearchResult{}, err
	}

	items := extractItems(raw, "issues")
	issues := make([]model.Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, NormalizeIssue(item))
	}

	total := intField(raw, "total")
	if total == 0 {
		total = len(issues)
	}

	return model.IssueSearchResult{
		Issues:     issues,
		Total:      total,
		MaxResults: maxResults,
		StartAt:    opt.StartAt,
	}, nil
}

func (r *implRepository) CreateIssue(ctx context.Context, opt repository.CreateIssueOptions) (model.Issue, error) {
	body := map[string]interface{}{
		"project":     opt.ProjectKey,
		"summary":     opt.Summary,
		"description": opt.Description,
		"issue_type":  opt.IssueType,
	}
	if opt.Priority != "" {
		body["priority"] = opt.Priority
	}
	if len(opt.Labels) > 0 {
		body["labels"] = opt.Labels
	}
	if opt.Assignee != "" {
		body["assignee"] = opt.Assignee
	}
	for k, v := range opt.Extra {
		body[k] = v
	}

	raw, err := r.client.Post(ctx, r.issuePath(), body)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: create failed: %v", err)
		return model.Issue{}, err
	}
	return NormalizeIssue(raw), nil
}

func (r *implRepository) UpdateIssue(ctx context.Context, key string, opt repository.UpdateIssueOptions) (model.Issue, error) {
	body := map[string]interface{}{}
	if opt.Summary != nil {
		body["summary"] = *opt.Summary
	}
	if opt.Description != nil {
		body["description"] = *opt.Description
	}
	if opt.Priority != nil {
		body["priority"] = *opt.Priority
	}
	if opt.Labels != nil {
		body["labels"] = opt.Labels
	}
	if opt.Assignee != nil {
		body["assignee"] = *opt.Assignee
	}
	for k, v := range opt.Extra {
		body[k] = v
	}

	raw, err := r.client.Put(ctx, r.issuePath(key), body)
	if err != nil {
		if customapi.IsNotFound(err) {
			return model.Issue{}, fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
		}
		r.l.Errorf(ctx, "custom repository: update %s failed: %v", key, err)
		return model.Issue{}, err
	}
	return NormalizeIssue(raw), nil
}

func (r *implRepository) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	raw, err := r.client.Post(ctx, r.issuePath(key, "comments"), map[string]string{"body": body})
	if err != nil {
		if customapi.IsNotFound(err) {
			return model.Comment{}, fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
		}
		r.l.Errorf(ctx, "custom repository: add comment to %s failed: %v", key, err)
		return model.Comment{}, err
	}
	return NormalizeComment(raw), nil
}

func (r *implRepository) ListComments(ctx context.Context, key string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	raw, err := r.client.Get(ctx, r.issuePath(key, "comments"), query)
	if err != nil {
		if customapi.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
		}
		return nil, err
	}

	items := extractItems(raw, "comments")
	comments := make([]model.Comment, 0, len(items))
	for _, item := range items {
		comments = append(comments, NormalizeComment(item))
	}
	return comments, nil
}

func (r *implRepository) ListTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	raw, err := r.client.Get(ctx, r.issuePath(key, "transitions"), nil)
	if err != nil {
		if customapi.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
		}
		return nil, err
	}

	items := extractItems(raw, "transitions")
	transitions := make([]model.Transition, 0, len(items))
	for _, item := range items {
		transitions = append(transitions, model.Transition{
			ID:   stringField(item, "id"),
			Name: stringField(item, "name"),
			To:   stringField(item, "to", "to_status"),
		})
	}
	return transitions, nil
}

func (r *implRepository) TransitionIssue(ctx context.Context, key, transitionID string) error {
	_, err := r.client.Post(ctx, r.issuePath(key, "transitions"), map[string]string{"transition": transitionID})
	if err != nil {
		if customapi.IsNotFound(err) {
			return fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
		}
		r.l.Errorf(ctx, "custom repository: transition %s failed: %v", key, err)
		return err
	}
	return nil
}

func (r *implRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	raw, err := r.client.Get(ctx, "/"+r.client.Version()+"/projects", nil)
	if err != nil {
		r.l.Errorf(ctx, "custom repository: list projects failed: %v", err)
		return nil, err
	}

	items := extractItems(raw, "projects")
	projects := make([]model.Project, 0, len(items))
	for _, item := range items {
		projects = append(projects, model.Project{
			ID:          stringField(item, "id"),
			Key:         stringField(item, "key", "slug"),
			Name:        stringField(item, "name", "title"),
			Description: stringField(item, "description"),
			Lead:        stringField(item, "lead", "owner"),
		})
	}
	return projects, nil
}
