package jira

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"integration-agent/internal/issue"
	"integration-agent/internal/issue/repository"
	"integration-agent/internal/model"
	pkgLog "integration-agent/pkg/log"
)

type implRepository struct {
	client *Client
	l      pkgLog.Logger
}

// New creates a new Jira-backed issue repository.
func New(client *Client, l pkgLog.Logger) repository.IssueRepository {
	return &implRepository{
		client: client,
		l:      l,
	}
}

func (r *implRepository) GetIssue(ctx context.Context, key string) (model.Issue, error) {
	raw, err := r.client.GetIssue(ctx, key)
	if err != nil {
		return model.Issue{}, r.mapError(ctx, "get issue", key, err)
	}
	return toModelIssue(raw), nil
}

func (r *implRepository) SearchIssues(ctx context.Context, opt repository.SearchOptions) (model.IssueSearchResult, error) {
	maxResults := opt.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	raw, err := r.client.SearchIssues(ctx, opt.JQL, maxResults, opt.StartAt)
	if err != nil {
		r.l.Errorf(ctx, "jira repository: search failed: %v", err)
		return model.IssueSearchResult{}, err
	}

	issues := make([]model.Issue, 0, len(raw.Issues))
	for _, it := range raw.Issues {
		issues = append(issues, toModelIssue(&it))
	}

	return model.IssueSearchResult{
		Issues:     issues,
		Total:      raw.Total,
		MaxResults: raw.MaxResults,
		StartAt:    raw.StartAt,
	}, nil
}

func (r *implRepository) CreateIssue(ctx context.Context, opt repository.CreateIssueOptions) (model.Issue, error) {
	fields := map[string]interface{}{
		"project":   map[string]string{"key": opt.ProjectKey},
		"summary":   opt.Summary,
		"issuetype": map[string]string{"name": opt.IssueType},
	}
	if opt.Description != "" {
		fields["description"] = buildADF(opt.Description)
	}
	if opt.Priority != "" {
		fields["priority"] = map[string]string{"name": opt.Priority}
	}
	if len(opt.Labels) > 0 {
		fields["labels"] = opt.Labels
	}
	if opt.Assignee != "" {
		fields["assignee"] = map[string]string{"accountId": opt.Assignee}
	}
	for k, v := range opt.Extra {
		fields[k] = v
	}

	created, err := r.client.CreateIssue(ctx, fields)
	if err != nil {
		r.l.Errorf(ctx, "jira repository: create failed: %v", err)
		return model.Issue{}, err
	}

	// The create response only carries id/key/self; fetch the full issue.
	return r.GetIssue(ctx, created.Key)
}

func (r *implRepository) UpdateIssue(ctx context.Context, key string, opt repository.UpdateIssueOptions) (model.Issue, error) {
	fields := map[string]interface{}{}
	if opt.Summary != nil {
		fields["summary"] = *opt.Summary
	}
	if opt.Description != nil {
		fields["description"] = buildADF(*opt.Description)
	}
	if opt.Priority != nil {
		fields["priority"] = map[string]string{"name": *opt.Priority}
	}
	if opt.Labels != nil {
		fields["labels"] = opt.Labels
	}
	if opt.Assignee != nil {
		fields["assignee"] = map[string]string{"accountId": *opt.Assignee}
	}
	for k, v := range opt.Extra {
		fields[k] = v
	}

	if err := r.client.UpdateIssue(ctx, key, fields); err != nil {
		return model.Issue{}, r.mapError(ctx, "update issue", key, err)
	}
	return r.GetIssue(ctx, key)
}

func (r *implRepository) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	raw, err := r.client.AddComment(ctx, key, buildADF(body))
	if err != nil {
		return model.Comment{}, r.mapError(ctx, "add comment", key, err)
	}
	return toModelComment(raw), nil
}

func (r *implRepository) ListComments(ctx context.Context, key string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = 20
	}

	page, err := r.client.ListComments(ctx, key, limit)
	if err != nil {
		return nil, r.mapError(ctx, "list comments", key, err)
	}

	comments := make([]model.Comment, 0, len(page.Comments))
	for _, c := range page.Comments {
		comments = append(comments, toModelComment(&c))
	}
	return comments, nil
}

func (r *implRepository) ListTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	list, err := r.client.ListTransitions(ctx, key)
	if err != nil {
		return nil, r.mapError(ctx, "list transitions", key, err)
	}

	transitions := make([]model.Transition, 0, len(list.Transitions))
	for _, t := range list.Transitions {
		mt := model.Transition{ID: t.ID, Name: t.Name}
		if t.To != nil {
			mt.To = t.To.Name
		}
		transitions = append(transitions, mt)
	}
	return transitions, nil
}

func (r *implRepository) TransitionIssue(ctx context.Context, key, transitionID string) error {
	if err := r.client.DoTransition(ctx, key, transitionID); err != nil {
		return r.mapError(ctx, "transition issue", key, err)
	}
	return nil
}

func (r *implRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	page, err := r.client.ListProjects(ctx)
	if err != nil {
		r.l.Errorf(ctx, "jira repository: list projects failed: %v", err)
		return nil, err
	}

	projects := make([]model.Project, 0, len(page.Values))
	for _, p := range page.Values {
		projects = append(projects, toModelProject(&p))
	}
	return projects, nil
}

func (r *implRepository) mapError(ctx context.Context, op, key string, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
	}
	r.l.Errorf(ctx, "jira repository: %s %s failed: %v", op, key, err)
	return err
}

func toModelIssue(raw *apiIssue) model.Issue {
	out := model.Issue{
		ID:   raw.ID,
		Key:  raw.Key,
		Self: raw.Self,
		Fields: model.IssueFields{
			Summary:     raw.Fields.Summary,
			Description: adfToText(raw.Fields.Description),
			Labels:      raw.Fields.Labels,
			Created:     raw.Fields.Created,
			Updated:     raw.Fields.Updated,
		},
	}
	if raw.Fields.IssueType != nil {
		out.Fields.IssueType = raw.Fields.IssueType.Name
	}
	if raw.Fields.Priority != nil {
		out.Fields.Priority = raw.Fields.Priority.Name
	}
	if raw.Fields.Project != nil {
		out.Fields.Project = raw.Fields.Project.Key
	}
	if raw.Fields.Status != nil {
		out.Fields.Status = model.Status{ID: raw.Fields.Status.ID, Name: raw.Fields.Status.Name}
	}
	if raw.Fields.Assignee != nil {
		out.Fields.Assignee = &model.User{Name: raw.Fields.Assignee.AccountID, DisplayName: raw.Fields.Assignee.DisplayName}
	}
	if raw.Fields.Reporter != nil {
		out.Fields.Reporter = &model.User{Name: raw.Fields.Reporter.AccountID, DisplayName: raw.Fields.Reporter.DisplayName}
	}
	return out
}

func toModelComment(raw *apiComment) model.Comment {
	out := model.Comment{
		ID:      raw.ID,
		Body:    adfToText(raw.Body),
		Created: raw.Created,
		Updated: raw.Updated,
	}
	if raw.Author != nil {
		out.Author = model.User{Name: raw.Author.AccountID, DisplayName: raw.Author.DisplayName}
	}
	return out
}

func toModelProject(raw *apiProject) model.Project {
	out := model.Project{
		ID:          raw.ID,
		Key:         raw.Key,
		Name:        raw.Name,
		Description: raw.Description,
	}
	if raw.Lead != nil {
		out.Lead = raw.Lead.DisplayName
	}
	return out
}
