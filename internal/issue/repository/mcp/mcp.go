// Package mcp implements the issue repository over an MCP server process
// (e.g. mcp-atlassian). Tool results are JSON payloads shaped like the
// Jira REST responses, so they go through the same alias normalization as
// the custom API backend.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"integration-agent/internal/issue"
	"integration-agent/internal/issue/repository"
	"integration-agent/internal/issue/repository/custom"
	"integration-agent/internal/model"
	pkgLog "integration-agent/pkg/log"
)

// ToolCaller is the part of the MCP client this repository needs.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error)
}

type implRepository struct {
	caller ToolCaller
	l      pkgLog.Logger
}

// New creates an issue repository backed by an MCP server.
func New(caller ToolCaller, l pkgLog.Logger) repository.IssueRepository {
	return &implRepository{
		caller: caller,
		l:      l,
	}
}

func (r *implRepository) GetIssue(ctx context.Context, key string) (model.Issue, error) {
	raw, err := r.caller.CallTool(ctx, "jira_get_issue", map[string]interface{}{
		"issue_key": key,
	})
	if err != nil {
		return model.Issue{}, r.mapError(key, err)
	}
	return custom.NormalizeIssue(raw), nil
}

func (r *implRepository) SearchIssues(ctx context.Context, opt repository.SearchOptions) (model.IssueSearchResult, error) {
	maxResults := opt.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	raw, err := r.caller.CallTool(ctx, "jira_search", map[string]interface{}{
		"jql":      opt.JQL,
		"limit":    maxResults,
		"start_at": opt.StartAt,
	})
	if err != nil {
		r.l.Errorf(ctx, "mcp repository: search failed: %v", err)
		return model.IssueSearchResult{}, err
	}

	items := itemList(raw, "issues")
	issues := make([]model.Issue, 0, len(items))
	for _, item := range items {
		issues = append(issues, custom.NormalizeIssue(item))
	}

	total := len(issues)
	if v, ok := raw["total"].(float64); ok {
		total = int(v)
	}

	return model.IssueSearchResult{
		Issues:     issues,
		Total:      total,
		MaxResults: maxResults,
		StartAt:    opt.StartAt,
	}, nil
}

func (r *implRepository) CreateIssue(ctx context.Context, opt repository.CreateIssueOptions) (model.Issue, error) {
	args := map[string]interface{}{
		"project_key": opt.ProjectKey,
		"summary":     opt.Summary,
		"issue_type":  opt.IssueType,
	}
	if opt.Description != "" {
		args["description"] = opt.Description
	}
	if opt.Priority != "" {
		args["priority"] = opt.Priority
	}
	if len(opt.Labels) > 0 {
		args["labels"] = strings.Join(opt.Labels, ",")
	}
	if opt.Assignee != "" {
		args["assignee"] = opt.Assignee
	}
	for k, v := range opt.Extra {
		args[k] = v
	}

	raw, err := r.caller.CallTool(ctx, "jira_create_issue", args)
	if err != nil {
		r.l.Errorf(ctx, "mcp repository: create failed: %v", err)
		return model.Issue{}, err
	}
	return custom.NormalizeIssue(raw), nil
}

func (r *implRepository) UpdateIssue(ctx context.Context, key string, opt repository.UpdateIssueOptions) (model.Issue, error) {
	fields := map[string]interface{}{}
	if opt.Summary != nil {
		fields["summary"] = *opt.Summary
	}
	if opt.Description != nil {
		fields["description"] = *opt.Description
	}
	if opt.Priority != nil {
		fields["priority"] = *opt.Priority
	}
	if opt.Labels != nil {
		fields["labels"] = opt.Labels
	}
	if opt.Assignee != nil {
		fields["assignee"] = *opt.Assignee
	}
	for k, v := range opt.Extra {
		fields[k] = v
	}

	raw, err := r.caller.CallTool(ctx, "jira_update_issue", map[string]interface{}{
		"issue_key": key,
		"fields":    fields,
	})
	if err != nil {
		return model.Issue{}, r.mapError(key, err)
	}
	return custom.NormalizeIssue(raw), nil
}

func (r *implRepository) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	raw, err := r.caller.CallTool(ctx, "jira_add_comment", map[string]interface{}{
		"issue_key": key,
		"comment":   body,
	})
	if err != nil {
		return model.Comment{}, r.mapError(key, err)
	}
	return custom.NormalizeComment(raw), nil
}

func (r *implRepository) ListComments(ctx context.Context, key string, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = 20
	}

	raw, err := r.caller.CallTool(ctx, "jira_get_comments", map[string]interface{}{
		"issue_key": key,
		"limit":     limit,
	})
	if err != nil {
		return nil, r.mapError(key, err)
	}

	items := itemList(raw, "comments")
	comments := make([]model.Comment, 0, len(items))
	for _, item := range items {
		comments = append(comments, custom.NormalizeComment(item))
	}
	return comments, nil
}

func (r *implRepository) ListTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	raw, err := r.caller.CallTool(ctx, "jira_get_transitions", map[string]interface{}{
		"issue_key": key,
	})
	if err != nil {
		return nil, r.mapError(key, err)
	}

	items := itemList(raw, "transitions")
	transitions := make([]model.Transition, 0, len(items))
	for _, item := range items {
		t := model.Transition{}
		if v, ok := item["id"].(string); ok {
			t.ID = v
		} else if v, ok := item["id"].(float64); ok {
			t.ID = fmt.Sprintf("%d", int(v))
		}
		if v, ok := item["name"].(string); ok {
			t.Name = v
		}
		if v, ok := item["to"].(string); ok {
			t.To = v
		} else if to, ok := item["to"].(map[string]interface{}); ok {
			if name, ok := to["name"].(string); ok {
				t.To = name
			}
		}
		transitions = append(transitions, t)
	}
	return transitions, nil
}

func (r *implRepository) TransitionIssue(ctx context.Context, key, transitionID string) error {
	_, err := r.caller.CallTool(ctx, "jira_transition_issue", map[string]interface{}{
		"issue_key":     key,
		"transition_id": transitionID,
	})
	if err != nil {
		return r.mapError(key, err)
	}
	return nil
}

func (r *implRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	raw, err := r.caller.CallTool(ctx, "jira_get_all_projects", nil)
	if err != nil {
		r.l.Errorf(ctx, "mcp repository: list projects failed: %v", err)
		return nil, err
	}

	items := itemList(raw, "projects")
	projects := make([]model.Project, 0, len(items))
	for _, item := range items {
		p := model.Project{}
		if v, ok := item["id"].(string); ok {
			p.ID = v
		}
		if v, ok := item["key"].(string); ok {
			p.Key = v
		}
		if v, ok := item["name"].(string); ok {
			p.Name = v
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// mapError turns MCP tool "not found" failures into the domain error.
// MCP servers report failures as error text rather than status codes.
func (r *implRepository) mapError(key string, err error) error {
	if strings.Contains(strings.ToLower(err.Error()), "not found") ||
		strings.Contains(strings.ToLower(err.Error()), "does not exist") {
		return fmt.Errorf("%w: %s", issue.ErrIssueNotFound, key)
	}
	return err
}

// itemList returns the array under key, "items", or "results"; a response
// that is itself a bare array arrives wrapped under "items" already.
func itemList(raw map[string]interface{}, key string) []map[string]interface{} {
	for _, k := range []string{key, "items", "results"} {
		arr, ok := raw[k].([]interface{})
		if !ok {
			continue
		}
		out := make([]map[string]interface{}, 0, len(arr))
		for _, item := range arr {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
