package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"integration-agent/internal/issue"
	"integration-agent/internal/issue/repository"
	"integration-agent/internal/model"
)

// issueKeyPattern matches Jira-style keys (PROJ-123). Custom backends may
// use bare numeric IDs, which are accepted as well.
var issueKeyPattern = regexp.MustCompile(`^([A-Z][A-Z0-9]+-\d+|\d+)$`)

func (uc *implUseCase) Get(ctx context.Context, key string) (model.Issue, error) {
	key = strings.TrimSpace(key)
	if !issueKeyPattern.MatchString(key) {
		return model.Issue{}, fmt.Errorf("%w: %q", issue.ErrInvalidIssueKey, key)
	}
	return uc.repo.GetIssue(ctx, key)
}

func (uc *implUseCase) Search(ctx context.Context, input issue.SearchInput) (issue.SearchOutput, error) {
	if strings.TrimSpace(input.JQL) == "" {
		return issue.SearchOutput{}, issue.ErrEmptyQuery
	}

	maxResults := input.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	result, err := uc.repo.SearchIssues(ctx, repository.SearchOptions{
		JQL:        input.JQL,
		MaxResults: maxResults,
		StartAt:    input.StartAt,
	})
	if err != nil {
		return issue.SearchOutput{}, err
	}

	return issue.SearchOutput{
		Issues:     result.Issues,
		Total:      result.Total,
		MaxResults: result.MaxResults,
		StartAt:    result.StartAt,
	}, nil
}

func (uc *implUseCase) Create(ctx context.Context, input issue.CreateInput) (model.Issue, error) {
	if strings.TrimSpace(input.ProjectKey) == "" {
		return model.Issue{}, issue.ErrEmptyProject
	}
	if strings.TrimSpace(input.Summary) == "" {
		return model.Issue{}, issue.ErrEmptySummary
	}

	issueType := input.IssueType
	if issueType == "" {
		issueType = "Task"
	}

	created, err := uc.repo.CreateIssue(ctx, repository.CreateIssueOptions{
		ProjectKey:  input.ProjectKey,
		Summary:     input.Summary,
		Description: input.Description,
		IssueType:   issueType,
		Priority:    input.Priority,
		Labels:      input.Labels,
		Assignee:    input.Assignee,
		Extra:       input.Fields,
	})
	if err != nil {
		return model.Issue{}, err
	}

	uc.l.Infof(ctx, "issue usecase: created %s in project %s", created.Key, input.ProjectKey)
	return created, nil
}

func (uc *implUseCase) Update(ctx context.Context, key string, input issue.UpdateInput) (model.Issue, error) {
	key = strings.TrimSpace(key)
	if !issueKeyPattern.MatchString(key) {
		return model.Issue{}, fmt.Errorf("%w: %q", issue.ErrInvalidIssueKey, key)
	}

	if input.Summary == nil && input.Description == nil && input.Priority == nil &&
		input.Labels == nil && input.Assignee == nil && len(input.Fields) == 0 {
		return model.Issue{}, issue.ErrNoFieldsToUpdate
	}

	return uc.repo.UpdateIssue(ctx, key, repository.UpdateIssueOptions{
		Summary:     input.Summary,
		Description: input.Description,
		Priority:    input.Priority,
		Labels:      input.Labels,
		Assignee:    input.Assignee,
		Extra:       input.Fields,
	})
}

func (uc *implUseCase) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	key = strings.TrimSpace(key)
	if !issueKeyPattern.MatchString(key) {
		return model.Comment{}, fmt.Errorf("%w: %q", issue.ErrInvalidIssueKey, key)
	}
	if strings.TrimSpace(body) == "" {
		return model.Comment{}, issue.ErrEmptyComment
	}
	return uc.repo.AddComment(ctx, key, body)
}

func (uc *implUseCase) GetComments(ctx context.Context, key string, limit int) ([]model.Comment, error) {
	key = strings.TrimSpace(key)
	if !issueKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("%w: %q", issue.ErrInvalidIssueKey, key)
	}
	return uc.repo.ListComments(ctx, key, limit)
}

func (uc *implUseCase) ListTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	key = strings.TrimSpace(key)
	if !issueKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("%w: %q", issue.ErrInvalidIssueKey, key)
	}
	return uc.repo.ListTransitions(ctx, key)
}

// Transition resolves target against the issue's available transitions.
// Target may be a transition ID, a transition name, or the name of the
// destination status; name matching is case-insensitive.
func (uc *implUseCase) Transition(ctx context.Context, key, target string) error {
	key = strings.TrimSpace(key)
	if !issueKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", issue.ErrInvalidIssueKey, key)
	}

	transitions, err := uc.repo.ListTransitions(ctx, key)
	if err != nil {
		return err
	}

	target = strings.TrimSpace(target)
	for _, t := range transitions {
		if t.ID == target ||
			strings.EqualFold(t.Name, target) ||
			strings.EqualFold(t.To, target) {
			return uc.repo.TransitionIssue(ctx, key, t.ID)
		}
	}

	names := make([]string, 0, len(transitions))
	for _, t := range transitions {
		names = append(names, t.Name)
	}
	return fmt.Errorf("%w: %q (available: %s)", issue.ErrTransitionNotFound, target, strings.Join(names, ", "))
}

func (uc *implUseCase) ListProjects(ctx context.Context) ([]model.Project, error) {
	return uc.repo.ListProjects(ctx)
}
