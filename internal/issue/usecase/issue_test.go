package usecase

import (
	"context"
	"errors"
	"testing"

	"integration-agent/internal/issue"
	"integration-agent/internal/issue/repository"
	"integration-agent/internal/model"
	pkgLog "integration-agent/pkg/log"
)

// mockRepo is a configurable IssueRepository for tests.
type mockRepo struct {
	issues       map[string]model.Issue
	transitions  []model.Transition
	transitioned string
	createOpt    repository.CreateIssueOptions
	searchOpt    repository.SearchOptions
}

func (m *mockRepo) GetIssue(ctx context.Context, key string) (model.Issue, error) {
	if it, ok := m.issues[key]; ok {
		return it, nil
	}
	return model.Issue{}, issue.ErrIssueNotFound
}

func (m *mockRepo) SearchIssues(ctx context.Context, opt repository.SearchOptions) (model.IssueSearchResult, error) {
	m.searchOpt = opt
	return model.IssueSearchResult{MaxResults: opt.MaxResults}, nil
}

func (m *mockRepo) CreateIssue(ctx context.Context, opt repository.CreateIssueOptions) (model.Issue, error) {
	m.createOpt = opt
	return model.Issue{Key: "PROJ-100", Fields: model.IssueFields{Summary: opt.Summary}}, nil
}

func (m *mockRepo) UpdateIssue(ctx context.Context, key string, opt repository.UpdateIssueOptions) (model.Issue, error) {
	return model.Issue{Key: key}, nil
}

func (m *mockRepo) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	return model.Comment{ID: "1", Body: body}, nil
}

func (m *mockRepo) ListComments(ctx context.Context, key string, limit int) ([]model.Comment, error) {
	return nil, nil
}

func (m *mockRepo) ListTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	return m.transitions, nil
}

func (m *mockRepo) TransitionIssue(ctx context.Context, key, transitionID string) error {
	m.transitioned = transitionID
	return nil
}

func (m *mockRepo) ListProjects(ctx context.Context) ([]model.Project, error) {
	return nil, nil
}

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{Level: "error", Encoding: "console"})
}

func TestGet_RejectsInvalidKey(t *testing.T) {
	uc := New(testLogger(), &mockRepo{})

	_, err := uc.Get(context.Background(), "not a key!")
	if !errors.Is(err, issue.ErrInvalidIssueKey) {
		t.Errorf("Expected ErrInvalidIssueKey, got: %v", err)
	}
}

func TestGet_AcceptsJiraKeyAndNumericID(t *testing.T) {
	repo := &mockRepo{issues: map[string]model.Issue{
		"PROJ-1": {Key: "PROJ-1"},
		"12345":  {Key: "12345"},
	}}
	uc := New(testLogger(), repo)

	for _, key := range []string{"PROJ-1", "12345"} {
		if _, err := uc.Get(context.Background(), key); err != nil {
			t.Errorf("Expected key %q to be accepted, got: %v", key, err)
		}
	}
}

func TestSearch_RejectsEmptyJQL(t *testing.T) {
	uc := New(testLogger(), &mockRepo{})

	_, err := uc.Search(context.Background(), issue.SearchInput{JQL: "   "})
	if !errors.Is(err, issue.ErrEmptyQuery) {
		t.Errorf("Expected ErrEmptyQuery, got: %v", err)
	}
}

func TestSearch_DefaultsMaxResults(t *testing.T) {
	repo := &mockRepo{}
	uc := New(testLogger(), repo)

	if _, err := uc.Search(context.Background(), issue.SearchInput{JQL: "project = PROJ"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if repo.searchOpt.MaxResults != 20 {
		t.Errorf("Expected default max results 20, got: %d", repo.searchOpt.MaxResults)
	}
}

func TestCreate_Validation(t *testing.T) {
	uc := New(testLogger(), &mockRepo{})

	_, err := uc.Create(context.Background(), issue.CreateInput{Summary: "No project"})
	if !errors.Is(err, issue.ErrEmptyProject) {
		t.Errorf("Expected ErrEmptyProject, got: %v", err)
	}

	_, err = uc.Create(context.Background(), issue.CreateInput{ProjectKey: "PROJ"})
	if !errors.Is(err, issue.ErrEmptySummary) {
		t.Errorf("Expected ErrEmptySummary, got: %v", err)
	}
}

func TestCreate_DefaultsIssueType(t *testing.T) {
	repo := &mockRepo{}
	uc := New(testLogger(), repo)

	created, err := uc.Create(context.Background(), issue.CreateInput{
		ProjectKey: "PROJ",
		Summary:    "Add search endpoint",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if repo.createOpt.IssueType != "Task" {
		t.Errorf("Expected default issue type 'Task', got: %q", repo.createOpt.IssueType)
	}
	if created.Key != "PROJ-100" {
		t.Errorf("Expected key 'PROJ-100', got: %s", created.Key)
	}
}

func TestUpdate_RejectsNoFields(t *testing.T) {
	uc := New(testLogger(), &mockRepo{})

	_, err := uc.Update(context.Background(), "PROJ-1", issue.UpdateInput{})
	if !errors.Is(err, issue.ErrNoFieldsToUpdate) {
		t.Errorf("Expected ErrNoFieldsToUpdate, got: %v", err)
	}
}

func TestTransition_ResolvesByNameCaseInsensitive(t *testing.T) {
	repo := &mockRepo{transitions: []model.Transition{
		{ID: "11", Name: "Start Progress", To: "In Progress"},
		{ID: "31", Name: "Close", To: "Done"},
	}}
	uc := New(testLogger(), repo)

	if err := uc.Transition(context.Background(), "PROJ-1", "close"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if repo.transitioned != "31" {
		t.Errorf("Expected transition '31' to be applied, got: %q", repo.transitioned)
	}
}

func TestTransition_ResolvesByTargetStatus(t *testing.T) {
	repo := &mockRepo{transitions: []model.Transition{
		{ID: "11", Name: "Start Progress", To: "In Progress"},
	}}
	uc := New(testLogger(), repo)

	if err := uc.Transition(context.Background(), "PROJ-1", "in progress"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if repo.transitioned != "11" {
		t.Errorf("Expected transition '11' to be applied, got: %q", repo.transitioned)
	}
}

func TestTransition_UnknownTarget(t *testing.T) {
	repo := &mockRepo{transitions: []model.Transition{
		{ID: "11", Name: "Start Progress", To: "In Progress"},
	}}
	uc := New(testLogger(), repo)

	err := uc.Transition(context.Background(), "PROJ-1", "Reopen")
	if !errors.Is(err, issue.ErrTransitionNotFound) {
		t.Errorf("Expected ErrTransitionNotFound, got: %v", err)
	}
}

func TestAddComment_RejectsEmptyBody(t *testing.T) {
	uc := New(testLogger(), &mockRepo{})

	_, err := uc.AddComment(context.Background(), "PROJ-1", "  ")
	if !errors.Is(err, issue.ErrEmptyComment) {
		t.Errorf("Expected ErrEmptyComment, got: %v", err)
	}
}
