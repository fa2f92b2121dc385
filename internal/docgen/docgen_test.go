package docgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"integration-agent/internal/issue"
	"integration-agent/internal/model"
	"integration-agent/internal/page"
	pkgLog "integration-agent/pkg/log"
)

// mockIssueUC serves a fixed issue and comment thread.
type mockIssueUC struct {
	issue    model.Issue
	comments []model.Comment
	err      error
}

func (m *mockIssueUC) Get(ctx context.Context, key string) (model.Issue, error) {
	if m.err != nil {
		return model.Issue{}, m.err
	}
	return m.issue, nil
}

func (m *mockIssueUC) Search(ctx context.Context, input issue.SearchInput) (issue.SearchOutput, error) {
	return issue.SearchOutput{}, nil
}

func (m *mockIssueUC) Create(ctx context.Context, input issue.CreateInput) (model.Issue, error) {
	return model.Issue{}, nil
}

func (m *mockIssueUC) Update(ctx context.Context, key string, input issue.UpdateInput) (model.Issue, error) {
	return model.Issue{}, nil
}

func (m *mockIssueUC) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	return model.Comment{}, nil
}

func (m *mockIssueUC) GetComments(ctx context.Context, key string, limit int) ([]model.Comment, error) {
	return m.comments, nil
}

func (m *mockIssueUC) ListTransitions(ctx context.Context, key string) ([]model.Transition, error) {
	return nil, nil
}

func (m *mockIssueUC) Transition(ctx context.Context, key, target string) error {
	return nil
}

func (m *mockIssueUC) ListProjects(ctx context.Context) ([]model.Project, error) {
	return nil, nil
}

// mockPageUC records the create call.
type mockPageUC struct {
	created page.CreateInput
	err     error
}

func (m *mockPageUC) Get(ctx context.Context, id string) (model.Page, error) {
	return model.Page{}, nil
}

func (m *mockPageUC) GetByTitle(ctx context.Context, spaceKey, title string) (model.Page, error) {
	return model.Page{}, nil
}

func (m *mockPageUC) Search(ctx context.Context, input page.SearchInput) (page.SearchOutput, error) {
	return page.SearchOutput{}, nil
}

func (m *mockPageUC) Create(ctx context.Context, input page.CreateInput) (model.Page, error) {
	if m.err != nil {
		return model.Page{}, m.err
	}
	m.created = input
	return model.Page{ID: "9001", Title: input.Title, SpaceKey: input.SpaceKey, Version: 1}, nil
}

func (m *mockPageUC) Update(ctx context.Context, id string, input page.UpdateInput) (model.Page, error) {
	return model.Page{}, nil
}

func (m *mockPageUC) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockPageUC) AddComment(ctx context.Context, id, body string) (model.Comment, error) {
	return model.Comment{}, nil
}

func (m *mockPageUC) GetComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	return nil, nil
}

func (m *mockPageUC) GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error) {
	return nil, nil
}

func (m *mockPageUC) ListSpaces(ctx context.Context) ([]model.Space, error) {
	return nil, nil
}

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{Level: "error", Encoding: "console"})
}

func sampleIssue() model.Issue {
	return model.Issue{
		ID:  "10001",
		Key: "PROJ-42",
		Fields: model.IssueFields{
			Summary:     "Fix login timeout",
			Description: "Sessions expire too early",
			IssueType:   "Bug",
			Status:      model.Status{ID: "3", Name: "In Progress"},
			Assignee:    &model.User{DisplayName: "Dana Scully"},
		},
	}
}

func TestFromIssue_CreatesPage(t *testing.T) {
	issueUC := &mockIssueUC{
		issue: sampleIssue(),
		comments: []model.Comment{
			{ID: "1", Author: model.User{DisplayName: "Fox Mulder"}, Body: "Confirmed on staging"},
		},
	}
	pageUC := &mockPageUC{}
	gen := New(testLogger(), issueUC, pageUC)

	result, err := gen.FromIssue(context.Background(), "PROJ-42", "DEV")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if pageUC.created.SpaceKey != "DEV" {
		t.Errorf("Expected space DEV, got: %s", pageUC.created.SpaceKey)
	}
	wantTitle := "Documentation for PROJ-42: Fix login timeout"
	if pageUC.created.Title != wantTitle {
		t.Errorf("Expected title %q, got: %q", wantTitle, pageUC.created.Title)
	}
	if result.Page.ID != "9001" {
		t.Errorf("Expected page ID 9001, got: %s", result.Page.ID)
	}
	if !strings.Contains(result.Message, "PROJ-42") {
		t.Errorf("Expected message to name the issue, got: %q", result.Message)
	}

	body := pageUC.created.Body
	for _, want := range []string{
		"<h1>Fix login timeout</h1>",
		"<p><strong>Issue Key:</strong> PROJ-42</p>",
		"<p><strong>Status:</strong> In Progress</p>",
		"<p><strong>Type:</strong> Bug</p>",
		"<p><strong>Assignee:</strong> Dana Scully</p>",
		"<h2>Description</h2>",
		"<p>Sessions expire too early</p>",
		"<h2>Comments</h2>",
		"<div><strong>Fox Mulder:</strong> Confirmed on staging</div>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected body to contain %q", want)
		}
	}
}

func TestFromIssue_IssueError(t *testing.T) {
	issueUC := &mockIssueUC{err: issue.ErrIssueNotFound}
	gen := New(testLogger(), issueUC, &mockPageUC{})

	_, err := gen.FromIssue(context.Background(), "PROJ-404", "DEV")
	if !errors.Is(err, issue.ErrIssueNotFound) {
		t.Errorf("Expected ErrIssueNotFound, got: %v", err)
	}
}

func TestFromIssue_PageError(t *testing.T) {
	pageErr := errors.New("space does not exist")
	gen := New(testLogger(), &mockIssueUC{issue: sampleIssue()}, &mockPageUC{err: pageErr})

	_, err := gen.FromIssue(context.Background(), "PROJ-42", "NOPE")
	if !errors.Is(err, pageErr) {
		t.Errorf("Expected page error, got: %v", err)
	}
}

func TestRender_EscapesAndOmits(t *testing.T) {
	iss := model.Issue{
		Key: "PROJ-7",
		Fields: model.IssueFields{
			Summary:   "Allow <b> tags & more",
			IssueType: "Task",
			Status:    model.Status{Name: "Open"},
		},
	}

	body := Render(iss, nil)

	if !strings.Contains(body, "<h1>Allow &lt;b&gt; tags &amp; more</h1>") {
		t.Errorf("Expected escaped summary, got: %q", body)
	}
	if strings.Contains(body, "Assignee") {
		t.Error("Expected no assignee section for unassigned issue")
	}
	if strings.Contains(body, "<h2>Comments</h2>") {
		t.Error("Expected no comments section without comments")
	}
	if !strings.Contains(body, "<p>No description provided</p>") {
		t.Errorf("Expected description placeholder, got: %q", body)
	}
}
