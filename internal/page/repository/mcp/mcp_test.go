package mcp

import (
	"context"
	"errors"
	"testing"

	"integration-agent/internal/page"
	pkgLog "integration-agent/pkg/log"
)

// fakeCaller records tool calls and returns canned results.
type fakeCaller struct {
	lastTool string
	lastArgs map[string]interface{}
	result   map[string]interface{}
	err      error
}

func (f *fakeCaller) CallTool(ctx context.Context, name string, args map[string]interface{}) (map[string]interface{}, error) {
	f.lastTool = name
	f.lastArgs = args
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{Level: "error", Encoding: "console"})
}

func TestGetPage_CallsConfluenceGetPage(t *testing.T) {
	caller := &fakeCaller{
		result: map[string]interface{}{
			"id":    "12345",
			"title": "Runbook",
			"body":  "<p>steps</p>",
		},
	}
	repo := New(caller, testLogger())

	got, err := repo.GetPage(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if caller.lastTool != "confluence_get_page" {
		t.Errorf("Expected tool 'confluence_get_page', got: %s", caller.lastTool)
	}
	if got.Title != "Runbook" {
		t.Errorf("Expected title 'Runbook', got: %q", got.Title)
	}
}

func TestDeletePage_CallsConfluenceDeletePage(t *testing.T) {
	caller := &fakeCaller{result: map[string]interface{}{"success": true}}
	repo := New(caller, testLogger())

	if err := repo.DeletePage(context.Background(), "12345"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if caller.lastTool != "confluence_delete_page" {
		t.Errorf("Expected tool 'confluence_delete_page', got: %s", caller.lastTool)
	}
	if caller.lastArgs["page_id"] != "12345" {
		t.Errorf("Expected page_id '12345', got: %v", caller.lastArgs["page_id"])
	}
}

func TestDeletePage_NotFoundTextMapsToDomainError(t *testing.T) {
	caller := &fakeCaller{err: errors.New("tool confluence_delete_page failed: page not found")}
	repo := New(caller, testLogger())

	if err := repo.DeletePage(context.Background(), "99999"); !errors.Is(err, page.ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound, got: %v", err)
	}
}

func TestAddComment_PassesContent(t *testing.T) {
	caller := &fakeCaller{
		result: map[string]interface{}{
			"id":     "900",
			"body":   "needs review",
			"author": "dana",
		},
	}
	repo := New(caller, testLogger())

	got, err := repo.AddComment(context.Background(), "12345", "needs review")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if caller.lastTool != "confluence_add_comment" {
		t.Errorf("Expected tool 'confluence_add_comment', got: %s", caller.lastTool)
	}
	if caller.lastArgs["content"] != "needs review" {
		t.Errorf("Expected comment content, got: %v", caller.lastArgs["content"])
	}
	if got.Author.DisplayName != "dana" {
		t.Errorf("Expected author 'dana', got: %+v", got.Author)
	}
}

func TestListComments_NormalizesItems(t *testing.T) {
	caller := &fakeCaller{
		result: map[string]interface{}{
			"comments": []interface{}{
				map[string]interface{}{"id": "1", "body": "first"},
				map[string]interface{}{"id": "2", "body": "second"},
			},
		},
	}
	repo := New(caller, testLogger())

	comments, err := repo.ListComments(context.Background(), "12345", 10)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if caller.lastTool != "confluence_get_comments" {
		t.Errorf("Expected tool 'confluence_get_comments', got: %s", caller.lastTool)
	}
	if len(comments) != 2 || comments[0].Body != "first" {
		t.Errorf("Expected 2 comments, got: %+v", comments)
	}
}
