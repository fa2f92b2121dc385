package tools

import (
	"context"
	"strings"
	"testing"

	"integration-agent/internal/issue"
	"integration-agent/internal/model"
	"integration-agent/internal/page"
)

// mockIssueUC implements the issue methods the tools under test reach.
type mockIssueUC struct {
	issue.UseCase

	gotSearch issue.SearchInput
	gotCreate issue.CreateInput
	gotTarget string
}

func (m *mockIssueUC) Get(ctx context.Context, key string) (model.Issue, error) {
	return model.Issue{Key: key, Fields: model.IssueFields{Summary: "stub"}}, nil
}

func (m *mockIssueUC) Search(ctx context.Context, input issue.SearchInput) (issue.SearchOutput, error) {
	m.gotSearch = input
	return issue.SearchOutput{Total: 1}, nil
}

func (m *mockIssueUC) Create(ctx context.Context, input issue.CreateInput) (model.Issue, error) {
	m.gotCreate = input
	return model.Issue{Key: "PROJ-100"}, nil
}

func (m *mockIssueUC) AddComment(ctx context.Context, key, body string) (model.Comment, error) {
	return model.Comment{ID: "1", Body: body}, nil
}

func (m *mockIssueUC) Transition(ctx context.Context, key, target string) error {
	m.gotTarget = target
	return nil
}

// mockPageUC implements the page methods the tools under test reach.
type mockPageUC struct {
	page.UseCase

	gotSearch  page.SearchInput
	gotCreate  page.CreateInput
	gotDelete  string
	gotComment string
}

func (m *mockPageUC) Get(ctx context.Context, id string) (model.Page, error) {
	return model.Page{ID: id, Title: "stub"}, nil
}

func (m *mockPageUC) Search(ctx context.Context, input page.SearchInput) (page.SearchOutput, error) {
	m.gotSearch = input
	return page.SearchOutput{Total: 1}, nil
}

func (m *mockPageUC) Create(ctx context.Context, input page.CreateInput) (model.Page, error) {
	m.gotCreate = input
	return model.Page{ID: "9001", Title: input.Title}, nil
}

func (m *mockPageUC) Delete(ctx context.Context, id string) error {
	m.gotDelete = id
	return nil
}

func (m *mockPageUC) AddComment(ctx context.Context, id, body string) (model.Comment, error) {
	m.gotComment = body
	return model.Comment{ID: "501", Body: body}, nil
}

func (m *mockPageUC) GetComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	return []model.Comment{{ID: "501", Body: "first"}}, nil
}

func TestGetIssueTool(t *testing.T) {
	tool := NewGetIssueTool(&mockIssueUC{})

	t.Run("missing key", func(t *testing.T) {
		if _, err := tool.Execute(context.Background(), map[string]interface{}{}); err == nil {
			t.Error("expected error for missing issue_key")
		}
	})

	t.Run("success", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]interface{}{"issue_key": "PROJ-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		envelope := result.(map[string]interface{})
		if envelope["type"] != "issue" {
			t.Errorf("expected type issue, got %v", envelope["type"])
		}
	})
}

func TestSearchIssuesTool_CoercesLimit(t *testing.T) {
	uc := &mockIssueUC{}
	tool := NewSearchIssuesTool(uc)

	// JSON numbers arrive as float64
	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"jql":         "project = PROJ",
		"max_results": float64(5),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.gotSearch.JQL != "project = PROJ" || uc.gotSearch.MaxResults != 5 {
		t.Errorf("unexpected search input: %+v", uc.gotSearch)
	}
}

func TestCreateIssueTool(t *testing.T) {
	uc := &mockIssueUC{}
	tool := NewCreateIssueTool(uc)

	t.Run("missing summary", func(t *testing.T) {
		_, err := tool.Execute(context.Background(), map[string]interface{}{"project_key": "PROJ"})
		if err == nil {
			t.Error("expected error for missing summary")
		}
	})

	t.Run("optional fields", func(t *testing.T) {
		_, err := tool.Execute(context.Background(), map[string]interface{}{
			"project_key": "PROJ",
			"summary":     "New issue",
			"issue_type":  "Bug",
			"assignee":    "dana",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uc.gotCreate.IssueType != "Bug" || uc.gotCreate.Assignee != "dana" {
			t.Errorf("unexpected create input: %+v", uc.gotCreate)
		}
	})
}

func TestTransitionIssueTool(t *testing.T) {
	uc := &mockIssueUC{}
	tool := NewTransitionIssueTool(uc)

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"issue_key":  "PROJ-1",
		"transition": "Done",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.gotTarget != "Done" {
		t.Errorf("expected transition Done, got %q", uc.gotTarget)
	}
}

func TestCreatePageTool(t *testing.T) {
	uc := &mockPageUC{}
	tool := NewCreatePageTool(uc)

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"space_key":      "DEV",
		"title":          "Runbook",
		"content":        "<p>steps</p>",
		"parent_page_id": "42",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.gotCreate.SpaceKey != "DEV" || uc.gotCreate.ParentID != "42" {
		t.Errorf("unexpected create input: %+v", uc.gotCreate)
	}
}

func TestSearchPagesTool(t *testing.T) {
	uc := &mockPageUC{}
	tool := NewSearchPagesTool(uc)

	_, err := tool.Execute(context.Background(), map[string]interface{}{
		"cql":   "space = DEV",
		"limit": float64(3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.gotSearch.CQL != "space = DEV" || uc.gotSearch.Limit != 3 {
		t.Errorf("unexpected search input: %+v", uc.gotSearch)
	}
}

func TestDeletePageTool(t *testing.T) {
	uc := &mockPageUC{}
	tool := NewDeletePageTool(uc)

	t.Run("missing id", func(t *testing.T) {
		if _, err := tool.Execute(context.Background(), map[string]interface{}{}); err == nil {
			t.Error("expected error for missing page_id")
		}
	})

	t.Run("success", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]interface{}{"page_id": "9001"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uc.gotDelete != "9001" {
			t.Errorf("expected delete of '9001', got %q", uc.gotDelete)
		}
		envelope := result.(map[string]interface{})
		if envelope["type"] != "page_deleted" {
			t.Errorf("expected page_deleted, got %v", envelope["type"])
		}
	})
}

func TestPageCommentTools(t *testing.T) {
	uc := &mockPageUC{}

	t.Run("add requires comment", func(t *testing.T) {
		tool := NewAddPageCommentTool(uc)
		if _, err := tool.Execute(context.Background(), map[string]interface{}{"page_id": "9001"}); err == nil {
			t.Error("expected error for missing comment")
		}
	})

	t.Run("add", func(t *testing.T) {
		tool := NewAddPageCommentTool(uc)
		result, err := tool.Execute(context.Background(), map[string]interface{}{
			"page_id": "9001",
			"comment": "looks good",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uc.gotComment != "looks good" {
			t.Errorf("expected comment body to pass through, got %q", uc.gotComment)
		}
		envelope := result.(map[string]interface{})
		if envelope["type"] != "comment_added" {
			t.Errorf("expected comment_added, got %v", envelope["type"])
		}
	})

	t.Run("list", func(t *testing.T) {
		tool := NewGetPageCommentsTool(uc)
		result, err := tool.Execute(context.Background(), map[string]interface{}{
			"page_id": "9001",
			"limit":   float64(5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		envelope := result.(map[string]interface{})
		if envelope["count"] != 1 {
			t.Errorf("expected count 1, got %v", envelope["count"])
		}
	})
}

func TestAnalyzeJavaCodeTool(t *testing.T) {
	tool := NewAnalyzeJavaCodeTool()

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"code": "package p;\n\npublic class A {\n    public int one() {\n        return 1;\n    }\n}\n",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	envelope := result.(map[string]interface{})
	if envelope["type"] != "java_analysis" {
		t.Errorf("expected java_analysis, got %v", envelope["type"])
	}
}

func TestGenerateJavaClassTool(t *testing.T) {
	tool := NewGenerateJavaClassTool()

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"class_name":   "Customer",
		"package_name": "com.example",
		"interfaces":   []interface{}{"Serializable"},
		"fields": []interface{}{
			map[string]interface{}{"name": "id", "type": "long"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	envelope := result.(map[string]interface{})
	data := envelope["data"].(map[string]string)
	if !strings.Contains(data["source"], "public class Customer implements Serializable {") {
		t.Errorf("unexpected generated source: %s", data["source"])
	}
	if !strings.Contains(data["source"], "public long getId() {") {
		t.Errorf("expected getter in generated source")
	}
}

func TestWriteJavaFileTool(t *testing.T) {
	tool := NewWriteJavaFileTool(t.TempDir())

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"class_name":   "A",
		"package_name": "com.example",
		"content":      "public class A {}\n",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	envelope := result.(map[string]interface{})
	data := envelope["data"].(map[string]string)
	if !strings.HasSuffix(data["file_path"], "A.java") {
		t.Errorf("unexpected file path: %s", data["file_path"])
	}
}
