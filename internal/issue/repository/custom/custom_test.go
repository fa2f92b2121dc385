package custom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"integration-agent/internal/issue"
	"integration-agent/internal/issue/repository"
	"integration-agent/pkg/customapi"
	pkgLog "integration-agent/pkg/log"
)

func newTestRepo(t *testing.T, handler http.Handler) repository.IssueRepository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := customapi.New(customapi.Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Version: "v1",
	})
	if err != nil {
		t.Fatalf("setup: create client: %v", err)
	}
	return New(client, pkgLog.Init(pkgLog.ZapConfig{Level: "error", Encoding: "console"}))
}

func TestJQLToFilters(t *testing.T) {
	tests := []struct {
		name string
		jql  string
		want map[string]string
	}{
		{
			name: "project and status",
			jql:  `project = PROJ AND status = "In Progress"`,
			want: map[string]string{"project": "PROJ", "status": "In Progress"},
		},
		{
			name: "current user maps to me",
			jql:  "assignee = currentUser()",
			want: map[string]string{"assignee": "me"},
		},
		{
			name: "issuetype maps to issue_type",
			jql:  "issuetype = Bug",
			want: map[string]string{"issue_type": "Bug"},
		},
		{
			name: "summary contains becomes query",
			jql:  `summary ~ "login crash"`,
			want: map[string]string{"query": "login crash"},
		},
		{
			name: "unrecognized clause falls back to free text",
			jql:  "sprint in openSprints()",
			want: map[string]string{"query": "sprint in openSprints()"},
		},
		{
			name: "empty jql yields no filters",
			jql:  "  ",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jqlToFilters(tt.jql)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d filters, got %d: %v", len(tt.want), len(got), got)
			}
			for k, v := range tt.want {
				if got.Get(k) != v {
					t.Errorf("Expected %s=%q, got %q", k, v, got.Get(k))
				}
			}
		})
	}
}

func TestGetIssue_NormalizesAliases(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues/TASK-7", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":          7,
			"key":         "TASK-7",
			"title":       "Fix the login page",
			"body":        "Users cannot log in on Safari",
			"type":        "bug",
			"status":      "open",
			"tags":        []string{"frontend", "urgent"},
			"assigned_to": "dana",
			"created_at":  "2026-08-01T10:00:00Z",
		})
	})

	repo := newTestRepo(t, mux)

	got, err := repo.GetIssue(context.Background(), "TASK-7")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got.Key != "TASK-7" {
		t.Errorf("Expected key 'TASK-7', got: %s", got.Key)
	}
	if got.Fields.Summary != "Fix the login page" {
		t.Errorf("Expected title alias to map to summary, got: %q", got.Fields.Summary)
	}
	if got.Fields.Description != "Users cannot log in on Safari" {
		t.Errorf("Expected body alias to map to description, got: %q", got.Fields.Description)
	}
	if got.Fields.IssueType != "bug" {
		t.Errorf("Expected type alias to map to issue_type, got: %q", got.Fields.IssueType)
	}
	if got.Fields.Status.Name != "open" {
		t.Errorf("Expected status 'open', got: %q", got.Fields.Status.Name)
	}
	if len(got.Fields.Labels) != 2 || got.Fields.Labels[0] != "frontend" {
		t.Errorf("Expected tags alias to map to labels, got: %v", got.Fields.Labels)
	}
	if got.Fields.Assignee == nil || got.Fields.Assignee.DisplayName != "dana" {
		t.Errorf("Expected assigned_to alias to map to assignee, got: %+v", got.Fields.Assignee)
	}
}

func TestGetIssue_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	repo := newTestRepo(t, mux)

	_, err := repo.GetIssue(context.Background(), "GONE-1")
	if !errors.Is(err, issue.ErrIssueNotFound) {
		t.Errorf("Expected ErrIssueNotFound, got: %v", err)
	}
}

func TestSearchIssues_TranslatesJQL(t *testing.T) {
	var gotQuery map[string][]string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues/search", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"issues": []map[string]interface{}{
				{"id": "1", "key": "PROJ-1", "summary": "First"},
			},
			"total": 1,
		})
	})

	repo := newTestRepo(t, mux)

	result, err := repo.SearchIssues(context.Background(), repository.SearchOptions{
		JQL:        `project = PROJ AND assignee = currentUser()`,
		MaxResults: 10,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := gotQuery["project"]; len(got) != 1 || got[0] != "PROJ" {
		t.Errorf("Expected project filter 'PROJ', got: %v", got)
	}
	if got := gotQuery["assignee"]; len(got) != 1 || got[0] != "me" {
		t.Errorf("Expected assignee filter 'me', got: %v", got)
	}
	if got := gotQuery["limit"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("Expected limit '10', got: %v", got)
	}
	if len(result.Issues) != 1 || result.Issues[0].Fields.Summary != "First" {
		t.Errorf("Expected one issue 'First', got: %+v", result.Issues)
	}
}

func TestSearchIssues_UsesSearchEndpoint(t *testing.T) {
	var gotPath string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{"issues": []interface{}{}})
	})

	repo := newTestRepo(t, mux)

	if _, err := repo.SearchIssues(context.Background(), repository.SearchOptions{JQL: "project = PROJ"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotPath != "/v1/issues/search" {
		t.Errorf("Expected search to hit /v1/issues/search, got: %s", gotPath)
	}
}

func TestSearchIssues_DataEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues/search", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "9", "key": "PROJ-9", "summary": "Enveloped"},
			},
			"total": 1,
		})
	})

	repo := newTestRepo(t, mux)

	result, err := repo.SearchIssues(context.Background(), repository.SearchOptions{JQL: "project = PROJ"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(result.Issues) != 1 || result.Issues[0].Key != "PROJ-9" {
		t.Errorf("Expected data envelope to yield PROJ-9, got: %+v", result.Issues)
	}
}

func TestCreateIssue_PostsNormalizedBody(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "42",
			"key":     "PROJ-42",
			"summary": gotBody["summary"],
			"status":  "open",
		})
	})

	repo := newTestRepo(t, mux)

	got, err := repo.CreateIssue(context.Background(), repository.CreateIssueOptions{
		ProjectKey: "PROJ",
		Summary:    "Wire up metrics",
		IssueType:  "Task",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotBody["project"] != "PROJ" {
		t.Errorf("Expected project 'PROJ' in body, got: %v", gotBody["project"])
	}
	if gotBody["issue_type"] != "Task" {
		t.Errorf("Expected issue_type 'Task' in body, got: %v", gotBody["issue_type"])
	}
	if got.Key != "PROJ-42" {
		t.Errorf("Expected key 'PROJ-42', got: %s", got.Key)
	}
}

func TestListProjects_AcceptsBareArray(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "1", "slug": "proj", "title": "Main Project"},
		})
	})

	repo := newTestRepo(t, mux)

	projects, err := repo.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("Expected 1 project, got: %d", len(projects))
	}
	if projects[0].Key != "proj" || projects[0].Name != "Main Project" {
		t.Errorf("Expected slug/title aliases to map, got: %+v", projects[0])
	}
}
