package confluence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"integration-agent/internal/page"
	"integration-agent/internal/page/repository"
	pkgLog "integration-agent/pkg/log"
)

func testLogger() pkgLog.Logger {
	return pkgLog.Init(pkgLog.ZapConfig{Level: "error", Encoding: "console"})
}

func contentJSON(id, title, body string, version int) map[string]interface{} {
	return map[string]interface{}{
		"id":    id,
		"type":  "page",
		"title": title,
		"space": map[string]interface{}{"id": 100, "key": "DOCS", "name": "Documentation"},
		"body": map[string]interface{}{
			"storage": map[string]interface{}{
				"value":          body,
				"representation": "storage",
			},
		},
		"version": map[string]interface{}{"number": version},
	}
}

func TestGetPage_MapsStorageBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content/12345", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("expand") == "" {
			t.Error("Expected expand parameter to be set")
		}
		json.NewEncoder(w).Encode(contentJSON("12345", "Release Notes", "<p>v1.2 shipped</p>", 4))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	got, err := repo.GetPage(context.Background(), "12345")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got.Title != "Release Notes" {
		t.Errorf("Expected title 'Release Notes', got: %s", got.Title)
	}
	if got.Body != "<p>v1.2 shipped</p>" {
		t.Errorf("Expected storage body, got: %q", got.Body)
	}
	if got.SpaceKey != "DOCS" {
		t.Errorf("Expected space 'DOCS', got: %s", got.SpaceKey)
	}
	if got.Version != 4 {
		t.Errorf("Expected version 4, got: %d", got.Version)
	}
}

func TestGetPageByTitle_NotFoundWhenNoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}, "size": 0})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	_, err := repo.GetPageByTitle(context.Background(), "DOCS", "Missing Page")
	if !errors.Is(err, page.ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound, got: %v", err)
	}
}

func TestUpdatePage_BumpsVersion(t *testing.T) {
	var gotUpdate map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content/12345", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(contentJSON("12345", "Release Notes", "<p>old</p>", 4))
			return
		}
		json.NewDecoder(r.Body).Decode(&gotUpdate)
		json.NewEncoder(w).Encode(contentJSON("12345", "Release Notes", "<p>new</p>", 5))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	newBody := "<p>new</p>"
	got, err := repo.UpdatePage(context.Background(), "12345", repository.UpdatePageOptions{Body: &newBody})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	version := gotUpdate["version"].(map[string]interface{})
	if version["number"] != float64(5) {
		t.Errorf("Expected version number 5 in update body, got: %v", version["number"])
	}
	if gotUpdate["title"] != "Release Notes" {
		t.Errorf("Expected current title to be kept, got: %v", gotUpdate["title"])
	}
	if got.Version != 5 {
		t.Errorf("Expected returned version 5, got: %d", got.Version)
	}
}

func TestCreatePage_SendsStorageFormat(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(contentJSON("999", "New Page", "<p>hello</p>", 1))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	got, err := repo.CreatePage(context.Background(), repository.CreatePageOptions{
		SpaceKey: "DOCS",
		Title:    "New Page",
		Body:     "<p>hello</p>",
		ParentID: "12345",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	storage := gotBody["body"].(map[string]interface{})["storage"].(map[string]interface{})
	if storage["representation"] != "storage" {
		t.Errorf("Expected storage representation, got: %v", storage["representation"])
	}
	ancestors := gotBody["ancestors"].([]interface{})
	if len(ancestors) != 1 {
		t.Fatalf("Expected one ancestor, got: %d", len(ancestors))
	}
	if got.ID != "999" {
		t.Errorf("Expected page ID '999', got: %s", got.ID)
	}
}

func TestSearchPages_UsesCQL(t *testing.T) {
	var gotCQL string
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content/search", func(w http.ResponseWriter, r *http.Request) {
		gotCQL = r.URL.Query().Get("cql")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results":   []interface{}{contentJSON("1", "Found", "<p>x</p>", 2)},
			"totalSize": 1,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	result, err := repo.SearchPages(context.Background(), repository.SearchOptions{
		CQL: `space = DOCS AND title ~ "release"`,
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotCQL != `space = DOCS AND title ~ "release"` {
		t.Errorf("Expected CQL passthrough, got: %q", gotCQL)
	}
	if result.Total != 1 || len(result.Pages) != 1 {
		t.Errorf("Expected one result, got: total=%d len=%d", result.Total, len(result.Pages))
	}
}

func TestDeletePage_SendsDelete(t *testing.T) {
	var gotMethod string
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content/12345", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	if err := repo.DeletePage(context.Background(), "12345"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("Expected DELETE, got: %s", gotMethod)
	}
}

func TestDeletePage_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	if err := repo.DeletePage(context.Background(), "99999"); !errors.Is(err, page.ErrPageNotFound) {
		t.Errorf("Expected ErrPageNotFound, got: %v", err)
	}
}

func TestAddComment_PostsCommentContainer(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":   "67890",
			"type": "comment",
			"body": map[string]interface{}{
				"storage": map[string]interface{}{"value": "<p>nice</p>"},
			},
			"version": map[string]interface{}{
				"number": 1,
				"when":   "2026-08-20T08:00:00Z",
				"by":     map[string]interface{}{"displayName": "Dana"},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	got, err := repo.AddComment(context.Background(), "12345", "<p>nice</p>")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotBody["type"] != "comment" {
		t.Errorf("Expected type 'comment' in payload, got: %v", gotBody["type"])
	}
	container, _ := gotBody["container"].(map[string]interface{})
	if container["id"] != "12345" || container["type"] != "page" {
		t.Errorf("Expected page container for '12345', got: %v", gotBody["container"])
	}
	if got.ID != "67890" || got.Body != "<p>nice</p>" {
		t.Errorf("Expected mapped comment, got: %+v", got)
	}
	if got.Author.DisplayName != "Dana" {
		t.Errorf("Expected author 'Dana', got: %+v", got.Author)
	}
}

func TestListComments_MapsChildComments(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/wiki/rest/api/content/12345/child/comment", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("Expected limit 5, got: %s", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []interface{}{
				map[string]interface{}{
					"id":   "1",
					"body": map[string]interface{}{"storage": map[string]interface{}{"value": "first"}},
				},
				map[string]interface{}{
					"id":   "2",
					"body": map[string]interface{}{"storage": map[string]interface{}{"value": "second"}},
				},
			},
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	repo := New(NewClient(srv.URL, "bot@example.com", "token"), testLogger())

	comments, err := repo.ListComments(context.Background(), "12345", 5)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(comments) != 2 || comments[1].Body != "second" {
		t.Errorf("Expected 2 mapped comments, got: %+v", comments)
	}
}
