package customapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Version: "v1",
	})
	if err != nil {
		t.Fatalf("Expected no error creating client, got: %v", err)
	}
	return client, srv
}

func TestGet_SendsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues/PROJ-1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]interface{}{"key": "PROJ-1"})
	})

	client, _ := newTestClient(t, mux)

	resp, err := client.Get(context.Background(), "/v1/issues/PROJ-1", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got: %s", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("Expected X-Request-ID header to be set")
	}
	if resp["key"] != "PROJ-1" {
		t.Errorf("Expected key 'PROJ-1', got: %v", resp["key"])
	}
}

func TestPost_SendsJSONBody(t *testing.T) {
	var gotBody map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got: %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "1001", "key": "PROJ-2"})
	})

	client, _ := newTestClient(t, mux)

	resp, err := client.Post(context.Background(), "/v1/issues", map[string]string{"summary": "New issue"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if gotBody["summary"] != "New issue" {
		t.Errorf("Expected summary 'New issue', got: %v", gotBody["summary"])
	}
	if resp["key"] != "PROJ-2" {
		t.Errorf("Expected key 'PROJ-2', got: %v", resp["key"])
	}
}

func TestDo_NonSuccessReturnsAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/issues/MISSING-1", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Get(context.Background(), "/v1/issues/MISSING-1", nil)
	if err == nil {
		t.Fatal("Expected error for 404 response, got nil")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected IsNotFound to be true, got: %v", err)
	}
}

func TestDo_BareArrayIsWrapped(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"key": "PROJ"},
			{"key": "OPS"},
		})
	})

	client, _ := newTestClient(t, mux)

	resp, err := client.Get(context.Background(), "/v1/projects", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items, ok := resp["items"].([]interface{})
	if !ok {
		t.Fatalf("Expected items array, got: %T", resp["items"])
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 items, got: %d", len(items))
	}
}

func TestTestConnection_HealthEndpoint(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	client, _ := newTestClient(t, mux)

	info, err := client.TestConnection(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !info.Reachable {
		t.Error("Expected API to be reachable")
	}
	if info.Endpoint != "/health" {
		t.Errorf("Expected endpoint '/health', got: %s", info.Endpoint)
	}
}

func TestTestConnection_FallsBackToRoot(t *testing.T) {
	var visited []string
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		visited = append(visited, r.URL.Path)
		if r.URL.Path == "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	client, _ := newTestClient(t, mux)

	info, err := client.TestConnection(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !info.Reachable {
		t.Error("Expected API to be reachable via root fallback")
	}
	if info.Endpoint != "/" {
		t.Errorf("Expected endpoint '/', got: %s", info.Endpoint)
	}
	if len(visited) != 2 || visited[0] != "/health" || visited[1] != "/" {
		t.Errorf("Expected /health before /, got: %v", visited)
	}
}
