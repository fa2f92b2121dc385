package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"integration-agent/pkg/llmprovider"
	pkgLog "integration-agent/pkg/log"
)

type stubProvider struct {
	text    string
	err     error
	lastReq *llmprovider.Request
}

func (p *stubProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	p.lastReq = req
	if p.err != nil {
		return nil, p.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: p.text}},
		},
	}, nil
}

func (p *stubProvider) Name() string  { return "stub" }
func (p *stubProvider) Model() string { return "test-model" }

func newTestRouter(p llmprovider.Provider) *SemanticRouter {
	l := pkgLog.Init(pkgLog.ZapConfig{Level: "error", Encoding: "console"})
	manager := llmprovider.NewManager([]llmprovider.Provider{p}, &llmprovider.Config{RetryAttempts: 1}, l)
	return New(manager, l)
}

func TestClassify_ParsesJSON(t *testing.T) {
	p := &stubProvider{text: `{"intent": "ISSUE_OPERATION", "confidence": 92, "reasoning": "mentions an issue key"}`}
	r := newTestRouter(p)

	out, err := r.Classify(context.Background(), "Get issue PROJ-123", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != IntentIssueOperation {
		t.Errorf("expected ISSUE_OPERATION, got %s", out.Intent)
	}
	if out.Confidence != 92 {
		t.Errorf("expected confidence 92, got %d", out.Confidence)
	}
	if p.lastReq.Temperature != RouterTemperature {
		t.Errorf("expected temperature %v, got %v", RouterTemperature, p.lastReq.Temperature)
	}
}

func TestClassify_StripsCodeFence(t *testing.T) {
	p := &stubProvider{text: "```json\n{\"intent\": \"JAVA_OPERATION\", \"confidence\": 80}\n```"}
	r := newTestRouter(p)

	out, err := r.Classify(context.Background(), "Analyze this Java class", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != IntentJavaOperation {
		t.Errorf("expected JAVA_OPERATION, got %s", out.Intent)
	}
}

func TestClassify_FallsBackOnBadJSON(t *testing.T) {
	p := &stubProvider{text: "this is not json"}
	r := newTestRouter(p)

	out, err := r.Classify(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != IntentConversation {
		t.Errorf("expected fallback to CONVERSATION, got %s", out.Intent)
	}
	if out.Confidence != RouterFallbackConfidence {
		t.Errorf("expected fallback confidence, got %d", out.Confidence)
	}
}

func TestClassify_FallsBackOnEmptyResponse(t *testing.T) {
	p := &stubProvider{text: ""}
	r := newTestRouter(p)

	out, err := r.Classify(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != IntentConversation || out.Reasoning != ReasonEmptyResponse {
		t.Errorf("unexpected fallback output: %+v", out)
	}
}

func TestClassify_PropagatesLLMError(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}
	r := newTestRouter(p)

	_, err := r.Classify(context.Background(), "hello", nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestClassify_IncludesHistory(t *testing.T) {
	p := &stubProvider{text: `{"intent": "PAGE_OPERATION", "confidence": 70}`}
	r := newTestRouter(p)

	_, err := r.Classify(context.Background(), "create it there", []string{"Search pages about auth", "Found 3 pages"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := p.lastReq.Messages[0].Parts[0].Text
	if !strings.Contains(prompt, "1. Search pages about auth") {
		t.Errorf("expected numbered history in prompt, got: %q", prompt)
	}
	if !strings.Contains(prompt, `Current message: "create it there"`) {
		t.Errorf("expected current message in prompt")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                  "{\"a\":1}",
		"```json\n{\"a\":1}\n```":    "{\"a\":1}",
		"```\n{\"a\":1}\n```":        "{\"a\":1}",
		"  {\"a\":1}  ":              "{\"a\":1}",
		"```json\n{\"a\":1}\n```\n ": "{\"a\":1}",
	}
	for in, want := range cases {
		if got := stripCodeFence(in); got != want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}
