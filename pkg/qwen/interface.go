// Package qwen is a minimal client for Alibaba's Qwen models, speaking
// the OpenAI-compatible chat completions dialect that DashScope exposes.
package qwen

import "context"

// IQwen is the Qwen API client. Implementations are safe for
// concurrent use.
type IQwen interface {
	// GenerateContent sends a chat completion request.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the configured model name.
	Model() string
}

// New creates a Qwen client.
func New(cfg Config) (IQwen, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &qwenImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}, nil
}
