// Package gemini is a minimal client for Google's Gemini models via the
// generateContent REST endpoint.
package gemini

import "context"

// IGemini is the Gemini API client. Implementations are safe for
// concurrent use.
type IGemini interface {
	// GenerateContent sends a generation request.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Model returns the configured model name.
	Model() string
}

// New creates a Gemini client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &geminiImpl{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		apiURL:     cfg.APIURL,
		httpClient: cfg.HTTPClient,
	}, nil
}
