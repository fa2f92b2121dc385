package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GenerateContent sends a generateContent request and maps the reply
// back onto the provider-neutral shape.
func (g *geminiImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(toWire(req))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.apiURL, g.model, g.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini: API error %d: %s", resp.StatusCode, string(raw))
	}

	var wire geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("gemini: failed to decode response: %w", err)
	}
	return fromWire(&wire), nil
}

// Model returns the configured model name.
func (g *geminiImpl) Model() string {
	return g.model
}

func toWire(req *Request) *geminiRequest {
	wire := &geminiRequest{
		Contents: make([]geminiContent, 0, len(req.Messages)),
	}

	if req.SystemInstruction != nil {
		wire.SystemInstruction = &geminiContent{
			Parts: toWireParts(req.SystemInstruction.Parts),
		}
	}
	for i := range req.Messages {
		wire.Contents = append(wire.Contents, geminiContent{
			Role:  req.Messages[i].Role,
			Parts: toWireParts(req.Messages[i].Parts),
		})
	}

	if len(req.Tools) > 0 {
		decls := make([]geminiFunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			decls = append(decls, geminiFunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			})
		}
		// Gemini groups all declarations under a single tool entry.
		wire.Tools = []geminiTool{{FunctionDeclarations: decls}}
	}

	if req.Temperature > 0 || req.MaxTokens > 0 {
		wire.GenerationConfig = &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	return wire
}

func toWireParts(parts []Part) []geminiPart {
	wire := make([]geminiPart, 0, len(parts))
	for _, part := range parts {
		p := geminiPart{Text: part.Text}
		if part.FunctionCall != nil {
			p.FunctionCall = &geminiFunctionCall{
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			}
		}
		if part.FunctionResponse != nil {
			p.FunctionResponse = &geminiFunctionResponse{
				Name:     part.FunctionResponse.Name,
				Response: part.FunctionResponse.Response,
			}
		}
		wire = append(wire, p)
	}
	return wire
}

func fromWire(wire *geminiResponse) *Response {
	usage := &Usage{}
	if wire.UsageMetadata != nil {
		usage.InputTokens = wire.UsageMetadata.PromptTokenCount
		usage.OutputTokens = wire.UsageMetadata.CandidatesTokenCount
		usage.TotalTokens = wire.UsageMetadata.TotalTokenCount
	}
	if len(wire.Candidates) == 0 {
		return &Response{Usage: usage}
	}

	content := wire.Candidates[0].Content
	parts := make([]Part, 0, len(content.Parts))
	for _, p := range content.Parts {
		part := Part{Text: p.Text}
		if p.FunctionCall != nil {
			part.FunctionCall = &FunctionCall{
				Name: p.FunctionCall.Name,
				Args: p.FunctionCall.Args,
			}
		}
		if p.FunctionResponse != nil {
			part.FunctionResponse = &FunctionResponse{
				Name:     p.FunctionResponse.Name,
				Response: p.FunctionResponse.Response,
			}
		}
		parts = append(parts, part)
	}

	return &Response{
		Content: Content{Role: content.Role, Parts: parts},
		Usage:   usage,
	}
}
