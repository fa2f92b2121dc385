package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"integration-agent/pkg/llmprovider"
)

// Classify determines user intent from a message.
func (r *SemanticRouter) Classify(ctx context.Context, message string, conversationHistory []string) (RouterOutput, error) {
	historyContext := ""
	if len(conversationHistory) > 0 {
		historyContext = PromptHistoryPrefix
		for i, msg := range conversationHistory {
			historyContext += fmt.Sprintf("%d. %s\n", i+1, msg)
		}
		historyContext += "\n"
	}

	prompt := historyContext + fmt.Sprintf(PromptRouterSystem, message)

	resp, err := r.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: prompt}},
			},
		},
		Temperature: RouterTemperature,
	})
	if err != nil {
		return RouterOutput{}, fmt.Errorf("%s: %s: %w", LogPrefixClassify, ErrMsgLLMCallFailed, err)
	}

	if len(resp.Content.Parts) == 0 || resp.Content.Parts[0].Text == "" {
		r.l.Warnf(ctx, "%s: %s", LogPrefixClassify, ErrMsgEmptyResponse)
		return RouterOutput{
			Intent:     RouterFallbackIntent,
			Confidence: RouterFallbackConfidence,
			Reasoning:  ReasonEmptyResponse,
		}, nil
	}

	responseText := stripCodeFence(resp.Content.Parts[0].Text)

	var output RouterOutput
	if err := json.Unmarshal([]byte(responseText), &output); err != nil {
		r.l.Warnf(ctx, "%s: %s: %v", LogPrefixClassify, ErrMsgJSONParseFailed, err)
		return RouterOutput{
			Intent:     RouterFallbackIntent,
			Confidence: RouterFallbackConfidence,
			Reasoning:  ReasonParsingError,
		}, nil
	}

	r.l.Infof(ctx, "%s: Classified as %s (confidence: %d%%)", LogPrefixClassify, output.Intent, output.Confidence)
	return output, nil
}

// stripCodeFence removes a surrounding markdown code block, if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
		return strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		return strings.TrimSpace(s)
	}
	return s
}
