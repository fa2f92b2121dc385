package qwen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// GenerateContent sends a chat completion request and maps the reply
// back onto the provider-neutral shape.
func (q *qwenImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(q.toWire(req))
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		q.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("qwen: failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+q.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := q.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("qwen: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("qwen: API error %d: %s", resp.StatusCode, string(raw))
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("qwen: failed to decode response: %w", err)
	}
	return fromWire(&wire), nil
}

// Model returns the configured model name.
func (q *qwenImpl) Model() string {
	return q.model
}

func (q *qwenImpl) toWire(req *Request) *chatRequest {
	wire := &chatRequest{
		Model:       q.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]chatMessage, 0, len(req.Messages)+1),
	}

	if req.SystemInstruction != nil {
		msg := toWireMessage(req.SystemInstruction)
		msg.Role = "system"
		wire.Messages = append(wire.Messages, msg)
	}
	for i := range req.Messages {
		wire.Messages = append(wire.Messages, toWireMessage(&req.Messages[i]))
	}

	for _, tool := range req.Tools {
		wire.Tools = append(wire.Tools, chatTool{
			Type: "function",
			Function: chatFunctionDecl{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	return wire
}

// toWireMessage flattens the parts of a message into the chat dialect:
// text parts concatenate, a function call becomes a tool_calls entry,
// and a function response becomes a tool role message.
func toWireMessage(msg *Content) chatMessage {
	wire := chatMessage{Role: msg.Role}

	for _, part := range msg.Parts {
		if part.Text != "" {
			if wire.Content != "" {
				wire.Content += "\n"
			}
			wire.Content += part.Text
		}

		if part.FunctionCall != nil {
			argsJSON, _ := json.Marshal(part.FunctionCall.Args)
			wire.ToolCalls = append(wire.ToolCalls, chatToolCall{
				ID:   "call_" + part.FunctionCall.Name,
				Type: "function",
				Function: chatFunctionCall{
					Name:      part.FunctionCall.Name,
					Arguments: string(argsJSON),
				},
			})
		}

		if part.FunctionResponse != nil {
			wire.Role = "tool"
			wire.ToolCallID = "call_" + part.FunctionResponse.Name
			responseJSON, _ := json.Marshal(part.FunctionResponse.Response)
			wire.Content = string(responseJSON)
		}
	}

	return wire
}

func fromWire(wire *chatResponse) *Response {
	if wire == nil || len(wire.Choices) == 0 {
		return &Response{Usage: &Usage{}}
	}

	choice := wire.Choices[0]
	content := Content{
		Role:  choice.Message.Role,
		Parts: make([]Part, 0, 1+len(choice.Message.ToolCalls)),
	}

	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, Part{Text: choice.Message.Content})
	}

	for _, tc := range choice.Message.ToolCalls {
		if tc.Type != "function" {
			continue
		}
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			args = make(map[string]interface{})
		}
		content.Parts = append(content.Parts, Part{
			FunctionCall: &FunctionCall{
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return &Response{
		Content: content,
		Usage: &Usage{
			InputTokens:  wire.Usage.PromptTokens,
			OutputTokens: wire.Usage.CompletionTokens,
			TotalTokens:  wire.Usage.TotalTokens,
		},
	}
}
