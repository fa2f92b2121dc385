package orchestrator

import (
	"context"
	"fmt"
	"time"

	"integration-agent/pkg/llmprovider"
)

// ProcessQuery runs the ReAct loop: Reason, Act, Observe.
func (o *Orchestrator) ProcessQuery(ctx context.Context, sessionID, query string) (string, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: SystemPromptAgent}},
		},
		Messages: append(o.snapshotMessages(sessionID), llmprovider.Message{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: query}},
		}),
		Tools: o.registry.ToFunctionDefinitions(),
	}

	for step := 0; step < o.maxSteps; step++ {
		o.l.Infof(ctx, LogMsgAgentStep, step+1, o.maxSteps)

		// 1. Reason: ask the LLM what to do
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			return "", fmt.Errorf(ErrMsgAgentLLMError+": %w", step, err)
		}

		if len(resp.Content.Parts) == 0 {
			return "", fmt.Errorf(ErrMsgEmptyLLMResponse)
		}

		fc := functionCall(resp.Content)

		// 2. No tool call means the LLM has its final answer
		if fc == nil {
			o.l.Infof(ctx, LogMsgAgentFinished, step+1)
			answer := resp.Content.Parts[0].Text
			o.rememberTurn(sessionID, query, answer)
			return answer, nil
		}

		// 3. Act: execute the tool
		o.l.Infof(ctx, LogMsgAgentCallingTool, fc.Name, fc.Args)

		tool, ok := o.registry.Get(fc.Name)
		var toolResult interface{}

		if !ok {
			o.l.Errorf(ctx, "%s: tool %s not found", LogPrefixProcessQuery, fc.Name)
			toolResult = map[string]string{"error": ErrMsgToolNotFound}
		} else {
			res, err := tool.Execute(ctx, fc.Args)
			if err != nil {
				o.l.Errorf(ctx, LogMsgToolExecutionError, fc.Name, err)
				toolResult = map[string]string{"error": err.Error()}
			} else {
				toolResult = res
			}
		}

		// 4. Observe: feed the tool result back into the conversation
		req.Messages = append(req.Messages, llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{FunctionCall: fc}},
		})
		req.Messages = append(req.Messages, llmprovider.Message{
			Role: "tool",
			Parts: []llmprovider.Part{{
				FunctionResponse: &llmprovider.FunctionResponse{
					Name:     fc.Name,
					Response: toolResult,
				},
			}},
		})
	}

	o.l.Warnf(ctx, LogMsgAgentMaxSteps, o.maxSteps)
	return ErrMsgMaxStepsExceeded, nil
}

// ProcessConversation answers a plain conversational message in a single
// LLM call with no tools exposed. Session memory is shared with ProcessQuery.
func (o *Orchestrator) ProcessConversation(ctx context.Context, sessionID, query string) (string, error) {
	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Role:  "system",
			Parts: []llmprovider.Part{{Text: SystemPromptAgent}},
		},
		Messages: append(o.snapshotMessages(sessionID), llmprovider.Message{
			Role:  "user",
			Parts: []llmprovider.Part{{Text: query}},
		}),
	}

	resp, err := o.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", fmt.Errorf("conversation LLM error: %w", err)
	}
	if len(resp.Content.Parts) == 0 {
		return "", fmt.Errorf(ErrMsgEmptyLLMResponse)
	}

	answer := resp.Content.Parts[0].Text
	o.rememberTurn(sessionID, query, answer)
	return answer, nil
}

// HistoryTexts returns the plain text messages of a session in order.
// Used to give the router conversational context.
func (o *Orchestrator) HistoryTexts(sessionID string) []string {
	o.cacheMutex.RLock()
	defer o.cacheMutex.RUnlock()

	session, ok := o.sessionCache[sessionID]
	if !ok {
		return nil
	}
	var texts []string
	for _, msg := range session.Messages {
		for _, part := range msg.Parts {
			if part.Text != "" {
				texts = append(texts, part.Text)
			}
		}
	}
	return texts
}

// snapshotMessages copies a session's history under the read lock so the
// loop can extend it while concurrent turns append to the session.
func (o *Orchestrator) snapshotMessages(sessionID string) []llmprovider.Message {
	o.cacheMutex.RLock()
	defer o.cacheMutex.RUnlock()

	session, ok := o.sessionCache[sessionID]
	if !ok {
		return nil
	}
	return append([]llmprovider.Message(nil), session.Messages...)
}

// GetSession returns the session memory for an ID, creating it when absent.
func (o *Orchestrator) GetSession(sessionID string) *SessionMemory {
	o.cacheMutex.RLock()
	session, ok := o.sessionCache[sessionID]
	o.cacheMutex.RUnlock()
	if ok {
		return session
	}

	o.cacheMutex.Lock()
	defer o.cacheMutex.Unlock()
	if session, ok = o.sessionCache[sessionID]; ok {
		return session
	}
	session = &SessionMemory{
		SessionID:   sessionID,
		LastUpdated: time.Now(),
	}
	o.sessionCache[sessionID] = session
	return session
}

// rememberTurn appends a completed user/assistant turn to the session,
// keeping only the most recent MaxSessionHistory messages.
func (o *Orchestrator) rememberTurn(sessionID, query, answer string) {
	o.cacheMutex.Lock()
	defer o.cacheMutex.Unlock()

	session, ok := o.sessionCache[sessionID]
	if !ok {
		session = &SessionMemory{SessionID: sessionID}
		o.sessionCache[sessionID] = session
	}

	session.Messages = append(session.Messages,
		llmprovider.Message{Role: "user", Parts: []llmprovider.Part{{Text: query}}},
		llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: answer}}},
	)
	if len(session.Messages) > MaxSessionHistory {
		session.Messages = session.Messages[len(session.Messages)-MaxSessionHistory:]
	}
	session.LastUpdated = time.Now()
}

func (o *Orchestrator) cleanupExpiredSessions() {
	ticker := time.NewTicker(sessionCleanupMinutes * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-o.cacheTTL)
		removed := 0

		o.cacheMutex.Lock()
		for id, session := range o.sessionCache {
			if session.LastUpdated.Before(cutoff) {
				delete(o.sessionCache, id)
				removed++
			}
		}
		o.cacheMutex.Unlock()

		if removed > 0 {
			o.l.Infof(context.Background(), LogMsgSessionsCleanedUp, removed)
		}
	}
}

// functionCall returns the first function call part of a message, if any.
func functionCall(msg llmprovider.Message) *llmprovider.FunctionCall {
	for _, part := range msg.Parts {
		if part.FunctionCall != nil {
			return part.FunctionCall
		}
	}
	return nil
}
