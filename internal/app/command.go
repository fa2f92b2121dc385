package app

import (
	"context"

	"integration-agent/internal/agent/orchestrator"
	"integration-agent/internal/router"
	pkgLog "integration-agent/pkg/log"
)

// CommandService routes a natural language command. Plain conversation is
// answered in a single LLM call; anything operational goes through the
// agent loop with the full tool registry.
type CommandService struct {
	l      pkgLog.Logger
	router router.Router
	orch   *orchestrator.Orchestrator
}

// NewCommandService creates the command entry point shared by the CLI and
// the HTTP server.
func NewCommandService(l pkgLog.Logger, r router.Router, orch *orchestrator.Orchestrator) *CommandService {
	return &CommandService{
		l:      l,
		router: r,
		orch:   orch,
	}
}

// ProcessQuery classifies the command and dispatches it.
func (s *CommandService) ProcessQuery(ctx context.Context, sessionID, query string) (string, error) {
	history := s.orch.HistoryTexts(sessionID)

	out, err := s.router.Classify(ctx, query, history)
	if err != nil {
		// Routing is an optimization, not a gate.
		s.l.Warnf(ctx, "Intent classification failed, using agent loop: %v", err)
		return s.orch.ProcessQuery(ctx, sessionID, query)
	}

	s.l.Infof(ctx, "Intent %s (confidence %d)", out.Intent, out.Confidence)

	if out.Intent == router.IntentConversation {
		return s.orch.ProcessConversation(ctx, sessionID, query)
	}
	return s.orch.ProcessQuery(ctx, sessionID, query)
}
