package router

import (
	"context"

	"integration-agent/pkg/llmprovider"
	"integration-agent/pkg/log"
)

// Router is the interface for semantic routing.
type Router interface {
	Classify(ctx context.Context, message string, conversationHistory []string) (RouterOutput, error)
}

// SemanticRouter classifies user intent using LLM.
type SemanticRouter struct {
	llm *llmprovider.Manager
	l   log.Logger
}

var _ Router = (*SemanticRouter)(nil)

// New creates a new SemanticRouter.
func New(llm *llmprovider.Manager, l log.Logger) *SemanticRouter {
	return &SemanticRouter{
		llm: llm,
		l:   l,
	}
}
