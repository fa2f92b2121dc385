package orchestrator

import (
	"sync"
	"time"

	"integration-agent/internal/agent"
	"integration-agent/pkg/llmprovider"
	pkgLog "integration-agent/pkg/log"
)

// Config tunes the agent loop.
type Config struct {
	MaxSteps   int           // default DefaultMaxSteps
	SessionTTL time.Duration // default 10 minutes
}

type Orchestrator struct {
	llm          *llmprovider.Manager
	registry     *agent.ToolRegistry
	l            pkgLog.Logger
	maxSteps     int
	sessionCache map[string]*SessionMemory
	cacheMutex   sync.RWMutex
	cacheTTL     time.Duration
}

func New(llm *llmprovider.Manager, registry *agent.ToolRegistry, l pkgLog.Logger, cfg Config) *Orchestrator {
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 10 * time.Minute
	}
	o := &Orchestrator{
		llm:          llm,
		registry:     registry,
		l:            l,
		maxSteps:     cfg.MaxSteps,
		sessionCache: make(map[string]*SessionMemory),
		cacheTTL:     cfg.SessionTTL,
	}

	go o.cleanupExpiredSessions()

	return o
}
