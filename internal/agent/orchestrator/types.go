package orchestrator

import (
	"time"

	"integration-agent/pkg/llmprovider"
)

// SessionMemory holds the recent conversation history for a session.
type SessionMemory struct {
	SessionID   string
	Messages    []llmprovider.Message
	LastUpdated time.Time
}
