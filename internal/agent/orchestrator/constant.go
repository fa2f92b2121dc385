package orchestrator

// Log prefixes
const (
	LogPrefixProcessQuery    = "internal.agent.orchestrator.ProcessQuery"
	LogPrefixCleanupSessions = "internal.agent.orchestrator.cleanupExpiredSessions"
)

// System prompt
const (
	SystemPromptAgent = `You are an integration assistant that forwards natural language commands to issue trackers, wiki spaces and Java tooling.

If the user asks what you can do, explain briefly that you can:
- Get, search, create and comment on issues (JQL supported)
- Move issues through their workflow
- Get, search and create wiki pages (CQL supported)
- Analyze Java code and whole Java projects
- Generate Java class skeletons and write them to disk
- Generate documentation pages from issues

Call the relevant function for action requests. Answer directly for plain conversation. Keep answers short and factual.`
)

// Error messages
const (
	ErrMsgAgentLLMError    = "agent LLM error at step %d"
	ErrMsgEmptyLLMResponse = "empty LLM response"
	ErrMsgToolNotFound     = "tool not found"
	ErrMsgMaxStepsExceeded = "The assistant took too many steps for this request. Try splitting it into smaller commands."
)

// Log messages
const (
	LogMsgAgentStep          = "Agent step %d/%d"
	LogMsgAgentFinished      = "Agent finished at step %d"
	LogMsgAgentCallingTool   = "Agent calling tool: %s with args: %+v"
	LogMsgToolExecutionError = "Tool %s failed: %v"
	LogMsgAgentMaxSteps      = "Agent exceeded max steps (%d)"
	LogMsgSessionsCleanedUp  = "Cleaned up %d expired sessions"
)

// Configuration defaults
const (
	DefaultMaxSteps       = 5
	MaxSessionHistory     = 10 // last 5 turns (10 messages)
	sessionCleanupMinutes = 5
)
