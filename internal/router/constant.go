package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// Router prompts
const (
	PromptRouterSystem = `You are a semantic router. Analyze the following message and determine the user's intent.

Current message: "%s"

Possible intents:
1. ISSUE_OPERATION: get, search, create, update, comment on or transition issues (JQL, issue keys like PROJ-123)
2. PAGE_OPERATION: get, search or create wiki pages and spaces (CQL, page titles, documentation requests)
3. JAVA_OPERATION: analyze Java code or projects, generate Java classes, write Java files
4. CONVERSATION: greetings, questions about capabilities, ordinary chat

Return JSON in this format:
{
  "intent": "ISSUE_OPERATION|PAGE_OPERATION|JAVA_OPERATION|CONVERSATION",
  "confidence": 0-100,
  "reasoning": "Brief explanation"
}`

	PromptHistoryPrefix = "Recent conversation history:\n"
)

// Router configuration
const (
	RouterTemperature        = 0.1
	RouterFallbackIntent     = IntentConversation
	RouterFallbackConfidence = 50
)

// Error messages
const (
	ErrMsgLLMCallFailed   = "LLM call failed"
	ErrMsgJSONParseFailed = "Failed to parse JSON, falling back to CONVERSATION"
	ErrMsgEmptyResponse   = "Empty LLM response, falling back to CONVERSATION"
)

// Fallback reasons
const (
	ReasonParsingError  = "Fallback due to parsing error - route to conversational agent"
	ReasonEmptyResponse = "Fallback due to empty response"
)
