package deepseek

const (
	// DefaultBaseURL is DeepSeek's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is used when Config.Model is empty.
	DefaultModel = "deepseek-chat"
)
