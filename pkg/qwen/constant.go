package qwen

import "time"

const (
	// DefaultModel is used when Config.Model is empty.
	DefaultModel = "qwen-plus"

	// DefaultBaseURL is DashScope's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DefaultTimeout bounds each HTTP call.
	DefaultTimeout = 30 * time.Second
)
