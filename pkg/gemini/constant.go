package gemini

import "time"

const (
	// DefaultModel is used when Config.Model is empty.
	DefaultModel = "gemini-2.5-flash"

	// DefaultAPIURL is the Generative Language API base.
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout bounds each HTTP call.
	DefaultTimeout = 30 * time.Second
)
