package response

// Resp is the envelope every endpoint returns. ErrorCode 0 means
// success; Errors carries field-level validation detail when present.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}
