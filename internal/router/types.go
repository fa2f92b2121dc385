package router

// Intent represents the user's intention.
type Intent string

const (
	IntentIssueOperation Intent = "ISSUE_OPERATION"
	IntentPageOperation  Intent = "PAGE_OPERATION"
	IntentJavaOperation  Intent = "JAVA_OPERATION"
	IntentConversation   Intent = "CONVERSATION"
)

// RouterOutput is the structured response from the semantic router.
type RouterOutput struct {
	Intent     Intent `json:"intent"`
	Confidence int    `json:"confidence"` // 0-100
	Reasoning  string `json:"reasoning"`
}
