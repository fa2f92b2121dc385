package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/issue"
)

// TransitionIssueTool moves an issue through its workflow.
type TransitionIssueTool struct {
	uc issue.UseCase
}

// NewTransitionIssueTool creates a new transition issue tool.
func NewTransitionIssueTool(uc issue.UseCase) agent.Tool {
	return &TransitionIssueTool{uc: uc}
}

func (t *TransitionIssueTool) Name() string {
	return "jira_transition_issue"
}

func (t *TransitionIssueTool) Description() string {
	return "Move an issue to a new status by transition name or ID (e.g. 'In Progress', 'Done')."
}

func (t *TransitionIssueTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"issue_key": map[string]interface{}{
				"type":        "string",
				"description": "The issue key (e.g. PROJ-123)",
			},
			"transition": map[string]interface{}{
				"type":        "string",
				"description": "Target transition name, target status name, or transition ID",
			},
		},
		"required": []string{"issue_key", "transition"},
	}
}

func (t *TransitionIssueTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	key, ok := params["issue_key"].(string)
	if !ok || key == "" {
		return nil, fmt.Errorf("issue_key parameter is required")
	}
	target, ok := params["transition"].(string)
	if !ok || target == "" {
		return nil, fmt.Errorf("transition parameter is required")
	}

	if err := t.uc.Transition(ctx, key, target); err != nil {
		return nil, fmt.Errorf("transition failed: %w", err)
	}

	return map[string]interface{}{
		"type": "issue_transitioned",
		"data": map[string]string{"issue_key": key, "transition": target},
	}, nil
}
