package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/docgen"
)

// GenerateDocumentationTool builds a documentation page from an issue.
type GenerateDocumentationTool struct {
	gen *docgen.Generator
}

// NewGenerateDocumentationTool creates a new generate documentation tool.
func NewGenerateDocumentationTool(gen *docgen.Generator) agent.Tool {
	return &GenerateDocumentationTool{gen: gen}
}

func (t *GenerateDocumentationTool) Name() string {
	return "generate_issue_documentation"
}

func (t *GenerateDocumentationTool) Description() string {
	return "Fetch an issue with its comments and create a documentation page for it in the given space."
}

func (t *GenerateDocumentationTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"issue_key": map[string]interface{}{
				"type":        "string",
				"description": "The issue key (e.g. PROJ-123)",
			},
			"space_key": map[string]interface{}{
				"type":        "string",
				"description": "Space key where the page is created",
			},
		},
		"required": []string{"issue_key", "space_key"},
	}
}

func (t *GenerateDocumentationTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	issueKey, ok := params["issue_key"].(string)
	if !ok || issueKey == "" {
		return nil, fmt.Errorf("issue_key parameter is required")
	}
	spaceKey, ok := params["space_key"].(string)
	if !ok || spaceKey == "" {
		return nil, fmt.Errorf("space_key parameter is required")
	}

	result, err := t.gen.FromIssue(ctx, issueKey, spaceKey)
	if err != nil {
		return nil, fmt.Errorf("documentation generation failed: %w", err)
	}

	return map[string]interface{}{
		"type": "documentation_created",
		"data": result,
	}, nil
}
