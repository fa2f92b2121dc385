package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/issue"
)

// SearchIssuesTool runs a JQL search.
type SearchIssuesTool struct {
	uc issue.UseCase
}

// NewSearchIssuesTool creates a new search issues tool.
func NewSearchIssuesTool(uc issue.UseCase) agent.Tool {
	return &SearchIssuesTool{uc: uc}
}

func (t *SearchIssuesTool) Name() string {
	return "jira_search_issues"
}

func (t *SearchIssuesTool) Description() string {
	return "Search for issues using a JQL query. Returns matching issues with their key fields."
}

func (t *SearchIssuesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"jql": map[string]interface{}{
				"type":        "string",
				"description": "JQL query string (e.g. project = PROJ AND status = Open)",
			},
			"max_results": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of results (default 20)",
			},
		},
		"required": []string{"jql"},
	}
}

func (t *SearchIssuesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	jql, ok := params["jql"].(string)
	if !ok || jql == "" {
		return nil, fmt.Errorf("jql parameter is required")
	}

	maxResults := 0
	if m, ok := params["max_results"].(float64); ok {
		maxResults = int(m)
	}

	output, err := t.uc.Search(ctx, issue.SearchInput{
		JQL:        jql,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return map[string]interface{}{
		"type": "search_results",
		"data": output,
	}, nil
}
