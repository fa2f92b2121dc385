package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/page"
)

// SearchPagesTool runs a CQL content search.
type SearchPagesTool struct {
	uc page.UseCase
}

// NewSearchPagesTool creates a new search pages tool.
func NewSearchPagesTool(uc page.UseCase) agent.Tool {
	return &SearchPagesTool{uc: uc}
}

func (t *SearchPagesTool) Name() string {
	return "confluence_search_content"
}

func (t *SearchPagesTool) Description() string {
	return "Search pages using a CQL query. Returns matching pages with title, space and URL."
}

func (t *SearchPagesTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"cql": map[string]interface{}{
				"type":        "string",
				"description": "Confluence Query Language string (e.g. space = DEV AND text ~ \"auth\")",
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": "Maximum number of results (default 20)",
			},
		},
		"required": []string{"cql"},
	}
}

func (t *SearchPagesTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	cql, ok := params["cql"].(string)
	if !ok || cql == "" {
		return nil, fmt.Errorf("cql parameter is required")
	}

	limit := 0
	if l, ok := params["limit"].(float64); ok {
		limit = int(l)
	}

	output, err := t.uc.Search(ctx, page.SearchInput{
		CQL:   cql,
		Limit: limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return map[string]interface{}{
		"type": "search_results",
		"data": output,
	}, nil
}
