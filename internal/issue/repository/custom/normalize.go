package custom

import (
	"fmt"

	"integration-agent/internal/model"
)

// Field aliases accepted from custom API payloads, in lookup order. The
// first present alias wins.
var (
	summaryAliases     = []string{"summary", "title", "subject", "name"}
	descriptionAliases = []string{"description", "body", "content", "details"}
	typeAliases        = []string{"issue_type", "type", "kind"}
	assigneeAliases    = []string{"assignee", "assigned_to", "owner"}
	labelAliases       = []string{"labels", "tags"}
	createdAliases     = []string{"created", "created_at"}
	updatedAliases     = []string{"updated", "updated_at"}
)

// NormalizeIssue maps a loosely-shaped custom API issue payload onto the
// backend-neutral model.
func NormalizeIssue(raw map[string]interface{}) model.Issue {
	out := model.Issue{
		ID:   stringField(raw, "id"),
		Key:  stringField(raw, "key", "id"),
		Self: stringField(raw, "self", "url"),
	}

	// Some APIs nest writable fields under "fields" like Jira does; others
	// keep everything flat. Prefer the nested envelope when present.
	fields := raw
	if nested, ok := raw["fields"].(map[string]interface{}); ok {
		fields = nested
	}

	out.Fields = model.IssueFields{
		Summary:     stringField(fields, summaryAliases...),
		Description: stringField(fields, descriptionAliases...),
		IssueType:   stringField(fields, typeAliases...),
		Priority:    stringField(fields, "priority"),
		Labels:      stringSlice(fields, labelAliases...),
		Project:     stringField(fields, "project", "project_key"),
		Created:     stringField(fields, createdAliases...),
		Updated:     stringField(fields, updatedAliases...),
	}

	switch status := fields["status"].(type) {
	case string:
		out.Fields.Status = model.Status{Name: status}
	case map[string]interface{}:
		out.Fields.Status = model.Status{
			ID:   stringField(status, "id"),
			Name: stringField(status, "name"),
		}
	}

	if assignee := stringField(fields, assigneeAliases...); assignee != "" {
		out.Fields.Assignee = &model.User{DisplayName: assignee}
	} else if nested, ok := fields["assignee"].(map[string]interface{}); ok {
		out.Fields.Assignee = &model.User{
			Name:        stringField(nested, "name", "id"),
			DisplayName: stringField(nested, "display_name", "name"),
		}
	}

	return out
}

func NormalizeComment(raw map[string]interface{}) model.Comment {
	out := model.Comment{
		ID:      stringField(raw, "id"),
		Body:    stringField(raw, "body", "content", "text"),
		Created: stringField(raw, createdAliases...),
		Updated: stringField(raw, updatedAliases...),
	}

	switch author := raw["author"].(type) {
	case string:
		out.Author = model.User{DisplayName: author}
	case map[string]interface{}:
		out.Author = model.User{
			Name:        stringField(author, "name", "id"),
			DisplayName: stringField(author, "display_name", "name"),
		}
	}
	return out
}

// stringField returns the first alias present in raw as a string. Numeric
// IDs are rendered without a decimal point.
func stringField(raw map[string]interface{}, aliases ...string) string {
	for _, alias := range aliases {
		switch v := raw[alias].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v == float64(int64(v)) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func stringSlice(raw map[string]interface{}, aliases ...string) []string {
	for _, alias := range aliases {
		arr, ok := raw[alias].([]interface{})
		if !ok {
			continue
		}
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func intField(raw map[string]interface{}, key string) int {
	if v, ok := raw[key].(float64); ok {
		return int(v)
	}
	return 0
}

// extractItems returns the list portion of a search response, accepting the
// named key or one of the generic "data", "items", or "results" envelopes.
func extractItems(raw map[string]interface{}, key string) []map[string]interface{} {
	for _, k := range []string{key, "data", "items", "results"} {
		arr, ok := raw[k].([]interface{})
		if !ok {
			continue
		}
		out := make([]map[string]interface{}, 0, len(arr))
		for _, item := range arr {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
