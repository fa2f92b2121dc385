package custom

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"integration-agent/internal/model"
)

// NormalizePage maps a loosely-shaped custom API page payload onto the
// backend-neutral model.
func NormalizePage(raw map[string]interface{}) model.Page {
	fields := raw
	if nested, ok := raw["fields"].(map[string]interface{}); ok {
		fields = nested
	}

	out := model.Page{
		ID:       stringField(raw, "id"),
		Title:    stringField(fields, "title", "name"),
		SpaceKey: stringField(fields, "space", "space_key", "collection"),
		Body:     stringField(fields, "body", "content", "text"),
		ParentID: stringField(fields, "parent_id", "parent"),
		WebURL:   stringField(fields, "url", "web_url", "self"),
		Created:  stringField(fields, "created", "created_at"),
		Updated:  stringField(fields, "updated", "updated_at"),
	}

	switch v := fields["version"].(type) {
	case float64:
		out.Version = int(v)
	case map[string]interface{}:
		if n, ok := v["number"].(float64); ok {
			out.Version = int(n)
		}
	}

	return out
}

// NormalizeComment maps a loosely-shaped page comment payload onto the
// backend-neutral model.
func NormalizeComment(raw map[string]interface{}) model.Comment {
	out := model.Comment{
		ID:      stringField(raw, "id"),
		Body:    stringField(raw, "body", "content", "text"),
		Created: stringField(raw, "created", "created_at"),
		Updated: stringField(raw, "updated", "updated_at"),
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

var cqlClausePattern = regexp.MustCompile(`(?i)^(\w+)\s*(=|~)\s*(.+)$`)

// cqlToFilters translates a simple CQL query into flat filter parameters.
// Supported clauses are space, title, and text, joined by AND. The
// type = page clause is dropped since the endpoint only serves pages.
func cqlToFilters(cql string) url.Values {
	filters := url.Values{}
	if strings.TrimSpace(cql) == "" {
		return filters
	}

	var freeText []string
	clauses := regexp.MustCompile(`(?i)\s+AND\s+`).Split(cql, -1)
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		m := cqlClausePattern.FindStringSubmatch(clause)
		if m == nil {
			freeText = append(freeText, clause)
			continue
		}

		field := strings.ToLower(m[1])
		value := strings.Trim(strings.TrimSpace(m[3]), `"'`)

		switch field {
		case "space":
			filters.Set("space", value)
		case "title":
			filters.Set("title", value)
		case "text":
			filters.Set("query", value)
		case "type":
			// only pages are served
		default:
			freeText = append(freeText, clause)
		}
	}

	if len(freeText) > 0 && filters.Get("query") == "" {
		filters.Set("query", strings.Join(freeText, " "))
	}
	return filters
}

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

// pageItems returns the list portion of a response under "pages", "data",
// "items", "results", "comments", or "spaces".
func pageItems(raw map[string]interface{}) []map[string]interface{} {
	for _, k := range []string{"pages", "data", "items", "results", "comments", "spaces"} {
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
