package custom

import (
	"net/url"
	"regexp"
	"strings"
)

var jqlClausePattern = regexp.MustCompile(`(?i)^(\w+)\s*(=|!=|~)\s*(.+)$`)

// jqlToFilters translates a simple JQL query into flat filter parameters
// for the custom API. Supported clauses are equality checks on project,
// status, assignee, labels, and issue type, joined by AND. currentUser()
// maps to the API's "me" alias. Anything unrecognized is passed through
// as a free-text "query" parameter.
func jqlToFilters(jql string) url.Values {
	filters := url.Values{}
	if strings.TrimSpace(jql) == "" {
		return filters
	}

	var freeText []string
	clauses := regexp.MustCompile(`(?i)\s+AND\s+`).Split(jql, -1)
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		m := jqlClausePattern.FindStringSubmatch(clause)
		if m == nil {
			freeText = append(freeText, clause)
			continue
		}

		field := strings.ToLower(m[1])
		op := m[2]
		value := strings.Trim(strings.TrimSpace(m[3]), `"'`)

		if strings.EqualFold(value, "currentUser()") {
			value = "me"
		}

		switch field {
		case "project", "status", "assignee", "priority", "labels":
			if op == "=" || op == "~" {
				filters.Set(field, value)
			}
		case "issuetype", "type":
			if op == "=" {
				filters.Set("issue_type", value)
			}
		case "text", "summary":
			filters.Set("query", value)
		default:
			freeText = append(freeText, clause)
		}
	}

	if len(freeText) > 0 && filters.Get("query") == "" {
		filters.Set("query", strings.Join(freeText, " "))
	}
	return filters
}
