package jira

import "strings"

// buildADF wraps plain text into an Atlassian Document Format document.
// Each line becomes its own paragraph.
func buildADF(text string) map[string]interface{} {
	lines := strings.Split(text, "\n")
	content := make([]interface{}, 0, len(lines))
	for _, line := range lines {
		para := map[string]interface{}{
			"type":    "paragraph",
			"content": []interface{}{},
		}
		if line != "" {
			para["content"] = []interface{}{
				map[string]interface{}{
					"type": "text",
					"text": line,
				},
			}
		}
		content = append(content, para)
	}

	return map[string]interface{}{
		"type":    "doc",
		"version": 1,
		"content": content,
	}
}

// adfToText flattens an ADF document into plain text. Block nodes become
// newline-separated lines, inline text nodes are concatenated. Plain
// strings pass through unchanged so backends that return raw text still
// work.
func adfToText(doc interface{}) string {
	switch v := doc.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]interface{}:
		var sb strings.Builder
		collectText(v, &sb)
		return strings.TrimRight(sb.String(), "\n")
	default:
		return ""
	}
}

func collectText(node map[string]interface{}, sb *strings.Builder) {
	if text, ok := node["text"].(string); ok {
		sb.WriteString(text)
	}

	content, ok := node["content"].([]interface{})
	if !ok {
		return
	}

	for _, child := range content {
		childMap, ok := child.(map[string]interface{})
		if !ok {
			continue
		}
		collectText(childMap, sb)
		if childType, _ := childMap["type"].(string); isBlockNode(childType) {
			sb.WriteString("\n")
		}
	}
}

func isBlockNode(nodeType string) bool {
	switch nodeType {
	case "paragraph", "heading", "blockquote", "codeBlock", "listItem", "rule":
		return true
	}
	return false
}
