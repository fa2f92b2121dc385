package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/java"
)

// AnalyzeJavaCodeTool analyzes Java source passed inline.
type AnalyzeJavaCodeTool struct{}

// NewAnalyzeJavaCodeTool creates a new analyze Java code tool.
func NewAnalyzeJavaCodeTool() agent.Tool {
	return &AnalyzeJavaCodeTool{}
}

func (t *AnalyzeJavaCodeTool) Name() string {
	return "java_analyze_code"
}

func (t *AnalyzeJavaCodeTool) Description() string {
	return "Analyze Java source code structure: classes, methods, fields, annotations and cyclomatic complexity."
}

func (t *AnalyzeJavaCodeTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"code": map[string]interface{}{
				"type":        "string",
				"description": "Java source code to analyze",
			},
			"file_name": map[string]interface{}{
				"type":        "string",
				"description": "Optional file name for the report",
			},
		},
		"required": []string{"code"},
	}
}

func (t *AnalyzeJavaCodeTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	code, ok := params["code"].(string)
	if !ok || code == "" {
		return nil, fmt.Errorf("code parameter is required")
	}

	fileName := "Inline.java"
	if n, ok := params["file_name"].(string); ok && n != "" {
		fileName = n
	}

	analysis, err := java.AnalyzeSource(fileName, code)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	return map[string]interface{}{
		"type": "java_analysis",
		"data": analysis,
	}, nil
}

// AnalyzeJavaProjectTool analyzes a Java source tree on disk.
type AnalyzeJavaProjectTool struct{}

// NewAnalyzeJavaProjectTool creates a new analyze Java project tool.
func NewAnalyzeJavaProjectTool() agent.Tool {
	return &AnalyzeJavaProjectTool{}
}

func (t *AnalyzeJavaProjectTool) Name() string {
	return "java_analyze_project"
}

func (t *AnalyzeJavaProjectTool) Description() string {
	return "Analyze all Java files under a directory and return project metrics: totals, average complexity, largest files, most complex methods."
}

func (t *AnalyzeJavaProjectTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Directory containing Java sources",
			},
		},
		"required": []string{"path"},
	}
}

func (t *AnalyzeJavaProjectTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return nil, fmt.Errorf("path parameter is required")
	}

	analysis, err := java.AnalyzeProject(path)
	if err != nil {
		return nil, fmt.Errorf("project analysis failed: %w", err)
	}

	return map[string]interface{}{
		"type": "java_project_analysis",
		"data": analysis,
	}, nil
}
