package tools

import (
	"context"
	"fmt"

	"integration-agent/internal/agent"
	"integration-agent/internal/java"
)

// GenerateJavaClassTool renders a Java class skeleton.
type GenerateJavaClassTool struct{}

// NewGenerateJavaClassTool creates a new generate Java class tool.
func NewGenerateJavaClassTool() agent.Tool {
	return &GenerateJavaClassTool{}
}

func (t *GenerateJavaClassTool) Name() string {
	return "java_generate_class"
}

func (t *GenerateJavaClassTool) Description() string {
	return "Generate a Java class skeleton with fields, getters, setters and a no-arg constructor."
}

func (t *GenerateJavaClassTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"class_name": map[string]interface{}{
				"type":        "string",
				"description": "Name of the class to generate",
			},
			"package_name": map[string]interface{}{
				"type":        "string",
				"description": "Java package name",
			},
			"super_class": map[string]interface{}{
				"type":        "string",
				"description": "Class to extend",
			},
			"interfaces": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Interfaces to implement",
			},
			"imports": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Import statements",
			},
			"fields": map[string]interface{}{
				"type":        "array",
				"description": "Fields as objects with name and type",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"name": map[string]interface{}{"type": "string"},
						"type": map[string]interface{}{"type": "string"},
					},
					"required": []string{"name", "type"},
				},
			},
		},
		"required": []string{"class_name"},
	}
}

func (t *GenerateJavaClassTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	className, ok := params["class_name"].(string)
	if !ok || className == "" {
		return nil, fmt.Errorf("class_name parameter is required")
	}

	opt := java.GenerateOptions{Name: className}
	if p, ok := params["package_name"].(string); ok {
		opt.Package = p
	}
	if s, ok := params["super_class"].(string); ok {
		opt.Extends = s
	}
	opt.Implements = stringSlice(params["interfaces"])
	opt.Imports = stringSlice(params["imports"])

	if raw, ok := params["fields"].([]interface{}); ok {
		for _, item := range raw {
			f, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := f["name"].(string)
			typ, _ := f["type"].(string)
			if name == "" || typ == "" {
				continue
			}
			opt.Fields = append(opt.Fields, java.FieldInfo{Name: name, Type: typ})
		}
	}

	source, err := java.GenerateClass(opt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	return map[string]interface{}{
		"type": "java_class_generated",
		"data": map[string]string{
			"class_name": className,
			"source":     source,
		},
	}, nil
}

// WriteJavaFileTool writes generated Java source to disk.
type WriteJavaFileTool struct {
	outputDir string
}

// NewWriteJavaFileTool creates a new write Java file tool rooted at outputDir.
func NewWriteJavaFileTool(outputDir string) agent.Tool {
	return &WriteJavaFileTool{outputDir: outputDir}
}

func (t *WriteJavaFileTool) Name() string {
	return "java_write_file"
}

func (t *WriteJavaFileTool) Description() string {
	return "Write Java source to a file, deriving the directory layout from the package name."
}

func (t *WriteJavaFileTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"class_name": map[string]interface{}{
				"type":        "string",
				"description": "Class name, used as the file name",
			},
			"package_name": map[string]interface{}{
				"type":        "string",
				"description": "Java package name, used for the directory layout",
			},
			"content": map[string]interface{}{
				"type":        "string",
				"description": "Java source to write",
			},
		},
		"required": []string{"class_name", "content"},
	}
}

func (t *WriteJavaFileTool) Execute(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	className, ok := params["class_name"].(string)
	if !ok || className == "" {
		return nil, fmt.Errorf("class_name parameter is required")
	}
	content, ok := params["content"].(string)
	if !ok || content == "" {
		return nil, fmt.Errorf("content parameter is required")
	}
	pkg, _ := params["package_name"].(string)

	path, err := java.WriteSourceFile(t.outputDir, pkg, className, content)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	return map[string]interface{}{
		"type": "java_file_written",
		"data": map[string]string{"file_path": path},
	}, nil
}

func stringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
