package java

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	identifierPattern  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	packageNamePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
)

// GenerateOptions configures Java class generation.
type GenerateOptions struct {
	Package     string
	Name        string
	Kind        string // class or interface, default class
	Extends     string
	Implements  []string
	Imports     []string
	Annotations []string
	Fields      []FieldInfo // getters and setters are generated per field
}

// GenerateClass renders a Java source file from options. Fields get
// private visibility with public getters and setters, plus a no-arg
// constructor.
func GenerateClass(opt GenerateOptions) (string, error) {
	if opt.Name == "" {
		return "", fmt.Errorf("class name is required")
	}
	kind := opt.Kind
	if kind == "" {
		kind = "class"
	}

	var sb strings.Builder

	if opt.Package != "" {
		fmt.Fprintf(&sb, "package %s;\n\n", opt.Package)
	}
	for _, imp := range opt.Imports {
		fmt.Fprintf(&sb, "import %s;\n", imp)
	}
	if len(opt.Imports) > 0 {
		sb.WriteString("\n")
	}

	for _, ann := range opt.Annotations {
		fmt.Fprintf(&sb, "@%s\n", strings.TrimPrefix(ann, "@"))
	}

	fmt.Fprintf(&sb, "public %s %s", kind, opt.Name)
	if opt.Extends != "" {
		fmt.Fprintf(&sb, " extends %s", opt.Extends)
	}
	if len(opt.Implements) > 0 {
		fmt.Fprintf(&sb, " implements %s", strings.Join(opt.Implements, ", "))
	}
	sb.WriteString(" {\n")

	if kind == "class" {
		for _, f := range opt.Fields {
			fmt.Fprintf(&sb, "\n    private %s %s;\n", f.Type, f.Name)
		}

		fmt.Fprintf(&sb, "\n    public %s() {\n    }\n", opt.Name)

		for _, f := range opt.Fields {
			upper := strings.ToUpper(f.Name[:1]) + f.Name[1:]
			fmt.Fprintf(&sb, "\n    public %s get%s() {\n        return %s;\n    }\n", f.Type, upper, f.Name)
			fmt.Fprintf(&sb, "\n    public void set%s(%s %s) {\n        this.%s = %s;\n    }\n",
				upper, f.Type, f.Name, f.Name, f.Name)
		}
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// WriteSourceFile writes Java source to dir, deriving the subdirectory
// from the package name and the file name from the class name. Both names
// must be valid Java identifiers so the path cannot escape dir.
func WriteSourceFile(dir, pkg, className, source string) (string, error) {
	if !identifierPattern.MatchString(className) {
		return "", fmt.Errorf("invalid class name %q", className)
	}
	if pkg != "" && !packageNamePattern.MatchString(pkg) {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	target := dir
	if pkg != "" {
		target = filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
	}
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	path := filepath.Join(target, className+".java")
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
