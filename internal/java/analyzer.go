// Package java analyzes Java source trees without compiling them: a
// comment-aware scanner extracts type declarations, members, and
// per-method cyclomatic complexity.
package java

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ErrNotJavaSource indicates the file does not have a .java extension.
var ErrNotJavaSource = errors.New("not a java source file")

var (
	packagePattern = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	importPattern  = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.*]+)\s*;`)

	typePattern = regexp.MustCompile(
		`(?m)^[ \t]*((?:(?:public|protected|private|abstract|final|static|sealed|non-sealed|strictfp)\s+)*)` +
			`(class|interface|enum|record)\s+(\w+)` +
			`(?:<[^{]*?>)?` +
			`(?:\s*\([^)]*\))?` + // record components
			`(?:\s+extends\s+([\w.<>,\s]+?))?` +
			`(?:\s+implements\s+([\w.<>,\s]+?))?` +
			`\s*\{`)

	methodPattern = regexp.MustCompile(
		`(?m)^[ \t]*((?:(?:public|protected|private|abstract|final|static|synchronized|native|default|strictfp)\s+)*)` +
			`(?:<[\w\s,<>?]+>\s+)?` + // generic type parameters
			`([\w.<>\[\],?\s]+?)\s+` + // return type
			`(\w+)\s*\(([^)]*)\)` +
			`(?:\s*throws\s+[\w.,\s]+)?` +
			`\s*\{`)

	fieldPattern = regexp.MustCompile(
		`(?m)^[ \t]*((?:(?:public|protected|private|final|static|transient|volatile)\s+)+)` +
			`([\w.<>\[\],?\s]+?)\s+(\w+)\s*(?:=[^;]+)?;`)

	annotationPattern = regexp.MustCompile(`(?m)^[ \t]*@(\w+)`)

	complexityPattern = regexp.MustCompile(
		`\b(if|while|for|switch|catch)\b`)
)

// controlKeywords are excluded when the method pattern accidentally
// matches a control statement such as "if (x) {".
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "do": true, "try": true, "else": true,
	"return": true, "new": true, "synchronized": true,
}

var modifierKeywords = map[string]bool{
	"public": true, "protected": true, "private": true,
	"abstract": true, "final": true, "static": true,
	"synchronized": true, "native": true, "strictfp": true,
	"default": true,
}

// AnalyzeFile reads and analyzes a single .java file.
func AnalyzeFile(path string) (*FileAnalysis, error) {
	if !strings.HasSuffix(path, ".java") {
		return nil, fmt.Errorf("%w: %s", ErrNotJavaSource, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return AnalyzeSource(path, string(raw))
}

// AnalyzeSource analyzes Java source held in memory. Comments and string
// literals are blanked before scanning so their contents never produce
// false matches; line positions are preserved.
func AnalyzeSource(path, src string) (*FileAnalysis, error) {
	clean := blankCommentsAndStrings(src)

	analysis := &FileAnalysis{
		Path:      path,
		Imports:   []string{},
		Classes:   []ClassInfo{},
		LineCount: strings.Count(src, "\n") + 1,
	}

	if m := packagePattern.FindStringSubmatch(clean); m != nil {
		analysis.Package = m[1]
	}
	for _, m := range importPattern.FindAllStringSubmatch(clean, -1) {
		analysis.Imports = append(analysis.Imports, m[1])
	}

	for _, loc := range typePattern.FindAllStringSubmatchIndex(clean, -1) {
		m := typePattern.FindStringSubmatch(clean[loc[0]:loc[1]])
		bodyStart := loc[1] - 1 // position of the opening brace
		bodyEnd := matchBrace(clean, bodyStart)
		if bodyEnd < 0 {
			continue
		}

		cls := ClassInfo{
			Name:        m[3],
			Kind:        m[2],
			Modifiers:   splitModifiers(m[1]),
			Annotations: annotationsBefore(clean, loc[0]),
			StartLine:   lineAt(clean, loc[0]),
			Fields:      []FieldInfo{},
			Methods:     []MethodInfo{},
		}
		if m[4] != "" {
			cls.Extends = strings.TrimSpace(m[4])
		}
		if m[5] != "" {
			for _, impl := range strings.Split(m[5], ",") {
				cls.Implements = append(cls.Implements, strings.TrimSpace(impl))
			}
		}

		body := clean[bodyStart+1 : bodyEnd]
		bodyOffset := bodyStart + 1
		cls.Fields = extractFields(body)
		cls.Methods = extractMethods(body, bodyOffset, clean, cls.Name)

		analysis.Classes = append(analysis.Classes, cls)
	}

	return analysis, nil
}

func extractFields(body string) []FieldInfo {
	fields := []FieldInfo{}
	for _, m := range fieldPattern.FindAllStringSubmatch(body, -1) {
		typ := strings.TrimSpace(m[2])
		// skip matches that are really statements (no modifier keyword
		// means the pattern required one, so this is already filtered)
		if strings.ContainsAny(typ, "(){") {
			continue
		}
		fields = append(fields, FieldInfo{
			Name:      m[3],
			Type:      typ,
			Modifiers: splitModifiers(m[1]),
		})
	}
	return fields
}

func extractMethods(body string, bodyOffset int, full string, className string) []MethodInfo {
	methods := []MethodInfo{}
	for _, loc := range methodPattern.FindAllStringSubmatchIndex(body, -1) {
		m := methodPattern.FindStringSubmatch(body[loc[0]:loc[1]])
		name := m[3]
		returnType := strings.TrimSpace(m[2])

		if controlKeywords[name] || controlKeywords[returnType] {
			continue
		}

		modifiers := splitModifiers(m[1])
		// constructor: there is no return type, so the regex shifts a
		// lone modifier into the return type slot
		if name == className {
			if modifierKeywords[returnType] {
				modifiers = append(modifiers, returnType)
			}
			returnType = ""
		}

		braceStart := loc[1] - 1
		braceEnd := matchBrace(body, braceStart)
		if braceEnd < 0 {
			continue
		}
		methodBody := body[braceStart+1 : braceEnd]

		method := MethodInfo{
			Name:        name,
			ReturnType:  returnType,
			Parameters:  splitParams(m[4]),
			Modifiers:   modifiers,
			Annotations: annotationsBefore(full, bodyOffset+loc[0]),
			Complexity:  cyclomaticComplexity(methodBody),
			LineCount:   strings.Count(strings.TrimSpace(methodBody), "\n") + 1,
			StartLine:   lineAt(full, bodyOffset+loc[0]),
		}
		methods = append(methods, method)
	}
	return methods
}

// cyclomaticComplexity counts decision points: if, while, for, switch,
// catch, and ternary expressions, starting from 1 for the single path.
// A do-while loop contributes once, through its while keyword.
func cyclomaticComplexity(body string) int {
	return 1 + len(complexityPattern.FindAllString(body, -1)) + ternaryCount(body)
}

// ternaryCount counts conditional operators, skipping the ? of generic
// wildcards such as List<?> and Map<String, ? extends Number>.
func ternaryCount(body string) int {
	n := 0
	for i := 0; i < len(body); i++ {
		if body[i] != '?' {
			continue
		}
		rest := strings.TrimLeft(body[i+1:], " \t\n")
		if strings.HasPrefix(rest, ">") || strings.HasPrefix(rest, ",") ||
			strings.HasPrefix(rest, "extends ") || strings.HasPrefix(rest, "super ") {
			continue
		}
		n++
	}
	return n
}

// blankCommentsAndStrings replaces comment and string literal contents
// with spaces, keeping newlines so line numbers stay accurate.
func blankCommentsAndStrings(src string) string {
	out := []byte(src)
	i := 0
	for i < len(out) {
		switch {
		case out[i] == '/' && i+1 < len(out) && out[i+1] == '/':
			for i < len(out) && out[i] != '\n' {
				out[i] = ' '
				i++
			}
		case out[i] == '/' && i+1 < len(out) && out[i+1] == '*':
			out[i], out[i+1] = ' ', ' '
			i += 2
			for i < len(out) {
				if out[i] == '*' && i+1 < len(out) && out[i+1] == '/' {
					out[i], out[i+1] = ' ', ' '
					i += 2
					break
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
		case out[i] == '"' || out[i] == '\'':
			quote := out[i]
			i++
			for i < len(out) && out[i] != quote {
				if out[i] == '\\' {
					out[i] = ' '
					i++
					if i < len(out) && out[i] != '\n' {
						out[i] = ' '
					}
					i++
					continue
				}
				if out[i] != '\n' {
					out[i] = ' '
				}
				i++
			}
			if i < len(out) {
				i++
			}
		default:
			i++
		}
	}
	return string(out)
}

// matchBrace returns the index of the brace closing the one at start, or
// -1 when unbalanced.
func matchBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func lineAt(s string, pos int) int {
	return strings.Count(s[:pos], "\n") + 1
}

func splitModifiers(s string) []string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func splitParams(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	// split on commas outside generic brackets
	params := []string{}
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				params = append(params, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	params = append(params, strings.TrimSpace(s[start:]))
	return params
}

// annotationsBefore collects @Annotation lines immediately preceding the
// declaration at pos.
func annotationsBefore(s string, pos int) []string {
	lineStart := strings.LastIndexByte(s[:pos], '\n') + 1
	var annotations []string

	for lineStart > 0 {
		prevEnd := lineStart - 1
		prevStart := strings.LastIndexByte(s[:prevEnd], '\n') + 1
		line := strings.TrimSpace(s[prevStart:prevEnd])
		m := annotationPattern.FindStringSubmatch(line)
		if m == nil {
			break
		}
		annotations = append([]string{m[1]}, annotations...)
		lineStart = prevStart
	}
	return annotations
}
