package java

// FileAnalysis is the structural breakdown of a single Java source file.
type FileAnalysis struct {
	Path      string      `json:"path"`
	Package   string      `json:"package"`
	Imports   []string    `json:"imports"`
	Classes   []ClassInfo `json:"classes"`
	LineCount int         `json:"line_count"`
}

// ClassInfo describes a top-level or nested type declaration.
type ClassInfo struct {
	Name        string       `json:"name"`
	Kind        string       `json:"kind"` // class, interface, enum, record
	Extends     string       `json:"extends,omitempty"`
	Implements  []string     `json:"implements,omitempty"`
	Annotations []string     `json:"annotations,omitempty"`
	Modifiers   []string     `json:"modifiers,omitempty"`
	Fields      []FieldInfo  `json:"fields,omitempty"`
	Methods     []MethodInfo `json:"methods,omitempty"`
	StartLine   int          `json:"start_line"`
}

// FieldInfo describes a field declaration.
type FieldInfo struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Modifiers []string `json:"modifiers,omitempty"`
}

// MethodInfo describes a method or constructor.
type MethodInfo struct {
	Name        string   `json:"name"`
	ReturnType  string   `json:"return_type,omitempty"` // empty for constructors
	Parameters  []string `json:"parameters,omitempty"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Complexity  int      `json:"complexity"`
	LineCount   int      `json:"line_count"`
	StartLine   int      `json:"start_line"`
}

// ProjectAnalysis aggregates metrics over a source tree.
type ProjectAnalysis struct {
	Root               string          `json:"root"`
	FileCount          int             `json:"file_count"`
	TotalLines         int             `json:"total_lines"`
	ClassCount         int             `json:"class_count"`
	InterfaceCount     int             `json:"interface_count"`
	MethodCount        int             `json:"method_count"`
	AverageComplexity  float64         `json:"average_complexity"`
	Packages           []string        `json:"packages"`
	LargestFiles       []FileMetric    `json:"largest_files"`        // top 10 by line count
	MostComplexMethods []MethodMetric  `json:"most_complex_methods"` // top 10 by complexity
}

// FileMetric is a per-file size entry in the project report.
type FileMetric struct {
	Path      string `json:"path"`
	LineCount int    `json:"line_count"`
}

// MethodMetric is a per-method complexity entry in the project report.
type MethodMetric struct {
	Path       string `json:"path"`
	Class      string `json:"class"`
	Method     string `json:"method"`
	Complexity int    `json:"complexity"`
}
