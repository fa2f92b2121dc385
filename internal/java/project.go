package java

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skipDirs are directory names never descended into during project walks.
var skipDirs = map[string]bool{
	"target":       true,
	"build":        true,
	"out":          true,
	"node_modules": true,
	".git":         true,
	".gradle":      true,
	".idea":        true,
}

const topN = 10

// AnalyzeProject walks root, analyzes every .java file, and aggregates
// project-level metrics.
func AnalyzeProject(root string) (*ProjectAnalysis, error) {
	files, err := FindJavaFiles(root, "")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no java source files under %s", root)
	}

	analysis := &ProjectAnalysis{
		Root:               root,
		LargestFiles:       []FileMetric{},
		MostComplexMethods: []MethodMetric{},
	}

	packages := map[string]bool{}
	totalComplexity := 0

	for _, path := range files {
		fa, err := AnalyzeFile(path)
		if err != nil {
			// unreadable files are skipped, not fatal
			continue
		}

		analysis.FileCount++
		analysis.TotalLines += fa.LineCount
		if fa.Package != "" {
			packages[fa.Package] = true
		}

		analysis.LargestFiles = append(analysis.LargestFiles, FileMetric{
			Path:      fa.Path,
			LineCount: fa.LineCount,
		})

		for _, cls := range fa.Classes {
			if cls.Kind == "interface" {
				analysis.InterfaceCount++
			} else {
				analysis.ClassCount++
			}
			for _, method := range cls.Methods {
				analysis.MethodCount++
				totalComplexity += method.Complexity
				analysis.MostComplexMethods = append(analysis.MostComplexMethods, MethodMetric{
					Path:       fa.Path,
					Class:      cls.Name,
					Method:     method.Name,
					Complexity: method.Complexity,
				})
			}
		}
	}

	if analysis.MethodCount > 0 {
		analysis.AverageComplexity = float64(totalComplexity) / float64(analysis.MethodCount)
	}

	for pkg := range packages {
		analysis.Packages = append(analysis.Packages, pkg)
	}
	sort.Strings(analysis.Packages)

	sort.Slice(analysis.LargestFiles, func(i, j int) bool {
		return analysis.LargestFiles[i].LineCount > analysis.LargestFiles[j].LineCount
	})
	if len(analysis.LargestFiles) > topN {
		analysis.LargestFiles = analysis.LargestFiles[:topN]
	}

	sort.Slice(analysis.MostComplexMethods, func(i, j int) bool {
		return analysis.MostComplexMethods[i].Complexity > analysis.MostComplexMethods[j].Complexity
	})
	if len(analysis.MostComplexMethods) > topN {
		analysis.MostComplexMethods = analysis.MostComplexMethods[:topN]
	}

	return analysis, nil
}

// FindJavaFiles returns .java files under root whose base name contains
// pattern (case-insensitive). An empty pattern matches everything.
func FindJavaFiles(root, pattern string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	pattern = strings.ToLower(pattern)
	var files []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		if pattern != "" && !strings.Contains(strings.ToLower(d.Name()), pattern) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
