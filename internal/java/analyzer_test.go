package java

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSource = `package com.example.billing;

import java.util.List;
import java.util.Map;

@Service
public class InvoiceService implements Billing, Auditable {

    private final InvoiceRepository repository;
    private static int retryLimit = 3;

    public InvoiceService(InvoiceRepository repository) {
        this.repository = repository;
    }

    @Transactional
    public Invoice process(String id, List<String> tags) {
        Invoice invoice = repository.find(id);
        if (invoice == null) {
            throw new IllegalArgumentException("unknown invoice: " + id);
        }
        for (String tag : tags) {
            if (tag.isEmpty()) {
                continue;
            }
            invoice.tag(tag);
        }
        return invoice.isPaid() ? invoice : repository.save(invoice);
    }

    private int count(Map<String, Integer> totals) {
        int sum = 0;
        while (totals.size() > 0) {
            sum++;
            break;
        }
        return sum;
    }
}

interface Billing {
}
`

func TestAnalyzeSource_Structure(t *testing.T) {
	fa, err := AnalyzeSource("InvoiceService.java", sampleSource)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if fa.Package != "com.example.billing" {
		t.Errorf("Expected package 'com.example.billing', got: %q", fa.Package)
	}
	if len(fa.Imports) != 2 || fa.Imports[0] != "java.util.List" {
		t.Errorf("Expected 2 imports starting with java.util.List, got: %v", fa.Imports)
	}
	if len(fa.Classes) != 2 {
		t.Fatalf("Expected 2 type declarations, got: %d", len(fa.Classes))
	}

	cls := fa.Classes[0]
	if cls.Name != "InvoiceService" || cls.Kind != "class" {
		t.Errorf("Expected class InvoiceService, got: %s %s", cls.Kind, cls.Name)
	}
	if len(cls.Implements) != 2 || cls.Implements[0] != "Billing" {
		t.Errorf("Expected implements [Billing Auditable], got: %v", cls.Implements)
	}
	if len(cls.Annotations) != 1 || cls.Annotations[0] != "Service" {
		t.Errorf("Expected @Service annotation, got: %v", cls.Annotations)
	}

	iface := fa.Classes[1]
	if iface.Name != "Billing" || iface.Kind != "interface" {
		t.Errorf("Expected interface Billing, got: %s %s", iface.Kind, iface.Name)
	}
}

func TestAnalyzeSource_Fields(t *testing.T) {
	fa, err := AnalyzeSource("InvoiceService.java", sampleSource)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	fields := fa.Classes[0].Fields
	if len(fields) != 2 {
		t.Fatalf("Expected 2 fields, got: %d (%+v)", len(fields), fields)
	}
	if fields[0].Name != "repository" || fields[0].Type != "InvoiceRepository" {
		t.Errorf("Expected field repository InvoiceRepository, got: %+v", fields[0])
	}
	if fields[1].Name != "retryLimit" || fields[1].Type != "int" {
		t.Errorf("Expected field retryLimit int, got: %+v", fields[1])
	}
}

func TestAnalyzeSource_MethodsAndComplexity(t *testing.T) {
	fa, err := AnalyzeSource("InvoiceService.java", sampleSource)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	methods := fa.Classes[0].Methods
	if len(methods) != 3 {
		t.Fatalf("Expected 3 methods (ctor + 2), got: %d (%+v)", len(methods), methods)
	}

	ctor := methods[0]
	if ctor.Name != "InvoiceService" || ctor.ReturnType != "" {
		t.Errorf("Expected constructor with empty return type, got: %+v", ctor)
	}

	process := methods[1]
	if process.Name != "process" {
		t.Fatalf("Expected method 'process', got: %q", process.Name)
	}
	// 1 base + if + for + if + ternary
	if process.Complexity != 5 {
		t.Errorf("Expected complexity 5 for process, got: %d", process.Complexity)
	}
	if len(process.Annotations) != 1 || process.Annotations[0] != "Transactional" {
		t.Errorf("Expected @Transactional on process, got: %v", process.Annotations)
	}
	if len(process.Parameters) != 2 || process.Parameters[1] != "List<String> tags" {
		t.Errorf("Expected 2 parameters, got: %v", process.Parameters)
	}

	count := methods[2]
	// 1 base + while
	if count.Complexity != 2 {
		t.Errorf("Expected complexity 2 for count, got: %d", count.Complexity)
	}
}

func TestAnalyzeSource_ComplexitySwitchAndDoWhile(t *testing.T) {
	src := `package p;

import java.util.List;
import java.util.Queue;

public class Dispatch {
    public int route(int code) {
        switch (code) {
            case 1:
                return 1;
            case 2:
                return 2;
            default:
                return 0;
        }
    }

    public int drain(Queue<?> queue) {
        List<? extends Number> seen = null;
        int n = 0;
        do {
            n++;
        } while (queue.poll() != null);
        return n;
    }
}
`
	fa, err := AnalyzeSource("Dispatch.java", src)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	methods := fa.Classes[0].Methods
	if len(methods) != 2 {
		t.Fatalf("Expected 2 methods, got: %d", len(methods))
	}

	// 1 base + switch; the case labels do not count
	if methods[0].Complexity != 2 {
		t.Errorf("Expected complexity 2 for route, got: %d", methods[0].Complexity)
	}
	// 1 base + the do-while loop counted once; wildcard ? is not a ternary
	if methods[1].Complexity != 2 {
		t.Errorf("Expected complexity 2 for drain, got: %d", methods[1].Complexity)
	}
}

func TestAnalyzeSource_IgnoresCommentsAndStrings(t *testing.T) {
	src := `package p;

public class Quiet {
    // if (fake) { while (true) {} }
    /* for (;;) { case 1: } */
    public String describe() {
        return "if while for catch ? :";
    }
}
`
	fa, err := AnalyzeSource("Quiet.java", src)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	methods := fa.Classes[0].Methods
	if len(methods) != 1 {
		t.Fatalf("Expected 1 method, got: %d", len(methods))
	}
	if methods[0].Complexity != 1 {
		t.Errorf("Expected complexity 1, got: %d", methods[0].Complexity)
	}
}

func TestAnalyzeFile_RejectsNonJava(t *testing.T) {
	if _, err := AnalyzeFile("notes.txt"); err == nil {
		t.Error("Expected error for non-java file, got nil")
	}
}

func TestAnalyzeProject_Metrics(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "src", "A.java"), sampleSource)
	writeFile(t, filepath.Join(dir, "src", "B.java"), `package com.example.util;

public class Small {
    public int one() {
        return 1;
    }
}
`)
	// build output must be skipped
	writeFile(t, filepath.Join(dir, "target", "Gen.java"), "public class Gen {}")

	pa, err := AnalyzeProject(dir)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if pa.FileCount != 2 {
		t.Errorf("Expected 2 files (target/ skipped), got: %d", pa.FileCount)
	}
	if pa.ClassCount != 2 {
		t.Errorf("Expected 2 classes, got: %d", pa.ClassCount)
	}
	if pa.InterfaceCount != 1 {
		t.Errorf("Expected 1 interface, got: %d", pa.InterfaceCount)
	}
	if pa.MethodCount != 4 {
		t.Errorf("Expected 4 methods, got: %d", pa.MethodCount)
	}
	if len(pa.Packages) != 2 {
		t.Errorf("Expected 2 packages, got: %v", pa.Packages)
	}
	if len(pa.LargestFiles) != 2 || !strings.HasSuffix(pa.LargestFiles[0].Path, "A.java") {
		t.Errorf("Expected A.java as largest file, got: %+v", pa.LargestFiles)
	}
	if len(pa.MostComplexMethods) == 0 || pa.MostComplexMethods[0].Method != "process" {
		t.Errorf("Expected 'process' as most complex method, got: %+v", pa.MostComplexMethods)
	}
	if pa.AverageComplexity <= 1.0 {
		t.Errorf("Expected average complexity above 1, got: %f", pa.AverageComplexity)
	}
}

func TestFindJavaFiles_Pattern(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "UserService.java"), "public class UserService {}")
	writeFile(t, filepath.Join(dir, "OrderController.java"), "public class OrderController {}")

	files, err := FindJavaFiles(dir, "service")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "UserService.java") {
		t.Errorf("Expected only UserService.java, got: %v", files)
	}
}

func TestGenerateClass_FieldsAndAccessors(t *testing.T) {
	src, err := GenerateClass(GenerateOptions{
		Package:     "com.example.model",
		Name:        "Customer",
		Annotations: []string{"Entity"},
		Imports:     []string{"java.util.UUID"},
		Fields: []FieldInfo{
			{Name: "id", Type: "UUID"},
			{Name: "name", Type: "String"},
		},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, want := range []string{
		"package com.example.model;",
		"import java.util.UUID;",
		"@Entity",
		"public class Customer {",
		"private UUID id;",
		"public UUID getId() {",
		"public void setName(String name) {",
		"public Customer() {",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Expected generated source to contain %q", want)
		}
	}

	// generated source must analyze cleanly
	fa, err := AnalyzeSource("Customer.java", src)
	if err != nil {
		t.Fatalf("Expected generated source to analyze, got: %v", err)
	}
	if len(fa.Classes) != 1 || fa.Classes[0].Name != "Customer" {
		t.Errorf("Expected class Customer in generated source, got: %+v", fa.Classes)
	}
}

func TestWriteSourceFile_CreatesPackageDirs(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSourceFile(dir, "com.example.model", "Customer", "public class Customer {}\n")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := filepath.Join(dir, "com", "example", "model", "Customer.java")
	if path != want {
		t.Errorf("Expected path %s, got: %s", want, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file to exist: %v", err)
	}
}

func TestWriteSourceFile_RejectsInvalidNames(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		pkg       string
		className string
	}{
		{"package escapes output dir", "../escape", "Customer"},
		{"class name escapes output dir", "com.example", "../Customer"},
		{"class name with separator", "com.example", "sub/Customer"},
		{"empty class name", "com.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := WriteSourceFile(dir, tt.pkg, tt.className, "x"); err == nil {
				t.Errorf("Expected error for pkg %q class %q, got nil", tt.pkg, tt.className)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape")); err == nil {
		t.Error("Expected no directory outside the output root")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: write: %v", err)
	}
}
