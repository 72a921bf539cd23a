package engine

import (
	"bytes"
	"errors"
	"flag"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cpcf/embed64/table"
	gentest "github.com/cpcf/embed64/testing"
)

var update = flag.Bool("update", false, "rewrite snapshot files")

func basicTable() *table.Table {
	tbl := table.New("assets", "", []table.Entry{
		{Name: "static/a.html", Content: "aGk="},
		{Name: "static/img/logo.png", Content: "data:image/png;base64,iVBORw0KGgo="},
	})
	tbl.Source = "static"
	return tbl
}

func countInsertions(src []byte, field string) int {
	return strings.Count(string(src), "\ts."+field+"[")
}

func TestEngineSnapshot(t *testing.T) {
	out, err := New().Render(basicTable(), "assets_gen.go")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	sm := gentest.NewSnapshotManager("testdata", *update)
	if err := sm.AssertSnapshot("basic", string(out)); err != nil {
		t.Fatal(err)
	}
}

func TestEngineGenerate(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "gen", "assets_gen.go")

	written, err := New().Generate(basicTable(), outPath)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !written {
		t.Error("Generate() reported no write for a new file")
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("Failed to read output file: %v", err)
	}
	if got := countInsertions(content, "Files"); got != 2 {
		t.Errorf("insertion lines = %d, want 2", got)
	}
	if _, err := parser.ParseFile(token.NewFileSet(), outPath, content, parser.AllErrors); err != nil {
		t.Errorf("generated file does not parse: %v", err)
	}
}

func TestEngineGenerateIdempotent(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "assets_gen.go")
	eng := New()

	if _, err := eng.Generate(basicTable(), outPath); err != nil {
		t.Fatalf("first Generate() error = %v", err)
	}
	first, _ := os.ReadFile(outPath)

	written, err := eng.Generate(basicTable(), outPath)
	if err != nil {
		t.Fatalf("second Generate() error = %v", err)
	}
	if written {
		t.Error("second Generate() rewrote unchanged output")
	}
	second, _ := os.ReadFile(outPath)
	if !bytes.Equal(first, second) {
		t.Error("output changed between identical runs")
	}
}

func TestEngineEmptyTable(t *testing.T) {
	out, err := New().Render(table.New("assets", "Empty", nil), "empty_gen.go")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got := countInsertions(out, "Files"); got != 0 {
		t.Errorf("insertion lines = %d, want 0", got)
	}
	for _, want := range []string{"type Empty struct", "func NewEmpty() *Empty", "make(map[string]string, 0)"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEngineEscapesLiterals(t *testing.T) {
	tbl := table.New("assets", "Files", []table.Entry{
		{Name: `we"ird\name.html`, Content: "aGk="},
		{Name: "line\nbreak.css", Content: "aGk="},
	})

	out, err := New().Render(tbl, "assets_gen.go")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Contains(out, []byte(`s.Files["we\"ird\\name.html"] = "aGk="`)) {
		t.Errorf("quoted name not found in output:\n%s", out)
	}
	if !bytes.Contains(out, []byte(`s.Files["line\nbreak.css"] = "aGk="`)) {
		t.Errorf("escaped newline not found in output:\n%s", out)
	}
}

func TestEngineInvalidTable(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "assets_gen.go")
	_, err := New().Generate(table.New("assets", "Not Valid", nil), outPath)

	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %v, want *GenerationError", err)
	}
	if genErr.Message != msgInvalidTable {
		t.Errorf("Message = %q, want %q", genErr.Message, msgInvalidTable)
	}
	if !errors.Is(err, table.ErrInvalidIdentifier) {
		t.Errorf("error %v does not wrap ErrInvalidIdentifier", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("output written for invalid table")
	}
}

func TestEngineTemplateParseError(t *testing.T) {
	memFS := gentest.NewMemoryFS()
	memFS.WriteFile(TableTemplate, []byte("package {{.Package\n")) // Missing closing brace

	_, err := New(WithTemplateFS(memFS)).Render(basicTable(), "assets_gen.go")
	if err == nil {
		t.Fatal("Expected error for malformed template, got nil")
	}
	if !strings.Contains(err.Error(), "template") {
		t.Errorf("Expected template error, got: %v", err)
	}
}

func TestEngineRejectsInvalidGo(t *testing.T) {
	memFS := gentest.NewMemoryFS()
	memFS.WriteFile(TableTemplate, []byte("package {{.Package}}\n\nvar x = {{.StructName}}{\n"))

	_, err := New(WithTemplateFS(memFS)).Render(basicTable(), "assets_gen.go")

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Message != msgPostprocess {
		t.Fatalf("Render() error = %v, want post-processing failure", err)
	}
}

func TestEngineDryRun(t *testing.T) {
	var buf bytes.Buffer
	outPath := filepath.Join(t.TempDir(), "assets_gen.go")

	written, err := New(WithDryRun(&buf)).Generate(basicTable(), outPath)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if written {
		t.Error("dry run reported a write")
	}
	if !strings.HasPrefix(buf.String(), "// Code generated by embed64") {
		t.Errorf("dry run output = %q", buf.String())
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Error("dry run created the output file")
	}
}

func TestEngineWriteError(t *testing.T) {
	outPath := t.TempDir() // a directory cannot be replaced by the output file

	_, err := New().Generate(basicTable(), outPath)

	var genErr *GenerationError
	if !errors.As(err, &genErr) || genErr.Message != msgWrite {
		t.Fatalf("Generate() error = %v, want write failure", err)
	}
}

func TestTemplateCacheReusesParsedTemplate(t *testing.T) {
	memFS := gentest.NewMemoryFS()
	memFS.WriteFile("test.tmpl", []byte("value: {{.Value}}"))
	cache := NewTemplateCache(memFS, funcMap())

	first, err := cache.Get("test.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	second, err := cache.Get("test.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("cache returned a different template for the same path")
	}

	if _, err := cache.Get("missing.tmpl"); err == nil {
		t.Error("Get() of a missing template succeeded")
	}
}
