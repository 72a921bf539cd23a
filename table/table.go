// Package table holds the model rendered into a generated lookup-table file.
//
// A Table is built once per run from the entries produced by the collector
// and handed to the engine for a single render. Names and contents are kept
// as plain strings here; quoting happens when the model is serialized.
package table

import (
	"errors"
	"fmt"
	"go/token"
	"go/types"
	"slices"
	"strings"
)

const (
	DefaultPackage    = "main"
	DefaultStructName = "StaticFiles"
	DefaultFieldName  = "Files"
)

var (
	ErrInvalidIdentifier = errors.New("invalid Go identifier")
	ErrReservedName      = errors.New("name is reserved in the generated file")
	ErrDuplicateName     = errors.New("duplicate entry name")
)

// importedNames are the package names the generated file imports.
var importedNames = []string{"base64", "strings"}

// Entry is one collected file: its name as traversed and its encoded content.
type Entry struct {
	Name    string
	Content string
}

// Table is the template context of one generation run.
type Table struct {
	Package    string
	StructName string
	FieldName  string
	// Source is the input path as given on the command line, used in the header.
	Source  string
	Entries []Entry
}

// New returns a Table with defaults applied for empty names.
func New(pkg, structName string, entries []Entry) *Table {
	if pkg == "" {
		pkg = DefaultPackage
	}
	if structName == "" {
		structName = DefaultStructName
	}
	return &Table{
		Package:    pkg,
		StructName: structName,
		FieldName:  DefaultFieldName,
		Entries:    entries,
	}
}

// Validate checks that the table can be serialized into valid Go.
func (t *Table) Validate() error {
	if err := CheckPackageName(t.Package); err != nil {
		return fmt.Errorf("package name: %w", err)
	}
	if err := CheckStructName(t.StructName); err != nil {
		return fmt.Errorf("struct name: %w", err)
	}
	if err := CheckPackageName(t.FieldName); err != nil {
		return fmt.Errorf("field name: %w", err)
	}

	seen := make(map[string]struct{}, len(t.Entries))
	for _, e := range t.Entries {
		if _, ok := seen[e.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = struct{}{}
	}
	return nil
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.Entries)
}

// CheckIdentifier reports whether name can be used as a Go identifier.
func CheckIdentifier(name string) error {
	if !token.IsIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, name)
	}
	return nil
}

// CheckPackageName accepts any identifier except the blank identifier.
func CheckPackageName(name string) error {
	if err := CheckIdentifier(name); err != nil {
		return err
	}
	if name == "_" {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}

// CheckStructName rejects identifiers that would shadow a predeclared
// identifier or an import used by the generated file, since the struct is
// declared at package scope next to them.
func CheckStructName(name string) error {
	if err := CheckPackageName(name); err != nil {
		return err
	}
	if types.Universe.Lookup(name) != nil || slices.Contains(importedNames, name) {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	return nil
}

// StripFirstSegment drops the leading path segment of a slash-separated name.
// Leading "/" and "./" are ignored. Names with a single segment are returned unchanged.
func StripFirstSegment(name string) string {
	trimmed := strings.TrimPrefix(name, "./")
	trimmed = strings.TrimLeft(trimmed, "/")
	_, rest, ok := strings.Cut(trimmed, "/")
	if !ok || rest == "" {
		return name
	}
	return rest
}
