// Package processors provides the built-in post-processors used by the engine.
package processors

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"
)

// GoSource formats generated Go files with goimports, falling back to gofmt.
// Both steps parse the file, so content that is not valid Go is rejected
// instead of being written.
//
// Example usage:
//
//	chain := postprocess.NewChain(processors.NewGoSource())
type GoSource struct {
	// TabWidth sets the tab width for formatting (default: 8)
	TabWidth int
	// TabIndent determines whether to use tabs for indentation (default: true)
	TabIndent bool
	// AllErrors reports every syntax error instead of the first (default: false)
	AllErrors bool
}

func NewGoSource() *GoSource {
	return &GoSource{
		TabWidth:  8,
		TabIndent: true,
	}
}

// ProcessContent implements postprocess.Processor. Non-Go files pass through.
func (g *GoSource) ProcessContent(filePath string, content []byte) ([]byte, error) {
	if !isGoFile(filePath) {
		return content, nil
	}

	options := &imports.Options{
		AllErrors:  g.AllErrors,
		Comments:   true,
		TabIndent:  g.TabIndent,
		TabWidth:   g.TabWidth,
		FormatOnly: true,
	}

	formatted, err := imports.Process(filePath, content, options)
	if err == nil {
		return formatted, nil
	}

	formatted, fmtErr := format.Source(content)
	if fmtErr != nil {
		return nil, fmt.Errorf("generated Go source is invalid: goimports: %w; gofmt: %w", err, fmtErr)
	}
	return formatted, nil
}

func isGoFile(filePath string) bool {
	return strings.EqualFold(filepath.Ext(filePath), ".go")
}
