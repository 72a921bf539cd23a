// Package engine renders a lookup table into a Go source file.
//
// Generation runs in three steps: the table is validated, the built-in
// template is executed and post-processed (which parses and formats the Go
// source), and the result is written atomically. Any failure is returned as
// a *GenerationError and nothing is written.
package engine

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/cpcf/embed64/postprocess"
	"github.com/cpcf/embed64/processors"
	"github.com/cpcf/embed64/table"
	"github.com/cpcf/embed64/write"
)

type Engine struct {
	logger         *slog.Logger
	templates      fs.FS
	writer         write.Writer
	postprocessors *postprocess.Chain
	dryRun         io.Writer
	backup         bool
	renderer       *Renderer
}

func New(opts ...Option) *Engine {
	e := &Engine{
		logger:         slog.Default(),
		templates:      templateFS,
		writer:         write.NewBaseWriter(),
		postprocessors: postprocess.NewChain(processors.NewGoSource()),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.renderer = NewRenderer(e.logger, NewTemplateCache(e.templates, funcMap()), e.postprocessors)

	return e
}

// Render returns the formatted source for t without touching the filesystem.
// outPath only names the file for post-processors and errors.
func (e *Engine) Render(t *table.Table, outPath string) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, &GenerationError{Path: outPath, Message: msgInvalidTable, Err: err}
	}
	return e.renderer.Render(TableTemplate, outPath, t)
}

// Generate renders t and stores it at outPath. It reports whether the file
// was written; an output that already holds identical bytes is left alone.
func (e *Engine) Generate(t *table.Table, outPath string) (bool, error) {
	content, err := e.Render(t, outPath)
	if err != nil {
		return false, err
	}

	if e.dryRun != nil {
		if _, err := e.dryRun.Write(content); err != nil {
			return false, &GenerationError{Path: outPath, Message: msgWrite, Err: err}
		}
		return false, nil
	}

	needs, err := e.writer.NeedsWrite(outPath, content)
	if err != nil {
		return false, &GenerationError{Path: outPath, Message: msgWrite, Err: fmt.Errorf("compare existing output: %w", err)}
	}
	if !needs {
		e.logger.Info("output unchanged", "output", outPath, "entries", t.Len())
		return false, nil
	}

	opts := write.WriteOptions{
		CreateDirs: true,
		Overwrite:  true,
		Atomic:     true,
		Backup:     e.backup,
	}
	if err := e.writer.Write(outPath, content, opts); err != nil {
		return false, &GenerationError{Path: outPath, Message: msgWrite, Err: err}
	}

	e.logger.Info("generated table", "output", outPath, "struct", t.StructName, "entries", t.Len())
	return true, nil
}
