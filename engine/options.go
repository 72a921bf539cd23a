package engine

import (
	"io"
	"io/fs"
	"log/slog"

	"github.com/cpcf/embed64/postprocess"
	"github.com/cpcf/embed64/write"
)

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithWriter(w write.Writer) Option {
	return func(e *Engine) {
		e.writer = w
	}
}

// WithPostProcessor appends p after the default Go formatter.
func WithPostProcessor(p postprocess.Processor) Option {
	return func(e *Engine) {
		e.postprocessors.Add(p)
	}
}

// WithTemplateFS replaces the built-in templates. The filesystem must hold
// TableTemplate.
func WithTemplateFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.templates = fsys
	}
}

// WithBackup keeps the previous output as <output>.bak whenever it is replaced.
func WithBackup(backup bool) Option {
	return func(e *Engine) {
		e.backup = backup
	}
}

// WithDryRun sends the generated file to w instead of writing it.
func WithDryRun(w io.Writer) Option {
	return func(e *Engine) {
		e.dryRun = w
	}
}
