// Package pipeline runs one embed64 generation: collect the input tree, then
// render and write the lookup table.
package pipeline

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/cpcf/embed64/collect"
	"github.com/cpcf/embed64/config"
	"github.com/cpcf/embed64/engine"
	"github.com/cpcf/embed64/table"
)

// Result summarizes a run.
type Result struct {
	Entries int
	Output  string
	// Written is false when the output already held the generated bytes or
	// the engine ran in dry-run mode.
	Written bool
}

type options struct {
	logger     *slog.Logger
	engineOpts []engine.Option
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEngineOptions adds engine options, e.g. engine.WithDryRun. They are
// applied after the ones derived from the configuration.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(o *options) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// Run collects cfg.Input completely before generating cfg.Output. The
// configuration must already have defaults applied.
func Run(cfg config.Config, opts ...Option) (Result, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Complete(); err != nil {
		return Result{}, fmt.Errorf("invalid configuration: %w", err)
	}

	src, err := collect.SourceFor(cfg.Input)
	if err != nil {
		return Result{}, fmt.Errorf("open input: %w", err)
	}

	collectOpts := []collect.Option{
		collect.WithLogger(o.logger),
		collect.WithIgnore(cfg.Ignore),
		collect.WithExtensions(cfg.Extensions),
		collect.WithIgnoreExtension(cfg.IgnoreExtension),
		collect.WithStripPrefix(cfg.StripPrefix),
	}
	if p, ok := src.WalkPath(cfg.Output); ok {
		collectOpts = append(collectOpts, collect.WithSkip(p))
	}
	collector := collect.New(collectOpts...)
	entries, err := collector.Collect(src)
	if err != nil {
		return Result{}, fmt.Errorf("collect %s: %w", cfg.Input, err)
	}

	tbl := table.New(cfg.Package, cfg.StructName, entries)
	tbl.Source = filepath.ToSlash(filepath.Clean(cfg.Input))

	engineOpts := append([]engine.Option{
		engine.WithLogger(o.logger),
		engine.WithBackup(cfg.Backup),
	}, o.engineOpts...)

	written, err := engine.New(engineOpts...).Generate(tbl, cfg.Output)
	if err != nil {
		return Result{}, err
	}

	return Result{Entries: len(entries), Output: cfg.Output, Written: written}, nil
}
