package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cpcf/embed64/collect"
	"github.com/cpcf/embed64/table"
)

// Config holds the settings of one generation run. It can be read from a
// YAML file and overridden by command-line flags.
type Config struct {
	// Input is the file or directory to embed.
	Input string `yaml:"input"`
	// Output is the path of the generated Go file.
	Output string `yaml:"output"`
	// Package is the package clause of the generated file. Defaults to the
	// package go generate runs in.
	Package string `yaml:"package"`
	// StructName names the generated struct and its New<StructName> constructor.
	StructName string `yaml:"struct_name"`
	// IgnoreExtension embeds every regular file regardless of extension.
	IgnoreExtension bool `yaml:"ignore_extension"`
	// StripPrefix drops the first path segment from entry names.
	StripPrefix bool `yaml:"strip_prefix"`
	// Extensions lists the embedded file extensions, leading dot included.
	Extensions []string `yaml:"extensions"`
	// Ignore lists base names skipped during the walk.
	Ignore []string `yaml:"ignore"`
	// Backup keeps the replaced output as <output>.bak.
	Backup bool `yaml:"backup"`
	// Logging configures the log output of the tool.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.StructName == "" {
		cfg.StructName = table.DefaultStructName
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), collect.DefaultExtensions...)
	}
	if cfg.Ignore == nil {
		cfg.Ignore = append([]string(nil), collect.DefaultIgnore...)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks the configuration. Input and Output are not required here
// because a file may leave them to the command line; see Complete.
func (cfg *Config) Validate() error {
	if cfg.StructName != "" {
		if err := table.CheckStructName(cfg.StructName); err != nil {
			return fmt.Errorf("struct_name: %w", err)
		}
	}
	if cfg.Package != "" {
		if err := table.CheckPackageName(cfg.Package); err != nil {
			return fmt.Errorf("package: %w", err)
		}
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	if cfg.Logging.Level != "" {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", cfg.Logging.Level)
		}
	}
	return nil
}

// Complete validates a configuration that is about to run.
func (cfg *Config) Complete() error {
	var errs []error
	if cfg.Input == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if cfg.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
