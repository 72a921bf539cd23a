package main

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/cpcf/embed64/config"
	"github.com/cpcf/embed64/engine"
	"github.com/cpcf/embed64/hostenv"
	"github.com/cpcf/embed64/pipeline"
)

type rootFlags struct {
	configPath      string
	ignoreExtension bool
	stripPrefix     bool
	structName      string
	pkg             string
	extensions      []string
	logLevel        string
	backup          bool
	dryRun          bool
}

func execute(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(getenv, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func newRootCmd(getenv func(string) string, stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "embed64 [flags] <in> <out>",
		Short: "Embed static files into a Go lookup table of base64 contents",
		Long: `embed64 reads every html, css, js and image file under <in>, encodes it
with base64 and writes a Go file <out> holding a struct whose map field is
keyed by file path. Image files are stored as data URIs.

<in> can also be a single file. Run it from a //go:generate directive.`,
		Version: versionString(),
		Args: func(cmd *cobra.Command, args []string) error {
			if flags.configPath != "" && len(args) == 0 {
				return nil
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd, args, &flags, getenv, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate("embed64 {{.Version}}\n")

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML configuration file")
	f.BoolVar(&flags.ignoreExtension, "ignore-extension", false, "Disable the extension verification")
	f.BoolVar(&flags.stripPrefix, "strip-prefix", false, "Exclude the first path segment from entry names")
	f.StringVarP(&flags.structName, "struct-name", "s", "", "Name of the generated struct (default StaticFiles)")
	f.StringVarP(&flags.pkg, "package", "p", "", "Package of the generated file (default $GOPACKAGE)")
	f.StringSliceVarP(&flags.extensions, "ext", "e", nil, "Allowed file extension, repeatable")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	f.BoolVar(&flags.backup, "backup", false, "Keep the replaced output as <out>.bak")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the generated file instead of writing it")

	return cmd
}

func run(cmd *cobra.Command, args []string, flags *rootFlags, getenv func(string) string, stdout, stderr io.Writer) error {
	host, err := hostenv.Detect(getenv)
	if err != nil {
		return err
	}

	var cfg config.Config
	if flags.configPath != "" {
		if err := config.LoadYAML(flags.configPath, &cfg); err != nil {
			return err
		}
	}
	applyFlags(cmd, flags, args, &cfg)
	if cfg.Package == "" {
		cfg.Package = host.Package
	}
	config.ApplyDefaults(&cfg)
	if err := cfg.Complete(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Logging.Level)
	logger.Debug("starting", "host", host.String(), "input", cfg.Input, "output", cfg.Output)

	runOpts := []pipeline.Option{pipeline.WithLogger(logger)}
	if flags.dryRun {
		runOpts = append(runOpts, pipeline.WithEngineOptions(engine.WithDryRun(stdout)))
	}

	res, err := pipeline.Run(cfg, runOpts...)
	if err != nil {
		return err
	}

	logger.Debug("done", "entries", res.Entries, "written", res.Written)
	return nil
}

// applyFlags overrides cfg with positional arguments and explicitly set flags.
func applyFlags(cmd *cobra.Command, flags *rootFlags, args []string, cfg *config.Config) {
	if len(args) == 2 {
		cfg.Input, cfg.Output = args[0], args[1]
	}

	changed := cmd.Flags().Changed
	if changed("ignore-extension") {
		cfg.IgnoreExtension = flags.ignoreExtension
	}
	if changed("strip-prefix") {
		cfg.StripPrefix = flags.stripPrefix
	}
	if changed("struct-name") {
		cfg.StructName = flags.structName
	}
	if changed("package") {
		cfg.Package = flags.pkg
	}
	if changed("ext") {
		cfg.Extensions = normalizeExtensions(flags.extensions)
	}
	if changed("backup") {
		cfg.Backup = flags.backup
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
}

// normalizeExtensions accepts "html" as well as ".html".
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		if ext == "" {
			continue
		}
		if ext[0] != '.' {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func versionString() string {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, date)
}
