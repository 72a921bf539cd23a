package config

import (
	"strings"
	"testing"

	"github.com/cpcf/embed64/collect"
	"github.com/cpcf/embed64/table"
)

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	ApplyDefaults(&cfg)

	if cfg.StructName != table.DefaultStructName {
		t.Errorf("StructName = %q, want %q", cfg.StructName, table.DefaultStructName)
	}
	if len(cfg.Extensions) != len(collect.DefaultExtensions) {
		t.Errorf("Extensions = %v, want defaults", cfg.Extensions)
	}
	if len(cfg.Ignore) != len(collect.DefaultIgnore) {
		t.Errorf("Ignore = %v, want defaults", cfg.Ignore)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	cfg.Extensions[0] = ".changed"
	if collect.DefaultExtensions[0] == ".changed" {
		t.Error("ApplyDefaults shares the default extension slice")
	}
}

func TestApplyDefaults_KeepsExplicitEmptyIgnore(t *testing.T) {
	cfg := Config{Ignore: []string{}}
	ApplyDefaults(&cfg)
	if len(cfg.Ignore) != 0 {
		t.Errorf("Ignore = %v, want explicit empty list kept", cfg.Ignore)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantError string
	}{
		{name: "zero value", cfg: Config{}},
		{name: "valid", cfg: Config{StructName: "Assets", Package: "web", Extensions: []string{".html"}, Logging: LoggingConfig{Level: "WARN"}}},
		{name: "struct name", cfg: Config{StructName: "my-files"}, wantError: "struct_name"},
		{name: "package keyword", cfg: Config{Package: "type"}, wantError: "package"},
		{name: "extension without dot", cfg: Config{Extensions: []string{"html"}}, wantError: "must start with a dot"},
		{name: "bare dot", cfg: Config{Extensions: []string{"."}}, wantError: "must start with a dot"},
		{name: "log level", cfg: Config{Logging: LoggingConfig{Level: "trace"}}, wantError: "invalid logging level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantError)
			}
		})
	}
}

func TestComplete(t *testing.T) {
	cfg := Config{}
	err := cfg.Complete()
	if err == nil {
		t.Fatal("Complete() expected error for missing paths")
	}
	for _, want := range []string{"input path is required", "output path is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Complete() error %q missing %q", err, want)
		}
	}

	cfg = Config{Input: "static", Output: "assets_gen.go"}
	if err := cfg.Complete(); err != nil {
		t.Errorf("Complete() error = %v", err)
	}
}

func TestConfigBackupKey(t *testing.T) {
	var cfg Config
	if err := LoadYAMLFromString("input: static\noutput: out.go\nbackup: true\n", &cfg); err != nil {
		t.Fatalf("LoadYAMLFromString() error = %v", err)
	}
	if !cfg.Backup {
		t.Error("Backup = false, want true")
	}
}

func TestValidateReservedStructName(t *testing.T) {
	for _, name := range []string{"strings", "base64", "_", "error"} {
		cfg := Config{StructName: name}
		if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "struct_name") {
			t.Errorf("Validate() with struct_name %q = %v, want struct_name error", name, err)
		}
	}
	cfg := Config{Package: "_"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted package \"_\"")
	}
}
