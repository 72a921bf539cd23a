// Command embed64 embeds a directory of static files into a generated Go
// file as a table of base64-encoded contents.
//
// It is meant to run from a go:generate directive:
//
//	//go:generate embed64 --strip-prefix -s Assets static assets_gen.go
//
// Usage:
//
//	embed64 [flags] <in> <out>
//
// Flags:
//
//	--ignore-extension   Embed every regular file regardless of extension
//	--strip-prefix       Drop the first path segment from entry names
//	-s, --struct-name    Name of the generated struct (default: StaticFiles)
//	-p, --package        Package of the generated file (default: $GOPACKAGE)
//	-e, --ext            Allowed extension, repeatable (default: html, css, js and images)
//	--config             YAML configuration file
//	--log-level          debug, info, warn or error
//	--backup             Keep the replaced output as <out>.bak
//	--dry-run            Print the generated file instead of writing it
//	--version            Show version information
package main

import "os"

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}
