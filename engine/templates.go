package engine

import "embed"

// TableTemplate is the name of the built-in lookup-table template.
const TableTemplate = "templates/table.go.tmpl"

//go:embed templates/*.tmpl
var templateFS embed.FS
