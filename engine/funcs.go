package engine

import (
	"strconv"
	"text/template"
)

// funcMap holds the helpers available to the built-in templates. Every
// string literal in generated code goes through quote.
func funcMap() template.FuncMap {
	return template.FuncMap{
		"quote": strconv.Quote,
	}
}
