// Package hostenv detects whether the tool runs under go generate.
package hostenv

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrNotGoGenerate is returned when the go generate variables are missing.
var ErrNotGoGenerate = errors.New("not invoked by go generate")

// Host describes the //go:generate directive that started the tool.
type Host struct {
	File    string
	Package string
	Line    int
	Arch    string
	OS      string
}

// Detect reads the variables go generate exports. getenv is usually os.Getenv.
func Detect(getenv func(string) string) (Host, error) {
	h := Host{
		File:    getenv("GOFILE"),
		Package: getenv("GOPACKAGE"),
		Arch:    getenv("GOARCH"),
		OS:      getenv("GOOS"),
	}

	var missing []string
	if h.File == "" {
		missing = append(missing, "GOFILE")
	}
	if h.Package == "" {
		missing = append(missing, "GOPACKAGE")
	}
	if len(missing) > 0 {
		return Host{}, fmt.Errorf("%w: %v not set; run it from a //go:generate directive", ErrNotGoGenerate, missing)
	}

	if line := getenv("GOLINE"); line != "" {
		n, err := strconv.Atoi(line)
		if err != nil {
			return Host{}, fmt.Errorf("%w: GOLINE=%q is not a number", ErrNotGoGenerate, line)
		}
		h.Line = n
	}

	return h, nil
}

func (h Host) String() string {
	if h.Line > 0 {
		return fmt.Sprintf("%s:%d (package %s)", h.File, h.Line, h.Package)
	}
	return fmt.Sprintf("%s (package %s)", h.File, h.Package)
}
