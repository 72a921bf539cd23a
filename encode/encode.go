// Package encode turns raw file bytes into text-safe payloads.
//
// Two strategies exist: Text, which base64-encodes valid UTF-8 content, and
// Image, which checks the image header and emits a base64 data URI. A
// Registry picks the strategy from the file extension.
package encode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	ErrNotText      = errors.New("file is not valid UTF-8 text")
	ErrInvalidImage = errors.New("file is not a valid image")
)

const dataURIMarker = ";base64,"

// Strategy encodes the contents of one file.
type Strategy interface {
	Name() string
	Encode(name string, data []byte) (string, error)
}

// Registry maps lowercased file extensions to strategies.
type Registry struct {
	byExt    map[string]Strategy
	fallback Strategy
}

// NewRegistry returns a registry that uses fallback for unknown extensions.
func NewRegistry(fallback Strategy) *Registry {
	return &Registry{
		byExt:    make(map[string]Strategy),
		fallback: fallback,
	}
}

// DefaultRegistry routes png, jpeg and gif files to the image strategy and
// everything else to the text strategy.
func DefaultRegistry() *Registry {
	r := NewRegistry(Text{})
	img := Image{}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif"} {
		r.Register(ext, img)
	}
	return r
}

// Register binds ext (with its leading dot) to s.
func (r *Registry) Register(ext string, s Strategy) {
	r.byExt[strings.ToLower(ext)] = s
}

// For returns the strategy for the file name.
func (r *Registry) For(name string) Strategy {
	if s, ok := r.byExt[strings.ToLower(path.Ext(name))]; ok {
		return s
	}
	return r.fallback
}

// Decode reverses either strategy and returns the original bytes.
func Decode(content string) ([]byte, error) {
	payload := content
	if strings.HasPrefix(content, "data:") {
		i := strings.Index(content, dataURIMarker)
		if i < 0 {
			return nil, fmt.Errorf("data URI without base64 payload")
		}
		payload = content[i+len(dataURIMarker):]
	}
	return base64.StdEncoding.DecodeString(payload)
}
