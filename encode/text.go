package encode

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// Text base64-encodes files that hold valid UTF-8.
type Text struct{}

func (Text) Name() string { return "text" }

func (Text) Encode(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", name, ErrNotText)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
