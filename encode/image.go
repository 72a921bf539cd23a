package encode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
)

// formats maps an extension to the format name reported by image.DecodeConfig.
var formats = map[string]string{
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
}

// Image emits a data URI after checking that the bytes decode as the image
// format the extension promises. The payload is the unmodified file.
type Image struct{}

func (Image) Name() string { return "image" }

func (Image) Encode(name string, data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", name, ErrInvalidImage, err)
	}
	if want, ok := formats[strings.ToLower(path.Ext(name))]; ok && want != format {
		return "", fmt.Errorf("%s: %w: extension says %s, content is %s", name, ErrInvalidImage, want, format)
	}

	var b strings.Builder
	b.Grow(len("data:image/") + len(format) + len(dataURIMarker) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:image/")
	b.WriteString(format)
	b.WriteString(dataURIMarker)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}
