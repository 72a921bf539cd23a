package processors

import (
	"strings"
	"testing"
)

func TestGoSource_ProcessContent(t *testing.T) {
	processor := NewGoSource()

	tests := []struct {
		name     string
		filePath string
		input    string
		want     string
		wantErr  bool
	}{
		{
			name:     "formats and sorts imports",
			filePath: "assets_gen.go",
			input: `package assets
import (
"strings"
"encoding/base64"
)
var _ = strings.HasPrefix
var _ = base64.StdEncoding
`,
			want: `package assets

import (
	"encoding/base64"
	"strings"
)

var _ = strings.HasPrefix
var _ = base64.StdEncoding
`,
		},
		{
			name:     "non-go file unchanged",
			filePath: "notes.txt",
			input:    "some  text\tcontent",
			want:     "some  text\tcontent",
		},
		{
			name:     "broken string literal rejected",
			filePath: "assets_gen.go",
			input:    "package assets\n\nvar x = \"a\"b\"\n",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := processor.ProcessContent(tt.filePath, []byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ProcessContent() expected error, got:\n%s", result)
				}
				if !strings.Contains(err.Error(), "invalid") {
					t.Errorf("error %q does not report invalid source", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProcessContent() error = %v", err)
			}
			if string(result) != tt.want {
				t.Errorf("ProcessContent() =\n%s\nwant:\n%s", result, tt.want)
			}
		})
	}
}

func TestIsGoFile(t *testing.T) {
	tests := []struct {
		filePath string
		want     bool
	}{
		{"main.go", true},
		{"assets_gen.go", true},
		{"file.GO", true},
		{"file.txt", false},
		{"file", false},
		{"go.mod", false},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			if got := isGoFile(tt.filePath); got != tt.want {
				t.Errorf("isGoFile() = %v, want %v", got, tt.want)
			}
		})
	}
}
