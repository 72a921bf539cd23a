package testing

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/tools/txtar"
)

// FromTxtar builds a MemoryFS from the files of a txtar archive. A file whose
// name ends in "/" creates an empty directory. Trailing newlines added by the
// archive format are kept, so fixtures should account for them.
func FromTxtar(ar *txtar.Archive) *MemoryFS {
	mfs := NewMemoryFS()
	for _, f := range ar.Files {
		if strings.HasSuffix(f.Name, "/") {
			mfs.Mkdir(strings.TrimSuffix(f.Name, "/"))
			continue
		}
		mfs.WriteFile(f.Name, f.Data)
	}
	return mfs
}

// LoadTxtar parses the archive at path and returns its filesystem and comment.
func LoadTxtar(path string) (*MemoryFS, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read fixture %s: %w", path, err)
	}
	ar := txtar.Parse(data)
	return FromTxtar(ar), string(ar.Comment), nil
}
