package collect

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source is a tree to collect from. Names are Root-relative walk paths
// joined onto Prefix.
type Source struct {
	FS     fs.FS
	Root   string
	Prefix string
	// Dir is the OS directory FS is rooted at, empty for other filesystems.
	Dir string
}

// SourceFor returns a Source for an OS path so that emitted names keep the
// shape the path was given in. A missing path yields a Source whose walk
// produces no entries.
func SourceFor(path string) (Source, error) {
	clean := filepath.Clean(path)
	info, err := os.Stat(clean)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Source{}, err
	}

	if err == nil && !info.IsDir() {
		dir := filepath.Dir(clean)
		return Source{
			FS:     os.DirFS(dir),
			Root:   filepath.Base(clean),
			Prefix: filepath.ToSlash(dir),
			Dir:    dir,
		}, nil
	}

	return Source{
		FS:     os.DirFS(clean),
		Root:   ".",
		Prefix: filepath.ToSlash(clean),
		Dir:    clean,
	}, nil
}

// WalkPath maps an OS path to the path the walk would visit it under. It
// reports false when the path lies outside the source.
func (s Source) WalkPath(osPath string) (string, bool) {
	if s.Dir == "" {
		return "", false
	}
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return "", false
	}
	target, err := filepath.Abs(osPath)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
