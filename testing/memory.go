// Package testing provides in-memory filesystems and snapshot assertions
// for tests of the collector and the engine.
package testing

import (
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS is a writable fs.FS kept entirely in memory. The root "." always exists.
// It is safe for concurrent use.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*MemoryFile
}

type MemoryFile struct {
	name    string
	content []byte
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func NewMemoryFS() *MemoryFS {
	mfs := &MemoryFS{
		files: make(map[string]*MemoryFile),
	}
	mfs.files["."] = newDir(".")
	return mfs
}

func newDir(name string) *MemoryFile {
	return &MemoryFile{
		name:    name,
		mode:    0o755 | fs.ModeDir,
		modTime: time.Unix(0, 0).UTC(),
		isDir:   true,
	}
}

// WriteFile stores data at name, creating parent directories.
func (mfs *MemoryFS) WriteFile(name string, data []byte) {
	mfs.WriteFileMode(name, data, 0o644)
}

// WriteFileMode is WriteFile with an explicit mode. Passing fs.ModeSymlink
// or another type bit produces a non-regular entry.
func (mfs *MemoryFS) WriteFileMode(name string, data []byte, mode fs.FileMode) {
	name = path.Clean(name)
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.files[name] = &MemoryFile{
		name:    name,
		content: data,
		mode:    mode,
		modTime: time.Unix(0, 0).UTC(),
	}
	mfs.mkdirLocked(path.Dir(name))
}

// Mkdir creates dir and its parents.
func (mfs *MemoryFS) Mkdir(dir string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.mkdirLocked(path.Clean(dir))
}

func (mfs *MemoryFS) mkdirLocked(dir string) {
	if _, exists := mfs.files[dir]; exists {
		return
	}
	mfs.files[dir] = newDir(dir)
	mfs.mkdirLocked(path.Dir(dir))
}

func (mfs *MemoryFS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	mfs.mu.RLock()
	file, exists := mfs.files[name]
	mfs.mu.RUnlock()
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &memoryFileHandle{file: file, mfs: mfs, path: name}, nil
}

func (mfs *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	dir, exists := mfs.files[name]
	if !exists {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	if !dir.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	var entries []fs.DirEntry
	for filePath, file := range mfs.files {
		if filePath != "." && path.Dir(filePath) == name {
			entries = append(entries, &memoryDirEntry{file})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

// Paths returns every stored file path, sorted. Directories are omitted.
func (mfs *MemoryFS) Paths() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	var paths []string
	for p, f := range mfs.files {
		if !f.isDir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

type memoryFileHandle struct {
	file   *MemoryFile
	mfs    *MemoryFS
	path   string
	offset int
	dirPos int
}

func (f *memoryFileHandle) Read(b []byte) (int, error) {
	if f.file.isDir {
		return 0, &fs.PathError{Op: "read", Path: f.path, Err: fs.ErrInvalid}
	}

	if f.offset >= len(f.file.content) {
		return 0, io.EOF
	}

	n := copy(b, f.file.content[f.offset:])
	f.offset += n
	return n, nil
}

func (f *memoryFileHandle) Stat() (fs.FileInfo, error) {
	return f.file, nil
}

func (f *memoryFileHandle) Close() error {
	return nil
}

func (f *memoryFileHandle) ReadDir(n int) ([]fs.DirEntry, error) {
	if !f.file.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: f.path, Err: fs.ErrInvalid}
	}

	entries, err := f.mfs.ReadDir(f.path)
	if err != nil {
		return nil, err
	}
	entries = entries[f.dirPos:]

	if n <= 0 {
		f.dirPos += len(entries)
		return entries, nil
	}
	if len(entries) == 0 {
		return nil, io.EOF
	}

	n = min(n, len(entries))
	f.dirPos += n
	return entries[:n], nil
}

type memoryDirEntry struct {
	file *MemoryFile
}

func (e *memoryDirEntry) Name() string {
	return path.Base(e.file.name)
}

func (e *memoryDirEntry) IsDir() bool {
	return e.file.isDir
}

func (e *memoryDirEntry) Type() fs.FileMode {
	return e.file.mode.Type()
}

func (e *memoryDirEntry) Info() (fs.FileInfo, error) {
	return e.file, nil
}

func (f *MemoryFile) Name() string {
	return path.Base(f.name)
}

func (f *MemoryFile) Size() int64 {
	return int64(len(f.content))
}

func (f *MemoryFile) Mode() fs.FileMode {
	return f.mode
}

func (f *MemoryFile) ModTime() time.Time {
	return f.modTime
}

func (f *MemoryFile) IsDir() bool {
	return f.isDir
}

func (f *MemoryFile) Sys() any {
	return nil
}

func (f *MemoryFile) String() string {
	return strings.TrimSpace(fs.FormatFileInfo(f))
}
