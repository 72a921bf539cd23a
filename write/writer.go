// Package write stores generated files on disk.
package write

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Writer interface {
	Write(path string, content []byte, options WriteOptions) error
	NeedsWrite(path string, content []byte) (bool, error)
}

type WriteOptions struct {
	CreateDirs bool
	Overwrite  bool
	// Backup copies an existing target to <path>.bak before replacing it.
	Backup bool
	// Atomic writes to a temporary file in the target directory and renames
	// it over the target, so readers never observe a truncated file.
	Atomic bool
}

type BaseWriter struct{}

func NewBaseWriter() *BaseWriter {
	return &BaseWriter{}
}

func (bw *BaseWriter) Write(path string, content []byte, options WriteOptions) error {
	if options.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create directories: %w", err)
		}
	}

	if !options.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists and overwrite is false: %s", path)
		}
	}

	if options.Backup {
		if err := backup(path); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	if options.Atomic {
		return bw.atomicWrite(path, content)
	}

	return os.WriteFile(path, content, 0o644)
}

// NeedsWrite reports whether path is missing or holds different bytes.
func (bw *BaseWriter) NeedsWrite(path string, content []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}

	return !bytes.Equal(existing, content), nil
}

// backup keeps the previous content and mode of path next to it. A missing
// path needs no backup.
func backup(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	previous, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path+".bak", previous, info.Mode().Perm())
}

func (bw *BaseWriter) atomicWrite(path string, content []byte) error {
	tempPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")

	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := file.Write(content); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}
