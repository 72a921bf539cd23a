package testing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
)

// SnapshotManager compares generated output with golden files under a
// directory. In update mode mismatching or missing snapshots are rewritten.
type SnapshotManager struct {
	snapshotDir string
	updateMode  bool
}

func NewSnapshotManager(snapshotDir string, updateMode bool) *SnapshotManager {
	return &SnapshotManager{
		snapshotDir: snapshotDir,
		updateMode:  updateMode,
	}
}

// Path returns the golden file used for testName.
func (sm *SnapshotManager) Path(testName string) string {
	return filepath.Join(sm.snapshotDir, testName+".snapshot")
}

func (sm *SnapshotManager) AssertSnapshot(testName, actual string) error {
	snapshotPath := sm.Path(testName)

	expected, err := os.ReadFile(snapshotPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load snapshot: %w", err)
		}
		if !sm.updateMode {
			return fmt.Errorf("snapshot does not exist: %s (run with update mode to create)", snapshotPath)
		}
		return sm.save(snapshotPath, actual)
	}

	if diff := cmp.Diff(string(expected), actual); diff != "" {
		if sm.updateMode {
			return sm.save(snapshotPath, actual)
		}
		return fmt.Errorf("snapshot mismatch for %s (-want +got):\n%s", testName, diff)
	}
	return nil
}

func (sm *SnapshotManager) save(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
