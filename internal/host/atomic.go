package host

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// WriteFileAtomic persists data so that a crash mid-write never leaves a
// partially written target. The temp file is created as a sibling of the
// target so the rename stays on one filesystem. If the rename still
// fails (cross-volume target), the bytes are copied over the target and
// fsynced as a best-effort fallback. The temp file is removed in every
// outcome.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTempSibling(path, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	if err := os.Rename(tmpPath, path); err != nil {
		// Only a cross-volume target degrades to the copy path. Any
		// other rename failure must not touch the target at all.
		if errors.Is(err, syscall.EXDEV) {
			return copyFallback(tmpPath, path, perm)
		}
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// writeTempSibling stages the full content next to the target. Up to the
// rename the target is untouched, so dying anywhere in here leaves the
// previous file byte-identical.
func writeTempSibling(path string, data []byte, perm os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".inkmark-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("chmod temp file: %w", err)
	}
	return tmpPath, nil
}

// copyFallback is the non-atomic path for targets the rename cannot
// reach. No partial file should be observable barring a crash between
// write and sync; stronger durability is not promised here.
func copyFallback(tmpPath, path string, perm os.FileMode) error {
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return fmt.Errorf("reread temp file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("open target: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write target: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync target: %w", err)
	}
	return f.Close()
}
