package host

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
)

func TestWriteFileAtomicCreatesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")

	if err := WriteFileAtomic(path, []byte("# v1"), 0o644); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "# v1" {
		t.Fatalf("content=%q", got)
	}

	if err := WriteFileAtomic(path, []byte("# v2"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "# v2" {
		t.Fatalf("content=%q", got)
	}
}

func TestWriteFileAtomicIdempotentBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	for i := 0; i < 2; i++ {
		if err := WriteFileAtomic(path, []byte("same"), 0o644); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		got, err := os.ReadFile(path)
		if err != nil || string(got) != "same" {
			t.Fatalf("pass %d: content=%q err=%v", i, got, err)
		}
	}
}

func TestWriteFileAtomicCleansUpTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := WriteFileAtomic(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	leftovers, err := filepath.Glob(filepath.Join(dir, ".inkmark-*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}
}

func TestCrashBeforeRenameLeavesTargetIntact(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Staging the replacement is the last step before the rename; a
	// process dying here must not have disturbed the target.
	tmpPath, err := writeTempSibling(path, []byte("replacement"), 0o644)
	if err != nil {
		t.Fatalf("stage: %v", err)
	}
	defer os.Remove(tmpPath)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "original" {
		t.Fatalf("target mutated before rename: %q", got)
	}
	if filepath.Dir(tmpPath) != dir {
		t.Fatalf("temp file not a sibling: %s", tmpPath)
	}
}

func TestWriteFileAtomicFailsCleanlyWhenTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "actually-a-dir")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := WriteFileAtomic(target, []byte("content"), 0o644); err == nil {
		t.Fatal("expected error writing over a directory")
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, ".inkmark-*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind after failure: %v", leftovers)
	}
}

func TestWriteFileAtomicNoCopyFallbackOnSameVolumeRenameFailure(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(target, "keep.md")
	if err := os.WriteFile(keep, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Renaming onto a directory fails on the same volume; that failure
	// must surface as the rename error, never fall through to the
	// non-atomic copy of the target.
	err := WriteFileAtomic(target, []byte("new content"), 0o644)
	if err == nil {
		t.Fatal("expected rename failure")
	}
	if errors.Is(err, syscall.EXDEV) {
		t.Fatalf("same-volume failure reported as cross-volume: %v", err)
	}
	if !strings.Contains(err.Error(), "rename") {
		t.Fatalf("error should come from the rename, got: %v", err)
	}

	got, rerr := os.ReadFile(keep)
	if rerr != nil || string(got) != "keep" {
		t.Fatalf("target contents disturbed: %q %v", got, rerr)
	}
	leftovers, _ := filepath.Glob(filepath.Join(dir, ".inkmark-*.tmp"))
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind after failure: %v", leftovers)
	}
}
