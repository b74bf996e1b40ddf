package preflight_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lapse/internal/preflight"
)

func TestCheckSourceReadable(t *testing.T) {
	dir := t.TempDir()
	if err := preflight.CheckSourceReadable(dir); err != nil {
		t.Fatalf("expected readable temp dir, got %v", err)
	}
}

func TestCheckSourceMissing(t *testing.T) {
	if err := preflight.CheckSourceReadable(filepath.Join(t.TempDir(), "gone")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestCheckDestRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := preflight.CheckDestWritable(path); err == nil {
		t.Fatal("expected error for non-directory destination")
	}
}

func TestFreeBytesPositive(t *testing.T) {
	free, err := preflight.FreeBytes(t.TempDir())
	if err != nil {
		t.Fatalf("FreeBytes failed: %v", err)
	}
	if free == 0 {
		t.Fatal("expected non-zero free space on temp filesystem")
	}
}

func TestCheckSpace(t *testing.T) {
	dir := t.TempDir()
	if err := preflight.CheckSpace(dir, 1, 0); err != nil {
		t.Fatalf("one byte should always fit: %v", err)
	}
	err := preflight.CheckSpace(dir, int64(1)<<62, 0)
	if !errors.Is(err, preflight.ErrInsufficientSpace) {
		t.Fatalf("expected ErrInsufficientSpace, got %v", err)
	}
}
