package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	chunk := make([]byte, chunkSize)
	for i := range chunk {
		chunk[i] = byte('a' + i%26)
	}
	remaining := size
	for remaining > 0 {
		n := int64(len(chunk))
		if remaining < n {
			n = remaining
		}
		if _, err := f.Write(chunk[:n]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= n
	}
}

// WriteShot places a camera-style image file (G<run><seq>.JPG) under the
// given DCIM folder and stamps its modification time so scans without EXIF
// data order deterministically.
func WriteShot(t testing.TB, root, folder string, run, seq int, taken time.Time) string {
	t.Helper()

	name := fmt.Sprintf("G%03d%04d.JPG", run, seq)
	path := filepath.Join(root, "DCIM", folder, name)
	WriteFile(t, path, 64)
	if !taken.IsZero() {
		if err := os.Chtimes(path, taken, taken); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}
	return path
}
