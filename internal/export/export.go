// Package export copies a timelapse sequence into the destination layout
// <dest>/<prefix>_<n>/<8-digit counter>.JPG, renumbering images from
// 00000001 so downstream timelapse assembly sees a dense frame range.
package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lapse/internal/fileutil"
	"lapse/internal/logging"
	"lapse/internal/sequence"
)

const padWidth = 8

// Exporter writes approved sequences to the destination root.
type Exporter struct {
	logger *slog.Logger
	verify bool
}

// New builds an Exporter. With verify set, every copy is checked with
// SHA-256 on both sides of the stream.
func New(logger *slog.Logger, verify bool) *Exporter {
	return &Exporter{
		logger: logging.NewComponentLogger(logger, "export"),
		verify: verify,
	}
}

// Result reports where a sequence landed and how much was written.
type Result struct {
	Dir    string
	Copied int
	Bytes  int64
}

// Export copies every image of seq into <destRoot>/<prefix>_<index>/ with
// zero-padded sequential names. Existing files at the target names are
// overwritten, so re-exporting a sequence is idempotent. The first copy
// failure aborts the remaining files of this sequence.
func (e *Exporter) Export(destRoot, prefix string, seq sequence.Sequence) (Result, error) {
	dir := filepath.Join(destRoot, fmt.Sprintf("%s_%d", prefix, seq.Index))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Dir: dir}, fmt.Errorf("create sequence directory %s: %w", dir, err)
	}

	res := Result{Dir: dir}
	copyFn := fileutil.CopyFile
	if e.verify {
		copyFn = fileutil.CopyFileVerified
	}

	for i, img := range seq.Images {
		target := filepath.Join(dir, outputName(i+1, img.Path))
		if err := copyFn(img.Path, target); err != nil {
			return res, fmt.Errorf("copy %s to %s: %w", img.Path, target, err)
		}
		res.Copied++
		res.Bytes += img.Size
	}

	e.logger.Info("sequence exported",
		logging.Int(logging.FieldSequence, seq.Index),
		logging.String(logging.FieldDest, dir),
		logging.Int("images", res.Copied),
		logging.Int64("bytes", res.Bytes),
	)
	return res, nil
}

// outputName builds the zero-padded destination filename, keeping the
// source extension in its conventional uppercase camera form.
func outputName(n int, srcPath string) string {
	ext := strings.ToUpper(filepath.Ext(srcPath))
	if ext == "" {
		ext = ".JPG"
	}
	return fmt.Sprintf("%0*d%s", padWidth, n, ext)
}
