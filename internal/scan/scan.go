package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"lapse/internal/logging"
)

// ErrNoImages indicates the scan finished without finding any parseable
// image files.
var ErrNoImages = errors.New("no timelapse images found")

// Image is one discovered camera image. Immutable once discovered.
type Image struct {
	Path   string
	Dir    string
	Folder int // numeric prefix of the DCIM run folder, 0 outside DCIM
	Run    int // camera run number from the filename, 0 when absent
	Seq    int
	Size   int64
	Taken  time.Time
}

// Scanner walks camera storage and produces images ordered by directory
// traversal then filename.
type Scanner struct {
	logger     *slog.Logger
	extensions map[string]struct{}
}

// New builds a Scanner limited to the provided extensions (lowercase,
// dot-prefixed, as normalized by the config package).
func New(logger *slog.Logger, extensions []string) *Scanner {
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}
	return &Scanner{
		logger:     logging.NewComponentLogger(logger, "scan"),
		extensions: set,
	}
}

// Scan discovers timelapse images under root. When root contains a DCIM
// directory the walk is anchored there, matching how cameras lay out
// removable storage. A missing or non-directory root is fatal; individual
// unreadable entries are skipped with a warning.
func (s *Scanner) Scan(root string) ([]Image, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("source %s does not exist", root)
		}
		return nil, fmt.Errorf("inspect source %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}

	start := root
	dcim := filepath.Join(root, "DCIM")
	if dcimInfo, err := os.Stat(dcim); err == nil && dcimInfo.IsDir() {
		start = dcim
		s.logger.Debug("anchoring scan at DCIM", logging.String("dir", dcim))
	}

	var (
		images   []Image
		examined int
	)
	walkErr := filepath.WalkDir(start, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		examined++

		base, ext := splitExt(entry.Name())
		if _, ok := s.extensions[ext]; !ok {
			return nil
		}
		run, seq, ok := ParseFilename(base)
		if !ok {
			s.logger.Debug("filename does not look sequential", logging.String("path", path))
			return nil
		}

		fileInfo, err := entry.Info()
		if err != nil {
			s.logger.Warn("skipping image without file info", logging.String("path", path), logging.Error(err))
			return nil
		}

		dir := filepath.Dir(path)
		folder, _ := ParseFolderNumber(filepath.Base(dir))

		images = append(images, Image{
			Path:   path,
			Dir:    dir,
			Folder: folder,
			Run:    run,
			Seq:    seq,
			Size:   fileInfo.Size(),
			Taken:  captureTime(path, fileInfo.ModTime()),
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", start, walkErr)
	}

	s.logger.Info("scan completed",
		logging.String("dir", start),
		logging.Int("examined", examined),
		logging.Int("matched", len(images)),
	)

	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return images, nil
}
