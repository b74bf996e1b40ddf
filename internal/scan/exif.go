package scan

import (
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// captureTime reads EXIF DateTimeOriginal from the image. Cameras that
// write no usable EXIF block fall back to the file modification time.
func captureTime(path string, modTime time.Time) time.Time {
	f, err := os.Open(path)
	if err != nil {
		return modTime
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return modTime
	}
	taken, err := x.DateTime()
	if err != nil {
		return modTime
	}
	return taken
}
