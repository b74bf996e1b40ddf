// Package sequence splits a scan's ordered image list into timelapse
// sequences at discontinuities: directory changes, camera run changes, and
// jumps in the filename counter.
package sequence

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"lapse/internal/scan"
)

// Sequence is one contiguous timelapse run. Index is the 1-based position
// in discovery order and drives the exported directory name.
type Sequence struct {
	Index  int
	Images []scan.Image
}

// Group walks images in discovery order and starts a new sequence whenever
// the parent directory changes, the camera run number changes, or the jump
// between consecutive sequence numbers exceeds gapThreshold. A counter that
// fails to advance also starts a new sequence; cameras reset the counter
// between runs.
func Group(images []scan.Image, gapThreshold int) []Sequence {
	if len(images) == 0 {
		return nil
	}
	if gapThreshold < 1 {
		gapThreshold = 1
	}

	var out []Sequence
	current := Sequence{Index: 1, Images: []scan.Image{images[0]}}

	for _, img := range images[1:] {
		prev := current.Images[len(current.Images)-1]
		if boundary(prev, img, gapThreshold) {
			out = append(out, current)
			current = Sequence{Index: current.Index + 1, Images: []scan.Image{img}}
			continue
		}
		current.Images = append(current.Images, img)
	}
	return append(out, current)
}

func boundary(prev, cur scan.Image, gapThreshold int) bool {
	if cur.Dir != prev.Dir {
		return true
	}
	if cur.Run != prev.Run {
		return true
	}
	delta := cur.Seq - prev.Seq
	return delta <= 0 || delta > gapThreshold
}

// Count returns the number of images in the sequence.
func (s Sequence) Count() int {
	return len(s.Images)
}

// TotalBytes sums the on-disk size of every image in the sequence.
func (s Sequence) TotalBytes() int64 {
	var total int64
	for _, img := range s.Images {
		total += img.Size
	}
	return total
}

// Bounds returns the earliest and latest capture times in the sequence.
func (s Sequence) Bounds() (start, end time.Time) {
	for i, img := range s.Images {
		if i == 0 || img.Taken.Before(start) {
			start = img.Taken
		}
		if i == 0 || img.Taken.After(end) {
			end = img.Taken
		}
	}
	return start, end
}

// SourceDir returns the directory the sequence was discovered in.
func (s Sequence) SourceDir() string {
	if len(s.Images) == 0 {
		return ""
	}
	return s.Images[0].Dir
}

// Fingerprint identifies a sequence across invocations so the catalog can
// flag repeats. It hashes the source location and shape of the sequence,
// not file contents, so re-scanning an unchanged card is cheap.
func (s Sequence) Fingerprint() string {
	if len(s.Images) == 0 {
		return ""
	}
	first := s.Images[0]
	last := s.Images[len(s.Images)-1]
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d|%d",
		first.Dir, first.Run, first.Seq, last.Seq, len(s.Images), s.TotalBytes())
	return hex.EncodeToString(h.Sum(nil))
}
