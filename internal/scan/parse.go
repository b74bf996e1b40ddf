package scan

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	// GoPro Hero timelapse naming: G<run:3><seq:4>.JPG
	goproFilePattern = regexp.MustCompile(`^G(\d{3})(\d{4})$`)

	// Fallback for cameras that emit plain counters: trailing digits of the
	// base name become the sequence number (IMG_0042, DSC00107, 00000123).
	trailingDigitsPattern = regexp.MustCompile(`(\d+)$`)

	// DCIM run folders: three-digit prefix plus a vendor suffix (100GOPRO,
	// 101MSDCF, 100CANON).
	dcimDirPattern = regexp.MustCompile(`^(\d{3})[0-9A-Za-z_]{2,}$`)
)

// ParseFilename extracts the camera run and sequence numbers from an image
// filename. Run is zero for cameras without run-numbered names. The
// extension has to be stripped by the caller.
func ParseFilename(base string) (run, seq int, ok bool) {
	if m := goproFilePattern.FindStringSubmatch(base); m != nil {
		run, _ = strconv.Atoi(m[1])
		seq, _ = strconv.Atoi(m[2])
		return run, seq, true
	}
	if m := trailingDigitsPattern.FindStringSubmatch(base); m != nil {
		digits := m[1]
		// Cap absurdly long counters; they are timestamps, not sequences.
		if len(digits) > 9 {
			digits = digits[len(digits)-9:]
		}
		seq, err := strconv.Atoi(digits)
		if err != nil {
			return 0, 0, false
		}
		return 0, seq, true
	}
	return 0, 0, false
}

// ParseFolderNumber extracts the numeric prefix of a DCIM run folder name.
// Returns zero and false when the name does not follow the DCIM convention.
func ParseFolderNumber(dirName string) (int, bool) {
	m := dcimDirPattern.FindStringSubmatch(dirName)
	if m == nil {
		return 0, false
	}
	n, _ := strconv.Atoi(m[1])
	return n, true
}

func splitExt(name string) (base, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), strings.ToLower(ext)
}
