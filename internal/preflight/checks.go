// Package preflight verifies the environment before any bytes are copied:
// directory access modes and destination free space.
package preflight

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ErrInsufficientSpace indicates the destination filesystem cannot hold a
// sequence plus the configured headroom.
var ErrInsufficientSpace = errors.New("insufficient free space")

// CheckSourceReadable verifies path exists, is a directory, and can be
// read and traversed.
func CheckSourceReadable(path string) error {
	if err := checkDir(path); err != nil {
		return err
	}
	if err := unix.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return fmt.Errorf("source %s is not readable: %w", path, err)
	}
	return nil
}

// CheckDestWritable verifies path exists, is a directory, and can be
// written and traversed.
func CheckDestWritable(path string) error {
	if err := checkDir(path); err != nil {
		return err
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("destination %s is not writable: %w", path, err)
	}
	return nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist", path)
		}
		return fmt.Errorf("inspect %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// FreeBytes reports the bytes available to an unprivileged caller on the
// filesystem holding path.
func FreeBytes(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, fmt.Errorf("statfs %s: %w", path, err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// CheckSpace verifies the filesystem holding path can absorb required
// bytes plus headroom.
func CheckSpace(path string, required, headroom int64) error {
	free, err := FreeBytes(path)
	if err != nil {
		return err
	}
	needed := uint64(required) + uint64(headroom)
	if free < needed {
		return fmt.Errorf("%w on %s: need %d bytes, have %d", ErrInsufficientSpace, path, needed, free)
	}
	return nil
}
