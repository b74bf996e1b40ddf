// Package scan discovers timelapse images on a mounted camera filesystem.
// It walks the DCIM layout, parses run and sequence numbers out of
// filenames, and attaches capture timestamps from EXIF metadata.
package scan
