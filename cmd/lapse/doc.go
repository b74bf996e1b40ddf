// Command lapse imports timelapse image sequences from camera storage.
// It scans a mounted card for sequentially numbered shots, groups them into
// sequences, and copies approved sequences into numbered directories under
// the configured destination.
package main
