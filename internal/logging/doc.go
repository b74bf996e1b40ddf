// Package logging constructs the shared slog logger used across lapse.
// Two output formats are supported: a compact console format for
// interactive runs and JSON for log files or scripting.
package logging
