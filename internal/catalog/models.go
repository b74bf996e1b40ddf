package catalog

import "time"

// Record is one exported sequence as remembered by the catalog.
type Record struct {
	ID           int64
	SessionID    string
	Fingerprint  string
	SourceDir    string
	DestDir      string
	Prefix       string
	ImageCount   int
	ByteTotal    int64
	CaptureStart time.Time
	CaptureEnd   time.Time
	ImportedAt   time.Time
}

const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
