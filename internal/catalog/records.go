package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Add inserts a record and fills in its ID and ImportedAt.
func (s *Store) Add(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.New("nil record")
	}
	if rec.Fingerprint == "" {
		return errors.New("record missing fingerprint")
	}
	if rec.ImportedAt.IsZero() {
		rec.ImportedAt = time.Now().UTC()
	}

	res, err := s.execWithRetry(ctx, `
		INSERT INTO imports (
			session_id, fingerprint, source_dir, dest_dir, prefix,
			image_count, byte_total, capture_start, capture_end, imported_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.Fingerprint, rec.SourceDir, rec.DestDir, rec.Prefix,
		rec.ImageCount, rec.ByteTotal,
		formatTime(rec.CaptureStart), formatTime(rec.CaptureEnd), formatTime(rec.ImportedAt),
	)
	if err != nil {
		return fmt.Errorf("insert import record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read insert id: %w", err)
	}
	rec.ID = id
	return nil
}

// WasImported reports whether a sequence with the given fingerprint has
// been recorded before.
func (s *Store) WasImported(ctx context.Context, fingerprint string) (bool, error) {
	ctx = ensureContext(ctx)
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM imports WHERE fingerprint = ?", fingerprint,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query fingerprint: %w", err)
	}
	return count > 0, nil
}

// List returns up to limit records, most recent first. A limit of zero or
// less returns everything.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	ctx = ensureContext(ctx)
	query := `
		SELECT id, session_id, fingerprint, source_dir, dest_dir, prefix,
			image_count, byte_total, capture_start, capture_end, imported_at
		FROM imports
		ORDER BY imported_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list import records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate import records: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		rec                                 Record
		captureStart, captureEnd, imported string
	)
	err := rows.Scan(
		&rec.ID, &rec.SessionID, &rec.Fingerprint, &rec.SourceDir, &rec.DestDir,
		&rec.Prefix, &rec.ImageCount, &rec.ByteTotal,
		&captureStart, &captureEnd, &imported,
	)
	if err != nil {
		return nil, fmt.Errorf("scan import record: %w", err)
	}
	rec.CaptureStart = parseTime(captureStart)
	rec.CaptureEnd = parseTime(captureEnd)
	rec.ImportedAt = parseTime(imported)
	return &rec, nil
}
