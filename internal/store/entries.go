// ABOUTME: Entry CRUD for the SQLite store, including the insert-with-eviction transaction
// ABOUTME: Implements duplicate collapse, pin updates, usage counting and filtered listing

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = `id, content_type, text_content, image_data, image_thumb,
	content_hash, created_at, source_app, source_icon, is_pinned, usage_count`

// scanEntry reads one entry row. Works for both *sql.Row and *sql.Rows.
func scanEntry(row interface{ Scan(...any) error }) (*Entry, error) {
	var (
		e         Entry
		text      sql.NullString
		source    sql.NullString
		createdMs int64
		pinned    int
	)
	err := row.Scan(&e.ID, &e.ContentType, &text, &e.ImageData, &e.ImageThumb,
		&e.ContentHash, &createdMs, &source, &e.SourceIcon, &pinned, &e.UsageCount)
	if err != nil {
		return nil, err
	}
	e.TextContent = text.String
	e.SourceApp = source.String
	e.CreatedAt = time.UnixMilli(createdMs)
	e.IsPinned = pinned != 0
	return &e, nil
}

// InsertEntry persists a captured entry inside a single transaction.
//
// If the most recently captured entry carries the same content hash, the
// capture collapses into it: created_at is bumped and no row is inserted.
// Otherwise the entry is inserted and the oldest unpinned rows beyond
// maxHistory are evicted before the transaction commits, so readers never
// observe an over-capacity state.
func (s *SQLiteStore) InsertEntry(ctx context.Context, entry *Entry, maxHistory int) (*Entry, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Collapse check against the newest entry only: consecutive duplicates
	// re-touch the existing row rather than creating a new one.
	var (
		lastID   int64
		lastHash string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, content_hash FROM entries ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastID, &lastHash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("querying newest entry: %w", err)
	}

	createdMs := entry.CreatedAt.UnixMilli()

	if err == nil && lastHash == entry.ContentHash {
		if _, err := tx.ExecContext(ctx,
			`UPDATE entries SET created_at = ? WHERE id = ?`, createdMs, lastID,
		); err != nil {
			return nil, false, fmt.Errorf("touching duplicate entry: %w", err)
		}
		touched, err := getEntryTx(ctx, tx, lastID)
		if err != nil {
			return nil, false, err
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("committing transaction: %w", err)
		}
		s.logger.Debug("collapsed duplicate capture", "id", lastID, "hash", entry.ContentHash)
		return touched, true, nil
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO entries (content_type, text_content, image_data, image_thumb,
			content_hash, created_at, source_app, source_icon, is_pinned, usage_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0)`,
		string(entry.ContentType), nullString(entry.TextContent), entry.ImageData,
		entry.ImageThumb, entry.ContentHash, createdMs,
		nullString(entry.SourceApp), entry.SourceIcon,
	)
	if err != nil {
		return nil, false, fmt.Errorf("inserting entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, false, fmt.Errorf("reading insert id: %w", err)
	}

	if _, err := evictTx(ctx, tx, maxHistory); err != nil {
		return nil, false, err
	}

	inserted, err := getEntryTx(ctx, tx, id)
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("committing transaction: %w", err)
	}
	return inserted, false, nil
}

// evictTx deletes the oldest unpinned entries until at most max remain.
// Pinned entries never count against the cap and are never selected.
func evictTx(ctx context.Context, tx *sql.Tx, max int) (int64, error) {
	if max <= 0 {
		max = DefaultHistory
	}
	res, err := tx.ExecContext(ctx, `
		DELETE FROM entries
		WHERE is_pinned = 0 AND id NOT IN (
			SELECT id FROM entries WHERE is_pinned = 0
			ORDER BY created_at DESC, id DESC LIMIT ?
		)`, max)
	if err != nil {
		return 0, fmt.Errorf("evicting entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting evicted rows: %w", err)
	}
	return n, nil
}

// EnforceLimit runs a standalone eviction pass. Called when max_history is
// lowered via a settings update; returns the number of entries removed.
func (s *SQLiteStore) EnforceLimit(ctx context.Context, max int) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := evictTx(ctx, tx, max)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	if n > 0 {
		s.logger.Info("history cap enforced", "max", max, "evicted", n)
	}
	return n, nil
}

func getEntryTx(ctx context.Context, tx *sql.Tx, id int64) (*Entry, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	return e, nil
}

// GetEntry returns the entry with the given id, or ErrNotFound
func (s *SQLiteStore) GetEntry(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning entry: %w", err)
	}
	return e, nil
}

// DeleteEntry removes an entry by id. Returns false if no row existed.
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("counting deleted rows: %w", err)
	}
	return n > 0, nil
}

// SetPinned updates an entry's pin flag and returns the updated entry
func (s *SQLiteStore) SetPinned(ctx context.Context, id int64, pinned bool) (*Entry, error) {
	p := 0
	if pinned {
		p = 1
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET is_pinned = ? WHERE id = ?`, p, id)
	if err != nil {
		return nil, fmt.Errorf("updating pin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("counting updated rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetEntry(ctx, id)
}

// IncrementUsage bumps usage_count and returns the updated entry
func (s *SQLiteStore) IncrementUsage(ctx context.Context, id int64) (*Entry, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE entries SET usage_count = usage_count + 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("incrementing usage: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("counting updated rows: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetEntry(ctx, id)
}

// ListEntries returns entries matching the filter, pinned entries first by
// recency, then unpinned entries by recency.
func (s *SQLiteStore) ListEntries(ctx context.Context, f Filter) ([]*Entry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + entryColumns + ` FROM entries WHERE 1=1`)
	var args []any

	if q := strings.TrimSpace(f.Query); q != "" {
		// A text query only ever matches text entries; image entries match
		// solely when the query is empty.
		sb.WriteString(` AND content_type = 'text' AND lower(text_content) LIKE ?`)
		args = append(args, "%"+strings.ToLower(q)+"%")
	}

	switch f.Type {
	case TypeText, TypeImage:
		sb.WriteString(` AND content_type = ?`)
		args = append(args, string(f.Type))
	}

	if f.Source != "" {
		sb.WriteString(` AND source_app = ?`)
		args = append(args, f.Source)
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	todayStart, yesterdayStart := dayBuckets(now)
	switch f.Time {
	case TimeToday:
		sb.WriteString(` AND created_at >= ?`)
		args = append(args, todayStart)
	case TimeYesterday:
		sb.WriteString(` AND created_at >= ? AND created_at < ?`)
		args = append(args, yesterdayStart, todayStart)
	case TimeEarlier:
		sb.WriteString(` AND created_at < ?`)
		args = append(args, yesterdayStart)
	}

	sb.WriteString(` ORDER BY is_pinned DESC, created_at DESC, id DESC LIMIT ?`)
	args = append(args, maxListResults)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

// dayBuckets returns the Unix-millisecond starts of today and yesterday in
// the local time zone of now.
func dayBuckets(now time.Time) (todayStart, yesterdayStart int64) {
	local := now.Local()
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return midnight.UnixMilli(), midnight.AddDate(0, 0, -1).UnixMilli()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
