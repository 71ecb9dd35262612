// Package history persists dupe-check outcomes so operators can review
// past skip/trump decisions per tracker. The store is a single SQLite
// database guarded by a sibling lock file against concurrent tugboat
// invocations.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"tugboat/internal/config"
)

// Record is one tracker's dupe-check outcome for one run.
type Record struct {
	ID            int64
	RunID         string
	Tracker       string
	UploadName    string
	Candidates    int
	Survivors     int
	MatchedName   string
	MatchedReason string
	TrumpableID   string
	TrumpTargets  int
	CheckedAt     time.Time
}

// Store manages outcome persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS dupe_checks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    tracker TEXT NOT NULL,
    upload_name TEXT NOT NULL,
    candidates INTEGER NOT NULL,
    survivors INTEGER NOT NULL,
    matched_name TEXT NOT NULL DEFAULT '',
    matched_reason TEXT NOT NULL DEFAULT '',
    trumpable_id TEXT NOT NULL DEFAULT '',
    trump_targets INTEGER NOT NULL DEFAULT 0,
    checked_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_dupe_checks_run ON dupe_checks(run_id);
CREATE INDEX IF NOT EXISTS idx_dupe_checks_tracker ON dupe_checks(tracker);
`

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("history database %s is locked by another tugboat instance", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: dbPath}, nil
}

// Close releases the database connection and the instance lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Append persists one outcome record.
func (s *Store) Append(ctx context.Context, rec Record) error {
	checkedAt := rec.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO dupe_checks (
            run_id, tracker, upload_name, candidates, survivors,
            matched_name, matched_reason, trumpable_id, trump_targets, checked_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Tracker,
		rec.UploadName,
		rec.Candidates,
		rec.Survivors,
		rec.MatchedName,
		rec.MatchedReason,
		rec.TrumpableID,
		rec.TrumpTargets,
		checkedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert dupe check: %w", err)
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, run_id, tracker, upload_name, candidates, survivors,
            matched_name, matched_reason, trumpable_id, trump_targets, checked_at
         FROM dupe_checks ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query dupe checks: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var checkedAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.RunID,
			&rec.Tracker,
			&rec.UploadName,
			&rec.Candidates,
			&rec.Survivors,
			&rec.MatchedName,
			&rec.MatchedReason,
			&rec.TrumpableID,
			&rec.TrumpTargets,
			&checkedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dupe check: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, checkedAt); parseErr == nil {
			rec.CheckedAt = parsed
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
