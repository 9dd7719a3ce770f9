package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/pollwatch/internal/watcher"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore creates a new SQLite-based change journal.
// Use ":memory:" for an in-memory database, or a file path for persistence.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS changes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		cycle_id TEXT NOT NULL,
		change_type TEXT NOT NULL,
		directory TEXT NOT NULL,
		filename TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_cycle_id ON changes(cycle_id);
	CREATE INDEX IF NOT EXISTS idx_timestamp ON changes(timestamp);
	CREATE INDEX IF NOT EXISTS idx_change_type ON changes(change_type);
	`
	_, err := s.db.Exec(schema)
	return err
}

// AppendCycle persists every change of one completed cycle in a single
// transaction, so a cycle is journaled either completely or not at all.
func (s *SQLiteStore) AppendCycle(ctx context.Context, cycleID string, at time.Time, changes watcher.ChangeList) error {
	if changes.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO changes (cycle_id, change_type, directory, filename, timestamp) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	ts := at.Unix()
	for _, c := range changes {
		if _, err := stmt.ExecContext(ctx, cycleID, string(c.Type), c.Directory, c.File, ts); err != nil {
			return fmt.Errorf("insert change: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetByCycleID retrieves all records for a specific cycle.
func (s *SQLiteStore) GetByCycleID(ctx context.Context, cycleID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, cycle_id, change_type, directory, filename, timestamp FROM changes WHERE cycle_id = ? ORDER BY id",
		cycleID,
	)
	if err != nil {
		return nil, fmt.Errorf("query changes: %w", err)
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

// GetRange retrieves records within a time range.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, cycle_id, change_type, directory, filename, timestamp FROM changes WHERE timestamp >= ? AND timestamp <= ? ORDER BY id",
		start.Unix(), end.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("query changes: %w", err)
	}
	defer rows.Close()

	return s.scanRecords(rows)
}

func (s *SQLiteStore) scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var r Record
		var changeType string
		var ts int64
		if err := rows.Scan(&r.ID, &r.CycleID, &changeType, &r.Directory, &r.File, &ts); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Type = watcher.ChangeType(changeType)
		r.Timestamp = time.Unix(ts, 0)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return records, nil
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
