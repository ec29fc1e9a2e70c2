package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run and tick history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id         TEXT PRIMARY KEY,
			mode       TEXT,
			source     TEXT,
			universe   TEXT,
			started_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS ticks (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			timestamp  INTEGER NOT NULL,
			regime     TEXT,
			cross_sig  TEXT,
			safe_asset TEXT,
			selected   TEXT,
			allocation TEXT,
			tick_err   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_run ON ticks(run_id, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) BeginRun(run *RunInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO runs (id, mode, source, universe, started_at)
		VALUES (?,?,?,?,?)`,
		run.ID, run.Mode, run.Source, strings.Join(run.Universe, ","), run.Started.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) RecordTick(rec *TickRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	allocJSON, err := json.Marshal(rec.Allocation)
	if err != nil {
		return fmt.Errorf("marshal allocation: %w", err)
	}
	_, err = r.db.Exec(`INSERT INTO ticks
		(run_id, timestamp, regime, cross_sig, safe_asset, selected, allocation, tick_err)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.RunID, rec.Time.Unix(), rec.Regime, rec.Cross, rec.SafeAsset,
		strings.Join(rec.Selected, ","), string(allocJSON), rec.TickErr,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
