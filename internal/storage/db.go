package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"recipegraph/internal"
)

const latestRunKey = "latest_run"

// ErrLocked is returned by Open when another process holds the database.
var ErrLocked = errors.New("database is locked by another run")

type DB struct {
	conn *sql.DB
	lock *flock.Flock
}

// Open opens the record store at path and takes an exclusive lock on
// path+".lock" for the lifetime of the handle.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		_ = lock.Unlock()
		return nil, err
	}

	db := &DB{conn: conn, lock: lock}
	if err := db.init(); err != nil {
		_ = conn.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	err := d.conn.Close()
	if uerr := d.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  startedAt TEXT NOT NULL,
  finishedAt TEXT NOT NULL,
  pages INTEGER NOT NULL,
  missingPages INTEGER NOT NULL,
  elements INTEGER NOT NULL,
  excluded INTEGER NOT NULL,
  malformed INTEGER NOT NULL,
  drafts INTEGER NOT NULL,
  transformations INTEGER NOT NULL,
  duplicates INTEGER NOT NULL,
  items INTEGER NOT NULL,
  warnings INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
  runId TEXT NOT NULL,
  seq INTEGER NOT NULL,
  name TEXT NOT NULL,
  url TEXT NOT NULL,
  PRIMARY KEY(runId, seq),
  FOREIGN KEY(runId) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS transformations (
  runId TEXT NOT NULL,
  seq INTEGER NOT NULL,
  type TEXT NOT NULL,
  inputsJson TEXT NOT NULL,
  outputsJson TEXT NOT NULL,
  category TEXT,
  metadataJson TEXT NOT NULL,
  PRIMARY KEY(runId, seq),
  FOREIGN KEY(runId) REFERENCES runs(id)
);
CREATE INDEX IF NOT EXISTS idx_transformations_type ON transformations(runId, type);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceRun stores a run and its records in one transaction, replacing any
// rows previously stored under the same run id, and marks it as the latest run.
func (d *DB) ReplaceRun(run internal.RunSummary, items []internal.ItemRecord, ts []internal.TransformationRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		`DELETE FROM items WHERE runId = ?`,
		`DELETE FROM transformations WHERE runId = ?`,
		`DELETE FROM runs WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, run.ID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
INSERT INTO runs (id, startedAt, finishedAt, pages, missingPages, elements, excluded, malformed,
                  drafts, transformations, duplicates, items, warnings)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Pages, run.MissingPages, run.Elements, run.Excluded, run.Malformed,
		run.Drafts, run.Transformations, run.Duplicates, run.Items, run.Warnings); err != nil {
		return err
	}

	itemStmt, err := tx.Prepare(`INSERT INTO items (runId, seq, name, url) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer itemStmt.Close()
	for i, it := range items {
		if _, err := itemStmt.Exec(run.ID, i, it.Name, it.URL); err != nil {
			return err
		}
	}

	tStmt, err := tx.Prepare(`
INSERT INTO transformations (runId, seq, type, inputsJson, outputsJson, category, metadataJson)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer tStmt.Close()
	for i, t := range ts {
		if _, err := tStmt.Exec(run.ID, i, t.Type, t.Inputs, t.Outputs, t.Category, t.Metadata); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, latestRunKey, run.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *DB) ListRuns() ([]internal.RunSummary, error) {
	rows, err := d.conn.Query(`
SELECT id, startedAt, finishedAt, pages, missingPages, elements, excluded, malformed,
       drafts, transformations, duplicates, items, warnings
FROM runs ORDER BY startedAt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunSummary
	for rows.Next() {
		var r internal.RunSummary
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Pages, &r.MissingPages, &r.Elements, &r.Excluded,
			&r.Malformed, &r.Drafts, &r.Transformations, &r.Duplicates, &r.Items, &r.Warnings); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestRun returns the id of the most recently stored run, or "" if none.
func (d *DB) LatestRun() (string, error) {
	value, err := d.GetMetadata(latestRunKey)
	if err != nil || value == nil {
		return "", err
	}
	return *value, nil
}

// Records returns the stored records of a run in their original order.
func (d *DB) Records(runID string) ([]internal.ItemRecord, []internal.TransformationRecord, error) {
	var exists int
	if err := d.conn.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, nil, err
	}
	if exists == 0 {
		return nil, nil, fmt.Errorf("run not found: %s", runID)
	}

	itemRows, err := d.conn.Query(`SELECT name, url FROM items WHERE runId = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer itemRows.Close()

	items := []internal.ItemRecord{}
	for itemRows.Next() {
		var it internal.ItemRecord
		if err := itemRows.Scan(&it.Name, &it.URL); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, nil, err
	}

	tRows, err := d.conn.Query(`
SELECT type, inputsJson, outputsJson, category, metadataJson
FROM transformations WHERE runId = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, nil, err
	}
	defer tRows.Close()

	ts := []internal.TransformationRecord{}
	for tRows.Next() {
		var t internal.TransformationRecord
		if err := tRows.Scan(&t.Type, &t.Inputs, &t.Outputs, &t.Category, &t.Metadata); err != nil {
			return nil, nil, err
		}
		ts = append(ts, t)
	}
	return items, ts, tRows.Err()
}

// CountByType reports how many transformations of each type a run holds.
func (d *DB) CountByType(runID string) (map[string]int, error) {
	rows, err := d.conn.Query(`SELECT type, COUNT(*) FROM transformations WHERE runId = ? GROUP BY type`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[t] = n
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
