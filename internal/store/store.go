// Package store persists the session state and the per-cycle log in SQLite.
// The state is a single JSON row; the cycle log is append-only and keeps the
// contract essentials of every measurement for later inspection and replay.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"semgate/internal/session"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS session_state (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	state_json  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cycle_log (
	id            TEXT PRIMARY KEY,
	cycle         INTEGER NOT NULL,
	intent        TEXT NOT NULL,
	verdict       TEXT NOT NULL,
	primary_code  TEXT,
	metrics_json  TEXT NOT NULL,
	params_json   TEXT NOT NULL,
	created_at    TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct
// Store manages semgate persistence in SQLite.
type Store struct {
	db *sql.DB
}

// #endregion store-struct

// #region constructor
// Open opens the database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// #endregion constructor

// #region state
// LoadState reads the persisted session state, or returns a fresh one when
// nothing has been saved yet. Caps are reapplied after deserialization since
// they do not round-trip through JSON.
func (s *Store) LoadState(caps session.Caps) (*session.State, error) {
	var raw string
	err := s.db.QueryRow(`SELECT state_json FROM session_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return session.New(caps), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	st := &session.State{}
	if err := json.Unmarshal([]byte(raw), st); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	st.SetCaps(caps)
	return st, nil
}

// SaveState upserts the single state row.
func (s *Store) SaveState(st *session.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO session_state (id, state_json, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET state_json = excluded.state_json, updated_at = excluded.updated_at`,
		string(raw), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// #endregion state

// #region cycle-log
// CycleRecord is one appended measurement cycle.
type CycleRecord struct {
	ID          string
	Cycle       int
	Intent      string
	Verdict     string
	PrimaryCode string
	MetricsJSON string
	ParamsJSON  string
	CreatedAt   time.Time
}

// AppendCycle inserts one cycle record, assigning ID and timestamp when the
// caller left them empty.
func (s *Store) AppendCycle(rec CycleRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var codePtr interface{}
	if rec.PrimaryCode != "" {
		codePtr = rec.PrimaryCode
	}
	_, err := s.db.Exec(
		`INSERT INTO cycle_log (id, cycle, intent, verdict, primary_code, metrics_json, params_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Cycle, rec.Intent, rec.Verdict, codePtr,
		rec.MetricsJSON, rec.ParamsJSON, rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append cycle: %w", err)
	}
	return nil
}

// ListCycles returns the most recent cycle records, newest first.
func (s *Store) ListCycles(limit int) ([]CycleRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, cycle, intent, verdict, primary_code, metrics_json, params_json, created_at
		 FROM cycle_log ORDER BY cycle DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	defer rows.Close()

	var records []CycleRecord
	for rows.Next() {
		var rec CycleRecord
		var codePtr sql.NullString
		var createdStr string
		if err := rows.Scan(&rec.ID, &rec.Cycle, &rec.Intent, &rec.Verdict, &codePtr, &rec.MetricsJSON, &rec.ParamsJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if codePtr.Valid {
			rec.PrimaryCode = codePtr.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// #endregion cycle-log
