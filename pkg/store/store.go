// Package store manages SQLite persistence of the timeline editor state:
// the event list, the assertion list, and a log of past solve runs.
//
// The solver itself never touches the store — it is pure and stateless.
// The store is the editor-side collaborator that feeds it: CLI commands
// mutate events and assertions here, hand the enabled subset to the
// solver, and append each result to the solve log.
//
// SQLite runs in WAL mode so concurrent CLI invocations against the same
// timeline database stay safe.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chronoline/chronoline/pkg/model"

	_ "modernc.org/sqlite"
)

// Store manages all SQLite operations with WAL mode for concurrent access.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database and initializes the schema.
func New(path string) (*Store, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(60000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		duration   TEXT NOT NULL,
		enabled    INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assertions (
		id         TEXT PRIMARY KEY,
		source_id  TEXT NOT NULL REFERENCES events(id),
		target_id  TEXT NOT NULL REFERENCES events(id),
		relation   TEXT NOT NULL,
		confidence TEXT NOT NULL,
		enabled    INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_assertions_source ON assertions(source_id);
	CREATE INDEX IF NOT EXISTS idx_assertions_target ON assertions(target_id);

	CREATE TABLE IF NOT EXISTS solves (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		status     TEXT NOT NULL,
		elapsed_ms REAL NOT NULL,
		result     TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// CreateEvent inserts a new event with a fresh UUID and returns it.
func (s *Store) CreateEvent(name string, duration model.DurationType) (*model.Event, error) {
	e := &model.Event{
		ID:       uuid.NewString(),
		Name:     name,
		Duration: duration,
		Enabled:  true,
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err := editPolicy.run(func() error {
		_, err := s.db.Exec(
			`INSERT INTO events (id, name, duration, enabled, created_at) VALUES (?, ?, ?, 1, ?)`,
			e.ID, e.Name, string(e.Duration), now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ImportEvent inserts an event under its existing ID, preserving document
// identity so imported assertions resolve. Fails on a duplicate ID.
func (s *Store) ImportEvent(e model.Event) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return editPolicy.run(func() error {
		_, err := s.db.Exec(
			`INSERT INTO events (id, name, duration, enabled, created_at) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Name, string(e.Duration), boolInt(e.Enabled), now,
		)
		return err
	})
}

// GetEvent retrieves an event by ID.
func (s *Store) GetEvent(id string) (*model.Event, error) {
	row := s.db.QueryRow(
		`SELECT id, name, duration, enabled FROM events WHERE id = ?`, id,
	)
	var e model.Event
	var enabled int
	if err := row.Scan(&e.ID, &e.Name, (*string)(&e.Duration), &enabled); err != nil {
		return nil, err
	}
	e.Enabled = enabled != 0
	return &e, nil
}

// ListEvents returns all events in creation order. Creation order is the
// solver's input order, so listing and solving see the same sequence.
func (s *Store) ListEvents() ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT id, name, duration, enabled FROM events ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		var enabled int
		if err := rows.Scan(&e.ID, &e.Name, (*string)(&e.Duration), &enabled); err != nil {
			return nil, err
		}
		e.Enabled = enabled != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

// SetEventEnabled flips an event's enabled bit.
func (s *Store) SetEventEnabled(id string, enabled bool) error {
	return editPolicy.run(func() error {
		res, err := s.db.Exec(`UPDATE events SET enabled = ? WHERE id = ?`, boolInt(enabled), id)
		if err != nil {
			return err
		}
		return requireRow(res, "event", id)
	})
}

// DeleteEvent removes an event and every assertion that references it.
func (s *Store) DeleteEvent(id string) error {
	return editPolicy.run(func() error {
		if _, err := s.db.Exec(
			`DELETE FROM assertions WHERE source_id = ? OR target_id = ?`, id, id,
		); err != nil {
			return err
		}
		res, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireRow(res, "event", id)
	})
}

// ---------------------------------------------------------------------------
// Assertions
// ---------------------------------------------------------------------------

// CreateAssertion inserts a new assertion between two existing events and
// returns it. The relation and confidence must already be validated by the
// caller; the referenced events must exist.
func (s *Store) CreateAssertion(sourceID, targetID string, rel model.Relation, conf model.Confidence) (*model.Assertion, error) {
	if _, err := s.GetEvent(sourceID); err != nil {
		return nil, fmt.Errorf("source event %q: %w", sourceID, err)
	}
	if _, err := s.GetEvent(targetID); err != nil {
		return nil, fmt.Errorf("target event %q: %w", targetID, err)
	}
	a := &model.Assertion{
		ID:         uuid.NewString(),
		SourceID:   sourceID,
		TargetID:   targetID,
		Relation:   rel,
		Confidence: conf,
		Enabled:    true,
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	err := editPolicy.run(func() error {
		_, err := s.db.Exec(
			`INSERT INTO assertions (id, source_id, target_id, relation, confidence, enabled, created_at)
			 VALUES (?, ?, ?, ?, ?, 1, ?)`,
			a.ID, a.SourceID, a.TargetID, string(a.Relation), string(a.Confidence), now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ImportAssertion inserts an assertion under its existing ID. Fails on a
// duplicate ID.
func (s *Store) ImportAssertion(a model.Assertion) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return editPolicy.run(func() error {
		_, err := s.db.Exec(
			`INSERT INTO assertions (id, source_id, target_id, relation, confidence, enabled, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.SourceID, a.TargetID, string(a.Relation), string(a.Confidence), boolInt(a.Enabled), now,
		)
		return err
	})
}

// GetAssertion retrieves an assertion by ID.
func (s *Store) GetAssertion(id string) (*model.Assertion, error) {
	row := s.db.QueryRow(
		`SELECT id, source_id, target_id, relation, confidence, enabled FROM assertions WHERE id = ?`, id,
	)
	var a model.Assertion
	var enabled int
	if err := row.Scan(&a.ID, &a.SourceID, &a.TargetID,
		(*string)(&a.Relation), (*string)(&a.Confidence), &enabled); err != nil {
		return nil, err
	}
	a.Enabled = enabled != 0
	return &a, nil
}

// ListAssertions returns all assertions in creation order.
func (s *Store) ListAssertions() ([]model.Assertion, error) {
	rows, err := s.db.Query(
		`SELECT id, source_id, target_id, relation, confidence, enabled
		 FROM assertions ORDER BY rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assertions []model.Assertion
	for rows.Next() {
		var a model.Assertion
		var enabled int
		if err := rows.Scan(&a.ID, &a.SourceID, &a.TargetID,
			(*string)(&a.Relation), (*string)(&a.Confidence), &enabled); err != nil {
			return nil, err
		}
		a.Enabled = enabled != 0
		assertions = append(assertions, a)
	}
	return assertions, rows.Err()
}

// SetAssertionEnabled flips an assertion's enabled bit.
func (s *Store) SetAssertionEnabled(id string, enabled bool) error {
	return editPolicy.run(func() error {
		res, err := s.db.Exec(`UPDATE assertions SET enabled = ? WHERE id = ?`, boolInt(enabled), id)
		if err != nil {
			return err
		}
		return requireRow(res, "assertion", id)
	})
}

// DeleteAssertion removes an assertion.
func (s *Store) DeleteAssertion(id string) error {
	return editPolicy.run(func() error {
		res, err := s.db.Exec(`DELETE FROM assertions WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return requireRow(res, "assertion", id)
	})
}

// ---------------------------------------------------------------------------
// Solve log
// ---------------------------------------------------------------------------

// SolveRun is one logged solver invocation.
type SolveRun struct {
	ID        int64        `json:"id"`
	Status    model.Status `json:"status"`
	ElapsedMS float64      `json:"elapsed_ms"`
	Result    model.Result `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}

// RecordSolve appends a solver result to the log and returns the row ID.
func (s *Store) RecordSolve(res model.Result) (int64, error) {
	blob, err := json.Marshal(res)
	if err != nil {
		return 0, fmt.Errorf("encode result: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	var lastID int64
	err = logPolicy.run(func() error {
		r, err := s.db.Exec(
			`INSERT INTO solves (status, elapsed_ms, result, created_at) VALUES (?, ?, ?, ?)`,
			string(res.Status), res.ElapsedMS, string(blob), now,
		)
		if err != nil {
			return err
		}
		lastID, err = r.LastInsertId()
		return err
	})
	return lastID, err
}

// ListSolves returns the most recent solve runs, newest first.
func (s *Store) ListSolves(limit int) ([]SolveRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, status, elapsed_ms, result, created_at
		 FROM solves ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []SolveRun
	for rows.Next() {
		var run SolveRun
		var blob, createdStr string
		if err := rows.Scan(&run.ID, (*string)(&run.Status), &run.ElapsedMS, &blob, &createdStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(blob), &run.Result); err != nil {
			return nil, fmt.Errorf("decode result for solve %d: %w", run.ID, err)
		}
		var parseErr error
		run.CreatedAt, parseErr = time.Parse(time.RFC3339Nano, createdStr)
		if parseErr != nil {
			return nil, fmt.Errorf("parse created time for solve %d: %w", run.ID, parseErr)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountSolves returns the total number of logged solves.
func (s *Store) CountSolves() int64 {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM solves`).Scan(&count); err != nil {
		return 0
	}
	return count
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// requireRow converts a zero-row update or delete into a not-found error.
func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %q not found", kind, id)
	}
	return nil
}
