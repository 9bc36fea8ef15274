// Package audit keeps a SQLite journal of mutating task commands.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one journal record.
type Entry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	TaskID     int       `json:"task_id,omitempty"`
	InputsHash string    `json:"inputs_hash"`
	Outcome    string    `json:"outcome"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Journal provides access to the audit database.
type Journal struct {
	db *sql.DB
}

// Open creates or opens the journal at dbPath and runs migrations.
func Open(dbPath string) (*Journal, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Ping checks the database connection is alive.
func (j *Journal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		task_id INTEGER,
		inputs_hash TEXT NOT NULL,
		outcome TEXT NOT NULL,
		details TEXT,
		timestamp DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_task_id ON entries(task_id);
	CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Write appends an entry. ID and Timestamp are filled when empty.
func (j *Journal) Write(e *Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	var taskID sql.NullInt64
	if e.TaskID > 0 {
		taskID = sql.NullInt64{Int64: int64(e.TaskID), Valid: true}
	}

	_, err := j.db.Exec(
		`INSERT INTO entries (id, action, task_id, inputs_hash, outcome, details, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action, taskID, e.InputsHash, e.Outcome, e.Details, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A positive taskID
// restricts the result to that task.
func (j *Journal) Recent(limit, taskID int) ([]Entry, error) {
	query := `SELECT id, action, task_id, inputs_hash, outcome, details, timestamp FROM entries`
	var args []interface{}

	if taskID > 0 {
		query += ` WHERE task_id = ?`
		args = append(args, taskID)
	}
	query += ` ORDER BY timestamp DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var id sql.NullInt64
		var details sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &id, &e.InputsHash, &e.Outcome, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if id.Valid {
			e.TaskID = int(id.Int64)
		}
		if details.Valid {
			e.Details = details.String
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
