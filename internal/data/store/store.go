// Package store is the durable persistence gateway for session records,
// backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/twlf/activity-tracker/internal/core/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_time TEXT NOT NULL,
	duration_sec REAL NOT NULL,
	app TEXT NOT NULL,
	filetab TEXT NOT NULL,
	activity_desc TEXT NOT NULL DEFAULT '',
	project TEXT,
	tags TEXT,
	matter_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
`

// Store provides append/query/update/delete over persisted sessions. Safe for
// concurrent use from the tracker cadence and UI-driven reads and writes.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append inserts a new session record and returns its id.
func (s *Store) Append(ctx context.Context, rec model.PersistedSession) (int64, error) {
	const stmt = `
INSERT INTO sessions
	(date, start_time, end_time, duration_sec, app, filetab, activity_desc, project, tags, matter_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	res, err := s.db.ExecContext(ctx, stmt,
		rec.Date,
		rec.StartTime,
		rec.EndTime,
		rec.DurationSec,
		rec.App,
		rec.FileTab,
		rec.Description,
		nullable(rec.Project),
		nullable(rec.Tags),
		nullable(rec.MatterID),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session id: %w", err)
	}
	return id, nil
}

// Query retrieves sessions in a date range, optionally filtered, ordered by
// (date, start_time).
func (s *Store) Query(ctx context.Context, f model.Filter) ([]model.PersistedSession, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, date, start_time, end_time, duration_sec, app, filetab, activity_desc, project, tags, matter_id FROM sessions WHERE date >= ?`)
	args := []interface{}{f.Start.Format(model.DateLayout)}

	if !f.End.IsZero() {
		sb.WriteString(" AND date <= ?")
		args = append(args, f.End.Format(model.DateLayout))
	}
	if f.App != "" {
		sb.WriteString(" AND app = ?")
		args = append(args, f.App)
	}
	if f.Project != "" {
		sb.WriteString(" AND project = ?")
		args = append(args, f.Project)
	}
	if f.TagSubstring != "" {
		sb.WriteString(" AND tags LIKE ?")
		args = append(args, "%"+f.TagSubstring+"%")
	}
	if f.MatterID != "" {
		sb.WriteString(" AND matter_id = ?")
		args = append(args, f.MatterID)
	}
	sb.WriteString(" ORDER BY date, start_time")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var result []model.PersistedSession
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// Get fetches one session by id.
func (s *Store) Get(ctx context.Context, id int64) (model.PersistedSession, error) {
	const stmt = `SELECT id, date, start_time, end_time, duration_sec, app, filetab, activity_desc, project, tags, matter_id FROM sessions WHERE id = ?`
	row := s.db.QueryRowContext(ctx, stmt, id)
	rec, err := scanSession(row)
	if err == sql.ErrNoRows {
		return model.PersistedSession{}, fmt.Errorf("session %d not found", id)
	}
	return rec, err
}

// UpdateFields applies a partial update to an existing session. Nil fields
// are left unchanged; an empty update is a no-op.
func (s *Store) UpdateFields(ctx context.Context, id int64, u model.FieldUpdate) error {
	var assignments []string
	var args []interface{}

	set := func(col string, val interface{}) {
		assignments = append(assignments, col+" = ?")
		args = append(args, val)
	}
	if u.Date != nil {
		set("date", *u.Date)
	}
	if u.StartTime != nil {
		set("start_time", *u.StartTime)
	}
	if u.EndTime != nil {
		set("end_time", *u.EndTime)
	}
	if u.DurationSec != nil {
		set("duration_sec", *u.DurationSec)
	}
	if u.App != nil {
		set("app", *u.App)
	}
	if u.FileTab != nil {
		set("filetab", *u.FileTab)
	}
	if u.Description != nil {
		set("activity_desc", *u.Description)
	}
	if u.Project != nil {
		set("project", *u.Project)
	}
	if u.Tags != nil {
		set("tags", *u.Tags)
	}
	if u.MatterID != nil {
		set("matter_id", *u.MatterID)
	}
	if len(assignments) == 0 {
		return nil
	}

	args = append(args, id)
	stmt := fmt.Sprintf("UPDATE sessions SET %s WHERE id = ?", strings.Join(assignments, ", "))
	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %d not found", id)
	}
	return nil
}

// Delete removes a session record entirely.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %d not found", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (model.PersistedSession, error) {
	var rec model.PersistedSession
	var project, tags, matterID sql.NullString
	err := row.Scan(
		&rec.ID,
		&rec.Date,
		&rec.StartTime,
		&rec.EndTime,
		&rec.DurationSec,
		&rec.App,
		&rec.FileTab,
		&rec.Description,
		&project,
		&tags,
		&matterID,
	)
	if err != nil {
		return model.PersistedSession{}, err
	}
	rec.Project = project.String
	rec.Tags = tags.String
	rec.MatterID = matterID.String
	return rec, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
