package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("journal: not found")

// Fixed width so that timestamps sort as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Session is one run of the program.
type Session struct {
	SessionID  string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	Notes      *string
	AppVersion *string
}

// SessionRepository provides CRUD operations for sessions.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a session. An empty id gets a fresh UUID.
func (r *SessionRepository) Create(id, notes, appVersion string) (string, error) {
	if id == "" {
		id = uuid.New().String()
	}
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO sessions (session_id, started_at, notes, app_version)
		VALUES (?, ?, ?, ?)
	`, id, startedAt.Format(timeFormat), nullString(notes), nullString(appVersion))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// End marks a session as finished. The start time is read and the end
// written in one transaction.
func (r *SessionRepository) End(id string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		s, err := getSession(tx, id)
		if err != nil {
			return err
		}
		endedAt := time.Now().UTC()
		durationMs := endedAt.Sub(s.StartedAt).Milliseconds()

		_, err = tx.Exec(`
			UPDATE sessions
			SET ended_at = ?, duration_ms = ?
			WHERE session_id = ?
		`, endedAt.Format(timeFormat), durationMs, id)
		if err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}
		return nil
	})
}

// Get retrieves a session by id.
func (r *SessionRepository) Get(id string) (*Session, error) {
	return getSession(r.db, id)
}

type rowQuerier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func getSession(q rowQuerier, id string) (*Session, error) {
	row := q.QueryRow(`
		SELECT session_id, started_at, ended_at, duration_ms, notes, app_version
		FROM sessions
		WHERE session_id = ?
	`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// List returns the most recent sessions, newest first. limit <= 0 means
// no limit.
func (r *SessionRepository) List(limit int) ([]Session, error) {
	query := `
		SELECT session_id, started_at, ended_at, duration_ms, notes, app_version
		FROM sessions
		ORDER BY started_at DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// Delete removes a session and its events together. Deleting an unknown
// session returns ErrNotFound.
func (r *SessionRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM events WHERE session_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete events: %w", err)
		}
		res, err := tx.Exec("DELETE FROM sessions WHERE session_id = ?", id)
		if err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: session %s", ErrNotFound, id)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var (
		s       Session
		started string
		ended   sql.NullString
		dur     sql.NullInt64
		notes   sql.NullString
		version sql.NullString
	)
	if err := row.Scan(&s.SessionID, &started, &ended, &dur, &notes, &version); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeFormat, started)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	s.StartedAt = t
	if ended.Valid {
		if et, err := time.Parse(timeFormat, ended.String); err == nil {
			s.EndedAt = &et
		}
	}
	if dur.Valid {
		s.DurationMs = &dur.Int64
	}
	if notes.Valid {
		s.Notes = &notes.String
	}
	if version.Valid {
		s.AppVersion = &version.String
	}
	return &s, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
