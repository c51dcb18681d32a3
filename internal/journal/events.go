package journal

import (
	"database/sql"
	"fmt"
)

// Event kinds written by the session.
const (
	KindTurn    = "turn"
	KindSwap    = "swap"
	KindHolding = "holding"
	KindReset   = "reset"
	KindReplay  = "replay"
	KindDemo    = "demo"
)

// Event is one journal row.
type Event struct {
	EventID   int64
	SessionID string
	TsMs      int64
	Kind      string
	Token     string
	Cubie     string
	Target    string
	Moves     int
	Detail    string
	Solved    bool
}

// EventRepository provides CRUD operations for events.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create appends e and returns its id.
func (r *EventRepository) Create(e Event) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO events (session_id, ts_ms, kind, token, cubie, target, moves, detail, solved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.SessionID, e.TsMs, e.Kind, nullString(e.Token), nullString(e.Cubie), nullString(e.Target), e.Moves, nullString(e.Detail), e.Solved)
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}
	return id, nil
}

// GetBySession retrieves all events for a session in time order.
func (r *EventRepository) GetBySession(sessionID string) ([]Event, error) {
	return r.query(`
		SELECT event_id, session_id, ts_ms, kind, token, cubie, target, moves, detail, solved
		FROM events
		WHERE session_id = ?
		ORDER BY ts_ms, event_id
	`, sessionID)
}

// GetByKind retrieves the events of one kind for a session.
func (r *EventRepository) GetByKind(sessionID, kind string) ([]Event, error) {
	return r.query(`
		SELECT event_id, session_id, ts_ms, kind, token, cubie, target, moves, detail, solved
		FROM events
		WHERE session_id = ? AND kind = ?
		ORDER BY ts_ms, event_id
	`, sessionID, kind)
}

// Count returns the number of events for a session.
func (r *EventRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e                            Event
			token, cubie, target, detail sql.NullString
		)
		if err := rows.Scan(&e.EventID, &e.SessionID, &e.TsMs, &e.Kind, &token, &cubie, &target, &e.Moves, &detail, &e.Solved); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Token, e.Cubie, e.Target, e.Detail = token.String, cubie.String, target.String, detail.String
		events = append(events, e)
	}
	return events, rows.Err()
}
