package journal

import (
	"time"
)

// Journal ties the repositories together for one database.
type Journal struct {
	db       *DB
	sessions *SessionRepository
	events   *EventRepository
	now      func() time.Time
}

// New wraps an open database.
func New(db *DB) *Journal {
	return &Journal{
		db:       db,
		sessions: NewSessionRepository(db),
		events:   NewEventRepository(db),
		now:      time.Now,
	}
}

// OpenJournal opens the database at path.
func OpenJournal(path string) (*Journal, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// Start records the beginning of session id.
func (j *Journal) Start(id, notes, appVersion string) error {
	_, err := j.sessions.Create(id, notes, appVersion)
	return err
}

// Append records e, stamping it with the current time if TsMs is zero.
func (j *Journal) Append(e Event) error {
	if e.TsMs == 0 {
		e.TsMs = j.now().UnixMilli()
	}
	_, err := j.events.Create(e)
	return err
}

// End marks session id as finished.
func (j *Journal) End(id string) error {
	return j.sessions.End(id)
}

// List returns up to limit recent sessions.
func (j *Journal) List(limit int) ([]Session, error) {
	return j.sessions.List(limit)
}

// Events returns the events of session id.
func (j *Journal) Events(id string) ([]Event, error) {
	return j.events.GetBySession(id)
}

// EventsOfKind returns the events of session id with the given kind.
func (j *Journal) EventsOfKind(id, kind string) ([]Event, error) {
	return j.events.GetByKind(id, kind)
}

// EventCount returns the number of events recorded for session id.
func (j *Journal) EventCount(id string) (int, error) {
	return j.events.Count(id)
}

// Summary computes the summary of session id.
func (j *Journal) Summary(id string) (Summary, error) {
	s, err := j.sessions.Get(id)
	if err != nil {
		return Summary{}, err
	}
	events, err := j.events.GetBySession(id)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(*s, events), nil
}

// Sessions exposes the session repository.
func (j *Journal) Sessions() *SessionRepository {
	return j.sessions
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
