// Package state persists the browser session (last query and sort) so the
// next run starts where the previous one stopped.
package state

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

const saveDebounce = 500 * time.Millisecond

// Session is the saved browser state.
type Session struct {
	Query string
	Sort  string
}

// Manager reads and writes the session. Saves are debounced: only the last
// state of a burst of keystrokes reaches the database.
type Manager struct {
	db        *sql.DB
	debounce  time.Duration
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Session

	// writeMu orders writes the same way sessions were taken from pending.
	writeMu sync.Mutex
	write   func(Session) error
}

// New creates a manager over db, creating the session table if needed.
// The database stays owned by the caller.
func New(db *sql.DB) (*Manager, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	m := &Manager{db: db, debounce: saveDebounce}
	m.write = func(s Session) error { return save(m.db, s) }
	return m, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS session_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			query TEXT NOT NULL,
			sort TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Get returns the saved session, or nil on first run.
func (m *Manager) Get() (*Session, error) {
	var s Session
	err := m.db.QueryRow(`SELECT query, sort FROM session_state WHERE id = 1`).Scan(&s.Query, &s.Sort)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Save schedules s to be written once no other Save follows within the
// debounce delay.
func (m *Manager) Save(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(m.debounce, func() {
		_ = m.Flush()
	})
}

// Flush writes the pending session now, if any.
func (m *Manager) Flush() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return m.write(*pending)
}

func save(db *sql.DB, s Session) error {
	_, err := db.Exec(`
		INSERT INTO session_state (id, query, sort, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			sort = excluded.sort,
			updated_at = excluded.updated_at
	`, s.Query, s.Sort, time.Now().Unix())
	return err
}
