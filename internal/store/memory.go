// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral: scores are not kept across process restarts.
//
// Characteristics:
//   - Stores *game.Session values keyed by ID in a map guarded by an RWMutex.
//   - Each entry carries its own mutex, so Update runs validate + accept for one
//     session atomically without blocking other sessions.
//   - Get returns a copy; callers never share a *game.Session with the store.
//   - Prune drops sessions not touched since a cutoff.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/destinyelysse/A-Word-Game/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get returns a copy of the session with the given ID.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Update runs fn on the stored session while holding that session's lock.
	Update(ctx context.Context, id string, fn func(s *game.Session) error) error

	// Delete removes a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Prune removes sessions last touched before cutoff and returns how many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int, error)

	// Len returns the number of live sessions.
	Len() int
}

type entry struct {
	mu      sync.Mutex // guards s and touched
	s       *game.Session
	touched time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex // guards sessions
	sessions map[string]*entry
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &entry{s: s.Clone(), touched: m.now()}
	return nil
}

func (m *memory) lookup(id string) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.sessions[id]
	return e, ok
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := m.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = m.now()
	return e.s.Clone(), nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(s *game.Session) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e, ok := m.lookup(id)
	if !ok {
		return ErrNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	// Work on a copy so a failing fn leaves the stored session untouched.
	s := e.s.Clone()
	if err := fn(s); err != nil {
		return err
	}
	e.s = s
	e.touched = m.now()
	return nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, e := range m.sessions {
		e.mu.Lock()
		stale := e.touched.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
