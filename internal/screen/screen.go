// Package screen guards screen state against out-of-order completions. Each
// load takes a ticket; only the newest ticket may commit.
package screen

import (
	"context"
	"sync"
	"time"

	"worknest-console/internal/cache"
	"worknest-console/internal/metrics"
)

// Ticket identifies one load of a screen.
type Ticket uint64

// Screen is the live state of one view for one session.
type Screen[T any] struct {
	view string

	mu          sync.Mutex
	generation  uint64
	last        T
	hasLast     bool
	committedAt time.Time
}

// New creates an empty screen for view.
func New[T any](view string) *Screen[T] {
	return &Screen[T]{view: view}
}

// View is the screen's name.
func (s *Screen[T]) View() string {
	return s.view
}

// Begin issues a ticket and makes every earlier ticket stale.
func (s *Screen[T]) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return Ticket(s.generation)
}

// Current reports whether t is still the newest ticket.
func (s *Screen[T]) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(t) == s.generation
}

// Commit stores result if t is still the newest ticket.
func (s *Screen[T]) Commit(t Ticket, result T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if uint64(t) != s.generation {
		return false
	}
	s.last = result
	s.hasLast = true
	s.committedAt = time.Now()
	return true
}

// Last returns the most recently committed result.
func (s *Screen[T]) Last() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.hasLast
}

// Outcome is what a guarded load produced.
type Outcome[T any] struct {
	Value T
	// Stale is set when Value is an earlier commit shown because this load failed.
	Stale bool
	// Superseded is set when a newer load started before this one finished.
	Superseded bool
	Err        error
}

// Run loads under a fresh ticket and commits the result if still current.
// On failure the last committed value, if any, comes back as stale.
func Run[T any](ctx context.Context, s *Screen[T], load func(context.Context) (T, error)) Outcome[T] {
	ticket := s.Begin()
	value, err := load(ctx)
	if err != nil {
		last, ok := s.Last()
		return Outcome[T]{Value: last, Stale: ok, Superseded: !s.Current(ticket), Err: err}
	}
	if !s.Commit(ticket, value) {
		metrics.StaleResponses.WithLabelValues(s.view).Inc()
		return Outcome[T]{Value: value, Superseded: true}
	}
	return Outcome[T]{Value: value}
}

// Key addresses one screen.
type Key struct {
	SessionID string
	View      string
}

// Registry keeps the screens of every live session. Idle screens expire.
type Registry struct {
	screens cache.Cache[Key, any]
}

// NewRegistry creates a registry whose screens expire after ttl without use.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		screens: cache.NewSimpleCache[Key, any](cache.Options{
			ConcurrencySafe: true,
			DefaultTTL:      ttl,
			Sliding:         true,
		}),
	}
}

// For returns the session's screen for view, creating it on first use.
func For[T any](r *Registry, sessionID, view string) *Screen[T] {
	v := r.screens.Upsert(Key{SessionID: sessionID, View: view}, 0, func(current any, found bool) any {
		if s, ok := current.(*Screen[T]); found && ok {
			return s
		}
		return New[T](view)
	})
	return v.(*Screen[T])
}

// Forget drops every screen of a session.
func (r *Registry) Forget(sessionID string) int {
	return r.screens.DeleteWhere(func(k Key) bool { return k.SessionID == sessionID })
}

// Len is the number of live screens.
func (r *Registry) Len() int {
	return r.screens.Len()
}

// Sweep drops expired screens.
func (r *Registry) Sweep() {
	r.screens.PurgeExpired()
}
