// Package session keeps per-user funnel state in memory.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarahkali/oracle/backend/internal/model/chat"
)

// DefaultIdleTTL is how long an idle session survives.
const DefaultIdleTTL = 2 * time.Hour

var log = logrus.WithField("component", "session")

// Store owns every user session. Stale sessions are swept lazily on Get and
// by the optional janitor.
type Store struct {
	mu       sync.Mutex
	sessions map[string]chat.Session
	locks    map[string]*userLock
	ttl      time.Duration
	now      func() time.Time
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates an empty store. A non-positive ttl falls back to DefaultIdleTTL.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultIdleTTL
	}
	s := &Store{
		sessions: make(map[string]chat.Session),
		locks:    make(map[string]*userLock),
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the user's session, creating a fresh one when it is missing
// or has been idle past the TTL.
func (s *Store) Get(userID string) chat.Session {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked(now)
	session, ok := s.sessions[userID]
	if !ok {
		session = chat.NewSession(userID, now)
		s.sessions[userID] = session
	}
	return session
}

// Update applies mutate to the current session and refreshes LastActivity.
func (s *Store) Update(userID string, mutate func(*chat.Session)) chat.Session {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok || session.Expired(now, s.ttl) {
		session = chat.NewSession(userID, now)
	}
	if mutate != nil {
		mutate(&session)
	}
	session.UserID = userID
	session.LastActivity = now
	s.sessions[userID] = session
	return session
}

// Reset returns the session to the start of the funnel.
func (s *Store) Reset(userID string) chat.Session {
	now := s.now()
	session := chat.NewSession(userID, now)

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()
	return session
}

// Lock serialises message processing for one user and returns the unlock
// function. Locks for distinct users never contend.
func (s *Store) Lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Unlock()
			s.mu.Lock()
			l.refs--
			if l.refs == 0 {
				delete(s.locks, userID)
			}
			s.mu.Unlock()
		})
	}
}

// Sweep evicts every session idle past the TTL at now and reports how many
// were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(now)
}

func (s *Store) sweepLocked(now time.Time) int {
	removed := 0
	for id, session := range s.sessions {
		if session.Expired(now, s.ttl) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RunJanitor sweeps on every tick until ctx is cancelled.
func (s *Store) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				log.WithField("evicted", n).Info("swept idle sessions")
			}
		}
	}
}
