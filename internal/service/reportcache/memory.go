package reportcache

import (
	"context"
	"sync"
	"time"

	"github.com/sarahkali/oracle/backend/internal/model/profile"
	"github.com/sarahkali/oracle/backend/internal/model/report"
)

type entry struct {
	report    *report.Report
	expiresAt time.Time
}

// Memory is a process-local cache with lazy eviction: an entry found past its
// expiry is deleted by the lookup that discovers it.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an in-memory cache. now may be nil.
func NewMemory(ttl time.Duration, now func() time.Time) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Memory{entries: make(map[string]entry), ttl: ttl, now: now}
}

// Lookup returns the cached report while it is fresh.
func (m *Memory) Lookup(_ context.Context, serviceID string, p profile.Profile) (*report.Report, bool) {
	key := Key(serviceID, p)

	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.report, true
}

// Store caches r for the configured TTL.
func (m *Memory) Store(_ context.Context, serviceID string, p profile.Profile, r *report.Report) error {
	key := Key(serviceID, p)

	m.mu.Lock()
	m.entries[key] = entry{report: r, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}

// Len reports how many entries are held, fresh or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
