package store

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Calculation status values.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// Record is one finished (or failed) chronology calculation.
type Record struct {
	RequestID     int
	Purpose       string
	FromYear      int
	ToYear        int
	MatchedLayers int
	Status        string // success | skipped | error
	Error         string // non-empty when Status is error or skipped
}

// Entry is a record together with the time it was last written.
type Entry struct {
	Record    Record
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory record store, keyed by request ID.
// A background goroutine (Run) periodically evicts entries that have not
// been updated within the configured TTL.
type Store struct {
	mu   sync.RWMutex
	data map[int]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[int]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// TTL returns the configured record time-to-live.
func (s *Store) TTL() time.Duration { return s.ttl }

// Put stores or replaces the record for rec.RequestID.
func (s *Store) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.RequestID] = &Entry{
		Record:    rec,
		UpdatedAt: s.now(),
	}
}

// Get returns the Entry for the given request ID and a boolean indicating
// whether an entry was found. The entry may be stale if TTL has elapsed.
func (s *Store) Get(requestID int) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[requestID]
	return e, ok
}

// List returns all entries whose UpdatedAt is within the TTL, ordered by
// request ID. Stale entries that have not yet been evicted are excluded.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Record.RequestID < out[j].Record.RequestID
	})
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for id, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// interval (minimum 1 second) so stale records go away promptly. Run
// blocks until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale records", "count", n)
			}
		}
	}
}
