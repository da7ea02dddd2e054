package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrymomot/pvframework/pkg/cache"
)

// MemoryStore keeps the most recently used reports in an LRU cache.
// Reports beyond capacity are evicted.
type MemoryStore struct {
	mu  sync.Mutex
	lru *cache.LRU[string, Report]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding at most capacity reports.
// Panics if capacity is not positive.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{lru: cache.New[string, Report](capacity)}
}

func (s *MemoryStore) Save(_ context.Context, r Report) error {
	if r.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidReport)
	}
	// the existence check and the insert must not interleave with another Save
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lru.Get(r.ID); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, r.ID)
	}
	s.lru.Put(r.ID, r)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Report, error) {
	r, ok := s.lru.Get(id)
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, nil
}

func (s *MemoryStore) List(_ context.Context, f Filter) ([]Report, error) {
	var out []Report
	for _, id := range s.lru.Keys() {
		r, ok := s.lru.Get(id)
		if !ok || (f.InstanceKey != "" && r.InstanceKey != f.InstanceKey) {
			continue
		}
		out = append(out, r)
	}
	sortNewestFirst(out)
	if len(out) > f.limit() {
		out = out[:f.limit()]
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if _, ok := s.lru.Remove(id); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Len returns the number of stored reports.
func (s *MemoryStore) Len() int { return s.lru.Len() }
