package kv

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a map-backed Store. It is the test double for the durable
// backends and the medium behind `store.backend = "memory"`.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	used     int64
	capacity int64
	closed   bool
}

// NewMemoryStore returns an empty store. capacity <= 0 disables the ceiling.
func NewMemoryStore(capacity int64) *MemoryStore {
	return &MemoryStore{data: map[string]string{}, capacity: capacity}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *MemoryStore) SetMany(_ context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	current := make(map[string]int64, len(entries))
	for k := range entries {
		if old, ok := s.data[k]; ok {
			current[k] = entrySize(k, old)
		}
	}
	if !fits(s.capacity, s.used, current, entries) {
		return ErrQuotaExceeded
	}
	for k, v := range entries {
		s.used -= current[k]
		s.used += entrySize(k, v)
		s.data[k] = v
	}
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if old, ok := s.data[key]; ok {
		s.used -= entrySize(key, old)
		delete(s.data, key)
	}
	return nil
}

func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// Used returns the bytes currently counted against the capacity.
func (s *MemoryStore) Used() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
