package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore builds an in-memory record store for testing. Records are
// held as encoded JSON so reads decode through the same path as the real
// backends.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string][]byte)}
}

func memoryKey(collection, key string) string {
	return collection + "/" + key
}

func (s *memoryStore) Create(_ context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[memoryKey(collection, key)]; exists {
		return ErrExists
	}
	s.records[memoryKey(collection, key)] = data
	return nil
}

func (s *memoryStore) Read(_ context.Context, collection, key string, out any) error {
	s.mu.RLock()
	data, ok := s.records[memoryKey(collection, key)]
	s.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func (s *memoryStore) Update(_ context.Context, collection, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[memoryKey(collection, key)]; !exists {
		return ErrNotFound
	}
	s.records[memoryKey(collection, key)] = data
	return nil
}

func (s *memoryStore) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[memoryKey(collection, key)]; !exists {
		return ErrNotFound
	}
	delete(s.records, memoryKey(collection, key))
	return nil
}
