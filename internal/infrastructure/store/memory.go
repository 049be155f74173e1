// Package store provides the key-value persistence behind pet profiles and favorites.
package store

import (
	"context"
	"sync"

	"github.com/mahyar-jbr/pet-ai-assistant/internal/domain"
)

// MemoryStore is a process-local KeyValueStore. Contents are lost on restart.
type MemoryStore struct {
	data  map[string]string
	mutex sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value stored under key, or domain.ErrCacheMiss
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

// Set stores value under key, replacing any previous value
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	s.data[key] = value
	s.mutex.Unlock()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mutex.Lock()
	delete(s.data, key)
	s.mutex.Unlock()
	return nil
}

// Close is a no-op so MemoryStore and RedisStore share a lifecycle
func (s *MemoryStore) Close() error {
	return nil
}
