// Package memory provides an in-process session storage.
// Values do not survive the process; it backs tests and STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"errors"
	"sync"

	apperrors "github.com/target/storefront-client/internal/errors"
)

// Storage is a map guarded by a RWMutex.
type Storage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewStorage returns an empty Storage.
func NewStorage() *Storage {
	return &Storage{items: make(map[string]string)}
}

func (s *Storage) GetItem(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[key]
	if !ok {
		return "", apperrors.NotFoundf("storage key %q not found", key)
	}
	return v, nil
}

func (s *Storage) SetItem(_ context.Context, key, value string) error {
	if key == "" {
		return errors.New("storage key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *Storage) RemoveItem(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
