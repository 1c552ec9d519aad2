// Package memory is an in-process KeyValueStore used for tests and the
// testing environment.
package memory

import (
	"context"
	"sort"
	"sync"
)

// Store keeps values in a map. The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	values map[string]string

	// FailWrites, when set, is returned by Set and Delete.
	FailWrites error
	// FailReads, when set, is returned by Get and Keys.
	FailReads error
}

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return "", false, s.FailReads
	}
	value, found := s.values[key]
	return value, found, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	s.values[key] = value
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.values, key)
	return nil
}

// Keys lists stored keys in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
