// Package memory provides an in-process implementation of the storage.KV interface.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/mmynk/msgboard/internal/storage"
)

// Ensure Store implements storage.KV and storage.Lister
var (
	_ storage.KV     = (*Store)(nil)
	_ storage.Lister = (*Store)(nil)
)

// Store is a map-backed KV. Values do not survive the process.
// It records every Set so tests can assert on persistence traffic.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	sets   []Call
	gets   int

	// BeforeSet, if non-nil, runs before each Set is applied.
	// A non-nil error fails the Set and leaves the stored value untouched.
	BeforeSet func(key, value string) error

	// GetErr, if non-nil, is returned by every Get.
	GetErr error
}

// Call is one recorded Set.
type Call struct {
	Key   string
	Value string
}

// New creates an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	s.gets++
	getErr := s.GetErr
	value, ok := s.values[key]
	s.mu.Unlock()
	if getErr != nil {
		return "", false, getErr
	}
	return value, ok, nil
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	hook := s.BeforeSet
	s.mu.RUnlock()
	if hook != nil {
		if err := hook(key, value); err != nil {
			s.mu.Lock()
			s.sets = append(s.sets, Call{Key: key, Value: value})
			s.mu.Unlock()
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = append(s.sets, Call{Key: key, Value: value})
	s.values[key] = value
	return nil
}

// Put stores value under key without recording a call.
// Tests use it to plant persisted state.
func (s *Store) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Sets returns the Set calls seen so far, in order.
func (s *Store) Sets() []Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Call, len(s.sets))
	copy(out, s.sets)
	return out
}

// Gets returns the number of Get calls seen so far.
func (s *Store) Gets() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gets
}

// Keys lists every stored key in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
