package board

import (
	"context"
	"sync"

	"github.com/mmynk/msgboard/internal/models"
)

// Scopes keeps the open MessageStore of each group, keyed by group id.
//
// Entering a group always builds a fresh store from the selection's seed and
// loads it, so two groups sharing a title share persisted messages but never
// each other's seed. Storage reads happen outside the registry lock.
type Scopes struct {
	p    Persistence
	opts []Option

	mu     sync.Mutex
	scopes map[string]*MessageStore
}

// NewScopes creates an empty registry. opts are applied to every MessageStore.
func NewScopes(p Persistence, opts ...Option) *Scopes {
	return &Scopes{p: p, opts: opts, scopes: make(map[string]*MessageStore)}
}

// Enter opens a new scope for groupID seeded with sel and loads it, replacing
// any scope already open for the group. A load error is returned together
// with the usable, empty store.
func (s *Scopes) Enter(ctx context.Context, groupID string, sel models.Selection) (*MessageStore, error) {
	store := NewMessageStore(s.p, sel, s.opts...)
	err := store.Load(ctx)

	s.mu.Lock()
	s.scopes[groupID] = store
	s.mu.Unlock()
	return store, err
}

// Open returns the scope already open for groupID, or enters it with sel.
// A scope whose load failed is entered again.
func (s *Scopes) Open(ctx context.Context, groupID string, sel models.Selection) (*MessageStore, error) {
	s.mu.Lock()
	store, ok := s.scopes[groupID]
	s.mu.Unlock()
	if ok && !store.Failed() {
		return store, nil
	}
	return s.Enter(ctx, groupID, sel)
}

// Len returns the number of open scopes.
func (s *Scopes) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scopes)
}
