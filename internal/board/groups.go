package board

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mmynk/msgboard/internal/metrics"
	"github.com/mmynk/msgboard/internal/models"
	"github.com/mmynk/msgboard/internal/storage"
)

// GroupStore owns the ordered list of groups, persisted as a whole under
// storage.GroupsKey.
type GroupStore struct {
	p   Persistence
	cfg config

	mu     sync.RWMutex
	groups []models.Group
}

// NewGroupStore creates an empty GroupStore. Call Load to read persisted groups.
func NewGroupStore(p Persistence, opts ...Option) *GroupStore {
	return &GroupStore{p: p, cfg: newConfig(opts), groups: []models.Group{}}
}

// Load replaces the in-memory groups with the persisted collection.
// When nothing is persisted the list is empty. On a read or decode failure
// the list is left empty and the error is returned for the caller to log.
func (s *GroupStore) Load(ctx context.Context) error {
	groups, ok, err := storage.Load[[]models.Group](ctx, s.p, storage.GroupsKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = []models.Group{}

	switch {
	case err != nil:
		s.cfg.metrics.Read(storage.KindGroups, readResult(err))
		return err
	case !ok:
		s.cfg.metrics.Read(storage.KindGroups, metrics.ResultMissing)
		return nil
	}
	s.cfg.metrics.Read(storage.KindGroups, metrics.ResultOK)
	if groups != nil {
		s.groups = groups
	}
	return nil
}

// CreateGroup appends a new group and persists the full collection.
//
// rawMessages is a comma-separated list of initial messages. Fragments are
// trimmed and blank ones dropped; each survivor gets the id "{groupID}-{i}"
// where i is its position in the split, counted before blanks are dropped.
func (s *GroupStore) CreateGroup(title, rawMessages string) (models.Group, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.cfg.metrics.ValidationFailure("empty_title")
		return models.Group{}, ErrEmptyTitle
	}

	id := s.cfg.newID()
	stamp := s.cfg.timestamp()
	group := models.Group{
		ID:       id,
		Title:    title,
		Messages: SplitMessages(id, rawMessages, stamp),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups = append(s.groups, group)
	if err := s.persist(); err != nil {
		return group.Clone(), err
	}
	return group.Clone(), nil
}

// SplitMessages turns a comma-separated list into seed messages for groupID.
func SplitMessages(groupID, rawMessages, timestamp string) []models.Message {
	msgs := []models.Message{}
	if rawMessages == "" {
		return msgs
	}
	for i, fragment := range strings.Split(rawMessages, ",") {
		text := strings.TrimSpace(fragment)
		if text == "" {
			continue
		}
		msgs = append(msgs, models.Message{
			ID:        fmt.Sprintf("%s-%d", groupID, i),
			Text:      text,
			Timestamp: timestamp,
		})
	}
	return msgs
}

// Groups returns a copy of every group in insertion order.
func (s *GroupStore) Groups() []models.Group {
	return s.Filter("")
}

// Filter returns the groups whose title contains query, ignoring case.
func (s *GroupStore) Filter(query string) []models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := filter(s.groups, query, func(g models.Group) string { return g.Title })
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// Group returns the group with the given id.
func (s *GroupStore) Group(id string) (models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.ID == id {
			return g.Clone(), nil
		}
	}
	return models.Group{}, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
}

// Select returns what the group's message scope is opened with.
// It does not change the store.
func (s *GroupStore) Select(id string) (models.Selection, error) {
	g, err := s.Group(id)
	if err != nil {
		return models.Selection{}, err
	}
	return models.Selection{Title: g.Title, Seed: g.Messages}, nil
}

// persist must be called with s.mu held.
func (s *GroupStore) persist() error {
	value, err := storage.Encode(s.groups)
	if err != nil {
		return err
	}
	s.p.Save(storage.GroupsKey, value)
	return nil
}
