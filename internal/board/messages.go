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

// MessageStore owns one group's messages, persisted under
// storage.MessagesKey(title).
type MessageStore struct {
	p     Persistence
	cfg   config
	title string
	key   string
	seed  []models.Message

	mu       sync.RWMutex
	messages []models.Message
	failed   bool
}

// NewMessageStore creates the message scope for sel. Until Load runs the
// list is sel.Seed.
func NewMessageStore(p Persistence, sel models.Selection, opts ...Option) *MessageStore {
	seed := models.CloneMessages(sel.Seed)
	return &MessageStore{
		p:        p,
		cfg:      newConfig(opts),
		title:    sel.Title,
		key:      storage.MessagesKey(sel.Title),
		seed:     seed,
		messages: models.CloneMessages(seed),
	}
}

// Title returns the title of the group this store belongs to.
func (s *MessageStore) Title() string {
	return s.title
}

// Key returns the storage key of this store.
func (s *MessageStore) Key() string {
	return s.key
}

// Load replaces the in-memory list with the persisted one. When nothing is
// persisted the seed is used and nothing is written. On a read or decode
// failure the list is left empty and the error is returned for the caller to log.
func (s *MessageStore) Load(ctx context.Context) error {
	msgs, ok, err := storage.Load[[]models.Message](ctx, s.p, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.failed = err != nil
	switch {
	case err != nil:
		s.cfg.metrics.Read(storage.KindMessages, readResult(err))
		s.messages = []models.Message{}
		return err
	case !ok:
		s.cfg.metrics.Read(storage.KindMessages, metrics.ResultMissing)
		s.messages = models.CloneMessages(s.seed)
		return nil
	}
	s.cfg.metrics.Read(storage.KindMessages, metrics.ResultOK)
	s.messages = models.CloneMessages(msgs)
	return nil
}

// Failed reports whether the last Load could not read the persisted list.
func (s *MessageStore) Failed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.failed
}

// AddMessage appends a message and persists the full list.
func (s *MessageStore) AddMessage(text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.cfg.metrics.ValidationFailure("empty_text")
		return models.Message{}, ErrEmptyMessage
	}

	msg := models.Message{
		ID:        s.cfg.newID(),
		Text:      text,
		Timestamp: s.cfg.timestamp(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return msg, s.persist()
}

// EditMessage replaces the text and timestamp of message id in place and
// persists the full list. The id and position of the message are kept.
func (s *MessageStore) EditMessage(id, newText string) (models.Message, error) {
	text := strings.TrimSpace(newText)
	if text == "" {
		s.cfg.metrics.ValidationFailure("empty_text")
		return models.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.messages {
		if s.messages[i].ID != id {
			continue
		}
		s.messages[i].Text = text
		s.messages[i].Timestamp = s.cfg.timestamp()
		return s.messages[i], s.persist()
	}
	return models.Message{}, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
}

// Messages returns a copy of every message in insertion order.
func (s *MessageStore) Messages() []models.Message {
	return s.Filter("")
}

// Filter returns the messages whose text contains query, ignoring case.
func (s *MessageStore) Filter(query string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.messages, query, func(m models.Message) string { return m.Text })
}

// persist must be called with s.mu held.
func (s *MessageStore) persist() error {
	value, err := storage.Encode(s.messages)
	if err != nil {
		return err
	}
	s.p.Save(s.key, value)
	return nil
}
