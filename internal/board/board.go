// Package board implements the group list and the per-group message lists.
//
// Both stores follow the same pattern: load once on activation, apply each
// mutation in memory first, then write the whole collection through a
// Persistence. Reads never touch storage after Load.
package board

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/msgboard/internal/metrics"
	"github.com/mmynk/msgboard/internal/storage"
)

var (
	// ErrEmptyTitle is returned when a group title is blank after trimming.
	ErrEmptyTitle = errors.New("please enter a group name")
	// ErrEmptyMessage is returned when message text is blank after trimming.
	ErrEmptyMessage = errors.New("please enter a message")
	// ErrGroupNotFound is returned when a group id is unknown.
	ErrGroupNotFound = errors.New("group not found")
	// ErrMessageNotFound is returned when a message id is unknown to its group.
	ErrMessageNotFound = errors.New("message not found")
)

// IsValidation reports whether err is a user-facing validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrEmptyMessage)
}

// Persistence is the storage the stores read from and write through.
// Save must not block on I/O; storage.Writer is the production implementation.
type Persistence interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Save(key, value string)
}

// TimestampLayout renders message timestamps as local wall-clock time.
const TimestampLayout = "3:04:05 PM"

type config struct {
	now     func() time.Time
	newID   func() string
	metrics *metrics.Metrics
}

// Option configures a store.
type Option func(*config)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithIDGenerator overrides how group and message ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(c *config) { c.newID = newID }
}

// WithMetrics records validation failures and reads on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

func newConfig(opts []Option) config {
	c := config{now: time.Now, newID: newID}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c config) timestamp() string {
	return c.now().Format(TimestampLayout)
}

// newID returns a time-ordered UUIDv7, falling back to a random UUID.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func readResult(err error) string {
	if errors.Is(err, storage.ErrCorrupt) {
		return metrics.ResultCorrupt
	}
	return metrics.ResultError
}

// matches reports whether field contains query, ignoring case.
func matches(field, query string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(query))
}

// filter returns the items whose field contains query, ignoring case.
// Order is preserved. An empty query matches everything.
func filter[T any](items []T, query string, field func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matches(field(item), query) {
			out = append(out, item)
		}
	}
	return out
}
