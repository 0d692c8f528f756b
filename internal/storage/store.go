// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ErrCorrupt is returned when a persisted value cannot be decoded.
var ErrCorrupt = errors.New("corrupt persisted value")

// KV defines the key-value persistence API the board is written against.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, memory)
// without changing the stores.
type KV interface {
	// Get returns the value stored under key.
	// ok is false when nothing has been stored under key yet.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases any resources held by the store.
	Close() error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}

// GroupsKey is the fixed key holding the whole group collection.
const GroupsKey = "@message_groups"

const messagesKeyPrefix = "@messages_"

// MessagesKey returns the key holding the message list of the group titled title.
// Groups sharing a title share a key.
func MessagesKey(title string) string {
	return messagesKeyPrefix + title
}

// Collection kinds, used as metric and log labels.
const (
	KindGroups   = "groups"
	KindMessages = "messages"
)

// KindOf returns the collection kind addressed by key.
func KindOf(key string) string {
	if strings.HasPrefix(key, messagesKeyPrefix) {
		return KindMessages
	}
	return KindGroups
}

// CountKinds returns how many of keys address each collection kind.
func CountKinds(keys []string) map[string]int {
	counts := map[string]int{KindGroups: 0, KindMessages: 0}
	for _, key := range keys {
		counts[KindOf(key)]++
	}
	return counts
}
