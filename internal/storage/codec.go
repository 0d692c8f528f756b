package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// Encode serializes a collection into its persisted JSON text.
func Encode[T any](v T) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return string(data), nil
}

// Decode parses persisted JSON text into a T.
// Malformed input yields an error wrapping ErrCorrupt.
func Decode[T any](value string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return v, nil
}

// Getter is the read half of KV.
type Getter interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// Load reads and decodes the value under key.
// ok is false when the key is absent.
func Load[T any](ctx context.Context, g Getter, key string) (v T, ok bool, err error) {
	raw, ok, err := g.Get(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if !ok {
		return v, false, nil
	}
	v, err = Decode[T](raw)
	if err != nil {
		return v, false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return v, true, nil
}
