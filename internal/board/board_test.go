package board

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mmynk/msgboard/internal/storage"
	"github.com/mmynk/msgboard/internal/storage/memory"
)

var fixedTime = time.Date(2026, 10, 19, 14, 5, 9, 0, time.Local)

// sequentialIDs returns an id generator yielding prefix1, prefix2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

// setupPersistence returns a Writer over a fresh memory KV.
func setupPersistence(t *testing.T) (*storage.Writer, *memory.Store) {
	t.Helper()
	kv := memory.New()
	return storage.NewWriter(kv), kv
}

func flush(t *testing.T, w *storage.Writer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
}

func testOptions() []Option {
	return []Option{
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(sequentialIDs("id")),
	}
}

func TestFilterHelper(t *testing.T) {
	items := []string{"Orders", "promotions", "ORDER backlog", "Misc"}
	ident := func(s string) string { return s }

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query matches all", "", items},
		{"case-insensitive", "order", []string{"Orders", "ORDER backlog"}},
		{"upper-case query", "PROMO", []string{"promotions"}},
		{"no match", "zzz", []string{}},
		{"inner substring", "isc", []string{"Misc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter(items, tt.query, ident)
			if len(got) != len(tt.want) {
				t.Fatalf("filter(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("filter(%q)[%d] = %q, want %q", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(ErrEmptyTitle) || !IsValidation(fmt.Errorf("wrap: %w", ErrEmptyMessage)) {
		t.Error("Expected validation errors to be recognised")
	}
	if IsValidation(ErrMessageNotFound) {
		t.Error("ErrMessageNotFound is not a validation error")
	}
}
