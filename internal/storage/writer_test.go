package storage_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/msgboard/internal/metrics"
	"github.com/mmynk/msgboard/internal/storage"
	"github.com/mmynk/msgboard/internal/storage/memory"
)

func flush(t *testing.T, w *storage.Writer) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := w.Flush(ctx); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
}

func TestWriter(t *testing.T) {
	t.Run("Save writes through", func(t *testing.T) {
		kv := memory.New()
		w := storage.NewWriter(kv)

		w.Save(storage.GroupsKey, `[{"id":"1"}]`)
		flush(t, w)

		value, ok, err := kv.Get(context.Background(), storage.GroupsKey)
		if err != nil || !ok {
			t.Fatalf("Get = (%v, %v)", ok, err)
		}
		if value != `[{"id":"1"}]` {
			t.Errorf("value = %s", value)
		}
	})

	t.Run("Flush with nothing pending returns immediately", func(t *testing.T) {
		w := storage.NewWriter(memory.New())
		flush(t, w)
	})

	t.Run("Overlapping saves coalesce to the newest value", func(t *testing.T) {
		kv := memory.New()
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		w := storage.NewWriter(kv, storage.WithMetrics(m))

		started := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		kv.BeforeSet = func(key, value string) error {
			if value == "v1" {
				once.Do(func() { close(started) })
				<-release
			}
			return nil
		}

		key := storage.MessagesKey("Orders")
		w.Save(key, "v1")
		<-started
		w.Save(key, "v2")
		w.Save(key, "v3")
		close(release)
		flush(t, w)

		sets := kv.Sets()
		if len(sets) != 2 {
			t.Fatalf("Expected 2 sets (v1, v3), got %d: %+v", len(sets), sets)
		}
		if sets[0].Value != "v1" || sets[1].Value != "v3" {
			t.Errorf("Set order = %q, %q; want v1, v3", sets[0].Value, sets[1].Value)
		}
		value, _, _ := kv.Get(context.Background(), key)
		if value != "v3" {
			t.Errorf("Final value = %q, want v3", value)
		}

		want := `
# HELP msgboard_storage_writes_coalesced_total Pending writes replaced by a newer value for the same key before being issued.
# TYPE msgboard_storage_writes_coalesced_total counter
msgboard_storage_writes_coalesced_total 1
`
		if err := testutil.GatherAndCompare(reg, stringsReader(want), "msgboard_storage_writes_coalesced_total"); err != nil {
			t.Error(err)
		}
	})

	t.Run("Keys are written independently", func(t *testing.T) {
		kv := memory.New()
		w := storage.NewWriter(kv)

		for i := 0; i < 10; i++ {
			w.Save(storage.GroupsKey, "groups")
			w.Save(storage.MessagesKey("A"), "a")
			w.Save(storage.MessagesKey("B"), "b")
		}
		flush(t, w)

		ctx := context.Background()
		for key, want := range map[string]string{
			storage.GroupsKey:        "groups",
			storage.MessagesKey("A"): "a",
			storage.MessagesKey("B"): "b",
		} {
			got, _, _ := kv.Get(ctx, key)
			if got != want {
				t.Errorf("%s = %q, want %q", key, got, want)
			}
		}
	})

	t.Run("Failed write is dropped, not retried", func(t *testing.T) {
		kv := memory.New()
		kv.BeforeSet = func(key, value string) error { return errors.New("disk full") }
		w := storage.NewWriter(kv)

		w.Save(storage.GroupsKey, "[]")
		flush(t, w)

		if len(kv.Sets()) != 1 {
			t.Errorf("Expected exactly 1 attempt, got %d", len(kv.Sets()))
		}
		if _, ok, _ := kv.Get(context.Background(), storage.GroupsKey); ok {
			t.Error("Expected nothing persisted")
		}
	})

	t.Run("Save after Close is dropped", func(t *testing.T) {
		kv := memory.New()
		w := storage.NewWriter(kv)

		w.Save(storage.GroupsKey, "before")
		if err := w.Close(context.Background()); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		w.Save(storage.GroupsKey, "after")

		value, _, _ := kv.Get(context.Background(), storage.GroupsKey)
		if value != "before" {
			t.Errorf("value = %q, want before", value)
		}
	})

	t.Run("Flush honours context", func(t *testing.T) {
		kv := memory.New()
		release := make(chan struct{})
		kv.BeforeSet = func(key, value string) error {
			<-release
			return nil
		}
		w := storage.NewWriter(kv)
		w.Save(storage.GroupsKey, "[]")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		if err := w.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Flush err = %v, want deadline exceeded", err)
		}
		close(release)
		flush(t, w)
	})
}

func TestWriterGetSeesPendingValue(t *testing.T) {
	kv := memory.New()
	release := make(chan struct{})
	kv.BeforeSet = func(key, value string) error {
		<-release
		return nil
	}
	w := storage.NewWriter(kv)
	ctx := context.Background()

	w.Save(storage.GroupsKey, "pending")
	value, ok, err := w.Get(ctx, storage.GroupsKey)
	if err != nil || !ok || value != "pending" {
		t.Errorf("Get = (%q, %v, %v), want pending value", value, ok, err)
	}

	close(release)
	flush(t, w)

	value, ok, err = w.Get(ctx, storage.GroupsKey)
	if err != nil || !ok || value != "pending" {
		t.Errorf("Get after flush = (%q, %v, %v)", value, ok, err)
	}
}
