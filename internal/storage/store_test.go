package storage_test

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/mmynk/msgboard/internal/models"
	"github.com/mmynk/msgboard/internal/storage"
	"github.com/mmynk/msgboard/internal/storage/memory"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestKeys(t *testing.T) {
	if storage.GroupsKey != "@message_groups" {
		t.Errorf("GroupsKey = %q", storage.GroupsKey)
	}
	if got := storage.MessagesKey("Orders"); got != "@messages_Orders" {
		t.Errorf("MessagesKey = %q", got)
	}
	if storage.KindOf(storage.MessagesKey("x")) != storage.KindMessages {
		t.Error("Expected messages kind")
	}
	if storage.KindOf(storage.GroupsKey) != storage.KindGroups {
		t.Error("Expected groups kind")
	}
}

func TestCountKinds(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	kv.Put(storage.MessagesKey("Team"), "[]")
	kv.Put(storage.GroupsKey, "[]")
	kv.Put(storage.MessagesKey("Orders"), "[]")

	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	want := []string{storage.GroupsKey, storage.MessagesKey("Orders"), storage.MessagesKey("Team")}
	if !slices.Equal(keys, want) {
		t.Errorf("Keys = %v, want %v", keys, want)
	}

	counts := storage.CountKinds(keys)
	if counts[storage.KindGroups] != 1 || counts[storage.KindMessages] != 2 {
		t.Errorf("CountKinds = %v", counts)
	}
	if empty := storage.CountKinds(nil); empty[storage.KindGroups] != 0 || empty[storage.KindMessages] != 0 {
		t.Errorf("CountKinds(nil) = %v", empty)
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		_, ok, err := storage.Load[[]models.Group](ctx, memory.New(), storage.GroupsKey)
		if err != nil || ok {
			t.Errorf("Load = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("round trip keeps content and order", func(t *testing.T) {
		kv := memory.New()
		groups := []models.Group{
			{ID: "1", Title: "Orders", Messages: []models.Message{
				{ID: "1-1", Text: "Order #1234 confirmed", Timestamp: "10:30 AM"},
				{ID: "1-2", Text: "Order #1235 shipped", Timestamp: "2:15 PM"},
			}},
			{ID: "2", Title: "Promotions", Messages: []models.Message{}},
		}
		raw, err := storage.Encode(groups)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		kv.Put(storage.GroupsKey, raw)

		got, ok, err := storage.Load[[]models.Group](ctx, kv, storage.GroupsKey)
		if err != nil || !ok {
			t.Fatalf("Load = (%v, %v)", ok, err)
		}
		if len(got) != 2 || got[0].Title != "Orders" || got[1].Title != "Promotions" {
			t.Fatalf("Unexpected groups: %+v", got)
		}
		if got[0].Messages[1] != groups[0].Messages[1] {
			t.Errorf("Message mismatch: got %+v, want %+v", got[0].Messages[1], groups[0].Messages[1])
		}
	})

	t.Run("persisted field names", func(t *testing.T) {
		raw, err := storage.Encode([]models.Group{{ID: "7", Title: "T", Messages: []models.Message{{ID: "7-0", Text: "x", Timestamp: "1:00:00 PM"}}}})
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		want := `[{"id":"7","title":"T","messages":[{"id":"7-0","text":"x","timestamp":"1:00:00 PM"}]}]`
		if raw != want {
			t.Errorf("Encode = %s\nwant %s", raw, want)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		kv := memory.New()
		kv.Put(storage.GroupsKey, "{not json")
		_, ok, err := storage.Load[[]models.Group](ctx, kv, storage.GroupsKey)
		if !errors.Is(err, storage.ErrCorrupt) {
			t.Errorf("err = %v, want ErrCorrupt", err)
		}
		if ok {
			t.Error("Expected ok=false on corrupt value")
		}
	})

	t.Run("read failure", func(t *testing.T) {
		kv := memory.New()
		kv.GetErr = errors.New("io error")
		_, _, err := storage.Load[[]models.Group](ctx, kv, storage.GroupsKey)
		if err == nil || errors.Is(err, storage.ErrCorrupt) {
			t.Errorf("err = %v, want plain read error", err)
		}
	})
}
