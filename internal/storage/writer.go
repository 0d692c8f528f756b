package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/msgboard/internal/metrics"
)

// DefaultWriteTimeout bounds a single Set issued by the Writer.
const DefaultWriteTimeout = 5 * time.Second

// Writer issues writes to a KV in the background, one key at a time.
//
// At most one Set is in flight per key. A value saved while a write for the
// same key is in flight replaces any value still waiting, so the newest value
// is always the last one written. Failed writes are logged and dropped.
type Writer struct {
	kv      KV
	metrics *metrics.Metrics
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string]string
	latest   map[string]string
	active   map[string]bool
	inflight int
	idle     chan struct{}
	closed   bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithMetrics records write outcomes on m.
func WithMetrics(m *metrics.Metrics) WriterOption {
	return func(w *Writer) { w.metrics = m }
}

// WithWriteTimeout bounds each Set call. Zero disables the bound.
func WithWriteTimeout(d time.Duration) WriterOption {
	return func(w *Writer) { w.timeout = d }
}

// NewWriter creates a Writer on top of kv.
func NewWriter(kv KV, opts ...WriterOption) *Writer {
	idle := make(chan struct{})
	close(idle)
	w := &Writer{
		kv:      kv,
		timeout: DefaultWriteTimeout,
		pending: make(map[string]string),
		latest:  make(map[string]string),
		active:  make(map[string]bool),
		idle:    idle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Get returns the value under key. A value saved but not yet written is
// returned in place of the stored one.
func (w *Writer) Get(ctx context.Context, key string) (string, bool, error) {
	w.mu.Lock()
	value, ok := w.latest[key]
	w.mu.Unlock()
	if ok {
		return value, true, nil
	}
	return w.kv.Get(ctx, key)
}

// Save schedules value to be written under key and returns immediately.
func (w *Writer) Save(key, value string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		slog.Error("Write dropped, writer closed", "key", key)
		w.metrics.Write(KindOf(key), metrics.ResultError)
		return
	}
	if _, waiting := w.pending[key]; waiting {
		w.metrics.Coalesced()
	}
	w.pending[key] = value
	w.latest[key] = value
	if w.active[key] {
		w.mu.Unlock()
		return
	}
	w.active[key] = true
	if w.inflight == 0 {
		w.idle = make(chan struct{})
	}
	w.inflight++
	w.mu.Unlock()

	go w.drain(key)
}

// drain writes pending values for key until none remain.
func (w *Writer) drain(key string) {
	for {
		w.mu.Lock()
		value, ok := w.pending[key]
		if !ok {
			delete(w.active, key)
			delete(w.latest, key)
			w.inflight--
			if w.inflight == 0 {
				close(w.idle)
			}
			w.mu.Unlock()
			return
		}
		delete(w.pending, key)
		w.mu.Unlock()

		w.write(key, value)
	}
}

func (w *Writer) write(key, value string) {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	kind := KindOf(key)
	if err := w.kv.Set(ctx, key, value); err != nil {
		slog.Error("Failed to save collection", "key", key, "kind", kind, "error", err)
		w.metrics.Write(kind, metrics.ResultError)
		return
	}
	slog.Debug("Collection saved", "key", key, "kind", kind, "bytes", len(value))
	w.metrics.Write(kind, metrics.ResultOK)
}

// Flush blocks until no write is pending or in flight, or ctx is done.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("failed to flush writes: %w", ctx.Err())
	}
}

// Close stops accepting writes, flushes what is pending and closes the KV.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	flushErr := w.Flush(ctx)
	if err := w.kv.Close(); err != nil {
		return fmt.Errorf("failed to close storage: %w", err)
	}
	return flushErr
}
