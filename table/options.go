package table

import (
	"log/slog"

	"github.com/homier/vmrt/heap"
)

// Option configures a Table at construction time.
type Option[K comparable, V any] func(*Table[K, V])

// WithHashFunc overrides the default hash/maphash-derived hash function.
func WithHashFunc[K comparable, V any](fn HashFunc[K]) Option[K, V] {
	return func(t *Table[K, V]) {
		if fn != nil {
			t.hashFunc = fn
		}
	}
}

// WithLogger installs a structured logger for grow/error diagnostics.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(t *Table[K, V]) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithErrorSink installs a sink notified of out-of-heap conditions
// encountered while growing, distinct from unrelated heap traffic the
// same heap.Heap might report elsewhere.
func WithErrorSink[K comparable, V any](sink heap.ErrorSink) Option[K, V] {
	return func(t *Table[K, V]) {
		if sink != nil {
			t.sink = sink
		}
	}
}

type noopErrorSink struct{}

func (noopErrorSink) OutOfHeap(uint32) {}
