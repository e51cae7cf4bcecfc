package heap

import "log/slog"

const (
	// defaultInitialBookPages is the page count of the first book the
	// heap creates, absent WithInitialBookCapacity.
	defaultInitialBookPages = 16

	// maxBookCapacityPages bounds the doubling of each subsequent book's
	// page count. The source leaves this cap implementation-defined; see
	// DESIGN.md for the reasoning behind this value.
	maxBookCapacityPages = 4096
)

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithInitialBookCapacity sets the page count of the first book the heap
// creates. Subsequent books double this count, up to an internal cap.
func WithInitialBookCapacity(pages uint32) Option {
	return func(h *Heap) {
		if pages > 0 {
			h.nextBookPages = pages
		}
	}
}

// WithErrorSink installs a sink notified of out-of-heap conditions as they
// happen, in addition to the returned error.
func WithErrorSink(sink ErrorSink) Option {
	return func(h *Heap) {
		if sink != nil {
			h.sink = sink
		}
	}
}

// WithLogger installs a structured logger for allocation/growth
// diagnostics. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Heap) {
		if logger != nil {
			h.logger = logger
		}
	}
}
