package heap

import "errors"

var (
	// ErrOutOfHeap indicates the allocator could not obtain enough memory:
	// every book, including a freshly created one, refused the request.
	// The oversize path never returns it.
	ErrOutOfHeap = errors.New("heap: out of memory")

	// ErrInvalidFree indicates a free of a pointer that lies in no book's
	// slab and is not a live big-stuff entry. This is a caller bug, not a
	// resource condition. A second free of a block inside a book's slab is
	// not detected.
	ErrInvalidFree = errors.New("heap: invalid free")
)

// ErrorSink receives notification of allocation failures as they happen,
// in addition to (not instead of) the returned error. It lets a host embed
// its own reporting (e.g. surfacing a script-visible panic) without the
// heap holding a process-wide handle back into the host.
type ErrorSink interface {
	// OutOfHeap is called when an allocation of the given size could not
	// be satisfied.
	OutOfHeap(requested uint32)
}

// noopSink is the default ErrorSink; it does nothing beyond what the
// heap's own logger already records.
type noopSink struct{}

func (noopSink) OutOfHeap(uint32) {}
