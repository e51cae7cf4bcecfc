package heap

import "log/slog"

// bigBlock is a big-stuff map entry: an oversize allocation that bypasses
// every book entirely.
type bigBlock struct {
	data []byte
	size uint32
}

// Heap is the top-level allocator the runtime allocates every dynamic
// object through. It owns an ordered sequence of books (the "shelf") plus
// a side-map for allocations larger than a single page (the "big-stuff
// map"). All books share the same pageSize. Books are appended, never
// removed; their lifetime is the Heap's lifetime.
//
// A Heap is not safe for concurrent use: it is a single-threaded
// cooperative ownership domain, along with every Table backed by it.
type Heap struct {
	pageSize      uint32
	nextBookPages uint32
	shelf         []*book
	bigStuff      map[uintptr]*bigBlock
	sink          ErrorSink
	logger        *slog.Logger
}

// New creates a Heap whose books allocate in pageSize-byte units. pageSize
// must be a positive multiple of 16.
func New(pageSize uint32, opts ...Option) *Heap {
	h := &Heap{
		pageSize:      pageSize,
		nextBookPages: defaultInitialBookPages,
		bigStuff:      make(map[uintptr]*bigBlock),
		sink:          noopSink{},
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetInitialSize sets the byte size of the next book the heap creates,
// rounded up to a whole number of pages. It has no effect once the first
// book has already been created.
func (h *Heap) SetInitialSize(bytes uint32) {
	if len(h.shelf) > 0 || h.pageSize == 0 {
		return
	}
	pages := bytes / h.pageSize
	if bytes%h.pageSize != 0 {
		pages++
	}
	if pages > 0 {
		h.nextBookPages = pages
	}
}

// Allocate returns a size-byte, 16-byte-aligned block. Requests larger
// than pageSize take the oversize path and are tracked in the big-stuff
// map instead of a book. ErrOutOfHeap is returned, and the installed
// ErrorSink notified, when the request cannot be satisfied.
func (h *Heap) Allocate(size uint32) ([]byte, error) {
	if size > h.pageSize {
		return h.allocateBig(size), nil
	}
	for _, b := range h.shelf {
		if ptr := b.allocate(size); ptr != nil {
			return ptr, nil
		}
	}
	b := h.growShelf()
	ptr := b.allocate(size)
	if ptr == nil {
		h.logger.Warn("heap: fresh book rejected allocation", "size", size, "pageSize", h.pageSize)
		h.sink.OutOfHeap(size)
		return nil, ErrOutOfHeap
	}
	return ptr, nil
}

func (h *Heap) allocateBig(size uint32) []byte {
	data := newAlignedSlab(size)
	h.bigStuff[addrOf(data)] = &bigBlock{data: data, size: size}
	h.logger.Debug("heap: oversize allocation", "size", size)
	return data
}

// growShelf appends a new book, doubling the previous book's page count up
// to maxBookCapacityPages.
func (h *Heap) growShelf() *book {
	b := newBook(h.pageSize, h.nextBookPages)
	h.shelf = append(h.shelf, b)
	h.logger.Debug("heap: new book", "pages", h.nextBookPages, "pageSize", h.pageSize)
	if h.nextBookPages < maxBookCapacityPages {
		next := h.nextBookPages * 2
		if next > maxBookCapacityPages {
			next = maxBookCapacityPages
		}
		h.nextBookPages = next
	}
	return b
}

// Free releases ptr back to whichever book or big-stuff entry owns it.
// Freeing a pointer this heap did not allocate is a caller bug: it is
// logged and reported as ErrInvalidFree rather than silently ignored.
func (h *Heap) Free(ptr []byte, size uint32) error {
	if ptr == nil {
		return nil
	}
	for _, b := range h.shelf {
		if b.owns(ptr) {
			b.free(ptr, size)
			return nil
		}
	}
	if _, ok := h.bigStuff[addrOf(ptr)]; ok {
		delete(h.bigStuff, addrOf(ptr))
		return nil
	}
	h.logger.Error("heap: free of unowned pointer", "size", size)
	return ErrInvalidFree
}

// Reallocate tries to resize ptr in place through its owning book; on
// failure it allocates fresh, copies min(size,nsize) bytes, and frees the
// old block. Oversize blocks (owned by the big-stuff map, not a book)
// always take the allocate-and-copy path.
func (h *Heap) Reallocate(ptr []byte, size, nsize uint32) ([]byte, error) {
	if ptr == nil {
		return h.Allocate(nsize)
	}
	for _, b := range h.shelf {
		if b.owns(ptr) {
			if resized := b.reallocate(ptr, size, nsize); resized != nil {
				return resized, nil
			}
			break
		}
	}
	fresh, err := h.Allocate(nsize)
	if err != nil {
		return nil, err
	}
	n := size
	if nsize < n {
		n = nsize
	}
	copy(fresh[:n], ptr[:n])
	_ = h.Free(ptr, size)
	return fresh, nil
}

// IsOwnPtr reports whether ptr lies inside one of this heap's books or is
// a live big-stuff entry. A block freed back to a book still lies inside
// that book's slab, so it keeps reporting true.
func (h *Heap) IsOwnPtr(ptr []byte) bool {
	for _, b := range h.shelf {
		if b.owns(ptr) {
			return true
		}
	}
	_, ok := h.bigStuff[addrOf(ptr)]
	return ok
}

// BytesAllocated returns the number of bytes currently live across every
// book and every big-stuff entry.
func (h *Heap) BytesAllocated() uint32 {
	var total uint32
	for _, b := range h.shelf {
		total += b.totalSize - b.totalFree
	}
	for _, blk := range h.bigStuff {
		total += blk.size
	}
	return total
}

// PagesAllocated returns the number of pages across every book on the
// shelf, regardless of how much of each page is in use.
func (h *Heap) PagesAllocated() uint32 {
	var total uint32
	for _, b := range h.shelf {
		total += b.totalPages
	}
	return total
}
