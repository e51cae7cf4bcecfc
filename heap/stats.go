package heap

// Stats is a snapshot of a Heap's current book/page/big-stuff footprint,
// for diagnostics and the host's memory-pressure reporting.
type Stats struct {
	BytesAllocated uint32
	PagesAllocated uint32
	BooksAllocated uint32
	BigAllocations uint32
}

// Stats returns a snapshot of the heap's current footprint.
func (h *Heap) Stats() Stats {
	return Stats{
		BytesAllocated: h.BytesAllocated(),
		PagesAllocated: h.PagesAllocated(),
		BooksAllocated: uint32(len(h.shelf)),
		BigAllocations: uint32(len(h.bigStuff)),
	}
}
