package heap

// notAllocated is the sentinel returned by page.allocate when a request
// does not fit. It mirrors the source's -1u for a uint32_t offset.
const notAllocated = ^uint32(0)

// page is a bump allocator over one fixed-size slab region. It carries no
// metadata about individual allocations: free only shrinks the bump
// cursor when the freed block sits at its top, otherwise it just adjusts
// the live-byte total. This is intentionally too simple to support
// general free-list semantics — the LIFO rule is what makes reclamation
// nearly free for the VM's common pattern of short-lived allocations.
type page struct {
	offset uint32
	total  uint32
}

// allocate returns the previous offset and advances the bump cursor by
// size, or notAllocated if the request does not fit within pageSize.
func (p *page) allocate(size, pageSize uint32) uint32 {
	if p.offset+size > pageSize {
		return notAllocated
	}
	loc := p.offset
	p.offset += size
	p.total += size
	return loc
}

// free reclaims loc..loc+size if it sits at the top of the bump cursor.
// total is always decremented; when it reaches zero the page is fully
// reclaimed and offset resets to zero.
func (p *page) free(loc, size uint32) {
	if loc+size == p.offset {
		p.offset -= size
	}
	p.total -= size
	if p.total == 0 {
		p.offset = 0
	}
}

// reallocate resizes the block at loc in place. It only succeeds when the
// block sits at the top of the bump cursor and the new size still fits
// within pageSize.
func (p *page) reallocate(loc, size, nsize, pageSize uint32) bool {
	if loc+size != p.offset {
		return false
	}
	if loc+nsize > pageSize {
		return false
	}
	p.offset = p.offset - size + nsize
	p.total = p.total - size + nsize
	if p.total == 0 {
		p.offset = 0
	}
	return true
}
