package heap

import "unsafe"

// alignment is the byte alignment every allocation the heap hands out
// must satisfy.
const alignment = 16

// newAlignedSlab returns a size-byte slice whose backing array starts at a
// 16-byte-aligned address, by over-allocating alignment-1 pad bytes and
// re-slicing within the same backing array.
//
// A real mmap-backed slab would get alignment "for free", but it would
// also take the slab out from under the Go garbage collector. Even though
// only the table package's pointer-free hash-slot region is ever carved
// out of heap-backed memory, keeping the allocator itself GC-visible
// means callers never have to reason about which Go types are safe to
// store in it. Padding a normal make([]byte, ...) does that.
func newAlignedSlab(size uint32) []byte {
	raw := make([]byte, uint64(size)+alignment-1)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	pad := (alignment - addr%alignment) % alignment
	return raw[pad : pad+uintptr(size)]
}

func addrOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
