// Package heap implements a fixed-block-size sub-allocator for the vmrt
// runtime. It provides three layers, leaves first:
//
//   - Page: a bump allocator over one fixed-size slab region. Free is
//     LIFO-only: a freed block is reclaimed only when it sits at the top
//     of the bump cursor. Interior frees just shrink a live-byte counter.
//   - Book: a fixed-capacity array of Pages backed by one contiguous,
//     16-byte-aligned slab, rotating a "next free page" hint across
//     allocations.
//   - Heap: a growing collection of Books (the "shelf") plus a side-map
//     for allocations too large to fit a single page (the "big-stuff
//     map"). This is the type embedding code allocates and frees through.
//
// All allocations are handed out as []byte rather than a raw pointer.
// This keeps every allocation traceable by the Go garbage collector, which
// matters even though the table package only stores its pointer-free
// hash-slot region here: keys and values are kept in ordinary Go slices
// instead, precisely because heap-backed memory is not a safe place for
// values the garbage collector would need to scan.
//
// A Heap owns its shelf and big-stuff map exclusively. Books are appended
// and never removed; their lifetime is the heap's lifetime. Values
// obtained from a Heap must be freed before the Heap itself is dropped.
package heap
