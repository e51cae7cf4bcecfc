// Package table implements a linear-probing, open-addressing hash table
// keyed by a comparable Go type, backed by a vmrt/heap.Heap.
//
// A live entry's storage is split three ways. The hash-slot region is a
// flat []uint64 view over a buffer obtained directly from the heap: it
// never holds a pointer, so reinterpreting raw heap bytes as uint64s is
// always GC-sound. The key and value regions are ordinary Go slices
// grown in lockstep with the hash region: K or V may be (or contain) a
// Go reference type such as string, and a slice the runtime knows the
// element type of is scanned correctly by the garbage collector, where a
// raw byte buffer reinterpreted through unsafe would not be. Every
// grow() call still asks the heap for the new hash-slot buffer, so the
// heap remains the actual capacity authority; see DESIGN.md for the full
// reasoning.
//
// Each hash slot holds one of two sentinels (HashEmpty, HashKilled) or a
// real fingerprint. find/reserve/erase probe linearly, skipping
// tombstones, up to a capacity-derived bound before forcing a grow.
package table
