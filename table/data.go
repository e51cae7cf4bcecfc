package table

import "unsafe"

// tableData is the active storage layout: a heap-backed hash-slot region
// plus lockstep-grown key and value slices. capacity is always 0 or a
// power of two.
type tableData[K comparable, V any] struct {
	hashBuf    []byte
	keys       []K
	values     []V
	capacity   uint32
	maxLookups uint32
}

// hashes views the heap-backed byte buffer as a []uint64. This is sound
// regardless of what backs hashBuf, since uint64 never contains a
// pointer the garbage collector would need to trace.
func (d *tableData[K, V]) hashes() []uint64 {
	if d.capacity == 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(d.hashBuf))), d.capacity)
}

// indexFor returns the initial probe slot for a normalized hash.
func (d *tableData[K, V]) indexFor(hash uint64) uint32 {
	return uint32(hash & uint64(d.capacity-1))
}

// computeMaxLookups is max(MinLookups, ceil(log2(capacity))).
func computeMaxLookups(capacity uint32) uint32 {
	lookups := uint32(0)
	for c := capacity; c > 1; c >>= 1 {
		lookups++
	}
	if capacity&(capacity-1) != 0 {
		lookups++
	}
	if lookups < MinLookups {
		return MinLookups
	}
	return lookups
}

// find probes for key/hash, skipping tombstones, up to maxLookups slots.
// It reports the slot index and whether the key was present.
func (d *tableData[K, V]) find(key K, hash uint64) (uint32, bool) {
	if d.capacity == 0 {
		return 0, false
	}
	hashes := d.hashes()
	idx := d.indexFor(hash)
	for i := uint32(0); i < d.maxLookups; i++ {
		slot := hashes[idx]
		switch {
		case slot == HashEmpty:
			return 0, false
		case slot == hash && d.keys[idx] == key:
			return idx, true
		}
		idx = (idx + 1) & (d.capacity - 1)
	}
	return 0, false
}

// reserve probes like find for an existing entry. If there is none, it
// returns the first Killed slot it passed, or else the Empty slot that
// ended the probe, as a writable target. ok is false when the probe window
// was exhausted without a match or a free slot, signalling the caller to
// grow and retry.
func (d *tableData[K, V]) reserve(key K, hash uint64) (idx uint32, existed bool, ok bool) {
	if d.capacity == 0 {
		return 0, false, false
	}
	hashes := d.hashes()
	i := d.indexFor(hash)
	tomb, haveTomb := uint32(0), false
	for n := uint32(0); n < d.maxLookups; n++ {
		slot := hashes[i]
		switch {
		case slot == HashEmpty:
			if haveTomb {
				return tomb, false, true
			}
			return i, false, true
		case slot == HashKilled:
			if !haveTomb {
				tomb, haveTomb = i, true
			}
		case slot == hash && d.keys[i] == key:
			return i, true, true
		}
		i = (i + 1) & (d.capacity - 1)
	}
	if haveTomb {
		return tomb, false, true
	}
	return 0, false, false
}

// insertNew places a bare hash into the first Empty slot within
// maxLookups, used only while rehashing during grow. Tombstones are not
// valid targets here: the source table being rehashed is discarded
// wholesale, so there is nothing to preserve past it.
func (d *tableData[K, V]) insertNew(hash uint64) (uint32, bool) {
	hashes := d.hashes()
	idx := d.indexFor(hash)
	for i := uint32(0); i < d.maxLookups; i++ {
		if hashes[idx] == HashEmpty {
			return idx, true
		}
		idx = (idx + 1) & (d.capacity - 1)
	}
	return 0, false
}
