package table

import (
	"log/slog"

	"github.com/homier/vmrt/heap"
)

// Table is an open-addressing hash table whose hash-slot storage is
// obtained from a heap.Heap. It is not safe for concurrent use; see
// heap.Heap's own concurrency note, which extends to every Table backed
// by it.
type Table[K comparable, V any] struct {
	h        *heap.Heap
	data     tableData[K, V]
	size     uint32
	lock     uint32
	hashFunc HashFunc[K]
	sink     heap.ErrorSink
	logger   *slog.Logger
}

// New creates an empty table backed by h. The table allocates no storage
// until the first InsertOrGet.
func New[K comparable, V any](h *heap.Heap, opts ...Option[K, V]) *Table[K, V] {
	t := &Table[K, V]{
		h:        h,
		hashFunc: MakeDefaultHashFunc[K](),
		sink:     noopErrorSink{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Size returns the number of entries created since the table was new,
// cleared or freed. Erase does not decrement this, and a grow does not
// recount it.
func (t *Table[K, V]) Size() int { return int(t.size) }

// Capacity returns the current slot count, always 0 or a power of two.
func (t *Table[K, V]) Capacity() int { return int(t.data.capacity) }

// Lock pins the table against relocating mutations. Multiple Lock calls
// nest; the table stays pinned until a matching number of Unlock calls.
func (t *Table[K, V]) Lock() { t.lock++ }

// Unlock reverses one Lock call.
func (t *Table[K, V]) Unlock() {
	if t.lock > 0 {
		t.lock--
	}
}

// Find returns a pointer to the value slot for key, or false if absent.
// The returned pointer is invalidated by any subsequent grow.
func (t *Table[K, V]) Find(key K) (*V, bool) {
	if t.data.capacity == 0 {
		return nil, false
	}
	hash := normalizeHash(t.hashFunc(key))
	idx, ok := t.data.find(key, hash)
	if !ok {
		return nil, false
	}
	return &t.data.values[idx], true
}

// KeyExists reports whether key has a live entry.
func (t *Table[K, V]) KeyExists(key K) bool {
	_, ok := t.Find(key)
	return ok
}

// InsertOrGet returns a pointer to key's value slot, creating a
// zero-valued entry if absent. It fails with ErrLockedMutation if an
// iterator is open and key is not already present, and with ErrOutOfHeap
// if the backing heap cannot supply storage.
func (t *Table[K, V]) InsertOrGet(key K) (*V, error) {
	hash := normalizeHash(t.hashFunc(key))

	for {
		idx, existed, ok := t.data.reserve(key, hash)
		if ok {
			if !existed {
				if t.lock > 0 {
					return nil, ErrLockedMutation
				}
				t.data.hashes()[idx] = hash
				t.data.keys[idx] = key
				var zero V
				t.data.values[idx] = zero
				t.size++
			}
			return &t.data.values[idx], nil
		}

		if t.lock > 0 {
			return nil, ErrLockedMutation
		}
		if err := t.grow(); err != nil {
			return nil, err
		}
	}
}

// Erase removes key's entry, writing HashKilled to its slot without
// wiping the key/value storage. It returns true iff key was present.
// Size is not decremented; the slot becomes a tombstone that a future
// grow's rehash will drop.
func (t *Table[K, V]) Erase(key K) bool {
	if t.data.capacity == 0 {
		return false
	}
	hash := normalizeHash(t.hashFunc(key))
	idx, ok := t.data.find(key, hash)
	if !ok {
		return false
	}
	t.data.hashes()[idx] = HashKilled
	return true
}

// Clear empties the table without releasing its backing storage.
func (t *Table[K, V]) Clear() {
	if t.data.capacity == 0 {
		return
	}
	hashes := t.data.hashes()
	for i := range hashes {
		hashes[i] = HashEmpty
	}
	var zeroK K
	var zeroV V
	for i := range t.data.keys {
		t.data.keys[i] = zeroK
		t.data.values[i] = zeroV
	}
	t.size = 0
}

// Free releases the table's backing hash-slot buffer to its heap,
// resetting it to the same zero-initialized, zero-capacity state it had
// before its first insert. It fails with ErrLockedMutation while an
// iterator is open, since that would relocate storage out from under it.
func (t *Table[K, V]) Free() error {
	if t.lock > 0 {
		return ErrLockedMutation
	}
	if t.data.capacity == 0 {
		return nil
	}
	err := t.h.Free(t.data.hashBuf, t.data.capacity*8)
	t.data = tableData[K, V]{}
	t.size = 0
	return err
}

// grow doubles capacity (or reaches MinCapacity from empty), rehashing
// every live entry into a fresh buffer. On out-of-heap it leaves the
// table exactly as it was and reports through the installed ErrorSink in
// addition to the returned error.
func (t *Table[K, V]) grow() error {
	target := t.data.capacity * 2
	if target < MinCapacity {
		target = MinCapacity
	}

	for {
		next := tableData[K, V]{
			keys:       make([]K, target),
			values:     make([]V, target),
			capacity:   target,
			maxLookups: computeMaxLookups(target),
		}
		buf, err := t.h.Allocate(target * 8)
		if err != nil {
			t.logger.Warn("table: grow could not allocate hash buffer", "target", target)
			t.sink.OutOfHeap(target * 8)
			return ErrOutOfHeap
		}
		next.hashBuf = buf
		hashes := next.hashes()
		for i := range hashes {
			hashes[i] = HashEmpty
		}

		if t.rehashInto(&next) {
			if t.data.capacity > 0 {
				_ = t.h.Free(t.data.hashBuf, t.data.capacity*8)
			}
			t.data = next
			t.logger.Debug("table: grew", "capacity", target)
			return nil
		}

		_ = t.h.Free(buf, target*8)
		target *= 2
	}
}

// rehashInto copies every live entry of t.data into next via insertNew.
// It reports false, leaving next untouched by the caller's swap, if any
// insertNew fails — a pathological clustering that requires a bigger
// target capacity.
func (t *Table[K, V]) rehashInto(next *tableData[K, V]) bool {
	if t.data.capacity == 0 {
		return true
	}
	oldHashes := t.data.hashes()
	for i, h := range oldHashes {
		if h == HashEmpty || h == HashKilled {
			continue
		}
		idx, ok := next.insertNew(h)
		if !ok {
			return false
		}
		next.hashes()[idx] = h
		next.keys[idx] = t.data.keys[i]
		next.values[idx] = t.data.values[i]
	}
	return true
}
