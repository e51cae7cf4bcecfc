package table

// iteratorCore is a stateful cursor shared by KeysIterator and
// ValuesIterator. Its first advance increments the table's lock counter,
// pinning it against relocating mutations until Close.
type iteratorCore[K comparable, V any] struct {
	table   *Table[K, V]
	idx     uint32
	started bool
	done    bool
	open    bool
}

func newIteratorCore[K comparable, V any](t *Table[K, V]) *iteratorCore[K, V] {
	return &iteratorCore[K, V]{table: t}
}

// advance scans forward from the current position (or from 0, if not yet
// started) for the next live slot.
func (c *iteratorCore[K, V]) advance() bool {
	if c.done {
		return false
	}
	if !c.started {
		c.started = true
		if !c.open {
			c.table.Lock()
			c.open = true
		}
	} else {
		c.idx++
	}

	hashes := c.table.data.hashes()
	for ; c.idx < c.table.data.capacity; c.idx++ {
		h := hashes[c.idx]
		if h != HashEmpty && h != HashKilled {
			return true
		}
	}
	c.done = true
	return false
}

// close releases the iterator's hold on the table. Safe to call more
// than once.
func (c *iteratorCore[K, V]) close() {
	if c.open {
		c.table.Unlock()
		c.open = false
	}
	c.done = true
}

// KeysIterator walks a table's occupied slots, exposing each live key.
type KeysIterator[K comparable, V any] struct {
	core *iteratorCore[K, V]
}

// IterKeys opens a keys-view iterator over t. The iterator pins t against
// relocating mutations from its first First or Next call until Close.
func (t *Table[K, V]) IterKeys() *KeysIterator[K, V] {
	return &KeysIterator[K, V]{core: newIteratorCore(t)}
}

// First advances to the first live entry. It reports false if the table
// is empty.
func (it *KeysIterator[K, V]) First() bool { return it.core.advance() }

// Next advances to the next live entry after the current one.
func (it *KeysIterator[K, V]) Next() bool { return it.core.advance() }

// Key returns the key at the iterator's current position. Only valid
// after First or Next has returned true.
func (it *KeysIterator[K, V]) Key() K { return it.core.table.data.keys[it.core.idx] }

// Close releases the iterator's hold on the table.
func (it *KeysIterator[K, V]) Close() { it.core.close() }

// ValuesIterator walks a table's occupied slots, exposing each live
// value.
type ValuesIterator[K comparable, V any] struct {
	core *iteratorCore[K, V]
}

// IterValues opens a values-view iterator over t. The iterator pins t
// against relocating mutations from its first First or Next call until
// Close.
func (t *Table[K, V]) IterValues() *ValuesIterator[K, V] {
	return &ValuesIterator[K, V]{core: newIteratorCore(t)}
}

// First advances to the first live entry. It reports false if the table
// is empty.
func (it *ValuesIterator[K, V]) First() bool { return it.core.advance() }

// Next advances to the next live entry after the current one.
func (it *ValuesIterator[K, V]) Next() bool { return it.core.advance() }

// Value returns a pointer to the value at the iterator's current
// position. Only valid after First or Next has returned true.
func (it *ValuesIterator[K, V]) Value() *V { return &it.core.table.data.values[it.core.idx] }

// Close releases the iterator's hold on the table.
func (it *ValuesIterator[K, V]) Close() { it.core.close() }
