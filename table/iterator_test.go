package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuesIterator_VisitsEachLiveEntryOnce(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	for k := 0; k < 20; k++ {
		v, err := tt.InsertOrGet(k)
		require.NoError(t, err)
		*v = k * k
	}
	tt.Erase(5)
	tt.Erase(9)

	it := tt.IterValues()
	defer it.Close()

	seen := map[int]bool{}
	for ok := it.First(); ok; ok = it.Next() {
		seen[*it.Value()] = true
	}
	require.Len(t, seen, 18)
	require.NotContains(t, seen, 25)
	require.NotContains(t, seen, 81)
}

func TestIterator_EmptyTable(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	it := tt.IterKeys()
	require.False(t, it.First())
	it.Close()
}

func TestIterator_LockNestsAcrossTwoIterators(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)
	_, _ = tt.InsertOrGet(1)

	keysIt := tt.IterKeys()
	require.True(t, keysIt.First())

	valsIt := tt.IterValues()
	require.True(t, valsIt.First())

	require.Equal(t, uint32(2), tt.lock)

	valsIt.Close()
	require.Equal(t, uint32(1), tt.lock)

	_, err := tt.InsertOrGet(2)
	require.ErrorIs(t, err, ErrLockedMutation)

	keysIt.Close()
	require.Equal(t, uint32(0), tt.lock)

	_, err = tt.InsertOrGet(2)
	require.NoError(t, err)
}
