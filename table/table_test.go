package table

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/homier/vmrt/heap"
	"github.com/stretchr/testify/require"
)

func newTestHeap() *heap.Heap {
	return heap.New(4096, heap.WithInitialBookCapacity(4))
}

func TestTable_InsertOrGet_BasicInsertFind(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	for _, kv := range [][2]int{{1, 100}, {2, 200}, {3, 300}} {
		v, err := tt.InsertOrGet(kv[0])
		require.NoError(t, err)
		*v = kv[1]
	}

	v, ok := tt.Find(2)
	require.True(t, ok)
	require.Equal(t, 200, *v)

	_, ok = tt.Find(99)
	require.False(t, ok)

	require.Equal(t, 3, tt.Size())
}

func TestTable_InsertOrGet_TriggersGrowUnderLoad(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	for k := 1; k <= 100; k++ {
		v, err := tt.InsertOrGet(k)
		require.NoError(t, err)
		*v = k * 10
	}

	require.GreaterOrEqual(t, tt.Capacity(), 128)

	for k := 1; k <= 100; k++ {
		v, ok := tt.Find(k)
		require.True(t, ok)
		require.Equal(t, k*10, *v)
	}

	seen := map[int]bool{}
	it := tt.IterKeys()
	defer it.Close()
	for ok := it.First(); ok; ok = it.Next() {
		seen[it.Key()] = true
	}
	require.Len(t, seen, 100)
}

func TestTable_Erase_ThenReinsertReusesTombstone(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	v, err := tt.InsertOrGet(7)
	require.NoError(t, err)
	*v = 70

	require.True(t, tt.Erase(7))
	_, ok := tt.Find(7)
	require.False(t, ok)

	v, err = tt.InsertOrGet(7)
	require.NoError(t, err)
	*v = 77

	v, ok = tt.Find(7)
	require.True(t, ok)
	require.Equal(t, 77, *v)
}

func TestTable_InsertOrGet_RejectedWhileIteratorOpen(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	for k := 0; k < 4; k++ {
		_, err := tt.InsertOrGet(k)
		require.NoError(t, err)
	}

	it := tt.IterKeys()
	require.True(t, it.First())

	_, err := tt.InsertOrGet(999)
	require.ErrorIs(t, err, ErrLockedMutation)

	require.False(t, tt.KeyExists(999))

	seen := 1
	for it.Next() {
		seen++
	}
	require.Equal(t, 4, seen)
	it.Close()
}

func TestTable_InsertOrGet_Idempotent(t *testing.T) {
	h := newTestHeap()
	tt := New[string, int](h)

	a, err := tt.InsertOrGet("x")
	require.NoError(t, err)
	*a = 1

	b, err := tt.InsertOrGet("x")
	require.NoError(t, err)
	require.Same(t, a, b)
	require.Equal(t, 1, *b)
}

func TestTable_Erase_Idempotent(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	_, err := tt.InsertOrGet(5)
	require.NoError(t, err)

	require.True(t, tt.Erase(5))
	require.False(t, tt.Erase(5))
}

func TestTable_Erase_DoesNotDecrementSize(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	_, _ = tt.InsertOrGet(1)
	_, _ = tt.InsertOrGet(2)
	require.Equal(t, 2, tt.Size())

	tt.Erase(1)
	require.Equal(t, 2, tt.Size())
}

func TestTable_TombstoneChainSurvives(t *testing.T) {
	h := newTestHeap()
	// Force every key onto the same starting slot so B sits on A's probe
	// chain to C.
	collisionHash := func(string) uint64 { return 12345 }
	tt := New[string, string](h, WithHashFunc[string, string](collisionHash))

	_, err := tt.InsertOrGet("A")
	require.NoError(t, err)
	_, err = tt.InsertOrGet("B")
	require.NoError(t, err)
	v, err := tt.InsertOrGet("C")
	require.NoError(t, err)
	*v = "lol"

	require.True(t, tt.Erase("B"))

	got, ok := tt.Find("C")
	require.True(t, ok, "probe chain broken: could not find C after deleting B")
	require.Equal(t, "lol", *got)
}

func TestTable_GrowPreservesEntries(t *testing.T) {
	h := newTestHeap()
	tt := New[int, string](h)

	for k := 0; k < 40; k++ {
		v, err := tt.InsertOrGet(k)
		require.NoError(t, err)
		*v = fmt.Sprintf("v%d", k)
	}

	for k := 0; k < 40; k++ {
		v, ok := tt.Find(k)
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("v%d", k), *v)
	}
}

func TestTable_Clear(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	_, _ = tt.InsertOrGet(1)
	_, _ = tt.InsertOrGet(2)

	tt.Clear()
	require.Equal(t, 0, tt.Size())
	require.False(t, tt.KeyExists(1))

	v, err := tt.InsertOrGet(1)
	require.NoError(t, err)
	require.Equal(t, 0, *v)
}

func TestTable_Free(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	_, _ = tt.InsertOrGet(1)
	require.NoError(t, tt.Free())
	require.Equal(t, 0, tt.Capacity())
}

func TestTable_Free_RejectedWhileIteratorOpen(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	_, _ = tt.InsertOrGet(1)

	it := tt.IterKeys()
	require.True(t, it.First())

	err := tt.Free()
	require.ErrorIs(t, err, ErrLockedMutation)
	require.NotZero(t, tt.Capacity())

	it.Close()
	require.NoError(t, tt.Free())
}

func TestTable_Stats(t *testing.T) {
	h := newTestHeap()
	tt := New[int, int](h)

	for k := 0; k < 10; k++ {
		_, _ = tt.InsertOrGet(k)
	}
	tt.Erase(3)
	tt.Erase(4)

	stats := tt.Stats()
	require.Equal(t, 10, stats.Size)
	require.Equal(t, 2, stats.Tombstones)
	require.GreaterOrEqual(t, stats.Capacity, MinCapacity)
}

func TestTable_WithLogger_ReceivesGrowLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := newTestHeap()
	tt := New[int, int](h, WithLogger[int, int](logger))

	_, err := tt.InsertOrGet(1)
	require.NoError(t, err)

	require.Contains(t, buf.String(), "table: grew")
}

func TestNormalizeHash_EscapesSentinels(t *testing.T) {
	require.NotEqual(t, HashEmpty, normalizeHash(HashEmpty))
	require.NotEqual(t, HashKilled, normalizeHash(HashKilled))
	require.Equal(t, uint64(42), normalizeHash(42))
}

func TestComputeMaxLookups(t *testing.T) {
	require.Equal(t, uint32(MinLookups), computeMaxLookups(8))
	require.Equal(t, uint32(6), computeMaxLookups(64))
	require.Equal(t, uint32(7), computeMaxLookups(128))
}
