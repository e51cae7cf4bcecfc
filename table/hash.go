package table

import "hash/maphash"

// HashEmpty and HashKilled are reserved hash-slot values: a slot holding
// either sentinel is not a live entry. A real hash colliding with one of
// them is remapped by normalizeHash.
const (
	HashEmpty  uint64 = 0xBAD0BAD0BAD0BAD0
	HashKilled uint64 = 0xDEADDEADDEADDEAD
)

// MinCapacity is the smallest capacity a grow ever produces.
const MinCapacity = 64

// MinLookups is the floor on the probe bound, regardless of capacity.
const MinLookups = 4

// HashFunc computes a key's 64-bit hash. It need not avoid HashEmpty or
// HashKilled; normalizeHash handles that.
type HashFunc[K comparable] func(K) uint64

// MakeDefaultHashFunc builds a HashFunc from a process-lifetime
// maphash.Seed shared by every call it returns.
func MakeDefaultHashFunc[K comparable]() HashFunc[K] {
	seed := maphash.MakeSeed()

	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// normalizeHash remaps a real hash away from the two reserved sentinel
// values. Both sentinels differ from each other in their low bit, so a
// single XOR always escapes whichever one was hit.
func normalizeHash(h uint64) uint64 {
	if h == HashEmpty || h == HashKilled {
		return h ^ 1
	}
	return h
}
