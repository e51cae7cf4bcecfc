package table

import "errors"

var (
	// ErrOutOfHeap indicates a grow could not obtain a buffer from the
	// backing heap. The table is left exactly as it was before the call.
	ErrOutOfHeap = errors.New("table: out of heap")

	// ErrLockedMutation indicates a mutation that could relocate the
	// table's storage was attempted while an iterator was open.
	ErrLockedMutation = errors.New("table: locked by an open iterator")
)
