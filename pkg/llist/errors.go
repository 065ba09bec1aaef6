// Package llist implements a lock-free singly-linked list with MVCC
// snapshot isolation for readers and hazard-pointer-based deferred
// memory reclamation.
//
// Mutators never block: insertion, logical removal, and physical
// unlinking are all expressed as compare-and-swap retry loops on a
// forward-only chain. Readers take a point-in-time snapshot of a
// per-list commit counter and see exactly the nodes whose version
// window contains that snapshot, regardless of concurrent mutation.
// Reclamation is opportunistic and runs on any goroutine that calls
// Reclaim; it never blocks a mutator or a reader.
package llist

import "errors"

// Errors form a closed set, matching the reference implementation's
// error codes one for one. Every fallible entry point returns one of
// these sentinels (or nil); none of them are ever wrapped.
var (
	// ErrInvalid is returned when a required argument is nil, or when
	// an operation is passed a Participant registered with a different
	// Domain than the list's.
	ErrInvalid = errors.New("llist: invalid argument")

	// ErrOutOfMemory is returned when node or slot-table allocation
	// fails. The commit counter is never consumed by a failed insert.
	ErrOutOfMemory = errors.New("llist: out of memory")

	// ErrNotFound is returned when Remove walks the whole chain
	// without a match, or PopFirstVisible finds no visible node.
	ErrNotFound = errors.New("llist: not found")

	// ErrNotRegistered is returned by operations that must publish
	// hazard pointers when called without a registered Participant.
	ErrNotRegistered = errors.New("llist: caller not registered with domain")

	// ErrFull is reserved for resource-limit exhaustion; the Go port
	// grows its slot table unboundedly (spec.md §5) so it is never
	// returned by this implementation, but is kept in the closed set
	// for parity with the reference error codes.
	ErrFull = errors.New("llist: resource limit reached")
)
