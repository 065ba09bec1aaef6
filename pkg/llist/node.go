package llist

import (
	"reflect"
	"sync/atomic"
)

// node is the versioned wrapper the list chains internally. It is
// never exposed to callers directly; List[T] hands back only the
// payload.
//
// A node's payload is set once at construction and never mutated.
// insertVersion is likewise immutable after the node is published.
// removedVersion and next are the only mutable fields, and both are
// accessed exclusively through atomics — there is no lock anywhere on
// this type.
type node[T any] struct {
	payload T

	// insertVersion is the commit_id value minted for this node's
	// insertion. Immutable once the node is reachable.
	insertVersion uint64

	// removedVersion is 0 until a logical remove sets it exactly
	// once (spec.md invariant: "removed_version is either 0 or was
	// once the snapshot value of a commit_id read").
	removedVersion atomic.Uint64

	// next is the successor link. While the node is live it points
	// into the list chain; once retired, the same field is reused to
	// thread the node onto a Participant's thread-local retired
	// list (spec.md §3, "Reuses the next field for linkage").
	next atomic.Pointer[node[T]]
}

// newNode allocates a node bearing payload, leaving insertVersion and
// removedVersion at their zero value. The caller mints insertVersion
// and installs it before the node becomes reachable from any list
// chain, so that a failed allocation never consumes a version number
// (spec.md §4.3 rationale).
func newNode[T any](payload T) *node[T] {
	return &node[T]{payload: payload}
}

// isNilPayload reports whether v is the nil value of a nilable type
// (pointer, interface, map, slice, chan, func). For non-nilable
// payload types (ints, structs, ...) it always reports false, since
// such payloads have no null representation to reject — spec.md §7's
// "reject null payload" check is a no-op for those types by
// construction, not a gap.
func isNilPayload[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// visible implements the single visibility predicate named in
// spec.md §3 and pinned down in §9: a node is visible at snapshot S
// iff it was inserted strictly before S and is either still live or
// was removed strictly after S. This is the only place in the module
// that performs this comparison.
func visible(insertVersion, removedVersion, snapshot uint64) bool {
	return insertVersion < snapshot && (removedVersion == 0 || removedVersion > snapshot)
}
