package llist

import "sync/atomic"

// defaultInitialCapacity is used when NewDomain is called with 0.
const defaultInitialCapacity = 16

// Domain is the hazard-pointer reclamation universe shared by one or
// more List[T] instances of the same element type. It owns a
// growable table of Participant slots; every participant's hazard
// pointers and active snapshot are visible to any Reclaim call made
// by any other participant in the same Domain (spec.md §4.1).
//
// Multiple List[T] values may be built on one Domain — doing so
// shares reclamation bookkeeping (and its cost) across them, exactly
// as the reference implementation's domains are meant to back
// "a group of lists". A Domain only ever holds Participants for a
// single element type T: Go's generics give us compile-time type
// safety in place of the reference's void* hazard pointers, at the
// cost of not supporting one Domain shared across heterogeneously
// typed lists (see DESIGN.md for the trade-off).
type Domain[T any] struct {
	slots atomic.Pointer[[]*Participant[T]]

	// count is the number of slots ever handed out (claimed or free).
	count atomic.Uint64

	// capacity is the current length of the backing array pointed to
	// by slots. Growth doubles it until it covers count.
	capacity atomic.Uint64

	// resizeGuard serializes growth; held only for the duration of an
	// allocation + copy (spec.md §4.1 growth protocol / §5).
	resizeGuard atomic.Bool
}

// NewDomain creates a Domain with room for initialCapacity
// participants before its first growth. A initialCapacity of 0 uses
// the default of 16.
func NewDomain[T any](initialCapacity int) *Domain[T] {
	if initialCapacity <= 0 {
		initialCapacity = defaultInitialCapacity
	}
	backing := make([]*Participant[T], initialCapacity)
	d := &Domain[T]{}
	d.slots.Store(&backing)
	d.capacity.Store(uint64(initialCapacity))
	return d
}

// Register attaches the calling goroutine to the domain, returning a
// Participant handle that must be passed to every subsequent list
// operation the goroutine performs within this domain. It is safe —
// if a bit wasteful — to call Register more than once; each call
// claims or allocates its own slot. Callers should instead hold onto
// and reuse the Participant they already have.
//
// Register first scans existing slots for one freed by Unregister
// and claims it with a CAS; only if none is free does it allocate a
// new Participant and publish it at a freshly minted index, growing
// the slot table first if required (spec.md §4.1).
func (d *Domain[T]) Register() (*Participant[T], error) {
	cap := d.capacity.Load()
	tbl := d.slots.Load()

	for i := uint64(0); i < cap; i++ {
		slot := (*tbl)[i]
		if slot == nil {
			continue
		}
		if slot.inUse.CompareAndSwap(false, true) {
			return slot, nil
		}
	}

	idx := d.count.Add(1) - 1
	if idx >= d.capacity.Load() {
		if err := d.grow(idx + 1); err != nil {
			d.count.Add(^uint64(0)) // undo the fetch-add
			return nil, err
		}
	}

	p := &Participant[T]{domain: d, slot: int(idx)}
	p.inUse.Store(true)

	tbl = d.slots.Load()
	(*tbl)[idx] = p
	return p, nil
}

// Unregister releases p's slot back to the domain for reuse by a
// future Register call. Any nodes still on p's retired list remain
// there, for the next claimant's Reclaim to process — they are never
// silently dropped (spec.md §4.9 "Thread slot" state
// machine).
func (d *Domain[T]) Unregister(p *Participant[T]) {
	if p == nil || p.domain != d {
		return
	}
	p.releaseAll()
	p.activeSnapshot.Store(0)
	p.inUse.Store(false)
}

// grow doubles the slot table until it has room for at least needed
// slots, following the spin-acquire / re-check / copy / publish /
// release protocol of spec.md §4.1. It returns an error only for
// parity with the reference's out-of-memory status; Go's allocator
// does not hand make() failures back as values the way the
// reference's calloc does.
func (d *Domain[T]) grow(needed uint64) error {
	for !d.resizeGuard.CompareAndSwap(false, true) {
		// spin; held only for an allocation + copy
	}
	defer d.resizeGuard.Store(false)

	cap := d.capacity.Load()
	if needed <= cap {
		return nil
	}

	newCap := cap
	if newCap == 0 {
		newCap = defaultInitialCapacity
	}
	for newCap < needed {
		newCap *= 2
	}

	oldTbl := d.slots.Load()
	newBacking := make([]*Participant[T], newCap)
	copy(newBacking, *oldTbl)

	d.slots.Store(&newBacking)
	d.capacity.Store(newCap)
	return nil
}

// forEachParticipant invokes fn for every allocated slot, tolerating
// concurrent growth: a growth in progress may add slots fn never
// sees, but newly added slots cannot yet hold hazard pointers to
// nodes that existed before their owner registered (spec.md §4.1
// concurrency contract).
func (d *Domain[T]) forEachParticipant(fn func(*Participant[T])) {
	count := d.count.Load()
	tbl := d.slots.Load()
	cap := uint64(len(*tbl))
	n := count
	if cap < n {
		n = cap
	}
	for i := uint64(0); i < n; i++ {
		p := (*tbl)[i]
		if p != nil {
			fn(p)
		}
	}
}

// minActiveSnapshot returns the minimum non-zero active snapshot
// across every participant in the domain and true, or (0, false) if
// none has one open.
func (d *Domain[T]) minActiveSnapshot() (uint64, bool) {
	var min uint64
	found := false
	d.forEachParticipant(func(p *Participant[T]) {
		v := p.activeSnapshot.Load()
		if v != 0 && (!found || v < min) {
			min = v
			found = true
		}
	})
	return min, found
}

// anyHazardEquals reports whether some participant in the domain
// currently protects n in a hazard slot.
func (d *Domain[T]) anyHazardEquals(n *node[T]) bool {
	found := false
	d.forEachParticipant(func(p *Participant[T]) {
		if !found && p.protects(n) {
			found = true
		}
	})
	return found
}
