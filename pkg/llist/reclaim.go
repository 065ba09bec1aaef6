package llist

// Reclaim tries to physically unlink and free logically-removed
// nodes whose removal precedes every active reader's snapshot. It is
// non-blocking and opportunistic: callers are expected to invoke it
// periodically (after a batch of mutations, or on a dedicated
// cadence) rather than relying on any single call to fully drain the
// list (spec.md §4.8).
//
// Reclaim requires a registered Participant because unlinked-but-
// still-protected nodes are parked on that participant's own
// thread-local retired list until a later pass finds them free of
// hazard pointers.
func (l *List[T]) Reclaim(p *Participant[T], freeCB func(T)) error {
	if p == nil || p.domain != l.domain {
		return ErrInvalid
	}
	if !p.inUse.Load() {
		return ErrNotRegistered
	}

	minActive, ok := l.domain.minActiveSnapshot()
	if !ok {
		minActive = l.commitID.Load()
	}

	l.unlinkReclaimable(p, minActive)
	l.drainRetired(p, freeCB)

	return nil
}

// unlinkReclaimable walks the chain once, CAS-unlinking every node
// whose removedVersion is set and strictly precedes minActive, and
// parking each onto p's retired list. A single failed CAS per node
// just defers that node to a later pass — spec.md §9 explicitly
// preserves this "no retry in place" behavior.
func (l *List[T]) unlinkReclaimable(p *Participant[T], minActive uint64) {
	var prev *node[T]
	curr := l.head.Load()

	for curr != nil {
		rv := curr.removedVersion.Load()
		next := curr.next.Load()
		reclaimable := rv != 0 && rv < minActive

		if reclaimable {
			p.protect(0, curr)

			var unlinked bool
			if prev != nil {
				unlinked = prev.next.CompareAndSwap(curr, next)
			} else {
				unlinked = l.head.CompareAndSwap(curr, next)
			}

			if unlinked {
				p.release(0)
				p.pushRetired(curr)
				curr = next
				continue
			}
			p.release(0)
		}

		prev = curr
		curr = next
	}
}

// drainRetired walks p's retired list once, freeing (invoking freeCB
// on the payload, then dropping the node) anything no participant in
// the domain still protects, and re-queuing everything else for a
// later pass.
func (l *List[T]) drainRetired(p *Participant[T], freeCB func(T)) {
	var stillHeld *node[T]

	for p.retired != nil {
		n := p.retired
		p.retired = n.next.Load()

		if l.domain.anyHazardEquals(n) {
			n.next.Store(stillHeld)
			stillHeld = n
			continue
		}

		if freeCB != nil {
			freeCB(n.payload)
		}
		// No explicit free: the node becomes unreachable here and Go's
		// GC reclaims it, matching the reference's free(node) for the
		// wrapper once any user-owned payload has already been handed
		// to freeCB.
	}

	p.retired = stillHeld
}
