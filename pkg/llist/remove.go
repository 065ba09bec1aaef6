package llist

// Remove marks the first reachable node whose payload equals target
// as logically removed, stamping it with a freshly minted commit
// version. It returns ErrNotFound if no live node matches.
//
// Unlike the reference implementation's plain release store on
// removed_version (a latent double-remove race spec.md §9 flags),
// this port CAS's removed_version from 0 to the minted version, so
// at-most-once removal holds even if two goroutines race to remove
// the same node: the loser's CAS fails and it keeps walking past the
// now-removed node rather than silently overwriting the version.
func (l *List[T]) Remove(p *Participant[T], target T) error {
	if p == nil || p.domain != l.domain {
		return ErrInvalid
	}
	if !p.inUse.Load() {
		return ErrNotRegistered
	}

	v := l.commitID.Add(1) - 1

	curr := l.head.Load()
	for curr != nil {
		p.protect(0, curr)

		if !l.reachable(curr) {
			p.release(0)
			curr = l.head.Load()
			continue
		}

		if equalPayload(curr.payload, target) {
			if curr.removedVersion.CompareAndSwap(0, v) {
				p.release(0)
				return nil
			}
			// Another Remove already claimed this node first;
			// it is no longer a live target, keep walking.
		}

		next := curr.next.Load()
		p.release(0)
		curr = next
	}

	return ErrNotFound
}

// reachable reports whether n is still reachable by walking from
// head. Used to validate a hazard-protected cursor against a
// concurrent unlink (spec.md §4.4's rescan / "validation step").
func (l *List[T]) reachable(n *node[T]) bool {
	scan := l.head.Load()
	for scan != nil {
		if scan == n {
			return true
		}
		scan = scan.next.Load()
	}
	return false
}

// equalPayload compares two payloads for the identity semantics
// Remove needs ("the first reachable node whose payload pointer
// equals payload"). For comparable T this is ==; for any other T
// (slices, funcs, maps) no value can ever equal another by identity
// through plain comparison, so such payloads are simply never found
// by Remove — callers needing removal-by-identity for those types
// should use pointers to them as the payload type instead.
func equalPayload[T any](a, b T) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	ai, bi := any(a), any(b)
	return ai == bi
}
