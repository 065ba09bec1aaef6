package llist

import "testing"

func drain[T any](it *Iterator[T]) []T {
	var out []T
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out
}

func TestIterBeginExcludesPostSnapshotInserts(t *testing.T) {
	l, p := newTestList(t)

	l.Insert(p, 1) // insert_version 1
	l.Insert(p, 2) // insert_version 2

	it, err := l.IterBegin(p)
	if err != nil {
		t.Fatalf("IterBegin: %v", err)
	}
	if it.Snapshot() != 3 {
		t.Fatalf("snapshot = %d, want 3", it.Snapshot())
	}

	l.Insert(p, 3) // insert_version 3, must not be visible at snapshot 3

	got := drain(it)
	it.IterEnd()

	want := []int{2, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestVisibilityAcrossOlderAndNewerSnapshots(t *testing.T) {
	l, p := newTestList(t)

	l.Insert(p, 1) // insert_version 1
	l.Insert(p, 2) // insert_version 2

	// Snapshot at commit_id 3, then remove 1 at version 3.
	if err := l.Remove(p, 1); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	// At an explicit older snapshot (2) only node 1 is visible: its
	// insert_version 1 is < 2 and its removal (version 3) is > 2,
	// while node 2's insert_version 2 is not < 2. Checked directly
	// through the visibility predicate.
	if !visible(1 /*insert*/, 3 /*removed*/, 2 /*snapshot*/) {
		t.Error("node removed at version 3 should still be visible at snapshot 2")
	}
	if visible(2 /*insert*/, 0, 2 /*snapshot*/) {
		t.Error("node inserted at version 2 should not be visible at snapshot 2 (strict <)")
	}

	// Walk at snapshot 3 (current): only node 2 remains visible.
	if visible(1, 3, 3) {
		t.Error("node removed at version 3 should not be visible at snapshot 3")
	}
	if !visible(2, 0, 3) {
		t.Error("node inserted at version 2 should be visible at snapshot 3")
	}

	if l.Contains(1) {
		t.Error("removed node should not be visible at the current snapshot")
	}
	if !l.Contains(2) {
		t.Error("untouched node should remain visible")
	}
}

func TestIterEndClearsActiveSnapshot(t *testing.T) {
	l, p := newTestList(t)
	l.Insert(p, 1)

	it, _ := l.IterBegin(p)
	if p.activeSnapshot.Load() == 0 {
		t.Fatal("IterBegin should register a non-zero active snapshot")
	}

	it.IterEnd()
	if p.activeSnapshot.Load() != 0 {
		t.Error("IterEnd should clear the active snapshot back to 0")
	}
}

func TestIterBeginRequiresRegisteredParticipant(t *testing.T) {
	l, p := newTestList(t)
	l.domain.Unregister(p)

	if _, err := l.IterBegin(p); err != ErrNotRegistered {
		t.Errorf("IterBegin with unregistered participant = %v, want ErrNotRegistered", err)
	}
}

func TestEmptyListIterationYieldsNothing(t *testing.T) {
	l, p := newTestList(t)

	it, err := l.IterBegin(p)
	if err != nil {
		t.Fatalf("IterBegin: %v", err)
	}
	defer it.IterEnd()

	if _, ok := it.Next(); ok {
		t.Error("iterating an empty list should yield nothing")
	}
}
