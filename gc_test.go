package gcarena

import "testing"

func TestPtrEq(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	p := NewInt(a, owner, 1)
	q := p
	r := NewInt(a, owner, 1)

	if !p.PtrEq(q) {
		t.Fatal("copies of the same handle should be PtrEq")
	}
	if p.PtrEq(r) {
		t.Fatal("distinct cells should not be PtrEq")
	}
}

func TestBorrowMutUntracedPanicsOnTraceableType(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	var drops int
	p := newNode(a, owner, 1, &drops)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on untraced borrow of a traceable type")
		}
	}()
	p.BorrowMutUntraced(owner)
}

func TestBorrowMut2RejectsSameCell(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	p := NewInt(a, owner, 1)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic borrowing the same cell twice via BorrowMut2")
		}
	}()
	BorrowMut2(owner, a, p, p)
}

func TestBorrowMut2DistinctCells(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	p := NewInt(a, owner, 1)
	q := NewInt(a, owner, 2)

	pv, qv := BorrowMut2(owner, a, p, q)
	pv.Value = 10
	qv.Value = 20

	if p.Borrow(owner).Value != 10 || q.Borrow(owner).Value != 20 {
		t.Fatal("BorrowMut2 did not mutate both cells")
	}
}

func TestRebindRoundTrip(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	p := NewInt(a, owner, 5)

	type aliasGc = Gc[Leaf[int]]
	rebound := Rebind[Gc[Leaf[int]], aliasGc](p)
	if rebound.Borrow(owner).Value != 5 {
		t.Fatal("Rebind changed the observed value")
	}
}

func TestRebindSizeMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on a size-mismatched Rebind")
		}
	}()
	Rebind[int64, int32](1)
}
