package gcarena

import "testing"

func TestRootGuardLIFOOrder(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	p := NewInt(a, owner, 1)
	q := NewInt(a, owner, 2)

	g1 := Root(a, p)
	g2 := Root(a, q)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic releasing guards out of LIFO order")
		}
	}()
	_ = g2
	g1.Release()
}

func TestRootGuardReleaseUnroots(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	var drops int
	p := newNode(a, owner, 1, &drops)
	g := Root(a, p)
	g.Release()

	a.CollectFull(owner)

	if drops != 1 {
		t.Fatalf("drops = %d, want 1 (released guard must not keep cell alive)", drops)
	}
}

func TestMultipleRootsAllSurvive(t *testing.T) {
	owner := NewOwner()
	a := NewArena(owner)

	const n = 10
	ptrs := make([]Gc[Leaf[int]], n)
	guards := make([]*RootGuard, n)
	for i := 0; i < n; i++ {
		ptrs[i] = NewInt(a, owner, i)
		guards[i] = Root(a, ptrs[i])
	}

	a.CollectFull(owner)

	for i := n - 1; i >= 0; i-- {
		if got := ptrs[i].Borrow(owner).Value; got != i {
			t.Fatalf("ptrs[%d] = %d, want %d", i, got, i)
		}
		guards[i].Release()
	}
}
