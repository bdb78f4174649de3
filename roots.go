package gcarena

// RootGuard is a stack-scoped sentinel that pins one cell alive for as
// long as the guard is linked into its arena's root list. Guards form an
// intrusive, doubly-linked list rooted at the arena's own sentinel node;
// Root pushes a new guard immediately after the sentinel (LIFO), and
// Release unlinks it. Go has no destructors, so callers are expected to
// `defer g.Release()` the way they would scope a Rust guard's lifetime.
type RootGuard struct {
	prev, next *RootGuard
	cell       *header
	arena      *Arena
}

func (a *Arena) initRootSentinel() {
	a.roots.next = &a.roots
	a.roots.prev = &a.roots
}

// Root pins p's cell for the lifetime of the returned guard. The caller
// must Release it, in LIFO order with any other guard created after it,
// once p no longer needs to stay rooted.
func Root[T any](a *Arena, p Gc[T]) *RootGuard {
	p.checkRealm(a)
	g := &RootGuard{arena: a, cell: &p.cell.header}
	sentinel := &a.roots
	g.next = sentinel.next
	g.prev = sentinel
	sentinel.next.prev = g
	sentinel.next = g
	return g
}

// Release unlinks the guard, un-rooting its cell. Guards must be released
// in exactly the reverse of their creation order; releasing one out of
// order panics, since the arena can no longer tell which cell the
// skipped guard was protecting once its neighbors are relinked around it.
func (g *RootGuard) Release() {
	if g.arena == nil {
		return
	}
	if g.arena.roots.next != g {
		panic(UsageError("gcarena: root guards must be released in LIFO order"))
	}
	g.prev.next = g.next
	g.next.prev = g.prev
	g.arena = nil
	g.cell = nil
}
