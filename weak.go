package gcarena

// WeakGc observes a cell without rooting it: it never prevents the
// collector from reclaiming its target. Because this implementation
// sits on top of Go's own memory-safe allocator rather than raw
// malloc/free, a swept cell's backing storage is not actually
// deallocated out from under a WeakGc still pointing at it — the cell is
// instead tombstoned (header.freed) during sweep, and every WeakGc
// operation checks that flag before touching the payload.
type WeakGc[T any] struct {
	cell  *cell[T]
	realm *Arena
}

// NewWeak creates a weak reference to p's target.
func NewWeak[T any](a *Arena, p Gc[T]) WeakGc[T] {
	p.checkRealm(a)
	return WeakGc[T]{cell: p.cell, realm: a}
}

func (w WeakGc[T]) checkRealm(a *Arena) {
	if w.cell == nil || w.realm != a {
		panic(UsageError("gcarena: weak reference does not belong to this arena"))
	}
}

// IsRemoved reports whether the target has been swept.
func (w WeakGc[T]) IsRemoved() bool {
	return w.cell.freed
}

// Upgrade returns a strong Gc to the target and true, or the zero Gc and
// false if the target has already been swept.
func (w WeakGc[T]) Upgrade(a *Arena) (Gc[T], bool) {
	w.checkRealm(a)
	if w.cell.freed {
		return Gc[T]{}, false
	}
	return Gc[T]{cell: w.cell, realm: a}, true
}

// Borrow returns a shared reference to the payload and true, or nil and
// false if the target has already been swept.
func (w WeakGc[T]) Borrow(owner *Owner) (*T, bool) {
	w.realm.checkOwner(owner)
	if w.cell.freed {
		return nil, false
	}
	return &w.cell.value, true
}
