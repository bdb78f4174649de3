package gcarena

import (
	"fmt"
	"unsafe"
)

// Gc is an unforgeable typed handle to a live cell's payload. Handles are
// plain values: copying one never allocates, and every copy refers to
// the same cell. Every operation on a Gc is checked against the Owner
// and Arena it was produced from; a Gc used with the wrong arena or
// owner panics rather than silently reading the wrong heap.
type Gc[T any] struct {
	cell  *cell[T]
	realm *Arena
}

// IsNil reports whether p is the zero Gc, i.e. does not refer to any
// cell. The zero value is useful as the "no pointer yet" state of an
// optional field inside a traceable payload.
func (p Gc[T]) IsNil() bool {
	return p.cell == nil
}

func (p Gc[T]) checkRealm(a *Arena) {
	if p.cell == nil || p.realm != a {
		panic(UsageError("gcarena: managed pointer does not belong to this arena"))
	}
}

// Borrow returns a shared reference to the payload. It only requires a
// shared Owner: many borrows of many cells may be outstanding together.
func (p Gc[T]) Borrow(owner *Owner) *T {
	p.realm.checkOwner(owner)
	return &p.cell.value
}

// BorrowMut fires the write barrier and returns an exclusive reference to
// the payload. Use this whenever the payload may itself be mutated to
// hold a new managed pointer.
func (p Gc[T]) BorrowMut(owner *Owner, a *Arena) *T {
	p.checkRealm(a)
	a.checkOwner(owner)
	WriteBarrier(a, p)
	return &p.cell.value
}

// BorrowMutUntraced returns an exclusive reference without firing the
// write barrier. It is only legal for payload types that cannot contain
// managed pointers (NeedsTrace() == false); calling it on a traceable
// type panics, since skipping the barrier there could hide a new edge
// from an in-progress mark phase.
func (p Gc[T]) BorrowMutUntraced(owner *Owner) *T {
	p.realm.checkOwner(owner)
	if p.cell.vtable().needsTrace {
		panic(UsageError(fmt.Sprintf("gcarena: BorrowMutUntraced on traceable type %T", p.cell.value)))
	}
	return &p.cell.value
}

// PtrEq reports whether p and q refer to the same cell.
func (p Gc[T]) PtrEq(q Gc[T]) bool {
	return p.cell == q.cell
}

// WriteBarrier must be called before any mutation that installs a new
// managed pointer inside a live cell without going through BorrowMut —
// for instance, a manual unsafe write into a payload obtained via
// BorrowMutUntraced on a type whose NeedsTrace was mis-declared false, or
// any host-side bulk-mutation path that bypasses Gc entirely. If the
// collector is mid-Mark and the cell is already Black (Traced), this
// regrays it so the mark phase revisits its new outgoing edges; the
// reverse rescue (White back to Gray) is never needed because a Black
// cell must never come to reference a White one.
func WriteBarrier[T any](a *Arena, p Gc[T]) {
	p.checkRealm(a)
	h := &p.cell.header
	if a.phase == phaseMark && h.status() == Traced {
		h.setStatus(Marked)
		a.graysAgain = append(a.graysAgain, h)
	}
}

// BorrowMut2 borrows two distinct cells mutably at once, asserting their
// addresses differ and barriering each.
func BorrowMut2[A, B any](owner *Owner, a *Arena, p Gc[A], q Gc[B]) (*A, *B) {
	p.checkRealm(a)
	q.checkRealm(a)
	a.checkOwner(owner)
	if unsafe.Pointer(p.cell) == unsafe.Pointer(q.cell) {
		panic(UsageError("gcarena: BorrowMut2 given the same cell twice"))
	}
	WriteBarrier(a, p)
	WriteBarrier(a, q)
	return &p.cell.value, &q.cell.value
}

// BorrowMut3 borrows three pairwise-distinct cells mutably at once,
// asserting pairwise inequality of their addresses and barriering each.
func BorrowMut3[A, B, C any](owner *Owner, a *Arena, p Gc[A], q Gc[B], r Gc[C]) (*A, *B, *C) {
	p.checkRealm(a)
	q.checkRealm(a)
	r.checkRealm(a)
	a.checkOwner(owner)
	pp, qq, rr := unsafe.Pointer(p.cell), unsafe.Pointer(q.cell), unsafe.Pointer(r.cell)
	if pp == qq || qq == rr || pp == rr {
		panic(UsageError("gcarena: BorrowMut3 given overlapping cells"))
	}
	WriteBarrier(a, p)
	WriteBarrier(a, q)
	WriteBarrier(a, r)
	return &p.cell.value, &q.cell.value, &r.cell.value
}
