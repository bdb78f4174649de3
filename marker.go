package gcarena

// Marker is the opaque capability passed to a payload's TraceRefs method.
// Its only job is marking a managed pointer reachable; it carries no
// other state a host implementation should depend on.
type Marker struct {
	arena *Arena
}

// mark implements the marker contract from the tri-color algorithm: a
// cell that is already Marked or Traced has been visited and is left
// alone; a white or only weakly marked (MarkedWeak) cell is grayed and,
// if its type can itself hold further managed pointers, pushed onto the
// gray stack for the mark worker to trace later.
func (m *Marker) mark(h *header) {
	if s := h.status(); s != Untraced && s != MarkedWeak {
		return
	}
	h.setStatus(Marked)
	if h.vtable().needsTrace {
		m.arena.grays = append(m.arena.grays, h)
	}
}

// markWeak sets MarkedWeak on a still-white cell without graying it: the
// edge being traced does not keep the cell's own successors alive.
func (m *Marker) markWeak(h *header) {
	if h.status() == Untraced {
		h.setStatus(MarkedWeak)
	}
}

// Mark records that p is reachable from the cell currently being traced.
// Host TraceRefs implementations call this for every Gc field they own.
// Marking the zero Gc (no target) is a no-op.
func Mark[T any](m *Marker, p Gc[T]) {
	if p.cell == nil {
		return
	}
	m.mark(&p.cell.header)
}

// MarkWeak records a weak edge to w: a still-white target is set
// MarkedWeak, which neither keeps it alive (the sweep reclaims it unless
// a root or a strong edge also reaches it) nor grays its successors.
// Marking the zero WeakGc (no target) is a no-op.
func MarkWeak[T any](m *Marker, w WeakGc[T]) {
	if w.cell == nil {
		return
	}
	m.markWeak(&w.cell.header)
}
