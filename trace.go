package gcarena

// Trace is implemented by host payload types that may contain managed
// pointers. NeedsTrace may conservatively return true; returning false
// for a type that actually holds a Gc or WeakGc is a soundness bug (the
// collector will never mark, and may reclaim, the pointers it misses.
// TraceRefs must call Mark or MarkWeak for every outgoing managed pointer
// the receiver owns.
type Trace interface {
	NeedsTrace() bool
	TraceRefs(m *Marker)
}

// Dropper is implemented by payload types that need to run cleanup when
// their cell is reclaimed. Per the arena's drop discipline, Drop must not
// dereference any peer managed pointer: by the time it runs, cells
// earlier in this sweep pass may already have been freed.
type Dropper interface {
	Drop()
}
