package gcarena

import (
	"reflect"
	"sync"
	"unsafe"
)

// vtable is the per-payload-type descriptor: its footprint, whether it
// can contain further managed pointers, and the thunks that trace and
// drop it in place. One vtable exists per concrete payload type, created
// lazily on first use and memoized for the lifetime of the process.
type vtable struct {
	size       uintptr
	align      uintptr
	needsTrace bool
	trace      func(h *header, m *Marker)
	drop       func(h *header)
}

var vtables sync.Map // reflect.Type -> *vtable

// vtableFor returns the memoized vtable for T, constructing it on first
// use. Go has no per-generic-instantiation package variable, so a
// registry keyed by reflect.Type stands in for the "one static v-table
// per type" the spec calls for.
func vtableFor[T any]() *vtable {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := vtables.Load(key); ok {
		return v.(*vtable)
	}
	v, _ := vtables.LoadOrStore(key, newVTable[T]())
	return v.(*vtable)
}

func newVTable[T any]() *vtable {
	var zero T
	needsTrace := false
	if tr, ok := any(&zero).(Trace); ok {
		needsTrace = tr.NeedsTrace()
	}

	vt := &vtable{
		size:       unsafe.Sizeof(cell[T]{}),
		align:      unsafe.Alignof(cell[T]{}),
		needsTrace: needsTrace,
		trace: func(h *header, m *Marker) {
			c := (*cell[T])(unsafe.Pointer(h))
			if tr, ok := any(&c.value).(Trace); ok {
				tr.TraceRefs(m)
			}
		},
		drop: func(h *header) {
			c := (*cell[T])(unsafe.Pointer(h))
			if dr, ok := any(&c.value).(Dropper); ok {
				dr.Drop()
			}
		},
	}

	// The status bits stolen from the v-table pointer require every
	// v-table to land on at least a 4-byte boundary; normal Go pointers
	// are always word-aligned, but this is asserted rather than assumed
	// since the whole packed-cell scheme depends on it.
	if uintptr(unsafe.Pointer(vt))&statusMask != 0 {
		panic(UsageError("gcarena: vtable address is not sufficiently aligned to pack a tracing status"))
	}
	return vt
}
