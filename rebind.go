package gcarena

import (
	"fmt"
	"unsafe"
)

// Rebind reinterprets a value whose type carries one scope annotation
// (From) as the memory-layout-identical type carrying another (To). It
// never changes the bytes of v or the address of any cell it refers to;
// it exists because Go generics have no lifetime parameter to swap the
// way the original design's Rebind did, so every one of that design's
// three legitimate uses — handing an arena-exclusive pointer back out as
// arena-shared, extending a rooted pointer past its guard's scope, and
// storing pointers with a different nominal scope inside a traced
// collection — collapses here into one reinterpret-cast, guarded by a
// size assertion as a safety net against a mismatched To.
func Rebind[From, To any](v From) To {
	var to To
	if unsafe.Sizeof(v) != unsafe.Sizeof(to) {
		panic(UsageError(fmt.Sprintf("gcarena: Rebind size mismatch: %T is %d bytes, %T is %d bytes", v, unsafe.Sizeof(v), to, unsafe.Sizeof(to))))
	}
	return *(*To)(unsafe.Pointer(&v))
}
