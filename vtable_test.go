package gcarena

import "testing"

func TestVTableIsMemoizedPerType(t *testing.T) {
	a := vtableFor[Leaf[int]]()
	b := vtableFor[Leaf[int]]()
	if a != b {
		t.Fatal("vtableFor should return the same descriptor for the same type")
	}

	c := vtableFor[Leaf[string]]()
	if a == c {
		t.Fatal("vtableFor should return distinct descriptors for distinct types")
	}
}

func TestVTableNeedsTraceReflectsPayload(t *testing.T) {
	leaf := vtableFor[Leaf[int]]()
	if leaf.needsTrace {
		t.Fatal("Leaf[int] should not need tracing")
	}

	n := vtableFor[node]()
	if !n.needsTrace {
		t.Fatal("node should need tracing")
	}
}
