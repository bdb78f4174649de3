package gcarena

import "golang.org/x/exp/constraints"

// Leaf wraps a payload that holds no managed pointers of its own, giving
// it a trivial Trace implementation. Most host-side scalars, strings, and
// plain data structs can be allocated through NewLeaf instead of writing
// a NeedsTrace/TraceRefs pair by hand.
type Leaf[T any] struct {
	Value T
}

func (Leaf[T]) NeedsTrace() bool   { return false }
func (Leaf[T]) TraceRefs(*Marker) {}

// NewLeaf allocates a leaf-wrapped payload.
func NewLeaf[T any](a *Arena, owner *Owner, value T) Gc[Leaf[T]] {
	return Allocate(a, owner, Leaf[T]{Value: value})
}

// NewInt allocates a leaf-wrapped integer.
func NewInt[T constraints.Integer](a *Arena, owner *Owner, value T) Gc[Leaf[T]] {
	return NewLeaf(a, owner, value)
}

// NewFloat allocates a leaf-wrapped floating-point number.
func NewFloat[T constraints.Float](a *Arena, owner *Owner, value T) Gc[Leaf[T]] {
	return NewLeaf(a, owner, value)
}
