// Package gcarena implements an incremental, tri-color, mark-and-sweep
// garbage collector meant to be embedded inside a host program such as a
// language runtime or interpreter.
//
// An Arena owns a singly-linked list of cells and a phase machine
// (Sleep, Wake, Mark, Sweep). Host code allocates payloads through
// Allocate, obtaining a Gc[T] — a typed, copyable handle to a cell. Reads
// go through Gc.Borrow with a shared *Owner; mutations go through
// Gc.BorrowMut, which fires the write barrier before returning the
// exclusive reference. Arena.Collect advances the phase machine by one
// paced slice of work; Arena.CollectFull forces a complete cycle.
//
// The collector never moves or compacts cells, never runs on more than
// one goroutine, and never collects concurrently with mutation: all of
// its operations are synchronous calls made by the single thread that
// owns the arena.
package gcarena
