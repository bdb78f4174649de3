package gcarena

import "math"

// phase is the collector's point in the Sleep -> Wake -> Mark -> Sweep ->
// Sleep cycle. Phases only ever advance in this order within one cycle.
type phase uint8

const (
	phaseSleep phase = iota
	phaseWake
	phaseMark
	phaseSweep
)

func (p phase) String() string {
	switch p {
	case phaseSleep:
		return "sleep"
	case phaseWake:
		return "wake"
	case phaseMark:
		return "mark"
	case phaseSweep:
		return "sweep"
	default:
		return "unknown"
	}
}

const (
	defaultPauseFactor   = 0.5
	defaultTimingFactor  = 1.5
	defaultMinSleep      = uintptr(4096)
	defaultRootVisitCost = 32.0
)

// Arena owns the heap: the singly-linked list of all live cells, the two
// gray stacks, the sweep cursor, the allocation-debt pacing state, and
// the root list sentinel. Exactly one Owner may be bound to an Arena;
// every Gc, WeakGc and RootGuard it hands out is tagged with the Arena's
// identity and checked against it on every use.
type Arena struct {
	owner *Owner

	all *header

	grays      []*header
	graysAgain []*header

	sweep     *header
	sweepPrev *header

	totalAllocated uintptr
	rememberedSize uintptr
	wakeupTotal    uintptr
	allocationDebt float64

	phase phase

	roots RootGuard // sentinel; arena/cell fields unused

	pauseFactor   float64
	timingFactor  float64
	minSleep      uintptr
	rootVisitCost float64
}

// ArenaOption configures pacing constants on a new Arena. The teacher
// standard library exposes these as a single process-wide GOGC knob;
// this is a library with no process-global state, so each Arena takes
// its own, following the functional-options idiom instead.
type ArenaOption func(*Arena)

// WithPauseFactor overrides PAUSE_FACTOR (default 0.5): the fraction of
// the prior cycle's surviving bytes added to the next wakeup threshold.
func WithPauseFactor(f float64) ArenaOption {
	return func(a *Arena) { a.pauseFactor = f }
}

// WithTimingFactor overrides TIMING_FACTOR (default 1.5): controls how
// much allocation debt each byte allocated during an active cycle incurs.
func WithTimingFactor(f float64) ArenaOption {
	return func(a *Arena) { a.timingFactor = f }
}

// WithMinSleep overrides MIN_SLEEP (default 4096): the minimum number of
// bytes the arena must allocate before the next cycle can wake.
func WithMinSleep(n uintptr) ArenaOption {
	return func(a *Arena) { a.minSleep = n }
}

// WithRootVisitCost overrides the fixed pacing cost charged per root
// guard visited during the Wake phase.
func WithRootVisitCost(cost float64) ArenaOption {
	return func(a *Arena) { a.rootVisitCost = cost }
}

// NewArena creates an arena bound to owner. It is unsound to bind the
// same owner to two arenas; doing so panics.
func NewArena(owner *Owner, opts ...ArenaOption) *Arena {
	if owner == nil {
		panic(UsageError("gcarena: NewArena requires a non-nil owner"))
	}
	if owner.realm != nil {
		panic(UsageError("gcarena: owner is already bound to an arena"))
	}
	a := &Arena{
		owner:         owner,
		wakeupTotal:   defaultMinSleep,
		phase:         phaseSleep,
		pauseFactor:   defaultPauseFactor,
		timingFactor:  defaultTimingFactor,
		minSleep:      defaultMinSleep,
		rootVisitCost: defaultRootVisitCost,
	}
	a.initRootSentinel()
	for _, opt := range opts {
		opt(a)
	}
	a.wakeupTotal = a.minSleep
	owner.realm = a
	return a
}

func (a *Arena) checkOwner(owner *Owner) {
	if owner == nil || owner.realm != a {
		panic(UsageError("gcarena: owner does not belong to this arena"))
	}
}

// Allocate adds value to the heap and returns a managed pointer to it.
// Allocate is a free function, not a method, because Go methods cannot
// introduce a type parameter beyond their receiver's.
func Allocate[T any](a *Arena, owner *Owner, value T) Gc[T] {
	a.checkOwner(owner)

	c := newCell(a.all, value)
	a.all = &c.header
	size := c.vtable().size

	a.totalAllocated += size

	if a.phase == phaseSleep && a.totalAllocated > a.wakeupTotal {
		a.phase = phaseWake
	}
	if a.phase != phaseSleep {
		a.allocationDebt += float64(size) * (1 + 1/a.timingFactor)
	}
	if a.phase == phaseSweep && a.sweepPrev == nil {
		a.sweepPrev = a.all
	}

	return Gc[T]{cell: c, realm: a}
}

// Collect runs the collector for one paced slice of work: phase steps
// accounting, approximately, the size of each cell visited and a fixed
// cost per root visited, until the outstanding allocation debt is paid
// down or the cycle reaches Sleep. It always returns promptly; work left
// over is resumed on the next call.
func (a *Arena) Collect(owner *Owner) {
	a.checkOwner(owner)
	if a.phase == phaseSleep {
		return
	}

	work := a.allocationDebt
	var workDone float64
	for workDone < work && a.phase != phaseSleep {
		workDone += a.step()
	}
	a.allocationDebt = math.Max(0, a.allocationDebt-workDone)
}

// CollectFull forces a complete collection cycle regardless of pacing. A
// cycle already in progress is first run to Sleep; the arena is then
// woken and a fresh cycle runs from Wake back to Sleep before returning.
func (a *Arena) CollectFull(owner *Owner) {
	a.checkOwner(owner)
	a.allocationDebt = math.Inf(1)
	for a.phase != phaseSleep {
		a.step()
	}
	a.phase = phaseWake
	for a.phase != phaseSleep {
		a.step()
	}
	a.allocationDebt = 0
}

// Close releases every root and runs a full collection, reclaiming every
// live cell (including ones that were only rooted) and running its drop
// thunk. This is the Go stand-in for the arena's Rust Drop impl, which
// clears the root list and collects unconditionally when the arena
// itself goes out of scope.
func (a *Arena) Close(owner *Owner) {
	a.checkOwner(owner)
	a.initRootSentinel()
	a.CollectFull(owner)
}

// step advances the phase machine by one unit of work and returns the
// approximate cost of the work it performed, for pacing purposes.
func (a *Arena) step() float64 {
	switch a.phase {
	case phaseWake:
		return a.stepWake()
	case phaseMark:
		return a.stepMark()
	case phaseSweep:
		return a.stepSweep()
	default:
		return 0
	}
}

func (a *Arena) stepWake() float64 {
	a.sweepPrev = nil

	var cost float64
	for g := a.roots.next; g != &a.roots; g = g.next {
		h := g.cell
		if h.status() == Untraced {
			// Every root is pushed to grays unconditionally, unlike an
			// interior marker.mark: a root's needs_trace may be false
			// (a rooted leaf), and it is still traced and promoted to
			// Traced by the mark worker.
			h.setStatus(Marked)
			a.grays = append(a.grays, h)
		}
		cost += a.rootVisitCost
	}

	a.phase = phaseMark
	return cost
}

func (a *Arena) stepMark() float64 {
	var h *header
	if n := len(a.grays); n > 0 {
		h = a.grays[n-1]
		a.grays = a.grays[:n-1]
	} else if n := len(a.graysAgain); n > 0 {
		h = a.graysAgain[n-1]
		a.graysAgain = a.graysAgain[:n-1]
	} else {
		a.phase = phaseSweep
		a.sweep = a.all
		a.rememberedSize = 0
		return 0
	}

	vt := h.vtable()
	vt.trace(h, &Marker{arena: a})
	h.setStatus(Traced)
	return float64(vt.size)
}

func (a *Arena) stepSweep() float64 {
	cur := a.sweep
	if cur == nil {
		wakeup := a.totalAllocated + maxUintptr(a.minSleep, uintptr(math.Round(float64(a.rememberedSize)*a.pauseFactor)))
		a.wakeupTotal = wakeup
		a.allocationDebt = 0
		a.phase = phaseSleep
		return 0
	}

	size := cur.vtable().size

	// White (Untraced) or only weakly reachable (MarkedWeak): unreached
	// this cycle, reclaim it. Marked is deliberately NOT reclaimed here
	// alongside them: a reachable non-traceable payload is grayed by its
	// marker but never pushed onto the gray stack (mark only enqueues
	// when needsTrace), so it never gets promoted to Traced — treating
	// Marked as white would wrongly free a live, possibly rooted, cell.
	if cur.status() == Untraced || cur.status() == MarkedWeak {
		if a.sweepPrev == nil {
			a.all = cur.next
		} else {
			a.sweepPrev.next = cur.next
		}
		a.totalAllocated -= size
		cur.vtable().drop(cur)
		cur.freed = true
		a.sweep = cur.next
		return float64(size)
	}

	a.rememberedSize += size
	cur.setStatus(Untraced)
	a.sweepPrev = cur
	a.sweep = cur.next
	return float64(size)
}

func maxUintptr(a, b uintptr) uintptr {
	if a > b {
		return a
	}
	return b
}

// Stats is a point-in-time snapshot of the arena's pacing counters,
// mirroring the host-visible view runtime.ReadMemStats gives into Go's
// own collector.
type Stats struct {
	Phase          string
	TotalAllocated uintptr
	RememberedSize uintptr
	WakeupTotal    uintptr
	AllocationDebt float64
}

func (a *Arena) Stats() Stats {
	return Stats{
		Phase:          a.phase.String(),
		TotalAllocated: a.totalAllocated,
		RememberedSize: a.rememberedSize,
		WakeupTotal:    a.wakeupTotal,
		AllocationDebt: a.allocationDebt,
	}
}
