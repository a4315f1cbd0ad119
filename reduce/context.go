package reduce

import (
	"github.com/google/uuid"
)

// noCopy makes `go vet` flag accidental copies of a Context.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Context is the mutable state of a single reduction run. It threads the
// running total and the overflow status through each step.
//
// A Context serves exactly one run. Pass it by pointer and never copy it.
// After a run ends abnormally (a panic in a source or combinator) the
// Context is poisoned and must be discarded or Reset before reuse.
// Context is not safe for concurrent use.
type Context[T, R any] struct {
	_ noCopy

	id         uuid.UUID
	value      R
	at         T
	index      int
	steps      int
	overflowed bool
	started    bool
	poisoned   bool
}

// NewContext returns a fresh Context whose running total starts at initial.
func NewContext[T, R any](initial R) *Context[T, R] {
	return &Context[T, R]{id: uuid.New(), value: initial, index: -1}
}

// Reset discards all recorded state and starts over at initial with a new
// run ID.
func (c *Context[T, R]) Reset(initial R) {
	var zero T
	c.id = uuid.New()
	c.value = initial
	c.at = zero
	c.index = -1
	c.steps = 0
	c.overflowed = false
	c.started = false
	c.poisoned = false
}

// ID returns the run ID used to correlate logs and metrics.
func (c *Context[T, R]) ID() uuid.UUID { return c.id }

// RecordStep stores value as the last successfully accumulated total.
// It is a no-op once an overflow has been recorded.
func (c *Context[T, R]) RecordStep(value R) {
	if c.overflowed {
		return
	}
	c.value = value
	c.steps++
}

// RecordOverflow marks the run as overflowed at element at, the index-th
// element of the sequence, with partial accumulated before it. Only the
// first overflow is kept.
func (c *Context[T, R]) RecordOverflow(at T, partial R, index int) {
	if c.overflowed {
		return
	}
	c.at = at
	c.value = partial
	c.index = index
	c.overflowed = true
}

// Current returns a snapshot of the run as an OverflowState. Once
// overflowed, every call returns the same terminal state.
func (c *Context[T, R]) Current() OverflowState[T, R] {
	if c.overflowed {
		return Overflow[T, R](c.at, c.value, c.index)
	}
	return Ok[T](c.value)
}

// Overflowed reports whether an overflow has been recorded.
func (c *Context[T, R]) Overflowed() bool { return c.overflowed }

// Steps returns the number of elements successfully accumulated.
func (c *Context[T, R]) Steps() int { return c.steps }

// Poisoned reports whether a run using this Context exited abnormally.
func (c *Context[T, R]) Poisoned() bool { return c.poisoned }

// begin claims the Context for a run. It fails when the Context already
// served a run or was poisoned.
func (c *Context[T, R]) begin() string {
	switch {
	case c.poisoned:
		return "a previous run exited abnormally"
	case c.started || c.steps > 0 || c.overflowed:
		return "it already served a reduction"
	}
	c.started = true
	return ""
}
