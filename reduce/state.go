package reduce

import (
	"fmt"

	"github.com/kbukum/stdmath/errors"
)

// OverflowState is the outcome of a reduction: either Ok with the final
// accumulated value, or Overflow with the element that could not be
// combined and the partial result accumulated before it. An Overflow state
// is terminal.
type OverflowState[T, R any] struct {
	value      R
	at         T
	index      int
	overflowed bool
}

// Ok returns a successful state holding value.
func Ok[T, R any](value R) OverflowState[T, R] {
	return OverflowState[T, R]{value: value, index: -1}
}

// Overflow returns a terminal state for element at, found at position index
// of the sequence, with partial accumulated before it.
func Overflow[T, R any](at T, partial R, index int) OverflowState[T, R] {
	return OverflowState[T, R]{value: partial, at: at, index: index, overflowed: true}
}

// IsOk reports whether the reduction completed without overflow.
func (s OverflowState[T, R]) IsOk() bool { return !s.overflowed }

// IsOverflow reports whether the reduction stopped on overflow.
func (s OverflowState[T, R]) IsOverflow() bool { return s.overflowed }

// Value returns the final value for Ok, or the partial value for Overflow.
func (s OverflowState[T, R]) Value() R { return s.value }

// At returns the overflowing element. ok is false for an Ok state.
func (s OverflowState[T, R]) At() (at T, ok bool) {
	return s.at, s.overflowed
}

// Index returns the 0-based position of the overflowing element, or -1 for
// an Ok state.
func (s OverflowState[T, R]) Index() int {
	if !s.overflowed {
		return -1
	}
	return s.index
}

// Result returns the final value, or an ARITHMETIC_OVERFLOW error.
func (s OverflowState[T, R]) Result() (R, error) {
	if s.overflowed {
		var zero R
		return zero, s.Err()
	}
	return s.value, nil
}

// Err returns nil for Ok and an ARITHMETIC_OVERFLOW AppError otherwise.
func (s OverflowState[T, R]) Err() error {
	return s.ErrFor("reduction")
}

// ErrFor is Err with the failing operation named in the message.
func (s OverflowState[T, R]) ErrFor(operation string) error {
	if !s.overflowed {
		return nil
	}
	return errors.Overflow(operation, s.at, s.value, s.index)
}

// String renders the state as Ok(v) or Overflow{at: a, partial: p, index: i}.
func (s OverflowState[T, R]) String() string {
	if !s.overflowed {
		return fmt.Sprintf("Ok(%v)", s.value)
	}
	return fmt.Sprintf("Overflow{at: %v, partial: %v, index: %d}", s.at, s.value, s.index)
}
