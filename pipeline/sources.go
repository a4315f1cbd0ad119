package pipeline

import (
	"context"

	"github.com/kbukum/stdmath/checked"
)

// Range yields every integer in the inclusive interval [start, end].
// It is empty when start > end and stops cleanly at the type's maximum.
func Range[N checked.Integer](start, end N) *Pipeline[N] {
	return &Pipeline[N]{
		create: func(_ context.Context) Iterator[N] {
			return &rangeIter[N]{next: start, end: end, done: start > end}
		},
	}
}

// Generate yields fn(0), fn(1), fn(2), ... without end. Bound it with Take
// or a short-circuiting consumer.
func Generate[T any](fn func(i int) T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &generateIter[T]{fn: fn}
		},
	}
}

// Repeat yields v forever.
func Repeat[T any](v T) *Pipeline[T] {
	return Generate(func(int) T { return v })
}

type rangeIter[N checked.Integer] struct {
	next N
	end  N
	done bool
}

func (it *rangeIter[N]) Next(ctx context.Context) (N, bool, error) {
	if it.done {
		var zero N
		return zero, false, nil
	}
	if err := ctx.Err(); err != nil {
		var zero N
		return zero, false, err
	}
	val := it.next
	if val == it.end {
		it.done = true
	} else {
		it.next++
	}
	return val, true, nil
}

func (it *rangeIter[N]) Close() error { return nil }

type generateIter[T any] struct {
	fn    func(int) T
	index int
}

func (it *generateIter[T]) Next(ctx context.Context) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, false, err
	}
	val := it.fn(it.index)
	it.index++
	return val, true, nil
}

func (it *generateIter[T]) Close() error { return nil }
