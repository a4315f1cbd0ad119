package pipeline

import "context"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Pipeline is a lazy element sequence. Every call to Iter starts a fresh
// pass over the source; nothing is pulled until the iterator's Next is
// called.
type Pipeline[T any] struct {
	create func(ctx context.Context) Iterator[T]
}

// From creates a single-pass pipeline over an existing Iterator.
func From[T any](iter Iterator[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return iter
		},
	}
}

// FromSlice creates a pipeline from a slice of values.
func FromSlice[T any](items []T) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// Collect pulls every value into a slice. On error the values pulled so
// far are returned with it.
func Collect[T any](ctx context.Context, p *Pipeline[T]) ([]T, error) {
	iter := p.create(ctx)
	defer iter.Close()
	var result []T
	for {
		val, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// Iter returns a fresh Iterator over p. The caller must Close it.
func (p *Pipeline[T]) Iter(ctx context.Context) Iterator[T] {
	return p.create(ctx)
}

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }
