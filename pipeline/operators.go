package pipeline

import "context"

// Map transforms each value using fn.
func Map[I, O any](p *Pipeline[I], fn func(context.Context, I) (O, error)) *Pipeline[O] {
	return &Pipeline[O]{
		create: func(ctx context.Context) Iterator[O] {
			return &mapIter[I, O]{source: p.create(ctx), fn: fn}
		},
	}
}

// Filter keeps only values that satisfy the predicate.
func Filter[T any](p *Pipeline[T], fn func(T) bool) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &filterIter[T]{source: p.create(ctx), fn: fn}
		},
	}
}

// Exclude drops every value equal to one of the excluded values.
func Exclude[T comparable](p *Pipeline[T], excluded ...T) *Pipeline[T] {
	skip := make(map[T]struct{}, len(excluded))
	for _, v := range excluded {
		skip[v] = struct{}{}
	}
	return Filter(p, func(v T) bool {
		_, drop := skip[v]
		return !drop
	})
}

// Take yields at most n values, then stops pulling from the source.
func Take[T any](p *Pipeline[T], n int) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &takeIter[T]{source: p.create(ctx), remaining: n}
		},
	}
}

// Reverse yields the values of a finite pipeline in reverse order.
// The whole source is pulled on the first call to Next.
func Reverse[T any](p *Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &reverseIter[T]{source: p.create(ctx)}
		},
	}
}

// Concat yields every value of each pipeline in turn. A later pipeline
// is not pulled until the earlier ones are exhausted.
func Concat[T any](pipelines ...*Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			iters := make([]Iterator[T], len(pipelines))
			for i, p := range pipelines {
				iters[i] = p.create(ctx)
			}
			return &concatIter[T]{iters: iters}
		},
	}
}

type mapIter[I, O any] struct {
	source Iterator[I]
	fn     func(context.Context, I) (O, error)
}

func (it *mapIter[I, O]) Next(ctx context.Context) (result O, ok bool, err error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero O
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		var zero O
		return zero, false, err
	}
	return out, true, nil
}

func (it *mapIter[I, O]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type reverseIter[T any] struct {
	source Iterator[T]
	buf    []T
	loaded bool
}

func (it *reverseIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	if !it.loaded {
		for {
			val, ok, err := it.source.Next(ctx)
			if err != nil {
				var zero T
				return zero, false, err
			}
			if !ok {
				break
			}
			it.buf = append(it.buf, val)
		}
		it.loaded = true
	}
	if len(it.buf) == 0 {
		var zero T
		return zero, false, nil
	}
	last := len(it.buf) - 1
	val := it.buf[last]
	it.buf = it.buf[:last]
	return val, true, nil
}

func (it *reverseIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
