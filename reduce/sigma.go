package reduce

import (
	"context"

	"github.com/kbukum/stdmath/checked"
	"github.com/kbukum/stdmath/pipeline"
)

// reduction is the descriptor shared by Sigma and Product.
type reduction[T, R any] struct {
	source  *pipeline.Pipeline[T]
	initial R
	method  Method[T, R]
	opts    []Option
}

func (r *reduction[T, R]) reduceWith(ctx context.Context, rc *Context[T, R], defaultName string) (OverflowState[T, R], error) {
	o := buildOptions(defaultName, r.opts)
	return fold(ctx, r.source.Iter(ctx), r.method, rc, o)
}

// Sigma is a lazy summation over a pipeline. Nothing is pulled until Reduce
// is called, and every call pulls the source afresh.
type Sigma[T, R any] struct {
	reduction[T, R]
}

// NewSigma sums source with CheckedAdd starting from 0.
func NewSigma[N checked.Number](source *pipeline.Pipeline[N], opts ...Option) *Sigma[N, N] {
	return SigmaOf(source, N(0), CheckedAdd[N](), opts...)
}

// SigmaOf builds a summation with an explicit initial value and Method.
func SigmaOf[T, R any](source *pipeline.Pipeline[T], initial R, m Method[T, R], opts ...Option) *Sigma[T, R] {
	return &Sigma[T, R]{reduction[T, R]{source: source, initial: initial, method: m, opts: opts}}
}

// Reduce runs the summation on a fresh Context.
func (s *Sigma[T, R]) Reduce(ctx context.Context) (OverflowState[T, R], error) {
	return s.ReduceWith(ctx, NewContext[T](s.initial))
}

// ReduceWith runs the summation on rc, which must be fresh. rc's initial
// value takes the place of the Sigma's.
func (s *Sigma[T, R]) ReduceWith(ctx context.Context, rc *Context[T, R]) (OverflowState[T, R], error) {
	return s.reduceWith(ctx, rc, "sigma")
}

// Product is a lazy multiplication over a pipeline. Nothing is pulled until
// Reduce is called, and every call pulls the source afresh.
type Product[T, R any] struct {
	reduction[T, R]
}

// NewProduct multiplies source with CheckedMul starting from 1.
func NewProduct[N checked.Number](source *pipeline.Pipeline[N], opts ...Option) *Product[N, N] {
	return ProductOf(source, N(1), CheckedMul[N](), opts...)
}

// ProductOf builds a multiplication with an explicit initial value and
// Method.
func ProductOf[T, R any](source *pipeline.Pipeline[T], initial R, m Method[T, R], opts ...Option) *Product[T, R] {
	return &Product[T, R]{reduction[T, R]{source: source, initial: initial, method: m, opts: opts}}
}

// Reduce runs the multiplication on a fresh Context.
func (p *Product[T, R]) Reduce(ctx context.Context) (OverflowState[T, R], error) {
	return p.ReduceWith(ctx, NewContext[T](p.initial))
}

// ReduceWith runs the multiplication on rc, which must be fresh. rc's
// initial value takes the place of the Product's.
func (p *Product[T, R]) ReduceWith(ctx context.Context, rc *Context[T, R]) (OverflowState[T, R], error) {
	return p.reduceWith(ctx, rc, "product")
}

// Sum is shorthand for NewSigma(source, opts...).Reduce(ctx).
func Sum[N checked.Number](ctx context.Context, source *pipeline.Pipeline[N], opts ...Option) (OverflowState[N, N], error) {
	return NewSigma(source, opts...).Reduce(ctx)
}

// Prod is shorthand for NewProduct(source, opts...).Reduce(ctx).
func Prod[N checked.Number](ctx context.Context, source *pipeline.Pipeline[N], opts ...Option) (OverflowState[N, N], error) {
	return NewProduct(source, opts...).Reduce(ctx)
}
