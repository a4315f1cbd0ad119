package combinatorics

import (
	"context"
	"math"

	"github.com/kbukum/stdmath/checked"
	"github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/pipeline"
	"github.com/kbukum/stdmath/reduce"
)

// Repetition selects whether an item may be chosen more than once.
type Repetition uint8

const (
	NoRepeat Repetition = iota
	Repeat
)

func (r Repetition) String() string {
	if r == Repeat {
		return "repeat"
	}
	return "no_repeat"
}

// ParseRepetition parses "repeat" or "no_repeat".
func ParseRepetition(s string) (Repetition, error) {
	switch s {
	case "repeat":
		return Repeat, nil
	case "no_repeat", "norepeat", "":
		return NoRepeat, nil
	}
	return NoRepeat, errors.InvalidInput("repetition", "must be repeat or no_repeat")
}

// Sigma sums fn(k) for every k in [start, end].
func Sigma[T checked.Integer, R checked.Number](ctx context.Context, start, end T, fn func(T) R, opts ...reduce.Option) (reduce.OverflowState[R, R], error) {
	return reduce.Sum(ctx, mapRange(start, end, fn), opts...)
}

// Product multiplies fn(k) for every k in [start, end].
func Product[T checked.Integer, R checked.Number](ctx context.Context, start, end T, fn func(T) R, opts ...reduce.Option) (reduce.OverflowState[R, R], error) {
	return reduce.Prod(ctx, mapRange(start, end, fn), opts...)
}

func mapRange[T checked.Integer, R any](start, end T, fn func(T) R) *pipeline.Pipeline[R] {
	return pipeline.Map(pipeline.Range(start, end), func(_ context.Context, k T) (R, error) {
		return fn(k), nil
	})
}

// Factorial returns n! as a product over 1..n. 0! is 1.
func Factorial[N checked.Integer](ctx context.Context, n N, opts ...reduce.Option) (reduce.OverflowState[N, N], error) {
	if err := nonNegative("n", n); err != nil {
		return reduce.Ok[N, N](0), err
	}
	opts = append([]reduce.Option{reduce.WithName("factorial")}, opts...)
	return reduce.Prod(ctx, pipeline.Range(1, n), opts...)
}

// FactorialDigits returns the number of decimal digits of n!.
//
// The count is 1 + floor of a float64 sum of log10(k). The sum carries a
// relative rounding error near 1e-15 per term, so it is exact while
// log10(n!) stays further than that from an integer; this holds for every
// n up to at least 1000. Beyond that an answer may be one too high or too
// low.
func FactorialDigits(ctx context.Context, n uint64, opts ...reduce.Option) (int, error) {
	opts = append([]reduce.Option{reduce.WithName("factorial_digits")}, opts...)
	state, err := Sigma(ctx, 1, n, func(k uint64) float64 { return math.Log10(float64(k)) }, opts...)
	if err != nil {
		return 0, err
	}
	logSum, err := state.Result()
	if err != nil {
		return 0, err
	}
	return 1 + int(math.Floor(logSum)), nil
}

// Combination returns the number of ways to choose r items out of n.
//
// Without repetition r > n yields 0. With repetition the count is
// C(n+r-1, r); choosing from nothing yields 0, and choosing nothing yields
// 1 (the empty multiset) where older versions of this library returned 0.
func Combination[N checked.Integer](ctx context.Context, n, r N, rep Repetition, opts ...reduce.Option) (reduce.OverflowState[N, N], error) {
	if err := nonNegative("n", n); err != nil {
		return reduce.Ok[N, N](0), err
	}
	if err := nonNegative("r", r); err != nil {
		return reduce.Ok[N, N](0), err
	}
	opts = append([]reduce.Option{reduce.WithName("combination")}, opts...)

	if rep == Repeat {
		switch {
		case r == 0:
			return reduce.Ok[N, N](1), nil
		case n == 0:
			return reduce.Ok[N, N](0), nil
		}
		// C(n+r-1, r) == C(n+r-1, n-1); walk the shorter side.
		k, base := r, n-1
		if n-1 < r {
			k, base = n-1, r
		}
		return choose(ctx, base, k, opts)
	}

	if r > n {
		return reduce.Ok[N, N](0), nil
	}
	k := r
	if n-r < k {
		k = n - r
	}
	return choose(ctx, n-k, k, opts)
}

// choose computes C(base+k, k) as a product over i in 1..k of (base+i)/i.
// After step i the accumulator holds C(base+i, i), so each division is
// exact.
func choose[N checked.Integer](ctx context.Context, base, k N, opts []reduce.Option) (reduce.OverflowState[N, N], error) {
	return reduce.ProductOf(pipeline.Range(1, k), N(1), reduce.Custom("binomial_coefficient", chooseStep(base)), opts...).Reduce(ctx)
}

// chooseStep turns C(base+i-1, i-1) into C(base+i, i). The common factor
// of acc and i is divided out first, which leaves i/g dividing base+i, so
// the only multiplication is by the final cofactor and overflows exactly
// when the result does not fit.
func chooseStep[N checked.Integer](base N) reduce.Combinator[N, N] {
	return func(acc, i N) (N, bool) {
		factor, ok := checked.Add(base, i)
		if !ok {
			return acc, false
		}
		g := gcd(acc, i)
		return checked.Mul(acc/g, factor/(i/g))
	}
}

func gcd[N checked.Integer](a, b N) N {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// binomialCoefficient is choose without the reduction engine, for use
// inside other combinators.
func binomialCoefficient[N checked.Integer](n, r N) (N, bool) {
	k := r
	if n-r < k {
		k = n - r
	}
	step := chooseStep(n - k)
	acc := N(1)
	for i := N(1); i <= k; i++ {
		var ok bool
		if acc, ok = step(acc, i); !ok {
			return acc, false
		}
	}
	return acc, true
}

// Permutation returns the number of ordered arrangements of r items out of
// n: n!/(n-r)! without repetition, n^r with repetition.
func Permutation[N checked.Integer](ctx context.Context, n, r N, rep Repetition, opts ...reduce.Option) (reduce.OverflowState[N, N], error) {
	if err := nonNegative("n", n); err != nil {
		return reduce.Ok[N, N](0), err
	}
	if err := nonNegative("r", r); err != nil {
		return reduce.Ok[N, N](0), err
	}
	switch {
	case r == 0:
		return reduce.Ok[N, N](1), nil
	case n == 0:
		return reduce.Ok[N, N](0), nil
	}
	opts = append([]reduce.Option{reduce.WithName("permutation")}, opts...)

	if rep == Repeat {
		if n == 1 {
			return reduce.Ok[N, N](1), nil
		}
		// n >= 2 overflows within 64 factors, so the count only needs
		// to be large enough to get there.
		count := math.MaxInt
		if c, ok := checked.Convert[int](r); ok {
			count = c
		}
		return reduce.Prod(ctx, pipeline.Take(pipeline.Repeat(n), count), opts...)
	}

	if r > n {
		return reduce.Ok[N, N](0), nil
	}
	return reduce.Prod(ctx, pipeline.Range(n-r+1, n), opts...)
}

// Binomial expands (a+b)^n term by term: the sum over r in 0..n of
// C(n, r) * a^(n-r) * b^r. A term that overflows on its own reports the
// offending r.
//
// Every term and every partial sum must fit in N, not just the final
// value. With signed operands whose terms cancel, such as (5 + -5)^3 in
// int8, the expansion reports Overflow even though the power fits.
func Binomial[N checked.Integer](ctx context.Context, a, b, n N, opts ...reduce.Option) (reduce.OverflowState[N, N], error) {
	if err := nonNegative("n", n); err != nil {
		return reduce.Ok[N, N](0), err
	}
	term := func(acc, r N) (N, bool) {
		c, ok := binomialCoefficient(n, r)
		if !ok {
			return acc, false
		}
		an, ok := checked.Pow(a, uint(n-r))
		if !ok {
			return acc, false
		}
		br, ok := checked.Pow(b, uint(r))
		if !ok {
			return acc, false
		}
		t, ok := checked.Mul(c, an)
		if !ok {
			return acc, false
		}
		if t, ok = checked.Mul(t, br); !ok {
			return acc, false
		}
		return checked.Add(acc, t)
	}
	opts = append([]reduce.Option{reduce.WithName("binomial")}, opts...)
	return reduce.SigmaOf(pipeline.Range(0, n), N(0), reduce.Custom("binomial_term", term), opts...).Reduce(ctx)
}

// Pascal returns the first rows rows of Pascal's triangle.
func Pascal[N checked.Integer](rows int) ([][]N, error) {
	if rows < 0 {
		return nil, errors.InvalidInput("rows", "must not be negative")
	}
	triangle := make([][]N, 0, rows)
	for row := 0; row < rows; row++ {
		line := make([]N, row+1)
		line[0], line[row] = 1, 1
		for col := 1; col < row; col++ {
			prev := triangle[row-1]
			v, ok := checked.Add(prev[col-1], prev[col])
			if !ok {
				return triangle, errors.Overflow("pascal", prev[col], prev[col-1], row).
					WithDetail("column", col)
			}
			line[col] = v
		}
		triangle = append(triangle, line)
	}
	return triangle, nil
}

func nonNegative[N checked.Integer](field string, v N) error {
	if v < 0 {
		return errors.InvalidInput(field, "must not be negative")
	}
	return nil
}
