// Package combinatorics computes factorials, combinations, permutations,
// binomial expansions, and Pascal's triangle on top of the overflow-aware
// reductions in package reduce.
//
// Every count is exact or reported as an overflow; nothing wraps. Functions
// that run a reduction return its reduce.OverflowState so callers can see
// which factor overflowed and the partial result before it.
//
//	state, err := combinatorics.Combination[uint64](ctx, 52, 5, combinatorics.NoRepeat)
//	// state.Value() == 2598960
package combinatorics
