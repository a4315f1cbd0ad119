// Package reduce provides lazy, overflow-aware reductions over pipelines.
//
// A reduction pulls elements one at a time from a pipeline.Iterator and
// folds each into a running total with a Method. The built-in Methods,
// CheckedAdd and CheckedMul, detect when a result leaves the representable
// range of the numeric type; Custom wraps any combinator that follows the
// same contract.
//
// Overflow never panics and never surfaces as an error return. The first
// overflowing element stops the reduction, nothing further is pulled from
// the source, and the outcome is returned as a terminal OverflowState
// carrying the element and the partial total before it. Errors are reserved
// for collaborator failures such as a failing source or a misused Context.
//
// Each run owns a Context that records its progress. Sigma and Product
// create one per Reduce call; ReduceWith and Fold accept a caller-supplied
// Context so it can be inspected afterwards.
//
// # Usage
//
//	state, err := reduce.Sum(ctx, pipeline.FromSlice([]int8{127, 1}))
//	// state.String() == "Overflow{at: 1, partial: 127, index: 1}"
//
//	fact := reduce.NewProduct(pipeline.Range[uint64](1, 20))
//	total, err := fact.Reduce(ctx) // Ok(2432902008176640000)
package reduce
