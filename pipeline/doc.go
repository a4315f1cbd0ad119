// Package pipeline provides composable, pull-based element sequences.
//
// Pipelines are lazy: no work happens until values are pulled, either by
// Collect or by a reduction in package reduce. Each stage pulls from the
// previous stage on demand, one value at a time, so infinite sources are
// fine as long as the consumer stops early.
//
// # Sources
//
//   - FromSlice, From: wrap existing values or an iterator
//   - Range: inclusive integer interval
//   - Generate, Repeat: infinite sources
//
// # Operators
//
//   - Map: transform each value
//   - Filter: keep values matching a predicate
//   - Exclude: drop listed values
//   - Take: stop after n values
//   - Reverse: yield a finite source back to front
//   - Concat: join pipelines sequentially
//
// # Usage
//
//	squares := pipeline.Map(pipeline.Range(1, 10), func(_ context.Context, n int) (int, error) {
//	    return n * n, nil
//	})
//	odd := pipeline.Filter(squares, func(n int) bool { return n%2 == 1 })
//	results, _ := pipeline.Collect(ctx, odd)
package pipeline
