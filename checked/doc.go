// Package checked provides overflow-checked arithmetic over Go's fixed-width
// numeric types.
//
// Every operation returns the result together with an ok flag. When ok is
// false the mathematical result does not fit the operand type and the
// returned value must not be used.
//
// Integers are checked for wraparound. Floats are checked for a finite pair
// of operands producing ±Inf; NaN propagation is left to the caller.
//
// # Usage
//
//	sum, ok := checked.Add[int8](127, 1) // ok == false
//	p, ok := checked.Pow[uint64](17, 5)  // 1419857, true
package checked
