package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/kbukum/stdmath/checked"
	"github.com/kbukum/stdmath/errors"
)

// TypeNames lists every --type value in the order help text shows them.
var TypeNames = []string{"u8", "u16", "u32", "u64", "i8", "i16", "i32", "i64", "f32", "f64"}

// runFunc executes one command instantiated for a concrete numeric type.
type runFunc func(ctx context.Context, a *app, args []string) (*Outcome, error)

// integerRuns builds the type table for commands limited to integers.
func integerRuns(u8, u16, u32, u64, i8, i16, i32, i64 runFunc) map[string]runFunc {
	return map[string]runFunc{
		"u8": u8, "u16": u16, "u32": u32, "u64": u64,
		"i8": i8, "i16": i16, "i32": i32, "i64": i64,
	}
}

// numberRuns extends an integer table with the float types.
func numberRuns(ints map[string]runFunc, f32, f64 runFunc) map[string]runFunc {
	runs := make(map[string]runFunc, len(ints)+2)
	for k, v := range ints {
		runs[k] = v
	}
	runs["f32"] = f32
	runs["f64"] = f64
	return runs
}

// supported returns the names in runs in TypeNames order.
func supported(runs map[string]runFunc) []string {
	out := make([]string, 0, len(runs))
	for _, name := range TypeNames {
		if _, ok := runs[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// parse reads s as an N, rejecting values N cannot hold exactly.
func parse[N checked.Number](field, s string) (N, error) {
	var zero N
	switch {
	case checked.IsFloat[N]():
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return zero, errors.InvalidInput(field, fmt.Sprintf("%q is not a finite number", s))
		}
		v := N(f)
		if math.IsInf(float64(v), 0) {
			return zero, errors.InvalidInput(field, fmt.Sprintf("%s is out of range", s))
		}
		return v, nil
	case checked.IsSigned[N]():
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return zero, errors.InvalidInput(field, fmt.Sprintf("%q is not an integer", s))
		}
		v := N(i)
		if int64(v) != i {
			return zero, errors.InvalidInput(field, fmt.Sprintf("%s is out of range", s))
		}
		return v, nil
	default:
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return zero, errors.InvalidInput(field, fmt.Sprintf("%q is not a non-negative integer", s))
		}
		v := N(u)
		if uint64(v) != u {
			return zero, errors.InvalidInput(field, fmt.Sprintf("%s is out of range", s))
		}
		return v, nil
	}
}

// parseArgs parses args positionally into fields.
func parseArgs[N checked.Number](fields []string, args []string) ([]N, error) {
	if len(args) != len(fields) {
		return nil, errors.InvalidInput("args", fmt.Sprintf("expected %d arguments %v, got %d", len(fields), fields, len(args)))
	}
	out := make([]N, len(args))
	for i, s := range args {
		v, err := parse[N](fields[i], s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
