package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/stdmath/checked"
	"github.com/kbukum/stdmath/combinatorics"
	"github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/reduce"
	"github.com/kbukum/stdmath/validation"
)

// maxPascalRows bounds the triangle the CLI will build.
const maxPascalRows = 4096

// NewFactorialCommand creates the factorial command.
func NewFactorialCommand(a *app) *cobra.Command {
	runs := integerRuns(
		factorialRun[uint8], factorialRun[uint16], factorialRun[uint32], factorialRun[uint64],
		factorialRun[int8], factorialRun[int16], factorialRun[int32], factorialRun[int64],
	)
	return &cobra.Command{
		Use:     "factorial <n>",
		Short:   "Compute n!",
		Example: "  stdmath factorial 20\n  stdmath factorial -t u8 6",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, commandSpec{name: "factorial", runs: runs}, args)
		},
	}
}

func factorialRun[N checked.Integer](ctx context.Context, a *app, args []string) (*Outcome, error) {
	v, err := parseArgs[N]([]string{"n"}, args)
	if err != nil {
		return nil, err
	}
	state, err := combinatorics.Factorial(ctx, v[0], a.reduceOptions()...)
	if err != nil {
		return nil, err
	}
	return outcomeOf(state), nil
}

// NewDigitsCommand creates the digits command.
func NewDigitsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "digits <n>",
		Short: "Count the decimal digits of n!",
		Long: `Count the decimal digits of n! without computing n! itself.

The count comes from a float64 sum of base-10 logarithms, so it ignores --type.`,
		Example: "  stdmath digits 100",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, commandSpec{name: "digits", untyped: digitsRun}, args)
		},
	}
}

func digitsRun(ctx context.Context, a *app, args []string) (*Outcome, error) {
	v, err := parseArgs[uint64]([]string{"n"}, args)
	if err != nil {
		return nil, err
	}
	digits, err := combinatorics.FactorialDigits(ctx, v[0], a.reduceOptions()...)
	if err != nil {
		return nil, err
	}
	return valueOutcome(digits), nil
}

// repetitionFlag resolves --repeat against the configured default.
type repetitionFlag struct {
	repeat bool
	cmd    *cobra.Command
	a      *app
}

func (f *repetitionFlag) value() (combinatorics.Repetition, error) {
	if f.cmd.Flags().Changed("repeat") {
		if f.repeat {
			return combinatorics.Repeat, nil
		}
		return combinatorics.NoRepeat, nil
	}
	return combinatorics.ParseRepetition(f.a.cfg.Math.Repetition)
}

func newRepetitionFlag(a *app, cmd *cobra.Command) *repetitionFlag {
	f := &repetitionFlag{cmd: cmd, a: a}
	cmd.Flags().BoolVar(&f.repeat, "repeat", false, "allow an item to be chosen more than once (default from math.repetition)")
	return f
}

// NewCombinationCommand creates the combination command.
func NewCombinationCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "combination <n> <r>",
		Aliases: []string{"choose"},
		Short:   "Count the ways to choose r of n items",
		Example: "  stdmath combination 52 5\n  stdmath combination --repeat 5 3",
		Args:    cobra.ExactArgs(2),
	}
	rep := newRepetitionFlag(a, cmd)
	runs := integerRuns(
		countRun(rep, combinatorics.Combination[uint8]), countRun(rep, combinatorics.Combination[uint16]),
		countRun(rep, combinatorics.Combination[uint32]), countRun(rep, combinatorics.Combination[uint64]),
		countRun(rep, combinatorics.Combination[int8]), countRun(rep, combinatorics.Combination[int16]),
		countRun(rep, combinatorics.Combination[int32]), countRun(rep, combinatorics.Combination[int64]),
	)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.execute(cmd, commandSpec{name: "combination", runs: runs}, args)
	}
	return cmd
}

// NewPermutationCommand creates the permutation command.
func NewPermutationCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "permutation <n> <r>",
		Aliases: []string{"arrange"},
		Short:   "Count the ordered arrangements of r of n items",
		Example: "  stdmath permutation 5 3\n  stdmath permutation --repeat -t u32 5 3",
		Args:    cobra.ExactArgs(2),
	}
	rep := newRepetitionFlag(a, cmd)
	runs := integerRuns(
		countRun(rep, combinatorics.Permutation[uint8]), countRun(rep, combinatorics.Permutation[uint16]),
		countRun(rep, combinatorics.Permutation[uint32]), countRun(rep, combinatorics.Permutation[uint64]),
		countRun(rep, combinatorics.Permutation[int8]), countRun(rep, combinatorics.Permutation[int16]),
		countRun(rep, combinatorics.Permutation[int32]), countRun(rep, combinatorics.Permutation[int64]),
	)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return a.execute(cmd, commandSpec{name: "permutation", runs: runs}, args)
	}
	return cmd
}

func countRun[N checked.Integer](
	rep *repetitionFlag,
	count func(context.Context, N, N, combinatorics.Repetition, ...reduce.Option) (reduce.OverflowState[N, N], error),
) runFunc {
	return func(ctx context.Context, a *app, args []string) (*Outcome, error) {
		v, err := parseArgs[N]([]string{"n", "r"}, args)
		if err != nil {
			return nil, err
		}
		r, err := rep.value()
		if err != nil {
			return nil, err
		}
		state, err := count(ctx, v[0], v[1], r, a.reduceOptions()...)
		if err != nil {
			return nil, err
		}
		return outcomeOf(state), nil
	}
}

// NewBinomialCommand creates the binomial command.
func NewBinomialCommand(a *app) *cobra.Command {
	runs := integerRuns(
		binomialRun[uint8], binomialRun[uint16], binomialRun[uint32], binomialRun[uint64],
		binomialRun[int8], binomialRun[int16], binomialRun[int32], binomialRun[int64],
	)
	return &cobra.Command{
		Use:     "binomial <a> <b> <n>",
		Short:   "Expand (a+b)^n term by term",
		Example: "  stdmath binomial -t u32 7 10 5",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, commandSpec{name: "binomial", runs: runs}, args)
		},
	}
}

func binomialRun[N checked.Integer](ctx context.Context, a *app, args []string) (*Outcome, error) {
	v, err := parseArgs[N]([]string{"a", "b", "n"}, args)
	if err != nil {
		return nil, err
	}
	state, err := combinatorics.Binomial(ctx, v[0], v[1], v[2], a.reduceOptions()...)
	if err != nil {
		return nil, err
	}
	return outcomeOf(state), nil
}

// NewPascalCommand creates the pascal command.
func NewPascalCommand(a *app) *cobra.Command {
	runs := integerRuns(
		pascalRun[uint8], pascalRun[uint16], pascalRun[uint32], pascalRun[uint64],
		pascalRun[int8], pascalRun[int16], pascalRun[int32], pascalRun[int64],
	)
	return &cobra.Command{
		Use:     "pascal <rows>",
		Short:   "Print the first rows of Pascal's triangle",
		Example: "  stdmath pascal 5\n  stdmath pascal -t u8 12",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, commandSpec{name: "pascal", runs: runs}, args)
		},
	}
}

func pascalRun[N checked.Integer](_ context.Context, _ *app, args []string) (*Outcome, error) {
	rows, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return nil, errors.InvalidInput("rows", fmt.Sprintf("%q is not an integer", args[0]))
	}
	if err := validation.New().
		NonNegative("rows", rows).
		Max("rows", rows, maxPascalRows).
		Err(); err != nil {
		return nil, err
	}

	triangle, err := combinatorics.Pascal[N](int(rows))
	if err != nil {
		return nil, err
	}
	// Rows are boxed so []uint8 encodes as numbers, not base64.
	rowsOut := make([][]any, len(triangle))
	lines := make([]string, len(triangle))
	for i, row := range triangle {
		rowsOut[i] = make([]any, len(row))
		for j, v := range row {
			rowsOut[i][j] = v
		}
		lines[i] = strings.Trim(fmt.Sprint(row), "[]")
	}
	o := valueOutcome(rowsOut)
	o.lines = lines
	return o, nil
}
