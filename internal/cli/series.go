package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/stdmath/checked"
	"github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/pipeline"
	"github.com/kbukum/stdmath/reduce"
)

// seriesOptions holds the flags shared by sigma and product.
type seriesOptions struct {
	Range   bool
	Pow     uint
	Exclude []string
	Reverse bool
}

// NewSigmaCommand creates the sigma command.
func NewSigmaCommand(a *app) *cobra.Command {
	opts := &seriesOptions{}
	runs := numberRuns(
		integerRuns(
			sigmaRun(opts, pipeline.Range[uint8]), sigmaRun(opts, pipeline.Range[uint16]),
			sigmaRun(opts, pipeline.Range[uint32]), sigmaRun(opts, pipeline.Range[uint64]),
			sigmaRun(opts, pipeline.Range[int8]), sigmaRun(opts, pipeline.Range[int16]),
			sigmaRun(opts, pipeline.Range[int32]), sigmaRun(opts, pipeline.Range[int64]),
		),
		sigmaRun[float32](opts, nil), sigmaRun[float64](opts, nil),
	)

	cmd := &cobra.Command{
		Use:   "sigma [values...]",
		Short: "Sum values, stopping at the first overflow",
		Long: `Sum the given values in the selected numeric type.

With --range the arguments are pairs of inclusive integer bounds, summed
one segment after another. With --pow each element is raised to that power
before it is added.`,
		Example: `  stdmath sigma --range 1 10
  stdmath sigma --range --pow 2 1 10
  stdmath sigma --range 1 10 20 30 --exclude 25
  stdmath sigma -t i8 100 27 1`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, commandSpec{name: "sigma", runs: runs}, args)
		},
	}
	addSeriesFlags(cmd, opts)
	return cmd
}

// NewProductCommand creates the product command.
func NewProductCommand(a *app) *cobra.Command {
	opts := &seriesOptions{}
	runs := numberRuns(
		integerRuns(
			productRun(opts, pipeline.Range[uint8]), productRun(opts, pipeline.Range[uint16]),
			productRun(opts, pipeline.Range[uint32]), productRun(opts, pipeline.Range[uint64]),
			productRun(opts, pipeline.Range[int8]), productRun(opts, pipeline.Range[int16]),
			productRun(opts, pipeline.Range[int32]), productRun(opts, pipeline.Range[int64]),
		),
		productRun[float32](opts, nil), productRun[float64](opts, nil),
	)

	cmd := &cobra.Command{
		Use:   "product [values...]",
		Short: "Multiply values, stopping at the first overflow",
		Long: `Multiply the given values in the selected numeric type.

With --range the arguments are pairs of inclusive integer bounds,
multiplied one segment after another. With --pow each element is raised to
that power before it is multiplied in.`,
		Example: `  stdmath product --range 1 20
  stdmath product --range --reverse 1 21
  stdmath product -t u8 2 4 8 16`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.execute(cmd, commandSpec{name: "product", runs: runs}, args)
		},
	}
	addSeriesFlags(cmd, opts)
	return cmd
}

func addSeriesFlags(cmd *cobra.Command, opts *seriesOptions) {
	cmd.Flags().BoolVarP(&opts.Range, "range", "r", false, "treat the arguments as inclusive range pairs: start end [start end ...]")
	cmd.Flags().UintVar(&opts.Pow, "pow", 1, "raise each element to this power first")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude", nil, "skip these values")
	cmd.Flags().BoolVar(&opts.Reverse, "reverse", false, "reduce the elements back to front")
}

func sigmaRun[N checked.Number](opts *seriesOptions, rangeOf func(start, end N) *pipeline.Pipeline[N]) runFunc {
	return func(ctx context.Context, a *app, args []string) (*Outcome, error) {
		source, err := seriesSource(opts, rangeOf, args)
		if err != nil {
			return nil, err
		}
		method := reduce.CheckedAdd[N]()
		if opts.Pow != 1 {
			method = reduce.Custom("power_sum", powered(opts.Pow, checked.Add[N]))
		}
		state, err := reduce.SigmaOf(source, N(0), method, a.reduceOptions()...).Reduce(ctx)
		if err != nil {
			return nil, err
		}
		return outcomeOf(state), nil
	}
}

func productRun[N checked.Number](opts *seriesOptions, rangeOf func(start, end N) *pipeline.Pipeline[N]) runFunc {
	return func(ctx context.Context, a *app, args []string) (*Outcome, error) {
		source, err := seriesSource(opts, rangeOf, args)
		if err != nil {
			return nil, err
		}
		method := reduce.CheckedMul[N]()
		if opts.Pow != 1 {
			method = reduce.Custom("power_product", powered(opts.Pow, checked.Mul[N]))
		}
		state, err := reduce.ProductOf(source, N(1), method, a.reduceOptions()...).Reduce(ctx)
		if err != nil {
			return nil, err
		}
		return outcomeOf(state), nil
	}
}

// powered combines elem^pow into the accumulator with combine. An element
// whose power overflows counts as the overflowing element.
func powered[N checked.Number](pow uint, combine func(a, b N) (N, bool)) reduce.Combinator[N, N] {
	return func(acc, elem N) (N, bool) {
		term, ok := checked.Pow(elem, pow)
		if !ok {
			return acc, false
		}
		return combine(acc, term)
	}
}

func seriesSource[N checked.Number](opts *seriesOptions, rangeOf func(start, end N) *pipeline.Pipeline[N], args []string) (*pipeline.Pipeline[N], error) {
	source, err := seriesElements(opts, rangeOf, args)
	if err != nil {
		return nil, err
	}
	if len(opts.Exclude) > 0 {
		excluded := make([]N, len(opts.Exclude))
		for i, s := range opts.Exclude {
			if excluded[i], err = parse[N]("exclude", s); err != nil {
				return nil, err
			}
		}
		source = pipeline.Exclude(source, excluded...)
	}
	if opts.Reverse {
		source = pipeline.Reverse(source)
	}
	return source, nil
}

func seriesElements[N checked.Number](opts *seriesOptions, rangeOf func(start, end N) *pipeline.Pipeline[N], args []string) (*pipeline.Pipeline[N], error) {
	if !opts.Range {
		values := make([]N, len(args))
		for i, s := range args {
			v, err := parse[N]("values", s)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return pipeline.FromSlice(values), nil
	}

	if rangeOf == nil {
		return nil, errors.InvalidInput("range", "needs an integer --type")
	}
	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errors.InvalidInput("range", fmt.Sprintf("expected start end pairs, got %d arguments", len(args)))
	}
	segments := make([]*pipeline.Pipeline[N], 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		bounds, err := parseArgs[N]([]string{"start", "end"}, args[i:i+2])
		if err != nil {
			return nil, err
		}
		segments = append(segments, rangeOf(bounds[0], bounds[1]))
	}
	if len(segments) == 1 {
		return segments[0], nil
	}
	return pipeline.Concat(segments...), nil
}
