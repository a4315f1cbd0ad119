package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kbukum/stdmath/config"
	"github.com/kbukum/stdmath/errors"
	"github.com/kbukum/stdmath/logger"
	"github.com/kbukum/stdmath/observability"
	"github.com/kbukum/stdmath/reduce"
	"github.com/kbukum/stdmath/version"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "yaml"
	Type       string // numeric type name, see TypeNames
	ConfigFile string
}

// app is the state shared by every command of one invocation.
type app struct {
	opts      *RootOptions
	cfg       *config.Config
	log       *logger.Logger
	out       *OutputFormatter
	telemetry *observability.Providers
	reports   *reportRecorder
}

// NewRootCommand creates the root command for the stdmath CLI.
func NewRootCommand() *cobra.Command {
	cmd, _ := newRootCommand()
	return cmd
}

func newRootCommand() (*cobra.Command, *app) {
	opts := &RootOptions{}
	a := &app{
		opts:      opts,
		log:       logger.Nop(),
		telemetry: &observability.Providers{},
		reports:   &reportRecorder{},
	}

	cmd := &cobra.Command{
		Use:   "stdmath",
		Short: "Overflow-aware sums, products, and combinatorics",
		Long: `stdmath evaluates sums, products, factorials, and counting formulas in a
fixed-width numeric type and reports exactly where a result stops fitting.

Exit codes: 0 exact result, 1 overflow, 2 invalid input, 3 other failure.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log reductions at debug level to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVarP(&opts.Type, "type", "t", "u64", "numeric type ("+strings.Join(TypeNames, "|")+")")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default: stdmath.yml in . or ./config)")

	cmd.AddCommand(NewSigmaCommand(a))
	cmd.AddCommand(NewProductCommand(a))
	cmd.AddCommand(NewFactorialCommand(a))
	cmd.AddCommand(NewDigitsCommand(a))
	cmd.AddCommand(NewCombinationCommand(a))
	cmd.AddCommand(NewPermutationCommand(a))
	cmd.AddCommand(NewBinomialCommand(a))
	cmd.AddCommand(NewPascalCommand(a))
	cmd.AddCommand(NewVersionCommand(a))

	return cmd, a
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, a := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	a.shutdown(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if !stderrors.As(err, &exitErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return GetExitCode(err)
}

// setup loads configuration, applies flag overrides, and builds the logger
// and telemetry for this invocation.
func (a *app) setup(cmd *cobra.Command) error {
	a.out = &OutputFormatter{
		Format:    a.opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   a.opts.Verbose,
	}

	var loadOpts []config.LoaderOption
	if a.opts.ConfigFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(a.opts.ConfigFile))
	}
	cfg, err := config.Load(loadOpts...)
	if err != nil {
		return a.fail(err)
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Math.Format = a.opts.Format
	}
	if flags.Changed("type") {
		cfg.Math.Type = a.opts.Type
	}
	if a.opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return a.fail(err)
	}
	a.cfg = cfg
	a.out.Format = cfg.Math.Format

	a.log = logger.NewWithWriter(&cfg.Logging, cfg.Name, cmd.ErrOrStderr())
	logger.SetGlobalLogger(a.log)

	providers, err := observability.Setup(cmd.Context(), observability.SetupConfig{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.Name,
		ServiceVersion: version.Short(),
		Environment:    cfg.Environment,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
		Interval:       cfg.Telemetry.Interval,
	})
	if err != nil {
		return a.fail(errors.Internal(err))
	}
	a.telemetry = providers
	a.reports.next = providers.Metrics
	return nil
}

func (a *app) shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
	}
}

// reduceOptions are passed to every reduction a command runs.
func (a *app) reduceOptions() []reduce.Option {
	return []reduce.Option{
		reduce.WithLogger(a.log.WithComponent("reduce")),
		reduce.WithObserver(a.reports),
	}
}

// commandSpec describes how a command picks its implementation.
type commandSpec struct {
	name string
	// runs maps --type names to implementations. Nil for commands that
	// ignore --type.
	runs    map[string]runFunc
	untyped runFunc
}

// execute resolves the implementation for the configured type, runs it
// inside a command span, and writes the outcome.
func (a *app) execute(cmd *cobra.Command, spec commandSpec, args []string) error {
	run, typ := spec.untyped, ""
	if spec.runs != nil {
		typ = a.cfg.Math.Type
		var ok bool
		if run, ok = spec.runs[typ]; !ok {
			return a.fail(errors.UnsupportedType(typ, supported(spec.runs)).
				WithDetail("command", spec.name))
		}
	}

	runID := uuid.NewString()
	cc := observability.NewCommandContext(a.cfg.Name, spec.name, runID, typ, a.telemetry.Metrics)
	ctx, span := cc.Start(cmd.Context())

	a.reports.reset()
	outcome, err := run(ctx, a, args)

	status := statusError
	if err == nil {
		status = outcome.Status
	}
	var spanErr error = err
	if status == statusOverflow {
		spanErr = errors.Overflow(spec.name, outcome.Overflow.At, outcome.Overflow.Partial, outcome.Overflow.Index)
	}
	cc.End(ctx, span, status, spanErr)

	fields := logger.Fields(
		logger.FieldCommand, spec.name,
		logger.FieldType, typ,
		logger.FieldStatus, status,
		logger.FieldDuration, cc.Duration().Milliseconds(),
	)
	if err != nil {
		a.log.WithError(err).Debug("command failed", fields)
		return a.fail(err)
	}
	a.log.Debug("command finished", fields)

	outcome.Command = spec.name
	outcome.Type = typ
	outcome.RunID = runID
	if last := a.reports.last; last != nil {
		outcome.RunID = last.RunID.String()
		outcome.Steps = last.Steps
	}

	if err := a.out.Result(outcome.Status, outcome); err != nil {
		return WrapExitError(ExitFailure, "writing output", err)
	}
	if outcome.Status == statusOverflow {
		return NewExitError(ExitOverflow, spec.name+" overflowed")
	}
	return nil
}

// fail reports err in the configured format and converts it to an
// ExitError carrying the matching exit code.
func (a *app) fail(err error) error {
	appErr := errors.Wrap(err)
	code := ExitFailure
	switch {
	case appErr.Code == errors.ErrCodeArithmeticOverflow:
		code = ExitOverflow
	case errors.IsInputCode(appErr.Code):
		code = ExitInvalidInput
	}
	if outErr := a.out.Error(string(appErr.Code), appErr.Message, appErr.Details); outErr != nil {
		return WrapExitError(ExitFailure, "writing output", outErr)
	}
	return WrapExitError(code, appErr.Message, err)
}
