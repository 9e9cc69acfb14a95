package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/contribution-calculator/internal/calculation"
	"github.com/rpgo/contribution-calculator/internal/config"
	"github.com/rpgo/contribution-calculator/internal/domain"
	"github.com/rpgo/contribution-calculator/internal/logging"
	"github.com/rpgo/contribution-calculator/internal/output"
	"github.com/rpgo/contribution-calculator/internal/server"
	moneypkg "github.com/rpgo/contribution-calculator/pkg/decimal"
)

// cliOptions holds the persistent flags and the logger built from them.
type cliOptions struct {
	logLevel  string
	logFormat string

	logger *zap.Logger
}

// reportOptions holds the flags of one report-producing subcommand.
type reportOptions struct {
	configPath string
	format     string
	outputDir  string
	target     string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "contribcalc",
		Short:         "Compare retirement contributions against a taxable brokerage account",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(logging.Options{
				Level:  opts.logLevel,
				Format: opts.logFormat,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log encoding (console or json)")

	root.AddCommand(
		newCompareCmd(opts),
		newSolveCmd(opts),
		newOptimizeCmd(opts),
		newExampleCmd(),
		newFormatsCmd(),
		newServeCmd(opts),
	)
	return root
}

func addReportFlags(cmd *cobra.Command, ro *reportOptions, defaultFormat string) {
	cmd.Flags().StringVarP(&ro.configPath, "config", "c", "", "path to the YAML scenario file")
	cmd.Flags().StringVarP(&ro.format, "format", "f", defaultFormat, "report format, or \"all\" with --output-dir")
	cmd.Flags().StringVarP(&ro.outputDir, "output-dir", "o", "", "write report files here instead of stdout")
	_ = cmd.MarkFlagRequired("config")
}

func newCompareCmd(opts *cliOptions) *cobra.Command {
	ro := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare contributing against investing the take-home difference",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(ro.configPath)
			if err != nil {
				return err
			}
			report, err := runReport(cmd.Context(), opts, cfg)
			if err != nil {
				return err
			}
			return emitReport(cmd.OutOrStdout(), ro, report)
		},
	}
	addReportFlags(cmd, ro, "console")
	return cmd
}

func newSolveCmd(opts *cliOptions) *cobra.Command {
	ro := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find the highest contribution percent that keeps a per-paycheck take-home target",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(ro.configPath)
			if err != nil {
				return err
			}
			if err := applySolveTargets(cfg, ro.target); err != nil {
				return err
			}
			report, err := runReport(cmd.Context(), opts, cfg)
			if err != nil {
				return err
			}
			if ro.format != "" {
				return emitReport(cmd.OutOrStdout(), ro, report)
			}
			return writeSolverTable(cmd.OutOrStdout(), report)
		},
	}
	addReportFlags(cmd, ro, "")
	cmd.Flags().StringVar(&ro.target, "target", "", "per-paycheck take-home target applied to every scenario")
	return cmd
}

func newOptimizeCmd(opts *cliOptions) *cobra.Command {
	ro := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search Roth/traditional 401(k) splits for the best after-tax lump sum",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfiguration(ro.configPath)
			if err != nil {
				return err
			}
			for i := range cfg.Scenarios {
				cfg.Scenarios[i].OptimizeAllocation = true
			}
			report, err := runReport(cmd.Context(), opts, cfg)
			if err != nil {
				return err
			}
			if ro.format != "" {
				return emitReport(cmd.OutOrStdout(), ro, report)
			}
			return writeAllocationTable(cmd.OutOrStdout(), report)
		},
	}
	addReportFlags(cmd, ro, "")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [path]",
		Short: "Write an example scenario file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "example_config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			parser := config.NewInputParser()
			if err := parser.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
			return nil
		},
	}
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and their aliases",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(w, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
		},
	}
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve comparisons over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.ListenAndServe(ctx, addr, server.NewHandler(opts.logger))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func loadConfiguration(path string) (*domain.Configuration, error) {
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func runReport(ctx context.Context, opts *cliOptions, cfg *domain.Configuration) (*domain.ComparisonReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	engine, err := calculation.NewCalculationEngineForConfig(cfg)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(logging.Sugared(opts.logger))
	report, err := engine.RunScenarios(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("calculation failed: %w", err)
	}
	return report, nil
}

func emitReport(w io.Writer, ro *reportOptions, report *domain.ComparisonReport) error {
	if ro.outputDir == "" {
		if output.NormalizeFormatName(ro.format) == "all" {
			return errors.New("format \"all\" requires --output-dir")
		}
		return output.WriteReport(w, report, ro.format)
	}
	paths, err := output.GenerateReport(report, ro.format, ro.outputDir)
	for _, p := range paths {
		fmt.Fprintf(w, "Report written to %s\n", p)
	}
	return err
}

// applySolveTargets turns on solving for every scenario. A non-empty override
// such as "3500" or "$3,500.00" replaces each scenario's per-paycheck target.
func applySolveTargets(cfg *domain.Configuration, override string) error {
	var target *decimal.Decimal
	if override != "" {
		m, err := moneypkg.NewMoneyFromString(override)
		if err != nil {
			return fmt.Errorf("invalid --target %q: %w", override, err)
		}
		if m.IsNegative() {
			return fmt.Errorf("--target cannot be negative, got %s", m.Decimal)
		}
		target = &m.Decimal
	}
	for i := range cfg.Scenarios {
		sc := &cfg.Scenarios[i]
		if target != nil {
			sc.TargetPerPaycheck = target
		}
		if sc.TargetPerPaycheck == nil {
			return fmt.Errorf("scenario %q has no target_per_paycheck; pass --target", sc.Name)
		}
		sc.SolveForTarget = true
	}
	return nil
}

func writeSolverTable(w io.Writer, report *domain.ComparisonReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tTARGET/PAYCHECK\tCONTRIBUTION\tTAKE-HOME/PAYCHECK\tFEASIBLE")
	periods := decimal.NewFromInt(int64(report.PayFrequency.PeriodsPerYear()))
	for _, sc := range report.Scenarios {
		if sc.Solver == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n",
			sc.Name,
			output.FormatCurrency(sc.Solver.TargetTakeHome.Div(periods)),
			output.FormatPercentage(sc.Solver.ContributionPercent),
			output.FormatCurrency(sc.TakeHomePerPaycheck),
			sc.Solver.Feasible,
		)
	}
	return tw.Flush()
}

func writeAllocationTable(w io.Writer, report *domain.ComparisonReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tBUDGET\tROTH 401(K)\tTRADITIONAL\tLUMP-SUM NET")
	for _, sc := range report.Scenarios {
		if sc.Allocation == nil {
			continue
		}
		a := sc.Allocation
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			sc.Name,
			output.FormatCurrency(a.Budget),
			output.FormatCurrency(a.Best.Roth401k),
			output.FormatCurrency(a.Best.Traditional),
			output.FormatCurrency(a.Best.NetWorth),
		)
	}
	return tw.Flush()
}
