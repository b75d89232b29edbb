package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/carlmjohnson/exitcode"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wudi/pdfmerge/config"
	"github.com/wudi/pdfmerge/merge"
	"github.com/wudi/pdfmerge/observability"
)

type options struct {
	output     string
	configPath string
	engine     string
	validation string
	recovery   string
	password   string
	optimize   bool
	verbose    bool
}

// run is the CLI entry point, separated from main for testing.
// Failures after argument parsing exit with ExitCodeError; errors cobra
// reports while parsing arguments exit with ExitCodeUsageError.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitCodeSuccess
	}
	var coder interface{ ExitCode() int }
	if !errors.As(err, &coder) {
		err = exitcode.Set(err, ExitCodeUsageError)
	}
	fmt.Fprintf(stderr, ErrorFormat, errorLine(err))
	return exitcode.Get(err)
}

// errorLine renders err on a single line; library errors may span several.
func errorLine(err error) string {
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "; ")
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           UsageLine,
		Short:         ShortUsage,
		Long:          LongUsage,
		Example:       ExampleUsage,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runMerge(cmd, opts, args, stdout, stderr); err != nil {
				return exitcode.Set(err, ExitCodeError)
			}
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&opts.output, FlagOutput, FlagOutputShort, "", HelpOutput)
	f.StringVar(&opts.configPath, FlagConfig, "", HelpConfig)
	f.StringVar(&opts.engine, FlagEngine, config.DefaultEngine, HelpEngine)
	f.StringVar(&opts.validation, FlagValidation, config.DefaultValidation, HelpValidation)
	f.StringVar(&opts.recovery, FlagRecovery, config.DefaultRecovery, HelpRecovery)
	f.StringVar(&opts.password, FlagPassword, "", HelpPassword)
	f.BoolVar(&opts.optimize, FlagOptimize, false, HelpOptimize)
	f.BoolVarP(&opts.verbose, FlagVerbose, FlagVerboseShort, false, HelpVerbose)
	_ = cmd.MarkFlagRequired(FlagOutput)
	_ = cmd.MarkFlagFilename(FlagOutput, "pdf")
	_ = cmd.MarkFlagFilename(FlagConfig, "yaml", "yml")

	return cmd
}

func runMerge(cmd *cobra.Command, opts options, inputs []string, stdout, stderr io.Writer) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	level, err := observability.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	zl := observability.NewCLILogger(stderr, level).With(zap.String("cmd", CLIName))
	defer func() { _ = zl.Sync() }()

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	strategy, err := cfg.Strategy()
	if err != nil {
		return err
	}

	m := merge.New(merge.Options{
		EngineName:    cfg.Engine,
		EngineOptions: engineOpts,
		Recovery:      strategy,
		Logger:        observability.NewZapLogger(zl),
	})
	res, err := m.Merge(cmd.Context(), merge.Request{Inputs: inputs, Output: opts.output})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, SummaryFormat, len(res.Inputs), res.Output)
	return nil
}

// resolveConfig layers explicitly set flags over the config file over the defaults.
func resolveConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed(FlagEngine) {
		cfg.Engine = opts.engine
	}
	if f.Changed(FlagValidation) {
		cfg.Validation = opts.validation
	}
	if f.Changed(FlagRecovery) {
		cfg.Recovery = opts.recovery
	}
	if f.Changed(FlagPassword) {
		cfg.Password = opts.password
	}
	if f.Changed(FlagOptimize) {
		cfg.Optimize = opts.optimize
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
