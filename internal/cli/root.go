package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/launcher/internal/cliutil"
	"github.com/Paintersrp/launcher/internal/config"
	"github.com/Paintersrp/launcher/internal/launch"
	"github.com/Paintersrp/launcher/internal/metrics"
)

const usageLine = "usage: launcher [flags] <command> [args...]"

// exitStatusError asks Execute to exit with code without printing anything.
type exitStatusError struct {
	code int
}

func (e *exitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type options struct {
	configPath      string
	propagate       bool
	message         string
	showOutcome     bool
	logLevel        string
	logFormat       string
	metricsTextfile string
}

func NewRootCmd() *cobra.Command {
	return newRootCommand()
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "launcher [flags] <command> [args...]",
		Short:   "Run a command as a child process and announce when it finishes",
		Args:    cobra.ArbitraryArgs,
		Version: version(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := root.Flags()
	// Everything after the command name belongs to the command.
	flags.SetInterspersed(false)
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a launcher configuration file (default $"+config.EnvConfig+")")
	flags.BoolVar(&opts.propagate, "propagate-exit-code", false, "Exit with the child's status instead of 0 once it has finished")
	flags.StringVarP(&opts.message, "message", "m", "", "Completion message printed after the child terminates")
	flags.BoolVar(&opts.showOutcome, "show-outcome", false, "Append the child's exit status or signal to the completion message")
	flags.StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level: trace, debug, info, warn, error, disabled")
	flags.StringVar(&opts.logFormat, "log-format", "", "Diagnostic log format: auto, console, json")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics for this run to the given file")

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

// Execute runs the CLI entrypoint and exits the process.
func Execute() {
	os.Exit(execute(NewRootCmd(), os.Stderr))
}

func execute(root *cobra.Command, stderr io.Writer) int {
	return exitCode(root.Execute(), stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	var status *exitStatusError
	if errors.As(err, &status) {
		return status.code
	}
	fmt.Fprintf(stderr, "launcher: %v\n", err)
	return 1
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	opts.applyTo(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cliutil.NewLogger(cmd.ErrOrStderr(), cfg.Log, uuid.NewString())
	if err != nil {
		return err
	}

	stdio := launch.Stdio{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}
	recorder := metrics.NewRecorder()
	launcher := launch.New(
		launch.WithStdio(stdio),
		launch.WithReporter(launch.TextReporter{
			Out:         stdio.Stdout,
			Message:     cfg.Report.Message,
			ShowOutcome: cfg.Report.ShowOutcome,
		}),
		launch.WithObserver(cliutil.LogEvents(logger)),
		launch.WithObserver(recorder.Observe),
	)

	release := absorbInterrupts(logger)
	outcome, runErr := launcher.Run(args)
	release()

	if path := cfg.Metrics.Textfile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("write metrics textfile")
		}
	}

	var usageErr *launch.UsageError
	if errors.As(runErr, &usageErr) {
		return fmt.Errorf("%w\n%s", runErr, usageLine)
	}
	if runErr != nil {
		return runErr
	}
	if cfg.PropagateExitCode && !outcome.Success() {
		return &exitStatusError{code: outcome.ExitStatus()}
	}
	return nil
}

// applyTo lets explicitly set flags win over the file and the environment.
func (o *options) applyTo(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("propagate-exit-code") {
		cfg.PropagateExitCode = o.propagate
	}
	if flags.Changed("message") {
		cfg.Report.Message = o.message
	}
	if flags.Changed("show-outcome") {
		cfg.Report.ShowOutcome = o.showOutcome
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = o.logFormat
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = o.metricsTextfile
	}
}

// absorbInterrupts keeps a terminal interrupt, which the whole foreground
// process group receives, from killing the launcher while the child decides
// what to do with it.
func absorbInterrupts(logger zerolog.Logger) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				logger.Debug().Stringer("signal", sig).Msg("signal left to the child")
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		close(done)
	}
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
