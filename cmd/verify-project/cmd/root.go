// Package cmd provides the CLI commands for verify-project.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/xiaolushuo/verify-project/internal/checklist"
	"github.com/xiaolushuo/verify-project/internal/config"
	perrors "github.com/xiaolushuo/verify-project/internal/errors"
	"github.com/xiaolushuo/verify-project/internal/logging"
	"github.com/xiaolushuo/verify-project/internal/probe"
	"github.com/xiaolushuo/verify-project/internal/profiling"
	"github.com/xiaolushuo/verify-project/internal/report"
	"github.com/xiaolushuo/verify-project/internal/runner"
	"github.com/xiaolushuo/verify-project/internal/ui"
	"github.com/xiaolushuo/verify-project/pkg/version"
)

// lenientConfig marks commands that still run when the config is invalid,
// so a broken file can be inspected or regenerated.
const lenientConfig = "lenient-config"

// reportedError is an error whose message has already been printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

// errVerificationFailed is returned after a report with a failing verdict.
var errVerificationFailed = perrors.New(perrors.ErrCodeVerificationFailed,
	"project verification failed", nil)

// session holds per-invocation state shared by the commands.
type session struct {
	jsonOutput bool
	noColor    bool
	debug      bool
	profile    profiling.Options

	dir            string
	cfg            *config.Config
	profiler       *profiling.Session
	loggingCleanup func()
}

// NewRootCmd creates the root command for the verify-project CLI.
func NewRootCmd() *cobra.Command {
	cmd, _ := newRootCmd()
	return cmd
}

func newRootCmd() (*cobra.Command, *session) {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "verify-project",
		Short: "Check a Godot badminton project for completeness",
		Long: `verify-project inspects the Godot desktop badminton project in the
current directory and reports whether its directories, project file,
C# sources, assets and build scripts are in place.

Run it from the directory that contains project.godot. The exit code is 0
when every check passes and 1 otherwise.`,
		Version:       version.Short(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.runVerify(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.SetVersionTemplate("verify-project version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&s.jsonOutput, "json", false, "Print the report as JSON")
	cmd.PersistentFlags().BoolVar(&s.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolVar(&s.debug, "debug", false, "Enable debug logging to ~/.verify-project/logs/")
	cmd.PersistentFlags().StringVar(&s.profile.CPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&s.profile.Heap, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&s.profile.Trace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = s.start
	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return s.finish()
	}

	cmd.AddCommand(newWatchCmd(s))
	cmd.AddCommand(newConfigCmd(s))
	cmd.AddCommand(newVersionCmd())

	return cmd, s
}

// Execute runs the root command and prints any error not already reported.
func Execute() error {
	cmd, s := newRootCmd()
	err := cmd.Execute()
	if ferr := s.finish(); ferr != nil && err == nil {
		err = ferr
	}

	var rerr *reportedError
	if err != nil && !errors.As(err, &rerr) {
		_, _ = fmt.Fprint(os.Stderr, perrors.FormatForCLI(err))
	}
	return err
}

// start loads configuration, then sets up logging and profiling.
func (s *session) start(cmd *cobra.Command, _ []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return perrors.InternalError("failed to get current directory", err)
	}
	s.dir = dir

	cfg, err := config.Load(dir)
	if err != nil {
		if _, ok := cmd.Annotations[lenientConfig]; !ok {
			report.New(report.WithOutput(cmd.ErrOrStderr())).Fatal(err)
			return reported(err)
		}
		slog.Warn("ignoring invalid configuration", slog.String("error", err.Error()))
		cfg = config.NewConfig()
	}
	if cmd.Flags().Changed("json") && s.jsonOutput {
		cfg.Output.Format = "json"
	}
	if s.noColor {
		cfg.Output.Color = string(ui.ColorNever)
	}
	s.cfg = cfg

	if err := s.setupLogging(cmd.ErrOrStderr()); err != nil {
		return err
	}

	if s.profile.Enabled() {
		s.profiler, err = profiling.Start(s.profile)
		if err != nil {
			return perrors.InternalError("failed to start profiling", err)
		}
	}
	return nil
}

func (s *session) setupLogging(stderr io.Writer) error {
	lcfg := logging.Config{
		Level:     s.cfg.Logging.Level,
		FilePath:  s.cfg.Logging.File,
		MaxSizeMB: s.cfg.Logging.MaxSizeMB,
		MaxFiles:  s.cfg.Logging.MaxFiles,
		Stderr:    stderr,
	}
	if s.debug {
		lcfg.Level = "debug"
		if lcfg.FilePath == "" {
			lcfg.FilePath = logging.DefaultLogPath()
		}
	}

	logger, cleanup, err := logging.Setup(lcfg)
	if err != nil {
		return perrors.InternalError("failed to set up logging", err)
	}
	s.loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Debug("logging enabled",
		slog.String("level", lcfg.Level),
		slog.String("log_file", lcfg.FilePath),
		slog.String("version", version.Short()))
	return nil
}

// finish stops profiling and closes the log file. Safe to call twice.
func (s *session) finish() error {
	err := s.profiler.Stop()
	s.profiler = nil

	if s.loggingCleanup != nil {
		s.loggingCleanup()
		s.loggingCleanup = nil
	}
	if err != nil {
		return perrors.InternalError("failed to write profiles", err)
	}
	return nil
}

// reporter returns a Reporter for out honoring the color settings.
func (s *session) reporter(out io.Writer) *report.Reporter {
	mode, err := ui.ParseColorMode(s.cfg.Output.Color)
	if err != nil {
		mode = ui.ColorNever
	}
	return report.New(
		report.WithOutput(out),
		report.WithStyles(ui.NewStyles(out, ui.UseColor(mode, out))),
	)
}

func (s *session) jsonMode() bool {
	return s.cfg.Output.Format == "json"
}

// requireProject checks the precondition and prints the failure. In JSON
// mode the message goes to stderr so stdout stays parseable.
func (s *session) requireProject(p probe.Probe, stdout, stderr io.Writer) error {
	err := checklist.RequireProject(p)
	if err == nil {
		return nil
	}

	out := stdout
	if s.jsonMode() {
		out = stderr
	}
	s.reporter(out).Fatal(err)
	slog.Debug("precondition failed", slog.String("dir", s.dir))
	return reported(err)
}

// verify runs the checklist once and prints the report. It returns the
// verdict; the error is only for output failures.
func (s *session) verify(ctx context.Context, rep *report.Reporter, p probe.Probe) (bool, error) {
	logger := slog.Default().With(slog.String("run_id", uuid.NewString()))
	summary := runner.New(p, runner.WithLogger(logger)).Run(ctx)
	logger.Debug("verification finished",
		slog.String("status", summary.Status()),
		slog.Int("passed", summary.PassedCount()),
		slog.Int("total", summary.TotalCount()))

	if s.jsonMode() {
		return rep.PrintJSON(summary)
	}
	rep.Header()
	return rep.Print(summary), nil
}

func (s *session) runVerify(ctx context.Context, stdout, stderr io.Writer) error {
	p := probe.New(s.dir)
	if err := s.requireProject(p, stdout, stderr); err != nil {
		return err
	}

	passed, err := s.verify(ctx, s.reporter(stdout), p)
	if err != nil {
		return err
	}
	if !passed {
		return reported(errVerificationFailed)
	}
	return nil
}
