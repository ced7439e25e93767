package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	perrors "github.com/xiaolushuo/verify-project/internal/errors"
	"github.com/xiaolushuo/verify-project/internal/probe"
	"github.com/xiaolushuo/verify-project/internal/watcher"
)

func newWatchCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the checks whenever project files change",
		Long: `Run the checks once, then watch the project tree and run them again
after every burst of changes.

Engine and build output directories (.git, .godot, .import, .mono, bin, obj)
are ignored; add more with watch.exclude in the configuration. Stop with
Ctrl-C. The exit code reflects the last run.`,
		Example: `  # Watch with the default 300ms quiet period
  verify-project watch

  # Wait longer before re-running
  VERIFY_PROJECT_WATCH_DEBOUNCE=1s verify-project watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.runWatch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

func (s *session) runWatch(ctx context.Context, stdout, stderr io.Writer) error {
	p := probe.New(s.dir)
	if err := s.requireProject(p, stdout, stderr); err != nil {
		return err
	}

	rep := s.reporter(stdout)
	passed, err := s.verify(ctx, rep, p)
	if err != nil {
		return err
	}

	w, err := watcher.New(s.dir, watcher.Options{
		DebounceWindow: s.cfg.DebounceDuration(),
		Exclude:        s.cfg.Watch.Exclude,
		Logger:         slog.Default(),
	})
	if err != nil {
		return perrors.InternalError("failed to start watcher", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	g.Go(func() error {
		// Events is closed when Run returns, which ends this loop.
		for batch := range w.Events() {
			paths := watcher.Paths(batch)
			slog.Debug("rerunning checks", slog.Int("changes", len(paths)))
			if !s.jsonMode() {
				rep.Changed(paths)
			}
			if passed, err = s.verify(gctx, rep, p); err != nil {
				return err
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return perrors.InternalError("watch stopped", err)
	}
	if !passed {
		return reported(errVerificationFailed)
	}
	return nil
}
