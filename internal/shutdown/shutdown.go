// Package shutdown ties SIGINT/SIGTERM to an orderly stop of a blocking
// component.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// notify registers c for the shutdown signals. Tests replace it.
var notify = func(c chan<- os.Signal) {
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
}

// stopNotify undoes notify.
var stopNotify = func(c chan<- os.Signal) {
	signal.Stop(c)
}

// RunWithGracefulShutdown starts a component and handles graceful shutdown.
// The runner function should block while the component is running; its
// error is returned when it finishes on its own. On a signal the runner's
// context is cancelled, shutdown is called, and the runner gets up to
// timeout to return.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	shutdown func(ctx context.Context) error,
) error {
	if logger == nil {
		logger = slog.Default()
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	sigChan := make(chan os.Signal, 1)
	notify(sigChan)
	defer stopNotify(sigChan)

	select {
	case sig := <-sigChan:
		logger.Info("received signal, initiating shutdown", "signal", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		// shutdown runs before the runner's context is cancelled so it can
		// still reach a live component.
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		runCancel()

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-shutdownCtx.Done():
			logger.Warn("shutdown timeout exceeded", "timeout", timeout)
		}

		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		return err
	}
}
