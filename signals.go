//go:build !windows
// +build !windows

package logslider

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/s00500/env_logger"
)

// WaitForShutdown blocks until the process is asked to exit or ctx is done. It returns the signal
// that ended the wait, nil when ctx was cancelled.
func WaitForShutdown(ctx context.Context) os.Signal {
	ch := make(chan os.Signal, 2)
	signal.Notify(
		ch,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
		syscall.SIGUSR1,
	)
	defer signal.Stop(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-ch:
			switch sig {
			// SIGHUP and SIGUSR1 have nothing to reload, the slider keeps no files open
			case syscall.SIGHUP, syscall.SIGUSR1:
				log.Debugf("Ignoring signal %v", sig)

			// SIGINT should exit.
			case syscall.SIGINT:
				return sig

			// SIGQUIT should exit gracefully.
			case syscall.SIGQUIT:
				return sig

			// SIGTERM should exit.
			case syscall.SIGTERM:
				return sig
			}
		}
	}
}
