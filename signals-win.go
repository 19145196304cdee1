//go:build windows
// +build windows

package logslider

import (
	"context"
	"os"
	"os/signal"

	log "github.com/s00500/env_logger"
)

// WaitForShutdown blocks until an interrupt arrives or ctx is done. Windows only delivers
// os.Interrupt, the other unix signals are unsupported.
func WaitForShutdown(ctx context.Context) os.Signal {
	log.Debug("Shutdown: only interrupt is supported on windows")
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	defer signal.Stop(ch)

	select {
	case <-ctx.Done():
		return nil
	case sig := <-ch:
		return sig
	}
}
