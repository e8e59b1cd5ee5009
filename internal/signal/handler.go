// Package signal turns SIGINT and SIGTERM into a cancelled session context.
//
// The session loop only observes cancellation between cycles, so a person
// sitting at an interactive prompt may need a second Ctrl-C to get out;
// SetupSignalHandler supports that with an optional force callback.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler registers SIGINT and SIGTERM handlers.
//
// On the first signal it calls onInterrupt (if non-nil) and then cancel.
// If onForce is non-nil, a second signal calls it; callers typically exit
// the process there. The goroutine returns early if ctx is cancelled
// before any signal arrives.
//
// Example usage:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//	signal.SetupSignalHandler(ctx, cancel, func() {
//	    logging.Warn("Interrupt received, stopping after the current cycle...")
//	}, func() {
//	    os.Exit(exitcode.Interrupted)
//	})
func SetupSignalHandler(ctx context.Context, cancel context.CancelFunc, onInterrupt, onForce func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			if onInterrupt != nil {
				onInterrupt()
			}
			cancel()
		case <-ctx.Done():
			return
		}

		if onForce == nil {
			return
		}
		<-sigCh
		onForce()
	}()
}
