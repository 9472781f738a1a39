// Provides helper functions for working with contexts.
package types

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// NewTimeoutSubContext creates a new cancellable sub-context that is cancelled when the provided timeout is reached.
func NewTimeoutSubContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// DefaultSignalNotifySubContext creates a new cancellable context that is cancelled when SIGINT or SIGTERM is received.
func DefaultSignalNotifySubContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
