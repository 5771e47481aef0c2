package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// newCommandContext cancels on SIGINT/SIGTERM so running manager calls are
// killed with the process.
func newCommandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
