// Package shutdown routes OS termination signals into the daemon.
package shutdown

import (
	"context"
	"os"
	"os/signal"
)

// Notify relays termination signals to ch.
func Notify(ch chan<- os.Signal) {
	signal.Notify(ch, signals...)
}

// Stop undoes Notify for ch.
func Stop(ch chan<- os.Signal) {
	signal.Stop(ch)
}

// Context is cancelled by the first termination signal.
func Context(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}
