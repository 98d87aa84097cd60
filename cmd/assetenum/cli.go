// Where: cmd/assetenum/cli.go
// What: CLI dependency wiring helpers.
// Why: Centralize construction for testability.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/poruru-code/assetenum/internal/command"
)

var (
	getwd         = os.Getwd
	stopSignals   = []os.Signal{os.Interrupt, syscall.SIGTERM}
	notifyContext = signal.NotifyContext
)

// buildDependencies binds the CLI to the process streams, working directory,
// and termination signals.
func buildDependencies() command.Dependencies {
	return command.Dependencies{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		Getwd:  getwd,
		WatchContext: func() (context.Context, context.CancelFunc) {
			return notifyContext(context.Background(), stopSignals...)
		},
	}
}
