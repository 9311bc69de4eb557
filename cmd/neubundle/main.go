// Command neubundle assembles macOS application bundles for Neutralino projects.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/mpyw/neubundle/internal/cli/commands"
	"github.com/mpyw/neubundle/internal/cli/output"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := commands.App.Run(ctx, os.Args); err != nil {
		output.Error(os.Stderr, "%v", err)
		stop()
		os.Exit(1)
	}
}
