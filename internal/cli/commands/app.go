// Package commands provides the command-line interface for neubundle.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/mpyw/neubundle/internal/cli/commands/build"
	"github.com/mpyw/neubundle/internal/cli/commands/config"
	"github.com/mpyw/neubundle/internal/cli/commands/inspect"
	cliinternal "github.com/mpyw/neubundle/internal/cli/commands/internal"
)

// Version is the application version reported by --version.
//
//nolint:gochecknoglobals // Overridden at link time via -ldflags
var Version = "0.1.0"

// MakeApp creates a new CLI application instance.
func MakeApp() *cli.Command {
	return &cli.Command{
		Name:           "neubundle",
		Usage:          "Assemble macOS .app bundles for Neutralino projects",
		Version:        Version,
		Flags:          cliinternal.GlobalFlags(),
		DefaultCommand: "build",
		Commands: []*cli.Command{
			build.Command(),
			inspect.Command(),
			config.Command(),
		},
		CommandNotFound: cliinternal.CommandNotFound,
	}
}

// App is the main CLI application.
var App = MakeApp()
