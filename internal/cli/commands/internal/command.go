// Package internal provides shared flags and helpers for CLI commands.
package internal

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/mpyw/neubundle/internal/buildenv"
	"github.com/mpyw/neubundle/internal/cli/output"
	"github.com/mpyw/neubundle/internal/logging"
)

// Names of the flags shared by every command.
const (
	FlagRoot     = "root"
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
	FlagHostOS   = "host-os"
)

// GlobalFlags returns the flags declared on the root command and inherited by
// every subcommand.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagRoot,
			Aliases: []string{"C"},
			Usage:   "Project root directory",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   "Project configuration file, relative to the project root (.json, .toml, .yaml)",
			Value:   buildenv.DefaultConfigFile,
		},
		&cli.StringFlag{
			Name:    FlagLogLevel,
			Usage:   "Diagnostic log level on stderr: trace, debug, info, warn, error or off",
			Value:   logging.DefaultLevel.String(),
			Sources: cli.EnvVars(logging.EnvLogLevel),
		},
		&cli.StringFlag{
			Name:   FlagHostOS,
			Usage:  "Treat the host as this GOOS (darwin enables extended attribute clearing)",
			Hidden: true,
		},
	}
}

// Environment builds the build environment from the shared flags.
func Environment(cmd *cli.Command) (buildenv.Environment, error) {
	return buildenv.New(cmd.String(FlagRoot), cmd.String(FlagHostOS))
}

// Layout returns the default layout with the configuration file taken from --config.
func Layout(cmd *cli.Command) buildenv.Layout {
	layout := buildenv.DefaultLayout()
	layout.ConfigFile = lo.CoalesceOrEmpty(cmd.String(FlagConfig), buildenv.DefaultConfigFile)

	return layout
}

// Logger returns the diagnostic logger writing to the root command's error writer.
func Logger(cmd *cli.Command) zerolog.Logger {
	return logging.New(ErrWriter(cmd), cmd.String(FlagLogLevel))
}

// ErrWriter returns the root error writer, falling back to the root writer.
func ErrWriter(cmd *cli.Command) io.Writer {
	return lo.CoalesceOrEmpty(cmd.Root().ErrWriter, cmd.Root().Writer)
}

// CommandNotFound is a shared handler for unknown subcommands.
// It displays the command help and an error message.
func CommandNotFound(_ context.Context, cmd *cli.Command, command string) {
	_ = cli.ShowSubcommandHelp(cmd)
	output.Printf(ErrWriter(cmd), "\nUnknown command: %s\n", command)
}
