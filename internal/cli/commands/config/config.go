// Package config provides the command that prints the resolved build configuration.
package config

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	"github.com/mpyw/neubundle/internal/buildenv"
	"github.com/mpyw/neubundle/internal/bundle"
	cliinternal "github.com/mpyw/neubundle/internal/cli/commands/internal"
	"github.com/mpyw/neubundle/internal/cli/colors"
	"github.com/mpyw/neubundle/internal/cli/output"
	"github.com/mpyw/neubundle/internal/maputil"
	"github.com/mpyw/neubundle/internal/project"
)

// Runner executes the config command.
type Runner struct {
	Env    buildenv.Environment
	Layout buildenv.Layout
	Stdout io.Writer
}

// Options holds the options for the config command.
type Options struct {
	Output output.Format
}

// JSONOutput represents the JSON output structure for the config command.
type JSONOutput struct {
	Path         string            `json:"path"`
	Version      string            `json:"version"`
	BinaryName   string            `json:"binaryName"`
	Mac          project.MacConfig `json:"mac"`
	Placeholders map[string]string `json:"placeholders"`
	Targets      []JSONTarget      `json:"targets"`
}

// JSONTarget is the JSON form of one architecture's resolved paths.
type JSONTarget struct {
	Arch        string `json:"arch"`
	Binary      string `json:"binary"`
	Resources   string `json:"resources"`
	Destination string `json:"destination"`
}

// Command returns the config command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show the resolved macOS build configuration",
		Description: `Load and validate the project configuration, then print the values the
build uses: the buildScript.mac fields, the Info.plist placeholder values, and
the input and output paths for every configured architecture.

EXAMPLES:
  neubundle config                         Show as text
  neubundle config --output=json           Output as JSON
  neubundle --config app.yaml config       Read a YAML configuration`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "Output format: text (default) or json",
			},
		},
		Action: action,
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	env, err := cliinternal.Environment(cmd)
	if err != nil {
		return err
	}

	r := &Runner{
		Env:    env,
		Layout: cliinternal.Layout(cmd),
		Stdout: cmd.Root().Writer,
	}

	return r.Run(ctx, Options{
		Output: output.ParseFormat(cmd.String("output")),
	})
}

// Run executes the config command.
func (r *Runner) Run(_ context.Context, opts Options) error {
	path := r.Layout.ConfigPath(r.Env)

	cfg, err := project.Load(path)
	if err != nil {
		return err
	}

	archs, _ := cfg.Architectures(nil)
	targets := lo.Map(archs, func(arch string, _ int) bundle.Target {
		return bundle.Resolve(r.Env, r.Layout, cfg, arch)
	})
	placeholders := bundle.PlaceholdersFor(cfg)

	if opts.Output == output.FormatJSON {
		enc := json.NewEncoder(r.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(JSONOutput{
			Path:         path,
			Version:      cfg.Version,
			BinaryName:   cfg.CLI.BinaryName,
			Mac:          *cfg.Mac(),
			Placeholders: placeholders,
			Targets: lo.Map(targets, func(t bundle.Target, _ int) JSONTarget {
				return JSONTarget{
					Arch:        t.Arch,
					Binary:      t.Binary,
					Resources:   t.Resources,
					Destination: t.Destination,
				}
			}),
		})
	}

	mac := cfg.Mac()

	out := output.New(r.Stdout)
	out.Field("Config", path)
	out.Field("Version", cfg.Version)
	out.Field("Binary Name", cfg.CLI.BinaryName)
	out.Field("Architectures", strings.Join(archs, ", "))
	out.Field("Minimum macOS", mac.MinimumOS)
	out.Field("App Name", mac.AppName)
	out.Field("Bundle Name", mac.AppBundleName)
	out.Field("Identifier", mac.AppIdentifier)
	out.Field("Icon", lo.CoalesceOrEmpty(mac.AppIcon, "(none)"))
	out.Separator()

	output.Println(r.Stdout, "Placeholders:")

	indented := output.Indented(r.Stdout, "  ")
	for _, key := range maputil.SortedKeys(placeholders) {
		indented.Field("{"+key+"}", placeholders[key])
	}

	for _, t := range targets {
		out.Separator()
		output.Println(r.Stdout, colors.Arch(t.Arch))
		indented.Field("Binary", t.Binary)
		indented.Field("Resources", t.Resources)
		indented.Field("Destination", t.Destination)
	}

	return nil
}
