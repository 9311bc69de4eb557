// Package inspect provides the command that verifies already-built bundles.
package inspect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/neubundle/internal/cli/commands/internal"
	"github.com/mpyw/neubundle/internal/cli/colors"
	"github.com/mpyw/neubundle/internal/cli/output"
	"github.com/mpyw/neubundle/internal/usecase/inspect"
)

// ErrProblemsFound is returned when at least one bundle fails inspection.
var ErrProblemsFound = errors.New("bundle inspection found problems")

// Runner executes the inspect command.
type Runner struct {
	UseCase *inspect.UseCase
	Stdout  io.Writer
	Stderr  io.Writer
}

// Options holds the options for the inspect command.
type Options struct {
	Archs  []string
	Digest string
	Output output.Format
}

// JSONReport is the JSON form of one bundle report.
type JSONReport struct {
	Arch        string   `json:"arch"`
	Destination string   `json:"destination"`
	OK          bool     `json:"ok"`
	Executable  bool     `json:"executable"`
	Resources   bool     `json:"resources"`
	Extensions  bool     `json:"extensions"`
	Icon        bool     `json:"icon"`
	Digest      string   `json:"digest,omitempty"`
	Algorithm   string   `json:"digestAlgorithm,omitempty"`
	Problems    []string `json:"problems"`
}

// Command returns the inspect command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Verify built bundles without modifying them",
		Description: `Check every configured architecture's bundle under dist/mac_<arch>:
the bundle exists, Contents/MacOS/main is present and executable, the resource
archive was copied, extensions and icon were copied when the project has them,
and Info.plist has no {APP_*} placeholders left. A checksum of main is shown
(SHA-256 by default, BLAKE2b-256 with --digest blake2b).

Exits with an error if any bundle has a problem.

EXAMPLES:
  neubundle inspect                        Inspect every configured architecture
  neubundle inspect --arch x64             Inspect only x64
  neubundle inspect --digest blake2b       Show BLAKE2b-256 checksums
  neubundle inspect --output=json          Output as JSON`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "arch",
				Aliases: []string{"a"},
				Usage:   "Inspect only this configured architecture (repeatable)",
			},
			&cli.StringFlag{
				Name:  "digest",
				Value: inspect.DigestSHA256,
				Usage: "Checksum algorithm for the main executable: sha256 or blake2b",
			},
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
		UseCase: &inspect.UseCase{
			Env:    env,
			Layout: cliinternal.Layout(cmd),
		},
		Stdout: cmd.Root().Writer,
		Stderr: cliinternal.ErrWriter(cmd),
	}

	return r.Run(ctx, Options{
		Archs:  cmd.StringSlice("arch"),
		Digest: cmd.String("digest"),
		Output: output.ParseFormat(cmd.String("output")),
	})
}

// Run executes the inspect command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	result, err := r.UseCase.Execute(ctx, inspect.Input{Archs: opts.Archs, Digest: opts.Digest})
	if err != nil {
		return err
	}

	if opts.Output == output.FormatJSON {
		if err := r.printJSON(result); err != nil {
			return err
		}
	} else {
		r.printText(result)
	}

	failed := result.Failed()
	if len(failed) == 0 {
		return nil
	}

	if lo.SomeBy(failed, func(rep inspect.Report) bool { return !rep.Exists }) {
		output.Hint(r.Stderr, "run 'neubundle build' to assemble missing bundles")
	}

	return fmt.Errorf("%w: %d of %d bundle(s)", ErrProblemsFound, len(failed), len(result.Reports))
}

func (r *Runner) printText(result *inspect.Output) {
	for i, rep := range result.Reports {
		if i > 0 {
			output.Println(r.Stdout, "")
		}

		output.Printf(r.Stdout, "%s %s\n", colors.Arch(rep.Arch), rep.Target.Destination)

		if rep.Exists {
			out := output.Indented(r.Stdout, "  ")
			if rep.Digest != "" {
				out.Field(digestLabel(rep.Algorithm), colors.Digest(rep.Digest))
			}

			out.Field("Extensions", yesNo(rep.Extensions))
			out.Field("Icon", yesNo(rep.Icon))
		}

		if rep.OK() {
			output.Success(r.Stdout, "%s: OK", rep.Arch)
			continue
		}

		for _, problem := range rep.Problems {
			output.Failed(r.Stdout, rep.Arch, problem)
		}
	}
}

func (r *Runner) printJSON(result *inspect.Output) error {
	reports := lo.Map(result.Reports, func(rep inspect.Report, _ int) JSONReport {
		return JSONReport{
			Arch:        rep.Arch,
			Destination: rep.Target.Destination,
			OK:          rep.OK(),
			Executable:  rep.Executable,
			Resources:   rep.Resources,
			Extensions:  rep.Extensions,
			Icon:        rep.Icon,
			Digest:      rep.Digest,
			Algorithm:   rep.Algorithm,
			Problems:    lo.Ternary(rep.Problems == nil, []string{}, rep.Problems),
		}
	})

	enc := json.NewEncoder(r.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(reports)
}

func digestLabel(algorithm string) string {
	if algorithm == inspect.DigestBLAKE2b {
		return "BLAKE2b-256"
	}

	return "SHA-256"
}

func yesNo(b bool) string {
	return lo.Ternary(b, "yes", "no")
}
