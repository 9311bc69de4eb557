// Package build provides the command that assembles macOS app bundles.
package build

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"

	cliinternal "github.com/mpyw/neubundle/internal/cli/commands/internal"
	"github.com/mpyw/neubundle/internal/cli/colors"
	"github.com/mpyw/neubundle/internal/cli/confirm"
	"github.com/mpyw/neubundle/internal/cli/output"
	"github.com/mpyw/neubundle/internal/cli/pager"
	"github.com/mpyw/neubundle/internal/maputil"
	"github.com/mpyw/neubundle/internal/usecase/build"
	"github.com/mpyw/neubundle/internal/xattr"
)

// Banner is printed before anything else.
const Banner = "Neutralino BuildScript for macOS"

// Runner executes the build command and prints its progress.
type Runner struct {
	UseCase *build.UseCase
	// Prompter asks before --clean removes existing bundles. Nil never prompts.
	Prompter *confirm.Prompter
	Stdout   io.Writer
	Stderr   io.Writer
}

var _ build.Reporter = (*Runner)(nil)

// Options holds the options for the build command.
type Options struct {
	Archs   []string
	Clean   bool
	Yes     bool
	DryRun  bool
	NoPager bool
}

// Command returns the build command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Assemble a macOS .app bundle per configured architecture",
		Description: `Read neutralino.config.json and, for every architecture listed in
buildScript.mac.architecture, assemble dist/mac_<arch>/<appName>.app from the
app container template, the compiled binary and the resource archive.

Existing bundles are overlaid: files removed from the template since the last
build stay in place unless --clean is given. On macOS hosts, extended
attributes are cleared from every file in the bundle.

Use --dry-run to check inputs and preview the Info.plist substitution without
writing anything.

EXAMPLES:
  neubundle build                          Build every configured architecture
  neubundle build --arch arm64             Build only arm64
  neubundle build --clean                  Rebuild bundles from scratch
  neubundle build --dry-run                Preview Info.plist changes
  neubundle -C ./myapp build               Build the project in ./myapp`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "arch",
				Aliases: []string{"a"},
				Usage:   "Build only this configured architecture (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "clean",
				Usage: "Remove each destination bundle before assembling it",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask before --clean removes existing bundles",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Validate inputs and show the Info.plist diff without writing",
			},
			&cli.StringFlag{
				Name:  "xattr",
				Usage: "How to clear extended attributes on macOS: exec (find + xattr) or native",
				Value: string(xattr.ModeExec),
			},
			&cli.BoolFlag{
				Name:  "no-pager",
				Usage: "Disable pager output",
			},
		},
		Action: action,
	}
}

func action(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("clean") && cmd.Bool("dry-run") {
		return fmt.Errorf("--clean and --dry-run cannot be used together")
	}

	mode, err := xattr.ParseMode(cmd.String("xattr"))
	if err != nil {
		return err
	}

	env, err := cliinternal.Environment(cmd)
	if err != nil {
		return err
	}

	r := &Runner{
		UseCase: &build.UseCase{
			Env:     env,
			Layout:  cliinternal.Layout(cmd),
			Cleaner: xattr.ForEnvironment(env, mode),
			Logger:  cliinternal.Logger(cmd),
		},
		Stdout: cmd.Root().Writer,
		Stderr: cliinternal.ErrWriter(cmd),
	}

	if stdin := cmd.Root().Reader; stdin != nil && confirm.Interactive(stdin) {
		r.Prompter = &confirm.Prompter{Stdin: stdin, Stderr: r.Stderr}
	}

	return r.Run(ctx, Options{
		Archs:   cmd.StringSlice("arch"),
		Clean:   cmd.Bool("clean"),
		Yes:     cmd.Bool("yes"),
		DryRun:  cmd.Bool("dry-run"),
		NoPager: cmd.Bool("no-pager"),
	})
}

// Run executes the build command.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	if r.UseCase.Reporter == nil {
		r.UseCase.Reporter = r
	}

	output.Header(r.Stdout, Banner)

	input := build.Input{
		Archs:  opts.Archs,
		Clean:  opts.Clean,
		DryRun: opts.DryRun,
	}

	if opts.Clean && r.Prompter != nil {
		existing, err := r.UseCase.ExistingDestinations(input)
		if err != nil {
			return err
		}

		ok, err := r.Prompter.ConfirmRemove(existing, opts.Yes)
		if err != nil {
			return err
		}

		if !ok {
			output.Info(r.Stderr, "Operation cancelled.")
			return nil
		}
	}

	result, err := r.UseCase.Execute(ctx, input)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		return nil
	}

	return pager.WithPagerWriter(r.Stdout, opts.NoPager, func(w io.Writer) error {
		r.printPlan(w, result)
		return nil
	})
}

// Begin implements build.Reporter.
func (r *Runner) Begin(s build.Summary) {
	output.Printf(r.Stdout, "\nBuilding for: %s\n", colors.Arch(s.Arch))

	out := output.Indented(r.Stdout, "  ")
	out.Field("Minimum macOS", s.MinimumOS)
	out.Field("App Name", s.AppName)
	out.Field("Bundle Name", s.BundleName)
	out.Field("Identifier", s.Identifier)
	out.Field("Icon", lo.CoalesceOrEmpty(s.Icon, "(none)"))
	out.Field("Container", s.Container)
	out.Field("Destination", s.Destination)
}

// Step implements build.Reporter.
func (r *Runner) Step(_ string, step build.Step) {
	output.Step(r.Stdout, step.String())
}

// Unresolved implements build.Reporter.
func (r *Runner) Unresolved(arch string, tokens []string) {
	output.Warning(r.Stderr, "%s: unresolved placeholders in Info.plist: %s", arch, strings.Join(tokens, ", "))
}

// Finished implements build.Reporter.
func (r *Runner) Finished(arch string) {
	output.Success(r.Stdout, "Build finished for %s.", arch)
}

func (r *Runner) printPlan(w io.Writer, result *build.Output) {
	output.Println(w, "")
	output.Println(w, "Placeholders:")

	out := output.Indented(w, "  ")
	for _, e := range maputil.SortedEntries(result.Placeholders) {
		out.Field("{"+e.Key+"}", e.Value)
	}

	for _, b := range result.Bundles {
		output.Println(w, "")
		output.Rule(w)
		output.Printf(w, "%s %s\n", colors.Arch(b.Arch), b.Target.Destination)

		diff := output.Diff(b.Target.ContainerPlist(), b.Target.Plist, b.PlistBefore, b.PlistAfter)
		if diff == "" {
			output.Println(w, "Info.plist has no placeholders to substitute.")
		} else {
			output.Printf(w, "%s", diff)
		}

		notes := output.Indented(w, "  ")
		if !b.Extensions {
			notes.Line("No extensions directory; the extensions step will be skipped.")
		}

		if !b.Icon {
			notes.Line("No icon; the icon step will be skipped.")
		}
	}

	output.Println(w, "")
	output.Info(w, "Dry run: nothing was written.")
}
