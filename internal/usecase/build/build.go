// Package build provides the macOS bundle assembly use case.
package build

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/mpyw/neubundle/internal/buildenv"
	"github.com/mpyw/neubundle/internal/bundle"
	"github.com/mpyw/neubundle/internal/fsutil"
	"github.com/mpyw/neubundle/internal/project"
	"github.com/mpyw/neubundle/internal/xattr"
)

// Step identifies a progress milestone within one architecture.
type Step int

const (
	StepCopyArtifacts Step = iota
	StepCopyExtensions
	StepCopyIcon
	StepProcessPlist
	StepClearXattr
)

// String returns the progress line shown for the step.
func (s Step) String() string {
	switch s {
	case StepCopyArtifacts:
		return "Copying binary and resources..."
	case StepCopyExtensions:
		return "Copying extensions..."
	case StepCopyIcon:
		return "Copying icon..."
	case StepProcessPlist:
		return "Processing Info.plist..."
	case StepClearXattr:
		return "Clearing Extended Attributes..."
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Summary describes one architecture's build before anything is written.
type Summary struct {
	Arch        string
	MinimumOS   string
	AppName     string
	BundleName  string
	Identifier  string
	Icon        string
	Container   string
	Destination string
}

// Reporter receives progress as the build runs.
type Reporter interface {
	Begin(summary Summary)
	Step(arch string, step Step)
	Unresolved(arch string, tokens []string)
	Finished(arch string)
}

// Input holds input for the build use case.
type Input struct {
	// Archs restricts the build to these configured architectures. Empty means all.
	Archs []string
	// Clean removes each destination bundle before materializing it.
	Clean bool
	// DryRun validates inputs and renders Info.plist without writing anything.
	DryRun bool
}

// Bundle describes one assembled (or, in dry-run mode, planned) bundle.
type Bundle struct {
	Arch       string
	Target     bundle.Target
	Extensions bool
	Icon       bool
	Unresolved []string

	// Set only in dry-run mode.
	PlistBefore string
	PlistAfter  string
}

// Output holds the result of the build use case.
type Output struct {
	Config       *project.Config
	Placeholders bundle.Placeholders
	Bundles      []Bundle
}

// UseCase assembles one bundle per configured architecture, sequentially and fail-fast.
type UseCase struct {
	Env      buildenv.Environment
	Layout   buildenv.Layout
	Cleaner  xattr.Cleaner
	Reporter Reporter
	Logger   zerolog.Logger
}

// Execute runs the build use case.
func (u *UseCase) Execute(ctx context.Context, input Input) (*Output, error) {
	cfg, err := Preflight(u.Env, u.Layout)
	if err != nil {
		return nil, err
	}

	archs, err := cfg.Architectures(input.Archs)
	if err != nil {
		return nil, &project.ConfigurationError{Path: u.Layout.ConfigPath(u.Env), Reason: "invalid architecture selection", Err: err}
	}

	output := &Output{
		Config:       cfg,
		Placeholders: bundle.PlaceholdersFor(cfg),
	}

	for _, arch := range archs {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		b, err := u.buildOne(ctx, cfg, output.Placeholders, arch, input)
		if err != nil {
			return output, err
		}

		output.Bundles = append(output.Bundles, *b)
	}

	return output, nil
}

// Preflight checks that the configuration file and the app container exist, then
// loads and validates the configuration. Nothing is written.
func Preflight(env buildenv.Environment, layout buildenv.Layout) (*project.Config, error) {
	configPath := layout.ConfigPath(env)
	if !fsutil.Exists(configPath) {
		return nil, &project.ConfigurationError{Path: configPath, Reason: "configuration file not found"}
	}

	container := layout.ContainerPath(env)
	if !fsutil.IsDir(container) {
		return nil, &bundle.MissingArtifactError{Kind: bundle.KindContainer, Path: container}
	}

	return project.Load(configPath)
}

// ExistingDestinations returns the destination bundles selected by input that
// already exist on disk. Nothing is written.
func (u *UseCase) ExistingDestinations(input Input) ([]string, error) {
	cfg, err := Preflight(u.Env, u.Layout)
	if err != nil {
		return nil, err
	}

	archs, err := cfg.Architectures(input.Archs)
	if err != nil {
		return nil, &project.ConfigurationError{Path: u.Layout.ConfigPath(u.Env), Reason: "invalid architecture selection", Err: err}
	}

	return lo.FilterMap(archs, func(arch string, _ int) (string, bool) {
		dst := bundle.Resolve(u.Env, u.Layout, cfg, arch).Destination
		return dst, fsutil.Exists(dst)
	}), nil
}

func (u *UseCase) buildOne(ctx context.Context, cfg *project.Config, placeholders bundle.Placeholders, arch string, input Input) (*Bundle, error) {
	target := bundle.Resolve(u.Env, u.Layout, cfg, arch)
	log := u.Logger.With().Str("arch", arch).Logger()
	reporter := u.reporter()
	mac := cfg.Mac()

	reporter.Begin(Summary{
		Arch:        arch,
		MinimumOS:   mac.MinimumOS,
		AppName:     mac.AppName,
		BundleName:  mac.AppBundleName,
		Identifier:  mac.AppIdentifier,
		Icon:        mac.AppIcon,
		Container:   target.Container,
		Destination: target.Destination,
	})

	if err := target.CheckInputs(); err != nil {
		return nil, err
	}

	result := &Bundle{Arch: arch, Target: target}

	if input.DryRun {
		before, after, err := target.RenderPlist(placeholders)
		if err != nil {
			return nil, err
		}

		result.PlistBefore = before
		result.PlistAfter = after
		result.Extensions = fsutil.Exists(target.Extensions)
		result.Icon = target.Icon != "" && fsutil.Exists(target.Icon)
		result.Unresolved = bundle.Unresolved(after)
		if len(result.Unresolved) > 0 {
			reporter.Unresolved(arch, result.Unresolved)
		}

		log.Debug().Str("destination", target.Destination).Msg("dry run: skipping writes")

		return result, nil
	}

	log.Debug().Str("destination", target.Destination).Bool("clean", input.Clean).Msg("materializing bundle")

	if err := target.Materialize(input.Clean); err != nil {
		return nil, err
	}

	reporter.Step(arch, StepCopyArtifacts)
	log.Debug().Str("src", target.Binary).Str("dst", target.Executable).Msg("copying binary")

	if err := target.CopyBinary(); err != nil {
		return nil, err
	}

	if err := target.CopyResources(); err != nil {
		return nil, err
	}

	if fsutil.Exists(target.Extensions) {
		reporter.Step(arch, StepCopyExtensions)
	}

	copied, err := target.CopyExtensions()
	if err != nil {
		return nil, err
	}

	result.Extensions = copied

	if target.Icon != "" && fsutil.Exists(target.Icon) {
		reporter.Step(arch, StepCopyIcon)
	}

	copied, err = target.CopyIcon()
	if err != nil {
		return nil, err
	}

	result.Icon = copied

	reporter.Step(arch, StepProcessPlist)

	unresolved, err := target.SubstitutePlist(placeholders)
	if err != nil {
		return nil, err
	}

	result.Unresolved = unresolved
	if len(unresolved) > 0 {
		log.Warn().Strs("tokens", unresolved).Msg("unresolved placeholders in Info.plist")
		reporter.Unresolved(arch, unresolved)
	}

	if u.Env.IsDarwin() {
		reporter.Step(arch, StepClearXattr)

		if err := u.cleaner().Clear(ctx, target.Destination); err != nil {
			return nil, wrapCleanerError(target.Destination, err)
		}
	}

	reporter.Finished(arch)
	log.Debug().Msg("bundle finished")

	return result, nil
}

func (u *UseCase) reporter() Reporter {
	if u.Reporter == nil {
		return nopReporter{}
	}

	return u.Reporter
}

func (u *UseCase) cleaner() xattr.Cleaner {
	if u.Cleaner == nil {
		return xattr.ForEnvironment(u.Env, xattr.ModeExec)
	}

	return u.Cleaner
}

func wrapCleanerError(path string, err error) error {
	var cmdErr *xattr.ExternalCommandError
	if errors.As(err, &cmdErr) {
		return err
	}

	return &bundle.FilesystemError{Op: "clear extended attributes of", Path: path, Err: err}
}

type nopReporter struct{}

func (nopReporter) Begin(Summary) {}

func (nopReporter) Step(string, Step) {}

func (nopReporter) Unresolved(string, []string) {}

func (nopReporter) Finished(string) {}
