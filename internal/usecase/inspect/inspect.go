// Package inspect provides the read-only bundle verification use case.
package inspect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/samber/lo"
	"golang.org/x/crypto/blake2b"

	"github.com/mpyw/neubundle/internal/buildenv"
	"github.com/mpyw/neubundle/internal/bundle"
	"github.com/mpyw/neubundle/internal/fsutil"
	"github.com/mpyw/neubundle/internal/parallel"
	"github.com/mpyw/neubundle/internal/project"
	"github.com/mpyw/neubundle/internal/usecase/build"
)

// Checksum algorithms for Contents/MacOS/main.
const (
	DigestSHA256  = "sha256"
	DigestBLAKE2b = "blake2b"
)

// ErrUnknownDigest is returned for an unsupported checksum algorithm.
var ErrUnknownDigest = errors.New("unknown digest algorithm")

// Input holds input for the inspect use case.
type Input struct {
	// Archs restricts inspection to these configured architectures. Empty means all.
	Archs []string
	// Digest names the checksum algorithm. Empty means DigestSHA256.
	Digest string
}

// Report describes the state of one built bundle.
type Report struct {
	Arch       string
	Target     bundle.Target
	Exists     bool
	Executable bool
	Resources  bool
	Extensions bool
	Icon       bool
	Digest     string // checksum of Contents/MacOS/main, hex encoded
	Algorithm  string
	Unresolved []string
	Problems   []string
}

// OK reports whether the bundle has no problems.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Output holds the result of the inspect use case.
type Output struct {
	Config  *project.Config
	Reports []Report
}

// Failed returns the reports that have at least one problem.
func (o *Output) Failed() []Report {
	return lo.Reject(o.Reports, func(r Report, _ int) bool {
		return r.OK()
	})
}

// UseCase verifies built bundles without modifying them.
type UseCase struct {
	Env    buildenv.Environment
	Layout buildenv.Layout
}

// Execute runs the inspect use case. Bundles are checked concurrently; reports
// keep the configured architecture order.
func (u *UseCase) Execute(ctx context.Context, input Input) (*Output, error) {
	algorithm := lo.CoalesceOrEmpty(input.Digest, DigestSHA256)
	if _, err := newHash(algorithm); err != nil {
		return nil, err
	}

	cfg, err := build.Preflight(u.Env, u.Layout)
	if err != nil {
		return nil, err
	}

	archs, err := cfg.Architectures(input.Archs)
	if err != nil {
		return nil, &project.ConfigurationError{Path: u.Layout.ConfigPath(u.Env), Reason: "invalid architecture selection", Err: err}
	}

	results := parallel.Map(ctx, archs, func(ctx context.Context, arch string) (Report, error) {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		return u.inspectOne(cfg, arch, algorithm)
	})

	output := &Output{Config: cfg}
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}

		output.Reports = append(output.Reports, r.Value)
	}

	return output, nil
}

func (u *UseCase) inspectOne(cfg *project.Config, arch, algorithm string) (Report, error) {
	target := bundle.Resolve(u.Env, u.Layout, cfg, arch)
	report := Report{Arch: arch, Target: target}

	if !fsutil.IsDir(target.Destination) {
		report.Problems = append(report.Problems, "bundle not found: "+target.Destination)
		return report, nil
	}

	report.Exists = true

	info, err := os.Stat(target.Executable)
	switch {
	case err != nil:
		report.Problems = append(report.Problems, "main executable not found: "+target.Executable)
	case info.Mode().Perm()&0o111 == 0:
		report.Problems = append(report.Problems, fmt.Sprintf("main executable is not executable (mode %v)", info.Mode().Perm()))
	default:
		report.Executable = true
	}

	if err == nil && info.Mode().IsRegular() {
		digest, err := digestFile(target.Executable, algorithm)
		if err != nil {
			return Report{}, &bundle.FilesystemError{Op: "read", Path: target.Executable, Err: err}
		}

		report.Digest = digest
		report.Algorithm = algorithm
	}

	report.Resources = fsutil.Exists(target.ResourceDestination())
	if !report.Resources {
		report.Problems = append(report.Problems, "resource archive not found: "+target.ResourceDestination())
	}

	// Optional inputs are only expected when their sources exist.
	report.Extensions = fsutil.Exists(target.ExtensionsDestination())
	if !report.Extensions && fsutil.Exists(target.Extensions) {
		report.Problems = append(report.Problems, "extensions not copied: "+target.ExtensionsDestination())
	}

	if target.Icon != "" {
		report.Icon = fsutil.Exists(target.IconDestination())
		if !report.Icon && fsutil.Exists(target.Icon) {
			report.Problems = append(report.Problems, "icon not copied: "+target.IconDestination())
		}
	}

	plist, err := os.ReadFile(target.Plist)
	if err != nil {
		report.Problems = append(report.Problems, "Info.plist not found: "+target.Plist)
		return report, nil
	}

	report.Unresolved = bundle.Unresolved(string(plist))
	for _, token := range report.Unresolved {
		report.Problems = append(report.Problems, "unresolved placeholder in Info.plist: "+token)
	}

	return report, nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case DigestSHA256:
		return sha256.New(), nil
	case DigestBLAKE2b:
		return blake2b.New256(nil)
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownDigest, algorithm, DigestSHA256, DigestBLAKE2b)
	}
}

func digestFile(path, algorithm string) (string, error) {
	h, err := newHash(algorithm)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
