// Package buildenv describes the host a bundle build runs on and the
// project's filesystem layout.
//
// Process-wide state (working directory, host OS) is captured once into an
// Environment value and passed explicitly, so that the assembler can be
// exercised against a simulated platform on any host.
package buildenv

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GOOS values the assembler cares about.
const (
	Darwin = "darwin"
)

// Default layout names, matching the Neutralino project conventions.
const (
	DefaultConfigFile      = "neutralino.config.json"
	DefaultContainer       = "myapp.app"
	DefaultDistDir         = "dist"
	DefaultResourceArchive = "resources.neu"
	DefaultExtensionsDir   = "extensions"
)

// Environment is an immutable description of the build host.
type Environment struct {
	// Root is the absolute project root directory.
	Root string
	// GOOS is the host operating system family (runtime.GOOS semantics).
	GOOS string
}

// Detect captures the current working directory and host OS.
func Detect() (Environment, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Environment{}, fmt.Errorf("failed to determine working directory: %w", err)
	}

	return Environment{Root: wd, GOOS: runtime.GOOS}, nil
}

// New returns an Environment rooted at root. An empty goos means the current host.
func New(root, goos string) (Environment, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Environment{}, fmt.Errorf("failed to resolve project root %s: %w", root, err)
	}

	if goos == "" {
		goos = runtime.GOOS
	}

	return Environment{Root: abs, GOOS: goos}, nil
}

// IsDarwin reports whether the environment is a macOS host.
func (e Environment) IsDarwin() bool {
	return e.GOOS == Darwin
}

// Resolve joins a project-relative path onto Root. Absolute paths are returned unchanged.
func (e Environment) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(e.Root, path)
}

// Layout holds the names of the files and directories the assembler reads and writes.
type Layout struct {
	ConfigFile      string
	Container       string
	DistDir         string
	ResourceArchive string
	ExtensionsDir   string
}

// DefaultLayout returns the standard Neutralino project layout.
func DefaultLayout() Layout {
	return Layout{
		ConfigFile:      DefaultConfigFile,
		Container:       DefaultContainer,
		DistDir:         DefaultDistDir,
		ResourceArchive: DefaultResourceArchive,
		ExtensionsDir:   DefaultExtensionsDir,
	}
}

// ConfigPath returns the configuration file path.
func (l Layout) ConfigPath(env Environment) string {
	return env.Resolve(l.ConfigFile)
}

// ContainerPath returns the macOS app container template path.
func (l Layout) ContainerPath(env Environment) string {
	return filepath.Join(env.Root, "build-scripts", "app_containers", "mac", l.Container)
}

// DistPath returns the distribution root.
func (l Layout) DistPath(env Environment) string {
	return env.Resolve(l.DistDir)
}
