// Package bundle assembles a single macOS application bundle for one
// architecture: it resolves the source and destination paths, overlays the
// container template and compiled artifacts, and rewrites Info.plist.
package bundle

import (
	"path/filepath"

	"github.com/mpyw/neubundle/internal/buildenv"
	"github.com/mpyw/neubundle/internal/project"
)

// ExecutableName is the file name of the bundle's main executable.
const ExecutableName = "main"

// Target holds every path involved in building the bundle for one architecture.
type Target struct {
	Arch string

	// Sources.
	Container  string
	Binary     string
	Resources  string
	Extensions string
	Icon       string

	// Destinations.
	Destination  string
	Executable   string
	ResourcesDir string
	Plist        string
}

// Resolve computes the Target for arch.
func Resolve(env buildenv.Environment, layout buildenv.Layout, cfg *project.Config, arch string) Target {
	mac := cfg.Mac()
	dist := layout.DistPath(env)
	binDir := filepath.Join(dist, cfg.CLI.BinaryName)
	dst := filepath.Join(dist, "mac_"+arch, mac.AppName+".app")

	return Target{
		Arch:         arch,
		Container:    layout.ContainerPath(env),
		Binary:       filepath.Join(binDir, cfg.CLI.BinaryName+"-mac_"+arch),
		Resources:    filepath.Join(binDir, layout.ResourceArchive),
		Extensions:   filepath.Join(binDir, layout.ExtensionsDir),
		Icon:         env.Resolve(mac.AppIcon),
		Destination:  dst,
		Executable:   filepath.Join(dst, "Contents", "MacOS", ExecutableName),
		ResourcesDir: filepath.Join(dst, "Contents", "Resources"),
		Plist:        filepath.Join(dst, "Contents", "Info.plist"),
	}
}

// MacOSDir returns Contents/MacOS of the destination bundle.
func (t Target) MacOSDir() string {
	return filepath.Dir(t.Executable)
}

// ResourceDestination returns where the resource archive lands in the bundle.
func (t Target) ResourceDestination() string {
	return filepath.Join(t.ResourcesDir, filepath.Base(t.Resources))
}

// ExtensionsDestination returns where the extensions directory lands in the bundle.
func (t Target) ExtensionsDestination() string {
	return filepath.Join(t.ResourcesDir, filepath.Base(t.Extensions))
}

// IconDestination returns where the icon lands in the bundle, or "" when no icon is configured.
func (t Target) IconDestination() string {
	if t.Icon == "" {
		return ""
	}

	return filepath.Join(t.ResourcesDir, filepath.Base(t.Icon))
}

// ContainerPlist returns the template's Info.plist.
func (t Target) ContainerPlist() string {
	return filepath.Join(t.Container, "Contents", "Info.plist")
}
