// Package testutil lays out throwaway Neutralino projects for tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mpyw/neubundle/internal/buildenv"
	"github.com/mpyw/neubundle/internal/project"
)

// PlistTemplate is the container Info.plist written by NewProject.
const PlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDisplayName</key>
	<string>{APP_NAME}</string>
	<key>CFBundleName</key>
	<string>{APP_BUNDLE}</string>
	<key>CFBundleIdentifier</key>
	<string>{APP_ID}</string>
	<key>CFBundleShortVersionString</key>
	<string>{APP_VERSION}</string>
	<key>LSMinimumSystemVersion</key>
	<string>{APP_MIN_OS}</string>
	<key>CFBundleExecutable</key>
	<string>main</string>
</dict>
</plist>
`

// Project is a fake Neutralino project rooted in a temporary directory.
type Project struct {
	t      testing.TB
	Root   string
	Config project.Config
}

// NewProject creates a complete project: config, container template, per-arch
// binaries, resource archive, extensions and icon. archs defaults to x64 and arm64.
func NewProject(t testing.TB, archs ...string) *Project {
	t.Helper()

	if len(archs) == 0 {
		archs = []string{"x64", "arm64"}
	}

	p := &Project{
		t:    t,
		Root: t.TempDir(),
		Config: project.Config{
			Version: "1.2.3",
			CLI:     project.CLIConfig{BinaryName: "myapp"},
			BuildScript: project.BuildScript{Mac: &project.MacConfig{
				Architecture:  archs,
				MinimumOS:     "10.13.0",
				AppName:       "MyApp",
				AppIdentifier: "com.example.myapp",
				AppBundleName: "MyApp",
				AppIcon:       "build-scripts/icon.icns",
			}},
		},
	}

	p.WriteConfig()
	p.WriteFile(filepath.Join(p.ContainerPath(), "Contents", "Info.plist"), PlistTemplate, 0o644)
	p.WriteFile(filepath.Join(p.ContainerPath(), "Contents", "Resources", "container.txt"), "from container", 0o644)

	for _, arch := range archs {
		p.WriteFile(p.BinaryPath(arch), "binary for "+arch, 0o644)
	}

	p.WriteFile(p.ResourcesPath(), "resource archive", 0o644)
	p.WriteFile(filepath.Join(p.ExtensionsPath(), "ext", "main.js"), "extension", 0o644)
	p.WriteFile(filepath.Join(p.Root, "build-scripts", "icon.icns"), "icon", 0o644)

	return p
}

// Env returns a build environment for the project on goos.
func (p *Project) Env(goos string) buildenv.Environment {
	return buildenv.Environment{Root: p.Root, GOOS: goos}
}

// ConfigPath returns the configuration file path.
func (p *Project) ConfigPath() string {
	return filepath.Join(p.Root, buildenv.DefaultConfigFile)
}

// WriteConfig serializes p.Config to the configuration file.
func (p *Project) WriteConfig() {
	p.t.Helper()

	data, err := json.MarshalIndent(p.Config, "", "  ")
	require.NoError(p.t, err)
	p.WriteFile(p.ConfigPath(), string(data), 0o644)
}

// WriteRawConfig writes content verbatim as the configuration file.
func (p *Project) WriteRawConfig(content string) {
	p.t.Helper()
	p.WriteFile(p.ConfigPath(), content, 0o644)
}

// ContainerPath returns the app container template directory.
func (p *Project) ContainerPath() string {
	return filepath.Join(p.Root, "build-scripts", "app_containers", "mac", buildenv.DefaultContainer)
}

// BinaryPath returns the compiled binary for arch.
func (p *Project) BinaryPath(arch string) string {
	return filepath.Join(p.Root, "dist", "myapp", "myapp-mac_"+arch)
}

// ResourcesPath returns the resource archive.
func (p *Project) ResourcesPath() string {
	return filepath.Join(p.Root, "dist", "myapp", buildenv.DefaultResourceArchive)
}

// ExtensionsPath returns the extensions directory.
func (p *Project) ExtensionsPath() string {
	return filepath.Join(p.Root, "dist", "myapp", buildenv.DefaultExtensionsDir)
}

// IconPath returns the configured icon.
func (p *Project) IconPath() string {
	return filepath.Join(p.Root, "build-scripts", "icon.icns")
}

// BundlePath returns the destination bundle for arch.
func (p *Project) BundlePath(arch string) string {
	return filepath.Join(p.Root, "dist", "mac_"+arch, "MyApp.app")
}

// Remove deletes path recursively.
func (p *Project) Remove(path string) {
	p.t.Helper()
	require.NoError(p.t, os.RemoveAll(path))
}

// WriteFile writes content to path, creating parent directories.
func (p *Project) WriteFile(path, content string, mode os.FileMode) {
	p.t.Helper()
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(p.t, os.WriteFile(path, []byte(content), mode))
}

// ReadFile returns the content at path.
func (p *Project) ReadFile(path string) string {
	p.t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(p.t, err)

	return string(data)
}
