// Package project loads and validates the Neutralino project configuration
// consumed by the macOS bundle build.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config is the subset of neutralino.config.json the bundle build reads.
// Unknown keys are ignored.
type Config struct {
	Version     string      `json:"version"     toml:"version"     yaml:"version"`
	CLI         CLIConfig   `json:"cli"         toml:"cli"         yaml:"cli"`
	BuildScript BuildScript `json:"buildScript" toml:"buildScript" yaml:"buildScript"`
}

// CLIConfig holds the "cli" section.
type CLIConfig struct {
	BinaryName string `json:"binaryName" toml:"binaryName" yaml:"binaryName"`
}

// BuildScript holds the "buildScript" section. Mac is nil when the section is absent.
type BuildScript struct {
	Mac *MacConfig `json:"mac" toml:"mac" yaml:"mac"`
}

// MacConfig holds the "buildScript.mac" section.
type MacConfig struct {
	Architecture  []string `json:"architecture"  toml:"architecture"  yaml:"architecture"`
	MinimumOS     string   `json:"minimumOS"     toml:"minimumOS"     yaml:"minimumOS"`
	AppName       string   `json:"appName"       toml:"appName"       yaml:"appName"`
	AppIdentifier string   `json:"appIdentifier" toml:"appIdentifier" yaml:"appIdentifier"`
	AppBundleName string   `json:"appBundleName" toml:"appBundleName" yaml:"appBundleName"`
	AppIcon       string   `json:"appIcon"       toml:"appIcon"       yaml:"appIcon"`
}

// Load reads, decodes and validates the configuration file at path.
// The format is chosen by extension: .toml, .yaml/.yml, anything else is JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigurationError{Path: path, Reason: "configuration file not found"}
		}

		return nil, &ConfigurationError{Path: path, Reason: "failed to read configuration", Err: err}
	}

	cfg, err := Decode(path, data)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "failed to parse configuration", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "invalid configuration", Err: err}
	}

	return cfg, nil
}

// Decode parses data according to the extension of path without validating it.
func Decode(path string, data []byte) (*Config, error) {
	var cfg Config

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// Validate checks that every field the build substitutes or derives paths from is present.
func (c *Config) Validate() error {
	if c.BuildScript.Mac == nil {
		return ErrMissingMacSection
	}

	mac := c.BuildScript.Mac
	if len(mac.Architecture) == 0 {
		return fmt.Errorf("%w: buildScript.mac.architecture", ErrMissingField)
	}

	for i, arch := range mac.Architecture {
		if strings.TrimSpace(arch) == "" {
			return fmt.Errorf("%w: buildScript.mac.architecture[%d]", ErrMissingField, i)
		}
	}

	required := []struct {
		name  string
		value string
	}{
		{"version", c.Version},
		{"cli.binaryName", c.CLI.BinaryName},
		{"buildScript.mac.minimumOS", mac.MinimumOS},
		{"buildScript.mac.appName", mac.AppName},
		{"buildScript.mac.appIdentifier", mac.AppIdentifier},
		{"buildScript.mac.appBundleName", mac.AppBundleName},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	return nil
}

// Mac returns the macOS section. It must only be called on a validated Config.
func (c *Config) Mac() *MacConfig {
	return c.BuildScript.Mac
}

// Architectures returns the configured architectures in declared order, with
// duplicates removed. A non-empty only restricts the result to those entries;
// naming an architecture that is not configured is an error.
func (c *Config) Architectures(only []string) ([]string, error) {
	archs := lo.Uniq(c.Mac().Architecture)
	if len(only) == 0 {
		return archs, nil
	}

	for _, arch := range only {
		if !lo.Contains(archs, arch) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownArchitecture, arch)
		}
	}

	return lo.Filter(archs, func(arch string, _ int) bool {
		return lo.Contains(only, arch)
	}), nil
}
