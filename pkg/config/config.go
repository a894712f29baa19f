// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

// Config represents the full configuration.
type Config struct {
	// TopLevelName names new documents and overrides the name carried by
	// imported ones when set.
	TopLevelName string `yaml:"top_level_name"`

	// Workspace is the native JSON state file. Empty means the per-user
	// default location.
	Workspace string `yaml:"workspace"`

	Inputs  InputsConfig  `yaml:"inputs"`
	Outputs OutputsConfig `yaml:"outputs"`
	Plist   PlistConfig   `yaml:"plist"`
	Firefox FirefoxConfig `yaml:"firefox"`
	Check   CheckConfig   `yaml:"check"`
}

// InputsConfig configures browser input adapters.
type InputsConfig struct {
	Chrome   InputConfig `yaml:"chrome"`
	Edge     InputConfig `yaml:"edge"`
	Firefox  InputConfig `yaml:"firefox"`
	Safari   InputConfig `yaml:"safari"`
	Chromium InputConfig `yaml:"chromium"`
	Brave    InputConfig `yaml:"brave"`
}

// InputConfig configures a single input adapter.
type InputConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Profile    string `yaml:"profile"`
	CustomPath string `yaml:"custom_path"`
}

// OutputsConfig configures output adapters that take options.
type OutputsConfig struct {
	Markdown OutputConfig `yaml:"markdown"`
	YAML     OutputConfig `yaml:"yaml"`
	OPML     OutputConfig `yaml:"opml"`

	IncludeMetadata bool `yaml:"include_metadata"`
}

// OutputConfig configures a single output adapter.
type OutputConfig struct {
	Style   string            `yaml:"style"`
	Options map[string]string `yaml:"options"`
}

// PlistConfig configures the managed favorites encoder.
type PlistConfig struct {
	Key                 string `yaml:"key"`
	FavoritesBarEnabled bool   `yaml:"favorites_bar_enabled"`
}

// FirefoxConfig configures installation into places.sqlite.
type FirefoxConfig struct {
	// ExportParent is "menu" (the default) or "toolbar".
	ExportParent string `yaml:"export_parent"`
}

// CheckConfig configures URL checks run before export.
type CheckConfig struct {
	ExcludeProtocols []string `yaml:"exclude_protocols"` // Protocols to drop (e.g., data, javascript)
	WarnProtocols    []string `yaml:"warn_protocols"`    // Protocols to warn about but keep
	MaxURLLength     int      `yaml:"max_url_length"`    // Drop URLs longer than this (0 = no limit)
	WarnURLLength    int      `yaml:"warn_url_length"`   // Warn on URLs longer than this (0 = no warning)
}

// Default returns a configuration with sensible defaults.
func Default() Config {
	return Config{
		Inputs: InputsConfig{
			Chrome:   InputConfig{Enabled: true},
			Edge:     InputConfig{Enabled: true},
			Firefox:  InputConfig{Enabled: true},
			Safari:   InputConfig{Enabled: true},
			Chromium: InputConfig{Enabled: true},
			Brave:    InputConfig{Enabled: true},
		},
		Outputs: OutputsConfig{
			Markdown: OutputConfig{Style: "textual"},
		},
		Plist: PlistConfig{
			Key:                 "ManagedFavorites",
			FavoritesBarEnabled: true,
		},
		Firefox: FirefoxConfig{
			ExportParent: "menu",
		},
		Check: CheckConfig{
			ExcludeProtocols: []string{"data", "javascript"},
			WarnProtocols:    []string{"file", "chrome", "about", "blob"},
			WarnURLLength:    2048,
		},
	}
}

// Load reads configuration from a file, merging with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports values no command could act on.
func (c *Config) Validate() error {
	switch c.Firefox.ExportParent {
	case "", "toolbar", "menu":
	default:
		return fmt.Errorf("firefox.export_parent must be menu or toolbar, got %q", c.Firefox.ExportParent)
	}
	if c.Check.MaxURLLength < 0 || c.Check.WarnURLLength < 0 {
		return fmt.Errorf("check URL lengths must not be negative")
	}
	return nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gpomarks", "config.yaml")
}

// LocalPath returns a local config file path if it exists.
func LocalPath() string {
	paths := []string{
		"gpomarks.yaml",
		"gpomarks.yml",
		".gpomarks.yaml",
		".gpomarks.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// GetInputConfig returns the config for a specific input adapter.
func (c *Config) GetInputConfig(name string) InputConfig {
	switch name {
	case "chrome":
		return c.Inputs.Chrome
	case "edge":
		return c.Inputs.Edge
	case "firefox":
		return c.Inputs.Firefox
	case "safari":
		return c.Inputs.Safari
	case "chromium":
		return c.Inputs.Chromium
	case "brave":
		return c.Inputs.Brave
	default:
		return InputConfig{Enabled: true}
	}
}

// GetOutputConfig returns the config for a specific output adapter.
func (c *Config) GetOutputConfig(name string) OutputConfig {
	switch name {
	case "markdown":
		return c.Outputs.Markdown
	case "yaml":
		return c.Outputs.YAML
	case "opml":
		return c.Outputs.OPML
	default:
		return OutputConfig{}
	}
}

// OutputOptions returns the adapter options for name, with plist
// settings folded in for the plist encoders.
func (c *Config) OutputOptions(name string) map[string]interface{} {
	out := c.GetOutputConfig(name)
	opts := make(map[string]interface{}, len(out.Options)+2)
	for k, v := range out.Options {
		opts[k] = v
	}
	if out.Style != "" {
		opts["style"] = out.Style
	}
	switch name {
	case "plist":
		if c.Plist.Key != "" {
			opts["key"] = c.Plist.Key
		}
		opts["favorites_bar_enabled"] = c.Plist.FavoritesBarEnabled
	case "plist-chrome":
		opts["favorites_bar_enabled"] = c.Plist.FavoritesBarEnabled
	}
	return opts
}

// CheckOptions converts the check section for bookmark.Check.
func (c *Config) CheckOptions() bookmark.CheckOptions {
	return bookmark.CheckOptions{
		ExcludeProtocols: c.Check.ExcludeProtocols,
		WarnProtocols:    c.Check.WarnProtocols,
		MaxURLLength:     c.Check.MaxURLLength,
		WarnURLLength:    c.Check.WarnURLLength,
	}
}
