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

// Package firefox provides an input adapter for Firefox.
//
// Import is flat: every bookmark row becomes a top-level leaf and Firefox's
// folder hierarchy is not rebuilt.
package firefox

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
	"github.com/cloudygreybeard/gpomarks/pkg/store/places"
)

// firefoxPaths maps platform to Firefox profiles directory.
var firefoxPaths = map[string]string{
	"linux":   ".mozilla/firefox",
	"darwin":  "Library/Application Support/Firefox/Profiles",
	"windows": "Mozilla/Firefox/Profiles",
}

func init() {
	adapter.RegisterInput(New())
}

// Adapter implements input.Adapter for Firefox.
type Adapter struct {
	config  input.Config
	path    string
	profile string
}

// New creates a new Firefox adapter.
func New() *Adapter {
	a := &Adapter{}
	a.path, a.profile = a.findDatabase()
	return a
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "firefox"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Mozilla Firefox"
}

// Available returns true if Firefox bookmarks are accessible.
func (a *Adapter) Available() bool {
	if a.path == "" {
		return false
	}
	_, err := os.Stat(a.path)
	return err == nil
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg input.Config) error {
	a.config = cfg
	a.path, a.profile = a.findDatabase()
	return nil
}

// Path returns the places.sqlite path, or "" when no profile was found.
func (a *Adapter) Path() string {
	return a.path
}

// Profile returns the selected profile directory name.
func (a *Adapter) Profile() string {
	return a.profile
}

// ListProfiles returns available Firefox profiles.
func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
	profilesDir := a.profilesDir()
	if profilesDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, nil
	}

	var profiles []input.ProfileInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		placesPath := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
		if _, err := os.Stat(placesPath); err == nil {
			profiles = append(profiles, input.ProfileInfo{
				Name:      entry.Name(),
				Path:      placesPath,
				IsDefault: entry.Name() == a.profile,
			})
		}
	}

	return profiles, nil
}

// Read returns every Firefox bookmark as a flat forest.
func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
	if a.path == "" {
		return nil, bookmark.NotFound("Firefox profile under", a.profilesDir())
	}

	s, err := places.Open(a.path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	roots, err := s.Bookmarks(ctx)
	if err != nil {
		return nil, err
	}
	return &bookmark.Document{TopLevelName: bookmark.DefaultTopLevelName, Roots: roots}, nil
}

func (a *Adapter) profilesDir() string {
	relPath, ok := firefoxPaths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}

	return filepath.Join(base, relPath)
}

// findDatabase resolves the custom path, the requested profile, or the
// first profile directory that holds a places.sqlite.
func (a *Adapter) findDatabase() (string, string) {
	if a.config.CustomPath != "" {
		profile := filepath.Base(filepath.Dir(a.config.CustomPath))
		return a.config.CustomPath, profile
	}

	profilesDir := a.profilesDir()
	if profilesDir == "" {
		return "", ""
	}

	if a.config.Profile != "" {
		return filepath.Join(profilesDir, a.config.Profile, "places.sqlite"), a.config.Profile
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return "", ""
	}

	for _, entry := range entries {
		if entry.IsDir() {
			placesPath := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
			if _, err := os.Stat(placesPath); err == nil {
				return placesPath, entry.Name()
			}
		}
	}

	return "", ""
}
