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

// Package chromium provides an input adapter for Chromium-based browsers.
//
// Only the bookmarks bar is imported: its children become the forest. The
// bar's own name is a localized browser label, so documents always get
// bookmark.DefaultTopLevelName. The "other" and "synced" roots are ignored.
package chromium

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

// chromiumPaths maps browser names to their config directories per platform.
var chromiumPaths = map[string]map[string]string{
	"chrome": {
		"linux":   ".config/google-chrome",
		"darwin":  "Library/Application Support/Google/Chrome",
		"windows": "Google/Chrome/User Data",
	},
	"edge": {
		"linux":   ".config/microsoft-edge",
		"darwin":  "Library/Application Support/Microsoft Edge",
		"windows": "Microsoft/Edge/User Data",
	},
	"chromium": {
		"linux":   ".config/chromium",
		"darwin":  "Library/Application Support/Chromium",
		"windows": "Chromium/User Data",
	},
	"brave": {
		"linux":   ".config/BraveSoftware/Brave-Browser",
		"darwin":  "Library/Application Support/BraveSoftware/Brave-Browser",
		"windows": "BraveSoftware/Brave-Browser/User Data",
	},
}

var displayNames = map[string]string{
	"chrome":   "Google Chrome",
	"edge":     "Microsoft Edge",
	"chromium": "Chromium",
	"brave":    "Brave",
}

func init() {
	adapter.RegisterInput(New("chrome"))
	adapter.RegisterInput(New("edge"))
	adapter.RegisterInput(New("chromium"))
	adapter.RegisterInput(New("brave"))
}

// Adapter implements input.Adapter for Chromium-based browsers.
type Adapter struct {
	browser  string
	config   input.Config
	profiles []profileInfo
}

type profileInfo struct {
	name string
	path string
}

// New creates a new Chromium adapter for the specified browser.
func New(browser string) *Adapter {
	a := &Adapter{browser: browser}
	a.profiles = a.discoverProfiles()
	return a
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return a.browser
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	if name, ok := displayNames[a.browser]; ok {
		return name
	}
	return cases.Title(language.English).String(a.browser)
}

// Available returns true if bookmarks are accessible.
func (a *Adapter) Available() bool {
	if a.config.CustomPath != "" {
		_, err := os.Stat(a.config.CustomPath)
		return err == nil
	}
	return len(a.profiles) > 0
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg input.Config) error {
	a.config = cfg
	if cfg.CustomPath == "" {
		a.profiles = a.discoverProfiles()
	}
	return nil
}

// Path returns the Bookmarks file that Read would use.
func (a *Adapter) Path() string {
	if a.config.CustomPath != "" {
		return a.config.CustomPath
	}
	if p, ok := a.selectProfile(); ok {
		return p.path
	}
	return a.basePath() + " (no profiles found)"
}

// ListProfiles returns available profiles.
func (a *Adapter) ListProfiles() ([]input.ProfileInfo, error) {
	var result []input.ProfileInfo
	for i, p := range a.profiles {
		result = append(result, input.ProfileInfo{
			Name:      p.name,
			Path:      p.path,
			IsDefault: p.name == "Default" || (i == 0 && !a.hasDefault()),
		})
	}
	return result, nil
}

// Read decodes the configured profile's Bookmarks file.
func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
	if a.config.CustomPath != "" {
		return input.ReadFile(a.config.CustomPath, a.browser+" bookmarks", a.Decode)
	}

	p, ok := a.selectProfile()
	if !ok {
		if a.config.Profile != "" {
			return nil, bookmark.NotFound(a.DisplayName()+" profile", a.config.Profile)
		}
		return nil, bookmark.NotFound(a.DisplayName()+" bookmarks under", a.basePath())
	}
	return input.ReadFile(p.path, a.browser+" bookmarks", a.Decode)
}

// Decode parses a Chromium Bookmarks file.
func (a *Adapter) Decode(data []byte) (*bookmark.Document, error) {
	return decode(a.browser, data)
}

// Decode parses a Chromium Bookmarks file. The bookmarks bar children
// become the forest; a node is a folder exactly when its type is "folder".
func Decode(data []byte) (*bookmark.Document, error) {
	return decode("chrome", data)
}

// selectProfile picks the requested profile, else "Default", else the
// first discovered profile.
func (a *Adapter) selectProfile() (profileInfo, bool) {
	want := a.config.Profile
	if want == "" {
		want = "Default"
	}
	for _, p := range a.profiles {
		if p.name == want {
			return p, true
		}
	}
	if a.config.Profile == "" && len(a.profiles) > 0 {
		return a.profiles[0], true
	}
	return profileInfo{}, false
}

func (a *Adapter) hasDefault() bool {
	for _, p := range a.profiles {
		if p.name == "Default" {
			return true
		}
	}
	return false
}

func (a *Adapter) basePath() string {
	paths, ok := chromiumPaths[a.browser]
	if !ok {
		return ""
	}

	relPath, ok := paths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("LOCALAPPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}

	return filepath.Join(base, relPath)
}

func (a *Adapter) discoverProfiles() []profileInfo {
	if a.config.CustomPath != "" {
		return nil
	}

	basePath := a.basePath()
	if basePath == "" {
		return nil
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil
	}

	var profiles []profileInfo

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()

		if name == "Default" || strings.HasPrefix(name, "Profile ") {
			bookmarkPath := filepath.Join(basePath, name, "Bookmarks")
			if _, err := os.Stat(bookmarkPath); err == nil {
				profiles = append(profiles, profileInfo{
					name: name,
					path: bookmarkPath,
				})
			}
		}
	}

	return profiles
}

type chromiumFile struct {
	Roots struct {
		BookmarkBar *chromiumNode `json:"bookmark_bar"`
	} `json:"roots"`
}

type chromiumNode struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Children []chromiumNode `json:"children"`
}

func decode(format string, data []byte) (*bookmark.Document, error) {
	var file chromiumFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, bookmark.NewFormatError(format, "parsing bookmarks JSON", err)
	}

	bar := file.Roots.BookmarkBar
	if bar == nil || bar.Children == nil {
		return nil, bookmark.NewFormatError(format, "missing roots.bookmark_bar.children", nil)
	}

	roots, err := convertNodes(format, bar.Children)
	if err != nil {
		return nil, err
	}

	return &bookmark.Document{TopLevelName: bookmark.DefaultTopLevelName, Roots: roots}, nil
}

func convertNodes(format string, nodes []chromiumNode) (bookmark.Forest, error) {
	out := make(bookmark.Forest, 0, len(nodes))
	for _, node := range nodes {
		switch node.Type {
		case "folder":
			children, err := convertNodes(format, node.Children)
			if err != nil {
				return nil, err
			}
			f := bookmark.NewFolder(node.Name)
			if len(children) > 0 {
				f.Children = children
			}
			out = append(out, f)
		case "url":
			if node.URL == "" {
				return nil, bookmark.NewFormatError(format, "bookmark \""+node.Name+"\" has no url", nil)
			}
			out = append(out, bookmark.NewBookmark(node.Name, node.URL))
		default:
			return nil, bookmark.NewFormatError(format, "unknown node type \""+node.Type+"\"", nil)
		}
	}
	return out, nil
}
