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

package plist

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"

	"howett.net/plist"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

// Safari keeps the favourites bar in a list with this title.
const safariBarTitle = "BookmarksBar"

func init() {
	adapter.RegisterInput(NewSafari())
}

// SafariAdapter implements input.Adapter for Safari (macOS only). The
// favourites bar becomes the forest.
type SafariAdapter struct {
	config input.Config
	path   string
}

// NewSafari creates a new Safari adapter.
func NewSafari() *SafariAdapter {
	a := &SafariAdapter{}
	a.path = a.bookmarkPath()
	return a
}

// Name returns the adapter identifier.
func (a *SafariAdapter) Name() string {
	return "safari"
}

// DisplayName returns a human-friendly name.
func (a *SafariAdapter) DisplayName() string {
	return "Apple Safari"
}

// Available returns true if Safari bookmarks are accessible.
func (a *SafariAdapter) Available() bool {
	if a.path == "" {
		return false
	}
	_, err := os.Stat(a.path)
	return err == nil
}

// Configure applies configuration to the adapter.
func (a *SafariAdapter) Configure(cfg input.Config) error {
	a.config = cfg
	a.path = a.bookmarkPath()
	return nil
}

// Path returns the bookmarks plist path.
func (a *SafariAdapter) Path() string {
	return a.path
}

// ListProfiles returns available profiles (Safari has only one).
func (a *SafariAdapter) ListProfiles() ([]input.ProfileInfo, error) {
	if !a.Available() {
		return nil, nil
	}
	return []input.ProfileInfo{
		{Name: "default", Path: a.path, IsDefault: true},
	}, nil
}

// Read returns the Safari favourites bar.
func (a *SafariAdapter) Read(ctx context.Context) (*bookmark.Document, error) {
	if a.path == "" {
		return nil, bookmark.NotFound("Safari bookmarks", "(not on macOS)")
	}
	return input.ReadFile(a.path, "safari bookmarks", a.Decode)
}

// Decode parses a Safari Bookmarks.plist, binary or XML.
func (a *SafariAdapter) Decode(data []byte) (*bookmark.Document, error) {
	var root safariBookmark
	if err := plist.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, bookmark.NewFormatError("safari", "parsing property list", err)
	}
	if root.WebBookmarkType != "WebBookmarkTypeList" {
		return nil, bookmark.NewFormatError("safari", "root is not a bookmark list", nil)
	}

	list := root.Children
	for _, child := range root.Children {
		if child.WebBookmarkType == "WebBookmarkTypeList" && child.Title == safariBarTitle {
			list = child.Children
			break
		}
	}

	return &bookmark.Document{
		TopLevelName: bookmark.DefaultTopLevelName,
		Roots:        convertSafari(list),
	}, nil
}

func (a *SafariAdapter) bookmarkPath() string {
	if a.config.CustomPath != "" {
		return a.config.CustomPath
	}

	if runtime.GOOS != "darwin" {
		return ""
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
}

type safariBookmark struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []safariBookmark  `plist:"Children"`
}

// convertSafari keeps leaves and lists in order. Proxies such as the
// History and Reading List entries are skipped.
func convertSafari(nodes []safariBookmark) bookmark.Forest {
	out := bookmark.Forest{}
	for _, node := range nodes {
		switch node.WebBookmarkType {
		case "WebBookmarkTypeLeaf":
			url := node.URLString
			if url == "" && node.URIDictionary != nil {
				url = node.URIDictionary[""]
			}
			if url == "" {
				continue
			}
			title := node.Title
			if title == "" && node.URIDictionary != nil {
				title = node.URIDictionary["title"]
			}
			out = append(out, bookmark.NewBookmark(title, url))

		case "WebBookmarkTypeList":
			f := bookmark.NewFolder(node.Title)
			if children := convertSafari(node.Children); len(children) > 0 {
				f.Children = children
			}
			out = append(out, f)
		}
	}
	return out
}
