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

// Package plist provides input adapters for property-list bookmark files:
// managed favorites policies and the Safari bookmarks database.
package plist

import (
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"
	"howett.net/plist"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

// Policy array keys, in lookup order.
const (
	KeyManagedFavorites = "ManagedFavorites"
	KeyManagedBookmarks = "ManagedBookmarks"
)

// Top-level name keys. Only TopLevelNameKey is ever written.
const (
	TopLevelNameKey       = "toplevel_name"
	LegacyTopLevelNameKey = "top_level_name"
)

func init() {
	adapter.RegisterInput(New())
}

// Adapter implements input.Adapter for managed favorites plists.
type Adapter struct {
	input.FileSource
}

// New creates a new managed favorites adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "plist" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "Managed favorites plist" }

// Read decodes the configured plist file.
func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
	return a.ReadWith(a.Name(), Decode)
}

// Decode parses a managed favorites plist.
func (a *Adapter) Decode(data []byte) (*bookmark.Document, error) {
	return Decode(data)
}

// Decode parses a managed favorites plist in any encoding the plist
// package understands. The root dictionary must hold a ManagedFavorites or
// ManagedBookmarks array. A leading dictionary carrying the top-level name
// sets the document name and is not part of the forest.
func Decode(data []byte) (*bookmark.Document, error) {
	var root interface{}
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, bookmark.NewFormatError("plist", "parsing property list", err)
	}

	dict, ok := root.(map[string]interface{})
	if !ok {
		return nil, bookmark.NewFormatError("plist", "root element is not a dictionary", nil)
	}

	var (
		items []interface{}
		found bool
	)
	for _, key := range []string{KeyManagedFavorites, KeyManagedBookmarks} {
		var v interface{}
		if v, found = dict[key]; found {
			arr, ok := v.([]interface{})
			if !ok && v != nil {
				return nil, bookmark.NewFormatError("plist", key+" is not an array", nil)
			}
			items = arr
			break
		}
	}
	if !found {
		return nil, bookmark.NewFormatError("plist", "no ManagedFavorites or ManagedBookmarks array", nil)
	}

	doc := &bookmark.Document{TopLevelName: bookmark.DefaultTopLevelName}
	if len(items) > 0 {
		if name, ok := topLevelName(items[0]); ok {
			doc.TopLevelName = name
			items = items[1:]
		}
	}

	roots, err := decodeNodes(items)
	if err != nil {
		return nil, err
	}
	doc.Roots = roots
	return doc, nil
}

// topLevelName reports the name carried by a top-level-name dictionary.
func topLevelName(item interface{}) (string, bool) {
	dict, ok := item.(map[string]interface{})
	if !ok {
		return "", false
	}
	if name, ok := dict[TopLevelNameKey].(string); ok {
		return name, true
	}
	if name, ok := dict[LegacyTopLevelNameKey].(string); ok {
		zlog.Warn().Str("key", LegacyTopLevelNameKey).Msg("plist uses legacy key; rewrite it with " + TopLevelNameKey)
		return name, true
	}
	return "", false
}

func decodeNodes(items []interface{}) (bookmark.Forest, error) {
	out := make(bookmark.Forest, 0, len(items))
	for _, item := range items {
		n, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func decodeNode(item interface{}) (*bookmark.Node, error) {
	dict, ok := item.(map[string]interface{})
	if !ok {
		return nil, bookmark.NewFormatError("plist", fmt.Sprintf("array element is %T, not a dictionary", item), nil)
	}

	name, _ := dict["name"].(string)
	rawURL, hasURL := dict["url"]
	rawChildren, hasChildren := dict["children"]

	switch {
	case hasURL && hasChildren:
		return nil, bookmark.NewFormatError("plist", fmt.Sprintf("%q has both url and children", name), nil)

	case hasURL:
		url, ok := rawURL.(string)
		if !ok || url == "" {
			return nil, bookmark.NewFormatError("plist", fmt.Sprintf("%q has an empty or non-string url", name), nil)
		}
		return bookmark.NewBookmark(name, url), nil

	case hasChildren:
		arr, ok := rawChildren.([]interface{})
		if !ok && rawChildren != nil {
			return nil, bookmark.NewFormatError("plist", fmt.Sprintf("children of %q is not an array", name), nil)
		}
		children, err := decodeNodes(arr)
		if err != nil {
			return nil, err
		}
		f := bookmark.NewFolder(name)
		if len(children) > 0 {
			f.Children = children
		}
		return f, nil

	default:
		return bookmark.NewFolder(name), nil
	}
}
