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

// Package plist provides output adapters for managed favorites and managed
// bookmarks property lists, as deployed by MDM profiles.
//
// The XML is written by hand rather than through a plist encoder so that
// URLs containing markup characters can be wrapped in CDATA sections, which
// some policy tooling requires.
package plist

import (
	"encoding/xml"
	"strings"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

const (
	KeyManagedFavorites = "ManagedFavorites"
	KeyManagedBookmarks = "ManagedBookmarks"

	// TopLevelNameKey is the only spelling written; readers also accept
	// top_level_name.
	TopLevelNameKey = "toplevel_name"
)

const plistHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
`

func init() {
	adapter.RegisterOutput(New("plist", "Managed favorites plist", KeyManagedFavorites))
	adapter.RegisterOutput(New("plist-chrome", "Managed bookmarks plist (Chrome)", KeyManagedBookmarks))
}

// Options controls the policy document layout.
type Options struct {
	// Key names the policy array: ManagedFavorites or ManagedBookmarks.
	Key string

	// FavoritesBarEnabled is written as the FavoritesBarEnabled flag.
	FavoritesBarEnabled bool
}

// DefaultOptions returns the Edge managed favorites layout.
func DefaultOptions() Options {
	return Options{Key: KeyManagedFavorites, FavoritesBarEnabled: true}
}

// Adapter implements output.Adapter for one policy key.
type Adapter struct {
	name        string
	displayName string
	opts        Options
}

// New creates an adapter writing the given policy key.
func New(name, displayName, key string) *Adapter {
	opts := DefaultOptions()
	opts.Key = key
	return &Adapter{name: name, displayName: displayName, opts: opts}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return a.name }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return a.displayName }

// Extensions returns file extensions for this format.
func (a *Adapter) Extensions() []string { return []string{".plist", ".mobileconfig.plist"} }

// Configure accepts the "key" and "favorites_bar_enabled" options.
func (a *Adapter) Configure(cfg output.Config) error {
	if key, ok := cfg.Options["key"].(string); ok && key != "" {
		a.opts.Key = key
	}
	if enabled, ok := cfg.Options["favorites_bar_enabled"].(bool); ok {
		a.opts.FavoritesBarEnabled = enabled
	}
	return nil
}

// Render encodes the document as a policy plist.
func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	return Encode(doc, a.opts), nil
}

// Encode writes doc as an XML plist. The policy array starts with a
// dictionary holding the top-level name, followed by the forest.
func Encode(doc *bookmark.Document, opts Options) []byte {
	if opts.Key == "" {
		opts.Key = KeyManagedFavorites
	}

	var sb strings.Builder
	sb.WriteString(plistHeader)

	sb.WriteString("\t<key>FavoritesBarEnabled</key>\n")
	if opts.FavoritesBarEnabled {
		sb.WriteString("\t<true/>\n")
	} else {
		sb.WriteString("\t<false/>\n")
	}

	writeKey(&sb, 1, opts.Key)
	sb.WriteString("\t<array>\n")

	sb.WriteString("\t\t<dict>\n")
	writeKey(&sb, 3, TopLevelNameKey)
	writeString(&sb, 3, doc.Name())
	sb.WriteString("\t\t</dict>\n")

	for _, n := range doc.Roots {
		writeNode(&sb, n, 2)
	}

	sb.WriteString("\t</array>\n</dict>\n</plist>\n")
	return []byte(sb.String())
}

func writeNode(sb *strings.Builder, n *bookmark.Node, depth int) {
	indent := strings.Repeat("\t", depth)
	sb.WriteString(indent + "<dict>\n")

	writeKey(sb, depth+1, "name")
	writeString(sb, depth+1, n.Name)

	if n.IsFolder() {
		writeKey(sb, depth+1, "children")
		if len(n.Children) == 0 {
			sb.WriteString(indent + "\t<array/>\n")
		} else {
			sb.WriteString(indent + "\t<array>\n")
			for _, c := range n.Children {
				writeNode(sb, c, depth+2)
			}
			sb.WriteString(indent + "\t</array>\n")
		}
	} else {
		writeKey(sb, depth+1, "url")
		sb.WriteString(strings.Repeat("\t", depth+1) + "<string>" + encodeURL(n.URL) + "</string>\n")
	}

	sb.WriteString(indent + "</dict>\n")
}

func writeKey(sb *strings.Builder, depth int, key string) {
	sb.WriteString(strings.Repeat("\t", depth) + "<key>" + escape(key) + "</key>\n")
}

func writeString(sb *strings.Builder, depth int, s string) {
	sb.WriteString(strings.Repeat("\t", depth) + "<string>" + escape(s) + "</string>\n")
}

func escape(s string) string {
	var sb strings.Builder
	// EscapeText only fails when the writer does.
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

// encodeURL wraps URLs containing markup characters in CDATA. A literal
// "]]>" is split across two sections.
func encodeURL(url string) string {
	if !strings.ContainsAny(url, "&<>") {
		return escape(url)
	}
	return "<![CDATA[" + strings.ReplaceAll(url, "]]>", "]]]]><![CDATA[>") + "]]>"
}
