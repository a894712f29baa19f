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

// Package markdown provides an output adapter for markdown format.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

// Style defines the markdown sub-format.
type Style string

const (
	StyleTextual Style = "textual" // Nested markdown lists
	StyleTable   Style = "table"   // Markdown tables
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for markdown format.
type Adapter struct {
	config output.Config
	style  Style
	now    func() time.Time
}

// New creates a new markdown adapter.
func New() *Adapter {
	return &Adapter{style: StyleTextual, now: time.Now}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "markdown"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Markdown"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg output.Config) error {
	a.config = cfg
	if style, ok := cfg.Options["style"].(string); ok {
		a.style = Style(style)
	}
	return nil
}

// Render converts the document to markdown.
func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	style := a.style
	if opts.Style != "" {
		style = Style(opts.Style)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", doc.Name())

	if opts.IncludeMetadata {
		fmt.Fprintf(&sb, "*Generated: %s*\n", a.now().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&sb, "*Total bookmarks: %d*\n\n", doc.Roots.Count())
	}

	switch style {
	case StyleTable:
		renderTable(&sb, doc.Roots)
	case StyleTextual, "":
		renderList(&sb, doc.Roots, 0)
	default:
		return nil, fmt.Errorf("unknown markdown style %q (want %s or %s)", style, StyleTextual, StyleTable)
	}

	return []byte(sb.String()), nil
}

// renderList writes folders as bold items with their contents nested
// below, in bar order.
func renderList(sb *strings.Builder, nodes []*bookmark.Node, indent int) {
	prefix := strings.Repeat("  ", indent) + "- "
	for _, n := range nodes {
		if n.IsFolder() {
			fmt.Fprintf(sb, "%s**%s**\n", prefix, n.Name)
			renderList(sb, n.Children, indent+1)
			continue
		}
		fmt.Fprintf(sb, "%s[%s](%s)\n", prefix, escapeLinkText(n.Name), n.URL)
	}
}

func renderTable(sb *strings.Builder, forest bookmark.Forest) {
	sb.WriteString("| Title | Folder |\n")
	sb.WriteString("|---|---|\n")

	var path []string
	forest.Walk(func(n, parent *bookmark.Node, depth int) bool {
		path = path[:depth]
		if n.IsFolder() {
			path = append(path, n.Name)
			return true
		}
		link := fmt.Sprintf("[%s](%s)", escapeTableCell(escapeLinkText(n.Name)), n.URL)
		fmt.Fprintf(sb, "| %s | %s |\n", link, escapeTableCell(strings.Join(path, "/")))
		return true
	})
}

func escapeLinkText(s string) string {
	s = strings.ReplaceAll(s, "[", "\\[")
	return strings.ReplaceAll(s, "]", "\\]")
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
