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

// Package firefox provides output adapters for the files Firefox can
// restore and import: its bookmark backup JSON and Netscape HTML.
package firefox

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

// Mozilla place types.
const (
	TypeContainer = "text/x-moz-place-container"
	TypePlace     = "text/x-moz-place"
)

func init() {
	adapter.RegisterOutput(&JSONAdapter{})
	adapter.RegisterOutput(&HTMLAdapter{})
}

// JSONAdapter exports bookmarks as Firefox backup JSON.
type JSONAdapter struct{}

// Name returns the adapter identifier.
func (a *JSONAdapter) Name() string { return "firefox-json" }

// DisplayName returns a human-friendly name.
func (a *JSONAdapter) DisplayName() string { return "Firefox bookmarks JSON" }

// Extensions returns file extensions for this format.
func (a *JSONAdapter) Extensions() []string { return []string{".json"} }

// Configure sets up the adapter.
func (a *JSONAdapter) Configure(cfg output.Config) error { return nil }

// Render exports the forest as the children of a "bookmarks" root object.
func (a *JSONAdapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	return EncodeJSON(doc.Roots)
}

type place struct {
	Title    string  `json:"title"`
	Type     string  `json:"type,omitempty"`
	URI      string  `json:"uri,omitempty"`
	Children []place `json:"children,omitempty"`
}

// EncodeJSON renders forest as Firefox bookmark JSON. Folders with no
// children carry no "children" key.
func EncodeJSON(forest bookmark.Forest) ([]byte, error) {
	root := struct {
		Title    string  `json:"title"`
		Children []place `json:"children"`
	}{
		Title:    "bookmarks",
		Children: toPlaces(forest),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("%w: marshaling Firefox JSON: %v", bookmark.ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

func toPlaces(nodes []*bookmark.Node) []place {
	out := make([]place, 0, len(nodes))
	for _, n := range nodes {
		p := place{Title: n.Name, Type: TypePlace, URI: n.URL}
		if n.IsFolder() {
			p.Type = TypeContainer
			if len(n.Children) > 0 {
				p.Children = toPlaces(n.Children)
			}
		}
		out = append(out, p)
	}
	return out
}

// HTMLAdapter exports bookmarks to Netscape HTML format.
type HTMLAdapter struct{}

// Name returns the adapter identifier.
func (a *HTMLAdapter) Name() string { return "html" }

// DisplayName returns a human-friendly name.
func (a *HTMLAdapter) DisplayName() string { return "Netscape HTML" }

// Extensions returns file extensions for this format.
func (a *HTMLAdapter) Extensions() []string { return []string{".html", ".htm"} }

// Configure sets up the adapter.
func (a *HTMLAdapter) Configure(cfg output.Config) error { return nil }

// Render exports bookmarks to Netscape HTML bookmark format.
func (a *HTMLAdapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	return EncodeHTML(doc.Roots), nil
}

const htmlPreamble = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
`

// EncodeHTML renders forest as a Netscape bookmark file, indenting four
// spaces per level.
func EncodeHTML(forest bookmark.Forest) []byte {
	var sb strings.Builder
	sb.WriteString(htmlPreamble)
	for _, n := range forest {
		renderHTMLNode(&sb, n, 1)
	}
	sb.WriteString("</DL><p>\n")
	return []byte(sb.String())
}

func renderHTMLNode(sb *strings.Builder, n *bookmark.Node, depth int) {
	indent := strings.Repeat("    ", depth)

	if !n.IsFolder() {
		fmt.Fprintf(sb, "%s<DT><A HREF=\"%s\">%s</A>\n",
			indent, html.EscapeString(n.URL), html.EscapeString(n.Name))
		return
	}

	fmt.Fprintf(sb, "%s<DT><H3>%s</H3>\n", indent, html.EscapeString(n.Name))
	fmt.Fprintf(sb, "%s<DL><p>\n", indent)
	for _, c := range n.Children {
		renderHTMLNode(sb, c, depth+1)
	}
	fmt.Fprintf(sb, "%s</DL><p>\n", indent)
}
