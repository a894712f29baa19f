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

// Package native provides the output adapter for the native JSON format.
//
// The document is a JSON array. Its first element carries the top-level
// name; the rest are the forest roots:
//
//	[
//	  {"toplevel_name": "Company"},
//	  {"name": "Docs", "isFolder": true, "isRootFolder": false, "children": [...]},
//	  {"name": "Home", "url": "https://example.com", "isFolder": false, "isRootFolder": false}
//	]
//
// The same layout is accepted by Chrome and Edge as the ManagedBookmarks
// policy value, and is the workspace file format.
package native

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for native JSON.
type Adapter struct {
	config output.Config
}

// New creates a new native JSON adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "native"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Native JSON"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".json"}
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg output.Config) error {
	a.config = cfg
	return nil
}

// Render converts the document to native JSON.
func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	return Encode(doc)
}

// Header is the leading array element.
type Header struct {
	TopLevelName string `json:"toplevel_name"`
}

// Entry is a single folder or bookmark.
type Entry struct {
	Name         string  `json:"name"`
	URL          string  `json:"url,omitempty"`
	IsFolder     bool    `json:"isFolder"`
	IsRootFolder bool    `json:"isRootFolder"`
	Children     []Entry `json:"children,omitempty"`
}

// Encode renders doc as an indented native JSON array.
func Encode(doc *bookmark.Document) ([]byte, error) {
	items := make([]interface{}, 0, len(doc.Roots)+1)
	items = append(items, Header{TopLevelName: doc.Name()})
	for _, n := range doc.Roots {
		items = append(items, toEntry(n))
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("%w: marshaling native JSON: %v", bookmark.ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

func toEntry(n *bookmark.Node) Entry {
	e := Entry{
		Name:         n.Name,
		URL:          n.URL,
		IsFolder:     n.IsFolder(),
		IsRootFolder: n.Root,
	}
	for _, c := range n.Children {
		e.Children = append(e.Children, toEntry(c))
	}
	return e
}
