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

// Package yaml provides an output adapter for YAML format.
package yaml

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for YAML format.
type Adapter struct {
	config output.Config
}

// New creates a new YAML adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "yaml"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "YAML"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg output.Config) error {
	a.config = cfg
	return nil
}

// Render converts the document to YAML.
func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	d := Document{
		Name:      doc.Name(),
		Bookmarks: toEntries(doc.Roots),
	}

	if opts.IncludeMetadata {
		d.Metadata = &Metadata{
			Generated: time.Now().Format(time.RFC3339),
			Total:     doc.Roots.Count(),
		}
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling YAML: %v", bookmark.ErrEncoding, err)
	}
	return data, nil
}

func toEntries(nodes []*bookmark.Node) []Entry {
	entries := make([]Entry, 0, len(nodes))
	for _, n := range nodes {
		e := Entry{Name: n.Name, URL: n.URL, Root: n.Root}
		if n.IsFolder() {
			e.Children = toEntries(n.Children)
		}
		entries = append(entries, e)
	}
	return entries
}

// Document is the top-level YAML structure.
type Document struct {
	Metadata  *Metadata `yaml:"metadata,omitempty"`
	Name      string    `yaml:"name"`
	Bookmarks []Entry   `yaml:"bookmarks"`
}

// Metadata contains generation information.
type Metadata struct {
	Generated string `yaml:"generated"`
	Total     int    `yaml:"total"`
}

// Entry is a folder (with children) or a bookmark (with url).
type Entry struct {
	Name     string  `yaml:"name"`
	URL      string  `yaml:"url,omitempty"`
	Root     bool    `yaml:"root,omitempty"`
	Children []Entry `yaml:"children,omitempty"`
}
