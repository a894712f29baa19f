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

// Package opml provides an output adapter for OPML.
package opml

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

func init() {
	adapter.RegisterOutput(&Adapter{})
}

// Adapter exports bookmarks to OPML format.
type Adapter struct{}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "opml" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "OPML" }

// Extensions returns file extensions for this format.
func (a *Adapter) Extensions() []string { return []string{".opml", ".xml"} }

// Configure sets up the adapter.
func (a *Adapter) Configure(cfg output.Config) error { return nil }

// Render exports the forest as nested outlines. The top-level name is the
// document title.
func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	d := opmlDocument{
		Version: "2.0",
		Head: opmlHead{
			Title: doc.Name(),
		},
		Body: opmlBody{Outlines: toOutlines(doc.Roots)},
	}
	if opts.IncludeMetadata {
		d.Head.DateCreated = time.Now().Format(time.RFC1123)
	}

	data, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling OPML: %v", bookmark.ErrEncoding, err)
	}

	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// OPML structures for output
type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title       string `xml:"title"`
	DateCreated string `xml:"dateCreated,omitempty"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Type     string        `xml:"type,attr,omitempty"`
	HTMLURL  string        `xml:"htmlUrl,attr,omitempty"`
	Children []opmlOutline `xml:"outline,omitempty"`
}

func toOutlines(nodes []*bookmark.Node) []opmlOutline {
	var outlines []opmlOutline
	for _, n := range nodes {
		if n.IsFolder() {
			outlines = append(outlines, opmlOutline{
				Text:     n.Name,
				Children: toOutlines(n.Children),
			})
			continue
		}
		outlines = append(outlines, opmlOutline{
			Text:    n.Name,
			Type:    "link",
			HTMLURL: n.URL,
		})
	}
	return outlines
}
