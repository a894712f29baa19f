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

// Package opml provides an input adapter for OPML outline files.
package opml

import (
	"context"
	"encoding/xml"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

func init() {
	adapter.RegisterInput(&Adapter{})
}

// Adapter reads bookmarks from OPML files.
type Adapter struct {
	input.FileSource
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "opml" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "OPML" }

// Read imports bookmarks from the configured file.
func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
	return a.ReadWith(a.Name(), Decode)
}

// Decode parses OPML.
func (a *Adapter) Decode(data []byte) (*bookmark.Document, error) {
	return Decode(data)
}

// OPML structures
type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Head    struct {
		Title string `xml:"title"`
	} `xml:"head"`
	Body opmlBody `xml:"body"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	Type     string        `xml:"type,attr"`
	URL      string        `xml:"url,attr"`
	HTMLURL  string        `xml:"htmlUrl,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	Children []opmlOutline `xml:"outline"`
}

// Decode parses an OPML document. Outlines with children or without any
// URL attribute are folders; the head title names the document.
func Decode(data []byte) (*bookmark.Document, error) {
	var doc opmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, bookmark.NewFormatError("opml", "parsing OPML", err)
	}

	roots, err := convert(doc.Body.Outlines)
	if err != nil {
		return nil, err
	}

	name := doc.Head.Title
	if name == "" {
		name = bookmark.DefaultTopLevelName
	}
	return &bookmark.Document{TopLevelName: name, Roots: roots}, nil
}

func convert(outlines []opmlOutline) (bookmark.Forest, error) {
	out := make(bookmark.Forest, 0, len(outlines))
	for _, o := range outlines {
		title := o.Text
		if title == "" {
			title = o.Title
		}

		// Prefer htmlUrl, fall back to url and then xmlUrl for feeds
		url := o.HTMLURL
		if url == "" {
			url = o.URL
		}
		if url == "" {
			url = o.XMLURL
		}

		if len(o.Children) > 0 && url != "" {
			return nil, bookmark.NewFormatError("opml", "outline \""+title+"\" has both a URL and children", nil)
		}

		if url != "" {
			out = append(out, bookmark.NewBookmark(title, url))
			continue
		}

		children, err := convert(o.Children)
		if err != nil {
			return nil, err
		}
		f := bookmark.NewFolder(title)
		if len(children) > 0 {
			f.Children = children
		}
		out = append(out, f)
	}
	return out, nil
}
