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

// Package netscape provides an input adapter for Netscape bookmark HTML,
// the export format shared by every major browser.
//
// The file is parsed with an HTML5 parser, which nests each folder's <DL>
// inside the <DT> that holds its <H3> header. Folder structure is kept.
package netscape

import (
	"bytes"
	"context"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

func init() {
	adapter.RegisterInput(New())
}

// Adapter implements input.Adapter for Netscape bookmark files.
type Adapter struct {
	input.FileSource
}

// New creates a new Netscape HTML adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "html" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "Netscape HTML" }

// Read decodes the configured file.
func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
	return a.ReadWith(a.Name(), Decode)
}

// Decode parses Netscape bookmark HTML.
func (a *Adapter) Decode(data []byte) (*bookmark.Document, error) {
	return Decode(data)
}

// Decode parses a Netscape bookmark file. The first <DL> list is the
// forest.
func Decode(data []byte) (*bookmark.Document, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, bookmark.NewFormatError("html", "parsing HTML", err)
	}

	list := findFirst(doc, atom.Dl)
	if list == nil {
		return nil, bookmark.NewFormatError("html", "no <DL> bookmark list", nil)
	}

	return &bookmark.Document{
		TopLevelName: bookmark.DefaultTopLevelName,
		Roots:        parseList(list),
	}, nil
}

// parseList returns the items of a <DL>, skipping the stray <p> elements
// the format puts after each list tag.
func parseList(dl *html.Node) bookmark.Forest {
	out := bookmark.Forest{}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Dt:
				if item := parseItem(c); item != nil {
					out = append(out, item)
				}
			case atom.Dl:
				// A list without a header is flattened into its parent.
				visit(c)
			default:
				visit(c)
			}
		}
	}
	visit(dl)

	return out
}

// parseItem turns a <DT> into a folder (<H3> followed by <DL>) or a
// bookmark (<A HREF>).
func parseItem(dt *html.Node) *bookmark.Node {
	var header, link, list *html.Node
	for c := dt.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.H3:
			if header == nil {
				header = c
			}
		case atom.A:
			if link == nil {
				link = c
			}
		case atom.Dl:
			if list == nil {
				list = c
			}
		}
	}

	switch {
	case header != nil:
		f := bookmark.NewFolder(textContent(header))
		if list != nil {
			if children := parseList(list); len(children) > 0 {
				f.Children = children
			}
		}
		return f

	case link != nil:
		href := attr(link, "href")
		if href == "" {
			zlog.Debug().Str("title", textContent(link)).Msg("skipping link without href")
			return nil
		}
		return bookmark.NewBookmark(textContent(link), href)
	}
	return nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
