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

// Package native provides the input adapter for the native JSON format.
//
// Chrome and Edge ManagedBookmarks policy JSON, which has no isFolder
// fields, is read by the same decoder.
package native

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

// TopLevelNameKey marks the leading header element.
const TopLevelNameKey = "toplevel_name"

func init() {
	adapter.RegisterInput(New())
}

// Adapter implements input.Adapter for native JSON files.
type Adapter struct {
	input.FileSource
}

// New creates a new native JSON adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return "native" }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return "Native JSON" }

// Read decodes the configured file.
func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
	return a.ReadWith(a.Name(), Decode)
}

// Decode parses native JSON.
func (a *Adapter) Decode(data []byte) (*bookmark.Document, error) {
	return Decode(data)
}

type entry struct {
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	IsFolder     *bool   `json:"isFolder"`
	IsRootFolder bool    `json:"isRootFolder"`
	Children     []entry `json:"children"`
}

// Decode parses a native JSON array. A first element holding
// toplevel_name names the document and is dropped; without it the name is
// bookmark.DefaultTopLevelName and the first element is an ordinary node.
func Decode(data []byte) (*bookmark.Document, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, bookmark.NewFormatError("native", "parsing JSON array", err)
	}

	doc := &bookmark.Document{TopLevelName: bookmark.DefaultTopLevelName}
	if len(items) > 0 {
		var header map[string]json.RawMessage
		if err := json.Unmarshal(items[0], &header); err == nil {
			if raw, ok := header[TopLevelNameKey]; ok {
				var name string
				if err := json.Unmarshal(raw, &name); err != nil {
					return nil, bookmark.NewFormatError("native", TopLevelNameKey+" is not a string", err)
				}
				doc.TopLevelName = name
				items = items[1:]
			}
		}
	}

	roots := make(bookmark.Forest, 0, len(items))
	for i, raw := range items {
		var e entry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, bookmark.NewFormatError("native", fmt.Sprintf("element %d", i), err)
		}
		n, err := convert(e, true)
		if err != nil {
			return nil, err
		}
		roots = append(roots, n)
	}
	doc.Roots = roots
	return doc, nil
}

// convert applies the folder rule: isFolder wins when present, otherwise
// a node is a folder when it has children or no url.
func convert(e entry, top bool) (*bookmark.Node, error) {
	if e.IsRootFolder && !top {
		return nil, bookmark.NewFormatError("native", fmt.Sprintf("nested node %q is marked isRootFolder", e.Name), nil)
	}

	folder := len(e.Children) > 0 || e.URL == ""
	if e.IsFolder != nil {
		folder = *e.IsFolder
	}

	switch {
	case folder && e.URL != "":
		return nil, bookmark.NewFormatError("native", fmt.Sprintf("folder %q has a url", e.Name), nil)
	case !folder && e.URL == "":
		return nil, bookmark.NewFormatError("native", fmt.Sprintf("bookmark %q has no url", e.Name), nil)
	case !folder && len(e.Children) > 0:
		return nil, bookmark.NewFormatError("native", fmt.Sprintf("bookmark %q has children", e.Name), nil)
	}

	if !folder {
		n := bookmark.NewBookmark(e.Name, e.URL)
		n.Root = e.IsRootFolder
		return n, nil
	}

	n := bookmark.NewFolder(e.Name)
	n.Root = e.IsRootFolder
	for _, c := range e.Children {
		child, err := convert(c, false)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
