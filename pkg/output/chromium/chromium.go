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

// Package chromium provides output adapters for the Chrome and Edge
// Bookmarks file.
//
// The forest becomes the children of roots.bookmark_bar; empty "other" and
// "synced" roots are added so the file is complete. Every node gets a fresh
// GUID, a sequential id and a timestamp on each render. The checksum is the
// lowercase hex MD5 of the compact document without its checksum field.
package chromium

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

// Difference between Chrome epoch (1601-01-01) and Unix epoch (1970-01-01) in seconds
const chromeToUnixEpochDelta = 11644473600

// Variant holds the per-browser labels of the three bookmark roots.
type Variant struct {
	Name        string
	DisplayName string
	BarName     string
	OtherName   string
	SyncedName  string

	// MetaInfo attaches an empty meta_info.power_bookmark_meta object to
	// every bookmark and folder below the roots.
	MetaInfo bool
}

var (
	Chrome = Variant{
		Name:        "chrome",
		DisplayName: "Google Chrome Bookmarks",
		BarName:     "Bookmarks bar",
		OtherName:   "Other bookmarks",
		SyncedName:  "Mobile bookmarks",
		MetaInfo:    true,
	}
	Edge = Variant{
		Name:        "edge",
		DisplayName: "Microsoft Edge Favourites",
		BarName:     "Favourites bar",
		OtherName:   "Other favourites",
		SyncedName:  "Mobile favourites",
	}
)

func init() {
	adapter.RegisterOutput(New(Chrome))
	adapter.RegisterOutput(New(Edge))
}

// Adapter implements output.Adapter for one Chromium variant.
type Adapter struct {
	variant Variant
	config  output.Config
}

// New creates an adapter for the given variant.
func New(v Variant) *Adapter {
	return &Adapter{variant: v}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string { return a.variant.Name }

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string { return a.variant.DisplayName }

// Extensions returns supported file extensions. Browsers read a file
// named "Bookmarks" without extension.
func (a *Adapter) Extensions() []string { return []string{"", ".json"} }

// Configure applies configuration to the adapter.
func (a *Adapter) Configure(cfg output.Config) error {
	a.config = cfg
	return nil
}

// Render encodes the document as a Bookmarks file.
func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
	return Encode(doc, a.variant)
}

// File is the top-level structure of a Chromium Bookmarks file.
type File struct {
	Checksum string `json:"checksum,omitempty"`
	Roots    Roots  `json:"roots"`
	Version  int    `json:"version"`
}

// Roots holds the three permanent bookmark folders.
type Roots struct {
	BookmarkBar Node `json:"bookmark_bar"`
	Other       Node `json:"other"`
	Synced      Node `json:"synced"`
}

// Node is a folder or url entry. Fields are declared in the order Chrome
// writes them.
type Node struct {
	Children     *[]Node   `json:"children,omitempty"`
	DateAdded    string    `json:"date_added"`
	DateLastUsed string    `json:"date_last_used"`
	DateModified string    `json:"date_modified,omitempty"`
	GUID         string    `json:"guid"`
	ID           string    `json:"id"`
	MetaInfo     *MetaInfo `json:"meta_info,omitempty"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	URL          string    `json:"url,omitempty"`
}

// MetaInfo is written for forward compatibility and never read back.
type MetaInfo struct {
	PowerBookmarkMeta string `json:"power_bookmark_meta"`
}

// encoder stamps ids and timestamps for a single render.
type encoder struct {
	variant Variant
	stamp   string
	nextID  int
	newGUID func() string
}

func (e *encoder) id() string {
	e.nextID++
	return strconv.Itoa(e.nextID)
}

func (e *encoder) folder(name string, children []*bookmark.Node) Node {
	n := Node{
		DateAdded:    e.stamp,
		DateLastUsed: "0",
		DateModified: e.stamp,
		GUID:         e.newGUID(),
		ID:           e.id(),
		Name:         name,
		Type:         "folder",
	}
	kids := make([]Node, 0, len(children))
	for _, c := range children {
		kids = append(kids, e.node(c))
	}
	n.Children = &kids
	return n
}

// node encodes a non-root node. The three roots never carry meta_info.
func (e *encoder) node(b *bookmark.Node) Node {
	var n Node
	if b.IsFolder() {
		n = e.folder(b.Name, b.Children)
	} else {
		n = Node{
			DateAdded:    e.stamp,
			DateLastUsed: "0",
			GUID:         e.newGUID(),
			ID:           e.id(),
			Name:         b.Name,
			Type:         "url",
			URL:          b.URL,
		}
	}
	if e.variant.MetaInfo {
		n.MetaInfo = &MetaInfo{}
	}
	return n
}

// Encode renders doc as an indented Bookmarks file with a fresh checksum.
func Encode(doc *bookmark.Document, v Variant) ([]byte, error) {
	return encode(doc, v, time.Now(), uuid.NewString)
}

func encode(doc *bookmark.Document, v Variant, now time.Time, newGUID func() string) ([]byte, error) {
	e := &encoder{
		variant: v,
		stamp:   strconv.FormatInt(ChromeTime(now), 10),
		newGUID: newGUID,
	}

	// Ids are assigned depth-first, so the bar's descendants come before
	// the other and synced roots.
	bar := e.folder(v.BarName, doc.Roots)
	file := File{
		Roots: Roots{
			BookmarkBar: bar,
			Other:       e.folder(v.OtherName, nil),
			Synced:      e.folder(v.SyncedName, nil),
		},
		Version: 1,
	}

	sum, err := Checksum(file)
	if err != nil {
		return nil, err
	}
	file.Checksum = sum

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "   ")
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("%w: %v", bookmark.ErrEncoding, err)
	}
	return buf.Bytes(), nil
}

// Checksum returns the MD5 of the compact JSON of f with its checksum
// field cleared.
func Checksum(f File) (string, error) {
	f.Checksum = ""
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return "", fmt.Errorf("%w: computing checksum: %v", bookmark.ErrEncoding, err)
	}
	sum := md5.Sum(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return hex.EncodeToString(sum[:]), nil
}

// VerifyChecksum parses a Bookmarks file and reports whether its stored
// checksum matches its content.
func VerifyChecksum(data []byte) (bool, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return false, bookmark.NewFormatError("chrome", "parsing bookmarks JSON", err)
	}
	sum, err := Checksum(f)
	if err != nil {
		return false, err
	}
	return f.Checksum != "" && sum == f.Checksum, nil
}

// ChromeTime converts t to microseconds since 1601-01-01 UTC.
func ChromeTime(t time.Time) int64 {
	return t.UnixMicro() + chromeToUnixEpochDelta*1000000
}

// FromChromeTime converts microseconds since 1601-01-01 UTC to a time.
func FromChromeTime(v int64) time.Time {
	return time.UnixMicro(v - chromeToUnixEpochDelta*1000000).UTC()
}
