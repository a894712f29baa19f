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

package plist

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

const header = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
`

func wrap(key, items string) string {
	return header + `<plist version="1.0"><dict>
<key>FavoritesBarEnabled</key><true/>
<key>` + key + `</key><array>` + items + `</array></dict></plist>`
}

func TestDecode(t *testing.T) {
	data := wrap("ManagedFavorites", `
		<dict><key>toplevel_name</key><string>Company</string></dict>
		<dict>
			<key>name</key><string>Intranet</string>
			<key>children</key><array>
				<dict><key>name</key><string>HR</string><key>url</key><string><![CDATA[https://hr.example.com/?a=1&b=2]]></string></dict>
				<dict><key>name</key><string>Empty</string><key>children</key><array/></dict>
			</array>
		</dict>
		<dict><key>name</key><string>Nothing</string></dict>
		<dict><key>url</key><string>https://example.com/</string></dict>
	`)

	doc, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.TopLevelName != "Company" {
		t.Errorf("TopLevelName = %q", doc.TopLevelName)
	}

	want := bookmark.Forest{
		bookmark.NewFolder("Intranet",
			bookmark.NewBookmark("HR", "https://hr.example.com/?a=1&b=2"),
			bookmark.NewFolder("Empty"),
		),
		bookmark.NewFolder("Nothing"),
		bookmark.NewBookmark(bookmark.UnnamedBookmark, "https://example.com/"),
	}
	if !doc.Roots.Equal(want) {
		t.Errorf("Decode() forest mismatch: %+v", doc.Roots)
	}

	doc.Roots.Walk(func(n, _ *bookmark.Node, _ int) bool {
		if !n.IsFolder() && len(n.Children) > 0 {
			t.Errorf("leaf %q has children", n.Name)
		}
		return true
	})
}

func TestDecode_TopLevelName(t *testing.T) {
	tests := []struct {
		name      string
		items     string
		wantName  string
		wantRoots int
	}{
		{
			name:      "canonical key",
			items:     `<dict><key>toplevel_name</key><string>A</string></dict><dict><key>name</key><string>x</string></dict>`,
			wantName:  "A",
			wantRoots: 1,
		},
		{
			name:      "legacy key",
			items:     `<dict><key>top_level_name</key><string>B</string></dict>`,
			wantName:  "B",
			wantRoots: 0,
		},
		{
			name:      "absent",
			items:     `<dict><key>name</key><string>x</string></dict>`,
			wantName:  bookmark.DefaultTopLevelName,
			wantRoots: 1,
		},
		{
			name:      "empty array",
			items:     ``,
			wantName:  bookmark.DefaultTopLevelName,
			wantRoots: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(wrap("ManagedBookmarks", tt.items)))
			if err != nil {
				t.Fatal(err)
			}
			if doc.TopLevelName != tt.wantName {
				t.Errorf("TopLevelName = %q, want %q", doc.TopLevelName, tt.wantName)
			}
			if len(doc.Roots) != tt.wantRoots {
				t.Errorf("got %d roots, want %d", len(doc.Roots), tt.wantRoots)
			}
		})
	}
}

func TestDecode_LegacyKeyWarns(t *testing.T) {
	var buf bytes.Buffer
	saved := zlog.Logger
	zlog.Logger = zerolog.New(&buf)
	defer func() { zlog.Logger = saved }()

	if _, err := Decode([]byte(wrap("ManagedBookmarks", `<dict><key>top_level_name</key><string>B</string></dict>`))); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, `"level":"warn"`) || !strings.Contains(got, `"key":"top_level_name"`) {
		t.Errorf("log output = %s", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a plist", "garbage <"},
		{"root array", header + `<plist version="1.0"><array/></plist>`},
		{"no policy key", header + `<plist version="1.0"><dict><key>Other</key><array/></dict></plist>`},
		{"policy not array", header + `<plist version="1.0"><dict><key>ManagedFavorites</key><string>x</string></dict></plist>`},
		{"non-dict element", wrap("ManagedFavorites", `<string>x</string>`)},
		{"url and children", wrap("ManagedFavorites", `<dict><key>url</key><string>u</string><key>children</key><array/></dict>`)},
		{"nested error", wrap("ManagedFavorites", `<dict><key>children</key><array><integer>1</integer></array></dict>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Decode([]byte(tt.data))
			if !errors.Is(err, bookmark.ErrFormat) {
				t.Errorf("error = %v, want ErrFormat", err)
			}
			if doc != nil {
				t.Error("partial document returned on error")
			}
		})
	}
}

func TestSafariDecode(t *testing.T) {
	data := header + `<plist version="1.0"><dict>
	<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
	<key>Children</key><array>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeProxy</string>
			<key>Title</key><string>History</string>
		</dict>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
			<key>Title</key><string>BookmarksBar</string>
			<key>Children</key><array>
				<dict>
					<key>WebBookmarkType</key><string>WebBookmarkTypeLeaf</string>
					<key>URLString</key><string>https://apple.com/</string>
					<key>URIDictionary</key><dict><key>title</key><string>Apple</string></dict>
				</dict>
				<dict>
					<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
					<key>Title</key><string>News</string>
				</dict>
			</array>
		</dict>
	</array>
</dict></plist>`

	doc, err := NewSafari().Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := bookmark.Forest{
		bookmark.NewBookmark("Apple", "https://apple.com/"),
		bookmark.NewFolder("News"),
	}
	if !doc.Roots.Equal(want) {
		t.Errorf("Safari roots = %+v", doc.Roots)
	}

	if _, err := NewSafari().Decode([]byte(strings.Replace(data, "WebBookmarkTypeList", "Nope", 1))); !errors.Is(err, bookmark.ErrFormat) {
		t.Errorf("error = %v, want ErrFormat", err)
	}
}
