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

package chromium

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	chromiumin "github.com/cloudygreybeard/gpomarks/pkg/input/chromium"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

func sampleDoc() *bookmark.Document {
	return &bookmark.Document{
		TopLevelName: "Company",
		Roots: bookmark.Forest{
			bookmark.NewFolder("Dev",
				bookmark.NewBookmark("Go", "https://go.dev/"),
				bookmark.NewFolder("Empty"),
			),
			bookmark.NewBookmark("Search", "https://example.com/?q=a&b=<c>"),
		},
	}
}

func fixedGUIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("00000000-0000-4000-8000-%012d", n)
	}
}

func TestEncode_ChecksumIsValid(t *testing.T) {
	for _, v := range []Variant{Chrome, Edge} {
		t.Run(v.Name, func(t *testing.T) {
			data, err := Encode(sampleDoc(), v)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			ok, err := VerifyChecksum(data)
			if err != nil {
				t.Fatalf("VerifyChecksum: %v", err)
			}
			if !ok {
				t.Error("checksum does not match content")
			}
		})
	}
}

func TestEncode_EmptyForest(t *testing.T) {
	data, err := Encode(bookmark.NewDocument(), Chrome)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := VerifyChecksum(data); !ok {
		t.Error("empty forest checksum does not verify")
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatal(err)
	}
	if f.Roots.BookmarkBar.Children == nil || len(*f.Roots.BookmarkBar.Children) != 0 {
		t.Error("bookmark_bar.children should be an empty array")
	}
	if !bytes.Contains(data, []byte(`"children": []`)) {
		t.Errorf("empty children not written as []:\n%s", data)
	}
}

func TestVerifyChecksum_DetectsTampering(t *testing.T) {
	data, err := Encode(sampleDoc(), Chrome)
	if err != nil {
		t.Fatal(err)
	}
	tampered := bytes.Replace(data, []byte(`"Go"`), []byte(`"Gone"`), 1)
	if ok, _ := VerifyChecksum(tampered); ok {
		t.Error("tampered file should fail verification")
	}
}

func TestEncode_Layout(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	data, err := encode(sampleDoc(), Chrome, now, fixedGUIDs())
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if !strings.HasPrefix(text, "{\n   \"checksum\": ") {
		t.Errorf("checksum should be the first field, indented by three spaces:\n%s", text[:40])
	}
	if !strings.Contains(text, "https://example.com/?q=a&b=<c>") {
		t.Error("URLs should not be HTML-escaped")
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatal(err)
	}
	if f.Version != 1 {
		t.Errorf("version = %d", f.Version)
	}
	bar := f.Roots.BookmarkBar
	if bar.Name != "Bookmarks bar" || f.Roots.Other.Name != "Other bookmarks" || f.Roots.Synced.Name != "Mobile bookmarks" {
		t.Errorf("root names = %q, %q, %q", bar.Name, f.Roots.Other.Name, f.Roots.Synced.Name)
	}

	dev := (*bar.Children)[0]
	if dev.Type != "folder" || dev.DateLastUsed != "0" || dev.DateModified == "" || dev.MetaInfo == nil {
		t.Errorf("folder fields = %+v", dev)
	}
	if bar.MetaInfo != nil || f.Roots.Other.MetaInfo != nil || f.Roots.Synced.MetaInfo != nil {
		t.Error("root folders should not carry meta_info")
	}
	goNode := (*dev.Children)[0]
	if goNode.Type != "url" || goNode.URL != "https://go.dev/" || goNode.MetaInfo == nil {
		t.Errorf("url fields = %+v", goNode)
	}
	if goNode.DateAdded != fmt.Sprint(ChromeTime(now)) {
		t.Errorf("date_added = %s", goNode.DateAdded)
	}

	seen := map[string]bool{}
	var walk func(n Node)
	walk = func(n Node) {
		if seen[n.ID] {
			t.Errorf("duplicate id %s", n.ID)
		}
		seen[n.ID] = true
		if n.Children != nil {
			for _, c := range *n.Children {
				walk(c)
			}
		}
	}
	walk(f.Roots.BookmarkBar)
	walk(f.Roots.Other)
	walk(f.Roots.Synced)
	if len(seen) != 7 {
		t.Errorf("got %d ids, want 7", len(seen))
	}
}

func TestEncode_EdgeVariant(t *testing.T) {
	data, err := Encode(sampleDoc(), Edge)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("meta_info")) {
		t.Error("edge output should not carry meta_info")
	}
	for _, want := range []string{"Favourites bar", "Other favourites", "Mobile favourites"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("missing root %q", want)
		}
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := Encode(doc, Chrome)
	if err != nil {
		t.Fatal(err)
	}
	got, err := chromiumin.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Roots.Equal(doc.Roots) {
		t.Error("round trip changed the forest")
	}
}

func TestEncode_FreshIdentifiers(t *testing.T) {
	a, _ := Encode(sampleDoc(), Chrome)
	b, _ := Encode(sampleDoc(), Chrome)

	var fa, fb File
	_ = json.Unmarshal(a, &fa)
	_ = json.Unmarshal(b, &fb)
	if fa.Roots.BookmarkBar.GUID == fb.Roots.BookmarkBar.GUID {
		t.Error("GUIDs should be regenerated on every encode")
	}
}

func TestChromeTime(t *testing.T) {
	if got := ChromeTime(time.Unix(0, 0)); got != 11644473600000000 {
		t.Errorf("ChromeTime(unix epoch) = %d", got)
	}
	now := time.Date(2024, 6, 1, 12, 0, 0, 123000, time.UTC)
	if got := FromChromeTime(ChromeTime(now)); !got.Equal(now) {
		t.Errorf("FromChromeTime round trip = %v, want %v", got, now)
	}
}

func TestAdapter_Render(t *testing.T) {
	a := New(Edge)
	if a.Name() != "edge" {
		t.Errorf("Name() = %q", a.Name())
	}
	data, err := a.Render(sampleDoc(), output.DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := VerifyChecksum(data); !ok {
		t.Error("rendered file checksum does not verify")
	}
}
