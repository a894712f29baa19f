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

package yaml

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

func TestRender(t *testing.T) {
	doc := &bookmark.Document{
		TopLevelName: "Team",
		Roots: bookmark.Forest{
			bookmark.NewFolder("Docs", bookmark.NewBookmark("RFC", "http://q.com")),
			bookmark.NewBookmark("Home", "https://example.com"),
		},
	}

	data, err := New().Render(doc, output.DefaultRenderOptions())
	if err != nil {
		t.Fatal(err)
	}

	var got Document
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, data)
	}
	if got.Name != "Team" || got.Metadata == nil || got.Metadata.Total != 2 {
		t.Errorf("header = %+v, metadata = %+v", got.Name, got.Metadata)
	}
	if len(got.Bookmarks) != 2 || len(got.Bookmarks[0].Children) != 1 {
		t.Fatalf("bookmarks = %+v", got.Bookmarks)
	}
	if got.Bookmarks[0].Children[0].URL != "http://q.com" || got.Bookmarks[1].URL != "https://example.com" {
		t.Errorf("urls not preserved: %+v", got.Bookmarks)
	}
}
