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

package firefox

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

func writePlaces(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "abcd1234.default-release")
	path := filepath.Join(dir, "places.sqlite")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	_, err = db.Exec(`
		CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url TEXT, title TEXT);
		CREATE TABLE moz_bookmarks (id INTEGER PRIMARY KEY, type INTEGER, fk INTEGER, parent INTEGER, title TEXT);
		INSERT INTO moz_places VALUES (1, 'https://go.dev/', 'Go'), (2, 'https://mozilla.org/', NULL);
		INSERT INTO moz_bookmarks VALUES
			(10, 2, NULL, 3, 'Folder'),
			(11, 1, 1, 10, 'Go'),
			(12, 1, 2, 3, NULL);
	`)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAdapter_ReadFlat(t *testing.T) {
	path := writePlaces(t)

	a := New()
	if err := a.Configure(input.Config{CustomPath: path}); err != nil {
		t.Fatal(err)
	}
	if !a.Available() {
		t.Fatal("adapter should be available")
	}
	if a.Profile() != "abcd1234.default-release" {
		t.Errorf("Profile() = %q", a.Profile())
	}

	doc, err := a.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := bookmark.Forest{
		bookmark.NewBookmark("Go", "https://go.dev/"),
		bookmark.NewBookmark(bookmark.UnnamedBookmark, "https://mozilla.org/"),
	}
	if !doc.Roots.Equal(want) {
		t.Errorf("Read() roots differ: got %d nodes", len(doc.Roots))
	}
	for _, n := range doc.Roots {
		if n.IsFolder() || len(n.Children) > 0 {
			t.Errorf("%q should be a flat leaf", n.Name)
		}
	}
}

func TestAdapter_ReadMissing(t *testing.T) {
	a := New()
	_ = a.Configure(input.Config{CustomPath: filepath.Join(t.TempDir(), "p", "places.sqlite")})

	if _, err := a.Read(context.Background()); !errors.Is(err, bookmark.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
