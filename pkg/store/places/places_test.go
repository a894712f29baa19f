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

package places

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

const schema = `
CREATE TABLE moz_places (
	id INTEGER PRIMARY KEY,
	url LONGVARCHAR,
	title LONGVARCHAR,
	guid TEXT,
	hidden INTEGER DEFAULT 0,
	typed INTEGER DEFAULT 0,
	visit_count INTEGER DEFAULT 0
);
CREATE TABLE moz_bookmarks (
	id INTEGER PRIMARY KEY,
	type INTEGER,
	fk INTEGER DEFAULT NULL,
	parent INTEGER,
	position INTEGER,
	title LONGVARCHAR,
	dateAdded INTEGER,
	lastModified INTEGER,
	guid TEXT
);
INSERT INTO moz_bookmarks (id, type, parent, position, title, guid) VALUES
	(1, 2, 0, 0, '', 'root________'),
	(2, 2, 1, 0, 'menu', 'menu________'),
	(3, 2, 1, 1, 'toolbar', 'toolbar_____'),
	(4, 2, 1, 2, 'tags', 'tags________'),
	(5, 2, 1, 3, 'unfiled', 'unfiled_____');
`

// newDatabase creates a places-like database and returns its path.
func newDatabase(t *testing.T, extra ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.sqlite")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	for _, stmt := range append([]string{schema}, extra...) {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return path
}

func count(t *testing.T, path, query string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(query).Scan(&n); err != nil {
		t.Fatal(err)
	}
	return n
}

func TestBookmarks_Flat(t *testing.T) {
	path := newDatabase(t, `
		INSERT INTO moz_places (id, url, title) VALUES
			(10, 'https://go.dev/', 'Go'),
			(11, 'https://example.com/', NULL),
			(12, NULL, 'folder place');
		INSERT INTO moz_bookmarks (id, type, fk, parent, position, title) VALUES
			(20, 2, NULL, 3, 0, 'Dev'),
			(21, 1, 10, 20, 0, 'Go'),
			(22, 1, 11, 3, 1, NULL),
			(23, 3, NULL, 3, 2, NULL),
			(24, 1, 12, 3, 3, 'no url');
	`)

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Bookmarks(context.Background())
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	want := bookmark.Forest{
		bookmark.NewBookmark("Go", "https://go.dev/"),
		bookmark.NewBookmark(bookmark.UnnamedBookmark, "https://example.com/"),
	}
	if !got.Equal(want) {
		t.Errorf("Bookmarks() = %v, want %v", names(got), names(want))
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "places.sqlite"))
	if !errors.Is(err, bookmark.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
	_, err = OpenWritable(filepath.Join(t.TempDir(), "places.sqlite"))
	if !errors.Is(err, bookmark.ErrNotFound) {
		t.Errorf("OpenWritable error = %v, want ErrNotFound", err)
	}
}

func TestExport_Recursive(t *testing.T) {
	path := newDatabase(t, `
		INSERT INTO moz_places (id, url, title) VALUES (10, 'https://old.example.com/', 'Old');
		INSERT INTO moz_bookmarks (id, type, fk, parent, position, title) VALUES (30, 1, 10, 2, 0, 'Old');
	`)

	forest := bookmark.Forest{
		bookmark.NewFolder("Dev",
			bookmark.NewBookmark("Go", "https://go.dev/"),
			bookmark.NewFolder("Inner", bookmark.NewBookmark("Pkg", "https://pkg.go.dev/")),
		),
		bookmark.NewBookmark("Home", "https://example.com/"),
	}

	s, err := OpenWritable(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Export(context.Background(), forest, ToolbarFolder); err != nil {
		t.Fatalf("Export: %v", err)
	}
	s.Close()

	if n := count(t, path, "SELECT COUNT(*) FROM moz_bookmarks WHERE title = 'Old'"); n != 0 {
		t.Errorf("old menu bookmark not deleted")
	}
	if n := count(t, path, "SELECT COUNT(*) FROM moz_bookmarks WHERE parent = 3"); n != 2 {
		t.Errorf("toolbar children = %d, want 2", n)
	}
	if n := count(t, path, `
		SELECT COUNT(*) FROM moz_bookmarks c
		JOIN moz_bookmarks f ON c.parent = f.id
		WHERE f.title = 'Inner' AND c.title = 'Pkg'`); n != 1 {
		t.Error("nested child not inserted under its folder")
	}
	if n := count(t, path, "SELECT COUNT(*) FROM moz_bookmarks WHERE type = 1 AND dateAdded > 0 AND length(guid) = 12"); n != 5 {
		t.Errorf("exported rows with timestamps and guids = %d, want 5", n)
	}
	if n := count(t, path, "SELECT COUNT(*) FROM moz_places WHERE visit_count = 1 AND hidden = 0 AND typed = 0"); n != 5 {
		t.Errorf("exported places = %d, want 5", n)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := r.Bookmarks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("re-import = %v, want 3 flat leaves", names(got))
	}
}

func TestExport_Atomic(t *testing.T) {
	path := newDatabase(t, `
		INSERT INTO moz_places (id, url, title) VALUES (10, 'https://keep.example.com/', 'Keep');
		INSERT INTO moz_bookmarks (id, type, fk, parent, position, title) VALUES (30, 1, 10, 3, 0, 'Keep');
		CREATE TRIGGER fail_third BEFORE INSERT ON moz_places
		WHEN NEW.title = 'three'
		BEGIN SELECT RAISE(ABORT, 'disk full'); END;
	`)
	placesBefore := count(t, path, "SELECT COUNT(*) FROM moz_places")
	bookmarksBefore := count(t, path, "SELECT COUNT(*) FROM moz_bookmarks")

	var forest bookmark.Forest
	for _, name := range []string{"one", "two", "three", "four", "five"} {
		forest = append(forest, bookmark.NewBookmark(name, "https://example.com/"+name))
	}

	s, err := OpenWritable(path)
	if err != nil {
		t.Fatal(err)
	}
	err = s.Export(context.Background(), forest, ToolbarFolder)
	s.Close()
	if !errors.Is(err, bookmark.ErrStoreTransaction) {
		t.Fatalf("error = %v, want ErrStoreTransaction", err)
	}

	if n := count(t, path, "SELECT COUNT(*) FROM moz_places"); n != placesBefore {
		t.Errorf("moz_places rows = %d, want %d", n, placesBefore)
	}
	if n := count(t, path, "SELECT COUNT(*) FROM moz_bookmarks"); n != bookmarksBefore {
		t.Errorf("moz_bookmarks rows = %d, want %d", n, bookmarksBefore)
	}
	if n := count(t, path, "SELECT COUNT(*) FROM moz_bookmarks WHERE title = 'Keep'"); n != 1 {
		t.Error("pre-existing toolbar bookmark was not restored by rollback")
	}
}

func TestNewGUID(t *testing.T) {
	a, b := NewGUID(), NewGUID()
	if len(a) != 12 {
		t.Errorf("len(NewGUID()) = %d", len(a))
	}
	if a == b {
		t.Error("GUIDs should differ")
	}
}

func names(f bookmark.Forest) []string {
	var out []string
	for _, n := range f {
		out = append(out, n.Name)
	}
	return out
}
