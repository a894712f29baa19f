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

// Package places reads and writes bookmarks in a Firefox places.sqlite
// database.
//
// Only the moz_places and moz_bookmarks tables are touched. Reads list
// every bookmark row as a flat leaf; folder structure is not rebuilt.
// Writes replace everything under the menu and toolbar folders inside a
// single transaction.
package places

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

// Built-in Firefox folder ids.
const (
	MenuFolder    int64 = 2
	ToolbarFolder int64 = 3
)

// Store is an open places database.
type Store struct {
	db  *sql.DB
	tmp string
}

// Open opens a read-only snapshot of the database at path. Firefox keeps
// the live file locked while running, so it is copied first; the copy is
// removed by Close.
func Open(path string) (*Store, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bookmark.NotFound("places database", path)
		}
		return nil, err
	}
	defer src.Close()

	tmpFile, err := os.CreateTemp("", "firefox-places-*.sqlite")
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(tmpFile, src); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("copying %s: %w", path, err)
	}
	tmpFile.Close()

	db, err := sql.Open("sqlite3", tmpFile.Name()+"?mode=ro")
	if err != nil {
		os.Remove(tmpFile.Name())
		return nil, err
	}
	return &Store{db: db, tmp: tmpFile.Name()}, nil
}

// OpenWritable opens the database at path in place. Firefox must not be
// running while the store is written.
func OpenWritable(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, bookmark.NotFound("places database", path)
		}
		return nil, err
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the connection and removes any snapshot copy.
func (s *Store) Close() error {
	err := s.db.Close()
	if s.tmp != "" {
		os.Remove(s.tmp)
	}
	return err
}

// Bookmarks returns every bookmark row as a flat list of leaves. Rows
// without a URL are skipped and untitled rows get a placeholder name.
func (s *Store) Bookmarks(ctx context.Context) (bookmark.Forest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.title, p.url
		FROM moz_bookmarks b
		JOIN moz_places p ON b.fk = p.id
		WHERE b.type = 1
		ORDER BY b.id
	`)
	if err != nil {
		return nil, bookmark.NewFormatError("firefox", "querying bookmarks", err)
	}
	defer rows.Close()

	out := bookmark.Forest{}
	for rows.Next() {
		var title, url sql.NullString
		if err := rows.Scan(&title, &url); err != nil {
			return nil, bookmark.NewFormatError("firefox", "reading bookmark row", err)
		}
		if url.String == "" {
			continue
		}
		out = append(out, bookmark.NewBookmark(title.String, url.String))
	}
	if err := rows.Err(); err != nil {
		return nil, bookmark.NewFormatError("firefox", "reading bookmark rows", err)
	}
	return out, nil
}

// Export replaces the contents of the menu and toolbar folders with
// forest, placing its roots under parent. The write is all-or-nothing:
// any failure rolls back and returns an error matching
// bookmark.ErrStoreTransaction.
func (s *Store) Export(ctx context.Context, forest bookmark.Forest, parent int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", bookmark.ErrStoreTransaction, err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM moz_bookmarks WHERE parent IN (?, ?)", MenuFolder, ToolbarFolder); err != nil {
		return fmt.Errorf("%w: clearing folders: %w", bookmark.ErrStoreTransaction, err)
	}

	w := &writer{tx: tx, stamp: time.Now().UnixMilli() * 1000}
	for _, n := range forest {
		if err := w.insert(ctx, n, parent); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", bookmark.ErrStoreTransaction, err)
	}
	return nil
}

type writer struct {
	tx    *sql.Tx
	stamp int64
}

// insert writes one places row and one bookmarks row for n, then recurses
// into folder children with the new bookmark id as their parent.
func (w *writer) insert(ctx context.Context, n *bookmark.Node, parent int64) error {
	var url any
	if !n.IsFolder() {
		url = n.URL
	}

	res, err := w.tx.ExecContext(ctx, `
		INSERT INTO moz_places (url, title, guid, hidden, typed, visit_count)
		VALUES (?, ?, ?, 0, 0, 1)`,
		url, n.Name, NewGUID())
	if err != nil {
		return fmt.Errorf("%w: inserting place %q: %w", bookmark.ErrStoreTransaction, n.Name, err)
	}
	placeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: %w", bookmark.ErrStoreTransaction, err)
	}

	res, err = w.tx.ExecContext(ctx, `
		INSERT INTO moz_bookmarks (type, fk, parent, position, title, dateAdded, lastModified, guid)
		VALUES (1, ?, ?, 0, ?, ?, ?, ?)`,
		placeID, parent, n.Name, w.stamp, w.stamp, NewGUID())
	if err != nil {
		return fmt.Errorf("%w: inserting bookmark %q: %w", bookmark.ErrStoreTransaction, n.Name, err)
	}

	if !n.IsFolder() {
		return nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: %w", bookmark.ErrStoreTransaction, err)
	}
	for _, c := range n.Children {
		if err := w.insert(ctx, c, id); err != nil {
			return err
		}
	}
	return nil
}

// NewGUID returns a random 12-character identifier in the alphabet
// Firefox uses for its own GUIDs.
func NewGUID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:9])
}
