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

package bookmark

import (
	"errors"
	"fmt"
)

// ChangeKind identifies the kind of edit reported to listeners.
type ChangeKind string

const (
	ChangeAdd    ChangeKind = "add"
	ChangeRemove ChangeKind = "remove"
	ChangeMove   ChangeKind = "move"
	ChangeUpdate ChangeKind = "update"
	ChangeSort   ChangeKind = "sort"
	ChangeView   ChangeKind = "view" // search applied or cleared
)

// Change describes a single edit.
type Change struct {
	Kind   ChangeKind
	Node   *Node // nil for view and forest-level sort changes
	Parent *Node // nil when the node is (or was) a forest root
}

// Listener receives changes after they have been applied.
type Listener func(Change)

type undoEntry struct {
	parent *Node
	node   *Node
}

// Editor owns a document and applies tree edits to it.
//
// Deleted nodes go onto an undo stack together with their former parent.
// Undo re-appends a node at the end of that parent (or of the forest); the
// original index is not tracked.
//
// Search replaces the visible forest with a filtered copy and keeps the
// unfiltered forest as a backup until the query is cleared. Edits made
// while a search is active apply to the filtered copy and are discarded
// when the backup is restored.
type Editor struct {
	doc       *Document
	backup    Forest
	query     string
	undo      []undoEntry
	listeners []Listener
}

// NewEditor creates an editor for doc. A nil doc starts empty.
func NewEditor(doc *Document) *Editor {
	if doc == nil {
		doc = NewDocument()
	}
	return &Editor{doc: doc}
}

// Document returns the document being edited. While a search is active its
// Roots are the filtered view.
func (e *Editor) Document() *Document { return e.doc }

// Roots returns the visible forest.
func (e *Editor) Roots() Forest { return e.doc.Roots }

// Query returns the active search query, or "".
func (e *Editor) Query() string { return e.query }

// CanUndo reports whether there is a deletion to restore.
func (e *Editor) CanUndo() bool { return len(e.undo) > 0 }

// OnChange registers a listener for subsequent edits.
func (e *Editor) OnChange(l Listener) {
	e.listeners = append(e.listeners, l)
}

func (e *Editor) notify(c Change) {
	for _, l := range e.listeners {
		l(c)
	}
}

// Search filters the visible forest. The first non-empty query snapshots
// the forest; an empty query restores the snapshot verbatim.
func (e *Editor) Search(query string) {
	if query == "" {
		if e.backup != nil {
			e.doc.Roots = e.backup
			e.backup = nil
		}
		e.query = ""
		e.notify(Change{Kind: ChangeView})
		return
	}

	if e.backup == nil {
		e.backup = e.doc.Roots.Clone()
	}
	e.query = query
	e.doc.Roots = Filter(e.backup, query)
	e.notify(Change{Kind: ChangeView})
}

// AddFolder appends a new folder to parent, or to the forest when parent
// is nil.
func (e *Editor) AddFolder(parent *Node, name string) (*Node, error) {
	n := NewFolder(name)
	if err := e.add(parent, n); err != nil {
		return nil, err
	}
	return n, nil
}

// AddBookmark appends a new bookmark to parent, or to the forest when
// parent is nil.
func (e *Editor) AddBookmark(parent *Node, name, url string) (*Node, error) {
	if url == "" {
		return nil, errors.New("bookmark URL is required")
	}
	n := NewBookmark(name, url)
	if err := e.add(parent, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (e *Editor) add(parent, n *Node) error {
	if parent == nil {
		e.doc.Roots = append(e.doc.Roots, n)
	} else {
		if !parent.IsFolder() {
			return fmt.Errorf("cannot add to bookmark %q: not a folder", parent.Name)
		}
		parent.Children = append(parent.Children, n)
	}
	e.notify(Change{Kind: ChangeAdd, Node: n, Parent: parent})
	return nil
}

// Rename changes a node's name.
func (e *Editor) Rename(n *Node, name string) error {
	if n == nil {
		return errors.New("rename: nil node")
	}
	if name == "" {
		return errors.New("rename: name is required")
	}
	n.Name = name
	e.notify(Change{Kind: ChangeUpdate, Node: n})
	return nil
}

// SetURL changes a bookmark's URL. Folders have no URL.
func (e *Editor) SetURL(n *Node, url string) error {
	if n == nil {
		return errors.New("set url: nil node")
	}
	if n.IsFolder() {
		return fmt.Errorf("set url: %q is a folder", n.Name)
	}
	if url == "" {
		return errors.New("set url: URL is required")
	}
	n.URL = url
	e.notify(Change{Kind: ChangeUpdate, Node: n})
	return nil
}

// Delete removes n from the forest and records it for Undo.
func (e *Editor) Delete(n *Node) error {
	if n == nil {
		return errors.New("delete: nil node")
	}
	parent, ok := e.detach(n)
	if !ok {
		return fmt.Errorf("delete: %q is not in the tree", n.Name)
	}
	e.undo = append(e.undo, undoEntry{parent: parent, node: n})
	e.notify(Change{Kind: ChangeRemove, Node: n, Parent: parent})
	return nil
}

// Undo restores the most recent deletion at the end of its former parent.
// It returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	if len(e.undo) == 0 {
		return false
	}
	last := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]

	if last.parent == nil {
		e.doc.Roots = append(e.doc.Roots, last.node)
	} else {
		last.parent.Children = append(last.parent.Children, last.node)
	}
	e.notify(Change{Kind: ChangeAdd, Node: last.node, Parent: last.parent})
	return true
}

// Move reparents n relative to target. Dropping onto a folder appends n to
// the folder; dropping onto a bookmark inserts n just before it.
//
// Root folders are refused with ErrRootFolderMove, and moves that would put
// n inside itself with ErrMoveIntoSelf. A refused move leaves the forest
// unchanged.
func (e *Editor) Move(n, target *Node) error {
	if n == nil || target == nil {
		return errors.New("move: nil node")
	}
	if n.Root {
		return fmt.Errorf("%w: %q", ErrRootFolderMove, n.Name)
	}
	if n == target || contains(n, target) {
		return fmt.Errorf("%w: %q", ErrMoveIntoSelf, n.Name)
	}
	if _, ok := e.doc.Roots.Parent(n); !ok {
		return fmt.Errorf("move: %q is not in the tree", n.Name)
	}
	targetParent, ok := e.doc.Roots.Parent(target)
	if !ok {
		return fmt.Errorf("move: target %q is not in the tree", target.Name)
	}

	e.detach(n)

	if target.IsFolder() {
		target.Children = append(target.Children, n)
		e.notify(Change{Kind: ChangeMove, Node: n, Parent: target})
		return nil
	}

	if targetParent == nil {
		e.doc.Roots = insertBefore(e.doc.Roots, target, n)
	} else {
		targetParent.Children = insertBefore(targetParent.Children, target, n)
	}
	e.notify(Change{Kind: ChangeMove, Node: n, Parent: targetParent})
	return nil
}

// Sort sorts a folder's children, or the forest when folder is nil.
func (e *Editor) Sort(folder *Node, recursive bool) {
	if folder == nil {
		e.doc.Roots.Sort(recursive)
	} else {
		folder.SortChildren(recursive)
	}
	e.notify(Change{Kind: ChangeSort, Node: folder})
}

// detach removes n from its parent slice and returns the parent.
func (e *Editor) detach(n *Node) (*Node, bool) {
	parent, ok := e.doc.Roots.Parent(n)
	if !ok {
		return nil, false
	}
	if parent == nil {
		e.doc.Roots = remove(e.doc.Roots, n)
	} else {
		parent.Children = remove(parent.Children, n)
	}
	return parent, true
}

func contains(ancestor, n *Node) bool {
	for _, c := range ancestor.Children {
		if c == n || contains(c, n) {
			return true
		}
	}
	return false
}

func remove(nodes []*Node, n *Node) []*Node {
	for i, c := range nodes {
		if c == n {
			return append(nodes[:i:i], nodes[i+1:]...)
		}
	}
	return nodes
}

func insertBefore(nodes []*Node, target, n *Node) []*Node {
	for i, c := range nodes {
		if c == target {
			out := make([]*Node, 0, len(nodes)+1)
			out = append(out, nodes[:i]...)
			out = append(out, n)
			return append(out, nodes[i:]...)
		}
	}
	return append(nodes, n)
}
