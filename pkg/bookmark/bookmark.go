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

// Package bookmark provides the core bookmark tree model.
//
// This package defines the data structures that flow between input adapters
// (which decode bookmarks from browser files and stores) and output adapters
// (which encode bookmarks to browser and policy formats). It serves as the
// common language of the application, independent of any specific format.
//
// # Core Types
//
// Node is a folder or a leaf bookmark. A node is a folder exactly when it
// has no URL:
//
//	docs := bookmark.NewFolder("Docs",
//	    bookmark.NewBookmark("Go", "https://go.dev"),
//	)
//
// Forest is the ordered list of top-level nodes. There is no synthetic root
// node; formats that need one create it while encoding.
//
// Document pairs a Forest with the top-level name that managed-bookmark
// formats show as the bar folder label:
//
//	doc := &bookmark.Document{
//	    TopLevelName: "Company",
//	    Roots:        bookmark.Forest{docs},
//	}
//
// # Design Principles
//
//  1. Format-agnostic: every codec decodes into and encodes from the same
//     Node tree.
//
//  2. Order-preserving: children order is the bar order, and no codec
//     reorders it. Only an explicit sort does.
//
//  3. Strict ownership: a node belongs to exactly one parent slice (or the
//     forest), so the tree is always acyclic.
package bookmark

// DefaultTopLevelName is used when a document carries no top-level name.
const DefaultTopLevelName = "Bookmarks"

// Placeholder names for nodes decoded without a name.
const (
	UnnamedBookmark = "Unnamed Bookmark"
	UnnamedFolder   = "Unnamed Folder"
)

// Node is a folder or a leaf bookmark.
type Node struct {
	// Name is the display label.
	Name string

	// URL is the bookmark target. Empty for folders.
	URL string

	// Root marks a node that formats serialize with their top-level
	// convention. Root nodes cannot be moved by the Editor.
	Root bool

	// Children are the folder contents in bar order. Always empty for
	// leaf bookmarks.
	Children []*Node
}

// NewFolder creates a folder node with the given children.
func NewFolder(name string, children ...*Node) *Node {
	if name == "" {
		name = UnnamedFolder
	}
	return &Node{Name: name, Children: children}
}

// NewBookmark creates a leaf bookmark.
func NewBookmark(name, url string) *Node {
	if name == "" {
		name = UnnamedBookmark
	}
	return &Node{Name: name, URL: url}
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool {
	return n.URL == ""
}

// Clone returns a deep copy of the node and its descendants.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Name: n.Name, URL: n.URL, Root: n.Root}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Count returns the number of leaf bookmarks at or below the node.
func (n *Node) Count() int {
	if !n.IsFolder() {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Equal reports whether two nodes have the same name, URL, root flag and
// children, recursively.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Name != o.Name || n.URL != o.URL || n.Root != o.Root {
		return false
	}
	return Forest(n.Children).Equal(Forest(o.Children))
}

// Forest is an ordered sequence of top-level nodes.
type Forest []*Node

// Clone returns a deep copy of the forest. The result never aliases the
// receiver's nodes.
func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	c := make(Forest, len(f))
	for i, n := range f {
		c[i] = n.Clone()
	}
	return c
}

// Equal compares two forests by value.
func (f Forest) Equal(o Forest) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if !f[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of leaf bookmarks in the forest.
func (f Forest) Count() int {
	total := 0
	for _, n := range f {
		total += n.Count()
	}
	return total
}

// Walk calls fn for every node in depth-first pre-order, passing the
// node's parent (nil for forest roots) and its depth. Returning false from
// fn skips the node's children.
func (f Forest) Walk(fn func(n, parent *Node, depth int) bool) {
	var walk func(nodes []*Node, parent *Node, depth int)
	walk = func(nodes []*Node, parent *Node, depth int) {
		for _, n := range nodes {
			if fn(n, parent, depth) {
				walk(n.Children, n, depth+1)
			}
		}
	}
	walk(f, nil, 0)
}

// Parent returns the parent of n. The second result is false when n is not
// in the forest; a nil parent with true means n is a forest root.
func (f Forest) Parent(n *Node) (*Node, bool) {
	var (
		parent *Node
		found  bool
	)
	f.Walk(func(cur, p *Node, _ int) bool {
		if found {
			return false
		}
		if cur == n {
			parent, found = p, true
			return false
		}
		return true
	})
	return parent, found
}

// Find follows a path of names from the forest roots and returns the node
// at its end, or nil. Names match exactly; the first match wins.
func (f Forest) Find(path ...string) *Node {
	if len(path) == 0 {
		return nil
	}
	nodes := []*Node(f)
	var cur *Node
	for _, name := range path {
		cur = nil
		for _, n := range nodes {
			if n.Name == name {
				cur = n
				break
			}
		}
		if cur == nil {
			return nil
		}
		nodes = cur.Children
	}
	return cur
}

// Document is a forest together with its top-level name.
type Document struct {
	// TopLevelName labels the managed bookmarks bar folder.
	TopLevelName string

	// Roots are the top-level nodes.
	Roots Forest
}

// NewDocument creates an empty document with the default top-level name.
func NewDocument() *Document {
	return &Document{TopLevelName: DefaultTopLevelName, Roots: Forest{}}
}

// Name returns the top-level name, falling back to DefaultTopLevelName.
func (d *Document) Name() string {
	if d.TopLevelName == "" {
		return DefaultTopLevelName
	}
	return d.TopLevelName
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	return &Document{TopLevelName: d.TopLevelName, Roots: d.Roots.Clone()}
}
