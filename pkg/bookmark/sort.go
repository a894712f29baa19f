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
	"sort"

	"golang.org/x/text/cases"
)

// SortNodes reorders nodes in place: folders first, then bookmarks, each
// group alphabetically by case-folded name using ordinal comparison. Ties
// keep their relative order. With recursive set, sub-folders are sorted too.
func SortNodes(nodes []*Node, recursive bool) {
	fold := cases.Fold()
	sortNodes(nodes, recursive, fold)
}

func sortNodes(nodes []*Node, recursive bool, fold cases.Caser) {
	keys := make(map[*Node]string, len(nodes))
	for _, n := range nodes {
		keys[n] = fold.String(n.Name)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}
		return keys[a] < keys[b]
	})

	if !recursive {
		return
	}
	for _, n := range nodes {
		if n.IsFolder() {
			sortNodes(n.Children, true, fold)
		}
	}
}

// SortChildren sorts the node's children. See SortNodes.
func (n *Node) SortChildren(recursive bool) {
	SortNodes(n.Children, recursive)
}

// Sort sorts the forest's top-level nodes. See SortNodes.
func (f Forest) Sort(recursive bool) {
	SortNodes(f, recursive)
}
