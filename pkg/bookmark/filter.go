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
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns a filtered copy of the forest. A node is kept when its
// name or URL contains query (case-insensitive), or when any of its
// descendants is kept. A kept folder only carries its kept children.
//
// The input forest is never modified. An empty query returns a full copy.
func Filter(forest Forest, query string) Forest {
	if query == "" {
		return forest.Clone()
	}

	fold := cases.Fold()
	q := fold.String(query)

	result := Forest{}
	for _, n := range forest {
		if m := filterNode(n, q, fold); m != nil {
			result = append(result, m)
		}
	}
	return result
}

func filterNode(n *Node, q string, fold cases.Caser) *Node {
	var kept []*Node
	for _, c := range n.Children {
		if m := filterNode(c, q, fold); m != nil {
			kept = append(kept, m)
		}
	}

	if len(kept) == 0 && !matches(n, q, fold) {
		return nil
	}

	return &Node{Name: n.Name, URL: n.URL, Root: n.Root, Children: kept}
}

func matches(n *Node, q string, fold cases.Caser) bool {
	if strings.Contains(fold.String(n.Name), q) {
		return true
	}
	return n.URL != "" && strings.Contains(fold.String(n.URL), q)
}
