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
	"fmt"
	"strings"
)

// CheckOptions configures pre-export URL checks.
type CheckOptions struct {
	ExcludeProtocols []string // Protocols to drop (e.g., "data", "javascript")
	WarnProtocols    []string // Protocols to warn about but keep
	MaxURLLength     int      // Drop URLs longer than this (0 = no limit)
	WarnURLLength    int      // Warn on URLs longer than this (0 = no warning)
}

// CheckResult contains the checked forest and any warnings generated.
type CheckResult struct {
	Roots    Forest
	Warnings []string
	Excluded int // Count of dropped bookmarks
}

// Check returns a copy of the forest with excluded bookmarks removed, plus
// warnings for bookmarks that are kept but unlikely to work as managed
// bookmarks. Folders are always kept, even when emptied.
func Check(forest Forest, opts CheckOptions) CheckResult {
	excludeProtos := make(map[string]bool)
	for _, p := range opts.ExcludeProtocols {
		excludeProtos[strings.ToLower(p)] = true
	}
	warnProtos := make(map[string]bool)
	for _, p := range opts.WarnProtocols {
		warnProtos[strings.ToLower(p)] = true
	}

	var result CheckResult

	var check func(nodes []*Node, path []string) []*Node
	check = func(nodes []*Node, path []string) []*Node {
		out := make([]*Node, 0, len(nodes))
		for _, n := range nodes {
			if n.IsFolder() {
				c := &Node{Name: n.Name, Root: n.Root}
				c.Children = check(n.Children, append(path, n.Name))
				if len(c.Children) == 0 {
					c.Children = nil
				}
				out = append(out, c)
				continue
			}

			where := strings.Join(append(path, n.Name), "/")
			proto := extractProtocol(n.URL)

			if excludeProtos[proto] {
				result.Excluded++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("dropped '%s': excluded protocol '%s'", truncate(where, 60), proto))
				continue
			}
			if opts.MaxURLLength > 0 && len(n.URL) > opts.MaxURLLength {
				result.Excluded++
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("dropped '%s': URL length %d exceeds max %d", truncate(where, 60), len(n.URL), opts.MaxURLLength))
				continue
			}

			if warnProtos[proto] {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("bookmark '%s' uses protocol '%s': %s", truncate(where, 60), proto, truncate(n.URL, 60)))
			}
			if opts.WarnURLLength > 0 && len(n.URL) > opts.WarnURLLength {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("bookmark '%s' has long URL (%d chars): %s", truncate(where, 60), len(n.URL), truncate(n.URL, 60)))
			}

			out = append(out, n.Clone())
		}
		return out
	}

	result.Roots = check(forest, nil)
	return result
}

// extractProtocol extracts the protocol/scheme from a URL.
func extractProtocol(url string) string {
	idx := strings.Index(url, ":")
	if idx <= 0 {
		return ""
	}
	return strings.ToLower(url[:idx])
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
