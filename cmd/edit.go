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

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the workspace tree",
	Long: `Prints the workspace as an indented tree. Folders end in "/", root
folders are marked with "*".

Paths used by the edit commands are the folder and bookmark names joined
with "/"; write "//" for a slash inside a name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadWorkspace()
		if err != nil {
			return err
		}
		printTree(cmd.OutOrStdout(), doc)
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Show bookmarks whose name or URL contains query",
	Long: `Prints the part of the workspace tree that matches query. Matching is
case-insensitive on names and URLs; the folders leading to each match are
kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, _, err := loadWorkspace()
		if err != nil {
			return err
		}
		e := bookmark.NewEditor(doc)
		e.Search(args[0])
		printTree(cmd.OutOrStdout(), e.Document())
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a folder or bookmark to the workspace",
}

var addRoot bool

var addFolderCmd = &cobra.Command{
	Use:   "folder <parent> <name>",
	Short: "Add a folder; use \"/\" as parent for the top level",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			parent, err := parentFolder(e.Roots(), args[0])
			if err != nil {
				return err
			}
			if addRoot && parent != nil {
				return fmt.Errorf("--root is only allowed at the top level")
			}
			n, err := e.AddFolder(parent, args[1])
			if err != nil {
				return err
			}
			n.Root = addRoot
			return nil
		})
	},
}

var addBookmarkCmd = &cobra.Command{
	Use:   "bookmark <parent> <name> <url>",
	Short: "Add a bookmark; use \"/\" as parent for the top level",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			parent, err := parentFolder(e.Roots(), args[0])
			if err != nil {
				return err
			}
			_, err = e.AddBookmark(parent, args[1], args[2])
			return err
		})
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <path>...",
	Aliases: []string{"delete"},
	Short:   "Remove folders or bookmarks",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			for _, p := range args {
				n, err := lookup(e.Roots(), p)
				if err != nil {
					return err
				}
				if err := e.Delete(n); err != nil {
					return err
				}
			}
			return nil
		})
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv <path> <target>",
	Short: "Move a node into a folder, or in front of a bookmark",
	Long: `Moves the node at path. When target is a folder the node is appended
to it; when target is a bookmark the node is placed just before it.
Root folders cannot be moved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			n, err := lookup(e.Roots(), args[0])
			if err != nil {
				return err
			}
			target, err := lookup(e.Roots(), args[1])
			if err != nil {
				return err
			}
			return e.Move(n, target)
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <path> <name>",
	Short: "Rename a folder or bookmark",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			n, err := lookup(e.Roots(), args[0])
			if err != nil {
				return err
			}
			return e.Rename(n, args[1])
		})
	},
}

var setURLCmd = &cobra.Command{
	Use:   "set-url <path> <url>",
	Short: "Change a bookmark's URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			n, err := lookup(e.Roots(), args[0])
			if err != nil {
				return err
			}
			return e.SetURL(n, args[1])
		})
	},
}

var sortRecursive bool

var sortCmd = &cobra.Command{
	Use:   "sort [folder]",
	Short: "Sort folders first, then bookmarks, by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return edit(func(e *bookmark.Editor) error {
			var folder *bookmark.Node
			if len(args) == 1 {
				var err error
				if folder, err = parentFolder(e.Roots(), args[0]); err != nil {
					return err
				}
			}
			e.Sort(folder, sortRecursive)
			return nil
		})
	},
}

func init() {
	addFolderCmd.Flags().BoolVar(&addRoot, "root", false, "mark the folder as a root folder that cannot be moved")
	addCmd.AddCommand(addFolderCmd, addBookmarkCmd)
	sortCmd.Flags().BoolVarP(&sortRecursive, "recursive", "r", false, "sort subfolders too")

	rootCmd.AddCommand(showCmd, searchCmd, addCmd, rmCmd, mvCmd, renameCmd, setURLCmd, sortCmd)
}

// parentFolder resolves path to a folder; "/" or "" means the top level
// and returns nil.
func parentFolder(forest bookmark.Forest, path string) (*bookmark.Node, error) {
	if len(splitPath(path)) == 0 {
		return nil, nil
	}
	n, err := lookup(forest, path)
	if err != nil {
		return nil, err
	}
	if !n.IsFolder() {
		return nil, fmt.Errorf("%q is a bookmark, not a folder", path)
	}
	return n, nil
}

func printTree(w io.Writer, doc *bookmark.Document) {
	fmt.Fprintf(w, "%s\n", doc.Name())
	doc.Roots.Walk(func(n, _ *bookmark.Node, depth int) bool {
		indent := strings.Repeat("  ", depth+1)
		switch {
		case n.IsFolder() && n.Root:
			fmt.Fprintf(w, "%s%s/ *\n", indent, n.Name)
		case n.IsFolder():
			fmt.Fprintf(w, "%s%s/\n", indent, n.Name)
		default:
			fmt.Fprintf(w, "%s%s  %s\n", indent, n.Name, n.URL)
		}
		return true
	})
}
