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
	"github.com/spf13/cobra"
)

var exportOpts struct {
	out     sink
	noCheck bool
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the workspace in another format",
	Long: `Renders the workspace to a file, stdout or the clipboard.

URL checks from the config run first: bookmarks with excluded protocols or
over-long URLs are dropped and warnings are logged. Use --no-check to skip
them.

Examples:
  gpomarks export --to plist -o ManagedFavorites.plist
  gpomarks export --to plist-chrome -o ManagedBookmarks.plist
  gpomarks export --to native --clipboard-out`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportOpts.out.addFlags(exportCmd)
	exportCmd.Flags().BoolVar(&exportOpts.noCheck, "no-check", false, "skip URL checks")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, _, err := loadWorkspace()
	if err != nil {
		return err
	}
	if !exportOpts.noCheck {
		doc = checked(doc)
	}
	return exportOpts.out.write(cmd, doc)
}
