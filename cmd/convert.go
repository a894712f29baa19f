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

var convertOpts struct {
	in    source
	out   sink
	check bool
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert bookmarks between formats without touching the workspace",
	Long: `Reads a bookmark document from a file, stdin or the clipboard and
writes it in another format.

Examples:
  gpomarks convert -i Bookmarks -o favorites.plist
  gpomarks convert --from plist --to chrome < policy.plist > Bookmarks
  gpomarks convert --clipboard-in --to html -o bookmarks.html`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

func init() {
	convertOpts.in.addFlags(convertCmd)
	convertOpts.out.addFlags(convertCmd)
	convertCmd.Flags().BoolVar(&convertOpts.check, "check", false, "apply URL checks before writing")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	doc, err := convertOpts.in.read(cmd)
	if err != nil {
		return err
	}
	if cfg.TopLevelName != "" {
		doc.TopLevelName = cfg.TopLevelName
	}
	if convertOpts.check {
		doc = checked(doc)
	}
	return convertOpts.out.write(cmd, doc)
}
