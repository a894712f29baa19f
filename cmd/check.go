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

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report bookmarks that would be dropped or warned about on export",
	Long: `Runs the configured URL checks against the workspace without changing
it. Protocol and length limits come from the check section of the config
and can be overridden with flags.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringSlice("exclude-protocols", nil, "protocols to exclude (e.g., data,javascript)")
	checkCmd.Flags().StringSlice("warn-protocols", nil, "protocols that trigger warnings (e.g., file,chrome)")
	checkCmd.Flags().Int("max-url-length", 0, "exclude URLs longer than this (0 = use config default)")
	checkCmd.Flags().Int("warn-url-length", 0, "warn on URLs longer than this (0 = use config default)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	doc, _, err := loadWorkspace()
	if err != nil {
		return err
	}

	opts := cfg.CheckOptions()
	if excludeProtos, _ := cmd.Flags().GetStringSlice("exclude-protocols"); len(excludeProtos) > 0 {
		opts.ExcludeProtocols = excludeProtos
	}
	if warnProtos, _ := cmd.Flags().GetStringSlice("warn-protocols"); len(warnProtos) > 0 {
		opts.WarnProtocols = warnProtos
	}
	if maxLen, _ := cmd.Flags().GetInt("max-url-length"); maxLen > 0 {
		opts.MaxURLLength = maxLen
	}
	if warnLen, _ := cmd.Flags().GetInt("warn-url-length"); warnLen > 0 {
		opts.WarnURLLength = warnLen
	}

	result := bookmark.Check(doc.Roots, opts)
	out := cmd.OutOrStdout()
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	fmt.Fprintf(out, "%d bookmarks, %d would be excluded, %d warnings\n",
		doc.Roots.Count(), result.Excluded, len(result.Warnings))
	return nil
}
