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

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "List registered input and output adapters",
	Long: `Lists all registered input (source) and output (format) adapters.
Inputs marked "bytes" can also read from stdin or the clipboard.`,
	Args: cobra.NoArgs,
	RunE: runAdapters,
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List browser profiles available for import and install",
	Args:  cobra.NoArgs,
	RunE:  runListProfiles,
}

func init() {
	rootCmd.AddCommand(adaptersCmd, profilesCmd)
}

func runAdapters(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Input Adapters (bookmark sources):")
	fmt.Fprintln(out)

	for _, inp := range adapter.AllInputs() {
		status := "not available"
		if inp.Available() {
			status = "available"
		}
		if _, ok := inp.(input.Decoder); ok {
			status += ", bytes"
		}
		fmt.Fprintf(out, "  %-12s %-26s [%s]\n", inp.Name(), inp.DisplayName(), status)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output Adapters (formats):")
	fmt.Fprintln(out)

	for _, o := range adapter.AllOutputs() {
		fmt.Fprintf(out, "  %-12s %-26s %v\n", o.Name(), o.DisplayName(), o.Extensions())
	}

	return nil
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Available browser profiles:")
	fmt.Fprintln(out)

	for _, name := range inputPreference {
		inp, err := configureBrowser(name, "")
		if err != nil {
			continue
		}

		status := "not available"
		if inp.Available() {
			status = "available"
		}

		fmt.Fprintf(out, "  %s (%s)\n", inp.DisplayName(), status)
		fmt.Fprintf(out, "    Path: %s\n", inp.Path())

		if inp.Available() {
			profiles, err := inp.ListProfiles()
			if err == nil && len(profiles) > 0 {
				fmt.Fprintf(out, "    Profiles:\n")
				for _, p := range profiles {
					def := ""
					if p.IsDefault {
						def = " (default)"
					}
					fmt.Fprintf(out, "      - %s%s\n", p.Name, def)
				}
			}
		}
		fmt.Fprintln(out)
	}

	return nil
}
