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

// Package cmd implements the gpomarks CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/config"

	// Import adapters to trigger init() registration
	_ "github.com/cloudygreybeard/gpomarks/pkg/input/chromium"
	_ "github.com/cloudygreybeard/gpomarks/pkg/input/firefox"
	_ "github.com/cloudygreybeard/gpomarks/pkg/input/native"
	_ "github.com/cloudygreybeard/gpomarks/pkg/input/netscape"
	_ "github.com/cloudygreybeard/gpomarks/pkg/input/opml"
	_ "github.com/cloudygreybeard/gpomarks/pkg/input/plist"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/chromium"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/firefox"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/markdown"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/native"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/opml"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/plist"
	_ "github.com/cloudygreybeard/gpomarks/pkg/output/yaml"
)

var (
	cfgFile       string
	verbose       bool
	workspaceFile string

	cfg config.Config
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "gpomarks",
	Short: "Author managed browser bookmarks for Group Policy and MDM",
	Long: `gpomarks edits a bookmark tree and converts it between browser and
policy formats.

The tree being edited lives in a workspace file (native JSON). Import
fills it from a browser or file, the edit commands change it, and export
or install write it out again.

Formats:
  - chrome, edge: Chromium "Bookmarks" file (checksummed JSON)
  - firefox: places.sqlite (import and install only)
  - firefox-json, html: Firefox backup JSON and Netscape bookmark HTML
  - plist, plist-chrome: ManagedFavorites / ManagedBookmarks policy plist
  - native: JSON array used for the clipboard and the workspace
  - opml, markdown, yaml: outlines and readable listings

Examples:
  gpomarks import chrome                        # Workspace from Chrome's default profile
  gpomarks import --from plist -i policy.plist  # Workspace from a policy file
  gpomarks add bookmark Tools "Wiki" https://wiki.example.com
  gpomarks mv Tools/Wiki Docs
  gpomarks export --to plist -o favorites.plist
  gpomarks convert -i Bookmarks --to native --clipboard-out
  gpomarks install firefox --profile abcd.default-release`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(cmd.ErrOrStderr())
		var err error
		cfg, err = loadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./gpomarks.yaml or ~/.gpomarks/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output to stderr")
	rootCmd.PersistentFlags().StringVarP(&workspaceFile, "workspace", "w", "", "workspace file (default: config workspace or user config dir)")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("gpomarks %s (commit: %s, built: %s)\n", Version, Commit, Date))
}

func setupLogging(w io.Writer) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: w, NoColor: true})
}

func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.LocalPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}

	zlog.Debug().Str("path", path).Msg("loading config")
	return config.Load(path)
}
