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
	"context"
	"fmt"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/input"
	"github.com/cloudygreybeard/gpomarks/pkg/workspace"
)

// Input adapter preference order
var inputPreference = []string{"chrome", "firefox", "edge", "safari", "chromium", "brave"}

var importOpts struct {
	in      source
	profile string
	merge   bool
}

var importCmd = &cobra.Command{
	Use:   "import [browser]",
	Short: "Load bookmarks into the workspace",
	Long: `Replaces the workspace with bookmarks read from a browser profile or
from a file, stdin or the clipboard. With --merge the imported roots are
appended to the existing workspace instead.

Browsers: ` + fmt.Sprint(inputPreference) + `

Examples:
  gpomarks import chrome -p "Profile 1"
  gpomarks import firefox
  gpomarks import -i policy.plist
  gpomarks import --clipboard-in --merge`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importOpts.in.addFlags(importCmd)
	importCmd.Flags().StringVarP(&importOpts.profile, "profile", "p", "", "browser profile (default: Default or first found)")
	importCmd.Flags().BoolVar(&importOpts.merge, "merge", false, "append to the workspace instead of replacing it")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var (
		doc *bookmark.Document
		err error
	)
	if len(args) == 1 {
		doc, err = readBrowser(cmd.Context(), args[0], importOpts.profile)
	} else {
		doc, err = importOpts.in.read(cmd)
	}
	if err != nil {
		return err
	}

	current, path, err := loadWorkspace()
	if err != nil {
		return err
	}

	if importOpts.merge {
		current.Roots = append(current.Roots, doc.Roots...)
		doc = current
	} else if cfg.TopLevelName != "" {
		doc.TopLevelName = cfg.TopLevelName
	}

	if err := workspace.Save(path, doc); err != nil {
		return err
	}
	zlog.Info().Int("bookmarks", doc.Roots.Count()).Str("workspace", path).Msg("imported")
	return nil
}

// configureBrowser looks up a browser input adapter and applies config
// and flag overrides.
func configureBrowser(name, profile string) (input.Adapter, error) {
	inp, ok := adapter.GetInput(name)
	if !ok {
		return nil, fmt.Errorf("unknown browser: %s", name)
	}

	inputCfg := cfg.GetInputConfig(name)
	if !inputCfg.Enabled {
		return nil, fmt.Errorf("%s is disabled in config", name)
	}
	if profile != "" {
		inputCfg.Profile = profile
	}

	if err := inp.Configure(input.Config{
		Enabled:    true,
		Profile:    inputCfg.Profile,
		CustomPath: inputCfg.CustomPath,
	}); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", name, err)
	}
	return inp, nil
}

func readBrowser(ctx context.Context, name, profile string) (*bookmark.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	inp, err := configureBrowser(name, profile)
	if err != nil {
		return nil, err
	}

	zlog.Debug().Str("browser", name).Str("path", inp.Path()).Msg("reading browser")

	doc, err := inp.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading from %s: %w", name, err)
	}
	return doc, nil
}
