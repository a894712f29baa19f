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
	"os"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/store/places"
)

var installOpts struct {
	profile string
	parent  string
	noCheck bool
}

var installCmd = &cobra.Command{
	Use:   "install <browser>",
	Short: "Write the workspace into a browser profile",
	Long: `Replaces a browser profile's bookmarks with the workspace. The browser
must not be running.

For firefox the bookmarks menu and toolbar are cleared in a single
transaction and the workspace roots are inserted under the bookmarks
menu (or the toolbar, with --parent toolbar). For chrome, edge, chromium and brave the
profile's Bookmarks file is rewritten; the previous file is kept as
Bookmarks.bak.

Examples:
  gpomarks install firefox
  gpomarks install edge -p "Profile 1"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"firefox", "chrome", "edge", "chromium", "brave"},
	RunE:      runInstall,
}

func init() {
	installCmd.Flags().StringVarP(&installOpts.profile, "profile", "p", "", "browser profile (default: Default or first found)")
	installCmd.Flags().StringVar(&installOpts.parent, "parent", "", "firefox folder for the roots: menu or toolbar (default: config, else menu)")
	installCmd.Flags().BoolVar(&installOpts.noCheck, "no-check", false, "skip URL checks")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	doc, _, err := loadWorkspace()
	if err != nil {
		return err
	}
	if !installOpts.noCheck {
		doc = checked(doc)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch name := args[0]; name {
	case "firefox":
		return installFirefox(ctx, doc)
	case "chrome", "edge", "chromium", "brave":
		return installChromium(name, doc)
	default:
		return fmt.Errorf("cannot install into %s", name)
	}
}

func firefoxParent() (int64, error) {
	parent := installOpts.parent
	if parent == "" {
		parent = cfg.Firefox.ExportParent
	}
	switch parent {
	case "", "menu":
		return places.MenuFolder, nil
	case "toolbar":
		return places.ToolbarFolder, nil
	default:
		return 0, fmt.Errorf("unknown firefox parent %q (want menu or toolbar)", parent)
	}
}

func installFirefox(ctx context.Context, doc *bookmark.Document) error {
	parent, err := firefoxParent()
	if err != nil {
		return err
	}

	inp, err := configureBrowser("firefox", installOpts.profile)
	if err != nil {
		return err
	}
	if inp.Path() == "" {
		return bookmark.NotFound("Firefox profile", installOpts.profile)
	}

	s, err := places.OpenWritable(inp.Path())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Export(ctx, doc.Roots, parent); err != nil {
		return err
	}
	zlog.Info().Str("browser", "firefox").Str("path", inp.Path()).Int("bookmarks", doc.Roots.Count()).Msg("installed")
	return nil
}

func installChromium(name string, doc *bookmark.Document) error {
	inp, err := configureBrowser(name, installOpts.profile)
	if err != nil {
		return err
	}
	if !inp.Available() {
		return fmt.Errorf("%w: %s", bookmark.ErrNotFound, inp.Path())
	}
	path := inp.Path()

	// Chromium and Brave read the same layout as Chrome.
	format := name
	if format != "edge" {
		format = "chrome"
	}
	data, err := render(doc, format, "")
	if err != nil {
		return err
	}

	if old, err := os.ReadFile(path); err == nil {
		if err := os.WriteFile(path+".bak", old, 0o600); err != nil {
			return fmt.Errorf("backing up %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %w", bookmark.ErrEncoding, path, err)
	}
	zlog.Info().Str("browser", name).Str("path", path).Int("bookmarks", doc.Roots.Count()).Msg("installed")
	return nil
}
