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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as an MCP server over stdio",
	Long: `Runs gpomarks as an MCP (Model Context Protocol) server.

The server communicates via JSON-RPC over stdin/stdout, exposing:

Resources:
  - gpomarks://workspace      The workspace as native JSON
  - gpomarks://markdown       The workspace as Markdown
  - gpomarks://plist          ManagedFavorites policy plist
  - gpomarks://chrome-policy  ManagedBookmarks policy plist

Tools:
  - search_bookmarks   Search the workspace by name or URL
  - check_bookmarks    Report URLs that export would drop or warn about

Add to your MCP client configuration:

  {
    "mcpServers": {
      "gpomarks": {
        "command": "/path/to/gpomarks",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	load := func() (*bookmark.Document, error) {
		doc, _, err := loadWorkspace()
		return doc, err
	}
	server := mcp.NewServer(cfg, load, Version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
