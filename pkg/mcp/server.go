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

// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the bookmark workspace to assistants over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/config"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

// URIScheme prefixes every resource URI.
const URIScheme = "gpomarks://"

// resourceFormats maps resource names to output adapters and MIME types.
var resourceFormats = []struct {
	name, format, mimeType, title string
}{
	{"workspace", "native", "application/json", "Workspace (native JSON)"},
	{"markdown", "markdown", "text/markdown", "Workspace (Markdown)"},
	{"plist", "plist", "application/x-plist", "ManagedFavorites policy"},
	{"chrome-policy", "plist-chrome", "application/x-plist", "ManagedBookmarks policy"},
}

// renderMu serializes Configure and Render on the shared output adapters;
// tool calls are served concurrently.
var renderMu sync.Mutex

// LoadFunc returns the current workspace document.
type LoadFunc func() (*bookmark.Document, error)

// Server exposes the workspace as MCP resources and tools.
type Server struct {
	config config.Config
	load   LoadFunc
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server. The workspace is reloaded through
// load on every request so edits made by other commands are visible.
func NewServer(cfg config.Config, load LoadFunc, version string) *Server {
	s := &Server{config: cfg, load: load}
	s.mcp = server.NewMCPServer(
		"gpomarks",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerResources()
	s.registerTools()
	return s
}

// Run serves JSON-RPC on r and w until r is exhausted or ctx is cancelled.
func (s *Server) Run(ctx context.Context, r io.Reader, w io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, r, w)
}

func (s *Server) registerResources() {
	for _, f := range resourceFormats {
		s.mcp.AddResource(
			mcp.NewResource(URIScheme+f.name, f.title,
				mcp.WithResourceDescription(fmt.Sprintf("The bookmark workspace rendered as %s", f.format)),
				mcp.WithMIMEType(f.mimeType),
			),
			func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				text, err := s.readResource(f.format)
				if err != nil {
					return nil, err
				}
				return []mcp.ResourceContents{
					mcp.TextResourceContents{
						URI:      request.Params.URI,
						MIMEType: f.mimeType,
						Text:     text,
					},
				}, nil
			},
		)
	}
}

func (s *Server) readResource(format string) (string, error) {
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	data, err := s.render(doc, format)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Server) render(doc *bookmark.Document, format string) ([]byte, error) {
	out, ok := adapter.GetOutput(format)
	if !ok {
		return nil, fmt.Errorf("output adapter %s not registered", format)
	}

	renderMu.Lock()
	defer renderMu.Unlock()
	if err := out.Configure(output.Config{Enabled: true, Options: s.config.OutputOptions(format)}); err != nil {
		return nil, err
	}
	return out.Render(doc, output.RenderOptions{IncludeMetadata: s.config.Outputs.IncludeMetadata})
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("search_bookmarks",
			mcp.WithDescription("Search workspace bookmarks by name or URL. Matching is case-insensitive; the folders leading to each match are kept and the result is native JSON."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Text to look for in bookmark names and URLs"),
			),
		),
		s.handleSearch,
	)

	s.mcp.AddTool(
		mcp.NewTool("check_bookmarks",
			mcp.WithDescription("Report bookmarks that export would drop (excluded protocols, over-long URLs) or warn about."),
		),
		s.handleCheck,
	)
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query is required"), nil
	}

	doc, err := s.load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	e := bookmark.NewEditor(doc)
	e.Search(query)
	matches := 0
	e.Roots().Walk(func(n, _ *bookmark.Node, _ int) bool {
		if !n.IsFolder() {
			matches++
		}
		return true
	})

	data, err := s.render(e.Document(), "native")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Found %d matches:\n%s", matches, data)), nil
}

func (s *Server) handleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := s.load()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res := bookmark.Check(doc.Roots, s.config.CheckOptions())
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d bookmarks, %d would be excluded, %d warnings\n",
		doc.Roots.Count(), res.Excluded, len(res.Warnings))
	for _, w := range res.Warnings {
		fmt.Fprintf(&sb, "- %s\n", w)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
