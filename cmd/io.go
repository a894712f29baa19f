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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/gpomarks/pkg/adapter"
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/clipboard"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
	"github.com/cloudygreybeard/gpomarks/pkg/workspace"
)

// Output formats picked from a file extension when --to is not given.
var extensionFormats = map[string]string{
	".json":     "native",
	".plist":    "plist",
	".html":     "html",
	".htm":      "html",
	".opml":     "opml",
	".md":       "markdown",
	".markdown": "markdown",
	".yaml":     "yaml",
	".yml":      "yaml",
}

// newClipboard is replaced in tests.
var newClipboard = func() textClipboard { return clipboard.New() }

type textClipboard interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
}

// source describes where raw input bytes come from.
type source struct {
	format    string
	path      string
	clipboard bool
}

func (s *source) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.format, "from", "", "input format (default: inferred from file name or content)")
	cmd.Flags().StringVarP(&s.path, "input", "i", "", "input file (default: stdin)")
	cmd.Flags().BoolVar(&s.clipboard, "clipboard-in", false, "read input from the clipboard")
}

// read loads and decodes the source.
func (s *source) read(cmd *cobra.Command) (*bookmark.Document, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		data []byte
		err  error
	)
	switch {
	case s.clipboard:
		var text string
		text, err = newClipboard().Read(ctx)
		data = []byte(text)
	case s.path == "" || s.path == "-":
		data, err = io.ReadAll(cmd.InOrStdin())
	default:
		data, err = os.ReadFile(s.path)
		if os.IsNotExist(err) {
			return nil, bookmark.NotFound("input file", s.path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	format := s.format
	if format == "" {
		// The file name says nothing about clipboard content.
		name := s.path
		if s.clipboard {
			name = ""
		}
		format = sniffFormat(name, data)
		zlog.Debug().Str("format", format).Msg("inferred input format")
	}

	dec, ok := adapter.GetDecoder(format)
	if !ok {
		return nil, fmt.Errorf("unknown input format: %s (available: %v)", format, adapter.ListDecoders())
	}
	return dec.Decode(data)
}

// sniffFormat guesses an input format from the file name, then content.
func sniffFormat(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".plist":
		return "plist"
	case ".html", ".htm":
		return "html"
	case ".opml":
		return "opml"
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("[")):
		return "native"
	case bytes.HasPrefix(trimmed, []byte("{")):
		return "chrome"
	case bytes.Contains(trimmed[:min(len(trimmed), 512)], []byte("<plist")):
		return "plist"
	case bytes.Contains(trimmed[:min(len(trimmed), 512)], []byte("<opml")):
		return "opml"
	}
	return "html"
}

// sink describes where rendered output goes.
type sink struct {
	format    string
	path      string
	style     string
	clipboard bool
}

func (s *sink) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.format, "to", "t", "", "output format (default: inferred from output file name, else native)")
	cmd.Flags().StringVarP(&s.path, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&s.clipboard, "clipboard-out", false, "write output to the clipboard")
	cmd.Flags().StringVar(&s.style, "style", "", "markdown style: textual or table (default: config)")
}

func (s *sink) resolveFormat() string {
	if s.format != "" {
		return s.format
	}
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(s.path))]; ok {
		return f
	}
	if filepath.Base(s.path) == "Bookmarks" {
		return "chrome"
	}
	return "native"
}

// write renders doc and delivers it.
func (s *sink) write(cmd *cobra.Command, doc *bookmark.Document) error {
	data, err := render(doc, s.resolveFormat(), s.style)
	if err != nil {
		return err
	}

	switch {
	case s.clipboard:
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return newClipboard().Write(ctx, string(data))
	case s.path == "" || s.path == "-":
		_, err := cmd.OutOrStdout().Write(data)
		return err
	default:
		if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
		if err := os.WriteFile(s.path, data, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		zlog.Debug().Str("path", s.path).Int("bytes", len(data)).Msg("written")
		return nil
	}
}

// render encodes doc with the named output adapter configured from cfg.
// A non-empty style overrides the configured one.
func render(doc *bookmark.Document, format, style string) ([]byte, error) {
	out, ok := adapter.GetOutput(format)
	if !ok {
		return nil, fmt.Errorf("unknown output format: %s (available: %v)", format, adapter.ListOutputs())
	}
	if err := out.Configure(output.Config{Enabled: true, Options: cfg.OutputOptions(format)}); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", format, err)
	}

	data, err := out.Render(doc, output.RenderOptions{IncludeMetadata: cfg.Outputs.IncludeMetadata, Style: style})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", format, err)
	}
	return data, nil
}

// checked runs the configured URL checks and logs their warnings.
func checked(doc *bookmark.Document) *bookmark.Document {
	result := bookmark.Check(doc.Roots, cfg.CheckOptions())
	for _, w := range result.Warnings {
		zlog.Warn().Msg(w)
	}
	if result.Excluded > 0 {
		zlog.Info().Int("count", result.Excluded).Msg("excluded bookmarks by check rules")
	}
	return &bookmark.Document{TopLevelName: doc.TopLevelName, Roots: result.Roots}
}

func workspacePath() (string, error) {
	if workspaceFile != "" {
		return workspaceFile, nil
	}
	if cfg.Workspace != "" {
		return cfg.Workspace, nil
	}
	return workspace.DefaultPath()
}

func loadWorkspace() (*bookmark.Document, string, error) {
	path, err := workspacePath()
	if err != nil {
		return nil, "", err
	}
	doc, err := workspace.Load(path, cfg.TopLevelName)
	if err != nil {
		return nil, "", err
	}
	zlog.Debug().Str("path", path).Int("bookmarks", doc.Roots.Count()).Msg("loaded workspace")
	return doc, path, nil
}

// edit loads the workspace, applies fn through an Editor and saves the
// result when fn made any change.
func edit(fn func(e *bookmark.Editor) error) error {
	doc, path, err := loadWorkspace()
	if err != nil {
		return err
	}

	e := bookmark.NewEditor(doc)
	dirty := false
	e.OnChange(func(c bookmark.Change) {
		if c.Kind == bookmark.ChangeView {
			return
		}
		dirty = true
		name := ""
		if c.Node != nil {
			name = c.Node.Name
		}
		zlog.Debug().Str("kind", string(c.Kind)).Str("node", name).Msg("edit")
	})

	if err := fn(e); err != nil {
		return err
	}
	if !dirty {
		return nil
	}
	return workspace.Save(path, e.Document())
}

// lookup resolves a slash-separated path of names in forest.
func lookup(forest bookmark.Forest, path string) (*bookmark.Node, error) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	n := forest.Find(parts...)
	if n == nil {
		return nil, bookmark.NotFound("bookmark", path)
	}
	return n, nil
}

// splitPath splits on "/"; a doubled "//" stands for a literal slash.
func splitPath(path string) []string {
	const placeholder = "\x00"
	path = strings.ReplaceAll(path, "//", placeholder)
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, strings.ReplaceAll(p, placeholder, "/"))
	}
	return parts
}
