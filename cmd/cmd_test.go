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
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	"github.com/cloudygreybeard/gpomarks/pkg/config"
	"github.com/cloudygreybeard/gpomarks/pkg/store/places"
	"github.com/cloudygreybeard/gpomarks/pkg/workspace"
)

// run executes the root command against a workspace in dir.
func run(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()
	// Cobra leaves flag values behind between executions.
	convertOpts.in, convertOpts.out, convertOpts.check = source{}, sink{}, false
	importOpts.in, importOpts.profile, importOpts.merge = source{}, "", false
	exportOpts.out, exportOpts.noCheck = sink{}, false
	installOpts.profile, installOpts.parent, installOpts.noCheck = "", "", false
	addRoot, sortRecursive, verbose = false, false, false

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "none.yaml"),
		"--workspace", filepath.Join(dir, workspace.FileName),
	}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"/", nil},
		{"Docs", []string{"Docs"}},
		{"/Docs/Go/", []string{"Docs", "Go"}},
		{"A//B/C", []string{"A/B", "C"}},
	}
	for _, tt := range tests {
		if got := splitPath(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		path, data, want string
	}{
		{"x.plist", "", "plist"},
		{"", `  [{"toplevel_name":"x"}]`, "native"},
		{"Bookmarks", `{"roots":{}}`, "chrome"},
		{"", `<?xml version="1.0"?><plist>`, "plist"},
		{"", `<?xml version="1.0"?><opml>`, "opml"},
		{"", `<!DOCTYPE NETSCAPE-Bookmark-file-1>`, "html"},
	}
	for _, tt := range tests {
		if got := sniffFormat(tt.path, []byte(tt.data)); got != tt.want {
			t.Errorf("sniffFormat(%q, %q) = %q, want %q", tt.path, tt.data, got, tt.want)
		}
	}
}

func TestSinkResolveFormat(t *testing.T) {
	tests := []struct {
		s    sink
		want string
	}{
		{sink{}, "native"},
		{sink{path: "out.plist"}, "plist"},
		{sink{path: "/tmp/Default/Bookmarks"}, "chrome"},
		{sink{path: "out.plist", format: "plist-chrome"}, "plist-chrome"},
	}
	for _, tt := range tests {
		if got := tt.s.resolveFormat(); got != tt.want {
			t.Errorf("resolveFormat(%+v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}

func TestEditCommands(t *testing.T) {
	dir := t.TempDir()

	steps := [][]string{
		{"add", "folder", "/", "Docs"},
		{"add", "folder", "/", "Tools"},
		{"add", "bookmark", "Docs", "Go", "https://go.dev"},
		{"add", "bookmark", "Tools", "Wiki", "https://wiki.example.com"},
		{"mv", "Tools/Wiki", "Docs/Go"},
		{"rename", "Docs/Go", "Go Home"},
		{"set-url", "Docs/Go Home", "https://go.dev/doc"},
		{"rm", "Tools"},
		{"sort", "Docs"},
	}
	for _, args := range steps {
		if _, err := run(t, dir, "", args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	doc, err := workspace.Load(filepath.Join(dir, workspace.FileName), "")
	if err != nil {
		t.Fatal(err)
	}
	want := bookmark.Forest{
		bookmark.NewFolder("Docs",
			bookmark.NewBookmark("Go Home", "https://go.dev/doc"),
			bookmark.NewBookmark("Wiki", "https://wiki.example.com"),
		),
	}
	if !doc.Roots.Equal(want) {
		out, _ := run(t, dir, "", "show")
		t.Errorf("workspace after edits:\n%s", out)
	}

	out, err := run(t, dir, "", "search", "wiki")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Wiki  https://wiki.example.com") || strings.Contains(out, "Go Home") {
		t.Errorf("search output:\n%s", out)
	}
}

func TestMoveRootFolderRefused(t *testing.T) {
	dir := t.TempDir()
	for _, args := range [][]string{
		{"add", "folder", "--root", "/", "Managed"},
		{"add", "folder", "/", "Other"},
	} {
		if _, err := run(t, dir, "", args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	addRoot = false

	_, err := run(t, dir, "", "mv", "Managed", "Other")
	if !errors.Is(err, bookmark.ErrRootFolderMove) {
		t.Errorf("mv error = %v, want ErrRootFolderMove", err)
	}

	out, err := run(t, dir, "", "show")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "  Managed/ *\n") {
		t.Errorf("show output:\n%s", out)
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	native := `[{"toplevel_name":"Corp"},{"name":"Docs","children":[{"name":"Go","url":"https://go.dev"},{"name":"Bad","url":"javascript:void(0)"}]}]`

	if _, err := run(t, dir, native, "import", "--from", "native"); err != nil {
		t.Fatal(err)
	}

	plistPath := filepath.Join(dir, "out", "favorites.plist")
	if _, err := run(t, dir, "", "export", "-o", plistPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(plistPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<string>Corp</string>") || strings.Contains(string(data), "javascript:") {
		t.Errorf("exported plist:\n%s", data)
	}

	out, err := run(t, dir, "", "convert", "-i", plistPath, "--to", "native")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"toplevel_name": "Corp"`) || !strings.Contains(out, "https://go.dev") {
		t.Errorf("convert output:\n%s", out)
	}
}

type fakeClipboard struct{ text string }

func (f *fakeClipboard) Read(context.Context) (string, error) { return f.text, nil }

func (f *fakeClipboard) Write(_ context.Context, text string) error {
	f.text = text
	return nil
}

func TestConvert_Clipboard(t *testing.T) {
	clip := &fakeClipboard{text: `[{"name":"Home","url":"https://example.com"}]`}
	saved := newClipboard
	newClipboard = func() textClipboard { return clip }
	defer func() { newClipboard = saved }()

	dir := t.TempDir()
	if _, err := run(t, dir, "", "convert", "--clipboard-in", "--clipboard-out", "--to", "html"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(clip.text, `<DT><A HREF="https://example.com">Home</A>`) {
		t.Errorf("clipboard after convert:\n%s", clip.text)
	}
}

func TestConvert_ClipboardIgnoresInputName(t *testing.T) {
	clip := &fakeClipboard{text: `[{"name":"Home","url":"https://example.com"}]`}
	saved := newClipboard
	newClipboard = func() textClipboard { return clip }
	defer func() { newClipboard = saved }()

	dir := t.TempDir()
	out, err := run(t, dir, "", "convert", "-i", filepath.Join(dir, "stale.plist"), "--clipboard-in", "--to", "html")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `<DT><A HREF="https://example.com">Home</A>`) {
		t.Errorf("convert output:\n%s", out)
	}
}

func TestExport_MarkdownStyle(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, `[{"name":"Docs","children":[{"name":"Go","url":"https://go.dev"}]}]`, "import", "--from", "native"); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dir, "", "export", "--to", "markdown", "--style", "table")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "| Title | Folder |") || !strings.Contains(out, "https://go.dev") {
		t.Errorf("table export:\n%s", out)
	}

	out, err = run(t, dir, "", "export", "--to", "markdown")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "| Title | Folder |") {
		t.Errorf("default export should use the configured textual style:\n%s", out)
	}

	if _, err := run(t, dir, "", "export", "--to", "markdown", "--style", "bogus"); err == nil {
		t.Error("unknown style accepted")
	}
}

func TestFirefoxParent(t *testing.T) {
	saved := cfg
	defer func() { cfg = saved }()

	tests := []struct {
		config, flag string
		want         int64
		wantErr      bool
	}{
		{config.Default().Firefox.ExportParent, "", places.MenuFolder, false},
		{"", "", places.MenuFolder, false},
		{"", "toolbar", places.ToolbarFolder, false},
		{"toolbar", "", places.ToolbarFolder, false},
		{"toolbar", "menu", places.MenuFolder, false},
		{"", "unfiled", 0, true},
	}
	for _, tt := range tests {
		cfg = config.Default()
		cfg.Firefox.ExportParent = tt.config
		installOpts.parent = tt.flag

		got, err := firefoxParent()
		if (err != nil) != tt.wantErr {
			t.Errorf("firefoxParent(config %q, flag %q) error = %v", tt.config, tt.flag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("firefoxParent(config %q, flag %q) = %d, want %d", tt.config, tt.flag, got, tt.want)
		}
	}
	installOpts.parent = ""
}

func TestSetupLogging(t *testing.T) {
	defer func() {
		verbose = false
		setupLogging(io.Discard)
	}()

	var buf bytes.Buffer
	verbose = false
	setupLogging(&buf)
	zlog.Debug().Msg("hidden")
	zlog.Warn().Str("url", "file:///etc").Msg("suspicious protocol")
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", zerolog.GlobalLevel())
	}
	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "suspicious protocol") || !strings.Contains(got, "url=file:///etc") {
		t.Errorf("info log output:\n%s", got)
	}

	buf.Reset()
	verbose = true
	setupLogging(&buf)
	zlog.Debug().Msg("shown")
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("verbose level = %v, want debug", zerolog.GlobalLevel())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("verbose log output:\n%s", buf.String())
	}
}
