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

// Package workspace persists the document being edited between commands.
//
// The workspace is a native JSON file (see pkg/output/native). Commands load
// it at start, apply their change through a bookmark.Editor and save it back.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
	nativein "github.com/cloudygreybeard/gpomarks/pkg/input/native"
	"github.com/cloudygreybeard/gpomarks/pkg/output/native"
)

// FileName is the workspace file name inside the config directory.
const FileName = "workspace.json"

// DefaultPath returns the per-user workspace location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "gpomarks", FileName), nil
}

// Load reads the workspace at path. A missing file yields an empty
// document named topLevelName, or bookmark.DefaultTopLevelName when empty.
func Load(path, topLevelName string) (*bookmark.Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		doc := bookmark.NewDocument()
		if topLevelName != "" {
			doc.TopLevelName = topLevelName
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading workspace: %w", err)
	}

	doc, err := nativein.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("workspace %s: %w", path, err)
	}
	return doc, nil
}

// Save writes doc to path. The file is replaced atomically so an
// interrupted save leaves the previous workspace intact.
func Save(path string, doc *bookmark.Document) error {
	data, err := native.Encode(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating workspace directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing workspace: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing workspace: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing workspace: %w", err)
	}
	return nil
}
