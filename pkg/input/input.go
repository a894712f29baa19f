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

// Package input provides the Adapter interface for bookmark sources.
//
// Input adapters read bookmarks from browser files, browser stores, or
// policy documents and decode them into a bookmark.Document. Each adapter is
// registered with the global registry and can be discovered at runtime.
//
// # Implementing an Input Adapter
//
// To create a new input adapter:
//
//  1. Create a new package under pkg/input/
//  2. Implement the Adapter interface, and Decoder if the format can be
//     parsed from raw bytes (stdin, clipboard)
//  3. Register via init() using adapter.RegisterInput()
//  4. Import in cmd/root.go to include in the build
//
// Example:
//
//	package myformat
//
//	func init() {
//	    adapter.RegisterInput(New())
//	}
//
//	type Adapter struct {
//	    input.FileSource
//	}
//
//	func New() *Adapter { return &Adapter{} }
//
//	func (a *Adapter) Name() string        { return "myformat" }
//	func (a *Adapter) DisplayName() string { return "My Format" }
//
//	func (a *Adapter) Decode(data []byte) (*bookmark.Document, error) {
//	    // Implement parsing here
//	    return nil, nil
//	}
//
//	func (a *Adapter) Read(ctx context.Context) (*bookmark.Document, error) {
//	    return a.ReadWith(a.Name(), a.Decode)
//	}
package input

import (
	"context"
	"fmt"
	"os"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

// Adapter is the interface for bookmark input sources.
type Adapter interface {
	// Name returns the unique adapter identifier used in configuration
	// and command-line flags. Should be lowercase.
	// Examples: "chrome", "edge", "firefox", "plist", "native"
	Name() string

	// DisplayName returns a human-friendly name for UI display.
	DisplayName() string

	// Available returns true if this input source can be read.
	// This method should be fast: check for data files only.
	Available() bool

	// Path returns the path being read, for logging.
	Path() string

	// Configure applies runtime configuration to the adapter.
	// Called before Read() with user-specified options.
	Configure(cfg Config) error

	// ListProfiles returns available browser profiles.
	// Returns nil if the source has no notion of profiles.
	ListProfiles() ([]ProfileInfo, error)

	// Read decodes the configured source. A missing source returns an
	// error matching bookmark.ErrNotFound; malformed data an error matching
	// bookmark.ErrFormat. No partial document is returned on error.
	Read(ctx context.Context) (*bookmark.Document, error)
}

// Decoder is implemented by adapters whose format can be parsed from raw
// bytes, such as text pasted from the clipboard or read from stdin.
type Decoder interface {
	Decode(data []byte) (*bookmark.Document, error)
}

// Config holds adapter-specific configuration passed at runtime.
type Config struct {
	// Enabled indicates whether this adapter should be used.
	Enabled bool

	// Profile specifies which browser profile to read.
	// Empty string means use the default profile.
	Profile string

	// CustomPath overrides the default path/location for this source.
	CustomPath string

	// Options holds adapter-specific key-value options.
	Options map[string]interface{}
}

// ProfileInfo describes an available profile within an input source.
type ProfileInfo struct {
	// Name is the profile identifier (e.g., "Default", "Profile 1").
	Name string

	// Path is the filesystem path of the profile's bookmark data.
	Path string

	// IsDefault indicates if this is the default/primary profile.
	IsDefault bool
}

// FileSource is embedded by adapters that read a single user-supplied file.
// It implements the file-related parts of Adapter.
type FileSource struct {
	path string
}

// Available returns true when a path is configured and exists.
func (s *FileSource) Available() bool {
	if s.path == "" {
		return false
	}
	_, err := os.Stat(s.path)
	return err == nil
}

// Path returns the configured path.
func (s *FileSource) Path() string { return s.path }

// Configure takes the file path from cfg.CustomPath.
func (s *FileSource) Configure(cfg Config) error {
	s.path = cfg.CustomPath
	return nil
}

// ListProfiles returns nil: plain files have no profiles.
func (s *FileSource) ListProfiles() ([]ProfileInfo, error) { return nil, nil }

// ReadWith reads the configured file and decodes it.
func (s *FileSource) ReadWith(name string, decode func([]byte) (*bookmark.Document, error)) (*bookmark.Document, error) {
	if s.path == "" {
		return nil, fmt.Errorf("%s: no file path configured", name)
	}
	return ReadFile(s.path, name, decode)
}

// ReadFile reads path and decodes it, mapping a missing file to
// bookmark.ErrNotFound.
func ReadFile(path, what string, decode func([]byte) (*bookmark.Document, error)) (*bookmark.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bookmark.NotFound(what+" file", path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return decode(data)
}
