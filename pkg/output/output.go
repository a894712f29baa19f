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

// Package output provides the Adapter interface for bookmark encoders.
//
// Output adapters convert a bookmark document into a browser file format,
// a policy document, or a human-readable rendering. Each adapter is
// registered with the global registry and can be selected at runtime via
// the --to flag.
//
// # Implementing an Output Adapter
//
// To create a new output adapter:
//
//  1. Create a new package under pkg/output/
//  2. Implement the Adapter interface
//  3. Register via init() using adapter.RegisterOutput()
//  4. Import in cmd/root.go to include in the build
//
// Example:
//
//	package csv
//
//	func init() {
//	    adapter.RegisterOutput(New())
//	}
//
//	type Adapter struct{}
//
//	func New() *Adapter { return &Adapter{} }
//
//	func (a *Adapter) Name() string                     { return "csv" }
//	func (a *Adapter) DisplayName() string              { return "CSV" }
//	func (a *Adapter) Extensions() []string             { return []string{".csv"} }
//	func (a *Adapter) Configure(cfg output.Config) error { return nil }
//
//	func (a *Adapter) Render(doc *bookmark.Document, opts output.RenderOptions) ([]byte, error) {
//	    // Implement CSV rendering logic here
//	    return nil, nil
//	}
package output

import (
	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

// Adapter is the interface for bookmark output encoders.
//
// Render must not modify the document. Encoders that stamp identifiers or
// timestamps generate fresh values on every call.
type Adapter interface {
	// Name returns the unique adapter identifier used in --to flag.
	// Examples: "chrome", "edge", "plist", "native", "html"
	Name() string

	// DisplayName returns a human-friendly name for UI display.
	DisplayName() string

	// Extensions returns file extensions supported by this format.
	// First extension is the default.
	Extensions() []string

	// Configure applies runtime configuration to the adapter.
	// Called before Render() with user-specified options.
	Configure(cfg Config) error

	// Render encodes the document.
	Render(doc *bookmark.Document, opts RenderOptions) ([]byte, error)
}

// Config holds adapter-specific configuration passed at runtime.
type Config struct {
	// Enabled indicates whether this adapter should be used.
	Enabled bool

	// Options holds adapter-specific key-value options.
	// Common keys include "style" and "key".
	Options map[string]interface{}
}

// RenderOptions configures what information to include in the output.
// Only human-readable renderers look at these; browser and policy formats
// have fixed layouts.
type RenderOptions struct {
	// IncludeMetadata adds a header with generation time and counts.
	IncludeMetadata bool

	// Style specifies a format variant (adapter-specific).
	// For markdown: "textual", "table"
	Style string
}

// DefaultRenderOptions returns sensible defaults for rendering.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		IncludeMetadata: true,
		Style:           "",
	}
}
