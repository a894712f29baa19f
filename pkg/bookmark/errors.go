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

package bookmark

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means an expected bookmark file or profile is absent.
	ErrNotFound = errors.New("bookmark source not found")

	// ErrFormat means the input is structurally invalid for its format.
	ErrFormat = errors.New("invalid bookmark data")

	// ErrStoreTransaction means a store write failed and was rolled back.
	ErrStoreTransaction = errors.New("bookmark store transaction failed")

	// ErrEncoding means an export could not be produced or delivered.
	ErrEncoding = errors.New("bookmark encoding failed")

	// ErrRootFolderMove is returned when a move targets a root folder.
	ErrRootFolderMove = errors.New("root folders cannot be moved")

	// ErrMoveIntoSelf is returned when a node would become its own descendant.
	ErrMoveIntoSelf = errors.New("cannot move a node into itself")
)

// FormatError describes a structural problem found while decoding.
type FormatError struct {
	// Format is the adapter name, e.g. "chrome" or "plist".
	Format string

	// Reason describes what was wrong.
	Reason string

	// Err is the underlying parser error, if any.
	Err error
}

// NewFormatError creates a FormatError.
func NewFormatError(format, reason string, err error) *FormatError {
	return &FormatError{Format: format, Reason: reason, Err: err}
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Format, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Format, e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrFormat) true for every FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// NotFound wraps ErrNotFound with the missing path.
func NotFound(what, path string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, what, path)
}
