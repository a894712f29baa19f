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

// Package clipboard exchanges bookmark text with the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	zlog "github.com/rs/zerolog/log"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

const (
	// Attempts is how many times a clipboard operation is tried.
	Attempts = 5

	// Backoff is the delay step between attempts; attempt n waits n*Backoff.
	Backoff = 100 * time.Millisecond
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// Clipboard reads and writes text with bounded retry. The system
// clipboard is often briefly held by another process.
type Clipboard struct {
	unsupported bool

	read  func() (string, error)
	write func(string) error
	sleep func(context.Context, time.Duration) error
}

// New returns a Clipboard backed by the system clipboard.
func New() *Clipboard {
	return &Clipboard{
		unsupported: clipboard.Unsupported,
		read:        clipboard.ReadAll,
		write:       clipboard.WriteAll,
		sleep:       sleep,
	}
}

// Read returns the clipboard text.
func (c *Clipboard) Read(ctx context.Context) (string, error) {
	var text string
	err := c.retry(ctx, "reading", func() error {
		var err error
		text, err = c.read()
		return err
	})
	return text, err
}

// Write replaces the clipboard text.
func (c *Clipboard) Write(ctx context.Context, text string) error {
	return c.retry(ctx, "writing", func() error {
		return c.write(text)
	})
}

func (c *Clipboard) retry(ctx context.Context, op string, fn func() error) error {
	if c.unsupported {
		return fmt.Errorf("%w: %w", bookmark.ErrEncoding, ErrUnsupported)
	}

	var err error
	for attempt := 1; attempt <= Attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		zlog.Debug().Str("op", op).Int("attempt", attempt).Err(err).Msg("clipboard busy")
		if attempt == Attempts {
			break
		}
		if serr := c.sleep(ctx, time.Duration(attempt)*Backoff); serr != nil {
			return serr
		}
	}
	return fmt.Errorf("%w: %s clipboard after %d attempts: %w", bookmark.ErrEncoding, op, Attempts, err)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
