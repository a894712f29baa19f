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

package clipboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudygreybeard/gpomarks/pkg/bookmark"
)

// fake fails the first failures calls and records requested delays.
type fake struct {
	failures int
	calls    int
	delays   []time.Duration
	text     string
}

func (f *fake) clipboard() *Clipboard {
	return &Clipboard{
		read: func() (string, error) {
			f.calls++
			if f.calls <= f.failures {
				return "", errors.New("busy")
			}
			return f.text, nil
		},
		write: func(s string) error {
			f.calls++
			if f.calls <= f.failures {
				return errors.New("busy")
			}
			f.text = s
			return nil
		},
		sleep: func(_ context.Context, d time.Duration) error {
			f.delays = append(f.delays, d)
			return nil
		},
	}
}

func TestRead_RetriesWithLinearBackoff(t *testing.T) {
	f := &fake{failures: 2, text: "[]"}

	got, err := f.clipboard().Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "[]" || f.calls != 3 {
		t.Errorf("Read() = %q after %d calls", got, f.calls)
	}
	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}
	if len(f.delays) != len(want) || f.delays[0] != want[0] || f.delays[1] != want[1] {
		t.Errorf("delays = %v, want %v", f.delays, want)
	}
}

func TestWrite_GivesUp(t *testing.T) {
	f := &fake{failures: 10}

	err := f.clipboard().Write(context.Background(), "x")
	if !errors.Is(err, bookmark.ErrEncoding) {
		t.Fatalf("Write() error = %v, want ErrEncoding", err)
	}
	if f.calls != Attempts || len(f.delays) != Attempts-1 {
		t.Errorf("calls = %d, delays = %d", f.calls, len(f.delays))
	}
}

func TestRetry_Cancelled(t *testing.T) {
	f := &fake{failures: 10}
	c := f.clipboard()
	c.sleep = sleep

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Write(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
}

func TestUnsupported(t *testing.T) {
	c := (&fake{}).clipboard()
	c.unsupported = true
	if _, err := c.Read(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Read() error = %v, want ErrUnsupported", err)
	}
}
