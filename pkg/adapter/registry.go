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

// Package adapter provides the registry for input and output adapters.
//
// Format packages register themselves from init(); the command layer looks
// adapters up by the names users pass to --from and --to.
package adapter

import (
	"sort"
	"sync"

	"github.com/cloudygreybeard/gpomarks/pkg/input"
	"github.com/cloudygreybeard/gpomarks/pkg/output"
)

type named interface {
	Name() string
}

// registry is a name-keyed set of adapters.
type registry[T named] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newRegistry[T named]() *registry[T] {
	return &registry[T]{items: make(map[string]T)}
}

func (r *registry[T]) add(a T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.Name()] = a
}

func (r *registry[T]) get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[name]
	return a, ok
}

func (r *registry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// all returns adapters sorted by name, optionally filtered.
func (r *registry[T]) all(keep func(T) bool) []T {
	var out []T
	for _, name := range r.names() {
		a, _ := r.get(name)
		if keep == nil || keep(a) {
			out = append(out, a)
		}
	}
	return out
}

var (
	inputs  = newRegistry[input.Adapter]()
	outputs = newRegistry[output.Adapter]()
)

// RegisterInput registers an input adapter, replacing any adapter with the
// same name.
func RegisterInput(a input.Adapter) { inputs.add(a) }

// RegisterOutput registers an output adapter, replacing any adapter with
// the same name.
func RegisterOutput(a output.Adapter) { outputs.add(a) }

// GetInput returns an input adapter by name.
func GetInput(name string) (input.Adapter, bool) { return inputs.get(name) }

// GetOutput returns an output adapter by name.
func GetOutput(name string) (output.Adapter, bool) { return outputs.get(name) }

// ListInputs returns all registered input adapter names.
func ListInputs() []string { return inputs.names() }

// ListOutputs returns all registered output adapter names.
func ListOutputs() []string { return outputs.names() }

// AllInputs returns all registered input adapters, sorted by name.
func AllInputs() []input.Adapter { return inputs.all(nil) }

// AllOutputs returns all registered output adapters, sorted by name.
func AllOutputs() []output.Adapter { return outputs.all(nil) }

// AvailableInputs returns input adapters that are currently available.
func AvailableInputs() []input.Adapter {
	return inputs.all(func(a input.Adapter) bool { return a.Available() })
}

// GetDecoder returns the named input adapter when it can decode raw bytes.
func GetDecoder(name string) (input.Decoder, bool) {
	a, ok := inputs.get(name)
	if !ok {
		return nil, false
	}
	d, ok := a.(input.Decoder)
	return d, ok
}

// ListDecoders returns the names of input adapters that can decode raw
// bytes from stdin or the clipboard.
func ListDecoders() []string {
	var names []string
	for _, a := range inputs.all(func(a input.Adapter) bool {
		_, ok := a.(input.Decoder)
		return ok
	}) {
		names = append(names, a.Name())
	}
	return names
}
