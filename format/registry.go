// Copyright 2025 The Rivaas Authors
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

package format

import (
	"sync"

	"rivaas.dev/respond/mediatype"
)

// Registry holds the available formatters keyed by base media type.
//
// Registration order is kept: [Registry.Supported] lists types in the order
// they were first registered, and the first entry acts as the server's
// preferred representation during negotiation.
//
// Registry is safe for concurrent use. The expected pattern is to populate it
// once at startup and only read it afterwards.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
	order      []string
}

// NewRegistry creates a registry holding the given formatters, registered in order.
func NewRegistry(formatters ...Formatter) *Registry {
	r := &Registry{
		formatters: make(map[string]Formatter, len(formatters)),
		order:      make([]string, 0, len(formatters)),
	}
	for _, f := range formatters {
		r.Register(f)
	}

	return r
}

// NewDefaultRegistry creates a registry holding [Defaults].
func NewDefaultRegistry() *Registry {
	return NewRegistry(Defaults()...)
}

// Defaults returns a fresh instance of every built-in formatter. JSON comes
// first so that an unqualified "*/*" negotiates to JSON.
func Defaults() []Formatter {
	return []Formatter{
		NewJSON(),
		NewText(),
		NewNDJSON(),
		NewCSV(),
		NewProblemJSON(),
		NewXML(),
		NewYAML(),
		NewTOML(),
		NewMsgPack(),
		NewProtobuf(),
	}
}

// Register stores f under the base media type of f.ContentType().
// A formatter already registered for that type is replaced and the type keeps
// its original position. Nil formatters are ignored.
func (r *Registry) Register(f Formatter) {
	if f == nil {
		return
	}

	key := mediatype.Base(f.ContentType())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[key]; !exists {
		r.order = append(r.order, key)
	}
	r.formatters[key] = f
}

// Get returns the formatter registered for contentType. Parameters and case
// are ignored. The boolean is false when no formatter is registered.
func (r *Registry) Get(contentType string) (Formatter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[mediatype.Base(contentType)]

	return f, ok
}

// Supported returns the registered base media types in registration order.
func (r *Registry) Supported() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)

	return out
}
