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

package problem

import (
	"encoding/json"
	"maps"
	"slices"
)

// Record is a classified problem.
type Record struct {
	Type       string         // Problem type URI, "about:blank" when generic
	Title      string         // Short summary of the problem type
	Status     int            // HTTP status code
	Detail     string         // Occurrence explanation, empty when suppressed
	Instance   string         // URI of the occurrence, optional
	Extensions map[string]any // Extension members, flattened on the wire
}

// reserved lists the members extensions can never overwrite.
var reserved = map[string]struct{}{
	"type":     {},
	"title":    {},
	"status":   {},
	"detail":   {},
	"instance": {},
}

// IsReserved reports whether name is a standard problem member.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Payload flattens the record into a single map. Extensions become top-level
// members; detail and instance are present only when non-empty.
func (r Record) Payload() map[string]any {
	m := make(map[string]any, len(r.Extensions)+5)
	for k, v := range r.Extensions {
		if !IsReserved(k) {
			m[k] = v
		}
	}

	m["type"] = r.Type
	m["title"] = r.Title
	m["status"] = r.Status
	if r.Detail != "" {
		m["detail"] = r.Detail
	}
	if r.Instance != "" {
		m["instance"] = r.Instance
	}

	return m
}

// ShadowedExtensions returns the sorted extension keys that collide with a
// standard member and are therefore left out of [Record.Payload].
func (r Record) ShadowedExtensions() []string {
	var keys []string
	for k := range r.Extensions {
		if IsReserved(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	return keys
}

// MarshalJSON encodes the flattened payload.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Payload())
}

// WithExtensions returns a copy of r with ext merged over its extensions.
// Keys in ext win.
func (r Record) WithExtensions(ext map[string]any) Record {
	merged := make(map[string]any, len(r.Extensions)+len(ext))
	maps.Copy(merged, r.Extensions)
	maps.Copy(merged, ext)
	r.Extensions = merged

	return r
}

// ErrorRef returns the "error_ref" extension, or "" when absent.
func (r Record) ErrorRef() string {
	ref, _ := r.Extensions[ExtErrorRef].(string)
	return ref
}
