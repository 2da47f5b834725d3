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
	"bytes"
	"encoding/json"
	"reflect"

	"rivaas.dev/respond/mediatype"
)

// JSON renders payloads as JSON.
type JSON struct {
	// Indent pretty-prints the output with two-space indentation.
	Indent bool

	// EscapeHTML escapes <, > and & inside strings. Off by default so that
	// URLs and messages stay readable.
	EscapeHTML bool
}

// NewJSON creates a compact JSON formatter.
func NewJSON() *JSON {
	return &JSON{}
}

// ContentType returns "application/json; charset=utf-8".
func (f *JSON) ContentType() string {
	return mediatype.WithCharset(mediatype.JSON, "utf-8")
}

// Format serializes payload with encoding/json.
func (f *JSON) Format(payload any) ([]byte, error) {
	out, err := encodeJSON(payload, f.Indent, f.EscapeHTML)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return out, nil
}

// ProblemJSON renders RFC 9457 problem details.
type ProblemJSON struct {
	Indent bool
}

// NewProblemJSON creates a compact problem+json formatter.
func NewProblemJSON() *ProblemJSON {
	return &ProblemJSON{}
}

// ContentType returns "application/problem+json; charset=utf-8".
func (f *ProblemJSON) ContentType() string {
	return mediatype.WithCharset(mediatype.ProblemJSON, "utf-8")
}

// reservedProblemMembers are the members kept when a problem body cannot be
// encoded in full.
var reservedProblemMembers = []string{"type", "title", "status", "detail", "instance"}

// Format serializes a problem document. Error responses must always be
// deliverable, so an encode failure degrades to the standard members of a map
// payload and, failing that, to "{}". It never returns an error.
func (f *ProblemJSON) Format(payload any) ([]byte, error) {
	if out, err := encodeJSON(payload, f.Indent, false); err == nil {
		return out, nil
	}

	if m, ok := payload.(map[string]any); ok {
		core := make(map[string]any, len(reservedProblemMembers))
		for _, key := range reservedProblemMembers {
			if v, exists := m[key]; exists {
				core[key] = v
			}
		}
		if out, err := encodeJSON(core, f.Indent, false); err == nil {
			return out, nil
		}
	}

	return []byte("{}"), nil
}

// NDJSON renders newline-delimited JSON. A list payload yields one line per
// element; any other payload yields a single line.
type NDJSON struct{}

// NewNDJSON creates an NDJSON formatter.
func NewNDJSON() *NDJSON {
	return &NDJSON{}
}

// ContentType returns "application/x-ndjson".
func (f *NDJSON) ContentType() string {
	return mediatype.NDJSON
}

// Format serializes payload as NDJSON. Lines are separated by "\n" with no
// trailing newline; an empty list yields an empty body.
func (f *NDJSON) Format(payload any) ([]byte, error) {
	if !isList(payload) {
		out, err := encodeJSON(payload, false, false)
		if err != nil {
			return nil, newError(f.ContentType(), err)
		}

		return out, nil
	}

	v := reflect.ValueOf(payload)
	var buf bytes.Buffer
	for i := range v.Len() {
		line, err := encodeJSON(v.Index(i).Interface(), false, false)
		if err != nil {
			return nil, newError(f.ContentType(), err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(line)
	}

	return buf.Bytes(), nil
}

func encodeJSON(v any, indent, escapeHTML bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(escapeHTML)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
