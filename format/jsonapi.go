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
	"maps"
	"slices"
	"strconv"
	"strings"

	"rivaas.dev/respond/mediatype"
)

// JSONAPI renders payloads as JSON:API documents (https://jsonapi.org).
//
// A problem payload (an object with string "type" and "title" members and a
// numeric "status") becomes an errors document: one error object per
// message of its "errors" member when present, otherwise a single error.
// Any other payload is wrapped as {"data": payload}.
//
// JSONAPI is not part of [Defaults]; register it explicitly.
type JSONAPI struct {
	Indent bool
}

// NewJSONAPI creates a compact JSON:API formatter.
func NewJSONAPI() *JSONAPI {
	return &JSONAPI{}
}

// ContentType returns "application/vnd.api+json".
func (f *JSONAPI) ContentType() string {
	return mediatype.JSONAPI
}

type jsonAPIDocument struct {
	Data   any            `json:"data,omitempty"`
	Errors []jsonAPIError `json:"errors,omitempty"`
}

type jsonAPIError struct {
	ID     string            `json:"id,omitempty"`
	Links  map[string]string `json:"links,omitempty"`
	Status string            `json:"status,omitempty"`
	Code   string            `json:"code,omitempty"`
	Title  string            `json:"title,omitempty"`
	Detail string            `json:"detail,omitempty"`
	Source *jsonAPISource    `json:"source,omitempty"`
	Meta   map[string]any    `json:"meta,omitempty"`
}

type jsonAPISource struct {
	Pointer string `json:"pointer"`
}

// problemMembers are consumed into error object fields and never copied
// into meta.
var problemMembers = map[string]bool{
	"type": true, "title": true, "status": true, "detail": true,
	"instance": true, "errors": true, "error_ref": true, "code": true,
}

// Format serializes payload as a JSON:API document.
func (f *JSONAPI) Format(payload any) ([]byte, error) {
	tree, err := plain(payload)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	doc := jsonAPIDocument{Data: tree}
	if m, ok := tree.(map[string]any); ok && isProblem(m) {
		doc = jsonAPIDocument{Errors: problemErrors(m)}
	} else if tree == nil {
		doc = jsonAPIDocument{Data: map[string]any{}}
	}

	out, err := encodeJSON(doc, f.Indent, false)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return out, nil
}

func isProblem(m map[string]any) bool {
	_, hasType := m["type"].(string)
	_, hasTitle := m["title"].(string)
	_, hasStatus := m["status"].(float64)

	return hasType && hasTitle && hasStatus
}

func problemErrors(m map[string]any) []jsonAPIError {
	base := jsonAPIError{}
	base.ID, _ = m["error_ref"].(string)
	base.Code, _ = m["code"].(string)
	base.Title, _ = m["title"].(string)
	base.Detail, _ = m["detail"].(string)
	if status, ok := m["status"].(float64); ok {
		base.Status = strconv.Itoa(int(status))
	}
	if typ, _ := m["type"].(string); typ != "" && typ != "about:blank" {
		base.Links = map[string]string{"type": typ}
	}

	meta := make(map[string]any)
	for k, v := range m {
		if !problemMembers[k] {
			meta[k] = v
		}
	}
	if instance, ok := m["instance"].(string); ok && instance != "" {
		meta["instance"] = instance
	}
	if len(meta) > 0 {
		base.Meta = meta
	}

	fields, _ := m["errors"].(map[string]any)
	if len(fields) == 0 {
		return []jsonAPIError{base}
	}

	var out []jsonAPIError
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		for _, msg := range messages(fields[field]) {
			e := base
			e.Detail = msg
			e.Source = &jsonAPISource{Pointer: pointer(field)}
			out = append(out, e)
		}
	}

	return out
}

// messages flattens a field entry into its messages.
func messages(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, scalarText(item))
		}
		return out
	default:
		return []string{scalarText(t)}
	}
}

// pointer converts a dotted field path into a JSON pointer below
// /data/attributes: "items.0.price" becomes "/data/attributes/items/0/price".
func pointer(field string) string {
	escaped := strings.NewReplacer("~", "~0", "/", "~1").Replace(field)
	return "/data/attributes/" + strings.ReplaceAll(escaped, ".", "/")
}
