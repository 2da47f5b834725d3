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

package respond

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps a successful payload.
type Envelope struct {
	Status string `json:"status" yaml:"status" toml:"status"`
	Data   any    `json:"data" yaml:"data" toml:"data,omitempty"`
}

// ErrorEnvelope wraps an error message and optional per-field errors.
type ErrorEnvelope struct {
	Status  string         `json:"status" yaml:"status" toml:"status"`
	Message string         `json:"message" yaml:"message" toml:"message"`
	Errors  map[string]any `json:"errors,omitempty" yaml:"errors,omitempty" toml:"errors,omitempty"`
}

// PaginatedEnvelope wraps one page of items with its pagination metadata.
type PaginatedEnvelope struct {
	Status string `json:"status" yaml:"status" toml:"status"`
	Meta   Meta   `json:"meta" yaml:"meta" toml:"meta"`
	Data   any    `json:"data" yaml:"data" toml:"data,omitempty"`
}

// Meta describes a page. Pages is 0 when Total is 0.
type Meta struct {
	Total   int `json:"total" yaml:"total" toml:"total"`
	Page    int `json:"page" yaml:"page" toml:"page"`
	PerPage int `json:"per_page" yaml:"per_page" toml:"per_page"`
	Pages   int `json:"pages" yaml:"pages" toml:"pages"`
}

// NewMeta clamps the inputs (total >= 0, page >= 1, perPage >= 1) and
// computes the page count.
func NewMeta(total, page, perPage int) Meta {
	total = max(total, 0)
	page = max(page, 1)
	perPage = max(perPage, 1)

	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}

	return Meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
}
