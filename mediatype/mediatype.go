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

package mediatype

import "strings"

// Media types produced by the built-in formatters and file responses.
const (
	JSON        = "application/json"
	ProblemJSON = "application/problem+json"
	JSONAPI     = "application/vnd.api+json"
	NDJSON      = "application/x-ndjson"
	XML         = "application/xml"
	CSV         = "text/csv"
	Text        = "text/plain"
	HTML        = "text/html"
	YAML        = "application/yaml"
	TOML        = "application/toml"
	MsgPack     = "application/msgpack"
	Protobuf    = "application/x-protobuf"
	OctetStream = "application/octet-stream"

	// Any is the "accept anything" media range.
	Any = "*/*"
)

// shortNames maps file-extension style names to full media types.
var shortNames = map[string]string{
	"html":     HTML,
	"htm":      HTML,
	"json":     JSON,
	"problem":  ProblemJSON,
	"jsonapi":  JSONAPI,
	"ndjson":   NDJSON,
	"jsonl":    NDJSON,
	"xml":      XML,
	"csv":      CSV,
	"text":     Text,
	"txt":      Text,
	"yaml":     YAML,
	"yml":      YAML,
	"toml":     TOML,
	"msgpack":  MsgPack,
	"protobuf": Protobuf,
	"proto":    Protobuf,
	"pdf":      "application/pdf",
	"zip":      "application/zip",
	"png":      "image/png",
	"jpg":      "image/jpeg",
	"jpeg":     "image/jpeg",
	"gif":      "image/gif",
	"svg":      "image/svg+xml",
	"webp":     "image/webp",
	"css":      "text/css",
	"js":       "application/javascript",
	"bin":      OctetStream,
}

// Base returns the base media type of contentType: lowercased, trimmed and
// without parameters. It is the key used by the formatter registry.
func Base(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i != -1 {
		contentType = contentType[:i]
	}

	return strings.ToLower(strings.TrimSpace(contentType))
}

// Split splits a media type into its type and subtype.
// Parameters are ignored. A value without a slash yields subtype "*".
func Split(mediaType string) (typ, subtype string) {
	base := Base(mediaType)
	if i := strings.IndexByte(base, '/'); i != -1 {
		return base[:i], base[i+1:]
	}

	return base, "*"
}

// Normalize converts a short name such as "json" or ".csv" into its full
// media type. Values that already contain a slash are returned as-is,
// unknown short names are returned lowercased.
func Normalize(name string) string {
	trimmed := strings.TrimSpace(name)
	if strings.Contains(trimmed, "/") {
		return trimmed
	}

	key := strings.ToLower(strings.TrimPrefix(trimmed, "."))
	if mt, ok := shortNames[key]; ok {
		return mt
	}

	return key
}

// WithCharset appends a charset parameter unless one is already present.
func WithCharset(contentType, charset string) string {
	if strings.Contains(strings.ToLower(contentType), "charset=") {
		return contentType
	}

	return contentType + "; charset=" + charset
}
