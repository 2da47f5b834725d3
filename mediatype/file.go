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

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// FromPath returns the media type for a file path based on its extension.
// Unknown extensions yield [OctetStream].
func FromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" || ext == "bin" {
		return OctetStream
	}
	if mt, ok := shortNames[ext]; ok {
		return mt
	}

	return OctetStream
}

// Detect returns the media type for the file at path. The extension table is
// consulted first; when it has no answer the file content is sniffed.
// Sniffing failures fall back to [OctetStream].
func Detect(path string) string {
	if mt := FromPath(path); mt != OctetStream {
		return mt
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return OctetStream
	}

	return m.String()
}
