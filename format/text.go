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
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"

	"rivaas.dev/respond/mediatype"
)

// DefaultTextLimit is the default maximum body length of [Text], in bytes.
const DefaultTextLimit = 10000

const truncationMarker = "... [truncated]"

// Text renders payloads as human-readable plain text.
//
// Strings and other scalars are written as-is. Structured payloads are
// written as an indented outline:
//
//	name: Alice
//	roles:
//	  - admin
//	  - editor
type Text struct {
	// MaxLength caps the body length in bytes. Longer output is cut and
	// suffixed with "... [truncated]". Zero or negative disables the cap.
	MaxLength int
}

// NewText creates a text formatter capped at [DefaultTextLimit] bytes.
func NewText() *Text {
	return &Text{MaxLength: DefaultTextLimit}
}

// ContentType returns "text/plain; charset=utf-8".
func (f *Text) ContentType() string {
	return mediatype.WithCharset(mediatype.Text, "utf-8")
}

// Format renders payload as text.
func (f *Text) Format(payload any) ([]byte, error) {
	text, err := f.render(payload)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return []byte(f.truncate(text)), nil
}

func (f *Text) render(payload any) (string, error) {
	switch v := payload.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case error:
		return v.Error(), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	switch reflect.TypeOf(payload).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return cast.ToStringE(payload)
	}

	tree, err := normalize(payload)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	writeOutline(&sb, tree, 0)

	return strings.TrimSuffix(sb.String(), "\n"), nil
}

func (f *Text) truncate(text string) string {
	if f.MaxLength <= 0 || len(text) <= f.MaxLength {
		return text
	}

	cut := f.MaxLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}

	return text[:cut] + truncationMarker
}

func writeOutline(sb *strings.Builder, value any, depth int) {
	pad := strings.Repeat("  ", depth)

	switch v := value.(type) {
	case object:
		for _, m := range v {
			if isScalar(m.value) {
				fmt.Fprintf(sb, "%s%s: %s\n", pad, m.key, scalarText(m.value))
				continue
			}
			fmt.Fprintf(sb, "%s%s:\n", pad, m.key)
			writeOutline(sb, m.value, depth+1)
		}
	case []any:
		for _, item := range v {
			if isScalar(item) {
				fmt.Fprintf(sb, "%s- %s\n", pad, scalarText(item))
				continue
			}
			fmt.Fprintf(sb, "%s-\n", pad)
			writeOutline(sb, item, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%s%s\n", pad, scalarText(v))
	}
}
