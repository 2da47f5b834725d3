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

// Package header provides HTTP header names and the value helpers used when
// building responses: CR/LF safety checks, RFC 6266 Content-Disposition
// values and Cache-Control directives.
package header

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Header names set or read by this module.
const (
	ContentType        = "Content-Type"
	ContentLength      = "Content-Length"
	ContentDisposition = "Content-Disposition"
	CacheControl       = "Cache-Control"
	Location           = "Location"
	Accept             = "Accept"
	Vary               = "Vary"

	// TraceID is the default header carrying a problem's error reference.
	TraceID = "X-Trace-Id"
)

// IsSafe reports whether value can be written as a header value,
// i.e. it contains neither CR nor LF.
func IsSafe(value string) bool {
	return !strings.ContainsAny(value, "\r\n")
}

// asciiFold strips combining marks so that "Résumé" becomes "Resume".
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// DispositionValue builds a Content-Disposition value following RFC 6266.
//
// The filename parameter always carries an ASCII-only name: diacritics are
// folded and any remaining character outside printable ASCII, as well as
// '"' and '\', becomes '_'. When that changes the name, the exact name is
// added as an RFC 5987 filename* parameter.
//
// Example:
//
//	header.DispositionValue("report.pdf", false)
//	// attachment; filename="report.pdf"
//	header.DispositionValue("résumé.pdf", true)
//	// inline; filename="resume.pdf"; filename*=UTF-8''r%C3%A9sum%C3%A9.pdf
func DispositionValue(filename string, inline bool) string {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}

	fallback := asciiFilename(filename)
	if fallback == filename {
		return disposition + `; filename="` + filename + `"`
	}

	return disposition + `; filename="` + fallback + `"; filename*=UTF-8''` + encodeExtValue(filename)
}

func asciiFilename(name string) string {
	folded, _, err := transform.String(asciiFold, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// encodeExtValue percent-encodes everything outside RFC 5987 attr-char.
func encodeExtValue(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isAttrChar(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}

	return b.String()
}

func isAttrChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}

	return strings.IndexByte("!#$&+-.^_`|~", c) != -1
}
