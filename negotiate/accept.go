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

package negotiate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"rivaas.dev/respond/mediatype"
)

// MediaRange is one parsed entry of an Accept header.
type MediaRange struct {
	Type    string            // Lowercased type, "*" for any
	Subtype string            // Lowercased subtype, "*" for any
	Quality float64           // Preference in [0, 1]
	Params  map[string]string // Parameters other than q, nil when absent
}

// String returns the range as "type/subtype".
func (m MediaRange) String() string {
	return m.Type + "/" + m.Subtype
}

// IsWildcard reports whether the range is "*/*".
func (m MediaRange) IsWildcard() bool {
	return m.Type == "*" && m.Subtype == "*"
}

// Matches reports whether contentType falls within the range. Parameters of
// contentType are ignored.
func (m MediaRange) Matches(contentType string) bool {
	if m.IsWildcard() {
		return true
	}

	typ, subtype := mediatype.Split(mediatype.Base(contentType))
	if m.Type != typ {
		return false
	}

	return m.Subtype == "*" || m.Subtype == subtype
}

// Parse parses an Accept header into media ranges sorted by quality,
// highest first. Ranges of equal quality keep their header order. Empty
// entries are skipped; an empty header yields nil.
func Parse(header string) []MediaRange {
	if header == "" {
		return nil
	}

	var ranges []MediaRange
	seen := make(map[string]int, 4)

	start := 0
	for i := 0; i <= len(header); i++ {
		if i < len(header) && header[i] != ',' {
			continue
		}
		if i > start {
			if r, ok := parseRange(header[start:i]); ok {
				key := r.String()
				if at, dup := seen[key]; dup {
					ranges[at].Quality = r.Quality
					ranges[at].Params = r.Params
				} else {
					seen[key] = len(ranges)
					ranges = append(ranges, r)
				}
			}
		}
		start = i + 1
	}

	slices.SortStableFunc(ranges, func(a, b MediaRange) int {
		return cmp.Compare(b.Quality, a.Quality)
	})

	return ranges
}

// parseRange parses a single comma-separated entry.
func parseRange(part string) (MediaRange, bool) {
	r := MediaRange{Quality: 1.0}

	value := part
	params := ""
	if semicolon := strings.IndexByte(part, ';'); semicolon != -1 {
		value = part[:semicolon]
		params = part[semicolon+1:]
	}

	start, end := trimWhitespace(value)
	if start >= end {
		return r, false
	}
	value = strings.ToLower(value[start:end])
	if value == "*" {
		value = mediatype.Any
	}
	r.Type, r.Subtype = mediatype.Split(value)

	for params != "" {
		param := params
		if semicolon := strings.IndexByte(params, ';'); semicolon != -1 {
			param = params[:semicolon]
			params = params[semicolon+1:]
		} else {
			params = ""
		}
		parseParam(param, &r)
	}

	return r, true
}

// parseParam parses one key=value parameter into r.
func parseParam(param string, r *MediaRange) {
	equals := strings.IndexByte(param, '=')
	if equals == -1 {
		return
	}

	keyStart, keyEnd := trimWhitespace(param[:equals])
	if keyStart >= keyEnd {
		return
	}
	key := strings.ToLower(param[keyStart:keyEnd])

	raw := param[equals+1:]
	valStart, valEnd := trimWhitespace(raw)
	if valStart >= valEnd {
		return
	}
	value := raw[valStart:valEnd]
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}

	if key == "q" {
		if q, ok := parseQuality(value); ok {
			r.Quality = q
		}

		return
	}

	if r.Params == nil {
		r.Params = make(map[string]string, 2)
	}
	r.Params[key] = value
}

// parseQuality parses a q value. The common forms ("1", "0.8", "0.125")
// are read as thousandths without allocating; anything else must be an
// unsigned decimal and is clamped into [0, 1]. ok is false for values that
// are not numbers at all, such as "abc", "-1" or "1e3".
func parseQuality(s string) (float64, bool) {
	if q := parseThousandths(s); q >= 0 {
		return float64(q) / 1000.0, true
	}

	if !isUnsignedDecimal(s) {
		return 0, false
	}

	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	return min(max(q, 0), 1), true
}

// parseThousandths parses "1", "1.0".."1.000" and "0", "0.x".."0.xxx" into
// integer thousandths. It returns -1 for anything else.
func parseThousandths(s string) int {
	if len(s) == 0 || len(s) > 5 {
		return -1
	}

	switch s[0] {
	case '1':
		if len(s) == 1 {
			return 1000
		}
		if len(s) < 3 || s[1] != '.' {
			return -1
		}
		for i := 2; i < len(s); i++ {
			if s[i] != '0' {
				return -1
			}
		}

		return 1000
	case '0':
		if len(s) == 1 {
			return 0
		}
		if len(s) < 3 || s[1] != '.' {
			return -1
		}
		result := 0
		multiplier := 100
		for i := 2; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return -1
			}
			result += int(s[i]-'0') * multiplier
			multiplier /= 10
		}

		return result
	default:
		return -1
	}
}

// isUnsignedDecimal reports whether s has the form digits, ".digits" or
// "digits.digits".
func isUnsignedDecimal(s string) bool {
	dot := false
	digitsAfterDot := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			if dot {
				digitsAfterDot++
			}
		case c == '.' && !dot:
			dot = true
		default:
			return false
		}
	}

	if s == "" {
		return false
	}

	return !dot || digitsAfterDot > 0
}

// trimWhitespace returns the bounds of s without leading and trailing
// spaces and tabs.
func trimWhitespace(s string) (start, end int) {
	end = len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}

	return start, end
}
