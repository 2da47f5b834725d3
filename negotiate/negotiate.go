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

import "strings"

// Supporter lists the content types a server can produce, most preferred
// first. [format.Registry] implements it.
//
// [format.Registry]: rivaas.dev/respond/format.Registry
type Supporter interface {
	Supported() []string
}

// Offers is a fixed list of content types implementing [Supporter].
type Offers []string

// Supported returns the offers.
func (o Offers) Supported() []string {
	return o
}

// Negotiate selects the supported content type that best satisfies the
// Accept header. The returned type is the supported entry as listed by s.
// The boolean is false when the header is empty or nothing acceptable is
// supported; the caller then decides between a default and 406.
func Negotiate(header string, s Supporter) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}

	supported := s.Supported()
	if len(supported) == 0 {
		return "", false
	}

	ranges := Parse(header)

	for _, r := range ranges {
		if r.IsWildcard() && r.Quality == 1.0 {
			return supported[0], true
		}
	}

	for _, r := range ranges {
		if r.Quality <= 0 {
			continue
		}
		for _, contentType := range supported {
			if r.Matches(contentType) {
				return contentType, true
			}
		}
	}

	return "", false
}
