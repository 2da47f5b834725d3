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

// Package negotiate implements server-driven content negotiation over the
// HTTP Accept header.
//
// [Parse] turns a raw header into media ranges ordered by preference, and
// [Negotiate] picks the best type out of a list of supported ones, typically a
// [format.Registry]:
//
//	contentType, ok := negotiate.Negotiate(r.Header.Get("Accept"), registry)
//	if !ok {
//		// fall back to a default, or answer 406 Not Acceptable
//	}
//
// Selection rules:
//   - An empty header never matches; the caller picks its default.
//   - "*/*" with quality 1 selects the first supported type outright, so an
//     unqualified "accept anything" yields the server's preferred format.
//   - Otherwise ranges are tried from highest to lowest quality, ties in
//     header order. Ranges with q=0 are rejections and never match.
//   - "type/*" and "*/*" match the first supported type with a compatible
//     base type; "type/subtype" matches only itself.
//
// Malformed or missing q values count as 1. Values above 1 are clamped to 1.
// When a media type is listed twice, the later quality applies and the entry
// keeps its first position.
//
// [format.Registry]: rivaas.dev/respond/format.Registry
package negotiate
