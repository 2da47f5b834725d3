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

// Package mediatype holds the media type constants and the small string
// helpers shared by the formatter registry and the Accept negotiator.
//
// All comparisons in this module happen on the base media type: the value
// lowercased, trimmed and stripped of everything from the first ';' on.
//
//	mediatype.Base("Application/JSON; charset=utf-8") // "application/json"
//	mediatype.Normalize("json")                       // "application/json"
//	mediatype.WithCharset("text/csv", "utf-8")        // "text/csv; charset=utf-8"
package mediatype
