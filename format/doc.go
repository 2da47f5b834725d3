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

// Package format provides the pluggable serializers used to render response
// payloads and the registry that maps content types to them.
//
// A [Formatter] turns a payload into bytes and declares the exact
// Content-Type header value it produces. The [Registry] indexes formatters by
// base media type, so lookups with parameters ("application/json;
// charset=utf-8") resolve to the same entry as "application/json".
//
// Built-in formatters:
//   - [JSON]: application/json
//   - [ProblemJSON]: application/problem+json (RFC 9457 bodies)
//   - [NDJSON]: application/x-ndjson, one JSON document per line
//   - [XML]: application/xml
//   - [CSV]: text/csv, for objects and lists of objects
//   - [Text]: text/plain
//   - [YAML]: application/yaml
//   - [TOML]: application/toml
//   - [MsgPack]: application/msgpack
//   - [Protobuf]: application/x-protobuf
//
// # Quick Start
//
//	registry := format.NewRegistry(format.NewJSON(), format.NewText())
//	f, ok := registry.Get("application/json; charset=utf-8")
//	if !ok {
//		// not registered
//	}
//	body, err := f.Format(map[string]any{"id": 1})
//
// Formatters that need structured input (XML, CSV, Text) first render the
// payload through encoding/json, so struct json tags and custom
// json.Marshaler implementations are honored and object keys keep their
// order.
package format
