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
	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"rivaas.dev/respond/mediatype"
)

// YAML renders payloads with gopkg.in/yaml.v3. Struct fields follow yaml
// tags.
type YAML struct{}

// NewYAML creates a YAML formatter.
func NewYAML() *YAML {
	return &YAML{}
}

// ContentType returns "application/yaml; charset=utf-8".
func (f *YAML) ContentType() string {
	return mediatype.WithCharset(mediatype.YAML, "utf-8")
}

// Format serializes payload as YAML.
func (f *YAML) Format(payload any) ([]byte, error) {
	out, err := yaml.Marshal(payload)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return out, nil
}

// TOML renders payloads with github.com/BurntSushi/toml. Only maps and
// structs can be encoded at the top level; struct fields follow toml tags.
type TOML struct{}

// NewTOML creates a TOML formatter.
func NewTOML() *TOML {
	return &TOML{}
}

// ContentType returns "application/toml".
func (f *TOML) ContentType() string {
	return mediatype.TOML
}

// Format serializes payload as TOML.
func (f *TOML) Format(payload any) ([]byte, error) {
	out, err := toml.Marshal(payload)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return out, nil
}
