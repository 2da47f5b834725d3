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

package respond

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"

	"rivaas.dev/respond/header"
	"rivaas.dev/respond/mediatype"
	"rivaas.dev/respond/problem"
)

// Config holds the builder settings. The zero value is not usable; start
// from [DefaultConfig].
type Config struct {
	// DefaultContentType is used when no content type is requested and
	// negotiation yields nothing.
	DefaultContentType string `mapstructure:"default_content_type" json:"default_content_type" yaml:"default_content_type" toml:"default_content_type" validate:"required"`

	// DevMode exposes error details and stack traces in problem responses.
	DevMode bool `mapstructure:"dev_mode" json:"dev_mode" yaml:"dev_mode" toml:"dev_mode"`

	// CacheControl is added to every response unless the caller sets one.
	CacheControl string `mapstructure:"cache_control_default" json:"cache_control_default" yaml:"cache_control_default" toml:"cache_control_default"`

	Negotiation NegotiationConfig `mapstructure:"negotiation" json:"negotiation" yaml:"negotiation" toml:"negotiation"`
	Problem     ProblemConfig     `mapstructure:"problem" json:"problem" yaml:"problem" toml:"problem"`
	Pagination  PaginationConfig  `mapstructure:"pagination" json:"pagination" yaml:"pagination" toml:"pagination"`
}

// NegotiationConfig controls Accept header handling.
type NegotiationConfig struct {
	// Strict406 rejects unsatisfiable Accept headers with 406 instead of
	// falling back to the default content type.
	Strict406 bool `mapstructure:"strict_406" json:"strict_406" yaml:"strict_406" toml:"strict_406"`
}

// ProblemConfig controls problem details rendering.
type ProblemConfig struct {
	IncludeTraceID bool   `mapstructure:"include_trace_id" json:"include_trace_id" yaml:"include_trace_id" toml:"include_trace_id"`
	TraceHeader    string `mapstructure:"trace_header" json:"trace_header" yaml:"trace_header" toml:"trace_header" validate:"required_if=IncludeTraceID true"`
	DefaultType    string `mapstructure:"default_type" json:"default_type" yaml:"default_type" toml:"default_type" validate:"required"`
	BaseURI        string `mapstructure:"base_uri" json:"base_uri" yaml:"base_uri" toml:"base_uri" validate:"required"`
}

// PaginationConfig bounds page sizes.
type PaginationConfig struct {
	MaxPerPage     int `mapstructure:"max_per_page" json:"max_per_page" yaml:"max_per_page" toml:"max_per_page" validate:"min=1"`
	DefaultPerPage int `mapstructure:"default_per_page" json:"default_per_page" yaml:"default_per_page" toml:"default_per_page" validate:"min=1,ltefield=MaxPerPage"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		DefaultContentType: mediatype.JSON,
		DevMode:            false,
		CacheControl:       "no-store",
		Negotiation:        NegotiationConfig{Strict406: false},
		Problem: ProblemConfig{
			IncludeTraceID: true,
			TraceHeader:    header.TraceID,
			DefaultType:    "about:blank",
			BaseURI:        problem.DefaultBaseURI,
		},
		Pagination: PaginationConfig{
			MaxPerPage:     100,
			DefaultPerPage: 20,
		},
	}
}

// ConfigFromMap decodes settings from a nested map onto [DefaultConfig].
// Keys follow the file layout ("negotiation" -> "strict_406"); dotted keys
// such as "pagination.max_per_page" are expanded first. Values are weakly
// typed, so "true" and "25" decode into bool and int fields.
func ConfigFromMap(values map[string]any) (Config, error) {
	cfg := DefaultConfig()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, &ConfigError{Source: "config map", Operation: "create decoder", Err: err}
	}

	if err = decoder.Decode(expandDotted(values)); err != nil {
		return cfg, &ConfigError{Source: "config map", Operation: "decode", Err: err}
	}

	if err = cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// expandDotted turns {"a.b": v} into {"a": {"b": v}}. Nested maps already
// present are merged with the expanded keys.
func expandDotted(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		parts := strings.Split(key, ".")
		node := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := node[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				node[part] = next
			}
			node = next
		}

		leaf := parts[len(parts)-1]
		if nested, ok := value.(map[string]any); ok {
			if existing, isMap := node[leaf].(map[string]any); isMap {
				for k, v := range expandDotted(nested) {
					existing[k] = v
				}

				continue
			}
			value = expandDotted(nested)
		}
		node[leaf] = value
	}

	return out
}

// LoadConfig reads settings from a YAML, TOML or JSON file. Environment
// variables in path are expanded. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), &ConfigError{Source: "config file", Field: path, Operation: "read", Err: err}
	}

	values := make(map[string]any)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &values)
	case ".toml":
		err = toml.Unmarshal(data, &values)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&values)
	default:
		err = fmt.Errorf("%w: unsupported config file extension %q", ErrInvalidConfig, ext)
	}
	if err != nil {
		return DefaultConfig(), &ConfigError{Source: "config file", Field: path, Operation: "parse", Err: err}
	}

	return ConfigFromMap(values)
}

// Merge returns c with every non-zero field of override applied on top.
// Zero values in override (false, "", 0) leave c unchanged.
func (c Config) Merge(override Config) (Config, error) {
	merged := c
	if err := mergo.Merge(&merged, override, mergo.WithOverride); err != nil {
		return c, &ConfigError{Source: "config", Operation: "merge", Err: err}
	}

	return merged, nil
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ConfigError{
			Source:    "config",
			Field:     strings.TrimPrefix(fe.Namespace(), "Config."),
			Operation: "validate",
			Err:       fmt.Errorf("%w: failed %q check", ErrInvalidConfig, fe.Tag()),
		}
	}

	return &ConfigError{Source: "config", Operation: "validate", Err: err}
}
