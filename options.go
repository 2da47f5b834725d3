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
	"log/slog"

	"rivaas.dev/respond/format"
	"rivaas.dev/respond/metrics"
	"rivaas.dev/respond/problem"
)

// Option configures a [Builder].
type Option func(*Builder)

// WithConfig replaces the whole configuration. Options applied after it
// still override individual fields.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.cfg = cfg
	}
}

// WithRegistry sets the formatter registry. Defaults to
// [format.NewDefaultRegistry].
func WithRegistry(registry *format.Registry) Option {
	return func(b *Builder) {
		b.registry = registry
	}
}

// WithFormatters registers additional formatters on the builder's registry.
func WithFormatters(formatters ...format.Formatter) Option {
	return func(b *Builder) {
		b.extra = append(b.extra, formatters...)
	}
}

// WithDefaultContentType sets the fallback content type. Short names such
// as "xml" are accepted.
func WithDefaultContentType(contentType string) Option {
	return func(b *Builder) {
		b.cfg.DefaultContentType = contentType
	}
}

// WithCacheControl sets the default Cache-Control value. An empty value
// disables the header.
func WithCacheControl(value string) Option {
	return func(b *Builder) {
		b.cfg.CacheControl = value
	}
}

// WithDebug exposes error details and stack traces in problem responses.
// Never enable it in production.
func WithDebug(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.DevMode = enabled
	}
}

// WithStrictNegotiation answers unsatisfiable Accept headers with 406.
func WithStrictNegotiation(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.Negotiation.Strict406 = enabled
	}
}

// WithTraceHeader sets the header carrying the problem error reference.
func WithTraceHeader(name string) Option {
	return func(b *Builder) {
		b.cfg.Problem.TraceHeader = name
	}
}

// WithClassifier sets the error classifier used by [Builder.FromError].
func WithClassifier(c *problem.Classifier) Option {
	return func(b *Builder) {
		b.classifier = c
	}
}

// WithLogger sets the logger for problem and header diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithMetrics sets the metrics recorder. A nil recorder disables metrics.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(b *Builder) {
		b.metrics = recorder
	}
}
