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

package tracing

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func setProvider(t *Tracer, p Provider) {
	t.provider = p
	t.providerSetCount++
}

// WithStdout writes spans as JSON to w, or to stdout when w is nil.
func WithStdout(w io.Writer) Option {
	return func(t *Tracer) {
		setProvider(t, StdoutProvider)
		if w != nil {
			t.stdoutWriter = w
		}
	}
}

// WithOTLP exports spans over OTLP/gRPC to endpoint ("host:port").
func WithOTLP(endpoint string, insecure bool) Option {
	return func(t *Tracer) {
		setProvider(t, OTLPProvider)
		t.otlpEndpoint = endpoint
		t.otlpInsecure = insecure
	}
}

// WithOTLPHTTP exports spans over OTLP/HTTP. An "http://" endpoint
// disables TLS.
func WithOTLPHTTP(endpoint string) Option {
	return func(t *Tracer) {
		setProvider(t, OTLPHTTPProvider)
		t.otlpEndpoint = endpoint
	}
}

// WithTracerProvider uses provider instead of creating one. The caller
// keeps ownership: [Tracer.Shutdown] does not stop it.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(t *Tracer) {
		setProvider(t, CustomProvider)
		t.tracerProvider = provider
	}
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracer) {
		t.serviceName = name
	}
}

// WithServiceVersion sets the service.version resource attribute.
func WithServiceVersion(version string) Option {
	return func(t *Tracer) {
		t.serviceVersion = version
	}
}

// WithSampleRate samples the given fraction of new traces. Child spans
// follow their parent's decision.
func WithSampleRate(rate float64) Option {
	return func(t *Tracer) {
		t.sampleRate = rate
	}
}

// WithPropagator replaces the W3C trace context and baggage propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(t *Tracer) {
		if p != nil {
			t.propagator = p
		}
	}
}

// WithLogger sets the logger for provider lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracer) {
		if logger != nil {
			t.logger = logger
		}
	}
}
