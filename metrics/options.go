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

package metrics

import (
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

func setProvider(r *Recorder, p Provider) {
	r.provider = p
	r.providerSetCount++
}

// WithPrometheus exports through a private Prometheus registry (default).
func WithPrometheus() Option {
	return func(r *Recorder) { setProvider(r, PrometheusProvider) }
}

// WithOTLP pushes to an OTLP/HTTP collector. An "http://" endpoint disables
// TLS. An empty endpoint uses the exporter's environment defaults.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		setProvider(r, OTLPProvider)
		r.otlpEndpoint = endpoint
	}
}

// WithStdout writes periodic JSON dumps to w (stdout when nil).
func WithStdout(w io.Writer) Option {
	return func(r *Recorder) {
		setProvider(r, StdoutProvider)
		if w != nil {
			r.stdoutWriter = w
		}
	}
}

// WithMeterProvider records into an application-managed provider. The
// recorder never shuts it down.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		setProvider(r, CustomProvider)
		r.meterProvider = provider
	}
}

// WithServiceName sets the service.name attribute.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets the service.version attribute.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) { r.serviceVersion = version }
}

// WithExportInterval sets the push interval of OTLP and stdout providers.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		if interval > 0 {
			r.exportInterval = interval
		}
	}
}

// WithLogger sets the logger for internal diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}
