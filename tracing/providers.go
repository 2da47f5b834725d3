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
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

func (t *Tracer) initializeProvider(ctx context.Context) error {
	var exporter sdktrace.SpanExporter
	var err error

	switch t.provider {
	case CustomProvider:
		t.tracer = t.tracerProvider.Tracer(instrumentationName)
		return nil
	case NoopProvider:
	case StdoutProvider:
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(t.stdoutWriter))
	case OTLPProvider:
		exporter, err = t.newOTLPGRPCExporter(ctx)
	case OTLPHTTPProvider:
		exporter, err = t.newOTLPHTTPExporter(ctx)
	default:
		return fmt.Errorf("unsupported tracing provider: %s", t.provider)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s exporter: %w", t.provider, err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(createResource(t.serviceName, t.serviceVersion)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	t.sdkProvider = sdktrace.NewTracerProvider(opts...)
	t.tracerProvider = t.sdkProvider
	t.tracer = t.sdkProvider.Tracer(instrumentationName)

	t.logger.Info("tracing initialized", "provider", string(t.provider), "service", t.serviceName)

	return nil
}

func (t *Tracer) newOTLPGRPCExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	var opts []otlptracegrpc.Option
	if t.otlpEndpoint != "" {
		opts = append(opts, otlptracegrpc.WithEndpoint(t.otlpEndpoint))
	}
	if t.otlpInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	return otlptracegrpc.New(ctx, opts...)
}

func (t *Tracer) newOTLPHTTPExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	var opts []otlptracehttp.Option
	if t.otlpEndpoint != "" {
		endpoint, insecure := splitEndpoint(t.otlpEndpoint)
		opts = append(opts, otlptracehttp.WithEndpoint(endpoint))
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
	}

	return otlptracehttp.New(ctx, opts...)
}

// splitEndpoint strips the scheme and path of an endpoint URL. insecure is
// true for "http://" endpoints.
func splitEndpoint(endpoint string) (hostPort string, insecure bool) {
	if trimmed, ok := strings.CutPrefix(endpoint, "http://"); ok {
		endpoint, insecure = trimmed, true
	} else {
		endpoint = strings.TrimPrefix(endpoint, "https://")
	}
	if i := strings.IndexByte(endpoint, '/'); i != -1 {
		endpoint = endpoint[:i]
	}

	return endpoint, insecure
}

func createResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		otelsemconv.SchemaURL,
		otelsemconv.ServiceName(serviceName),
		otelsemconv.ServiceVersion(serviceVersion),
	)
}
