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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Provider selects the span exporter.
type Provider string

// Available providers.
const (
	NoopProvider     Provider = "noop"
	StdoutProvider   Provider = "stdout"
	OTLPProvider     Provider = "otlp"
	OTLPHTTPProvider Provider = "otlp-http"
	CustomProvider   Provider = "custom"
)

const instrumentationName = "rivaas.dev/respond/tracing"

var (
	// ErrConflictingProviders indicates more than one provider option.
	ErrConflictingProviders = errors.New("conflicting tracing providers")

	// ErrInvalidSampleRate indicates a sample rate outside [0, 1].
	ErrInvalidSampleRate = errors.New("sample rate must be between 0 and 1")

	// ErrNilTracerProvider indicates WithTracerProvider(nil).
	ErrNilTracerProvider = errors.New("tracer provider cannot be nil")
)

// Tracer owns a tracer provider and the propagator used by [Middleware].
// It is safe for concurrent use.
type Tracer struct {
	provider         Provider
	providerSetCount int

	serviceName    string
	serviceVersion string
	sampleRate     float64
	otlpEndpoint   string
	otlpInsecure   bool
	stdoutWriter   io.Writer
	logger         *slog.Logger

	tracerProvider trace.TracerProvider
	sdkProvider    *sdktrace.TracerProvider
	tracer         trace.Tracer
	propagator     propagation.TextMapPropagator
}

// Option configures a [Tracer].
type Option func(*Tracer)

// New creates a Tracer. Without a provider option spans are not exported.
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		provider:     NoopProvider,
		serviceName:  "rivaas-respond",
		sampleRate:   1.0,
		stdoutWriter: os.Stdout,
		logger:       slog.New(slog.DiscardHandler),
		propagator: propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.validate(); err != nil {
		return nil, fmt.Errorf("invalid tracing configuration: %w", err)
	}

	if err := t.initializeProvider(context.Background()); err != nil {
		return nil, err
	}

	return t, nil
}

// MustNew creates a Tracer or panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic("tracing initialization failed: " + err.Error())
	}

	return t
}

func (t *Tracer) validate() error {
	if t.providerSetCount > 1 {
		return ErrConflictingProviders
	}
	if t.sampleRate < 0 || t.sampleRate > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidSampleRate, t.sampleRate)
	}
	if t.provider == CustomProvider && t.tracerProvider == nil {
		return ErrNilTracerProvider
	}

	return nil
}

// Provider returns the configured provider.
func (t *Tracer) Provider() Provider {
	return t.provider
}

// ServiceName returns the service name recorded on spans.
func (t *Tracer) ServiceName() string {
	return t.serviceName
}

// TracerProvider returns the underlying provider.
func (t *Tracer) TracerProvider() trace.TracerProvider {
	return t.tracerProvider
}

// Tracer returns the tracer used for request spans.
func (t *Tracer) Tracer() trace.Tracer {
	if t == nil || t.tracer == nil {
		return noop.NewTracerProvider().Tracer(instrumentationName)
	}

	return t.tracer
}

// Extract returns ctx with the remote span context found in headers.
func (t *Tracer) Extract(ctx context.Context, headers http.Header) context.Context {
	return t.propagator.Extract(ctx, propagation.HeaderCarrier(headers))
}

// Inject writes the span context of ctx into headers.
func (t *Tracer) Inject(ctx context.Context, headers http.Header) {
	t.propagator.Inject(ctx, propagation.HeaderCarrier(headers))
}

// ForceFlush exports pending spans. It is a no-op for custom and noop
// providers.
func (t *Tracer) ForceFlush(ctx context.Context) error {
	if t == nil || t.sdkProvider == nil {
		return nil
	}

	return t.sdkProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the exporter. It is a no-op for custom
// providers, whose lifecycle belongs to the caller.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.sdkProvider == nil {
		return nil
	}
	if err := t.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("tracer provider shutdown: %w", err)
	}

	return nil
}
