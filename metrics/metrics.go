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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/respond/telemetry/semconv"
)

// Provider identifies the metrics backend.
type Provider string

const (
	// PrometheusProvider exports through a Prometheus scrape handler.
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes to an OTLP/HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider writes periodic JSON dumps to a writer.
	StdoutProvider Provider = "stdout"
	// CustomProvider records into an application-supplied meter provider.
	CustomProvider Provider = "custom"
)

const (
	meterName = "rivaas.dev/respond"

	defaultExportInterval = 30 * time.Second
)

// Outcomes of a negotiation, used as the "outcome" attribute.
const (
	OutcomeMatched  = "matched"
	OutcomeDefault  = "default"
	OutcomeRejected = "rejected"
)

var (
	// ErrConflictingProviders indicates more than one provider option.
	ErrConflictingProviders = errors.New("conflicting metrics providers")

	// ErrNoHandler indicates [Recorder.Handler] was called on a recorder that
	// does not export through Prometheus.
	ErrNoHandler = errors.New("metrics handler is only available with the Prometheus provider")
)

// Recorder records response metrics. It is safe for concurrent use.
type Recorder struct {
	provider         Provider
	providerSetCount int

	serviceName    string
	serviceVersion string
	exportInterval time.Duration
	otlpEndpoint   string
	stdoutWriter   io.Writer
	logger         *slog.Logger

	meterProvider metric.MeterProvider
	sdkProvider   *sdkmetric.MeterProvider
	promRegistry  *promclient.Registry
	promHandler   http.Handler
	commonAttrs   []attribute.KeyValue
	negotiations  metric.Int64Counter
	responses     metric.Int64Counter
	problems      metric.Int64Counter
}

// Option configures a [Recorder].
type Option func(*Recorder)

// New creates a Recorder. Without a provider option it exports through
// Prometheus.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:       PrometheusProvider,
		serviceName:    "rivaas-respond",
		exportInterval: defaultExportInterval,
		stdoutWriter:   os.Stdout,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.providerSetCount > 1 {
		return nil, ErrConflictingProviders
	}

	if err := r.initializeProvider(); err != nil {
		return nil, err
	}

	r.commonAttrs = []attribute.KeyValue{
		attribute.String(semconv.ServiceName, r.serviceName),
		attribute.String(semconv.ServiceVersion, r.serviceVersion),
	}

	if err := r.initializeInstruments(); err != nil {
		return nil, err
	}

	r.logger.Debug("metrics recorder initialized", "provider", string(r.provider))

	return r, nil
}

// MustNew creates a Recorder or panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic("metrics initialization failed: " + err.Error())
	}

	return r
}

func (r *Recorder) initializeInstruments() error {
	meter := r.meterProvider.Meter(meterName)

	var err error
	if r.negotiations, err = meter.Int64Counter("respond.negotiations",
		metric.WithDescription("Accept header negotiations by outcome")); err != nil {
		return fmt.Errorf("failed to create negotiations counter: %w", err)
	}
	if r.responses, err = meter.Int64Counter("respond.responses",
		metric.WithDescription("Responses built by status and content type")); err != nil {
		return fmt.Errorf("failed to create responses counter: %w", err)
	}
	if r.problems, err = meter.Int64Counter("respond.problems",
		metric.WithDescription("Problem responses built by status and type")); err != nil {
		return fmt.Errorf("failed to create problems counter: %w", err)
	}

	return nil
}

func (r *Recorder) attrs(extra ...attribute.KeyValue) metric.MeasurementOption {
	all := make([]attribute.KeyValue, 0, len(r.commonAttrs)+len(extra))
	all = append(all, r.commonAttrs...)
	all = append(all, extra...)

	return metric.WithAttributes(all...)
}

// RecordNegotiation counts one negotiation. contentType is the selected
// type, empty when none was selected.
func (r *Recorder) RecordNegotiation(ctx context.Context, contentType, outcome string) {
	if r == nil {
		return
	}
	r.negotiations.Add(ctx, 1, r.attrs(
		attribute.String(semconv.ContentType, contentType),
		attribute.String(semconv.NegotiationOutcome, outcome),
	))
}

// RecordResponse counts one built response.
func (r *Recorder) RecordResponse(ctx context.Context, status int, contentType string) {
	if r == nil {
		return
	}
	r.responses.Add(ctx, 1, r.attrs(
		attribute.String(semconv.Status, strconv.Itoa(status)),
		attribute.String(semconv.ContentType, contentType),
	))
}

// RecordProblem counts one problem response.
func (r *Recorder) RecordProblem(ctx context.Context, status int, problemType string) {
	if r == nil {
		return
	}
	r.problems.Add(ctx, 1, r.attrs(
		attribute.String(semconv.Status, strconv.Itoa(status)),
		attribute.String(semconv.ProblemType, problemType),
	))
}

// Provider returns the configured provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// ServiceName returns the service.name attribute value.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.promHandler == nil {
		return nil, fmt.Errorf("%w (provider %s)", ErrNoHandler, r.provider)
	}

	return r.promHandler, nil
}

// MustHandler returns the Prometheus scrape handler or panics.
func (r *Recorder) MustHandler() http.Handler {
	h, err := r.Handler()
	if err != nil {
		panic(err)
	}

	return h
}

// ForceFlush exports pending measurements of push-based providers.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r == nil || r.sdkProvider == nil {
		return nil
	}

	return r.sdkProvider.ForceFlush(ctx)
}

// Shutdown flushes and stops the meter provider owned by the recorder.
// Application-supplied providers are left running.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || r.sdkProvider == nil {
		return nil
	}

	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down meter provider: %w", err)
	}

	return nil
}
