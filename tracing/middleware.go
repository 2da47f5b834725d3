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
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/respond/telemetry/semconv"
)

// MiddlewareOption configures [Middleware].
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	excludePaths    []string
	excludePrefixes []string
	recordHeaders   []string
}

// WithExcludePaths skips tracing for requests whose path equals one of paths.
func WithExcludePaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.excludePaths = append(c.excludePaths, paths...)
	}
}

// WithExcludePrefixes skips tracing for requests whose path starts with one
// of prefixes.
func WithExcludePrefixes(prefixes ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.excludePrefixes = append(c.excludePrefixes, prefixes...)
	}
}

// WithHeaders records the given request headers as span attributes
// ("http.request.header.<name>").
func WithHeaders(headers ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		for _, h := range headers {
			c.recordHeaders = append(c.recordHeaders, strings.ToLower(h))
		}
	}
}

func (c *middlewareConfig) excluded(path string) bool {
	if slices.Contains(c.excludePaths, path) {
		return true
	}

	for _, p := range c.excludePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

// Middleware opens a server span for every request, continuing any trace
// propagated in the request headers. The span is named "METHOD /path" and
// is marked as failed for 5xx responses.
//
// Example:
//
//	handler := tracing.Middleware(tracer)(respond.Recover(b)(mux))
func Middleware(t *Tracer, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if t == nil || cfg.excluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := t.startRequestSpan(r, cfg)
			rw := &responseWriter{ResponseWriter: w}

			next.ServeHTTP(rw, r.WithContext(ctx))

			finishRequestSpan(span, rw.StatusCode())
		})
	}
}

func (t *Tracer) startRequestSpan(r *http.Request, cfg *middlewareConfig) (context.Context, trace.Span) {
	ctx := t.Extract(r.Context(), r.Header)

	ctx, span := t.Tracer().Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
	if !span.IsRecording() {
		return ctx, span
	}

	attrs := make([]attribute.KeyValue, 0, 6+len(cfg.recordHeaders))
	attrs = append(attrs,
		attribute.String(semconv.HTTPRequestMethod, r.Method),
		attribute.String(semconv.URLPath, r.URL.Path),
		attribute.String(semconv.ServerAddress, r.Host),
		attribute.String(semconv.UserAgent, r.UserAgent()),
		attribute.String(semconv.ServiceName, t.serviceName),
	)
	if accept := r.Header.Get("Accept"); accept != "" {
		attrs = append(attrs, attribute.String(semconv.HTTPRequestHeader+"accept", accept))
	}
	for _, h := range cfg.recordHeaders {
		if v := r.Header.Get(h); v != "" {
			attrs = append(attrs, attribute.String(semconv.HTTPRequestHeader+h, v))
		}
	}
	span.SetAttributes(attrs...)

	return ctx, span
}

func finishRequestSpan(span trace.Span, status int) {
	if span.IsRecording() {
		span.SetAttributes(attribute.Int(semconv.HTTPResponseStatusCode, status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
	}

	span.End()
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.status = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.status = http.StatusOK
		rw.written = true
	}

	return rw.ResponseWriter.Write(b)
}

// StatusCode returns the written status, 200 when the handler wrote none.
func (rw *responseWriter) StatusCode() int {
	if rw.status == 0 {
		return http.StatusOK
	}

	return rw.status
}

// Flush implements http.Flusher.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}

	return nil, nil, errors.New("underlying ResponseWriter does not implement http.Hijacker")
}

// Unwrap returns the wrapped writer for http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
