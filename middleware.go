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
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/respond/header"
	"rivaas.dev/respond/mediatype"
	"rivaas.dev/respond/metrics"
	"rivaas.dev/respond/negotiate"
	"rivaas.dev/respond/telemetry/semconv"
)

// Negotiation returns middleware that selects the response content type
// from the Accept header and stores it in the request context, where
// [Builder.For] and [ContentTypeFromContext] find it.
//
// A missing Accept header selects the configured default. An Accept header
// that matches no registered formatter selects the default too, unless
// strict negotiation is enabled, in which case the request is answered with
// 406 and the list of supported types.
//
// Example:
//
//	handler := respond.Negotiation(b)(mux)
func Negotiation(b *Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(header.Vary, header.Accept)

			accept := r.Header.Get(header.Accept)
			defaultType := mediatype.Normalize(b.cfg.DefaultContentType)

			chosen, ok := negotiate.Negotiate(accept, b.registry)
			switch {
			case ok:
				b.metrics.RecordNegotiation(r.Context(), chosen, metrics.OutcomeMatched)
			case strings.TrimSpace(accept) == "" || !b.cfg.Negotiation.Strict406:
				chosen = defaultType
				b.metrics.RecordNegotiation(r.Context(), chosen, metrics.OutcomeDefault)
			default:
				b.metrics.RecordNegotiation(r.Context(), "", metrics.OutcomeRejected)
				b.notAcceptable(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithContentType(r.Context(), chosen)))
		})
	}
}

func (b *Builder) notAcceptable(w http.ResponseWriter, r *http.Request) {
	body := "Not Acceptable: Supported content types: " + strings.Join(b.registry.Supported(), ", ")

	w.Header().Set(header.ContentType, mediatype.WithCharset(mediatype.Text, "utf-8"))
	w.Header().Set(header.ContentLength, strconv.Itoa(len(body)))
	if b.cfg.CacheControl != "" {
		w.Header().Set(header.CacheControl, b.cfg.CacheControl)
	}
	w.WriteHeader(http.StatusNotAcceptable)

	if _, err := w.Write([]byte(body)); err != nil {
		b.logger.DebugContext(r.Context(), "failed to write 406 response", "error", err)
	}
	b.metrics.RecordResponse(r.Context(), http.StatusNotAcceptable, mediatype.Text)
}

// Recover returns middleware that turns panics into problem responses. The
// panic value is wrapped in a [*PanicError] carrying the stack, so debug
// responses show where the panic happened. [http.ErrAbortHandler] is
// re-raised.
func Recover(b *Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				if span := trace.SpanFromContext(r.Context()); span.IsRecording() {
					span.SetStatus(codes.Error, "panic recovered")
					span.SetAttributes(
						attribute.Bool(semconv.ExceptionEscaped, true),
						attribute.String(semconv.ExceptionType, fmt.Sprintf("%T", rec)),
					)
				}

				perr := &PanicError{Value: rec, Stack: debug.Stack()}
				b.logger.ErrorContext(r.Context(), "panic recovered", "panic", fmt.Sprint(rec), "path", r.URL.Path)
				b.WriteError(w, r, perr)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Handle adapts a handler that returns an error. A returned error is written
// as a problem response with the request URI as instance.
//
// Example:
//
//	mux.Handle("GET /orders/{id}", b.Handle(func(w http.ResponseWriter, r *http.Request) error {
//		order, err := orders.Find(r.Context(), r.PathValue("id"))
//		if err != nil {
//			return err
//		}
//		resp, err := b.For(r).Success(order, http.StatusOK, "")
//		if err != nil {
//			return err
//		}
//		return resp.Write(w)
//	}))
func (b *Builder) Handle(fn func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			b.WriteError(w, r, err)
		}
	})
}

// WriteError writes err to w as a problem response for r. When the problem
// itself cannot be rendered a plain 500 is written.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	resp, mkErr := b.For(r).FromError(r.Context(), err, r.URL.RequestURI(), nil)
	if mkErr != nil {
		b.logger.ErrorContext(r.Context(), "failed to build problem response", "error", mkErr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if writeErr := resp.Write(w); writeErr != nil {
		b.logger.DebugContext(r.Context(), "failed to write problem response", "error", writeErr)
	}
}
