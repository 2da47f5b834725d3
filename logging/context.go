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

package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/respond/telemetry/semconv"
)

// Semantic convention field names for trace correlation.
const (
	FieldTraceID = semconv.TraceID
	FieldSpanID  = semconv.SpanID
)

// TraceIDs returns the trace and span IDs of the span active in ctx, or
// empty strings when there is none.
func TraceIDs(ctx context.Context) (traceID, spanID string) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", ""
	}

	return sc.TraceID().String(), sc.SpanID().String()
}

// WithTrace returns logger with trace_id and span_id attributes when ctx
// carries a valid span, and logger unchanged otherwise.
func WithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	traceID, spanID := TraceIDs(ctx)
	if traceID == "" {
		return logger
	}

	return logger.With(FieldTraceID, traceID, FieldSpanID, spanID)
}
