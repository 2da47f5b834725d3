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
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/respond/logging"
	"rivaas.dev/respond/mediatype"
	"rivaas.dev/respond/problem"
	"rivaas.dev/respond/telemetry/semconv"
)

// FromError classifies err and renders it as application/problem+json.
//
// Members of extra are merged over the classifier's extensions. The error
// reference is copied to the trace header when trace ids are enabled. The
// failure is logged (error level for 5xx, warn otherwise), recorded on the
// span active in ctx and counted in metrics.
func (b *Builder) FromError(ctx context.Context, err error, instance string, extra map[string]any) (*Response, error) {
	if ctx == nil {
		ctx = b.context()
	}

	rec := b.classifier.Map(err, b.cfg.DevMode)
	rec.Instance = instance
	if len(extra) > 0 {
		rec = rec.WithExtensions(extra)
	}
	if rec.Type == "" {
		rec.Type = b.cfg.Problem.DefaultType
	}

	scoped := *b
	scoped.ctx = ctx
	scoped.logShadowed(ctx, rec)

	resp, mkErr := scoped.Make(rec.Payload(), rec.Status, mediatype.ProblemJSON, nil)
	if mkErr != nil {
		return nil, mkErr
	}

	ref := rec.ErrorRef()
	if b.cfg.Problem.IncludeTraceID && ref != "" {
		resp.Header.Set(b.cfg.Problem.TraceHeader, ref)
	}

	b.reportProblem(ctx, err, rec)

	return resp, nil
}

func (b *Builder) reportProblem(ctx context.Context, err error, rec problem.Record) {
	level := slog.LevelWarn
	if rec.Status >= 500 {
		level = slog.LevelError
	}

	attrs := []any{
		semconv.ProblemStatus, rec.Status,
		semconv.ProblemType, rec.Type,
		semconv.ErrorRef, rec.ErrorRef(),
	}
	if rec.Instance != "" {
		attrs = append(attrs, semconv.ProblemInstance, rec.Instance)
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	logging.WithTrace(ctx, b.logger).Log(ctx, level, "problem response", attrs...)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		if err != nil {
			span.RecordError(err, trace.WithAttributes(
				attribute.String(semconv.ProblemType, rec.Type),
				attribute.String(semconv.ErrorRef, rec.ErrorRef()),
			))
		}
		span.SetAttributes(attribute.Int(semconv.HTTPResponseStatusCode, rec.Status))
		if rec.Status >= 500 {
			span.SetStatus(codes.Error, rec.Title)
		}
	}

	b.metrics.RecordProblem(ctx, rec.Status, rec.Type)
}
