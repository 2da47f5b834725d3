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

// Package semconv defines the attribute names shared by respond's logs,
// spans and metrics, so that a problem logged by the builder, recorded on a
// span and counted in metrics can be correlated by the same keys.
package semconv

// Service metadata, set once per process.
const (
	ServiceName    = "service.name"
	ServiceVersion = "service.version"
)

// HTTP request and response attributes, following OpenTelemetry semantic
// conventions.
const (
	HTTPRequestMethod      = "http.request.method"
	HTTPResponseStatusCode = "http.response.status_code"
	HTTPRequestHeader      = "http.request.header." // prefix, followed by the lowercased header name
	URLPath                = "url.path"
	ServerAddress          = "server.address"
	UserAgent              = "user_agent.original"
)

// Trace correlation fields added to log records.
const (
	TraceID = "trace_id"
	SpanID  = "span_id"
)

// Response construction attributes.
const (
	// ContentType is the base media type of a built response or of the type
	// selected by negotiation.
	ContentType = "content_type"

	// NegotiationOutcome is "matched", "default" or "rejected".
	NegotiationOutcome = "outcome"

	// Status is the HTTP status as a metric label.
	Status = "status"
)

// Problem attributes.
const (
	ProblemType     = "problem.type"
	ProblemStatus   = "problem.status"
	ProblemInstance = "problem.instance"
	ErrorRef        = "problem.error_ref"
)

// Exception attributes set on spans for recovered panics.
const (
	ExceptionType    = "exception.type"
	ExceptionEscaped = "exception.escaped"
)
