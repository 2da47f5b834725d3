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

// Package tracing sets up OpenTelemetry tracing for services that build
// responses with respond, and provides net/http middleware that opens one
// server span per request.
//
// Problem responses built by [rivaas.dev/respond.Builder.FromError] record
// the error on the span active in the request context, so installing
// [Middleware] in front of the handlers is enough for failed requests to show
// up as failed spans carrying their error reference.
//
// # Basic Usage
//
//	tracer, err := tracing.New(
//	    tracing.WithServiceName("orders"),
//	    tracing.WithServiceVersion("v1.4.0"),
//	    tracing.WithOTLPHTTP("http://collector:4318"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tracer.Shutdown(context.Background())
//
//	handler := tracing.Middleware(tracer, tracing.WithExcludePaths("/healthz"))(mux)
//
// # Providers
//
//   - NoopProvider (default): spans are created but never exported
//   - StdoutProvider: writes spans as JSON, for development
//   - OTLPProvider: exports over OTLP/gRPC
//   - OTLPHTTPProvider: exports over OTLP/HTTP
//   - CustomProvider: uses a caller-supplied TracerProvider
package tracing
