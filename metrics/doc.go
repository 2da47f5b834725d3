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

// Package metrics records response-construction metrics with OpenTelemetry.
//
// A [Recorder] owns three counters:
//
//	respond.negotiations  {content_type, outcome}   Accept header negotiations
//	respond.responses     {status, content_type}    responses built
//	respond.problems      {status, type}            problem responses built
//
// Every counter also carries service.name and service.version attributes.
//
// # Providers
//
// Prometheus is the default. The exporter writes to a private registry
// exposed through [Recorder.Handler], so several recorders can coexist:
//
//	recorder := metrics.MustNew(metrics.WithServiceName("orders-api"))
//	mux.Handle("/metrics", recorder.MustHandler())
//
// [WithOTLP] pushes to an OTLP/HTTP collector, [WithStdout] writes periodic
// JSON dumps (handy in development) and [WithMeterProvider] records into a
// provider managed by the application.
//
// A nil *Recorder is valid and records nothing, so callers never need to
// guard metric calls.
package metrics
