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

// Package logging builds the structured loggers used by the response builder.
//
// Loggers are plain [slog.Logger] values configured with functional options.
// Sensitive attribute keys (passwords, tokens, authorization headers) are
// redacted before they reach the handler.
//
// # Basic Usage
//
//	logger := logging.MustNew(
//	    logging.WithJSONHandler(),
//	    logging.WithServiceName("orders-api"),
//	    logging.WithLevel(logging.LevelWarn),
//	)
//	builder := respond.New(respond.WithLogger(logger.Logger()))
//
// # Trace Correlation
//
// [WithTrace] adds trace_id and span_id attributes when the context carries
// an active OpenTelemetry span:
//
//	logging.WithTrace(ctx, logger.Logger()).Error("problem response", "status", 500)
//
// [Discard] returns a logger that drops everything; it is the builder's
// default so a library user opts into log output explicitly.
package logging
