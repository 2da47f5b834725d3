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

// Package respond builds HTTP responses: success, error and paginated
// envelopes, RFC 9457 problem details, streams and file downloads, in any
// representation registered with a [format.Registry].
//
// # Quick Start
//
//	b := respond.MustNew()
//
//	mux.Handle("GET /users/{id}", b.Handle(func(w http.ResponseWriter, r *http.Request) error {
//		user, err := store.Find(r.Context(), r.PathValue("id"))
//		if err != nil {
//			return err // becomes a problem+json response
//		}
//		resp, err := b.For(r).Success(user, http.StatusOK, "")
//		if err != nil {
//			return err
//		}
//		return resp.Write(w)
//	}))
//
//	handler := respond.Negotiation(b)(respond.Recover(b)(mux))
//
// # Content Negotiation
//
// [Negotiation] parses the Accept header against the builder's registry and
// stores the chosen type in the request context. [Builder.For] returns a
// builder whose default content type is that negotiated type, so handlers
// render in the client's preferred format without naming it. Explicit
// content type arguments ("csv", "application/xml") always win.
//
// # Problems
//
// [Builder.FromError] classifies any error with a [problem.Classifier] and
// renders it as application/problem+json. The error reference is exposed in
// the X-Trace-Id header (configurable) so clients can quote it to support.
// Server errors hide their message unless the builder runs in debug mode.
//
// # Configuration
//
// A [Config] can be built in code, decoded from a map with [ConfigFromMap],
// or loaded from a YAML, TOML or JSON file with [LoadConfig]:
//
//	cfg, err := respond.LoadConfig("config/respond.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	b, err := respond.New(respond.WithConfig(cfg))
package respond
