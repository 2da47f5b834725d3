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
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"rivaas.dev/respond/format"
	"rivaas.dev/respond/header"
	"rivaas.dev/respond/logging"
	"rivaas.dev/respond/mediatype"
	"rivaas.dev/respond/metrics"
	"rivaas.dev/respond/problem"
)

// Builder assembles responses. It is safe for concurrent use once built;
// [Builder.For] returns request-scoped copies.
type Builder struct {
	cfg        Config
	registry   *format.Registry
	extra      []format.Formatter
	classifier *problem.Classifier
	logger     *slog.Logger
	metrics    *metrics.Recorder

	// request scope, set by For
	ctx         context.Context
	contentType string
}

// New creates a Builder with [DefaultConfig] and the default formatters.
func New(opts ...Option) (*Builder, error) {
	b := &Builder{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	if b.registry == nil {
		b.registry = format.NewDefaultRegistry()
	}
	for _, f := range b.extra {
		b.registry.Register(f)
	}
	b.extra = nil

	if b.classifier == nil {
		b.classifier = problem.New(problem.WithBaseURI(b.cfg.Problem.BaseURI))
	}
	if b.logger == nil {
		b.logger = logging.Discard()
	}

	return b, nil
}

// MustNew creates a Builder or panics on error.
func MustNew(opts ...Option) *Builder {
	b, err := New(opts...)
	if err != nil {
		panic("respond: builder initialization failed: " + err.Error())
	}

	return b
}

// Config returns a copy of the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Registry returns the formatter registry.
func (b *Builder) Registry() *format.Registry {
	return b.registry
}

// For returns a copy of b scoped to r: the content type chosen by
// [Negotiation] becomes the default, and r's context is used for logging,
// tracing and metrics.
func (b *Builder) For(r *http.Request) *Builder {
	scoped := *b
	scoped.ctx = r.Context()
	if ct, ok := ContentTypeFromContext(r.Context()); ok {
		scoped.contentType = ct
	}

	return &scoped
}

func (b *Builder) context() context.Context {
	if b.ctx != nil {
		return b.ctx
	}

	return context.Background()
}

// resolveContentType picks the explicit type, then the negotiated one,
// then the configured default.
func (b *Builder) resolveContentType(contentType string) string {
	switch {
	case contentType != "":
		return mediatype.Normalize(contentType)
	case b.contentType != "":
		return b.contentType
	default:
		return mediatype.Normalize(b.cfg.DefaultContentType)
	}
}

func checkStatus(status int) error {
	if status < 100 || status > 599 {
		return fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}

	return nil
}

// Make serializes payload with the formatter registered for contentType
// (or the default) and returns the response. Caller headers are merged
// after Content-Type and Cache-Control; a caller Content-Type is ignored
// and values containing CR or LF are dropped.
func (b *Builder) Make(payload any, status int, contentType string, headers http.Header) (*Response, error) {
	if err := checkStatus(status); err != nil {
		return nil, err
	}

	ct := b.resolveContentType(contentType)
	f, ok := b.registry.Get(ct)
	if !ok {
		return nil, &ConfigError{
			Source:    "registry",
			Field:     ct,
			Operation: "resolve formatter",
			Err:       ErrNoFormatter,
		}
	}

	body, err := f.Format(payload)
	if err != nil {
		return nil, err
	}

	resp := b.newResponse(status, f.ContentType(), headers)
	resp.Body = bytes.NewReader(body)
	b.metrics.RecordResponse(b.context(), status, mediatype.Base(f.ContentType()))

	return resp, nil
}

// newResponse creates a response with Content-Type, the default
// Cache-Control and the safe caller headers.
func (b *Builder) newResponse(status int, contentType string, headers http.Header) *Response {
	resp := &Response{Status: status, Header: make(http.Header)}
	if contentType != "" {
		resp.Header.Set(header.ContentType, contentType)
	}
	if b.cfg.CacheControl != "" && headers.Get(header.CacheControl) == "" {
		resp.Header.Set(header.CacheControl, b.cfg.CacheControl)
	}
	b.mergeHeaders(resp.Header, headers)

	return resp
}

func (b *Builder) mergeHeaders(dst, src http.Header) {
	for name, values := range src {
		key := http.CanonicalHeaderKey(name)
		if key == header.ContentType {
			continue
		}
		if !header.IsSafe(key) {
			b.logger.DebugContext(b.context(), "dropping unsafe header", "header", name)
			continue
		}

		safe := make([]string, 0, len(values))
		for _, v := range values {
			if header.IsSafe(v) {
				safe = append(safe, v)
				continue
			}
			b.logger.DebugContext(b.context(), "dropping unsafe header value", "header", key)
		}

		switch len(safe) {
		case 0:
		case 1:
			dst.Set(key, safe[0])
		default:
			for _, v := range safe {
				dst.Add(key, v)
			}
		}
	}
}

// Success returns {"status":"success","data":data}. A zero status means 200.
func (b *Builder) Success(data any, status int, contentType string) (*Response, error) {
	if status == 0 {
		status = http.StatusOK
	}

	return b.Make(Envelope{Status: StatusSuccess, Data: data}, status, contentType, nil)
}

// Error returns {"status":"error","message":message,"errors":errs}. The
// errors member is omitted when errs is empty. A zero status means 400.
func (b *Builder) Error(message string, status int, errs map[string]any, contentType string) (*Response, error) {
	if status == 0 {
		status = http.StatusBadRequest
	}

	env := ErrorEnvelope{Status: StatusError, Message: message}
	if len(errs) > 0 {
		env.Errors = errs
	}

	return b.Make(env, status, contentType, nil)
}

// Paginated returns one page of items with its metadata. Inputs are
// clamped: total >= 0, page >= 1, perPage >= 1. The meta describes the
// page as given; use [Builder.PageParams] to bound query input. The status
// is always 200.
func (b *Builder) Paginated(items any, total, page, perPage int, contentType string) (*Response, error) {
	env := PaginatedEnvelope{
		Status: StatusSuccess,
		Meta:   NewMeta(total, page, perPage),
		Data:   items,
	}

	return b.Make(env, http.StatusOK, contentType, nil)
}

// Created returns a 201 success envelope with a Location header.
func (b *Builder) Created(location string, data any, contentType string) (*Response, error) {
	headers := http.Header{header.Location: []string{location}}

	return b.Make(Envelope{Status: StatusSuccess, Data: data}, http.StatusCreated, contentType, headers)
}

// NoContent returns a 204 response with only the default Cache-Control.
func (b *Builder) NoContent() *Response {
	resp := b.newResponse(http.StatusNoContent, "", nil)
	b.metrics.RecordResponse(b.context(), http.StatusNoContent, "")

	return resp
}

// Problem returns an application/problem+json response. Extensions become
// top-level members but never replace type, title, status, detail or
// instance. An empty typ uses the configured default type.
func (b *Builder) Problem(typ, title string, status int, detail, instance string, extensions map[string]any) (*Response, error) {
	if typ == "" {
		typ = b.cfg.Problem.DefaultType
	}
	if title == "" {
		title = http.StatusText(status)
	}

	rec := problem.Record{
		Type:       typ,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: extensions,
	}

	b.logShadowed(b.context(), rec)

	return b.Make(rec.Payload(), status, mediatype.ProblemJSON, nil)
}

func (b *Builder) logShadowed(ctx context.Context, rec problem.Record) {
	if keys := rec.ShadowedExtensions(); len(keys) > 0 {
		b.logger.DebugContext(ctx, "dropping extensions that shadow standard problem members", "extensions", keys)
	}
}
