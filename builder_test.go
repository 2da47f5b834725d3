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

//go:build !integration

package respond

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/respond/format"
	"rivaas.dev/respond/mediatype"
	"rivaas.dev/respond/problem"
)

const testErrorRef = "0123456789abcdef"

// newTestBuilder returns a builder whose error references are fixed.
func newTestBuilder(t *testing.T, opts ...Option) *Builder {
	t.Helper()

	classifier := problem.New(problem.WithErrorRefGenerator(func() string { return testErrorRef }))
	b, err := New(append([]Option{WithClassifier(classifier)}, opts...)...)
	require.NoError(t, err)

	return b
}

func readBody(t *testing.T, resp *Response) []byte {
	t.Helper()

	body, err := resp.Bytes()
	require.NoError(t, err)

	return body
}

func decodeBody(t *testing.T, resp *Response) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(readBody(t, resp), &m))

	return m
}

func TestBuilder_SuccessEndToEnd(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)

	resp, err := b.Success(map[string]any{"id": 1, "name": "John"}, 0, "")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Regexp(t, `^application/json`, resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	body := string(readBody(t, resp))
	assert.Contains(t, body, `"status":"success"`)
	assert.Contains(t, body, `"data":{"id":1,"name":"John"}`)
}

func TestBuilder_SuccessFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		wantType    string
		wantBody    string
	}{
		{name: "short json", contentType: "json", wantType: "application/json; charset=utf-8", wantBody: `"status":"success"`},
		{name: "xml", contentType: "xml", wantType: "application/xml", wantBody: "<status>success</status>"},
		{name: "yaml", contentType: "application/yaml", wantType: "application/yaml; charset=utf-8", wantBody: "status: success"},
		{name: "parameters ignored", contentType: "application/json; charset=latin1", wantType: "application/json; charset=utf-8", wantBody: `"data":"ok"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newTestBuilder(t)
			resp, err := b.Success("ok", http.StatusOK, tt.contentType)
			require.NoError(t, err)

			assert.Equal(t, tt.wantType, resp.Header.Get("Content-Type"))
			assert.Contains(t, string(readBody(t, resp)), tt.wantBody)
		})
	}
}

func TestBuilder_MakeErrors(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)

	t.Run("no formatter", func(t *testing.T) {
		t.Parallel()

		_, err := b.Make("x", http.StatusOK, "application/vnd.unknown", nil)
		require.ErrorIs(t, err, ErrNoFormatter)

		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "application/vnd.unknown", cfgErr.Field)
		assert.Contains(t, err.Error(), "config error in registry.application/vnd.unknown during resolve formatter")
	})

	t.Run("serialization", func(t *testing.T) {
		t.Parallel()

		_, err := b.Make(42, http.StatusOK, "csv", nil)
		require.ErrorIs(t, err, format.ErrSerialization)
		require.ErrorIs(t, err, format.ErrUnsupportedPayload)
	})

	t.Run("invalid status", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{0, 99, 600, -1} {
			_, err := b.Make("x", status, "", nil)
			require.ErrorIs(t, err, ErrInvalidStatus, "status %d", status)
		}
	})
}

func TestBuilder_MakeHeaders(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)

	resp, err := b.Make("x", http.StatusAccepted, "", http.Header{
		"Content-Type":  {"text/html"},
		"Cache-Control": {"max-age=60"},
		"X-Single":      {"one"},
		"X-Multi":       {"a", "b"},
		"X-Injected":    {"ok\r\nSet-Cookie: evil=1"},
		"X-Partly":      {"good", "bad\nvalue"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, []string{"max-age=60"}, resp.Header.Values("Cache-Control"))
	assert.Equal(t, "one", resp.Header.Get("X-Single"))
	assert.Equal(t, []string{"a", "b"}, resp.Header.Values("X-Multi"))
	assert.Empty(t, resp.Header.Values("X-Injected"))
	assert.Empty(t, resp.Header.Values("Set-Cookie"))
	assert.Equal(t, []string{"good"}, resp.Header.Values("X-Partly"))
}

func TestBuilder_CacheControlDisabled(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithCacheControl(""))

	resp, err := b.Success(nil, 0, "")
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Cache-Control"))
}

func TestBuilder_Error(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)

	t.Run("with errors", func(t *testing.T) {
		t.Parallel()

		resp, err := b.Error("invalid input", http.StatusUnprocessableEntity,
			map[string]any{"email": []string{"is required"}}, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)

		body := decodeBody(t, resp)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "invalid input", body["message"])
		assert.Equal(t, map[string]any{"email": []any{"is required"}}, body["errors"])
	})

	t.Run("without errors", func(t *testing.T) {
		t.Parallel()

		resp, err := b.Error("bad request", 0, nil, "")
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.Status)

		body := decodeBody(t, resp)
		assert.NotContains(t, body, "errors")
	})
}

func TestBuilder_Paginated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		total   int
		page    int
		perPage int
		want    Meta
	}{
		{name: "exact pages", total: 25, page: 1, perPage: 5, want: Meta{Total: 25, Page: 1, PerPage: 5, Pages: 5}},
		{name: "partial last page", total: 26, page: 2, perPage: 5, want: Meta{Total: 26, Page: 2, PerPage: 5, Pages: 6}},
		{name: "empty", total: 0, page: 1, perPage: 5, want: Meta{Total: 0, Page: 1, PerPage: 5, Pages: 0}},
		{name: "negative page", total: 10, page: -3, perPage: 5, want: Meta{Total: 10, Page: 1, PerPage: 5, Pages: 2}},
		{name: "negative total", total: -4, page: 1, perPage: 5, want: Meta{Total: 0, Page: 1, PerPage: 5, Pages: 0}},
		{name: "zero per page", total: 3, page: 1, perPage: 0, want: Meta{Total: 3, Page: 1, PerPage: 1, Pages: 3}},
		{name: "per page above config max", total: 1000, page: 1, perPage: 250, want: Meta{Total: 1000, Page: 1, PerPage: 250, Pages: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := newTestBuilder(t)
			resp, err := b.Paginated([]int{1, 2}, tt.total, tt.page, tt.perPage, "")
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.Status)

			var env struct {
				Status string `json:"status"`
				Meta   Meta   `json:"meta"`
				Data   []int  `json:"data"`
			}
			require.NoError(t, json.Unmarshal(readBody(t, resp), &env))
			assert.Equal(t, "success", env.Status)
			assert.Equal(t, tt.want, env.Meta)
			assert.Equal(t, []int{1, 2}, env.Data)
		})
	}
}

func TestBuilder_PaginatedMetaKeys(t *testing.T) {
	t.Parallel()

	resp, err := newTestBuilder(t).Paginated([]string{}, 1, 1, 1, "")
	require.NoError(t, err)

	meta, ok := decodeBody(t, resp)["meta"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"total", "page", "per_page", "pages"}, keys(meta))
}

func TestBuilder_Created(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)

	resp, err := b.Created("/users/42", map[string]any{"id": 42}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "/users/42", resp.Header.Get("Location"))
	assert.Equal(t, map[string]any{"id": float64(42)}, decodeBody(t, resp)["data"])

	resp, err = b.Created("/users/1\r\nX-Evil: 1", nil, "")
	require.NoError(t, err)
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestBuilder_NoContent(t *testing.T) {
	t.Parallel()

	resp := newTestBuilder(t).NoContent()

	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Nil(t, resp.Body)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Empty(t, resp.Header.Get("Content-Type"))

	rec := httptest.NewRecorder()
	require.NoError(t, resp.Write(rec))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBuilder_ForUsesNegotiatedType(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithContentType(req.Context(), mediatype.XML))

	scoped := b.For(req)

	resp, err := scoped.Success("ok", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "application/xml", resp.Header.Get("Content-Type"))

	resp, err = scoped.Success("ok", 0, "json")
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"), "explicit type wins")

	resp, err = b.Success("ok", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"), "original builder unchanged")
}

func TestBuilder_DefaultContentTypeOption(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithDefaultContentType("text"))

	resp, err := b.Make("hello", http.StatusOK, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "hello", string(readBody(t, resp)))
}

type upperFormatter struct{}

func (upperFormatter) ContentType() string { return "application/vnd.upper" }

func (upperFormatter) Format(payload any) ([]byte, error) {
	return []byte("UPPER"), nil
}

func TestBuilder_WithFormatters(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithFormatters(upperFormatter{}))

	resp, err := b.Make("x", http.StatusOK, "application/vnd.upper", nil)
	require.NoError(t, err)
	assert.Equal(t, "UPPER", string(readBody(t, resp)))
	assert.Contains(t, b.Registry().Supported(), "application/vnd.upper")
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Pagination.MaxPerPage = 0

	_, err := New(WithConfig(cfg))
	require.ErrorIs(t, err, ErrInvalidConfig)

	assert.Panics(t, func() {
		MustNew(WithConfig(cfg))
	})
}

func TestResponse_Write(t *testing.T) {
	t.Parallel()

	resp, err := newTestBuilder(t).Success("ok", http.StatusAccepted, "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, resp.Write(rec))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"success","data":"ok"}`, rec.Body.String())
}

func TestBuilder_NilMetricsAndContext(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithMetrics(nil))
	resp, err := b.FromError(context.Background(), nil, "", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}

	return out
}
