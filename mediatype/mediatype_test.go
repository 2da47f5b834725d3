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

package mediatype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"application/json", "application/json"},
		{"Application/JSON; charset=utf-8", "application/json"},
		{"  text/plain ;q=0.5", "text/plain"},
		{"", ""},
		{"text/csv;", "text/csv"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Base(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	t.Parallel()

	typ, sub := Split("Text/HTML; level=1")
	assert.Equal(t, "text", typ)
	assert.Equal(t, "html", sub)

	typ, sub = Split("json")
	assert.Equal(t, "json", typ)
	assert.Equal(t, "*", sub)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, JSON, Normalize("json"))
	assert.Equal(t, CSV, Normalize(".csv"))
	assert.Equal(t, YAML, Normalize("YML"))
	assert.Equal(t, "text/plain; charset=utf-8", Normalize("text/plain; charset=utf-8"))
	assert.Equal(t, "unknown", Normalize("Unknown"))
}

func TestWithCharset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text/csv; charset=utf-8", WithCharset("text/csv", "utf-8"))
	assert.Equal(t, "text/plain; Charset=latin1", WithCharset("text/plain; Charset=latin1", "utf-8"))
}

func TestFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/pdf", FromPath("/tmp/report.PDF"))
	assert.Equal(t, JSON, FromPath("data.json"))
	assert.Equal(t, HTML, FromPath("index.htm"))
	assert.Equal(t, OctetStream, FromPath("archive.unknownext"))
	assert.Equal(t, OctetStream, FromPath("Makefile"))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	known := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(known, []byte("hello"), 0o600))
	assert.Equal(t, Text, Detect(known))

	// PNG signature without a telling extension
	sniffed := filepath.Join(dir, "image.blob")
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	require.NoError(t, os.WriteFile(sniffed, png, 0o600))
	assert.Equal(t, "image/png", Detect(sniffed))

	assert.Equal(t, OctetStream, Detect(filepath.Join(dir, "missing.blob")))
}
