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
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"rivaas.dev/respond/header"
	"rivaas.dev/respond/mediatype"
)

// Stream builds a response from the bytes write produces. The output is
// buffered, so a failing write yields an error instead of a truncated
// response. An empty contentType means application/octet-stream and a zero
// status means 200.
func (b *Builder) Stream(write func(w io.Writer) error, status int, contentType string, headers http.Header) (*Response, error) {
	if status == 0 {
		status = http.StatusOK
	}
	if err := checkStatus(status); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if write != nil {
		if err := write(&buf); err != nil {
			return nil, fmt.Errorf("stream: %w", err)
		}
	}

	ct := mediatype.OctetStream
	if contentType != "" {
		ct = mediatype.Normalize(contentType)
	}

	resp := b.newResponse(status, ct, headers)
	resp.Header.Set(header.ContentLength, strconv.Itoa(buf.Len()))
	resp.Body = &buf
	b.metrics.RecordResponse(b.context(), status, mediatype.Base(ct))

	return resp, nil
}

// File builds a download response for the file at path. downloadName
// defaults to the base name of path; an empty contentType is detected from
// the extension, then from the content. With inline the browser is asked
// to display the file instead of saving it.
//
// The body is the open file. [Response.Write] closes it.
func (b *Builder) File(path, downloadName, contentType string, inline bool) (*Response, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}

	if downloadName == "" {
		downloadName = filepath.Base(path)
	}

	ct := mediatype.Detect(path)
	if contentType != "" {
		ct = mediatype.Normalize(contentType)
	}

	resp := b.newResponse(http.StatusOK, ct, nil)
	resp.Header.Set(header.ContentDisposition, header.DispositionValue(downloadName, inline))
	resp.Header.Set(header.ContentLength, strconv.FormatInt(info.Size(), 10))
	resp.Body = f
	b.metrics.RecordResponse(b.context(), http.StatusOK, mediatype.Base(ct))

	return resp, nil
}
