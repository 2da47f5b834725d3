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
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Response is a fully built HTTP response. It is independent of any
// [http.ResponseWriter] until [Response.Write] is called.
type Response struct {
	Status int
	Header http.Header

	// Body is nil for responses without content.
	Body io.Reader
}

// Write copies the headers, status and body to w. A body implementing
// [io.Closer] (such as the file of [Builder.File]) is closed afterwards.
func (r *Response) Write(w http.ResponseWriter) (err error) {
	dst := w.Header()
	for name, values := range r.Header {
		dst[name] = append([]string(nil), values...)
	}
	w.WriteHeader(r.Status)

	if r.Body == nil {
		return nil
	}

	if c, ok := r.Body.(io.Closer); ok {
		defer func() {
			if closeErr := c.Close(); closeErr != nil {
				err = errors.Join(err, fmt.Errorf("close body: %w", closeErr))
			}
		}()
	}

	if _, err = io.Copy(w, r.Body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}

	return nil
}

// Bytes drains the body. It is meant for tests and small buffered
// responses; a file body is read to the end and closed.
func (r *Response) Bytes() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	if c, ok := r.Body.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	return io.ReadAll(r.Body)
}
