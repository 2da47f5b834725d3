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

package format

import (
	"errors"
	"fmt"
)

// Formatter serializes payloads into one representation.
type Formatter interface {
	// ContentType returns the Content-Type header value of the produced body,
	// parameters included (e.g. "application/json; charset=utf-8").
	ContentType() string

	// Format serializes payload. It fails with an [*Error] when the payload
	// cannot be represented in this format.
	Format(payload any) ([]byte, error)
}

var (
	// ErrSerialization matches every [*Error] returned by a formatter.
	ErrSerialization = errors.New("serialization failed")

	// ErrUnsupportedPayload indicates a payload whose shape the format cannot
	// represent, such as a scalar sent to the CSV formatter.
	ErrUnsupportedPayload = errors.New("unsupported payload")
)

// Error is a serialization failure of a single formatter.
type Error struct {
	ContentType string // Declared content type of the failing formatter
	Err         error  // Underlying encoder error
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	return fmt.Sprintf("format %s: %v", e.ContentType, e.Err)
}

// Unwrap returns the underlying encoder error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is [ErrSerialization].
func (e *Error) Is(target error) bool {
	return target == ErrSerialization
}

func newError(contentType string, err error) *Error {
	return &Error{ContentType: contentType, Err: err}
}
