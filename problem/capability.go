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

package problem

import "errors"

// Sentinels recognized by the default rules. Wrap them with %w to classify
// an error without defining a dedicated type.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDomain          = errors.New("domain error")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)

// StatusCoder lets an error declare its own HTTP status.
//
// Example:
//
//	type QuotaError struct{}
//
//	func (QuotaError) Error() string   { return "quota exceeded" }
//	func (QuotaError) HTTPStatus() int { return http.StatusTooManyRequests }
type StatusCoder interface {
	error
	HTTPStatus() int
}

// Coder exposes a machine-readable error code, added as the "code" extension.
type Coder interface {
	error
	Code() string
}

// ValidationErrorer exposes field errors for the "errors" extension.
// It takes precedence over [FieldErrorer].
type ValidationErrorer interface {
	error
	ValidationErrors() map[string]any
}

// FieldErrorer is the alternative accessor for validation field errors.
type FieldErrorer interface {
	error
	Errors() map[string]any
}

// StackTracer exposes the stack captured where the error originated, such as
// the stack of a recovered panic.
type StackTracer interface {
	error
	StackTrace() []byte
}
