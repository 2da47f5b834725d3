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
)

var (
	// ErrNoFormatter indicates that no formatter is registered for the
	// resolved content type.
	ErrNoFormatter = errors.New("no formatter registered")

	// ErrFileNotFound indicates a missing, unreadable or directory path
	// passed to [Builder.File].
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidStatus indicates a status code outside 100-599.
	ErrInvalidStatus = errors.New("invalid status code")

	// ErrInvalidConfig indicates a configuration value that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigError is a configuration failure with its context.
type ConfigError struct {
	Source    string // Where the error occurred (e.g. "registry", "config file")
	Field     string // The offending field or key (optional)
	Operation string // The operation being performed (e.g. "resolve formatter", "load")
	Err       error  // The underlying error
}

// Error returns a formatted error message with context information.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in %s.%s during %s: %v",
			e.Source, e.Field, e.Operation, e.Err)
	}

	return fmt.Sprintf("config error in %s during %s: %v",
		e.Source, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panic together with the stack
// captured at recovery.
type PanicError struct {
	Value any
	Stack []byte
}

// Error returns "panic: <value>".
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// StackTrace returns the recovery stack.
func (e *PanicError) StackTrace() []byte {
	return e.Stack
}
