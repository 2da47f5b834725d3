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

package problem

// Test helpers shared by the classifier tests.

type testError struct {
	message string
}

func (e *testError) Error() string {
	return e.message
}

type UserNotFoundError struct {
	id string
}

func (e *UserNotFoundError) Error() string {
	return "user " + e.id + " not found"
}

type AuthenticationError struct{}

func (AuthenticationError) Error() string {
	return "missing credentials"
}

type AuthorizationError struct{}

func (AuthorizationError) Error() string {
	return "not allowed to delete"
}

type AuthorizationCheckError struct {
	cause error
}

func (e *AuthorizationCheckError) Error() string {
	return "authorization check failed: " + e.cause.Error()
}

func (e *AuthorizationCheckError) Unwrap() error {
	return e.cause
}

type FormValidationError struct {
	fields map[string]any
	alt    map[string]any
}

func (e *FormValidationError) Error() string {
	return "form is invalid"
}

func (e *FormValidationError) ValidationErrors() map[string]any {
	return e.fields
}

func (e *FormValidationError) Errors() map[string]any {
	return e.alt
}

type InputValidationError struct {
	errs map[string]any
}

func (e InputValidationError) Error() string {
	return "input is invalid"
}

func (e InputValidationError) Errors() map[string]any {
	return e.errs
}

type testErrorWithStatus struct {
	message string
	status  int
}

func (e *testErrorWithStatus) Error() string {
	return e.message
}

func (e *testErrorWithStatus) HTTPStatus() int {
	return e.status
}

type testErrorWithCode struct {
	message string
	code    string
}

func (e *testErrorWithCode) Error() string {
	return e.message
}

func (e *testErrorWithCode) Code() string {
	return e.code
}

type testErrorWithStack struct {
	message string
	stack   []byte
}

func (e *testErrorWithStack) Error() string {
	return e.message
}

func (e *testErrorWithStack) StackTrace() []byte {
	return e.stack
}

func fixedRef() string {
	return "0123456789abcdef"
}
