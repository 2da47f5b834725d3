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

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_DefaultRules(t *testing.T) {
	t.Parallel()

	_, numErr := strconv.Atoi("abc")
	_, openErr := os.Open("/definitely/not/here")

	tests := []struct {
		name       string
		err        error
		wantType   string
		wantTitle  string
		wantStatus int
	}{
		{name: "invalid argument", err: fmt.Errorf("page: %w", ErrInvalidArgument), wantType: "https://problem/domain-error", wantTitle: "Domain Error", wantStatus: 400},
		{name: "domain", err: ErrDomain, wantType: "https://problem/domain-error", wantTitle: "Domain Error", wantStatus: 400},
		{name: "number parse", err: numErr, wantType: "https://problem/domain-error", wantTitle: "Domain Error", wantStatus: 400},
		{name: "authentication type", err: AuthenticationError{}, wantType: "https://problem/auth-required", wantTitle: "Authentication Required", wantStatus: 401},
		{name: "authentication sentinel", err: ErrUnauthenticated, wantType: "https://problem/auth-required", wantTitle: "Authentication Required", wantStatus: 401},
		{name: "authorization type", err: AuthorizationError{}, wantType: "https://problem/not-allowed", wantTitle: "Forbidden", wantStatus: 403},
		{name: "permission", err: fs.ErrPermission, wantType: "https://problem/not-allowed", wantTitle: "Forbidden", wantStatus: 403},
		{name: "not found type", err: &UserNotFoundError{id: "7"}, wantType: "https://problem/not-found", wantTitle: "Not Found", wantStatus: 404},
		{name: "missing file", err: openErr, wantType: "https://problem/not-found", wantTitle: "Not Found", wantStatus: 404},
		{name: "validation type", err: &FormValidationError{}, wantType: "https://problem/validation-error", wantTitle: "Validation Failed", wantStatus: 422},
		{name: "validation sentinel", err: ErrValidation, wantType: "https://problem/validation-error", wantTitle: "Validation Failed", wantStatus: 422},
		{name: "declared status", err: &testErrorWithStatus{message: "slow down", status: 429}, wantType: "about:blank", wantTitle: "Too Many Requests", wantStatus: 429},
		{name: "declared bogus status", err: &testErrorWithStatus{message: "x", status: 999}, wantType: "about:blank", wantTitle: "Internal Server Error", wantStatus: 500},
		{name: "unknown", err: &testError{message: "boom"}, wantType: "about:blank", wantTitle: "Internal Server Error", wantStatus: 500},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", &UserNotFoundError{id: "1"}), wantType: "https://problem/not-found", wantTitle: "Not Found", wantStatus: 404},
		{name: "joined", err: errors.Join(errors.New("a"), AuthorizationError{}), wantType: "https://problem/not-allowed", wantTitle: "Forbidden", wantStatus: 403},
		{name: "authorization wrapping authentication", err: &AuthorizationCheckError{cause: AuthenticationError{}}, wantType: "https://problem/auth-required", wantTitle: "Authentication Required", wantStatus: 401},
		{name: "authorization wrapping plain error", err: &AuthorizationCheckError{cause: errors.New("denied")}, wantType: "https://problem/not-allowed", wantTitle: "Forbidden", wantStatus: 403},
	}

	c := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := c.Map(tt.err, false)
			assert.Equal(t, tt.wantType, r.Type)
			assert.Equal(t, tt.wantTitle, r.Title)
			assert.Equal(t, tt.wantStatus, r.Status)
		})
	}
}

func TestClassifier_DetailSuppression(t *testing.T) {
	t.Parallel()

	c := New()

	r := c.Map(errors.New("db password is hunter2"), false)
	assert.Equal(t, http.StatusInternalServerError, r.Status)
	assert.Empty(t, r.Detail)
	assert.NotContains(t, r.Extensions, ExtTrace)
	assert.NotContains(t, r.Payload(), "detail")

	r = c.Map(errors.New("db password is hunter2"), true)
	assert.Equal(t, "db password is hunter2", r.Detail)
	assert.Contains(t, r.Extensions, ExtTrace)

	r = c.Map(&UserNotFoundError{id: "9"}, false)
	assert.Equal(t, "user 9 not found", r.Detail)
}

func TestClassifier_ErrorRef(t *testing.T) {
	t.Parallel()

	hex16 := regexp.MustCompile(`^[0-9a-f]{16}$`)
	c := New()

	first := c.Map(errors.New("a"), false).ErrorRef()
	second := c.Map(errors.New("a"), false).ErrorRef()
	assert.Regexp(t, hex16, first)
	assert.Regexp(t, hex16, second)
	assert.NotEqual(t, first, second)

	fixed := New(WithErrorRefGenerator(fixedRef))
	assert.Equal(t, "0123456789abcdef", fixed.Map(errors.New("a"), false).ErrorRef())
}

func TestClassifier_ValidationExtensions(t *testing.T) {
	t.Parallel()

	c := New()

	tests := []struct {
		name string
		err  error
		want map[string]any
	}{
		{
			name: "primary accessor wins",
			err: &FormValidationError{
				fields: map[string]any{"email": []string{"is required"}},
				alt:    map[string]any{"other": "ignored"},
			},
			want: map[string]any{"email": []string{"is required"}},
		},
		{
			name: "falls back to second accessor",
			err: &FormValidationError{
				alt: map[string]any{"name": "too short"},
			},
			want: map[string]any{"name": "too short"},
		},
		{
			name: "second accessor alone",
			err:  InputValidationError{errs: map[string]any{"age": "must be positive"}},
			want: map[string]any{"age": "must be positive"},
		},
		{
			name: "no accessor",
			err:  ErrValidation,
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := c.Map(tt.err, false)
			assert.Equal(t, http.StatusUnprocessableEntity, r.Status)
			assert.Equal(t, tt.want, r.Extensions[ExtErrors])
		})
	}
}

func TestClassifier_ValidatorErrors(t *testing.T) {
	t.Parallel()

	type signup struct {
		Email string `validate:"required,email"`
		Name  string `validate:"min=3"`
	}

	err := validator.New().Struct(signup{Email: "", Name: "ab"})
	require.Error(t, err)

	r := New().Map(fmt.Errorf("signup: %w", err), false)
	assert.Equal(t, http.StatusUnprocessableEntity, r.Status)
	assert.Equal(t, "https://problem/validation-error", r.Type)
	assert.Equal(t, map[string]any{
		"Email": []string{"is required"},
		"Name":  []string{"must be at least 3 characters"},
	}, r.Extensions[ExtErrors])
}

func TestClassifier_Code(t *testing.T) {
	t.Parallel()

	r := New().Map(&testErrorWithCode{message: "x", code: "QUOTA"}, false)
	assert.Equal(t, "QUOTA", r.Extensions[ExtCode])

	r = New().Map(errors.New("x"), false)
	assert.NotContains(t, r.Extensions, ExtCode)
}

func TestClassifier_HostRulesRunFirst(t *testing.T) {
	t.Parallel()

	errPayment := errors.New("payment required")
	c := New(
		WithBaseURI("https://api.example.com/problems"),
		WithRules(Rule{
			Name:   "payment",
			Match:  func(err error) bool { return errors.Is(err, errPayment) },
			Type:   "payment-required",
			Status: http.StatusPaymentRequired,
			Extensions: func(error) map[string]any {
				return map[string]any{"balance": 0}
			},
		}, Rule{
			Name:   "shadow not found",
			Match:  func(err error) bool { return errors.Is(err, ErrNotFound) },
			Type:   "urn:problem:gone",
			Title:  "Gone",
			Status: http.StatusGone,
		}),
	)

	r := c.Map(fmt.Errorf("charge: %w", errPayment), false)
	assert.Equal(t, "https://api.example.com/problems/payment-required", r.Type)
	assert.Equal(t, "Payment Required", r.Title)
	assert.Equal(t, http.StatusPaymentRequired, r.Status)
	assert.Equal(t, 0, r.Extensions["balance"])

	r = c.Map(ErrNotFound, false)
	assert.Equal(t, "urn:problem:gone", r.Type)
	assert.Equal(t, http.StatusGone, r.Status)

	r = c.Map(&UserNotFoundError{}, false)
	assert.Equal(t, "https://api.example.com/problems/not-found", r.Type)
}

func TestClassifier_NilError(t *testing.T) {
	t.Parallel()

	r := New().Map(nil, true)
	assert.Equal(t, http.StatusInternalServerError, r.Status)
	assert.Equal(t, "about:blank", r.Type)
	assert.Empty(t, r.Detail)
	assert.Contains(t, r.Extensions, ExtErrorRef)
}

func TestTypeNames(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", &UserNotFoundError{id: "1"})
	names := TypeNames(err)
	assert.Equal(t, []string{"wrapError", "UserNotFoundError"}, names)

	joined := errors.Join(AuthenticationError{}, &testError{})
	assert.Equal(t, []string{"joinError", "AuthenticationError", "testError"}, TypeNames(joined))

	wrapped := &AuthorizationCheckError{cause: AuthenticationError{}}
	assert.Equal(t, []string{"AuthorizationCheckError", "AuthenticationError"}, TypeNames(wrapped))

	assert.Empty(t, TypeNames(nil))
}
