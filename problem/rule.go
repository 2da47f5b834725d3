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

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule maps a class of errors to a problem type.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string

	// Match reports whether the rule applies to err.
	Match func(err error) bool

	// Type is a problem type slug ("not-found") joined to the classifier
	// base URI, an absolute URI used as-is, or "about:blank".
	Type string

	// Title is the problem title. When empty, the status text is used.
	Title string

	// Status is the HTTP status. When zero, Resolve must provide it.
	Status int

	// Resolve optionally derives the status from the error at hand.
	Resolve func(err error) int

	// Extensions optionally contributes extension members.
	Extensions func(err error) map[string]any
}

// DefaultRules returns the built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "domain",
			Match: func(err error) bool {
				var numErr *strconv.NumError
				return errors.Is(err, ErrInvalidArgument) ||
					errors.Is(err, ErrDomain) ||
					errors.As(err, &numErr)
			},
			Type:   "domain-error",
			Title:  "Domain Error",
			Status: http.StatusBadRequest,
		},
		{
			Name: "authentication",
			Match: func(err error) bool {
				return errors.Is(err, ErrUnauthenticated) || anyTypeName(err, func(name string) bool {
					return strings.Contains(name, "Auth") && !strings.Contains(name, "Authorization")
				})
			},
			Type:   "auth-required",
			Title:  "Authentication Required",
			Status: http.StatusUnauthorized,
		},
		{
			Name: "authorization",
			Match: func(err error) bool {
				return errors.Is(err, ErrForbidden) ||
					errors.Is(err, fs.ErrPermission) ||
					anyTypeName(err, func(name string) bool { return strings.Contains(name, "Authorization") })
			},
			Type:   "not-allowed",
			Title:  "Forbidden",
			Status: http.StatusForbidden,
		},
		{
			Name: "not-found",
			Match: func(err error) bool {
				return errors.Is(err, ErrNotFound) ||
					errors.Is(err, fs.ErrNotExist) ||
					anyTypeName(err, func(name string) bool { return strings.Contains(name, "NotFound") })
			},
			Type:   "not-found",
			Title:  "Not Found",
			Status: http.StatusNotFound,
		},
		{
			Name: "validation",
			Match: func(err error) bool {
				return errors.Is(err, ErrValidation) ||
					anyTypeName(err, func(name string) bool { return strings.Contains(name, "Validation") })
			},
			Type:   "validation-error",
			Title:  "Validation Failed",
			Status: http.StatusUnprocessableEntity,
			Extensions: func(err error) map[string]any {
				return map[string]any{ExtErrors: ValidationErrors(err)}
			},
		},
		{
			Name: "status",
			Match: func(err error) bool {
				var sc StatusCoder
				return errors.As(err, &sc) && http.StatusText(sc.HTTPStatus()) != ""
			},
			Type: "about:blank",
			Resolve: func(err error) int {
				var sc StatusCoder
				errors.As(err, &sc)
				return sc.HTTPStatus()
			},
		},
	}
}

// fallbackRule applies when no other rule matches.
var fallbackRule = Rule{
	Name:   "default",
	Type:   "about:blank",
	Title:  "Internal Server Error",
	Status: http.StatusInternalServerError,
}

// ValidationErrors extracts field errors from err. It prefers the
// [ValidationErrorer] accessor, then [FieldErrorer], then go-playground
// validator errors converted to field → messages. It returns an empty map
// when none are available.
func ValidationErrors(err error) map[string]any {
	var ve ValidationErrorer
	if errors.As(err, &ve) {
		if fields := ve.ValidationErrors(); len(fields) > 0 {
			return fields
		}
	}

	var fe FieldErrorer
	if errors.As(err, &fe) {
		if fields := fe.Errors(); len(fields) > 0 {
			return fields
		}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, e := range verrs {
			path := e.Namespace()
			if idx := strings.Index(path, "."); idx != -1 {
				path = path[idx+1:]
			}
			msgs, _ := fields[path].([]string)
			fields[path] = append(msgs, tagMessage(e))
		}

		return fields
	}

	return map[string]any{}
}

// tagMessage returns a human-readable message for a validator tag failure.
func tagMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", e.Tag())
	}
}

// maxChainDepth bounds the wrap-chain walk.
const maxChainDepth = 32

// anyTypeName reports whether match holds for the type name of any error in
// the wrap chain of err. Rules are tried in priority order against the whole
// chain, so a wrapped error can select an earlier rule than its wrapper's own
// name would.
func anyTypeName(err error, match func(name string) bool) bool {
	for _, name := range TypeNames(err) {
		if match(name) {
			return true
		}
	}

	return false
}

// TypeNames returns the type names of err and every error it wraps, in
// breadth-first order. Pointer types are dereferenced, so *NotFoundError is
// reported as "NotFoundError".
func TypeNames(err error) []string {
	var names []string
	queue := []error{err}

	for len(queue) > 0 && len(names) < maxChainDepth {
		current := queue[0]
		queue = queue[1:]
		if current == nil {
			continue
		}

		t := reflect.TypeOf(current)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		names = append(names, t.Name())

		switch u := current.(type) {
		case interface{ Unwrap() error }:
			queue = append(queue, u.Unwrap())
		case interface{ Unwrap() []error }:
			queue = append(queue, u.Unwrap()...)
		}
	}

	return names
}
