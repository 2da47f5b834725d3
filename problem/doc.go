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

// Package problem classifies Go errors into RFC 9457 problem details.
//
// A [Classifier] walks an ordered list of [Rule] values and the first
// matching rule decides the problem type, title and status. Every result is
// then post-processed: the error message becomes the detail (hidden for 5xx
// unless debug is on), debug mode attaches a "trace" extension, and a random
// "error_ref" correlation token is always added.
//
// # Default rules
//
// Rules inspect the whole wrap chain, both by sentinel and by the type names
// of the wrapped errors, so a package does not need to import this one to be
// classified:
//
//	Status  Type               Matches
//	400     domain-error       ErrInvalidArgument, ErrDomain, *strconv.NumError
//	401     auth-required      ErrUnauthenticated, type name containing "Auth"
//	                           (but not "Authorization")
//	403     not-allowed        ErrForbidden, fs.ErrPermission, type name
//	                           containing "Authorization"
//	404     not-found          ErrNotFound, fs.ErrNotExist, type name
//	                           containing "NotFound"
//	422     validation-error   ErrValidation, type name containing "Validation"
//	any     about:blank        errors with an HTTPStatus() int method
//	500     about:blank        everything else
//
// Host applications add their own rules with [WithRules]; those run before
// the defaults.
//
// # Usage
//
//	classifier := problem.New(problem.WithBaseURI("https://api.example.com/problems/"))
//	record := classifier.Map(err, false)
//	body := record.Payload() // flat map ready for a problem+json formatter
package problem
