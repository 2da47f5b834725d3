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
	"net/http"
	"strings"
)

// Extension member names set by the classifier.
const (
	ExtErrorRef = "error_ref"
	ExtTrace    = "trace"
	ExtErrors   = "errors"
	ExtCode     = "code"
)

// DefaultBaseURI is the base joined to rule type slugs.
const DefaultBaseURI = "https://problem/"

// Classifier maps errors to problem records using ordered rules.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules   []Rule
	baseURI string
	newRef  func() string
}

// Option configures a [Classifier].
type Option func(*Classifier)

// WithRules adds rules evaluated before the defaults, in the given order.
// Calling it several times appends to the host rules.
func WithRules(rules ...Rule) Option {
	return func(c *Classifier) {
		c.rules = append(c.rules, rules...)
	}
}

// WithBaseURI sets the base URI joined to type slugs. A trailing slash is
// added when missing.
func WithBaseURI(uri string) Option {
	return func(c *Classifier) {
		c.baseURI = uri
	}
}

// WithErrorRefGenerator replaces the generator of the "error_ref" token.
func WithErrorRefGenerator(fn func() string) Option {
	return func(c *Classifier) {
		if fn != nil {
			c.newRef = fn
		}
	}
}

// New creates a classifier with the default rules and any host rules given
// through options.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		baseURI: DefaultBaseURI,
		newRef:  generateErrorRef,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rules = append(c.rules, DefaultRules()...)
	c.baseURI = strings.TrimRight(c.baseURI, "/") + "/"

	return c
}

// Map classifies err. The first matching rule wins; unmatched errors become
// a 500 "about:blank" problem. The detail carries err.Error() except for
// 5xx problems outside debug mode. With debug on, a "trace" extension is
// added. An "error_ref" extension is always set.
func (c *Classifier) Map(err error, debug bool) Record {
	rule := fallbackRule
	if err != nil {
		for _, r := range c.rules {
			if r.Match != nil && r.Match(err) {
				rule = r
				break
			}
		}
	}

	status := rule.Status
	if rule.Resolve != nil {
		status = rule.Resolve(err)
	}
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}

	title := rule.Title
	if title == "" {
		title = http.StatusText(status)
	}

	record := Record{
		Type:       c.typeURI(rule.Type),
		Title:      title,
		Status:     status,
		Extensions: make(map[string]any, 4),
	}

	if err != nil {
		if rule.Extensions != nil {
			for k, v := range rule.Extensions(err) {
				record.Extensions[k] = v
			}
		}

		var coded Coder
		if errors.As(err, &coded) && coded.Code() != "" {
			record.Extensions[ExtCode] = coded.Code()
		}

		if status < http.StatusInternalServerError || debug {
			record.Detail = err.Error()
		}

		if debug {
			record.Extensions[ExtTrace] = newTrace(err)
		}
	}

	record.Extensions[ExtErrorRef] = c.newRef()

	return record
}

// typeURI resolves a rule type against the base URI.
func (c *Classifier) typeURI(slug string) string {
	switch {
	case slug == "" || slug == "about:blank":
		return "about:blank"
	case strings.Contains(slug, ":"):
		return slug
	default:
		return c.baseURI + strings.TrimLeft(slug, "/")
	}
}
