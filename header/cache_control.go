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

package header

import (
	"strconv"
	"strings"
	"time"
)

// CacheOption configures a Cache-Control value built by [CacheValue].
type CacheOption func(*cacheConfig)

// cacheConfig holds the configured Cache-Control directives.
type cacheConfig struct {
	public               bool
	noStore              bool
	noCache              bool
	mustRevalidate       bool
	maxAge               time.Duration
	staleWhileRevalidate time.Duration
	staleIfError         time.Duration
}

// WithPublic sets the public directive, allowing shared caches to store the response.
func WithPublic() CacheOption {
	return func(cfg *cacheConfig) {
		cfg.public = true
	}
}

// WithPrivate sets the private directive. It undoes an earlier WithPublic.
func WithPrivate() CacheOption {
	return func(cfg *cacheConfig) {
		cfg.public = false
	}
}

// WithNoStore sets the no-store directive. It overrides every other directive.
func WithNoStore() CacheOption {
	return func(cfg *cacheConfig) {
		cfg.noStore = true
	}
}

// WithNoCache sets the no-cache directive.
func WithNoCache() CacheOption {
	return func(cfg *cacheConfig) {
		cfg.noCache = true
	}
}

// WithMustRevalidate sets the must-revalidate directive.
func WithMustRevalidate() CacheOption {
	return func(cfg *cacheConfig) {
		cfg.mustRevalidate = true
	}
}

// WithMaxAge sets the max-age directive. Non-positive durations are ignored.
func WithMaxAge(d time.Duration) CacheOption {
	return func(cfg *cacheConfig) {
		if d > 0 {
			cfg.maxAge = d
		}
	}
}

// WithStaleWhileRevalidate sets the stale-while-revalidate directive (RFC 5861).
func WithStaleWhileRevalidate(d time.Duration) CacheOption {
	return func(cfg *cacheConfig) {
		if d > 0 {
			cfg.staleWhileRevalidate = d
		}
	}
}

// WithStaleIfError sets the stale-if-error directive (RFC 5861).
func WithStaleIfError(d time.Duration) CacheOption {
	return func(cfg *cacheConfig) {
		if d > 0 {
			cfg.staleIfError = d
		}
	}
}

// CacheValue builds a Cache-Control header value.
//
// Example:
//
//	header.CacheValue(header.WithPublic(), header.WithMaxAge(time.Minute))
//	// "public, max-age=60"
//	header.CacheValue(header.WithNoStore(), header.WithMaxAge(time.Minute))
//	// "no-store"
//
// Responses are private unless WithPublic is given.
func CacheValue(opts ...CacheOption) string {
	cfg := &cacheConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.noStore {
		return "no-store"
	}

	parts := make([]string, 0, 6)
	if cfg.public {
		parts = append(parts, "public")
	} else {
		parts = append(parts, "private")
	}
	if cfg.noCache {
		parts = append(parts, "no-cache")
	}
	if cfg.maxAge > 0 {
		parts = append(parts, "max-age="+seconds(cfg.maxAge))
	}
	if cfg.mustRevalidate {
		parts = append(parts, "must-revalidate")
	}
	if cfg.staleWhileRevalidate > 0 {
		parts = append(parts, "stale-while-revalidate="+seconds(cfg.staleWhileRevalidate))
	}
	if cfg.staleIfError > 0 {
		parts = append(parts, "stale-if-error="+seconds(cfg.staleIfError))
	}

	return strings.Join(parts, ", ")
}

func seconds(d time.Duration) string {
	return strconv.Itoa(int(d.Seconds()))
}
