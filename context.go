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

import "context"

type contentTypeKey struct{}

// WithContentType returns a copy of ctx carrying the negotiated content
// type.
func WithContentType(ctx context.Context, contentType string) context.Context {
	return context.WithValue(ctx, contentTypeKey{}, contentType)
}

// ContentTypeFromContext returns the content type stored by [Negotiation].
func ContentTypeFromContext(ctx context.Context) (string, bool) {
	ct, ok := ctx.Value(contentTypeKey{}).(string)
	return ct, ok && ct != ""
}
