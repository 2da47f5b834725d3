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
	"net/http"

	"github.com/spf13/cast"
)

// PageParams reads the page and per_page query values of r. Missing or
// invalid values fall back to page 1 and the configured default page size;
// per_page is capped at the configured maximum.
func (b *Builder) PageParams(r *http.Request) (page, perPage int) {
	q := r.URL.Query()

	page = cast.ToInt(q.Get("page"))
	if page < 1 {
		page = 1
	}

	perPage = cast.ToInt(q.Get("per_page"))
	if perPage < 1 {
		perPage = b.cfg.Pagination.DefaultPerPage
	}
	if limit := b.cfg.Pagination.MaxPerPage; limit > 0 && perPage > limit {
		perPage = limit
	}

	return page, perPage
}
