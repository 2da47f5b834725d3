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

package format

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"rivaas.dev/respond/mediatype"
)

// CSV renders tabular payloads: a single object (one row) or a list of
// objects. The keys of the first row form the header; cells missing from
// later rows are written empty and extra keys are ignored. Nested values are
// written as compact JSON.
type CSV struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune

	// NoHeader omits the header row. Rows are then written in their own key
	// order.
	NoHeader bool

	// UseCRLF terminates rows with "\r\n" instead of "\n".
	UseCRLF bool
}

// NewCSV creates a comma-separated formatter with a header row.
func NewCSV() *CSV {
	return &CSV{Comma: ','}
}

// ContentType returns "text/csv; charset=utf-8".
func (f *CSV) ContentType() string {
	return mediatype.WithCharset(mediatype.CSV, "utf-8")
}

// Format serializes payload as CSV. An empty object or list yields an empty
// body; scalars and lists of non-objects fail with [ErrUnsupportedPayload].
func (f *CSV) Format(payload any) ([]byte, error) {
	tree, err := normalize(payload)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	var rows []any
	switch t := tree.(type) {
	case object:
		if len(t) == 0 {
			return []byte{}, nil
		}
		rows = []any{t}
	case []any:
		if len(t) == 0 {
			return []byte{}, nil
		}
		rows = t
	default:
		return nil, newError(f.ContentType(),
			fmt.Errorf("%w: csv requires an object or a list of objects, got %T", ErrUnsupportedPayload, payload))
	}

	first, ok := rows[0].(object)
	if !ok {
		return nil, newError(f.ContentType(),
			fmt.Errorf("%w: csv rows must be objects", ErrUnsupportedPayload))
	}
	headers := make([]string, len(first))
	for i, m := range first {
		headers[i] = m.key
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if f.Comma != 0 {
		w.Comma = f.Comma
	}
	w.UseCRLF = f.UseCRLF

	if !f.NoHeader {
		if err = w.Write(headers); err != nil {
			return nil, newError(f.ContentType(), err)
		}
	}

	for _, row := range rows {
		obj, isObj := row.(object)
		if !isObj {
			continue
		}

		var record []string
		if f.NoHeader {
			record = make([]string, len(obj))
			for i, m := range obj {
				record[i] = csvCell(m.value)
			}
		} else {
			record = make([]string, len(headers))
			for i, h := range headers {
				if v, exists := obj.get(h); exists {
					record[i] = csvCell(v)
				}
			}
		}

		if err = w.Write(record); err != nil {
			return nil, newError(f.ContentType(), err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return buf.Bytes(), nil
}

func csvCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case object, []any:
		out, err := json.Marshal(t)
		if err != nil {
			return ""
		}

		return string(out)
	case json.Number:
		return t.String()
	default:
		return cast.ToString(t)
	}
}
