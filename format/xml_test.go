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

package format

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXML_Format(t *testing.T) {
	t.Parallel()

	f := NewXML()
	assert.Equal(t, "application/xml", f.ContentType())

	out, err := f.Format(map[string]any{
		"users": []user{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob & Co"}},
		"total": 2,
	})
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, xml.Header))
	assert.Contains(t, doc, "<response>")
	assert.Contains(t, doc, "</response>")
	assert.Contains(t, doc, "<total>2</total>")
	assert.Equal(t, 2, strings.Count(doc, "<user>"))
	assert.NotContains(t, doc, "<users>")
	assert.Contains(t, doc, "<name>Alice</name>")
	assert.Contains(t, doc, "<name>Bob &amp; Co</name>")

	// The document must be well formed.
	var generic struct {
		XMLName xml.Name
	}
	require.NoError(t, xml.Unmarshal(out, &generic))
	assert.Equal(t, "response", generic.XMLName.Local)
}

func TestXML_Scalars(t *testing.T) {
	t.Parallel()

	out, err := (&XML{Root: "result"}).Format(map[string]any{
		"active":  true,
		"deleted": false,
		"note":    nil,
		"ratio":   1.5,
	})
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "<result>")
	assert.Contains(t, doc, "<active>true</active>")
	assert.Contains(t, doc, "<deleted>false</deleted>")
	assert.Contains(t, doc, "<note></note>")
	assert.Contains(t, doc, "<ratio>1.5</ratio>")
}

func TestXML_ElementNames(t *testing.T) {
	t.Parallel()

	out, err := NewXML().Format(map[string]any{
		"1st":        "a",
		"first name": "b",
		"categories": []string{"x"},
		"data":       []int{7},
	})
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "<item_1st>a</item_1st>")
	assert.Contains(t, doc, "<first_name>b</first_name>")
	assert.Contains(t, doc, "<category>x</category>")
	assert.Contains(t, doc, "<item>7</item>")
}

func TestSingular(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "users", want: "user"},
		{key: "categories", want: "category"},
		{key: "data", want: "item"},
		{key: "s", want: "item"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, singular(tt.key))
		})
	}
}

func TestXML_UnencodablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewXML().Format(map[string]any{"c": make(chan int)})
	require.ErrorIs(t, err, ErrSerialization)
}
