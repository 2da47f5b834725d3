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
	"encoding/json"
	"encoding/xml"
	"regexp"
	"strings"

	"rivaas.dev/respond/mediatype"
)

var (
	xmlNameStart   = regexp.MustCompile(`^[a-zA-Z_]`)
	xmlInvalidChar = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)
)

// XML renders payloads as an XML document.
//
// Objects become nested elements. List elements are emitted as repeated
// siblings named after the singular of their key ("users" gives "user",
// "categories" gives "category") or "item" when there is no key. Keys that
// are not valid element names are sanitized.
type XML struct {
	// Root is the document element name. Defaults to "response".
	Root string

	// Indent pretty-prints the output with two-space indentation.
	Indent bool
}

// NewXML creates an indented XML formatter with a "response" root.
func NewXML() *XML {
	return &XML{Root: "response", Indent: true}
}

// ContentType returns "application/xml".
func (f *XML) ContentType() string {
	return mediatype.XML
}

// Format serializes payload as XML with an XML declaration.
func (f *XML) Format(payload any) ([]byte, error) {
	tree, err := normalize(payload)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	root := f.Root
	if root == "" {
		root = "response"
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if f.Indent {
		enc.Indent("", "  ")
	}

	start := xml.StartElement{Name: xml.Name{Local: sanitizeElementName(root)}}
	if err = enc.EncodeToken(start); err != nil {
		return nil, newError(f.ContentType(), err)
	}
	if err = writeXMLNode(enc, tree, ""); err != nil {
		return nil, newError(f.ContentType(), err)
	}
	if err = enc.EncodeToken(start.End()); err != nil {
		return nil, newError(f.ContentType(), err)
	}
	if err = enc.Flush(); err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return buf.Bytes(), nil
}

// writeXMLNode writes value into the current element. A non-empty key wraps
// objects and scalars in an element of that name; lists never get a wrapper.
func writeXMLNode(enc *xml.Encoder, value any, key string) error {
	switch v := value.(type) {
	case object:
		if key == "" {
			return writeXMLMembers(enc, v)
		}
		start := xml.StartElement{Name: xml.Name{Local: sanitizeElementName(key)}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if err := writeXMLMembers(enc, v); err != nil {
			return err
		}

		return enc.EncodeToken(start.End())
	case []any:
		itemName := "item"
		if key != "" {
			itemName = singular(key)
		}
		for _, item := range v {
			if err := writeXMLNode(enc, item, itemName); err != nil {
				return err
			}
		}

		return nil
	default:
		text := scalarText(v)
		if key == "" {
			return enc.EncodeToken(xml.CharData(text))
		}
		start := xml.StartElement{Name: xml.Name{Local: sanitizeElementName(key)}}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		if text != "" {
			if err := enc.EncodeToken(xml.CharData(text)); err != nil {
				return err
			}
		}

		return enc.EncodeToken(start.End())
	}
}

func writeXMLMembers(enc *xml.Encoder, obj object) error {
	for _, m := range obj {
		if err := writeXMLNode(enc, m.value, m.key); err != nil {
			return err
		}
	}

	return nil
}

// sanitizeElementName turns an arbitrary key into a valid XML element name.
func sanitizeElementName(name string) string {
	if !xmlNameStart.MatchString(name) {
		name = "item_" + name
	}

	return xmlInvalidChar.ReplaceAllString(name, "_")
}

// singular derives a list element name from its key.
func singular(key string) string {
	switch {
	case strings.HasSuffix(key, "ies") && len(key) > 3:
		return strings.TrimSuffix(key, "ies") + "y"
	case strings.HasSuffix(key, "s") && len(key) > 1:
		return strings.TrimSuffix(key, "s")
	default:
		return "item"
	}
}

// scalarText renders a normalized leaf value.
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}

		return "false"
	case json.Number:
		return t.String()
	default:
		out, err := json.Marshal(t)
		if err != nil {
			return ""
		}

		return string(out)
	}
}
