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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestYAML_Format(t *testing.T) {
	t.Parallel()

	f := NewYAML()
	assert.Equal(t, "application/yaml; charset=utf-8", f.ContentType())

	out, err := f.Format(map[string]any{"name": "Alice", "tags": []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "name: Alice\ntags:\n    - a\n", string(out))
}

func TestTOML_Format(t *testing.T) {
	t.Parallel()

	f := NewTOML()
	assert.Equal(t, "application/toml", f.ContentType())

	out, err := f.Format(map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "name = \"Alice\"\n", string(out))
}

func TestTOML_RejectsScalars(t *testing.T) {
	t.Parallel()

	_, err := NewTOML().Format("hello")
	require.ErrorIs(t, err, ErrSerialization)
}

func TestMsgPack_Format(t *testing.T) {
	t.Parallel()

	f := NewMsgPack()
	assert.Equal(t, "application/msgpack", f.ContentType())

	out, err := f.Format(user{ID: 7, Name: "Alice"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, msgpack.Unmarshal(out, &decoded))
	assert.Equal(t, "Alice", decoded["name"])
	assert.EqualValues(t, 7, decoded["id"])
}

func TestMsgPack_Deterministic(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"b": 1, "a": 2, "c": 3}
	first, err := NewMsgPack().Format(payload)
	require.NoError(t, err)

	for range 10 {
		again, err := NewMsgPack().Format(payload)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestProtobuf_GenericPayload(t *testing.T) {
	t.Parallel()

	f := NewProtobuf()
	assert.Equal(t, "application/x-protobuf", f.ContentType())

	out, err := f.Format(user{ID: 3, Name: "Alice"})
	require.NoError(t, err)

	decoded := &structpb.Value{}
	require.NoError(t, proto.Unmarshal(out, decoded))
	fields := decoded.GetStructValue().GetFields()
	assert.Equal(t, "Alice", fields["name"].GetStringValue())
	assert.InDelta(t, 3.0, fields["id"].GetNumberValue(), 0)
}

func TestProtobuf_MessagePayload(t *testing.T) {
	t.Parallel()

	msg := structpb.NewStringValue("hello")
	out, err := NewProtobuf().Format(msg)
	require.NoError(t, err)

	decoded := &structpb.Value{}
	require.NoError(t, proto.Unmarshal(out, decoded))
	assert.Equal(t, "hello", decoded.GetStringValue())
}

func TestProtobuf_UnencodablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewProtobuf().Format(make(chan int))
	require.ErrorIs(t, err, ErrSerialization)
}
