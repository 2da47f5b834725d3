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
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"rivaas.dev/respond/mediatype"
)

// MsgPack renders payloads as MessagePack. Struct fields follow json tags
// and map keys are sorted, so equal payloads encode to equal bytes.
type MsgPack struct{}

// NewMsgPack creates a MessagePack formatter.
func NewMsgPack() *MsgPack {
	return &MsgPack{}
}

// ContentType returns "application/msgpack".
func (f *MsgPack) ContentType() string {
	return mediatype.MsgPack
}

// Format serializes payload as MessagePack.
func (f *MsgPack) Format(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.SetSortMapKeys(true)

	if err := enc.Encode(payload); err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return buf.Bytes(), nil
}

// Protobuf renders payloads in the protocol buffers wire format.
//
// A [proto.Message] payload is marshaled directly. Any other payload is
// rendered through encoding/json and carried as a google.protobuf.Value.
type Protobuf struct{}

// NewProtobuf creates a Protobuf formatter.
func NewProtobuf() *Protobuf {
	return &Protobuf{}
}

// ContentType returns "application/x-protobuf".
func (f *Protobuf) ContentType() string {
	return mediatype.Protobuf
}

// Format serializes payload deterministically.
func (f *Protobuf) Format(payload any) ([]byte, error) {
	msg, ok := payload.(proto.Message)
	if !ok {
		generic, err := plain(payload)
		if err != nil {
			return nil, newError(f.ContentType(), err)
		}
		value, err := structpb.NewValue(generic)
		if err != nil {
			return nil, newError(f.ContentType(), fmt.Errorf("%w: %w", ErrUnsupportedPayload, err))
		}
		msg = value
	}

	out, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, newError(f.ContentType(), err)
	}

	return out, nil
}
