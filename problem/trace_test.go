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

package problem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const panicStack = `goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
rivaas.dev/respond.(*Builder).Recover.func1.1()
	/src/respond/middleware.go:88 +0x45
panic({0x7a1c20?, 0x9b3f10?})
	/usr/local/go/src/runtime/panic.go:791 +0x132
main.handler({0x9c2e58, 0xc0001a2000}, 0xc000196000)
	/src/app/main.go:42 +0x1d
net/http.HandlerFunc.ServeHTTP(0x0?, {0x9c2e58?, 0xc0001a2000?}, 0x0?)
	/usr/local/go/src/net/http/server.go:2220 +0x29
`

func TestTrace_FromStackTracer(t *testing.T) {
	t.Parallel()

	err := &testErrorWithStack{message: "panic: boom", stack: []byte(panicStack)}
	r := New().Map(err, true)

	trace, ok := r.Extensions[ExtTrace].(Trace)
	require.True(t, ok)
	assert.Equal(t, "panic: boom", trace.Message)
	assert.Equal(t, "/src/app/main.go:42", trace.Location)
	assert.Equal(t, "goroutine 7 [running]:", trace.Frames[0])
	assert.Len(t, trace.Frames, 11)
}

func TestTrace_CapturedStack(t *testing.T) {
	t.Parallel()

	r := New().Map(errors.New("plain"), true)

	trace, ok := r.Extensions[ExtTrace].(Trace)
	require.True(t, ok)
	assert.Equal(t, "plain", trace.Message)
	assert.NotEmpty(t, trace.Frames)
	assert.LessOrEqual(t, len(trace.Frames), maxTraceFrames)
	assert.NotEmpty(t, trace.Location)
	for _, frame := range trace.Frames {
		assert.NotContains(t, frame, "rivaas.dev/respond/problem.")
	}
}

func TestStackLines_Limit(t *testing.T) {
	t.Parallel()

	var stack []byte
	for range 40 {
		stack = append(stack, "frame\n\n"...)
	}
	assert.Len(t, stackLines(stack), maxTraceFrames)
}

func TestPanicLocation_NoPanicFrame(t *testing.T) {
	t.Parallel()

	assert.Empty(t, panicLocation([]byte("goroutine 1 [running]:\nmain.main()\n")))
}
