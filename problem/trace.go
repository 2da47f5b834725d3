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
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// maxTraceFrames caps the number of stack lines in the trace extension.
const maxTraceFrames = 15

// Trace is the debug-only "trace" extension.
type Trace struct {
	Message  string   `json:"message"`
	Location string   `json:"location,omitempty"`
	Frames   []string `json:"frames"`
}

// newTrace builds the trace for err. Errors carrying their own stack (see
// [StackTracer]) report it; otherwise the stack of the caller is captured.
func newTrace(err error) Trace {
	var st StackTracer
	if errors.As(err, &st) {
		if stack := st.StackTrace(); len(stack) > 0 {
			return Trace{
				Message:  err.Error(),
				Location: panicLocation(stack),
				Frames:   stackLines(stack),
			}
		}
	}

	frames, location := callerFrames()

	return Trace{
		Message:  err.Error(),
		Location: location,
		Frames:   frames,
	}
}

// stackLines returns the first non-empty lines of a formatted stack.
func stackLines(stack []byte) []string {
	lines := make([]string, 0, maxTraceFrames)
	for line := range bytes.Lines(stack) {
		text := strings.TrimRight(string(line), "\r\n")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, text)
		if len(lines) == maxTraceFrames {
			break
		}
	}

	return lines
}

// panicLocation finds the file:line that raised a panic in a
// runtime/debug.Stack dump: the source line of the frame following panic().
func panicLocation(stack []byte) string {
	lines := strings.Split(string(stack), "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "panic(") {
			continue
		}
		if i+3 < len(lines) {
			return sourcePosition(lines[i+3])
		}
	}

	return ""
}

// sourcePosition strips indentation and the "+0x.." offset from a stack
// source line.
func sourcePosition(line string) string {
	line = strings.TrimSpace(line)
	if idx := strings.LastIndex(line, " +0x"); idx != -1 {
		line = line[:idx]
	}

	return line
}

// callerFrames captures the current stack, skipping this package, and
// returns one line per frame plus the position of the first frame.
func callerFrames() ([]string, string) {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	const self = "rivaas.dev/respond/problem."

	var (
		lines    []string
		location string
	)
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, self) {
			pos := fmt.Sprintf("%s:%d", frame.File, frame.Line)
			if location == "" {
				location = pos
			}
			lines = append(lines, frame.Function+" ("+pos+")")
			if len(lines) == maxTraceFrames {
				break
			}
		}
		if !more {
			break
		}
	}

	return lines, location
}

// generateErrorRef returns 16 lowercase hex characters from crypto/rand,
// falling back to a timestamp if the random source fails.
func generateErrorRef() string {
	b := make([]byte, 8) //nolint:makezero // crypto/rand.Read requires pre-allocated buffer
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%016x", time.Now().UnixNano())
	}

	return hex.EncodeToString(b)
}
