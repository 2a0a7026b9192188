// Package stacktrace reads the call stacks recorded by github.com/cockroachdb/errors.
package stacktrace

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors/errbase"
)

// StackTrace is a recorded call stack, innermost frame first.
type StackTrace errbase.StackTrace

// Frame is a resolved stack frame.
type Frame struct {
	Function string
	File     string
	Line     int
}

func (f Frame) String() string {
	return fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line)
}

// FromError returns the innermost stack trace recorded on err or any error it wraps.
func FromError(err error) (StackTrace, bool) {
	var found StackTrace
	for ; err != nil; err = errbase.UnwrapOnce(err) {
		if p, ok := err.(errbase.StackTraceProvider); ok {
			found = StackTrace(p.StackTrace())
		}
	}
	return found, found != nil
}

// Frames resolves the stack. Runtime frames at the bottom of the stack are dropped.
func (s StackTrace) Frames() []Frame {
	end := len(s)
	for end > 0 {
		fn := runtime.FuncForPC(uintptr(s[end-1]) - 1)
		if fn == nil || !strings.HasPrefix(fn.Name(), "runtime.") {
			break
		}
		end--
	}

	frames := make([]Frame, 0, end)
	for _, pc := range s[:end] {
		fn := runtime.FuncForPC(uintptr(pc) - 1)
		if fn == nil {
			frames = append(frames, Frame{Function: "unknown"})
			continue
		}
		file, line := fn.FileLine(uintptr(pc) - 1)
		frames = append(frames, Frame{Function: fn.Name(), File: file, Line: line})
	}
	return frames
}

// Strings returns every frame formatted as "function file:line".
func (s StackTrace) Strings() []string {
	frames := s.Frames()
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = f.String()
	}
	return out
}

func (s StackTrace) String() string {
	return strings.Join(s.Strings(), "\n")
}
