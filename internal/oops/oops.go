package oops

import (
	"errors"
	"fmt"

	"github.com/go-stack/stack"
	"github.com/rs/zerolog"
)

// Kind is a stable category for an error. Callers branch on Kind rather than
// matching error strings; a Kind is itself an error so it works with errors.Is.
type Kind string

const (
	SizeLimitExceeded    Kind = "SizeLimitExceeded"
	MalformedContainer   Kind = "MalformedContainer"
	ChecksumMismatch     Kind = "ChecksumMismatch"
	PayloadNotFound      Kind = "PayloadNotFound"
	InvalidEncoding      Kind = "InvalidEncoding"
	FormatMismatch       Kind = "FormatMismatch"
	AuthenticationFailed Kind = "AuthenticationFailed"
	IO                   Kind = "IO"
)

func (k Kind) Error() string {
	return string(k)
}

type Error struct {
	Kind    Kind
	Message string
	Wrapped error
	Stack   CallStack
}

func (e *Error) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches a target Kind, so errors.Is(err, oops.ChecksumMismatch) works
// through any amount of wrapping.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

type CallStack []StackFrame

func (s CallStack) MarshalZerologArray(a *zerolog.Array) {
	for _, frame := range s {
		a.Object(frame)
	}
}

type StackFrame struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Function string `json:"function"`
}

func (f StackFrame) MarshalZerologObject(e *zerolog.Event) {
	e.
		Str("file", f.File).
		Int("line", f.Line).
		Str("function", f.Function)
}

var ZerologStackMarshaler = func(err error) interface{} {
	var asOops *Error
	if errors.As(err, &asOops) {
		return asOops.Stack
	}
	return nil
}

// New creates an error of the given kind, optionally wrapping a cause, and
// records the caller's stack.
func New(kind Kind, wrapped error, format string, args ...interface{}) error {
	frames := Trace()
	if len(frames) > 0 {
		frames = frames[1:]
	}

	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Wrapped: wrapped,
		Stack:   frames,
	}
}

// Trace captures the current call stack, excluding Trace itself.
func Trace() CallStack {
	trace := stack.Trace().TrimRuntime()
	frames := make(CallStack, 0, len(trace))
	for i, call := range trace {
		if i == 0 {
			continue
		}
		callFrame := call.Frame()
		frames = append(frames, StackFrame{
			File:     callFrame.File,
			Line:     callFrame.Line,
			Function: callFrame.Function,
		})
	}
	return frames
}

// KindOf returns the Kind of err, or "" if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}
