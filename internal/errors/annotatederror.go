// Package errors provides error wrapping that carries structured logging context.
//
// Errors created with [Wrap] accumulate [slog.Attr] annotations as they travel up
// the call stack. [SlogError] collects the annotations from the whole chain into
// a single attribute for logging at the top level.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
)

// annotatedError is an error with a message, structured logging attributes,
// and the program counter of the call site that created it.
type annotatedError struct {
	msg   string
	attrs []slog.Attr
	inner error
	pc    uintptr
}

// callerPC records the program counter skip+2 frames up the stack so that the
// reported source points at the caller of the exported constructor.
func callerPC(skip int) uintptr {
	var pcs [1]uintptr
	runtime.Callers(skip+2, pcs[:])
	return pcs[0]
}

// NewSentinel creates a new sentinel error without a cause.
//
// Use it for package-level error values that callers match with [Is].
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg, attrs: nil, inner: nil, pc: callerPC(1)}
}

// Wrap annotates err with a message and optional slog attributes.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, attrs: attrs, inner: err, pc: callerPC(1)}
}

// DecoratePanic converts a recovered panic value into an error pointing at the
// recovery site.
func DecoratePanic(recovered any) error {
	return &annotatedError{
		msg:   fmt.Sprintf("panic: %v", recovered),
		attrs: nil,
		inner: nil,
		pc:    callerPC(1),
	}
}

// Error implements the error interface.
func (e *annotatedError) Error() string {
	if e.inner == nil {
		return e.msg
	}
	return e.msg + ": " + e.inner.Error()
}

// Unwrap returns the wrapped error.
func (e *annotatedError) Unwrap() error {
	return e.inner
}

// source resolves the recorded program counter to a file:line attribute.
func (e *annotatedError) source() slog.Attr {
	frames := runtime.CallersFrames([]uintptr{e.pc})
	frame, _ := frames.Next()
	return slog.String("source", fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line))
}

// SlogError collects the error message, the source of the outermost annotation,
// and every annotation in the chain into a single grouped attribute suitable
// for logger.LogAttrs.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}
	args := []any{slog.String("message", err.Error())}
	var annotations []any
	sourced := false
	current := err
	for current != nil {
		var annotated *annotatedError
		if !errors.As(current, &annotated) {
			break
		}
		if !sourced {
			args = append(args, annotated.source())
			sourced = true
		}
		for _, attr := range annotated.attrs {
			annotations = append(annotations, attr)
		}
		current = annotated.inner
	}
	if len(annotations) > 0 {
		args = append(args, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", args...)
}

// New is a drop-in replacement for [errors.New].
func New(text string) error {
	return errors.New(text)
}

// Is is a drop-in replacement for [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a drop-in replacement for [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap is a drop-in replacement for [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join is a drop-in replacement for [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}
