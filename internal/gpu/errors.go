package gpu

import (
	"errors"
	"fmt"
)

// ErrorKind tags every failure a device can report. Kinds are errors
// themselves so callers can write errors.Is(err, gpu.PipelineError).
type ErrorKind uint8

const (
	// ResourceError reports a render target or texture that could not be
	// allocated or written, e.g. invalid dimensions.
	ResourceError ErrorKind = iota + 1
	// ShaderError reports a program that failed to compile or link. The
	// wrapped error carries the backend diagnostic text.
	ShaderError
	// PipelineError reports a failure while binding or drawing in a pass.
	PipelineError
	// GeometryError reports a primitive that could not be built.
	GeometryError
)

func (k ErrorKind) String() string {
	switch k {
	case ResourceError:
		return "resource error"
	case ShaderError:
		return "shader error"
	case PipelineError:
		return "pipeline error"
	case GeometryError:
		return "geometry error"
	default:
		return fmt.Sprintf("gpu error kind %d", uint8(k))
	}
}

func (k ErrorKind) Error() string { return k.String() }

// Error is the single tagged result type surfaced by devices and by the
// simulation controller.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

// Errorf builds an *Error of the given kind with a formatted cause.
func Errorf(kind ErrorKind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap tags err with kind and op. Errors that already carry a kind keep it so
// a backend's classification survives re-wrapping at the controller boundary.
func Wrap(kind ErrorKind, op string, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return &Error{Kind: e.Kind, Op: op, Err: e}
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// KindOf returns the kind of the outermost *Error in err's chain, or zero.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
