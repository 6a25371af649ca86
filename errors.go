// SPDX-License-Identifier: EPL-2.0

package mp3bridge

import (
	"errors"
	"strings"

	"github.com/ik5/mp3bridge/formats/mp3"
	"github.com/ik5/mp3bridge/handle"
	"github.com/ik5/mp3bridge/internal/lame"
	"github.com/ik5/mp3bridge/stream"
)

// Kind categorizes a failure at the bridge boundary
type Kind string

const (
	KindClosedHandle     Kind = "closed_handle"     // zero, destroyed or stale handle
	KindInitialization   Kind = "initialization"    // encoder rejected its configuration
	KindNativeDecode     Kind = "native_decode"     // codec failure other than end of stream
	KindNativeEncode     Kind = "native_encode"     // encoder reported a negative count
	KindStreamIO         Kind = "stream_io"         // caller stream or context failure
	KindArrayMarshalling Kind = "array_marshalling" // result did not fit, or a recovered panic
	KindArgument         Kind = "argument"          // malformed caller input
)

// Class groups kinds the way a caller reacts to them
type Class string

const (
	ClassIllegalState    Class = "illegal_state"
	ClassIO              Class = "io"
	ClassRuntime         Class = "runtime"
	ClassIllegalArgument Class = "illegal_argument"
)

// Class returns the class of k, or "" for an unknown kind.
func (k Kind) Class() Class {
	switch k {
	case KindClosedHandle:
		return ClassIllegalState
	case KindInitialization, KindNativeDecode, KindNativeEncode, KindStreamIO:
		return ClassIO
	case KindArrayMarshalling:
		return ClassRuntime
	case KindArgument:
		return ClassIllegalArgument
	default:
		return ""
	}
}

// Error is the error type returned by every Bridge operation
type Error struct {
	Op     string
	Kind   Kind
	Handle handle.Handle
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteByte('[')
		b.WriteString(e.Op)
		b.WriteString("] ")
	}
	b.WriteString(string(e.Kind))

	if !e.Handle.IsZero() {
		b.WriteString(" on ")
		b.WriteString(e.Handle.String())
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with
// an Op also has to match the operation.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind && (t.Op == "" || t.Op == e.Op)
	}
	return false
}

// Sentinels for errors.Is
var (
	ErrClosedHandle     = &Error{Kind: KindClosedHandle}
	ErrInitialization   = &Error{Kind: KindInitialization}
	ErrNativeDecode     = &Error{Kind: KindNativeDecode}
	ErrNativeEncode     = &Error{Kind: KindNativeEncode}
	ErrStreamIO         = &Error{Kind: KindStreamIO}
	ErrArrayMarshalling = &Error{Kind: KindArrayMarshalling}
	ErrArgument         = &Error{Kind: KindArgument}
)

// KindOf returns the kind of err. Errors that did not come from a Bridge
// are classified by their cause, so package errors of formats/mp3, stream
// and handle map to the kind the Bridge would report for them.
func KindOf(err error) (Kind, bool) {
	if err == nil {
		return "", false
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}

	switch {
	case errors.Is(err, handle.ErrClosed), errors.Is(err, handle.ErrStale),
		errors.Is(err, mp3.ErrDecoderClosed), errors.Is(err, mp3.ErrEncoderClosed):
		return KindClosedHandle, true
	case errors.Is(err, mp3.ErrInit), errors.Is(err, lame.ErrUnavailable), errors.Is(err, lame.ErrInit):
		return KindInitialization, true
	case errors.Is(err, stream.ErrStreamIO):
		return KindStreamIO, true
	case errors.Is(err, mp3.ErrDecode):
		return KindNativeDecode, true
	case errors.Is(err, mp3.ErrEncode):
		return KindNativeEncode, true
	case errors.Is(err, mp3.ErrOutputOverflow):
		return KindArrayMarshalling, true
	case errors.Is(err, mp3.ErrInvalidSampleCount):
		return KindArgument, true
	}

	return "", false
}

// ClassOf returns the class of err, or "" when err is not classified.
func ClassOf(err error) Class {
	k, _ := KindOf(err)
	return k.Class()
}

// wrap turns err into an *Error for op. Causes that KindOf cannot place
// get fallback.
func wrap(op string, h handle.Handle, err error, fallback Kind) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	kind, ok := KindOf(err)
	if !ok {
		kind = fallback
	}

	return &Error{Op: op, Kind: kind, Handle: h, Err: err}
}
