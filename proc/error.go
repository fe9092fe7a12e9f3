// Copyright (c) 2024-2025 Blockwatch Data Inc.
// Author: alex@blockwatch.cc

package proc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures while reading procfs files.
type ErrorKind byte

const (
	// KindIO signals a failure of the underlying reader.
	KindIO ErrorKind = iota + 1

	// KindEndOfStream signals that the source ran out of lines while
	// the decoder expected more mandatory content.
	KindEndOfStream

	// KindDecode signals a malformed or missing mandatory field. The
	// error message names the field.
	KindDecode

	// KindInvariant signals content that breaks a documented kernel
	// contract, like a duplicate device name.
	KindInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindEndOfStream:
		return "end-of-stream"
	case KindDecode:
		return "decode"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Error is the error type returned by all readers in this package. A
// decoder aborts on the first failed mandatory field, so an Error
// always means the caller holds no partial result.
type Error struct {
	Kind ErrorKind // failure class
	Msg  string    // field name (decode) or violation detail (invariant)
	Err  error     // underlying cause for io errors
}

// Kind sentinels for use with errors.Is.
var (
	ErrIO          = &Error{Kind: KindIO}
	ErrEndOfStream = &Error{Kind: KindEndOfStream}
	ErrDecode      = &Error{Kind: KindDecode}
	ErrInvariant   = &Error{Kind: KindInvariant}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindEndOfStream:
		return "unexpected end of input"
	case KindDecode:
		return "cannot decode " + e.Msg
	case KindInvariant:
		return e.Msg
	default:
		if e.Err != nil {
			return "read: " + e.Err.Error()
		}
		return "read error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by kind so callers can test against the exported
// kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// IsEndOfStream reports whether err signals an exhausted source.
func IsEndOfStream(err error) bool {
	return errors.Is(err, ErrEndOfStream)
}

// IsDecode reports whether err signals a malformed mandatory field.
func IsDecode(err error) bool {
	return errors.Is(err, ErrDecode)
}

// IsInvariant reports whether err signals a broken kernel contract.
func IsInvariant(err error) bool {
	return errors.Is(err, ErrInvariant)
}

func ioError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

func endOfStream() error {
	return &Error{Kind: KindEndOfStream}
}

func decodeError(field string) error {
	return &Error{Kind: KindDecode, Msg: field}
}

func invariantError(format string, args ...any) error {
	return &Error{Kind: KindInvariant, Msg: fmt.Sprintf(format, args...)}
}
