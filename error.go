package cpio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMagic indicates that the leading bytes of the archive
	// match none of the known cpio header encodings.
	ErrUnknownMagic = errors.New("cpio: unknown magic")

	// ErrUnexpectedEOF indicates that a header, file name or file
	// content region extends past the end of the archive buffer.
	ErrUnexpectedEOF = errors.New("cpio: unexpected end of archive")
)

// FieldError indicates that a header field holds a value that is
// invalid for its encoding, such as a non-digit byte in a numeric
// field or a name length of zero. Header fields are fixed-width, so a
// bad field leaves the remaining field boundaries unrecoverable and
// decoding cannot continue.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cpio: field %s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
