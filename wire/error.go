// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of decoding failure.
type ErrorCode int

// These constants are used to identify a specific CodecError.
const (
	// ErrUnexpectedEOF indicates the input ended before a field was
	// complete.
	ErrUnexpectedEOF ErrorCode = iota

	// ErrOversizedLength indicates a declared length or element count
	// exceeds either the protocol maximum or the bytes remaining in the
	// input.
	ErrOversizedLength

	// ErrMalformedScript indicates a script push declares more data than
	// the script holds.
	ErrMalformedScript

	// ErrTrailingBytes indicates a value decoded successfully but the
	// input was not fully consumed.
	ErrTrailingBytes

	// ErrNonCanonicalVarInt indicates a variable length integer was not
	// encoded with the shortest tag.
	ErrNonCanonicalVarInt

	// ErrInvalidWitnessFlag indicates an unknown segregated witness flag,
	// or a witness flag on a transaction that carries no witness data.
	ErrInvalidWitnessFlag

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnexpectedEOF:      "ErrUnexpectedEOF",
	ErrOversizedLength:    "ErrOversizedLength",
	ErrMalformedScript:    "ErrMalformedScript",
	ErrTrailingBytes:      "ErrTrailingBytes",
	ErrNonCanonicalVarInt: "ErrNonCanonicalVarInt",
	ErrInvalidWitnessFlag: "ErrInvalidWitnessFlag",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// CodecError describes an issue with decoding consensus encoded data. The
// caller can use type assertions or IsErrorCode to determine the specific
// kind of failure.
type CodecError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Func        string    // Function name
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e CodecError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}
	return e.Description
}

// messageError creates an error for the given function and description.
func messageError(code ErrorCode, f string, desc string) CodecError {
	return CodecError{ErrorCode: code, Func: f, Description: desc}
}

// NewCodecError creates a CodecError for packages that decode data built on
// top of the consensus encoding.
func NewCodecError(code ErrorCode, f string, desc string) CodecError {
	return messageError(code, f, desc)
}

// IsErrorCode returns whether err is a CodecError, possibly wrapped, with
// the given code.
func IsErrorCode(err error, code ErrorCode) bool {
	var codecErr CodecError
	return errors.As(err, &codecErr) && codecErr.ErrorCode == code
}

// readError converts short reads into ErrUnexpectedEOF codec errors. Any
// other error is returned unchanged.
func readError(err error, f string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return messageError(ErrUnexpectedEOF, f, "unexpected end of data")
	}
	return err
}
