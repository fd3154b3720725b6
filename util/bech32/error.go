// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"fmt"
)

// ErrorCode identifies a kind of bech32 failure.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrMixedCase indicates the string mixes upper and lower case
	// characters.
	ErrMixedCase ErrorCode = iota

	// ErrInvalidLength indicates the string is shorter than the minimum or
	// longer than the maximum bech32 length.
	ErrInvalidLength

	// ErrInvalidCharacter indicates a character outside the printable
	// ASCII range, or a data character outside the bech32 charset.
	ErrInvalidCharacter

	// ErrInvalidSeparatorIndex indicates the separator is missing, starts
	// the string, or leaves fewer than six checksum characters.
	ErrInvalidSeparatorIndex

	// ErrInvalidChecksum indicates the checksum does not match the rest
	// of the string.
	ErrInvalidChecksum

	// ErrInvalidDataByte indicates a value that does not fit the source
	// group width was passed to ConvertBits or Encode.
	ErrInvalidDataByte

	// ErrInvalidPadding indicates leftover bits that are too many or not
	// all zero when regrouping without padding.
	ErrInvalidPadding

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrMixedCase:             "ErrMixedCase",
	ErrInvalidLength:         "ErrInvalidLength",
	ErrInvalidCharacter:      "ErrInvalidCharacter",
	ErrInvalidSeparatorIndex: "ErrInvalidSeparatorIndex",
	ErrInvalidChecksum:       "ErrInvalidChecksum",
	ErrInvalidDataByte:       "ErrInvalidDataByte",
	ErrInvalidPadding:        "ErrInvalidPadding",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a bech32 encoding or decoding failure.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

func bech32Error(code ErrorCode, format string, args ...interface{}) Error {
	return Error{ErrorCode: code, Description: fmt.Sprintf(format, args...)}
}
