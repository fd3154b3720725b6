// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of script error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrUnsupportedAddress is returned when an address has no locking
	// script form.
	ErrUnsupportedAddress ErrorCode = iota

	// ErrTooManyRequiredSigs is returned when a multisig script requires
	// more signatures than it has public keys, or fewer than one.
	ErrTooManyRequiredSigs

	// ErrTooManyPubKeys is returned when a multisig script would carry
	// more than MaxPubKeysPerMultiSig public keys.
	ErrTooManyPubKeys

	// ErrTooMuchNullData is returned when a null data script would carry
	// more than MaxDataCarrierSize bytes.
	ErrTooMuchNullData

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrUnsupportedAddress:  "ErrUnsupportedAddress",
	ErrTooManyRequiredSigs: "ErrTooManyRequiredSigs",
	ErrTooManyPubKeys:      "ErrTooManyPubKeys",
	ErrTooMuchNullData:     "ErrTooMuchNullData",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a script-related error. The caller can use type assertions
// or IsErrorCode to access the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// scriptError creates an Error given a set of arguments.
func scriptError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether err is an Error, possibly wrapped, with the
// given code.
func IsErrorCode(err error, c ErrorCode) bool {
	var serr Error
	return errors.As(err, &serr) && serr.ErrorCode == c
}
