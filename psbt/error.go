package psbt

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode identifies a kind of PSBT error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidMagic indicates the packet does not start with "psbt".
	ErrInvalidMagic ErrorCode = iota

	// ErrInvalidSeparator indicates the magic is not followed by 0xff.
	ErrInvalidSeparator

	// ErrInvalidKey indicates a known key type carries key data it must
	// not have, or lacks key data it requires.
	ErrInvalidKey

	// ErrDuplicateKey indicates a key appears more than once in a map.
	ErrDuplicateKey

	// ErrUnsignedTxHasScriptSigs indicates an input of the unsigned
	// transaction has a signature script.
	ErrUnsignedTxHasScriptSigs

	// ErrUnsignedTxHasScriptWitnesses indicates an input of the unsigned
	// transaction has witness data.
	ErrUnsignedTxHasScriptWitnesses

	// ErrMustHaveUnsignedTx indicates the global map has no unsigned
	// transaction.
	ErrMustHaveUnsignedTx

	// ErrUnexpectedUnsignedTx indicates two maps being merged describe
	// different unsigned transactions.
	ErrUnexpectedUnsignedTx

	// ErrMergeConflict indicates two maps being merged hold irreconcilable
	// values under the same key.
	ErrMergeConflict

	// ErrParseFailed indicates a value could not be decoded.
	ErrParseFailed

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidMagic:                 "ErrInvalidMagic",
	ErrInvalidSeparator:             "ErrInvalidSeparator",
	ErrInvalidKey:                   "ErrInvalidKey",
	ErrDuplicateKey:                 "ErrDuplicateKey",
	ErrUnsignedTxHasScriptSigs:      "ErrUnsignedTxHasScriptSigs",
	ErrUnsignedTxHasScriptWitnesses: "ErrUnsignedTxHasScriptWitnesses",
	ErrMustHaveUnsignedTx:           "ErrMustHaveUnsignedTx",
	ErrUnexpectedUnsignedTx:         "ErrUnexpectedUnsignedTx",
	ErrMergeConflict:                "ErrMergeConflict",
	ErrParseFailed:                  "ErrParseFailed",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a PSBT violation. The caller can use type assertions or
// IsErrorCode to access the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// psbtError creates an Error given a set of arguments.
func psbtError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether err is an Error, possibly wrapped, with the
// given code.
func IsErrorCode(err error, c ErrorCode) bool {
	var perr Error
	return errors.As(err, &perr) && perr.ErrorCode == c
}
