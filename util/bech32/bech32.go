// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bech32

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// MaxLength is the longest bech32 string accepted.
const MaxLength = 90

// checksumLength is the number of characters of the checksum.
const checksumLength = 6

// Decode decodes a bech32 encoded string, returning the lowercase
// human-readable part and the data part excluding the checksum. The data part
// is returned as 5-bit groups. Strings carrying a bech32m checksum are
// rejected.
func Decode(bech string) (string, []byte, error) {
	if len(bech) > MaxLength {
		return "", nil, bech32Error(ErrInvalidLength,
			"invalid bech32 string length %d", len(bech))
	}

	hrp, data, version, err := bech32.DecodeGeneric(bech)
	if err != nil {
		return "", nil, classify(err)
	}
	if version != bech32.Version0 {
		return "", nil, bech32Error(ErrInvalidChecksum,
			"checksum failed for %s: not a bech32 checksum", bech)
	}
	return hrp, data, nil
}

// Encode encodes a byte slice into a bech32 string with the human-readable
// part hrp. Note that the bytes must each encode 5 bits (base32). The
// result is lowercase.
func Encode(hrp string, data []byte) (string, error) {
	hrp = strings.ToLower(hrp)
	if length := len(hrp) + len(data) + 1 + checksumLength; length > MaxLength {
		return "", bech32Error(ErrInvalidLength,
			"encoded length %d exceeds %d", length, MaxLength)
	}

	encoded, err := bech32.Encode(hrp, data)
	if err != nil {
		return "", classify(err)
	}
	return encoded, nil
}

// ConvertBits converts a byte slice where each byte is encoding fromBits bits,
// to a byte slice where each byte is encoding toBits bits. Input bytes wider
// than fromBits are rejected rather than truncated.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits >= 1 && fromBits < 8 {
		for _, b := range data {
			if b>>fromBits != 0 {
				return nil, bech32Error(ErrInvalidDataByte,
					"invalid data byte %d for %d bit groups", b, fromBits)
			}
		}
	}

	regrouped, err := bech32.ConvertBits(data, fromBits, toBits, pad)
	if err != nil {
		return nil, classify(err)
	}
	return regrouped, nil
}

// classify maps a codec failure onto an Error carrying its ErrorCode.
func classify(err error) error {
	var code ErrorCode
	switch err.(type) {
	case bech32.ErrMixedCase:
		code = ErrMixedCase
	case bech32.ErrInvalidLength:
		code = ErrInvalidLength
	case bech32.ErrInvalidCharacter, bech32.ErrNonCharsetChar:
		code = ErrInvalidCharacter
	case bech32.ErrInvalidSeparatorIndex:
		code = ErrInvalidSeparatorIndex
	case bech32.ErrInvalidChecksum:
		code = ErrInvalidChecksum
	case bech32.ErrInvalidDataByte, bech32.ErrInvalidBitGroups:
		code = ErrInvalidDataByte
	case bech32.ErrInvalidIncompleteGroup:
		code = ErrInvalidPadding
	default:
		return err
	}
	return Error{ErrorCode: code, Description: err.Error()}
}
