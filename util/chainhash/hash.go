// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"bytes"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// HashSize of array used to store hashes. See Hash.
const HashSize = 32

// Hash160Size is the size of the short digest used for address payloads.
const Hash160Size = 20

// MaxHashStringSize is the maximum length of a Hash hash string.
const MaxHashStringSize = HashSize * 2

// MaxHash160StringSize is the maximum length of a Hash160 hash string.
const MaxHash160StringSize = Hash160Size * 2

// ErrHashStrSize describes an error that indicates the caller specified a hash
// string that has too many characters.
var ErrHashStrSize = errors.Errorf("max hash string length is %d bytes", MaxHashStringSize)

// ErrHash160StrSize describes an error that indicates the caller specified a
// short hash string that has too many characters.
var ErrHash160StrSize = errors.Errorf("max hash160 string length is %d bytes", MaxHash160StringSize)

// Hash is used in several of the ledger messages and common structures. It
// typically represents the double sha256 of data.
type Hash [HashSize]byte

// Hash160 is the ripemd160(sha256(data)) digest carried by pay-to-pubkey-hash
// and pay-to-script-hash addresses.
type Hash160 [Hash160Size]byte

// String returns the Hash as the hexadecimal string of the byte-reversed
// hash.
func (hash Hash) String() string {
	return reversedHex(hash[:])
}

// CloneBytes returns a copy of the bytes which represent the hash as a byte
// slice.
//
// NOTE: It is generally cheaper to just slice the hash directly thereby reusing
// the same bytes rather than calling this method.
func (hash *Hash) CloneBytes() []byte {
	newHash := make([]byte, HashSize)
	copy(newHash, hash[:])

	return newHash
}

// SetBytes sets the bytes which represent the hash. An error is returned if
// the number of bytes passed in is not HashSize.
func (hash *Hash) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != HashSize {
		return errors.Errorf("invalid hash length of %d, want %d", nhlen,
			HashSize)
	}
	copy(hash[:], newHash)

	return nil
}

// IsEqual returns true if target is the same as hash.
func (hash *Hash) IsEqual(target *Hash) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// Cmp compares hash and target as little endian 256-bit numbers and returns:
//
//   -1 if hash <  target
//    0 if hash == target
//   +1 if hash >  target
//
func (hash *Hash) Cmp(target *Hash) int {
	// We compare the hashes backwards because Hash is stored as a little endian byte array.
	for i := HashSize - 1; i >= 0; i-- {
		switch {
		case hash[i] < target[i]:
			return -1
		case hash[i] > target[i]:
			return 1
		}
	}
	return 0
}

// Less returns true iff hash a is less than hash b
func Less(a, b *Hash) bool {
	return a.Cmp(b) < 0
}

// NewHash returns a new Hash from a byte slice. An error is returned if
// the number of bytes passed in is not HashSize.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, err
}

// NewHashFromStr creates a Hash from a hash string. The string should be
// the hexadecimal string of a byte-reversed hash, but any missing characters
// result in zero padding at the end of the Hash.
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	err := decodeReversed(ret[:], MaxHashStringSize, ErrHashStrSize, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// HashToBig converts a Hash into a big.Int that can be used to
// perform math comparisons.
func HashToBig(hash *Hash) *big.Int {
	// A Hash is in little-endian, but the big package wants the bytes in
	// big-endian, so reverse them.
	buf := *hash
	blen := len(buf)
	for i := 0; i < blen/2; i++ {
		buf[i], buf[blen-1-i] = buf[blen-1-i], buf[i]
	}

	return new(big.Int).SetBytes(buf[:])
}

// Strings returns a slice of strings representing the hashes in the given slice of hashes
func Strings(hashes []*Hash) []string {
	strings := make([]string, len(hashes))
	for i, hash := range hashes {
		strings[i] = hash.String()
	}

	return strings
}

// JoinHashesStrings joins all the stringified hashes separated by a separator
func JoinHashesStrings(hashes []*Hash, separator string) string {
	return strings.Join(Strings(hashes), separator)
}

// String returns the Hash160 as the hexadecimal string of the byte-reversed
// digest.
func (hash Hash160) String() string {
	return reversedHex(hash[:])
}

// SetBytes sets the bytes which represent the digest. An error is returned if
// the number of bytes passed in is not Hash160Size.
func (hash *Hash160) SetBytes(newHash []byte) error {
	nhlen := len(newHash)
	if nhlen != Hash160Size {
		return errors.Errorf("invalid hash160 length of %d, want %d", nhlen,
			Hash160Size)
	}
	copy(hash[:], newHash)

	return nil
}

// IsEqual returns true if target is the same as hash.
func (hash *Hash160) IsEqual(target *Hash160) bool {
	if hash == nil && target == nil {
		return true
	}
	if hash == nil || target == nil {
		return false
	}
	return *hash == *target
}

// NewHash160 returns a new Hash160 from a byte slice. An error is returned if
// the number of bytes passed in is not Hash160Size.
func NewHash160(newHash []byte) (*Hash160, error) {
	var sh Hash160
	err := sh.SetBytes(newHash)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHash160FromStr creates a Hash160 from its byte-reversed hexadecimal
// string, zero padding missing characters like NewHashFromStr.
func NewHash160FromStr(hash string) (*Hash160, error) {
	ret := new(Hash160)
	err := decodeReversed(ret[:], MaxHash160StringSize, ErrHash160StrSize, hash)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func reversedHex(digest []byte) string {
	reversed := make([]byte, len(digest))
	for i, b := range digest {
		reversed[len(digest)-1-i] = b
	}
	return hex.EncodeToString(reversed)
}

// decodeReversed decodes the byte-reversed hexadecimal string encoding of a
// digest to a destination.
func decodeReversed(dst []byte, maxStringSize int, errSize error, src string) error {
	// Return error if hash string is too long.
	if len(src) > maxStringSize {
		return errSize
	}

	// Hex decoder expects the hash to be a multiple of two. When not, pad
	// with a leading zero.
	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}

	// Hex decode the source bytes to a temporary destination.
	reversedHash := make([]byte, len(dst))
	_, err := hex.Decode(reversedHash[len(dst)-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	// Reverse copy from the temporary hash to destination. Because the
	// temporary was zeroed, the written result will be correctly padded.
	for i := range dst {
		dst[i] = reversedHash[len(dst)-1-i]
	}

	return nil
}

// AreEqual returns true if both slices contain the same hashes in the same
// order.
func AreEqual(first []*Hash, second []*Hash) bool {
	if len(first) != len(second) {
		return false
	}

	for i := range first {
		if !bytes.Equal(first[i][:], second[i][:]) {
			return false
		}
	}

	return true
}
