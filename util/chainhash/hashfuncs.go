// Copyright (c) 2015 The Decred developers
// Copyright (c) 2016-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// HashB calculates hash(b) and returns the resulting bytes.
func HashB(b []byte) []byte {
	hash := sha256.Sum256(b)
	return hash[:]
}

// HashH calculates hash(b) and returns the resulting bytes as a Hash.
func HashH(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}

// DoubleHashB calculates hash(hash(b)) and returns the resulting bytes.
func DoubleHashB(b []byte) []byte {
	first := sha256.Sum256(b)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH calculates hash(hash(b)) and returns the resulting bytes as a
// Hash.
func DoubleHashH(b []byte) Hash {
	first := sha256.Sum256(b)
	return Hash(sha256.Sum256(first[:]))
}

// DoubleHashP calculates hash(hash(b)) and returns a pointer to the resulting
// Hash.
func DoubleHashP(b []byte) *Hash {
	hash := DoubleHashH(b)
	return &hash
}

// Hash160B calculates ripemd160(sha256(b)) and returns the resulting bytes.
func Hash160B(b []byte) []byte {
	hash := Hash160H(b)
	return hash[:]
}

// Hash160H calculates ripemd160(sha256(b)) and returns the resulting digest.
func Hash160H(b []byte) Hash160 {
	sha := sha256.Sum256(b)
	hasher := ripemd160.New()
	// hash.Hash writes never fail.
	_, _ = hasher.Write(sha[:])

	var hash Hash160
	copy(hash[:], hasher.Sum(nil))
	return hash
}
