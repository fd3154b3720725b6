// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain provides the context-free block and transaction rules that
can be evaluated without any chain state.

It covers the merkle tree over transaction identifiers (including inclusion
proofs), the conversion between the compact "bits" representation of a
proof-of-work target and its full 256-bit value, the proof-of-work comparison
itself and a set of sanity checks over decoded transactions and blocks.

None of these checks run implicitly. Decoding a block through the wire package
never verifies its merkle root or proof of work; callers that need those
guarantees invoke CheckBlockSanity or the individual helpers.

Errors

Failed checks return a RuleError. Use IsErrorCode to test for a specific
ErrorCode without caring whether the error was wrapped.
*/
package blockchain
