// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/bits"

	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/kaspanet/chainwire/wire"
)

// nextPowerOfTwo returns the next highest power of two from a given number if
// it is not already a power of two. This is a helper function used during the
// calculation of a merkle tree.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// HashMerkleBranches takes two hashes, treated as the left and right tree
// nodes, and returns the hash of their concatenation. This is a helper
// function used to aid in the generation of a merkle tree.
func HashMerkleBranches(left *chainhash.Hash, right *chainhash.Hash) *chainhash.Hash {
	// Concatenate the left and right nodes.
	var hash [chainhash.HashSize * 2]byte
	copy(hash[:chainhash.HashSize], left[:])
	copy(hash[chainhash.HashSize:], right[:])

	newHash := chainhash.DoubleHashH(hash[:])
	return &newHash
}

// BuildMerkleTreeStore creates a merkle tree from a slice of hashes, stores
// it using a linear array, and returns a slice of the backing array. A linear
// array was chosen as opposed to an actual tree structure since it uses about
// half as much memory. The following describes a merkle tree and how it is
// stored in a linear array.
//
// A merkle tree is a tree in which every non-leaf node is the hash of its
// children nodes. A diagram depicting how this works for transactions where
// h(x) is a double sha256 follows:
//
//	         root = h1234 = h(h12 + h34)
//	        /                           \
//	  h12 = h(h1 + h2)            h34 = h(h3 + h4)
//	   /            \              /            \
//	h1 = h(tx1)  h2 = h(tx2)    h3 = h(tx3)  h4 = h(tx4)
//
// The above stored as a linear array is as follows:
//
//	[h1 h2 h3 h4 h12 h34 root]
//
// As the above shows, the merkle root is always the last element in the array.
//
// The number of inputs is not always a power of two which results in a
// balanced tree structure as above. In that case, parent nodes with no
// children are also zero and parent nodes with only a single left node
// are calculated by concatenating the left node with itself before hashing.
// Since this function uses nodes that are pointers to the hashes, empty nodes
// will be nil.
//
// An empty input yields a nil store.
func BuildMerkleTreeStore(hashes []chainhash.Hash) []*chainhash.Hash {
	if len(hashes) == 0 {
		return nil
	}

	// Calculate how many entries are required to hold the binary merkle
	// tree as a linear array and create an array of that size.
	nextPoT := nextPowerOfTwo(len(hashes))
	arraySize := nextPoT*2 - 1
	merkles := make([]*chainhash.Hash, arraySize)

	// Create the base transaction hashes and populate the array with them.
	for i := range hashes {
		hash := hashes[i]
		merkles[i] = &hash
	}

	// Start the array offset after the last transaction and adjusted to the
	// next power of two.
	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		// When there is no left child node, the parent is nil too.
		case merkles[i] == nil:
			merkles[offset] = nil

		// When there is no right child, the parent is generated by
		// hashing the concatenation of the left child with itself.
		case merkles[i+1] == nil:
			merkles[offset] = HashMerkleBranches(merkles[i], merkles[i])

		// The normal case sets the parent node to the double sha256
		// of the concatentation of the left and right children.
		default:
			merkles[offset] = HashMerkleBranches(merkles[i], merkles[i+1])
		}
		offset++
	}

	return merkles
}

// CalcMerkleRoot returns the merkle root of the given ordered hashes. A single
// hash is its own root. The root of an empty list is the zero hash.
func CalcMerkleRoot(hashes []chainhash.Hash) chainhash.Hash {
	merkles := BuildMerkleTreeStore(hashes)
	if len(merkles) == 0 {
		return chainhash.Hash{}
	}
	return *merkles[len(merkles)-1]
}

// CalcBlockMerkleRoot returns the merkle root of the transaction identifiers
// of the block. The result is what a valid header commits to in its
// MerkleRoot field.
func CalcBlockMerkleRoot(block *wire.MsgBlock) chainhash.Hash {
	return CalcMerkleRoot(block.TxHashes())
}

// CalcWitnessMerkleRoot returns the merkle root of the witness hashes of the
// block's transactions, with the coinbase witness hash replaced by the zero
// hash. This is the root a segregated witness commitment is built from.
func CalcWitnessMerkleRoot(block *wire.MsgBlock) chainhash.Hash {
	hashes := make([]chainhash.Hash, len(block.Transactions))
	for i, tx := range block.Transactions {
		if i == 0 {
			continue
		}
		hashes[i] = tx.WitnessHash()
	}
	return CalcMerkleRoot(hashes)
}

// MerkleProof links a leaf to a merkle root. Siblings holds, from the bottom
// level up, the hash each intermediate node is paired with. Index is the
// position of the leaf and selects, bit by bit, which side the running hash
// sits on.
type MerkleProof struct {
	Index    uint32
	Siblings []chainhash.Hash
}

// BuildMerkleProof returns the inclusion proof of the leaf at index within the
// tree built over hashes.
func BuildMerkleProof(hashes []chainhash.Hash, index int) (*MerkleProof, error) {
	if index < 0 || index >= len(hashes) {
		str := fmt.Sprintf("leaf index %d is out of range for a tree "+
			"with %d leaves", index, len(hashes))
		return nil, ruleError(ErrBadMerkleProof, str)
	}

	proof := &MerkleProof{Index: uint32(index)}
	level := make([]chainhash.Hash, len(hashes))
	copy(level, hashes)
	position := index
	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}
		proof.Siblings = append(proof.Siblings, level[position^1])

		next := make([]chainhash.Hash, len(level)/2)
		for i := range next {
			next[i] = *HashMerkleBranches(&level[2*i], &level[2*i+1])
		}
		level = next
		position /= 2
	}

	return proof, nil
}

// VerifyMerkleProof reports whether the proof links leaf to root.
func VerifyMerkleProof(leaf, root *chainhash.Hash, proof *MerkleProof) bool {
	current := leaf
	position := proof.Index
	for i := range proof.Siblings {
		sibling := &proof.Siblings[i]
		if position&1 == 0 {
			current = HashMerkleBranches(current, sibling)
		} else {
			current = HashMerkleBranches(sibling, current)
		}
		position >>= 1
	}

	// Any remaining bits mean the index points outside the proven tree.
	if position != 0 {
		return false
	}
	return current.IsEqual(root)
}
