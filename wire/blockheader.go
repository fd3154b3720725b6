// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
	"time"

	"github.com/kaspanet/chainwire/util/chainhash"
)

// BlockHeaderPayload is the number of bytes a block header is.
// Version 4 bytes + Timestamp 4 bytes + Bits 4 bytes + Nonce 4 bytes +
// PrevBlock and MerkleRoot hashes.
const BlockHeaderPayload = 16 + (chainhash.HashSize * 2)

// BlockHeader defines information about a block and is used in the bitcoin
// block (MsgBlock) message.
type BlockHeader struct {
	// Version of the block. This is not the same as the protocol version.
	Version int32

	// Hash of the previous block header in the block chain.
	PrevBlock chainhash.Hash

	// Merkle tree reference to hash of all transactions for the block.
	MerkleRoot chainhash.Hash

	// Time the block was created as seconds since the unix epoch. It is
	// held exactly as it is encoded on the wire.
	Timestamp uint32

	// Difficulty target for the block.
	Bits uint32

	// Nonce used to generate the block.
	Nonce uint32
}

// Time returns the header timestamp as a time.Time in UTC.
func (h *BlockHeader) Time() time.Time {
	return time.Unix(int64(h.Timestamp), 0).UTC()
}

// BlockHash computes the block identifier hash for the given block header.
func (h *BlockHeader) BlockHash() chainhash.Hash {
	// Encode the header and double sha256 everything. Ignore the error
	// returns since there is no way the encode could fail except being out
	// of memory which would cause a run-time panic.
	writer := chainhash.NewDoubleHashWriter()
	_ = writeBlockHeader(writer, h)

	return writer.Finalize()
}

// Deserialize decodes a block header from r into the receiver. If
// Deserialize fails the receiver is left unchanged.
func (h *BlockHeader) Deserialize(r io.Reader) error {
	var header BlockHeader
	err := readBlockHeader(r, &header)
	if err != nil {
		return err
	}
	*h = header
	return nil
}

// Serialize encodes the block header to w.
func (h *BlockHeader) Serialize(w io.Writer) error {
	return writeBlockHeader(w, h)
}

// Bytes returns the 80-byte serialized block header.
func (h *BlockHeader) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, BlockHeaderPayload))
	_ = writeBlockHeader(buf, h)
	return buf.Bytes()
}

// SerializeSize returns the number of bytes it would take to serialize the
// block header.
func (h *BlockHeader) SerializeSize() int {
	return BlockHeaderPayload
}

// NewBlockHeader returns a new BlockHeader using the provided version, previous
// block hash, merkle root hash, difficulty bits, and nonce used to generate the
// block with defaults for the remaining fields.
func NewBlockHeader(version int32, prevHash, merkleRootHash *chainhash.Hash,
	bits uint32, nonce uint32) *BlockHeader {

	return &BlockHeader{
		Version:    version,
		PrevBlock:  *prevHash,
		MerkleRoot: *merkleRootHash,
		Timestamp:  uint32(time.Now().Unix()),
		Bits:       bits,
		Nonce:      nonce,
	}
}

// DecodeBlockHeader decodes exactly one serialized block header. Input left
// over after the header is an ErrTrailingBytes error.
func DecodeBlockHeader(serialized []byte) (*BlockHeader, error) {
	r := bytes.NewReader(serialized)
	header := &BlockHeader{}
	err := header.Deserialize(r)
	if err != nil {
		return nil, err
	}
	err = checkConsumed(r, "DecodeBlockHeader")
	if err != nil {
		return nil, err
	}
	return header, nil
}

// readBlockHeader reads a bitcoin block header from r.
func readBlockHeader(r io.Reader, bh *BlockHeader) error {
	return readElements(r, &bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		&bh.Timestamp, &bh.Bits, &bh.Nonce)
}

// writeBlockHeader writes a bitcoin block header to w.
func writeBlockHeader(w io.Writer, bh *BlockHeader) error {
	return writeElements(w, bh.Version, &bh.PrevBlock, &bh.MerkleRoot,
		bh.Timestamp, bh.Bits, bh.Nonce)
}
