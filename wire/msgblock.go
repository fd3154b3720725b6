// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"

	"github.com/kaspanet/chainwire/util/chainhash"
)

// defaultTransactionAlloc is the default size used for the backing array
// for transactions. The transaction array will dynamically grow as needed, but
// this figure is intended to provide enough space for the number of
// transactions in the vast majority of blocks without needing to grow the
// backing array multiple times.
const defaultTransactionAlloc = 2048

// MaxBlockPayload is the maximum bytes a block message can be in bytes.
// After Segregated Witness, the max block payload has been raised to 4MB.
const MaxBlockPayload = 4000000

// maxTxPerBlock is the maximum number of transactions that could
// possibly fit into a block.
const maxTxPerBlock = (MaxBlockPayload / minTxPayload) + 1

// MsgBlock implements the bitcoin block: a header followed by its
// transactions.
type MsgBlock struct {
	Header       BlockHeader
	Transactions []*MsgTx
}

// AddTransaction adds a transaction to the message.
func (msg *MsgBlock) AddTransaction(tx *MsgTx) {
	msg.Transactions = append(msg.Transactions, tx)
}

// ClearTransactions removes all transactions from the message.
func (msg *MsgBlock) ClearTransactions() {
	msg.Transactions = make([]*MsgTx, 0, defaultTransactionAlloc)
}

// BtcDecode decodes r using the consensus encoding into the receiver. The
// merkle root in the header is not checked against the transactions. The
// receiver is left untouched on failure.
func (msg *MsgBlock) BtcDecode(r io.Reader, enc MessageEncoding) error {
	var block MsgBlock
	err := readBlockHeader(r, &block.Header)
	if err != nil {
		return err
	}

	txCount, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// Prevent more transactions than could possibly fit into a block.
	// It would be possible to cause memory exhaustion and panics without
	// a sane upper bound on this count.
	err = checkDeclaredLength(r, txCount, minTxPayload, maxTxPerBlock,
		"MsgBlock.BtcDecode", "transactions")
	if err != nil {
		return err
	}

	block.Transactions = make([]*MsgTx, 0, txCount)
	for i := uint64(0); i < txCount; i++ {
		tx := MsgTx{}
		err := tx.BtcDecode(r, enc)
		if err != nil {
			return err
		}
		block.Transactions = append(block.Transactions, &tx)
	}

	*msg = block
	return nil
}

// Deserialize decodes a block from r into the receiver, accepting witness
// transactions. If Deserialize fails the receiver is left unchanged.
func (msg *MsgBlock) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, WitnessEncoding)
}

// DeserializeNoWitness decodes a block from r into the receiver reading every
// transaction in the base layout.
func (msg *MsgBlock) DeserializeNoWitness(r io.Reader) error {
	return msg.BtcDecode(r, BaseEncoding)
}

// BtcEncode encodes the receiver to w using the consensus encoding.
func (msg *MsgBlock) BtcEncode(w io.Writer, enc MessageEncoding) error {
	err := writeBlockHeader(w, &msg.Header)
	if err != nil {
		return err
	}

	err = WriteVarInt(w, uint64(len(msg.Transactions)))
	if err != nil {
		return err
	}

	for _, tx := range msg.Transactions {
		err = tx.BtcEncode(w, enc)
		if err != nil {
			return err
		}
	}

	return nil
}

// Serialize encodes the block to w, carrying witness data for the
// transactions that have it.
func (msg *MsgBlock) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, WitnessEncoding)
}

// SerializeNoWitness encodes a block to w with every transaction in the base
// layout.
func (msg *MsgBlock) SerializeNoWitness(w io.Writer) error {
	return msg.BtcEncode(w, BaseEncoding)
}

// Bytes returns the serialized block including witness data.
func (msg *MsgBlock) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return buf.Bytes()
}

// SerializeSize returns the number of bytes it would take to serialize the
// block, factoring in any witness data within transaction.
func (msg *MsgBlock) SerializeSize() int {
	// Block header bytes + Serialized varint size for the number of
	// transactions.
	n := BlockHeaderPayload + VarIntSerializeSize(uint64(len(msg.Transactions)))

	for _, tx := range msg.Transactions {
		n += tx.SerializeSize()
	}

	return n
}

// SerializeSizeStripped returns the number of bytes it would take to serialize
// the block, excluding any witness data (if any).
func (msg *MsgBlock) SerializeSizeStripped() int {
	// Block header bytes + Serialized varint size for the number of
	// transactions.
	n := BlockHeaderPayload + VarIntSerializeSize(uint64(len(msg.Transactions)))

	for _, tx := range msg.Transactions {
		n += tx.SerializeSizeStripped()
	}

	return n
}

// BlockHash computes the block identifier hash for this block.
func (msg *MsgBlock) BlockHash() chainhash.Hash {
	return msg.Header.BlockHash()
}

// TxHashes returns a slice of hashes of all of transactions in this block.
func (msg *MsgBlock) TxHashes() []chainhash.Hash {
	hashList := make([]chainhash.Hash, 0, len(msg.Transactions))
	for _, tx := range msg.Transactions {
		hashList = append(hashList, tx.TxHash())
	}
	return hashList
}

// NewMsgBlock returns a new bitcoin block message that conforms to the
// Message interface. See MsgBlock for details.
func NewMsgBlock(blockHeader *BlockHeader) *MsgBlock {
	return &MsgBlock{
		Header:       *blockHeader,
		Transactions: make([]*MsgTx, 0, defaultTransactionAlloc),
	}
}

// DecodeBlock decodes a complete serialized block. Input left over after the
// last transaction is an ErrTrailingBytes error.
func DecodeBlock(serialized []byte) (*MsgBlock, error) {
	r := bytes.NewReader(serialized)
	block := &MsgBlock{}
	err := block.Deserialize(r)
	if err != nil {
		return nil, err
	}
	err = checkConsumed(r, "DecodeBlock")
	if err != nil {
		return nil, err
	}
	return block, nil
}
