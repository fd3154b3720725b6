// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"

	"github.com/kaspanet/chainwire/txscript"
	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/kaspanet/chainwire/wire"
)

const (
	// testBits is an easy target, roughly every other nonce satisfies it.
	testBits = 0x207fffff
)

// testPowLimit is the highest target testBits may encode.
var testPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

// newCoinbaseTx returns a coinbase transaction paying 50 coins to an
// anyone-can-spend script.
func newCoinbaseTx() *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	prevOut := wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex)
	tx.AddTxIn(wire.NewTxIn(prevOut, []byte{txscript.OP_1, txscript.OP_1}, nil))
	tx.AddTxOut(wire.NewTxOut(50*wire.SatoshiPerBitcoin, []byte{txscript.OP_TRUE}))
	return tx
}

// newSpendTx returns a transaction spending output index of prev.
func newSpendTx(prev *wire.MsgTx, index uint32) *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	prevHash := prev.TxHash()
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&prevHash, index), nil, nil))
	tx.AddTxOut(wire.NewTxOut(prev.TxOut[index].Value, []byte{txscript.OP_TRUE}))
	return tx
}

// newTestBlock returns a block committing to transactions whose header
// satisfies testBits.
func newTestBlock(transactions ...*wire.MsgTx) *wire.MsgBlock {
	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:   1,
			Timestamp: 1600000000,
			Bits:      testBits,
		},
		Transactions: transactions,
	}
	block.Header.MerkleRoot = CalcBlockMerkleRoot(block)
	solveBlock(&block.Header)
	return block
}

// solveBlock increments the nonce of header until its hash is not above the
// target its bits encode.
func solveBlock(header *wire.BlockHeader) {
	target := CompactToBig(header.Bits)
	for {
		hash := header.BlockHash()
		if chainhash.HashToBig(&hash).Cmp(target) <= 0 {
			return
		}
		header.Nonce++
	}
}
