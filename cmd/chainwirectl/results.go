package main

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/kaspanet/chainwire/blockchain"
	"github.com/kaspanet/chainwire/chaincfg"
	"github.com/kaspanet/chainwire/txscript"
	"github.com/kaspanet/chainwire/util"
	"github.com/kaspanet/chainwire/wire"
)

// sanityOK is reported for structures passing their sanity checks.
const sanityOK = "ok"

func sanity(err error) string {
	if err != nil {
		return err.Error()
	}
	return sanityOK
}

type scriptResult struct {
	Asm     string `json:"asm"`
	Hex     string `json:"hex"`
	Type    string `json:"type"`
	Address string `json:"address,omitempty"`
	P2SH    string `json:"p2sh,omitempty"`
	SigOps  int    `json:"sigOps"`
	Error   string `json:"error,omitempty"`
}

func newScriptResult(script []byte, params *chaincfg.Params) *scriptResult {
	// A script that fails to parse is disassembled up to the failure.
	asm, err := txscript.DisasmString(script)
	result := &scriptResult{
		Asm:    asm,
		Hex:    hex.EncodeToString(script),
		SigOps: txscript.GetSigOpCount(script),
	}
	if err != nil {
		result.Error = err.Error()
	}

	class, addr, err := txscript.ExtractScriptPubKeyAddress(script, params)
	result.Type = class.String()
	if err == nil && addr != nil {
		result.Address = addr.String()
	}
	return result
}

type scriptSigResult struct {
	Asm string `json:"asm"`
	Hex string `json:"hex"`
}

type txInResult struct {
	Coinbase  string           `json:"coinbase,omitempty"`
	TxID      string           `json:"txid,omitempty"`
	Vout      uint32           `json:"vout"`
	ScriptSig *scriptSigResult `json:"scriptSig,omitempty"`
	Witness   []string         `json:"txinwitness,omitempty"`
	Sequence  uint32           `json:"sequence"`
}

type txOutResult struct {
	Value        float64       `json:"value"`
	N            int           `json:"n"`
	ScriptPubKey *scriptResult `json:"scriptPubKey"`
}

type txResult struct {
	TxID     string         `json:"txid"`
	Hash     string         `json:"hash"`
	Version  int32          `json:"version"`
	Size     int            `json:"size"`
	VSize    int64          `json:"vsize"`
	Weight   int64          `json:"weight"`
	LockTime uint32         `json:"locktime"`
	Inputs   []*txInResult  `json:"vin"`
	Outputs  []*txOutResult `json:"vout"`
	SigOps   int            `json:"sigOps"`
	Sanity   string         `json:"sanity"`
}

func newTxResult(tx *wire.MsgTx, params *chaincfg.Params) *txResult {
	weight := blockchain.GetTransactionWeight(tx)
	result := &txResult{
		TxID:     tx.TxHash().String(),
		Hash:     tx.WitnessHash().String(),
		Version:  tx.Version,
		Size:     tx.SerializeSize(),
		VSize:    (weight + blockchain.WitnessScaleFactor - 1) / blockchain.WitnessScaleFactor,
		Weight:   weight,
		LockTime: tx.LockTime,
		Inputs:   make([]*txInResult, 0, len(tx.TxIn)),
		Outputs:  make([]*txOutResult, 0, len(tx.TxOut)),
		SigOps:   blockchain.CountSigOps(tx),
		Sanity:   sanity(blockchain.CheckTransactionSanity(tx)),
	}

	isCoinBase := tx.IsCoinBase()
	for _, txIn := range tx.TxIn {
		in := &txInResult{Sequence: txIn.Sequence}
		if isCoinBase {
			in.Coinbase = hex.EncodeToString(txIn.SignatureScript)
		} else {
			in.TxID = txIn.PreviousOutPoint.Hash.String()
			in.Vout = txIn.PreviousOutPoint.Index
			asm, _ := txscript.DisasmString(txIn.SignatureScript)
			in.ScriptSig = &scriptSigResult{
				Asm: asm,
				Hex: hex.EncodeToString(txIn.SignatureScript),
			}
		}
		for _, item := range txIn.Witness {
			in.Witness = append(in.Witness, hex.EncodeToString(item))
		}
		result.Inputs = append(result.Inputs, in)
	}

	for i, txOut := range tx.TxOut {
		result.Outputs = append(result.Outputs, &txOutResult{
			Value:        util.Amount(txOut.Value).ToBTC(),
			N:            i,
			ScriptPubKey: newScriptResult(txOut.PkScript, params),
		})
	}
	return result
}

type headerResult struct {
	Hash       string  `json:"hash"`
	Version    int32   `json:"version"`
	PrevBlock  string  `json:"previousblockhash"`
	MerkleRoot string  `json:"merkleroot"`
	Time       uint32  `json:"time"`
	Date       string  `json:"date"`
	Bits       string  `json:"bits"`
	Nonce      uint32  `json:"nonce"`
	Target     string  `json:"target"`
	Difficulty float64 `json:"difficulty"`
	Work       string  `json:"work"`
	Sanity     string  `json:"sanity,omitempty"`
}

func newHeaderResult(header *wire.BlockHeader, params *chaincfg.Params) *headerResult {
	return &headerResult{
		Hash:       header.BlockHash().String(),
		Version:    header.Version,
		PrevBlock:  header.PrevBlock.String(),
		MerkleRoot: header.MerkleRoot.String(),
		Time:       header.Timestamp,
		Date:       header.Time().Format(time.RFC3339),
		Bits:       fmt.Sprintf("%08x", header.Bits),
		Nonce:      header.Nonce,
		Target:     fmt.Sprintf("%064x", blockchain.CompactToBig(header.Bits)),
		Difficulty: blockchain.DifficultyRatio(header.Bits, params.PowLimitBits),
		Work:       blockchain.CalcWork(header.Bits).String(),
	}
}

type blockResult struct {
	headerResult
	Size         int      `json:"size"`
	StrippedSize int      `json:"strippedsize"`
	Weight       int64    `json:"weight"`
	TxCount      int      `json:"nTx"`
	Txs          []string `json:"tx"`
	WitnessRoot  string   `json:"witnessroot"`
}

func newBlockResult(block *wire.MsgBlock, params *chaincfg.Params) *blockResult {
	result := &blockResult{
		headerResult: *newHeaderResult(&block.Header, params),
		Size:         block.SerializeSize(),
		StrippedSize: block.SerializeSizeStripped(),
		Weight:       blockchain.GetBlockWeight(block),
		TxCount:      len(block.Transactions),
		Txs:          make([]string, 0, len(block.Transactions)),
	}
	for _, hash := range block.TxHashes() {
		result.Txs = append(result.Txs, hash.String())
	}
	witnessRoot := blockchain.CalcWitnessMerkleRoot(block)
	result.WitnessRoot = witnessRoot.String()
	result.Sanity = sanity(blockchain.CheckBlockSanity(block, params.PowLimit))
	return result
}

type addressResult struct {
	Address        string `json:"address"`
	Network        string `json:"network"`
	Kind           string `json:"kind"`
	WitnessVersion *byte  `json:"witnessVersion,omitempty"`
	Payload        string `json:"payload"`
	IsStandard     bool   `json:"isStandard"`
	ScriptPubKey   string `json:"scriptPubKey"`
}

type pubKeyResult struct {
	PubKey     string `json:"pubkey"`
	Compressed bool   `json:"compressed"`
	P2PKH      string `json:"p2pkh"`
	P2WPKH     string `json:"p2wpkh,omitempty"`
	P2SHP2WPKH string `json:"p2sh-p2wpkh,omitempty"`
}

type xpubResult struct {
	Xpub              string `json:"xpub"`
	Depth             uint8  `json:"depth"`
	ParentFingerprint string `json:"parentFingerprint"`
	ChildNumber       uint32 `json:"childNumber"`
	Hardened          bool   `json:"hardened"`
	ChainCode         string `json:"chainCode"`
	PubKey            string `json:"pubkey"`
	Fingerprint       string `json:"fingerprint"`
}

type psbtXpubResult struct {
	Xpub   string `json:"xpub"`
	Source string `json:"source"`
}

type psbtUnknownResult struct {
	Type  byte   `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type psbtResult struct {
	Tx       *txResult            `json:"tx"`
	Version  uint32               `json:"version"`
	Xpubs    []*psbtXpubResult    `json:"xpubs,omitempty"`
	Unknowns []*psbtUnknownResult `json:"unknown,omitempty"`
}
