// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kaspanet/chainwire/util/chainhash"
)

// genesisCoinbaseHex is the serialized coinbase transaction of the main
// network genesis block.
const genesisCoinbaseHex = "01000000010000000000000000000000000000000000000000000000000000000000000000" +
	"ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72" +
	"206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a" +
	"01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38" +
	"c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

func mustDecodeHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}
	return b
}

// TestTx tests the MsgTx API.
func TestTx(t *testing.T) {
	txIDStr := "3ba27aa200b1cecaad478d2b00432346c3f1f3986da1afd33e506"
	txID, err := chainhash.NewHashFromStr(txIDStr)
	if err != nil {
		t.Errorf("NewHashFromStr: %v", err)
	}

	// Ensure we get the same transaction output point data back out.
	// NOTE: This is a block hash and made up index, but we're only
	// testing package functionality.
	prevOutIndex := uint32(1)
	prevOut := NewOutPoint(txID, prevOutIndex)
	if !prevOut.Hash.IsEqual(txID) {
		t.Errorf("NewOutPoint: wrong hash - got %v, want %v",
			spew.Sprint(&prevOut.Hash), spew.Sprint(txID))
	}
	if prevOut.Index != prevOutIndex {
		t.Errorf("NewOutPoint: wrong index - got %v, want %v",
			prevOut.Index, prevOutIndex)
	}
	prevOutStr := fmt.Sprintf("%s:%d", txID.String(), prevOutIndex)
	if s := prevOut.String(); s != prevOutStr {
		t.Errorf("OutPoint.String: unexpected result - got %v, "+
			"want %v", s, prevOutStr)
	}

	// Ensure we get the same transaction input back out.
	sigScript := []byte{0x04, 0x31, 0xdc, 0x00, 0x1b, 0x01, 0x62}
	witnessData := [][]byte{
		{0x04, 0x31},
		{0x01, 0x43},
	}
	txIn := NewTxIn(prevOut, sigScript, witnessData)
	if !reflect.DeepEqual(&txIn.PreviousOutPoint, prevOut) {
		t.Errorf("NewTxIn: wrong prev outpoint - got %v, want %v",
			spew.Sprint(&txIn.PreviousOutPoint),
			spew.Sprint(prevOut))
	}
	if !bytes.Equal(txIn.SignatureScript, sigScript) {
		t.Errorf("NewTxIn: wrong signature script - got %v, want %v",
			spew.Sdump(txIn.SignatureScript),
			spew.Sdump(sigScript))
	}
	if !reflect.DeepEqual(txIn.Witness, TxWitness(witnessData)) {
		t.Errorf("NewTxIn: wrong witness data - got %v, want %v",
			spew.Sdump(txIn.Witness),
			spew.Sdump(witnessData))
	}
	if txIn.Sequence != MaxTxInSequenceNum {
		t.Errorf("NewTxIn: wrong sequence - got %x, want %x",
			txIn.Sequence, MaxTxInSequenceNum)
	}

	// Ensure we get the same transaction output back out.
	txValue := int64(5000000000)
	pkScript := []byte{
		0x41, // OP_DATA_65
		0x04, 0xd6, 0x4b, 0xdf, 0xd0, 0x9e, 0xb1, 0xc5,
		0xfe, 0x29, 0x5a, 0xbd, 0xeb, 0x1d, 0xca, 0x42,
		0x81, 0xbe, 0x98, 0x8e, 0x2d, 0xa0, 0xb6, 0xc1,
		0xc6, 0xa5, 0x9d, 0xc2, 0x26, 0xc2, 0x86, 0x24,
		0xe1, 0x81, 0x75, 0xe8, 0x51, 0xc9, 0x6b, 0x97,
		0x3d, 0x81, 0xb0, 0x1c, 0xc3, 0x1f, 0x04, 0x78,
		0x34, 0xbc, 0x06, 0xd6, 0xd6, 0xed, 0xf6, 0x20,
		0xd1, 0x84, 0x24, 0x1a, 0x6a, 0xed, 0x8b, 0x63,
		0xa6, // 65-byte signature
		0xac, // OP_CHECKSIG
	}
	txOut := NewTxOut(txValue, pkScript)
	if txOut.Value != txValue {
		t.Errorf("NewTxOut: wrong pk script - got %v, want %v",
			txOut.Value, txValue)

	}
	if !bytes.Equal(txOut.PkScript, pkScript) {
		t.Errorf("NewTxOut: wrong pk script - got %v, want %v",
			spew.Sdump(txOut.PkScript),
			spew.Sdump(pkScript))
	}

	// Ensure transaction inputs are added properly.
	msg := NewMsgTx(1)
	msg.AddTxIn(txIn)
	if !reflect.DeepEqual(msg.TxIn[0], txIn) {
		t.Errorf("AddTxIn: wrong transaction input added - got %v, want %v",
			spew.Sprint(msg.TxIn[0]), spew.Sprint(txIn))
	}

	// Ensure transaction outputs are added properly.
	msg.AddTxOut(txOut)
	if !reflect.DeepEqual(msg.TxOut[0], txOut) {
		t.Errorf("AddTxIn: wrong transaction output added - got %v, want %v",
			spew.Sprint(msg.TxOut[0]), spew.Sprint(txOut))
	}

	// Ensure the copy produced an identical transaction message that does
	// not share memory with the original.
	newMsg := msg.Copy()
	if !reflect.DeepEqual(newMsg, msg) {
		t.Errorf("Copy: mismatched tx messages - got %v, want %v",
			spew.Sdump(newMsg), spew.Sdump(msg))
	}
	newMsg.TxIn[0].SignatureScript[0] = 0xff
	newMsg.TxIn[0].Witness[0][0] = 0xff
	newMsg.TxOut[0].PkScript[0] = 0xff
	if msg.TxIn[0].SignatureScript[0] == 0xff || msg.TxIn[0].Witness[0][0] == 0xff ||
		msg.TxOut[0].PkScript[0] == 0xff {
		t.Errorf("Copy: copy shares memory with the original")
	}
}

// TestTxGenesisCoinbase decodes the main network genesis coinbase and checks
// its identifier and byte-exact re-encoding.
func TestTxGenesisCoinbase(t *testing.T) {
	serialized := mustDecodeHex(t, genesisCoinbaseHex)

	tx, err := DecodeTransaction(serialized)
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}

	if !tx.IsCoinBase() {
		t.Errorf("IsCoinBase: genesis coinbase not detected")
	}
	if tx.HasWitness() {
		t.Errorf("HasWitness: genesis coinbase has no witness")
	}
	if len(tx.TxOut) != 1 || tx.TxOut[0].Value != 5000000000 {
		t.Errorf("unexpected outputs %v", spew.Sdump(tx.TxOut))
	}

	wantTxID := "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	txID := tx.TxHash()
	if txID.String() != wantTxID {
		t.Errorf("TxHash: wrong hash - got %v, want %v", txID, wantTxID)
	}
	if txID != mainNetGenesisMerkleRoot {
		t.Errorf("TxHash: wrong raw hash - got %x", txID[:])
	}
	if wtxid := tx.WitnessHash(); wtxid != txID {
		t.Errorf("WitnessHash: must equal TxHash without witness - got %v", wtxid)
	}

	if !bytes.Equal(tx.Bytes(), serialized) {
		t.Errorf("Bytes: re-encoding differs\n got: %x\nwant: %x",
			tx.Bytes(), serialized)
	}
	if tx.SerializeSize() != len(serialized) {
		t.Errorf("SerializeSize: got %d, want %d", tx.SerializeSize(),
			len(serialized))
	}
	if tx.SerializeSizeStripped() != len(serialized) {
		t.Errorf("SerializeSizeStripped: got %d, want %d",
			tx.SerializeSizeStripped(), len(serialized))
	}
}

// witnessTestTx returns a one-input one-output transaction whose input
// carries a two item witness, along with its expected base and witness
// encodings.
func witnessTestTx() (*MsgTx, []byte, []byte) {
	prevHash := chainhash.Hash{0x01, 0x02, 0x03}
	tx := NewMsgTx(2)
	tx.AddTxIn(&TxIn{
		PreviousOutPoint: OutPoint{Hash: prevHash, Index: 1},
		Witness:          TxWitness{{0x01, 0x02}, {0x03}},
		Sequence:         0xfffffffe,
	})
	pkScript := append([]byte{0x00, 0x14}, bytes.Repeat([]byte{0xaa}, 20)...)
	tx.AddTxOut(NewTxOut(1000, pkScript))
	tx.LockTime = 0x11

	input := append([]byte{}, prevHash[:]...)
	input = append(input, 0x01, 0x00, 0x00, 0x00) // Index
	input = append(input, 0x00)                   // Empty signature script
	input = append(input, 0xfe, 0xff, 0xff, 0xff) // Sequence

	output := []byte{0xe8, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x16}
	output = append(output, pkScript...)

	base := []byte{0x02, 0x00, 0x00, 0x00, 0x01}
	base = append(base, input...)
	base = append(base, 0x01)
	base = append(base, output...)
	base = append(base, 0x11, 0x00, 0x00, 0x00)

	witness := []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x01, 0x01}
	witness = append(witness, input...)
	witness = append(witness, 0x01)
	witness = append(witness, output...)
	witness = append(witness, 0x02, 0x02, 0x01, 0x02, 0x01, 0x03)
	witness = append(witness, 0x11, 0x00, 0x00, 0x00)

	return tx, base, witness
}

// TestTxWitnessEncoding ensures the witness layout is emitted only when an
// input carries witness data and that both identifiers commit to the
// expected layout.
func TestTxWitnessEncoding(t *testing.T) {
	tx, wantBase, wantWitness := witnessTestTx()

	var buf bytes.Buffer
	if err := tx.SerializeNoWitness(&buf); err != nil {
		t.Fatalf("SerializeNoWitness: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), wantBase) {
		t.Errorf("SerializeNoWitness:\n got: %x\nwant: %x", buf.Bytes(), wantBase)
	}

	buf.Reset()
	if err := tx.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), wantWitness) {
		t.Errorf("Serialize:\n got: %x\nwant: %x", buf.Bytes(), wantWitness)
	}

	if tx.SerializeSize() != len(wantWitness) {
		t.Errorf("SerializeSize: got %d, want %d", tx.SerializeSize(), len(wantWitness))
	}
	if tx.SerializeSizeStripped() != len(wantBase) {
		t.Errorf("SerializeSizeStripped: got %d, want %d",
			tx.SerializeSizeStripped(), len(wantBase))
	}

	if got, want := tx.TxHash(), chainhash.DoubleHashH(wantBase); got != want {
		t.Errorf("TxHash: got %v, want %v", got, want)
	}
	if got, want := tx.WitnessHash(), chainhash.DoubleHashH(wantWitness); got != want {
		t.Errorf("WitnessHash: got %v, want %v", got, want)
	}

	// Stripping the witness must not change the identifier.
	stripped := tx.Copy()
	stripped.TxIn[0].Witness = nil
	if stripped.TxHash() != tx.TxHash() {
		t.Errorf("TxHash: witness data changed the transaction identifier")
	}
	if !bytes.Equal(stripped.Bytes(), wantBase) {
		t.Errorf("Bytes: transaction without witness must use the base layout")
	}

	decoded, err := DecodeTransaction(wantWitness)
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}
	if !reflect.DeepEqual(decoded, tx) {
		t.Errorf("DecodeTransaction: mismatch\n got: %s\nwant: %s",
			spew.Sdump(decoded), spew.Sdump(tx))
	}

	var noWitness MsgTx
	err = noWitness.DeserializeNoWitness(bytes.NewReader(wantBase))
	if err != nil {
		t.Fatalf("DeserializeNoWitness: %v", err)
	}
	if !reflect.DeepEqual(&noWitness, stripped) {
		t.Errorf("DeserializeNoWitness: mismatch\n got: %s\nwant: %s",
			spew.Sdump(&noWitness), spew.Sdump(stripped))
	}
}

// TestTxZeroInputs ensures a transaction without inputs survives a round trip
// through the base layout.
func TestTxZeroInputs(t *testing.T) {
	tx := NewMsgTx(1)
	tx.AddTxOut(NewTxOut(50, []byte{0x51}))

	var buf bytes.Buffer
	if err := tx.SerializeNoWitness(&buf); err != nil {
		t.Fatalf("SerializeNoWitness: %v", err)
	}
	want := []byte{
		0x01, 0x00, 0x00, 0x00, // Version
		0x00,                                           // No inputs
		0x01,                                           // One output
		0x32, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Value
		0x01, 0x51, // PkScript
		0x00, 0x00, 0x00, 0x00, // LockTime
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("SerializeNoWitness:\n got: %x\nwant: %x", buf.Bytes(), want)
	}

	var decoded MsgTx
	err := decoded.DeserializeNoWitness(bytes.NewReader(want))
	if err != nil {
		t.Fatalf("DeserializeNoWitness: %v", err)
	}
	if len(decoded.TxIn) != 0 || len(decoded.TxOut) != 1 || decoded.TxOut[0].Value != 50 {
		t.Errorf("DeserializeNoWitness: unexpected tx %s", spew.Sdump(&decoded))
	}

	empty := NewMsgTx(1)
	tests := []struct {
		name string
		tx   *MsgTx
		code ErrorCode
	}{
		// The output count 0x01 reads as the witness flag, and the value
		// byte 0x32 as an input count larger than what remains.
		{"one output", tx, ErrOversizedLength},
		{"no outputs", empty, ErrInvalidWitnessFlag},
	}
	for _, test := range tests {
		serialized := test.tx.Bytes()
		got, err := DecodeTransactionNoWitness(serialized)
		if err != nil {
			t.Errorf("%s: DecodeTransactionNoWitness: %v", test.name, err)
			continue
		}
		if !bytes.Equal(got.Bytes(), serialized) || got.TxHash() != test.tx.TxHash() {
			t.Errorf("%s: DecodeTransactionNoWitness: round trip mismatch %s",
				test.name, spew.Sdump(got))
		}

		_, err = DecodeTransaction(serialized)
		if !IsErrorCode(err, test.code) {
			t.Errorf("%s: DecodeTransaction: wrong error got: %v, want: %v",
				test.name, err, test.code)
		}
	}

	_, err = DecodeTransactionNoWitness(append(want, 0x00))
	if !IsErrorCode(err, ErrTrailingBytes) {
		t.Errorf("DecodeTransactionNoWitness: wrong error for trailing bytes got: %v", err)
	}
}

// TestTxWitnessEmptyItems ensures empty witness items encode as a single zero
// length byte and decode as nil items.
func TestTxWitnessEmptyItems(t *testing.T) {
	tx, _, _ := witnessTestTx()
	tx.TxIn[0].Witness = TxWitness{[]byte{}, {0x01}}
	serialized := tx.Bytes()

	decoded, err := DecodeTransaction(serialized)
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}
	witness := decoded.TxIn[0].Witness
	want := TxWitness{nil, {0x01}}
	if !reflect.DeepEqual(witness, want) {
		t.Errorf("DecodeTransaction: witness got %s, want %s",
			spew.Sdump(witness), spew.Sdump(want))
	}
	if !bytes.Equal(decoded.Bytes(), serialized) {
		t.Errorf("Bytes: re-encoding differs")
	}
	if decoded.WitnessHash() != tx.WitnessHash() {
		t.Errorf("WitnessHash: changed across a round trip")
	}
}

// TestTxWitnessFlagErrors ensures unknown flags and flagged transactions
// without witness data are rejected.
func TestTxWitnessFlagErrors(t *testing.T) {
	_, _, witness := witnessTestTx()

	badFlag := append([]byte{}, witness...)
	badFlag[5] = 0x02

	// Replace the witness section with two empty stacks worth of data
	// for the single input.
	emptyWitness := append([]byte{}, witness[:len(witness)-10]...)
	emptyWitness = append(emptyWitness, 0x00, 0x11, 0x00, 0x00, 0x00)

	tests := []struct {
		name string
		buf  []byte
	}{
		{"unknown flag", badFlag},
		{"flag without witness data", emptyWitness},
	}

	for _, test := range tests {
		_, err := DecodeTransaction(test.buf)
		if !IsErrorCode(err, ErrInvalidWitnessFlag) {
			t.Errorf("%s: wrong error got: %v, want: %v", test.name,
				err, ErrInvalidWitnessFlag)
		}
	}
}

// TestTxNegativeValue ensures output values outside the money range still
// decode. Range checks belong to the validation layer.
func TestTxNegativeValue(t *testing.T) {
	tx := NewMsgTx(1)
	tx.AddTxIn(NewTxIn(&OutPoint{Index: 3}, nil, nil))
	tx.AddTxOut(NewTxOut(-1, nil))

	decoded, err := DecodeTransaction(tx.Bytes())
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}
	if decoded.TxOut[0].Value != -1 {
		t.Errorf("DecodeTransaction: got value %d, want -1", decoded.TxOut[0].Value)
	}
}

// TestTxWireErrors performs negative tests against wire encode and decode
// of MsgTx to confirm error paths work correctly.
func TestTxWireErrors(t *testing.T) {
	serialized := mustDecodeHex(t, genesisCoinbaseHex)
	tx, err := DecodeTransaction(serialized)
	if err != nil {
		t.Fatalf("DecodeTransaction: %v", err)
	}

	for i := 0; i < len(serialized); i++ {
		// Encode to wire format.
		w := newFixedWriter(i)
		err := tx.Serialize(w)
		if err == nil {
			t.Errorf("Serialize #%d succeeded on a short writer", i)
		}

		// Decode from a truncated slice. Lengths that run past the end
		// are reported before the short read happens.
		decoded, err := DecodeTransaction(serialized[:i])
		if decoded != nil {
			t.Errorf("DecodeTransaction #%d returned a value on failure", i)
		}
		if !IsErrorCode(err, ErrUnexpectedEOF) && !IsErrorCode(err, ErrOversizedLength) {
			t.Errorf("DecodeTransaction #%d wrong error got: %v", i, err)
		}

		// Decode through a reader that cannot report its length.
		var msg MsgTx
		err = msg.Deserialize(newFixedReader(i, serialized))
		if !IsErrorCode(err, ErrUnexpectedEOF) {
			t.Errorf("Deserialize #%d wrong error got: %v, want: %v",
				i, err, ErrUnexpectedEOF)
		}
	}

	_, err = DecodeTransaction(append(serialized, 0x00))
	if !IsErrorCode(err, ErrTrailingBytes) {
		t.Errorf("DecodeTransaction: wrong error for trailing bytes got: %v", err)
	}
}

// TestTxOverflowErrors performs tests to ensure deserializing transactions
// which are intentionally crafted to use large values for the variable number
// of inputs and outputs are handled properly.
func TestTxOverflowErrors(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{
			"too many inputs",
			[]byte{
				0x01, 0x00, 0x00, 0x00, // Version
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, // Varint for number of input transactions
			},
		},
		{
			"more inputs than remaining bytes",
			[]byte{
				0x01, 0x00, 0x00, 0x00, // Version
				0xfd, 0xff, 0x00, // Varint for number of input transactions
				0x00, 0x00, 0x00, 0x00,
			},
		},
		{
			"too many outputs",
			[]byte{
				0x01, 0x00, 0x00, 0x00, // Version
				0x00, // Varint for number of input transactions
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, // Varint for number of output transactions
			},
		},
		{
			"huge signature script",
			[]byte{
				0x01, 0x00, 0x00, 0x00, // Version
				0x01, // Varint for number of input transactions
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // Previous output hash
				0xff, 0xff, 0xff, 0xff, // Prevous output index
				0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
				0xff, // Varint for length of signature script
			},
		},
	}

	for _, test := range tests {
		var msg MsgTx
		err := msg.DeserializeNoWitness(bytes.NewReader(test.buf))
		if !IsErrorCode(err, ErrOversizedLength) {
			t.Errorf("%s: wrong error got: %v, want: %v", test.name,
				err, ErrOversizedLength)
		}
	}
}

// TestTxDecodeLeavesReceiver ensures a failed decode does not modify the
// receiver.
func TestTxDecodeLeavesReceiver(t *testing.T) {
	tx, _, witness := witnessTestTx()
	before := tx.Copy()

	err := tx.Deserialize(bytes.NewReader(witness[:len(witness)-1]))
	if err == nil {
		t.Fatalf("Deserialize: truncated input accepted")
	}
	if !reflect.DeepEqual(tx, before) {
		t.Errorf("Deserialize: receiver modified on failure\n got: %s\nwant: %s",
			spew.Sdump(tx), spew.Sdump(before))
	}
}
