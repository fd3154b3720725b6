// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/kaspanet/chainwire/util/binaryserializer"
	"github.com/kaspanet/chainwire/util/chainhash"
)

const (
	// TxVersion is the current latest supported transaction version.
	TxVersion = 1

	// MaxTxInSequenceNum is the maximum sequence number the sequence field
	// of a transaction input can be.
	MaxTxInSequenceNum uint32 = 0xffffffff

	// MaxPrevOutIndex is the maximum index the index field of a previous
	// outpoint can be.
	MaxPrevOutIndex uint32 = 0xffffffff

	// SequenceLockTimeDisabled is a flag that if set on a transaction
	// input's sequence number, the sequence number will not be interpreted
	// as a relative locktime.
	SequenceLockTimeDisabled = 1 << 31

	// SequenceLockTimeIsSeconds is a flag that if set on a transaction
	// input's sequence number, the relative locktime has units of 512
	// seconds.
	SequenceLockTimeIsSeconds = 1 << 22

	// SequenceLockTimeMask is a mask that extracts the relative locktime
	// when masked against the transaction input sequence number.
	SequenceLockTimeMask = 0x0000ffff

	// SatoshiPerBitcoin is the number of satoshi in one bitcoin.
	SatoshiPerBitcoin = 1e8

	// MaxSatoshi is the maximum transaction amount allowed in satoshi.
	MaxSatoshi = 21e6 * SatoshiPerBitcoin

	// minTxInPayload is the minimum payload size for a transaction input.
	// PreviousOutPoint.Hash + PreviousOutPoint.Index 4 bytes + Varint for
	// SignatureScript length 1 byte + Sequence 4 bytes.
	minTxInPayload = 9 + chainhash.HashSize

	// maxTxInPerMessage is the maximum number of transactions inputs that
	// a transaction which fits into a message could possibly have.
	maxTxInPerMessage = (MaxMessagePayload / minTxInPayload) + 1

	// MinTxOutPayload is the minimum payload size for a transaction output.
	// Value 8 bytes + Varint for PkScript length 1 byte.
	MinTxOutPayload = 9

	// maxTxOutPerMessage is the maximum number of transactions outputs that
	// a transaction which fits into a message could possibly have.
	maxTxOutPerMessage = (MaxMessagePayload / MinTxOutPayload) + 1

	// minTxPayload is the minimum payload size for a transaction. Note
	// that any realistically usable transaction must have at least one
	// input or output, but that is a rule enforced at a higher layer, so
	// it is intentionally not included here.
	// Version 4 bytes + Varint number of transaction inputs 1 byte + Varint
	// number of transaction outputs 1 byte + LockTime 4 bytes + min input
	// payload + min output payload.
	minTxPayload = 10

	// maxWitnessItemsPerInput is the maximum number of witness items to
	// be read for the witness data for a single TxIn.
	maxWitnessItemsPerInput = 500000

	// maxWitnessItemSize is the maximum allowed size for an item within
	// an input's witness data.
	maxWitnessItemSize = MaxBlockPayload

	// witnessMarkerByte is the byte that stands in for an empty input
	// count and announces the witness layout.
	witnessMarkerByte = 0x00

	// witnessFlagByte is the only defined witness flag.
	witnessFlagByte = 0x01
)

// MessageEncoding represents the transaction layout used for encoding and
// decoding.
type MessageEncoding uint32

const (
	// BaseEncoding is the layout without the witness marker, flag and
	// witness stacks. It is the form the txid commits to.
	BaseEncoding MessageEncoding = 1 << iota

	// WitnessEncoding is the layout that carries witness data whenever
	// at least one input has a non-empty witness.
	WitnessEncoding
)

// OutPoint defines a bitcoin data type that is used to track previous
// transaction outputs.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new bitcoin transaction outpoint point with the
// provided hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) *OutPoint {
	return &OutPoint{
		Hash:  *hash,
		Index: index,
	}
}

// String returns the OutPoint in the human-readable form "hash:index".
func (o OutPoint) String() string {
	// Allocate enough for hash string, colon, and 10 digits. Although
	// at the time of writing, the number of digits can be no greater than
	// the length of the decimal representation of maxTxOutPerMessage, the
	// maximum message payload may increase in the future and this
	// optimization may go unnoticed, so allocate space for 10 decimal
	// digits, which will fit any uint32.
	buf := make([]byte, 2*chainhash.HashSize+1, 2*chainhash.HashSize+1+10)
	copy(buf, o.Hash.String())
	buf[2*chainhash.HashSize] = ':'
	buf = strconv.AppendUint(buf, uint64(o.Index), 10)
	return string(buf)
}

// TxWitness defines the witness for a TxIn. A witness is to be interpreted
// as a slice of byte slices, or a stack with one or many elements. Empty
// items decode as nil, and an empty stack decodes as a nil TxWitness.
type TxWitness [][]byte

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input's witness.
func (t TxWitness) SerializeSize() int {
	// A varint to signal the number of elements the witness has.
	n := VarIntSerializeSize(uint64(len(t)))

	// For each element in the witness, we'll need a varint to signal the
	// size of the element, then finally the number of bytes the element
	// itself comprises.
	for _, witItem := range t {
		n += VarBytesSerializeSize(witItem)
	}

	return n
}

// TxIn defines a bitcoin transaction input.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  []byte
	Witness          TxWitness
	Sequence         uint32
}

// SerializeSize returns the number of bytes it would take to serialize the
// transaction input, not counting its witness.
func (t *TxIn) SerializeSize() int {
	// Outpoint Hash 32 bytes + Outpoint Index 4 bytes + Sequence 4 bytes +
	// serialized varint size for the length of SignatureScript +
	// SignatureScript bytes.
	return 40 + VarBytesSerializeSize(t.SignatureScript)
}

// NewTxIn returns a new bitcoin transaction input with the provided
// previous outpoint point and signature script with a default sequence of
// MaxTxInSequenceNum.
func NewTxIn(prevOut *OutPoint, signatureScript []byte, witness [][]byte) *TxIn {
	return &TxIn{
		PreviousOutPoint: *prevOut,
		SignatureScript:  signatureScript,
		Witness:          witness,
		Sequence:         MaxTxInSequenceNum,
	}
}

// TxOut defines a bitcoin transaction output.
type TxOut struct {
	Value    int64
	PkScript []byte
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction output.
func (t *TxOut) SerializeSize() int {
	// Value 8 bytes + serialized varint size for the length of PkScript +
	// PkScript bytes.
	return 8 + VarBytesSerializeSize(t.PkScript)
}

// NewTxOut returns a new bitcoin transaction output with the provided
// transaction value and public key script.
func NewTxOut(value int64, pkScript []byte) *TxOut {
	return &TxOut{
		Value:    value,
		PkScript: pkScript,
	}
}

// MsgTx implements the bitcoin transaction. It is used to deliver
// transaction information in response to a getdata message (MsgGetData) for
// a given transaction.
//
// Use the AddTxIn and AddTxOut functions to build up the list of transaction
// inputs and outputs.
type MsgTx struct {
	Version  int32
	TxIn     []*TxIn
	TxOut    []*TxOut
	LockTime uint32
}

// AddTxIn adds a transaction input to the message.
func (msg *MsgTx) AddTxIn(ti *TxIn) {
	msg.TxIn = append(msg.TxIn, ti)
}

// AddTxOut adds a transaction output to the message.
func (msg *MsgTx) AddTxOut(to *TxOut) {
	msg.TxOut = append(msg.TxOut, to)
}

// IsCoinBase determines whether or not a transaction is a coinbase. A
// coinbase is a special transaction created by miners that has no inputs.
// This is represented in the block chain by a transaction with a single
// input that has a previous output transaction index set to the maximum
// value along with a zero hash.
func (msg *MsgTx) IsCoinBase() bool {
	// A coin base must only have one transaction input.
	if len(msg.TxIn) != 1 {
		return false
	}

	// The previous output of a coin base must have a max value index and
	// a zero hash.
	prevOut := &msg.TxIn[0].PreviousOutPoint
	if prevOut.Index != MaxPrevOutIndex || prevOut.Hash != (chainhash.Hash{}) {
		return false
	}

	return true
}

// HasWitness returns false if none of the inputs within the transaction
// contain witness data, true false otherwise.
func (msg *MsgTx) HasWitness() bool {
	for _, txIn := range msg.TxIn {
		if len(txIn.Witness) != 0 {
			return true
		}
	}

	return false
}

// TxHash generates the hash of the transaction serialized without witness
// data. This is the transaction identifier.
func (msg *MsgTx) TxHash() chainhash.Hash {
	writer := chainhash.NewDoubleHashWriter()
	// Ignore the error returns since the only way the encode could fail
	// is being out of memory or due to nil pointers, both of which would
	// cause a run-time panic.
	_ = msg.BtcEncode(writer, BaseEncoding)
	return writer.Finalize()
}

// WitnessHash generates the hash of the transaction serialized with its
// witness data. If the transaction has no witness data the result equals
// TxHash.
func (msg *MsgTx) WitnessHash() chainhash.Hash {
	if !msg.HasWitness() {
		return msg.TxHash()
	}

	writer := chainhash.NewDoubleHashWriter()
	_ = msg.BtcEncode(writer, WitnessEncoding)
	return writer.Finalize()
}

// Copy creates a deep copy of a transaction so that the original does not get
// modified when the copy is manipulated.
func (msg *MsgTx) Copy() *MsgTx {
	// Create new tx and start by copying primitive values and making space
	// for the transaction inputs and outputs.
	newTx := MsgTx{
		Version:  msg.Version,
		TxIn:     make([]*TxIn, 0, len(msg.TxIn)),
		TxOut:    make([]*TxOut, 0, len(msg.TxOut)),
		LockTime: msg.LockTime,
	}

	// Deep copy the old TxIn data.
	for _, oldTxIn := range msg.TxIn {
		// Deep copy the old previous outpoint.
		oldOutPoint := oldTxIn.PreviousOutPoint
		newOutPoint := OutPoint{}
		newOutPoint.Hash.SetBytes(oldOutPoint.Hash[:])
		newOutPoint.Index = oldOutPoint.Index

		// Deep copy the old signature script.
		var newScript []byte
		oldScript := oldTxIn.SignatureScript
		oldScriptLen := len(oldScript)
		if oldScriptLen > 0 {
			newScript = make([]byte, oldScriptLen)
			copy(newScript, oldScript[:oldScriptLen])
		}

		// Create new txIn with the deep copied data.
		newTxIn := TxIn{
			PreviousOutPoint: newOutPoint,
			SignatureScript:  newScript,
			Sequence:         oldTxIn.Sequence,
		}

		// If the transaction is witnessy, then also copy the witnesses.
		if len(oldTxIn.Witness) != 0 {
			// Deep copy the old witness data.
			newTxIn.Witness = make([][]byte, len(oldTxIn.Witness))
			for i, oldItem := range oldTxIn.Witness {
				newItem := make([]byte, len(oldItem))
				copy(newItem, oldItem)
				newTxIn.Witness[i] = newItem
			}
		}

		// Finally, append this fully copied txin.
		newTx.TxIn = append(newTx.TxIn, &newTxIn)
	}

	// Deep copy the old TxOut data.
	for _, oldTxOut := range msg.TxOut {
		// Deep copy the old PkScript
		var newScript []byte
		oldScript := oldTxOut.PkScript
		oldScriptLen := len(oldScript)
		if oldScriptLen > 0 {
			newScript = make([]byte, oldScriptLen)
			copy(newScript, oldScript[:oldScriptLen])
		}

		// Create new txOut with the deep copied data and append it to
		// new Tx.
		newTxOut := TxOut{
			Value:    oldTxOut.Value,
			PkScript: newScript,
		}
		newTx.TxOut = append(newTx.TxOut, &newTxOut)
	}

	return &newTx
}

// BtcDecode decodes r using the consensus encoding into the receiver. When
// enc is WitnessEncoding a zero input count followed by the witness flag
// selects the witness layout. The receiver is left untouched on failure.
func (msg *MsgTx) BtcDecode(r io.Reader, enc MessageEncoding) error {
	var tx MsgTx
	err := readElement(r, &tx.Version)
	if err != nil {
		return err
	}

	count, err := ReadVarInt(r)
	if err != nil {
		return err
	}

	// A count of zero (meaning no TxIn's to the uninitiated) means that the
	// value is a witness marker. The following byte must be the witness
	// flag, after which the real input count follows.
	var flag [1]byte
	if count == witnessMarkerByte && enc == WitnessEncoding {
		if _, err = io.ReadFull(r, flag[:]); err != nil {
			return readError(err, "MsgTx.BtcDecode")
		}

		if flag[0] != witnessFlagByte {
			str := fmt.Sprintf("witness tx but flag byte is %x", flag)
			return messageError(ErrInvalidWitnessFlag, "MsgTx.BtcDecode", str)
		}

		count, err = ReadVarInt(r)
		if err != nil {
			return err
		}
	}

	// Prevent more input transactions than could possibly fit into the
	// remaining input. It would be possible to cause memory exhaustion and
	// panics without a sane upper bound on this count.
	err = checkDeclaredLength(r, count, minTxInPayload, maxTxInPerMessage,
		"MsgTx.BtcDecode", "transaction inputs")
	if err != nil {
		return err
	}

	tx.TxIn = make([]*TxIn, count)
	for i := uint64(0); i < count; i++ {
		ti := &TxIn{}
		err = readTxIn(r, ti)
		if err != nil {
			return err
		}
		tx.TxIn[i] = ti
	}

	count, err = ReadVarInt(r)
	if err != nil {
		return err
	}

	err = checkDeclaredLength(r, count, MinTxOutPayload, maxTxOutPerMessage,
		"MsgTx.BtcDecode", "transaction outputs")
	if err != nil {
		return err
	}

	tx.TxOut = make([]*TxOut, count)
	for i := uint64(0); i < count; i++ {
		to := &TxOut{}
		err = readTxOut(r, to)
		if err != nil {
			return err
		}
		tx.TxOut[i] = to
	}

	// If the transaction's flag byte isn't 0x00 at this point, then one
	// or more of its inputs has accompanying witness data.
	if flag[0] != 0 && enc == WitnessEncoding {
		for _, txin := range tx.TxIn {
			txin.Witness, err = readTxWitness(r)
			if err != nil {
				return err
			}
		}

		// A witness flag with only empty stacks would be re-encoded
		// without the marker, breaking byte-exact round trips.
		if !tx.HasWitness() {
			return messageError(ErrInvalidWitnessFlag, "MsgTx.BtcDecode",
				"witness flag set but no input carries witness data")
		}
	}

	err = readElement(r, &tx.LockTime)
	if err != nil {
		return err
	}

	*msg = tx
	return nil
}

// Deserialize decodes a transaction from r into the receiver, accepting both
// the base and the witness layout. If Deserialize fails the receiver is left
// unchanged.
func (msg *MsgTx) Deserialize(r io.Reader) error {
	return msg.BtcDecode(r, WitnessEncoding)
}

// DeserializeNoWitness decodes a transaction from r into the receiver using
// the base layout only. It is needed where a zero-input transaction must not
// be mistaken for a witness marker.
func (msg *MsgTx) DeserializeNoWitness(r io.Reader) error {
	return msg.BtcDecode(r, BaseEncoding)
}

// BtcEncode encodes the receiver to w using the consensus encoding. The
// witness layout is used only when enc is WitnessEncoding and at least one
// input has witness data.
func (msg *MsgTx) BtcEncode(w io.Writer, enc MessageEncoding) error {
	err := writeElement(w, msg.Version)
	if err != nil {
		return err
	}

	// If the encoding version is set to WitnessEncoding, and the Flags
	// field for the MsgTx aren't 0x00, then this indicates the transaction
	// is to be encoded using the new witness inclusionary structure
	// defined in BIP0144.
	doWitness := enc == WitnessEncoding && msg.HasWitness()
	if doWitness {
		// After the transaction's Version field, we include two additional
		// bytes specific to the witness encoding. The first byte is an
		// always 0x00 marker byte, which allows decoders to distinguish a
		// serialized transaction with witnesses from a regular (legacy)
		// one. The second byte is the Flag field, which at the moment is
		// always 0x01, but may be extended in the future to accommodate
		// auxiliary non-committed fields.
		_, err = w.Write([]byte{witnessMarkerByte, witnessFlagByte})
		if err != nil {
			return err
		}
	}

	count := uint64(len(msg.TxIn))
	err = WriteVarInt(w, count)
	if err != nil {
		return err
	}

	for _, ti := range msg.TxIn {
		err = writeTxIn(w, ti)
		if err != nil {
			return err
		}
	}

	count = uint64(len(msg.TxOut))
	err = WriteVarInt(w, count)
	if err != nil {
		return err
	}

	for _, to := range msg.TxOut {
		err = WriteTxOut(w, to)
		if err != nil {
			return err
		}
	}

	// If this transaction is a witness transaction, and the witness
	// encoded is desired, then encode the witness for each of the inputs
	// within the transaction.
	if doWitness {
		for _, ti := range msg.TxIn {
			err = writeTxWitness(w, ti.Witness)
			if err != nil {
				return err
			}
		}
	}

	return writeElement(w, msg.LockTime)
}

// Serialize encodes the transaction to w in the witness layout when it has
// witness data and in the base layout otherwise.
func (msg *MsgTx) Serialize(w io.Writer) error {
	return msg.BtcEncode(w, WitnessEncoding)
}

// SerializeNoWitness encodes the transaction to w in the base layout.
func (msg *MsgTx) SerializeNoWitness(w io.Writer) error {
	return msg.BtcEncode(w, BaseEncoding)
}

// Bytes returns the serialized transaction, including witness data when
// present.
func (msg *MsgTx) Bytes() []byte {
	buf := bytes.NewBuffer(make([]byte, 0, msg.SerializeSize()))
	_ = msg.Serialize(buf)
	return buf.Bytes()
}

// baseSize returns the serialized size of the transaction without accounting
// for any witness data.
func (msg *MsgTx) baseSize() int {
	// Version 4 bytes + LockTime 4 bytes + Serialized varint size for the
	// number of transaction inputs and outputs.
	n := 8 + VarIntSerializeSize(uint64(len(msg.TxIn))) +
		VarIntSerializeSize(uint64(len(msg.TxOut)))

	for _, txIn := range msg.TxIn {
		n += txIn.SerializeSize()
	}

	for _, txOut := range msg.TxOut {
		n += txOut.SerializeSize()
	}

	return n
}

// SerializeSize returns the number of bytes it would take to serialize the
// the transaction.
func (msg *MsgTx) SerializeSize() int {
	n := msg.baseSize()

	if msg.HasWitness() {
		// The marker, and flag fields take up two additional bytes.
		n += 2

		// Additionally, factor in the serialized size of each of the
		// witnesses for each txin.
		for _, txin := range msg.TxIn {
			n += txin.Witness.SerializeSize()
		}
	}

	return n
}

// SerializeSizeStripped returns the number of bytes it would take to serialize
// the transaction, excluding any included witness data.
func (msg *MsgTx) SerializeSizeStripped() int {
	return msg.baseSize()
}

// NewMsgTx returns a new bitcoin tx message that conforms to the Message
// interface. The return instance has a default version of TxVersion and
// there are no transaction inputs or outputs. Also, the lock time is set to
// zero to indicate the transaction is valid immediately as opposed to some
// time in future.
func NewMsgTx(version int32) *MsgTx {
	return &MsgTx{
		Version: version,
		TxIn:    make([]*TxIn, 0, defaultTxInOutAlloc),
		TxOut:   make([]*TxOut, 0, defaultTxInOutAlloc),
	}
}

// defaultTxInOutAlloc is the default size used for the backing array for
// transaction inputs and outputs.
const defaultTxInOutAlloc = 15

// DecodeTransaction decodes a complete serialized transaction, accepting
// both layouts. Input left over after the transaction is an
// ErrTrailingBytes error.
//
// A transaction without inputs encodes its input count as 0x00, the same byte
// that opens the witness layout, so such a transaction is read as a witness
// transaction and fails to decode. DecodeTransactionNoWitness decodes it.
func DecodeTransaction(serialized []byte) (*MsgTx, error) {
	return decodeTransaction(serialized, WitnessEncoding, "DecodeTransaction")
}

// DecodeTransactionNoWitness decodes a complete serialized transaction in the
// base layout only. Every transaction encoded without witness data, including
// one without inputs, decodes back to itself.
func DecodeTransactionNoWitness(serialized []byte) (*MsgTx, error) {
	return decodeTransaction(serialized, BaseEncoding, "DecodeTransactionNoWitness")
}

func decodeTransaction(serialized []byte, enc MessageEncoding, f string) (*MsgTx, error) {
	r := bytes.NewReader(serialized)
	tx := &MsgTx{}
	err := tx.BtcDecode(r, enc)
	if err != nil {
		return nil, err
	}
	err = checkConsumed(r, f)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// checkConsumed returns an ErrTrailingBytes error if r still holds unread
// bytes.
func checkConsumed(r *bytes.Reader, f string) error {
	if r.Len() != 0 {
		str := fmt.Sprintf("%d bytes left after decoding", r.Len())
		return messageError(ErrTrailingBytes, f, str)
	}
	return nil
}

// readOutPoint reads the next sequence of bytes from r as an OutPoint.
func readOutPoint(r io.Reader, op *OutPoint) error {
	return readElements(r, &op.Hash, &op.Index)
}

// writeOutPoint encodes op to the bitcoin protocol encoding for an OutPoint
// to w.
func writeOutPoint(w io.Writer, op *OutPoint) error {
	return writeElements(w, &op.Hash, op.Index)
}

// readScript reads a variable length byte array that represents a
// transaction script. It is encoded as a varInt containing the length of the
// array followed by the bytes themselves.
func readScript(r io.Reader, fieldName string) ([]byte, error) {
	return ReadVarBytes(r, MaxMessagePayload, fieldName)
}

// readTxIn reads the next sequence of bytes from r as a transaction input
// (TxIn).
func readTxIn(r io.Reader, ti *TxIn) error {
	err := readOutPoint(r, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	ti.SignatureScript, err = readScript(r, "transaction input signature script")
	if err != nil {
		return err
	}

	return readElement(r, &ti.Sequence)
}

// writeTxIn encodes ti to the bitcoin protocol encoding for a transaction
// input (TxIn) to w.
func writeTxIn(w io.Writer, ti *TxIn) error {
	err := writeOutPoint(w, &ti.PreviousOutPoint)
	if err != nil {
		return err
	}

	err = WriteVarBytes(w, ti.SignatureScript)
	if err != nil {
		return err
	}

	return binaryserializer.PutUint32(w, ti.Sequence)
}

// readTxOut reads the next sequence of bytes from r as a transaction output
// (TxOut).
func readTxOut(r io.Reader, to *TxOut) error {
	err := readElement(r, &to.Value)
	if err != nil {
		return err
	}

	to.PkScript, err = readScript(r, "transaction output public key script")
	return err
}

// WriteTxOut encodes to into the bitcoin protocol encoding for a transaction
// output (TxOut) to w.
func WriteTxOut(w io.Writer, to *TxOut) error {
	err := binaryserializer.PutUint64(w, uint64(to.Value))
	if err != nil {
		return err
	}

	return WriteVarBytes(w, to.PkScript)
}

// readTxWitness reads the witness stack of a single input.
func readTxWitness(r io.Reader) (TxWitness, error) {
	witCount, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}

	// Prevent a possible memory exhaustion attack by limiting the witCount
	// value to a sane upper bound. Every item takes at least its length
	// byte.
	err = checkDeclaredLength(r, witCount, 1, maxWitnessItemsPerInput,
		"readTxWitness", "witness items")
	if err != nil {
		return nil, err
	}

	if witCount == 0 {
		return nil, nil
	}

	witness := make(TxWitness, witCount)
	for j := uint64(0); j < witCount; j++ {
		witness[j], err = ReadVarBytes(r, maxWitnessItemSize, "script witness item")
		if err != nil {
			return nil, err
		}
	}
	return witness, nil
}

// writeTxWitness encodes the bitcoin protocol encoding for a transaction
// input's witness into w.
func writeTxWitness(w io.Writer, wit TxWitness) error {
	err := WriteVarInt(w, uint64(len(wit)))
	if err != nil {
		return err
	}
	for _, item := range wit {
		err = WriteVarBytes(w, item)
		if err != nil {
			return err
		}
	}
	return nil
}
