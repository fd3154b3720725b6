// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/kaspanet/chainwire/chaincfg"
	"github.com/kaspanet/chainwire/keys"
	"github.com/kaspanet/chainwire/util"
)

// ScriptClass is an enumeration for the list of standard types of script.
type ScriptClass byte

// Classes of script payment known about in the blockchain.
const (
	NonStandardTy         ScriptClass = iota // None of the recognized forms.
	PubKeyTy                                 // Pay pubkey.
	PubKeyHashTy                             // Pay pubkey hash.
	WitnessV0PubKeyHashTy                    // Pay witness pubkey hash.
	ScriptHashTy                             // Pay to script hash.
	WitnessV0ScriptHashTy                    // Pay to witness script hash.
	MultiSigTy                               // Multi signature.
	NullDataTy                               // Empty data-only (provably prunable).
	WitnessUnknownTy                         // Witness program of a future version.
)

// scriptClassToName houses the human-readable strings which describe each
// script class.
var scriptClassToName = []string{
	NonStandardTy:         "nonstandard",
	PubKeyTy:              "pubkey",
	PubKeyHashTy:          "pubkeyhash",
	WitnessV0PubKeyHashTy: "witness_v0_keyhash",
	ScriptHashTy:          "scripthash",
	WitnessV0ScriptHashTy: "witness_v0_scripthash",
	MultiSigTy:            "multisig",
	NullDataTy:            "nulldata",
	WitnessUnknownTy:      "witness_unknown",
}

// String implements the Stringer interface by returning the name of
// the enum script class. If the enum is invalid then "Invalid" will be
// returned.
func (t ScriptClass) String() string {
	if int(t) >= len(scriptClassToName) {
		return "Invalid"
	}
	return scriptClassToName[t]
}

const (
	// minWitnessScriptSize is the smallest witness program locking script:
	// a version opcode followed by a push of two bytes.
	minWitnessScriptSize = 4

	// maxWitnessScriptSize is the largest witness program locking script:
	// a version opcode followed by a push of forty bytes.
	maxWitnessScriptSize = 42
)

// extractCompressedPubKey extracts a compressed public key from the passed
// script if it is a standard pay-to-compressed-secp256k1-pubkey script. It
// will return nil otherwise.
func extractCompressedPubKey(script []byte) []byte {
	// A pay-to-compressed-pubkey script is of the form:
	//  OP_DATA_33 <33-byte compressed pubkey> OP_CHECKSIG

	// All compressed secp256k1 public keys must start with 0x02 or 0x03.
	if len(script) == 35 &&
		script[34] == OP_CHECKSIG &&
		script[0] == OP_DATA_33 &&
		(script[1] == 0x02 || script[1] == 0x03) {

		return script[1:34]
	}

	return nil
}

// extractUncompressedPubKey extracts an uncompressed public key from the
// passed script if it is a standard pay-to-uncompressed-secp256k1-pubkey
// script. It will return nil otherwise.
func extractUncompressedPubKey(script []byte) []byte {
	// A pay-to-uncompressed-pubkey script is of the form:
	//   OP_DATA_65 <65-byte uncompressed pubkey> OP_CHECKSIG
	//
	// All non-hybrid uncompressed secp256k1 public keys must start with 0x04.
	if len(script) == 67 &&
		script[66] == OP_CHECKSIG &&
		script[0] == OP_DATA_65 &&
		script[1] == 0x04 {

		return script[1:66]
	}
	return nil
}

// extractPubKey extracts either compressed or uncompressed public key from the
// passed script if it is a either a standard pay-to-compressed-secp256k1-pubkey
// or pay-to-uncompressed-secp256k1-pubkey script, respectively. It will return
// nil otherwise.
func extractPubKey(script []byte) []byte {
	if pubKey := extractCompressedPubKey(script); pubKey != nil {
		return pubKey
	}
	return extractUncompressedPubKey(script)
}

// IsPayToPubKey returns true if the script is in the standard pay-to-pubkey
// (P2PK) format, false otherwise.
func IsPayToPubKey(script []byte) bool {
	return extractPubKey(script) != nil
}

// extractPubKeyHash extracts the public key hash from the passed script if it
// is a standard pay-to-pubkey-hash script. It will return nil otherwise.
func extractPubKeyHash(script []byte) []byte {
	// A pay-to-pubkey-hash script is of the form:
	//  OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	if len(script) == 25 &&
		script[0] == OP_DUP &&
		script[1] == OP_HASH160 &&
		script[2] == OP_DATA_20 &&
		script[23] == OP_EQUALVERIFY &&
		script[24] == OP_CHECKSIG {

		return script[3:23]
	}

	return nil
}

// IsPayToPubKeyHash returns true if the script is in the standard
// pay-to-pubkey-hash (P2PKH) format, false otherwise.
func IsPayToPubKeyHash(script []byte) bool {
	return extractPubKeyHash(script) != nil
}

// extractScriptHash extracts the script hash from the passed script if it is
// a standard pay-to-script-hash script. It will return nil otherwise.
//
// NOTE: This function is only valid for version 0 opcodes. Since the function
// does not accept a script version, the results are undefined for other script
// versions.
func extractScriptHash(script []byte) []byte {
	// A pay-to-script-hash script is of the form:
	//  OP_HASH160 <20-byte scripthash> OP_EQUAL
	if len(script) == 23 &&
		script[0] == OP_HASH160 &&
		script[1] == OP_DATA_20 &&
		script[22] == OP_EQUAL {

		return script[2:22]
	}

	return nil
}

// IsPayToScriptHash returns true if the script is in the standard
// pay-to-script-hash (P2SH) format, false otherwise.
func IsPayToScriptHash(script []byte) bool {
	return extractScriptHash(script) != nil
}

// extractWitnessProgram returns the version and program of a witness program
// locking script: a small integer version opcode followed by a single direct
// push of 2 to 40 bytes. ok is false for any other script.
func extractWitnessProgram(script []byte) (version byte, program []byte, ok bool) {
	if len(script) < minWitnessScriptSize || len(script) > maxWitnessScriptSize {
		return 0, nil, false
	}
	if !isSmallInt(script[0]) {
		return 0, nil, false
	}
	if int(script[1])+2 != len(script) {
		return 0, nil, false
	}
	return byte(asSmallInt(script[0])), script[2:], true
}

// IsWitnessProgram returns true if the script is a witness program locking
// script of any version.
func IsWitnessProgram(script []byte) bool {
	_, _, ok := extractWitnessProgram(script)
	return ok
}

// ExtractWitnessProgramInfo returns the version and program of a witness
// program locking script.
func ExtractWitnessProgramInfo(script []byte) (byte, []byte, error) {
	version, program, ok := extractWitnessProgram(script)
	if !ok {
		return 0, nil, scriptError(ErrUnsupportedAddress,
			"script is not a witness program")
	}
	return version, program, nil
}

// IsPayToWitnessPubKeyHash returns true if the script is a version 0
// pay-to-witness-pubkey-hash (P2WPKH) script.
func IsPayToWitnessPubKeyHash(script []byte) bool {
	// OP_0 OP_DATA_20 <20-byte hash>
	return len(script) == 22 &&
		script[0] == OP_0 &&
		script[1] == OP_DATA_20
}

// IsPayToWitnessScriptHash returns true if the script is a version 0
// pay-to-witness-script-hash (P2WSH) script.
func IsPayToWitnessScriptHash(script []byte) bool {
	// OP_0 OP_DATA_32 <32-byte hash>
	return len(script) == 34 &&
		script[0] == OP_0 &&
		script[1] == OP_DATA_32
}

// multiSigDetails houses details extracted from a standard multisig script.
type multiSigDetails struct {
	requiredSigs int
	numPubKeys   int
	pubKeys      [][]byte
	valid        bool
}

// extractMultisigScriptDetails attempts to extract details from the passed
// script if it is a standard multisig script. The returned details struct
// will have the valid flag set to false otherwise.
//
// The extract pubkeys flag indicates whether or not the pubkeys themselves
// should also be extracted and is provided because extracting them results
// in an allocation that the caller might wish to avoid. The pubKeys member of
// the returned details struct will be nil when the flag is false.
func extractMultisigScriptDetails(script []byte, extractPubKeys bool) multiSigDetails {
	// A multi-signature script is of the form:
	//  NUM_SIGS PUBKEY PUBKEY PUBKEY ... NUM_PUBKEYS OP_CHECKMULTISIG

	// The script can't possibly be a multisig script if it doesn't end with
	// OP_CHECKMULTISIG or have at least two small integer pushes preceding
	// it. Fail fast to avoid more work below.
	if len(script) < 3 || script[len(script)-1] != OP_CHECKMULTISIG {
		return multiSigDetails{}
	}

	// The first opcode must be a small integer specifying the number of
	// signatures required.
	tokenizer := MakeScriptTokenizer(script)
	if !tokenizer.Next() || !isSmallInt(tokenizer.Opcode()) {
		return multiSigDetails{}
	}
	requiredSigs := asSmallInt(tokenizer.Opcode())

	// The next series of opcodes must push public keys.
	var pubKeys [][]byte
	numPubKeys := 0
	for tokenizer.Next() {
		if isSmallInt(tokenizer.Opcode()) {
			break
		}

		data := tokenizer.Data()
		if len(data) != 33 && len(data) != 65 {
			return multiSigDetails{}
		}
		numPubKeys++
		if extractPubKeys {
			pubKeys = append(pubKeys, data)
		}
	}
	if tokenizer.Done() {
		return multiSigDetails{}
	}

	// The next opcode must be a small integer specifying the number of
	// public keys required.
	op := tokenizer.Opcode()
	if !isSmallInt(op) || asSmallInt(op) != numPubKeys {
		return multiSigDetails{}
	}
	if requiredSigs < 1 || requiredSigs > numPubKeys {
		return multiSigDetails{}
	}

	// There must only be a single opcode left unparsed which will be
	// OP_CHECKMULTISIG per the check above.
	if len(tokenizer.Script())-tokenizer.ByteIndex() != 1 {
		return multiSigDetails{}
	}

	return multiSigDetails{
		requiredSigs: requiredSigs,
		numPubKeys:   numPubKeys,
		pubKeys:      pubKeys,
		valid:        true,
	}
}

// IsMultiSig returns whether or not the passed script is a standard bare
// multisig script: m <pubkey>... n OP_CHECKMULTISIG with 1 <= m <= n.
func IsMultiSig(script []byte) bool {
	return extractMultisigScriptDetails(script, false).valid
}

// IsNullData returns true if the passed script is a null data script: a lone
// OP_RETURN, or OP_RETURN followed by a single push of at most
// MaxDataCarrierSize bytes.
func IsNullData(script []byte) bool {
	if len(script) == 0 || script[0] != OP_RETURN {
		return false
	}
	if len(script) == 1 {
		return true
	}

	tokenizer := MakeScriptTokenizer(script[1:])
	return tokenizer.Next() && tokenizer.Done() &&
		(isSmallInt(tokenizer.Opcode()) || tokenizer.Opcode() <= OP_PUSHDATA4) &&
		len(tokenizer.Data()) <= MaxDataCarrierSize
}

// GetScriptClass returns the class of the script passed.
//
// NonStandardTy will be returned when the script does not match any of the
// standard templates. Version 0 witness programs with a program length other
// than 20 or 32 bytes are non standard.
func GetScriptClass(script []byte) ScriptClass {
	switch {
	case IsPayToPubKey(script):
		return PubKeyTy
	case IsPayToPubKeyHash(script):
		return PubKeyHashTy
	case IsPayToWitnessPubKeyHash(script):
		return WitnessV0PubKeyHashTy
	case IsPayToScriptHash(script):
		return ScriptHashTy
	case IsPayToWitnessScriptHash(script):
		return WitnessV0ScriptHashTy
	case IsMultiSig(script):
		return MultiSigTy
	case IsNullData(script):
		return NullDataTy
	}

	if version, _, ok := extractWitnessProgram(script); ok && version != 0 {
		return WitnessUnknownTy
	}
	return NonStandardTy
}

// payToPubKeyHashScript creates a new script to pay a transaction
// output to a 20-byte pubkey hash. It is expected that the input is a valid
// hash.
func payToPubKeyHashScript(pubKeyHash []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(OP_DUP).AddOp(OP_HASH160).
		AddData(pubKeyHash).AddOp(OP_EQUALVERIFY).AddOp(OP_CHECKSIG).
		Script()
}

// payToScriptHashScript creates a new script to pay a transaction output to a
// script hash. It is expected that the input is a valid hash.
func payToScriptHashScript(scriptHash []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(OP_HASH160).AddData(scriptHash).
		AddOp(OP_EQUAL).Script()
}

// payToWitnessProgramScript creates a new script to pay to a witness program
// of the given version.
func payToWitnessProgramScript(version byte, program []byte) ([]byte, error) {
	return NewScriptBuilder().AddOp(smallIntOp(version)).AddData(program).
		Script()
}

// PayToAddrScript creates a new script to pay a transaction output to the
// specified address.
func PayToAddrScript(addr *util.Address) ([]byte, error) {
	const nilAddrErrStr = "unable to generate payment script for nil address"

	if addr == nil {
		return nil, scriptError(ErrUnsupportedAddress, nilAddrErrStr)
	}

	switch addr.Payload.Kind {
	case util.PubKeyHash:
		return payToPubKeyHashScript(addr.Payload.Hash[:])

	case util.ScriptHash:
		return payToScriptHashScript(addr.Payload.Hash[:])

	case util.WitnessProgram:
		program := addr.Payload.Program
		if addr.Payload.WitnessVersion > 16 || len(program) < 2 || len(program) > 40 {
			return nil, scriptError(ErrUnsupportedAddress,
				fmt.Sprintf("invalid witness program of version %d and "+
					"length %d", addr.Payload.WitnessVersion, len(program)))
		}
		return payToWitnessProgramScript(addr.Payload.WitnessVersion, program)
	}

	str := fmt.Sprintf("unable to generate payment script for unsupported "+
		"address kind %s", addr.Payload.Kind)
	return nil, scriptError(ErrUnsupportedAddress, str)
}

// NullDataScript creates a provably-prunable script containing OP_RETURN
// followed by the passed data. An Error with the error code ErrTooMuchNullData
// will be returned if the length of the passed data exceeds MaxDataCarrierSize.
func NullDataScript(data []byte) ([]byte, error) {
	if len(data) > MaxDataCarrierSize {
		str := fmt.Sprintf("data size %d is larger than max "+
			"allowed size %d", len(data), MaxDataCarrierSize)
		return nil, scriptError(ErrTooMuchNullData, str)
	}

	return NewScriptBuilder().AddOp(OP_RETURN).AddData(data).Script()
}

// MultiSigScript returns a valid script for a multisignature redemption where
// nrequired of the keys in pubkeys are required to have signed the transaction
// for success. An Error with the error code ErrTooManyRequiredSigs will be
// returned if nrequired is larger than the number of keys provided.
func MultiSigScript(pubKeys []*keys.PublicKey, nrequired int) ([]byte, error) {
	if len(pubKeys) > MaxPubKeysPerMultiSig {
		str := fmt.Sprintf("unable to generate multisig script with "+
			"%d public keys, the maximum is %d", len(pubKeys),
			MaxPubKeysPerMultiSig)
		return nil, scriptError(ErrTooManyPubKeys, str)
	}
	if nrequired < 1 || len(pubKeys) < nrequired {
		str := fmt.Sprintf("unable to generate multisig script with "+
			"%d required signatures when there are only %d public "+
			"keys available", nrequired, len(pubKeys))
		return nil, scriptError(ErrTooManyRequiredSigs, str)
	}

	builder := NewScriptBuilder().AddInt64(int64(nrequired))
	for _, key := range pubKeys {
		builder.AddData(key.Serialize())
	}
	builder.AddInt64(int64(len(pubKeys)))
	builder.AddOp(OP_CHECKMULTISIG)

	return builder.Script()
}

// ExtractScriptPubKeyAddress returns the type of script and its address.
// Pay-to-pubkey scripts are reported under the pay-to-pubkey-hash address of
// their key. Multisig, null data and non standard scripts have no address and
// a nil address is returned for them without an error.
func ExtractScriptPubKeyAddress(script []byte, params *chaincfg.Params) (ScriptClass, *util.Address, error) {
	class := GetScriptClass(script)
	switch class {
	case PubKeyHashTy:
		addr, err := util.NewAddressPubKeyHash(extractPubKeyHash(script), params)
		if err != nil {
			return class, nil, err
		}
		return class, addr, nil

	case ScriptHashTy:
		addr, err := util.NewAddressScriptHash(extractScriptHash(script), params)
		if err != nil {
			return class, nil, err
		}
		return class, addr, nil

	case PubKeyTy:
		pubKey, err := keys.ParsePublicKey(extractPubKey(script))
		if err != nil {
			// Well formed but off the curve.
			return NonStandardTy, nil, nil
		}
		return class, util.NewAddressP2PKH(pubKey, params), nil

	case WitnessV0PubKeyHashTy, WitnessV0ScriptHashTy, WitnessUnknownTy:
		version, program, _ := extractWitnessProgram(script)
		addr, err := util.NewAddressWitnessProgram(version, program, params)
		if err != nil {
			return class, nil, err
		}
		return class, addr, nil
	}

	return class, nil, nil
}
