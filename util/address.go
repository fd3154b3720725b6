// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/chainwire/chaincfg"
	"github.com/kaspanet/chainwire/keys"
	"github.com/kaspanet/chainwire/util/bech32"
	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/pkg/errors"
)

const (
	// maxBase58AddressLength is the longest Base58Check address string
	// accepted by DecodeAddress. A version byte, a 20 byte hash and a 4
	// byte checksum never need more than 35 characters.
	maxBase58AddressLength = 50

	// base58ChecksumLength is the number of double-SHA256 bytes appended to
	// a Base58Check payload.
	base58ChecksumLength = 4

	// maxWitnessVersion is the highest witness version an address may
	// carry.
	maxWitnessVersion = 16

	minWitnessProgramLength = 2
	maxWitnessProgramLength = 40

	witnessV0PubKeyHashLength = 20
	witnessV0ScriptHashLength = 32
)

// AddressErrorCode identifies a kind of address error.
type AddressErrorCode int

// These constants are used to identify a specific AddressError.
const (
	// ErrInvalidChecksum indicates the Base58Check or Bech32 checksum did
	// not match the data.
	ErrInvalidChecksum AddressErrorCode = iota

	// ErrInvalidVersion indicates an unknown Base58Check version byte or a
	// witness version above 16.
	ErrInvalidVersion

	// ErrInvalidCharacter indicates a character outside the encoding's
	// alphabet, or mixed case in a Bech32 string.
	ErrInvalidCharacter

	// ErrInvalidLength indicates a string or payload of the wrong size.
	ErrInvalidLength

	// ErrInvalidWitnessProgram indicates an empty Bech32 data part, bad
	// padding, or a witness program of a disallowed length.
	ErrInvalidWitnessProgram

	// ErrWrongNetwork indicates a well-formed address that belongs to a
	// network other than the one requested.
	ErrWrongNetwork

	// numAddressErrorCodes is the maximum error code number used in tests.
	numAddressErrorCodes
)

// Map of AddressErrorCode values back to their constant names for pretty
// printing.
var addressErrorCodeStrings = map[AddressErrorCode]string{
	ErrInvalidChecksum:       "ErrInvalidChecksum",
	ErrInvalidVersion:        "ErrInvalidVersion",
	ErrInvalidCharacter:      "ErrInvalidCharacter",
	ErrInvalidLength:         "ErrInvalidLength",
	ErrInvalidWitnessProgram: "ErrInvalidWitnessProgram",
	ErrWrongNetwork:          "ErrWrongNetwork",
}

// String returns the AddressErrorCode as a human-readable name.
func (e AddressErrorCode) String() string {
	if s := addressErrorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown AddressErrorCode (%d)", int(e))
}

// AddressError identifies an address that could not be decoded or
// constructed.
type AddressError struct {
	ErrorCode   AddressErrorCode
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e AddressError) Error() string {
	return e.Description
}

func addressError(c AddressErrorCode, desc string) AddressError {
	return AddressError{ErrorCode: c, Description: desc}
}

// IsAddressErrorCode returns whether err is an AddressError with the given
// code.
func IsAddressErrorCode(err error, c AddressErrorCode) bool {
	var addrErr AddressError
	return errors.As(err, &addrErr) && addrErr.ErrorCode == c
}

// AddressKind identifies the payload kind of an Address.
type AddressKind byte

// Supported payload kinds.
const (
	// PubKeyHash is a Base58Check pay-to-pubkey-hash address.
	PubKeyHash AddressKind = iota

	// ScriptHash is a Base58Check pay-to-script-hash address.
	ScriptHash

	// WitnessProgram is a Bech32 segwit address.
	WitnessProgram
)

var addressKindStrings = map[AddressKind]string{
	PubKeyHash:     "pubkeyhash",
	ScriptHash:     "scripthash",
	WitnessProgram: "witnessprogram",
}

func (k AddressKind) String() string {
	if s, ok := addressKindStrings[k]; ok {
		return s
	}
	return fmt.Sprintf("Unknown AddressKind (%d)", byte(k))
}

// Payload is the destination committed to by an address. Hash is used by the
// PubKeyHash and ScriptHash kinds, WitnessVersion and Program by the
// WitnessProgram kind.
type Payload struct {
	Kind           AddressKind
	Hash           chainhash.Hash160
	WitnessVersion byte
	Program        []byte
}

// Address is a payment destination on a specific network.
type Address struct {
	Network *chaincfg.Params
	Payload Payload
}

// NewAddressPubKeyHash returns a pay-to-pubkey-hash address for the 20 byte
// hash pkHash.
func NewAddressPubKeyHash(pkHash []byte, params *chaincfg.Params) (*Address, error) {
	return newAddressHash(PubKeyHash, pkHash, params)
}

// NewAddressScriptHash returns a pay-to-script-hash address for the 20 byte
// hash scriptHash.
func NewAddressScriptHash(scriptHash []byte, params *chaincfg.Params) (*Address, error) {
	return newAddressHash(ScriptHash, scriptHash, params)
}

func newAddressHash(kind AddressKind, hash []byte, params *chaincfg.Params) (*Address, error) {
	var h chainhash.Hash160
	if len(hash) != chainhash.Hash160Size {
		return nil, addressError(ErrInvalidLength,
			fmt.Sprintf("%s hash must be %d bytes, got %d", kind,
				chainhash.Hash160Size, len(hash)))
	}
	copy(h[:], hash)
	return &Address{Network: params, Payload: Payload{Kind: kind, Hash: h}}, nil
}

// NewAddressWitnessProgram returns a segwit address for the given witness
// version and program.
func NewAddressWitnessProgram(version byte, program []byte, params *chaincfg.Params) (*Address, error) {
	if err := checkWitnessProgram(version, program); err != nil {
		return nil, err
	}
	return &Address{
		Network: params,
		Payload: Payload{
			Kind:           WitnessProgram,
			WitnessVersion: version,
			Program:        append([]byte(nil), program...),
		},
	}, nil
}

// NewAddressP2PKH returns the pay-to-pubkey-hash address of pubKey, hashed in
// the format selected by pubKey.Compressed.
func NewAddressP2PKH(pubKey *keys.PublicKey, params *chaincfg.Params) *Address {
	return &Address{
		Network: params,
		Payload: Payload{Kind: PubKeyHash, Hash: pubKey.Hash160()},
	}
}

// NewAddressP2SH returns the pay-to-script-hash address of redeemScript.
func NewAddressP2SH(redeemScript []byte, params *chaincfg.Params) *Address {
	return &Address{
		Network: params,
		Payload: Payload{Kind: ScriptHash, Hash: chainhash.Hash160H(redeemScript)},
	}
}

// NewAddressP2WPKH returns the version 0 pay-to-witness-pubkey-hash address
// of pubKey.
func NewAddressP2WPKH(pubKey *keys.PublicKey, params *chaincfg.Params) *Address {
	hash := pubKey.Hash160()
	return &Address{
		Network: params,
		Payload: Payload{Kind: WitnessProgram, Program: hash[:]},
	}
}

// NewAddressP2WSH returns the version 0 pay-to-witness-script-hash address of
// witnessScript.
func NewAddressP2WSH(witnessScript []byte, params *chaincfg.Params) *Address {
	return &Address{
		Network: params,
		Payload: Payload{Kind: WitnessProgram, Program: chainhash.HashB(witnessScript)},
	}
}

// NewAddressP2SHWPKH returns a pay-to-script-hash address whose redeem script
// is the version 0 witness program of pubKey. Wallets without segwit support
// can pay to it.
func NewAddressP2SHWPKH(pubKey *keys.PublicKey, params *chaincfg.Params) *Address {
	hash := pubKey.Hash160()
	return NewAddressP2SH(witnessV0Script(hash[:]), params)
}

// NewAddressP2SHWSH returns a pay-to-script-hash address whose redeem script
// is the version 0 witness program of witnessScript.
func NewAddressP2SHWSH(witnessScript []byte, params *chaincfg.Params) *Address {
	return NewAddressP2SH(witnessV0Script(chainhash.HashB(witnessScript)), params)
}

// witnessV0Script returns OP_0 <program>. Program is 20 or 32 bytes so a
// single direct push opcode encodes its length.
func witnessV0Script(program []byte) []byte {
	script := make([]byte, 0, 2+len(program))
	script = append(script, 0x00, byte(len(program)))
	return append(script, program...)
}

// checkWitnessProgram applies the generic segwit rules and the version 0
// program length rule.
func checkWitnessProgram(version byte, program []byte) error {
	if version > maxWitnessVersion {
		return addressError(ErrInvalidVersion,
			fmt.Sprintf("invalid witness version %d", version))
	}
	if len(program) < minWitnessProgramLength || len(program) > maxWitnessProgramLength {
		return addressError(ErrInvalidWitnessProgram,
			fmt.Sprintf("witness program must be between %d and %d bytes, got %d",
				minWitnessProgramLength, maxWitnessProgramLength, len(program)))
	}
	if version == 0 && len(program) != witnessV0PubKeyHashLength &&
		len(program) != witnessV0ScriptHashLength {

		return addressError(ErrInvalidWitnessProgram,
			fmt.Sprintf("version 0 witness program must be %d or %d bytes, got %d",
				witnessV0PubKeyHashLength, witnessV0ScriptHashLength, len(program)))
	}
	return nil
}

// String returns the Base58Check or lowercase Bech32 encoding of the
// address. An address without a network or whose payload cannot be encoded
// returns the empty string.
func (a *Address) String() string {
	if a.Network == nil {
		return ""
	}
	switch a.Payload.Kind {
	case PubKeyHash:
		return base58.CheckEncode(a.Payload.Hash[:], a.Network.PubKeyHashAddrID)
	case ScriptHash:
		return base58.CheckEncode(a.Payload.Hash[:], a.Network.ScriptHashAddrID)
	case WitnessProgram:
		encoded, err := encodeSegWitAddress(a.Network.Bech32HRPSegwit,
			a.Payload.WitnessVersion, a.Payload.Program)
		if err != nil {
			return ""
		}
		return encoded
	}
	return ""
}

// ScriptAddress returns the raw bytes committed to by the address: the hash
// for Base58 kinds and the witness program for segwit addresses.
func (a *Address) ScriptAddress() []byte {
	if a.Payload.Kind == WitnessProgram {
		return append([]byte(nil), a.Payload.Program...)
	}
	return append([]byte(nil), a.Payload.Hash[:]...)
}

// IsForNet returns whether the address encodes for the given network.
func (a *Address) IsForNet(params *chaincfg.Params) bool {
	if a.Network == nil || params == nil {
		return false
	}
	if a.Payload.Kind == WitnessProgram {
		return strings.EqualFold(a.Network.Bech32HRPSegwit, params.Bech32HRPSegwit)
	}
	if a.Payload.Kind == PubKeyHash {
		return a.Network.PubKeyHashAddrID == params.PubKeyHashAddrID
	}
	return a.Network.ScriptHashAddrID == params.ScriptHashAddrID
}

// IsStandard returns whether the address follows standardness rules. Segwit
// addresses with a version other than 0 or a non-standard program size are
// not standard.
func (a *Address) IsStandard() bool {
	switch a.Payload.Kind {
	case PubKeyHash, ScriptHash:
		return true
	case WitnessProgram:
		n := len(a.Payload.Program)
		return a.Payload.WitnessVersion == 0 &&
			(n == witnessV0PubKeyHashLength || n == witnessV0ScriptHashLength)
	}
	return false
}

// DecodeAddress decodes the string encoding of an address. When params is
// nil the network is inferred from the Bech32 prefix or Base58 version byte.
// Otherwise the address must belong to params, or ErrWrongNetwork is
// returned.
//
// Base58 testnet and regtest addresses share version bytes, so an address
// decoded without params resolves to the network registered first, testnet3.
func DecodeAddress(addr string, params *chaincfg.Params) (*Address, error) {
	if one := strings.LastIndexByte(addr, '1'); one > 0 {
		if netParams, ok := chaincfg.ParamsForBech32HRP(addr[:one]); ok {
			return decodeSegWitAddress(addr, netParams, params)
		}
	}
	return decodeBase58Address(addr, params)
}

func decodeSegWitAddress(addr string, netParams, params *chaincfg.Params) (*Address, error) {
	_, data, err := bech32.Decode(addr)
	if err != nil {
		return nil, bech32AddressError(err)
	}
	if len(data) < 1 {
		return nil, addressError(ErrInvalidWitnessProgram,
			"the bech32 data part is empty")
	}

	version := data[0]
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return nil, bech32AddressError(err)
	}
	if err := checkWitnessProgram(version, program); err != nil {
		return nil, err
	}

	if params != nil {
		if !strings.EqualFold(params.Bech32HRPSegwit, netParams.Bech32HRPSegwit) {
			return nil, addressError(ErrWrongNetwork,
				fmt.Sprintf("address %s is for %s, not %s", addr,
					netParams.Name, params.Name))
		}
		netParams = params
	}

	return &Address{
		Network: netParams,
		Payload: Payload{
			Kind:           WitnessProgram,
			WitnessVersion: version,
			Program:        program,
		},
	}, nil
}

func decodeBase58Address(addr string, params *chaincfg.Params) (*Address, error) {
	if len(addr) == 0 || len(addr) > maxBase58AddressLength {
		return nil, addressError(ErrInvalidLength,
			fmt.Sprintf("invalid address length %d", len(addr)))
	}

	decoded := base58.Decode(addr)
	if len(decoded) == 0 {
		return nil, addressError(ErrInvalidCharacter,
			"address contains a character outside the base58 alphabet")
	}
	if len(decoded) != 1+chainhash.Hash160Size+base58ChecksumLength {
		return nil, addressError(ErrInvalidLength,
			fmt.Sprintf("decoded address is %d bytes", len(decoded)))
	}

	payload := decoded[:len(decoded)-base58ChecksumLength]
	var checksum [base58ChecksumLength]byte
	copy(checksum[:], chainhash.DoubleHashB(payload))
	if !bytes.Equal(checksum[:], decoded[len(payload):]) {
		return nil, addressError(ErrInvalidChecksum, "checksum mismatch")
	}

	version := payload[0]
	var hash chainhash.Hash160
	copy(hash[:], payload[1:])

	if params != nil {
		switch version {
		case params.PubKeyHashAddrID:
			return &Address{Network: params, Payload: Payload{Kind: PubKeyHash, Hash: hash}}, nil
		case params.ScriptHashAddrID:
			return &Address{Network: params, Payload: Payload{Kind: ScriptHash, Hash: hash}}, nil
		}
		if netParams, ok := paramsForBase58Version(version); ok {
			return nil, addressError(ErrWrongNetwork,
				fmt.Sprintf("address %s is for %s, not %s", addr,
					netParams.Name, params.Name))
		}
		return nil, addressError(ErrInvalidVersion,
			fmt.Sprintf("unknown address version 0x%02x", version))
	}

	if netParams, ok := chaincfg.ParamsForPubKeyHashAddrID(version); ok {
		return &Address{Network: netParams, Payload: Payload{Kind: PubKeyHash, Hash: hash}}, nil
	}
	if netParams, ok := chaincfg.ParamsForScriptHashAddrID(version); ok {
		return &Address{Network: netParams, Payload: Payload{Kind: ScriptHash, Hash: hash}}, nil
	}
	return nil, addressError(ErrInvalidVersion,
		fmt.Sprintf("unknown address version 0x%02x", version))
}

func paramsForBase58Version(version byte) (*chaincfg.Params, bool) {
	if params, ok := chaincfg.ParamsForPubKeyHashAddrID(version); ok {
		return params, true
	}
	return chaincfg.ParamsForScriptHashAddrID(version)
}

// encodeSegWitAddress creates a Bech32 encoded segwit address for the given
// witness version and program.
func encodeSegWitAddress(hrp string, version byte, program []byte) (string, error) {
	converted, err := bech32.ConvertBits(program, 8, 5, true)
	if err != nil {
		return "", err
	}
	combined := make([]byte, 0, len(converted)+1)
	combined = append(combined, version)
	combined = append(combined, converted...)
	return bech32.Encode(hrp, combined)
}

// bech32AddressError maps a bech32 codec error onto an AddressError.
func bech32AddressError(err error) error {
	var bechErr bech32.Error
	if !errors.As(err, &bechErr) {
		return err
	}
	var code AddressErrorCode
	switch bechErr.ErrorCode {
	case bech32.ErrMixedCase, bech32.ErrInvalidCharacter:
		code = ErrInvalidCharacter
	case bech32.ErrInvalidLength, bech32.ErrInvalidSeparatorIndex:
		code = ErrInvalidLength
	case bech32.ErrInvalidChecksum:
		code = ErrInvalidChecksum
	default:
		code = ErrInvalidWitnessProgram
	}
	return addressError(code, bechErr.Error())
}
