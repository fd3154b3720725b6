// Package bip32 implements the BIP-32 serialization of extended public keys
// and the derivation paths that describe where such a key came from.
// Deriving child keys is left to the holder of the key material.
package bip32

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"github.com/kaspanet/chainwire/keys"
	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/pkg/errors"
)

const (
	versionSerializationLen     = 4
	depthSerializationLen       = 1
	fingerprintSerializationLen = 4
	childNumberSerializationLen = 4
	chainCodeSerializationLen   = 32
	keySerializationLen         = 33
	checkSumLen                 = 4
)

// ExtendedKeySerializationLen is the length of a serialized extended key
// without its base58 checksum.
const ExtendedKeySerializationLen = versionSerializationLen +
	depthSerializationLen +
	fingerprintSerializationLen +
	childNumberSerializationLen +
	chainCodeSerializationLen +
	keySerializationLen

const (
	depthOffset       = versionSerializationLen
	fingerprintOffset = depthOffset + depthSerializationLen
	childNumberOffset = fingerprintOffset + fingerprintSerializationLen
	chainCodeOffset   = childNumberOffset + childNumberSerializationLen
	keyOffset         = chainCodeOffset + chainCodeSerializationLen
)

// Fingerprint is the first four bytes of the hash160 of a compressed public
// key. It identifies the parent of an extended key and the master key of a
// key source.
type Fingerprint [fingerprintSerializationLen]byte

// ExtendedPublicKey is a public key together with the chain code and position
// data BIP-32 serializes alongside it.
type ExtendedPublicKey struct {
	Version           [4]byte
	Depth             uint8
	ParentFingerprint Fingerprint
	ChildNumber       uint32
	ChainCode         [32]byte
	PublicKey         *keys.PublicKey
}

// Serialize returns the 78 byte BIP-32 encoding of the key, without checksum.
func (extPub *ExtendedPublicKey) Serialize() []byte {
	serialized := make([]byte, ExtendedKeySerializationLen)
	copy(serialized[:versionSerializationLen], extPub.Version[:])
	serialized[depthOffset] = extPub.Depth
	copy(serialized[fingerprintOffset:], extPub.ParentFingerprint[:])
	binary.BigEndian.PutUint32(serialized[childNumberOffset:], extPub.ChildNumber)
	copy(serialized[chainCodeOffset:], extPub.ChainCode[:])
	copy(serialized[keyOffset:], extPub.PublicKey.SerializeCompressed())
	return serialized
}

// String returns the base58 encoding of the key with its checksum appended,
// the familiar "xpub..." form.
func (extPub *ExtendedPublicKey) String() string {
	serialized := extPub.Serialize()
	return base58.Encode(append(serialized, calcChecksum(serialized)...))
}

// Fingerprint returns the fingerprint children of this key carry as their
// ParentFingerprint.
func (extPub *ExtendedPublicKey) Fingerprint() Fingerprint {
	hash := chainhash.Hash160B(extPub.PublicKey.SerializeCompressed())
	var fingerprint Fingerprint
	copy(fingerprint[:], hash[:fingerprintSerializationLen])
	return fingerprint
}

// IsEqual returns whether both keys serialize identically.
func (extPub *ExtendedPublicKey) IsEqual(other *ExtendedPublicKey) bool {
	return bytes.Equal(extPub.Serialize(), other.Serialize())
}

// DeserializeExtendedPublicKey parses the 78 byte BIP-32 encoding of an
// extended public key.
func DeserializeExtendedPublicKey(serialized []byte) (*ExtendedPublicKey, error) {
	if len(serialized) != ExtendedKeySerializationLen {
		return nil, errors.Errorf("key length must be %d bytes but got %d",
			ExtendedKeySerializationLen, len(serialized))
	}

	// Private keys are stored as 0x00 followed by the scalar.
	if serialized[keyOffset] == 0 {
		return nil, errors.New("extended key holds a private key")
	}

	publicKey, err := keys.ParsePublicKey(serialized[keyOffset:])
	if err != nil {
		return nil, err
	}

	extPub := &ExtendedPublicKey{
		Depth:       serialized[depthOffset],
		ChildNumber: binary.BigEndian.Uint32(serialized[childNumberOffset:]),
		PublicKey:   publicKey,
	}
	copy(extPub.Version[:], serialized[:versionSerializationLen])
	copy(extPub.ParentFingerprint[:], serialized[fingerprintOffset:])
	copy(extPub.ChainCode[:], serialized[chainCodeOffset:])
	return extPub, nil
}

// ParseExtendedPublicKey parses the base58 form produced by String.
func ParseExtendedPublicKey(extPubString string) (*ExtendedPublicKey, error) {
	serialized := base58.Decode(extPubString)
	if len(serialized) != ExtendedKeySerializationLen+checkSumLen {
		return nil, errors.Errorf("key length must be %d bytes but got %d",
			ExtendedKeySerializationLen+checkSumLen, len(serialized))
	}

	err := validateChecksum(serialized)
	if err != nil {
		return nil, err
	}

	return DeserializeExtendedPublicKey(serialized[:ExtendedKeySerializationLen])
}

func calcChecksum(data []byte) []byte {
	return chainhash.DoubleHashB(data)[:checkSumLen]
}

func validateChecksum(data []byte) error {
	checksum := data[len(data)-checkSumLen:]
	expectedChecksum := calcChecksum(data[:len(data)-checkSumLen])
	if !bytes.Equal(expectedChecksum, checksum) {
		return errors.Errorf("expected checksum %x but got %x", expectedChecksum, checksum)
	}

	return nil
}
