package keys

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/pkg/errors"
)

// PrivateKeyLen is the length in bytes of a serialized private key.
const PrivateKeyLen = 32

var (
	// ErrInvalidPrivateKey is returned when private key bytes are not a
	// valid secp256k1 scalar.
	ErrInvalidPrivateKey = errors.New("invalid private key")

	// ErrInvalidSignature is returned when a signature does not verify
	// against the given public key and hash.
	ErrInvalidSignature = errors.New("signature verification failed")
)

// Signer produces signatures over message hashes. The in-memory PrivateKey
// satisfies it; other implementations may delegate to external devices.
type Signer interface {
	// PubKey returns the public key matching the signatures produced by
	// Sign.
	PubKey() *PublicKey

	// Sign returns the DER encoded signature of hash.
	Sign(hash []byte) ([]byte, error)
}

// SignatureVerifier checks sig against pub and hash, returning nil when the
// signature is valid. VerifySignature is the default implementation.
type SignatureVerifier func(pub *PublicKey, hash, sig []byte) error

// PublicKey is a secp256k1 public key together with the serialization format
// it was created with.
type PublicKey struct {
	key *btcec.PublicKey

	// Compressed selects the 33 byte encoding for Serialize and for the
	// hash used in addresses.
	Compressed bool
}

// ParsePublicKey parses a serialized public key in compressed, uncompressed
// or hybrid format.
func ParsePublicKey(serialized []byte) (*PublicKey, error) {
	key, err := btcec.ParsePubKey(serialized)
	if err != nil {
		return nil, errors.Wrap(err, "malformed public key")
	}
	return &PublicKey{
		key:        key,
		Compressed: len(serialized) == btcec.PubKeyBytesLenCompressed,
	}, nil
}

// SerializeCompressed returns the 33 byte compressed encoding of the key.
func (p *PublicKey) SerializeCompressed() []byte {
	return p.key.SerializeCompressed()
}

// SerializeUncompressed returns the 65 byte uncompressed encoding of the key.
func (p *PublicKey) SerializeUncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Serialize returns the encoding selected by the Compressed flag.
func (p *PublicKey) Serialize() []byte {
	if p.Compressed {
		return p.SerializeCompressed()
	}
	return p.SerializeUncompressed()
}

// Hash160 returns RIPEMD160(SHA256(p.Serialize())), the value committed to
// by pay-to-pubkey-hash outputs.
func (p *PublicKey) Hash160() chainhash.Hash160 {
	return chainhash.Hash160H(p.Serialize())
}

// IsEqual returns whether both keys are the same point with the same
// serialization format.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Compressed == other.Compressed && p.key.IsEqual(other.key)
}

// PrivateKey is an in-memory secp256k1 private key.
type PrivateKey struct {
	key        *btcec.PrivateKey
	compressed bool
}

// NewPrivateKey generates a random private key. compressed selects the public
// key format used by the key's addresses.
func NewPrivateKey(compressed bool) (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "could not generate private key")
	}
	return &PrivateKey{key: key, compressed: compressed}, nil
}

// PrivKeyFromBytes returns the private key for the 32 byte big-endian scalar
// b. Zero and values not below the group order are rejected.
func PrivKeyFromBytes(b []byte, compressed bool) (*PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "length %d, want %d",
			len(b), PrivateKeyLen)
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(b); overflow || scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar out of range")
	}
	key, _ := btcec.PrivKeyFromBytes(b)
	return &PrivateKey{key: key, compressed: compressed}, nil
}

// PubKey returns the public key of k.
func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{key: k.key.PubKey(), Compressed: k.compressed}
}

// Sign returns the DER encoded ECDSA signature of hash. The signature is
// deterministic (RFC6979) and uses the canonical low-S form.
func (k *PrivateKey) Sign(hash []byte) ([]byte, error) {
	return ecdsa.Sign(k.key, hash).Serialize(), nil
}

// Serialize returns the 32 byte big-endian scalar of k.
func (k *PrivateKey) Serialize() []byte {
	return k.key.Serialize()
}

// VerifySignature checks the DER encoded signature sig of hash against pub.
func VerifySignature(pub *PublicKey, hash, sig []byte) error {
	signature, err := ecdsa.ParseDERSignature(sig)
	if err != nil {
		return errors.Wrap(err, "malformed signature")
	}
	if !signature.Verify(hash, pub.key) {
		return errors.WithStack(ErrInvalidSignature)
	}
	return nil
}

var _ Signer = (*PrivateKey)(nil)
var _ SignatureVerifier = VerifySignature
