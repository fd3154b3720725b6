package keys

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/pkg/errors"
)

const (
	generatorCompressed   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	generatorUncompressed = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
)

func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in test source")
	}
	return b
}

func scalar(last byte) []byte {
	b := make([]byte, PrivateKeyLen)
	b[PrivateKeyLen-1] = last
	return b
}

func TestPrivKeyFromBytes(t *testing.T) {
	tests := []struct {
		name  string
		key   []byte
		valid bool
	}{
		{"one", scalar(1), true},
		{"zero", scalar(0), false},
		{"short", []byte{0x01}, false},
		{"long", make([]byte, PrivateKeyLen+1), false},
		{"group order", hexToBytes("fffffffffffffffffffffffffffffffe" +
			"baaedce6af48a03bbfd25e8cd0364141"), false},
		{"group order minus one", hexToBytes("fffffffffffffffffffffffffffffffe" +
			"baaedce6af48a03bbfd25e8cd0364140"), true},
	}

	for _, test := range tests {
		key, err := PrivKeyFromBytes(test.key, true)
		if !test.valid {
			if !errors.Is(err, ErrInvalidPrivateKey) {
				t.Errorf("%s: expected ErrInvalidPrivateKey, got %v", test.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", test.name, err)
			continue
		}
		if !bytes.Equal(key.Serialize(), test.key) {
			t.Errorf("%s: Serialize mismatch got %x", test.name, key.Serialize())
		}
	}
}

func TestPublicKeyFormats(t *testing.T) {
	key, err := PrivKeyFromBytes(scalar(1), true)
	if err != nil {
		t.Fatalf("PrivKeyFromBytes: %v", err)
	}
	pub := key.PubKey()
	if !pub.Compressed {
		t.Errorf("PubKey: expected compressed key")
	}
	if got := hex.EncodeToString(pub.Serialize()); got != generatorCompressed {
		t.Errorf("Serialize: got %s, want %s", got, generatorCompressed)
	}
	if got := hex.EncodeToString(pub.SerializeUncompressed()); got != generatorUncompressed {
		t.Errorf("SerializeUncompressed: got %s, want %s", got, generatorUncompressed)
	}

	wantHash := "751e76e8199196d454941c45d1b3a323f1433bd6"
	if got := pub.Hash160(); hex.EncodeToString(got[:]) != wantHash {
		t.Errorf("Hash160: got %x, want %s", got[:], wantHash)
	}

	tests := []struct {
		name       string
		serialized string
		compressed bool
	}{
		{"compressed", generatorCompressed, true},
		{"uncompressed", generatorUncompressed, false},
	}
	for _, test := range tests {
		parsed, err := ParsePublicKey(hexToBytes(test.serialized))
		if err != nil {
			t.Errorf("%s: ParsePublicKey: %v", test.name, err)
			continue
		}
		if parsed.Compressed != test.compressed {
			t.Errorf("%s: wrong compressed flag %v", test.name, parsed.Compressed)
		}
		if hex.EncodeToString(parsed.Serialize()) != test.serialized {
			t.Errorf("%s: Serialize does not round trip", test.name)
		}
	}

	uncompressed, _ := ParsePublicKey(hexToBytes(generatorUncompressed))
	if pub.IsEqual(uncompressed) {
		t.Errorf("IsEqual: keys with different formats reported equal")
	}
	uncompressed.Compressed = true
	if !pub.IsEqual(uncompressed) {
		t.Errorf("IsEqual: same point and format reported different")
	}

	if _, err := ParsePublicKey([]byte{0x02, 0x01}); err == nil {
		t.Errorf("ParsePublicKey: expected error for truncated key")
	}
}

func TestSignAndVerify(t *testing.T) {
	var signer Signer
	key, err := NewPrivateKey(true)
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	signer = key

	hash := chainhash.DoubleHashB([]byte("chainwire"))
	sig, err := signer.Sign(hash)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := VerifySignature(signer.PubKey(), hash, sig); err != nil {
		t.Errorf("VerifySignature: %v", err)
	}

	otherHash := chainhash.DoubleHashB([]byte("other"))
	err = VerifySignature(signer.PubKey(), otherHash, sig)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("VerifySignature: expected ErrInvalidSignature, got %v", err)
	}

	other, _ := PrivKeyFromBytes(scalar(7), true)
	err = VerifySignature(other.PubKey(), hash, sig)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("VerifySignature: wrong key accepted, got %v", err)
	}

	if err := VerifySignature(signer.PubKey(), hash, sig[:len(sig)-1]); err == nil {
		t.Errorf("VerifySignature: truncated signature accepted")
	}
}

func TestSignDeterministic(t *testing.T) {
	key, _ := PrivKeyFromBytes(scalar(1), true)
	hash := chainhash.DoubleHashB([]byte("deterministic"))
	first, _ := key.Sign(hash)
	second, _ := key.Sign(hash)
	if !bytes.Equal(first, second) {
		t.Errorf("Sign: signatures differ for the same key and hash")
	}
}
