package psbt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/kaspanet/chainwire/wire"
	"github.com/pkg/errors"
)

// magic is the prefix of every serialized PSBT.
var magic = [4]byte{'p', 's', 'b', 't'}

// separator follows magic.
const separator = 0xff

// maxPairElementSize bounds the key and value of a single entry.
const maxPairElementSize = wire.MaxMessagePayload

// Key is the key of a map entry: a type followed by type-specific data.
type Key struct {
	Type byte
	Data []byte
}

// serialize returns the type byte followed by the key data.
func (k Key) serialize() []byte {
	serialized := make([]byte, 0, 1+len(k.Data))
	serialized = append(serialized, k.Type)
	return append(serialized, k.Data...)
}

// String returns a human-readable form of the key.
func (k Key) String() string {
	return fmt.Sprintf("type: %#x, key: %x", k.Type, k.Data)
}

// Pair is a single map entry.
type Pair struct {
	Key   Key
	Value []byte
}

// compareKeys orders keys by type and then by key data.
func compareKeys(a, b Key) int {
	if a.Type != b.Type {
		if a.Type < b.Type {
			return -1
		}
		return 1
	}
	return bytes.Compare(a.Data, b.Data)
}

// ReadMagic reads and checks the "psbt" prefix and separator of a packet.
func ReadMagic(r io.Reader) error {
	var prefix [len(magic) + 1]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		return psbtError(ErrInvalidMagic, "packet is too short for the magic")
	}
	if !bytes.Equal(prefix[:len(magic)], magic[:]) {
		str := fmt.Sprintf("invalid magic %x", prefix[:len(magic)])
		return psbtError(ErrInvalidMagic, str)
	}
	if prefix[len(magic)] != separator {
		str := fmt.Sprintf("invalid separator %#x", prefix[len(magic)])
		return psbtError(ErrInvalidSeparator, str)
	}
	return nil
}

// WriteMagic writes the "psbt" prefix and separator of a packet.
func WriteMagic(w io.Writer) error {
	_, err := w.Write(append(magic[:], separator))
	return errors.WithStack(err)
}

// readPair reads the next entry of a map. It returns nil without an error
// when it reads the byte that terminates the map.
func readPair(r io.Reader) (*Pair, error) {
	serializedKey, err := wire.ReadVarBytes(r, maxPairElementSize, "psbt key")
	if err != nil {
		return nil, err
	}
	if len(serializedKey) == 0 {
		return nil, nil
	}

	value, err := wire.ReadVarBytes(r, maxPairElementSize, "psbt value")
	if err != nil {
		return nil, err
	}

	pair := &Pair{
		Key:   Key{Type: serializedKey[0]},
		Value: value,
	}
	if len(serializedKey) > 1 {
		pair.Key.Data = serializedKey[1:]
	}
	return pair, nil
}

// writePair writes pair as a map entry.
func writePair(w io.Writer, pair *Pair) error {
	err := wire.WriteVarBytes(w, pair.Key.serialize())
	if err != nil {
		return err
	}
	return wire.WriteVarBytes(w, pair.Value)
}

// writeMapEnd writes the byte that terminates a map.
func writeMapEnd(w io.Writer) error {
	return wire.WriteVarInt(w, 0)
}
