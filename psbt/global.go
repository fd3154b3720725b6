package psbt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/kaspanet/chainwire/infrastructure/logger"
	"github.com/kaspanet/chainwire/keys/bip32"
	"github.com/kaspanet/chainwire/util/binaryserializer"
	"github.com/kaspanet/chainwire/wire"
)

// Global map key types.
const (
	globalUnsignedTxType byte = 0x00
	globalXpubType       byte = 0x01
	globalVersionType    byte = 0xfb
)

// Xpub is an extended public key listed in the global map together with the
// master key fingerprint and path it was derived with.
type Xpub struct {
	Key    *bip32.ExtendedPublicKey
	Source bip32.KeySource
}

// Global is the global map of a PSBT.
type Global struct {
	// UnsignedTx is the transaction being signed. Its inputs carry no
	// signature scripts and no witnesses.
	UnsignedTx *wire.MsgTx

	// Version is the version of the PSBT format. Only version 0 is
	// understood.
	Version uint32

	// Xpubs are the extended public keys signers derive from.
	Xpubs []*Xpub

	// Unknowns are entries with key types this package does not
	// interpret. They are carried through unchanged.
	Unknowns []*Pair
}

// checkUnsigned ensures no input of tx carries a signature.
func checkUnsigned(tx *wire.MsgTx) error {
	for i, txIn := range tx.TxIn {
		if len(txIn.SignatureScript) != 0 {
			str := fmt.Sprintf("input %d of the unsigned transaction "+
				"has a script sig", i)
			return psbtError(ErrUnsignedTxHasScriptSigs, str)
		}
		if len(txIn.Witness) != 0 {
			str := fmt.Sprintf("input %d of the unsigned transaction "+
				"has a script witness", i)
			return psbtError(ErrUnsignedTxHasScriptWitnesses, str)
		}
	}
	return nil
}

// NewGlobalFromUnsignedTx returns a version 0 global map for tx. It fails if
// any input of tx is already signed.
func NewGlobalFromUnsignedTx(tx *wire.MsgTx) (*Global, error) {
	err := checkUnsigned(tx)
	if err != nil {
		return nil, err
	}
	return &Global{UnsignedTx: tx}, nil
}

// findXpub returns the index of key in g.Xpubs, or -1.
func (g *Global) findXpub(key *bip32.ExtendedPublicKey) int {
	for i, xpub := range g.Xpubs {
		if xpub.Key.IsEqual(key) {
			return i
		}
	}
	return -1
}

// findUnknown returns the index of key in g.Unknowns, or -1.
func (g *Global) findUnknown(key Key) int {
	for i, pair := range g.Unknowns {
		if compareKeys(pair.Key, key) == 0 {
			return i
		}
	}
	return -1
}

// AddXpub lists key with its source. A key may be listed once.
func (g *Global) AddXpub(key *bip32.ExtendedPublicKey, source bip32.KeySource) error {
	if g.findXpub(key) != -1 {
		str := fmt.Sprintf("global xpub %s is listed twice", key)
		return psbtError(ErrDuplicateKey, str)
	}
	g.Xpubs = append(g.Xpubs, &Xpub{Key: key, Source: source})
	return nil
}

// AddUnknown adds an entry this package does not interpret. A key may be
// added once.
func (g *Global) AddUnknown(pair *Pair) error {
	switch pair.Key.Type {
	case globalUnsignedTxType, globalXpubType, globalVersionType:
		str := fmt.Sprintf("key %s has a known type", pair.Key)
		return psbtError(ErrInvalidKey, str)
	}
	if g.findUnknown(pair.Key) != -1 {
		str := fmt.Sprintf("duplicate key %s", pair.Key)
		return psbtError(ErrDuplicateKey, str)
	}
	g.Unknowns = append(g.Unknowns, pair)
	return nil
}

// pairs returns the entries of the map in serialization order: the unsigned
// transaction, the xpubs ordered by key, the version when it is not 0 and the
// unknown entries ordered by key.
func (g *Global) pairs() ([]*Pair, error) {
	// The transaction is always encoded without witness so that a
	// transaction without inputs is not mistaken for a witness marker.
	var unsignedTx bytes.Buffer
	err := g.UnsignedTx.SerializeNoWitness(&unsignedTx)
	if err != nil {
		return nil, err
	}
	pairs := []*Pair{{
		Key:   Key{Type: globalUnsignedTxType},
		Value: unsignedTx.Bytes(),
	}}

	xpubs := make([]*Pair, 0, len(g.Xpubs))
	for _, xpub := range g.Xpubs {
		value := make([]byte, 4+4*len(xpub.Source.Path))
		copy(value, xpub.Source.Fingerprint[:])
		for i, index := range xpub.Source.Path {
			binary.LittleEndian.PutUint32(value[4+4*i:], index)
		}
		xpubs = append(xpubs, &Pair{
			Key:   Key{Type: globalXpubType, Data: xpub.Key.Serialize()},
			Value: value,
		})
	}
	sort.Slice(xpubs, func(i, j int) bool {
		return compareKeys(xpubs[i].Key, xpubs[j].Key) < 0
	})
	pairs = append(pairs, xpubs...)

	if g.Version > 0 {
		var version bytes.Buffer
		err := binaryserializer.PutUint32(&version, g.Version)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, &Pair{
			Key:   Key{Type: globalVersionType},
			Value: version.Bytes(),
		})
	}

	unknowns := make([]*Pair, len(g.Unknowns))
	copy(unknowns, g.Unknowns)
	sort.Slice(unknowns, func(i, j int) bool {
		return compareKeys(unknowns[i].Key, unknowns[j].Key) < 0
	})
	return append(pairs, unknowns...), nil
}

// Serialize writes the global map, including its terminating byte, to w.
func (g *Global) Serialize(w io.Writer) error {
	if g.UnsignedTx == nil {
		return psbtError(ErrMustHaveUnsignedTx, "global map has no "+
			"unsigned transaction")
	}

	pairs, err := g.pairs()
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		err := writePair(w, pair)
		if err != nil {
			return err
		}
	}
	return writeMapEnd(w)
}

// Bytes returns the serialized global map.
func (g *Global) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := g.Serialize(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializePacket writes a complete PSBT made of the global map followed by
// an empty map for every input and every output of the unsigned transaction.
// This is the packet a creator hands to the first updater.
func (g *Global) SerializePacket(w io.Writer) error {
	err := WriteMagic(w)
	if err != nil {
		return err
	}
	err = g.Serialize(w)
	if err != nil {
		return err
	}
	for i := 0; i < len(g.UnsignedTx.TxIn)+len(g.UnsignedTx.TxOut); i++ {
		err := writeMapEnd(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// decodeUnsignedTx decodes the value of the unsigned transaction entry. The
// value must hold exactly one transaction in the layout without witness.
func decodeUnsignedTx(value []byte) (*wire.MsgTx, error) {
	r := bytes.NewReader(value)
	tx := &wire.MsgTx{}
	err := tx.DeserializeNoWitness(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, psbtError(ErrParseFailed, "data not consumed entirely "+
			"when explicitly deserializing the unsigned transaction")
	}
	return tx, nil
}

// decodeXpub decodes an xpub entry.
func decodeXpub(pair *Pair) (*Xpub, error) {
	if len(pair.Key.Data) == 0 {
		return nil, psbtError(ErrInvalidKey, "xpub global key must "+
			"contain serialized xpub data")
	}
	key, err := bip32.DeserializeExtendedPublicKey(pair.Key.Data)
	if err != nil {
		str := fmt.Sprintf("can't deserialize extended public key from "+
			"global xpub key data: %s", err)
		return nil, psbtError(ErrParseFailed, str)
	}

	if len(pair.Value) == 0 || len(pair.Value)%4 != 0 {
		return nil, psbtError(ErrParseFailed, "incorrect length of "+
			"global xpub derivation data")
	}
	xpub := &Xpub{
		Key: key,
		Source: bip32.KeySource{
			Path: make(bip32.DerivationPath, len(pair.Value)/4-1),
		},
	}
	copy(xpub.Source.Fingerprint[:], pair.Value[:4])
	for i := range xpub.Source.Path {
		xpub.Source.Path[i] = binary.LittleEndian.Uint32(pair.Value[4+4*i:])
	}
	return xpub, nil
}

// DecodeGlobal reads a global map from r, up to and including its
// terminating byte.
func DecodeGlobal(r io.Reader) (*Global, error) {
	g := &Global{}
	hasVersion := false
	for {
		pair, err := readPair(r)
		if err != nil {
			return nil, err
		}
		if pair == nil {
			break
		}

		switch pair.Key.Type {
		case globalUnsignedTxType:
			if len(pair.Key.Data) != 0 {
				str := fmt.Sprintf("unsigned transaction key %s "+
					"carries key data", pair.Key)
				return nil, psbtError(ErrInvalidKey, str)
			}
			if g.UnsignedTx != nil {
				return nil, psbtError(ErrDuplicateKey, "duplicate "+
					"unsigned transaction")
			}
			g.UnsignedTx, err = decodeUnsignedTx(pair.Value)
			if err != nil {
				return nil, err
			}

		case globalXpubType:
			xpub, err := decodeXpub(pair)
			if err != nil {
				return nil, err
			}
			if g.findXpub(xpub.Key) != -1 {
				return nil, psbtError(ErrDuplicateKey, "repeated "+
					"global xpub key")
			}
			g.Xpubs = append(g.Xpubs, xpub)

		case globalVersionType:
			if len(pair.Key.Data) != 0 {
				str := fmt.Sprintf("version key %s carries key data",
					pair.Key)
				return nil, psbtError(ErrInvalidKey, str)
			}
			if hasVersion {
				return nil, psbtError(ErrDuplicateKey, "duplicate "+
					"global version")
			}
			if len(pair.Value) != 4 {
				return nil, psbtError(ErrParseFailed, "wrong global "+
					"version value length (must be 4 bytes)")
			}
			g.Version = binary.LittleEndian.Uint32(pair.Value)
			if g.Version != 0 {
				str := fmt.Sprintf("PSBT version %d is not supported",
					g.Version)
				return nil, psbtError(ErrParseFailed, str)
			}
			hasVersion = true

		default:
			err := g.AddUnknown(pair)
			if err != nil {
				return nil, err
			}
		}
	}

	if g.UnsignedTx == nil {
		return nil, psbtError(ErrMustHaveUnsignedTx, "partially signed "+
			"transactions must have an unsigned transaction")
	}
	err := checkUnsigned(g.UnsignedTx)
	if err != nil {
		return nil, err
	}

	log.Tracef("Decoded PSBT global map for transaction %s", logger.NewLogClosure(func() string {
		return g.UnsignedTx.TxHash().String()
	}))
	return g, nil
}

// ParseGlobal checks the magic of a serialized PSBT and decodes its global
// map. The input and output maps that follow are not examined.
func ParseGlobal(packet []byte) (*Global, error) {
	r := bytes.NewReader(packet)
	err := ReadMagic(r)
	if err != nil {
		return nil, err
	}
	return DecodeGlobal(r)
}

// lastNormalIndex returns the position of the last non-hardened child number
// in path, or -1 when every step is hardened.
func lastNormalIndex(path bip32.DerivationPath) int {
	for i := len(path) - 1; i >= 0; i-- {
		if !bip32.IsHardened(path[i]) {
			return i
		}
	}
	return -1
}

// comparePaths orders paths of equal length by their child numbers.
func comparePaths(a, b bip32.DerivationPath) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// compareInts returns -1, 0 or 1 as a is less than, equal to or greater
// than b.
func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// preferSource decides which of two sources listed for the same xpub a merge
// keeps. It returns true when incoming replaces current. The source with the
// later non-hardened step wins, then the longer path, then the greater path.
// Identical paths with different fingerprints cannot be reconciled.
func preferSource(current, incoming bip32.KeySource) (bool, error) {
	order := compareInts(lastNormalIndex(incoming.Path), lastNormalIndex(current.Path))
	if order == 0 {
		order = compareInts(len(incoming.Path), len(current.Path))
	}
	if order == 0 {
		order = comparePaths(incoming.Path, current.Path)
	}
	if order == 0 && incoming.Fingerprint != current.Fingerprint {
		return false, psbtError(ErrMergeConflict, "inconsistent key sources")
	}
	return order > 0, nil
}

// Merge combines other into g as a BIP-174 combiner does. Both maps must
// describe the same unsigned transaction. The higher version is kept and
// xpubs and unknown entries are united. Conflicting xpub sources are resolved
// by preferSource, so the xpubs of the result do not depend on the order of
// the operands. On error g is left unchanged.
func (g *Global) Merge(other *Global) error {
	if !bytes.Equal(g.UnsignedTx.Bytes(), other.UnsignedTx.Bytes()) {
		str := fmt.Sprintf("different unsigned transaction: expected %s, "+
			"actual %s", g.UnsignedTx.TxHash(), other.UnsignedTx.TxHash())
		return psbtError(ErrUnexpectedUnsignedTx, str)
	}

	xpubs := make([]*Xpub, len(g.Xpubs))
	copy(xpubs, g.Xpubs)
	merged := &Global{Xpubs: xpubs}
	for _, xpub := range other.Xpubs {
		i := merged.findXpub(xpub.Key)
		if i == -1 {
			merged.Xpubs = append(merged.Xpubs, xpub)
			continue
		}
		replace, err := preferSource(merged.Xpubs[i].Source, xpub.Source)
		if err != nil {
			str := fmt.Sprintf("global xpub %s has %s", xpub.Key, err)
			return psbtError(ErrMergeConflict, str)
		}
		if replace {
			merged.Xpubs[i] = xpub
		}
	}

	// Conflicting unknown values are resolved in favor of other.
	unknowns := make([]*Pair, len(g.Unknowns))
	copy(unknowns, g.Unknowns)
	merged.Unknowns = unknowns
	for _, pair := range other.Unknowns {
		if i := merged.findUnknown(pair.Key); i != -1 {
			merged.Unknowns[i] = pair
			continue
		}
		merged.Unknowns = append(merged.Unknowns, pair)
	}

	if other.Version > g.Version {
		g.Version = other.Version
	}
	g.Xpubs = merged.Xpubs
	g.Unknowns = merged.Unknowns
	return nil
}
