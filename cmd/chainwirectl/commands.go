package main

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/kaspanet/chainwire/blockchain"
	"github.com/kaspanet/chainwire/chaincfg"
	"github.com/kaspanet/chainwire/keys"
	"github.com/kaspanet/chainwire/keys/bip32"
	"github.com/kaspanet/chainwire/psbt"
	"github.com/kaspanet/chainwire/txscript"
	"github.com/kaspanet/chainwire/util"
	"github.com/kaspanet/chainwire/wire"
	"github.com/pkg/errors"
)

// commandOutput is what a command produces: a summary printed as JSON and
// the decoded structure printed by --dump.
type commandOutput struct {
	result  interface{}
	decoded interface{}
}

type commandDescription struct {
	name        string
	parameters  []string
	description string
	run         func(params *chaincfg.Params, args []string) (*commandOutput, error)
}

func (cd *commandDescription) help() string {
	sb := &strings.Builder{}
	sb.WriteString(cd.name)
	for _, parameter := range cd.parameters {
		_, _ = fmt.Fprintf(sb, " [%s]", parameter)
	}
	return sb.String()
}

var commands = []*commandDescription{
	{"decodetx", []string{"hex"}, "Decode a serialized transaction", decodeTx},
	{"decodeblock", []string{"hex"}, "Decode a serialized block and check its sanity", decodeBlock},
	{"decodeheader", []string{"hex"}, "Decode an 80 byte block header", decodeHeader},
	{"decodescript", []string{"hex"}, "Disassemble and classify a script", decodeScript},
	{"validateaddress", []string{"address"}, "Decode an address of the selected network", validateAddress},
	{"pubkeyaddresses", []string{"hex"}, "List the addresses paying to a public key", pubKeyAddresses},
	{"decodexpub", []string{"xpub"}, "Decode a Base58Check extended public key", decodeXpub},
	{"createpsbt", []string{"hex"}, "Create a PSBT for a serialized unsigned transaction", createPSBT},
	{"decodepsbt", []string{"psbt"}, "Decode the global map of a base64 or hex PSBT", decodePSBT},
	{"genesis", nil, "Show the genesis block of the selected network", genesis},
}

var commandsByName = make(map[string]*commandDescription)

func init() {
	for _, cmd := range commands {
		commandsByName[cmd.name] = cmd
	}
}

func printCommands(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "\t%-40s%s\n", cmd.help(), cmd.description)
	}
}

func decodeHexArg(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.Wrapf(err, "%s is not hex", name)
	}
	return b, nil
}

func decodeTx(params *chaincfg.Params, args []string) (*commandOutput, error) {
	serialized, err := decodeHexArg("transaction", args[0])
	if err != nil {
		return nil, err
	}
	tx, err := wire.DecodeTransaction(serialized)
	if err != nil {
		return nil, err
	}
	return &commandOutput{result: newTxResult(tx, params), decoded: tx}, nil
}

func decodeBlock(params *chaincfg.Params, args []string) (*commandOutput, error) {
	serialized, err := decodeHexArg("block", args[0])
	if err != nil {
		return nil, err
	}
	block, err := wire.DecodeBlock(serialized)
	if err != nil {
		return nil, err
	}
	return &commandOutput{result: newBlockResult(block, params), decoded: block}, nil
}

func decodeHeader(params *chaincfg.Params, args []string) (*commandOutput, error) {
	serialized, err := decodeHexArg("header", args[0])
	if err != nil {
		return nil, err
	}
	header, err := wire.DecodeBlockHeader(serialized)
	if err != nil {
		return nil, err
	}
	result := newHeaderResult(header, params)
	result.Sanity = sanity(blockchain.CheckBlockHeaderSanity(header, params.PowLimit))
	return &commandOutput{result: result, decoded: header}, nil
}

func decodeScript(params *chaincfg.Params, args []string) (*commandOutput, error) {
	script, err := decodeHexArg("script", args[0])
	if err != nil {
		return nil, err
	}
	result := newScriptResult(script, params)

	// A script may also be redeemed through P2SH.
	if !txscript.IsPayToScriptHash(script) {
		result.P2SH = util.NewAddressP2SH(script, params).String()
	}
	return &commandOutput{result: result, decoded: script}, nil
}

func validateAddress(params *chaincfg.Params, args []string) (*commandOutput, error) {
	addr, err := util.DecodeAddress(args[0], params)
	if err != nil {
		return nil, err
	}
	scriptPubKey, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, err
	}
	result := &addressResult{
		Address:      addr.String(),
		Network:      addr.Network.Name,
		Kind:         addr.Payload.Kind.String(),
		Payload:      hex.EncodeToString(addr.ScriptAddress()),
		IsStandard:   addr.IsStandard(),
		ScriptPubKey: hex.EncodeToString(scriptPubKey),
	}
	if addr.Payload.Kind == util.WitnessProgram {
		version := addr.Payload.WitnessVersion
		result.WitnessVersion = &version
	}
	return &commandOutput{result: result, decoded: addr}, nil
}

func pubKeyAddresses(params *chaincfg.Params, args []string) (*commandOutput, error) {
	serialized, err := decodeHexArg("public key", args[0])
	if err != nil {
		return nil, err
	}
	pubKey, err := keys.ParsePublicKey(serialized)
	if err != nil {
		return nil, err
	}
	result := &pubKeyResult{
		PubKey:     hex.EncodeToString(pubKey.Serialize()),
		Compressed: pubKey.Compressed,
		P2PKH:      util.NewAddressP2PKH(pubKey, params).String(),
	}
	if pubKey.Compressed {
		result.P2WPKH = util.NewAddressP2WPKH(pubKey, params).String()
		result.P2SHP2WPKH = util.NewAddressP2SHWPKH(pubKey, params).String()
	}
	return &commandOutput{result: result, decoded: pubKey}, nil
}

func decodeXpub(params *chaincfg.Params, args []string) (*commandOutput, error) {
	key, err := bip32.ParseExtendedPublicKey(args[0])
	if err != nil {
		return nil, err
	}
	if key.Version != params.HDPublicKeyID {
		return nil, errors.Errorf("extended key version %x does not belong "+
			"to %s", key.Version, params.Name)
	}
	fingerprint := key.Fingerprint()
	result := &xpubResult{
		Xpub:              key.String(),
		Depth:             key.Depth,
		ParentFingerprint: hex.EncodeToString(key.ParentFingerprint[:]),
		ChildNumber:       key.ChildNumber,
		Hardened:          bip32.IsHardened(key.ChildNumber),
		ChainCode:         hex.EncodeToString(key.ChainCode[:]),
		PubKey:            hex.EncodeToString(key.PublicKey.SerializeCompressed()),
		Fingerprint:       hex.EncodeToString(fingerprint[:]),
	}
	return &commandOutput{result: result, decoded: key}, nil
}

func createPSBT(params *chaincfg.Params, args []string) (*commandOutput, error) {
	serialized, err := decodeHexArg("transaction", args[0])
	if err != nil {
		return nil, err
	}
	tx, err := wire.DecodeTransaction(serialized)
	if err != nil {
		return nil, err
	}
	global, err := psbt.NewGlobalFromUnsignedTx(tx)
	if err != nil {
		return nil, err
	}
	var packet bytes.Buffer
	err = global.SerializePacket(&packet)
	if err != nil {
		return nil, err
	}
	return &commandOutput{
		result:  base64.StdEncoding.EncodeToString(packet.Bytes()),
		decoded: global,
	}, nil
}

// decodePacketArg accepts a PSBT in base64 or in hex.
func decodePacketArg(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "70736274") {
		return decodeHexArg("psbt", s)
	}
	packet, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "psbt is neither base64 nor hex")
	}
	return packet, nil
}

func decodePSBT(params *chaincfg.Params, args []string) (*commandOutput, error) {
	packet, err := decodePacketArg(args[0])
	if err != nil {
		return nil, err
	}
	global, err := psbt.ParseGlobal(packet)
	if err != nil {
		return nil, err
	}

	result := &psbtResult{
		Tx:      newTxResult(global.UnsignedTx, params),
		Version: global.Version,
	}
	for _, xpub := range global.Xpubs {
		result.Xpubs = append(result.Xpubs, &psbtXpubResult{
			Xpub:   xpub.Key.String(),
			Source: xpub.Source.String(),
		})
	}
	sort.Slice(result.Xpubs, func(i, j int) bool {
		return result.Xpubs[i].Xpub < result.Xpubs[j].Xpub
	})
	for _, pair := range global.Unknowns {
		result.Unknowns = append(result.Unknowns, &psbtUnknownResult{
			Type:  pair.Key.Type,
			Key:   hex.EncodeToString(pair.Key.Data),
			Value: hex.EncodeToString(pair.Value),
		})
	}
	return &commandOutput{result: result, decoded: global}, nil
}

func genesis(params *chaincfg.Params, _ []string) (*commandOutput, error) {
	block := params.GenesisBlock
	return &commandOutput{result: newBlockResult(block, params), decoded: block}, nil
}
