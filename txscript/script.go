// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// These are the constants specified for maximums in individual scripts.
const (
	MaxScriptSize         = 10000 // Maximum script length in bytes.
	MaxScriptElementSize  = 520   // Max bytes pushable to the stack.
	MaxPubKeysPerMultiSig = 20    // Multisig can't have more sigs than this.
	MaxDataCarrierSize    = 80    // Max bytes carried by a null data script.
)

// isSmallInt returns whether or not the opcode is considered a small integer,
// which is an OP_0, or OP_1 through OP_16.
func isSmallInt(op byte) bool {
	return op == OP_0 || (op >= OP_1 && op <= OP_16)
}

// asSmallInt returns the passed opcode, which must be true according to
// isSmallInt(), as an integer.
func asSmallInt(op byte) int {
	if op == OP_0 {
		return 0
	}

	return int(op - (OP_1 - 1))
}

// smallIntOp returns the opcode pushing n, which must be in 0..16.
func smallIntOp(n byte) byte {
	if n == 0 {
		return OP_0
	}
	return OP_1 - 1 + n
}

// IsEmpty returns true if the script has no instructions.
func IsEmpty(script []byte) bool {
	return len(script) == 0
}

// IsPushOnly returns true if the script only pushes data. A script that fails
// to parse is not push only.
func IsPushOnly(script []byte) bool {
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		// All opcodes up to OP_16 are data push instructions.
		// NOTE: This does consider OP_RESERVED to be a data push
		// instruction, but execution of OP_RESERVED will fail anyway
		// and matches the behavior required by consensus.
		if tokenizer.Opcode() > OP_16 {
			return false
		}
	}
	return tokenizer.Err() == nil
}

// IsUnspendable returns whether the passed locking script is provably
// unspendable: it is larger than MaxScriptSize, begins with OP_RETURN or
// fails to parse.
func IsUnspendable(script []byte) bool {
	if len(script) > MaxScriptSize {
		return true
	}
	if len(script) > 0 && script[0] == OP_RETURN {
		return true
	}
	return checkScriptParses(script) != nil
}

// checkScriptParses returns an error if the provided script fails to parse.
func checkScriptParses(script []byte) error {
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		// Nothing to do.
	}
	return tokenizer.Err()
}

// GetSigOpCount provides a quick count of the number of signature operations
// in a script. A CHECKSIG operation counts for 1, and a CHECK_MULTISIG for
// MaxPubKeysPerMultiSig. If the script fails to parse, the count up to the
// point of failure is returned.
func GetSigOpCount(script []byte) int {
	numSigOps := 0
	tokenizer := MakeScriptTokenizer(script)
	for tokenizer.Next() {
		switch tokenizer.Opcode() {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			numSigOps++
		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			numSigOps += MaxPubKeysPerMultiSig
		}
	}
	return numSigOps
}

// disasmOpcode writes a human-readable disassembly of the provided opcode and
// data into the provided buffer. The compact flag indicates the disassembly
// should print a more compact representation of data-carrying and small
// integer opcodes. For example, OP_0 through OP_16 are replaced with the
// numeric value and data pushes are only shown as the hex representation of
// the data.
func disasmOpcode(buf *strings.Builder, op *opcode, data []byte, compact bool) {
	opcodeName := op.name
	if compact {
		if replName, ok := opcodeOnelineRepls[opcodeName]; ok {
			opcodeName = replName
		}

		// Either write the human-readable opcode or the parsed data in hex
		// for data-carrying opcodes.
		switch {
		case op.length == 1:
			buf.WriteString(opcodeName)

		default:
			buf.WriteString(hex.EncodeToString(data))
		}

		return
	}

	buf.WriteString(opcodeName)

	switch op.length {
	// Only write the opcode name for non-data push opcodes.
	case 1:
		return

	// Add length for the OP_PUSHDATA# opcodes.
	case -1:
		fmt.Fprintf(buf, " 0x%02x", len(data))
	case -2:
		fmt.Fprintf(buf, " 0x%04x", len(data))
	case -4:
		fmt.Fprintf(buf, " 0x%08x", len(data))
	}

	fmt.Fprintf(buf, " 0x%x", data)
}

// DisasmString formats a disassembled script for one line printing. When the
// script fails to parse, the returned string will contain the disassembly up
// to the point the failure occurred along with the string '[error]' appended.
// In addition, the reason the script failed to parse is returned if the caller
// wants more information about the failure.
func DisasmString(script []byte) (string, error) {
	return disasm(script, " ", true)
}

// DisasmScript returns one instruction per line using the full opcode names,
// with pushed data shown after the push opcode. It follows the same failure
// rules as DisasmString.
func DisasmScript(script []byte) (string, error) {
	return disasm(script, "\n", false)
}

func disasm(script []byte, separator string, compact bool) (string, error) {
	var disbuf strings.Builder
	tokenizer := MakeScriptTokenizer(script)
	if tokenizer.Next() {
		disasmOpcode(&disbuf, tokenizer.op, tokenizer.Data(), compact)
	}
	for tokenizer.Next() {
		disbuf.WriteString(separator)
		disasmOpcode(&disbuf, tokenizer.op, tokenizer.Data(), compact)
	}
	if tokenizer.Err() != nil {
		if tokenizer.ByteIndex() != 0 {
			disbuf.WriteString(separator)
		}
		disbuf.WriteString("[error]")
	}
	return disbuf.String(), tokenizer.Err()
}
