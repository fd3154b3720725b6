// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// hexToBytes converts the passed hex string into bytes and will panic if there
// is an error. This is only provided for the hard-coded constants so errors in
// the source code can be detected. It will only (and must only) be called with
// hard-coded values.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("invalid hex in source file: " + s)
	}
	return b
}

// parse hex string into a []byte.
func parseHex(tok string) ([]byte, error) {
	if !strings.HasPrefix(tok, "0x") {
		return nil, errors.New("not a hex number")
	}
	return hex.DecodeString(tok[2:])
}

// shortFormOps holds a map of opcode names to values for use in short form
// parsing. It is built once from OpcodeByName.
var shortFormOps map[string]byte

func init() {
	ops := make(map[string]byte)
	for opcodeName, opcodeValue := range OpcodeByName {
		if strings.Contains(opcodeName, "OP_UNKNOWN") {
			continue
		}
		ops[opcodeName] = opcodeValue

		// The opcodes named OP_# can't have the OP_ prefix
		// stripped or they would conflict with the plain
		// numbers. Also, since OP_FALSE and OP_TRUE are
		// aliases for the OP_0, and OP_1, respectively, they
		// have the same value, so detect those by name and
		// allow them.
		if (opcodeName == "OP_FALSE" || opcodeName == "OP_TRUE") ||
			(opcodeValue != OP_0 && (opcodeValue < OP_1 ||
				opcodeValue > OP_16)) {

			ops[strings.TrimPrefix(opcodeName, "OP_")] = opcodeValue
		}
	}
	shortFormOps = ops
}

// parseShortForm parses a string into a script as follows:
//   - Opcodes other than the push opcodes and unknown are present as
//     either OP_NAME or just NAME
//   - Plain numbers are made into push operations
//   - Numbers beginning with 0x are inserted into the []byte as-is (so
//     0x14 is OP_DATA_20)
//   - Single quoted strings are pushed as data
//   - A token followed by {n} is repeated n times
//   - Anything else is an error
func parseShortForm(script string) ([]byte, error) {
	// Split only does one separator so convert all \n and tab into  space.
	script = strings.Replace(script, "\n", " ", -1)
	script = strings.Replace(script, "\t", " ", -1)
	tokens := strings.Split(script, " ")
	builder := NewScriptBuilder()

	for _, tok := range tokens {
		if len(tok) == 0 {
			continue
		}

		// Repeated tokens are of the form tok{n}.
		repeat := 1
		if idx := strings.LastIndex(tok, "{"); idx > 0 && strings.HasSuffix(tok, "}") {
			n, err := strconv.Atoi(tok[idx+1 : len(tok)-1])
			if err != nil {
				return nil, errors.Errorf("bad repeat count in %q", tok)
			}
			repeat, tok = n, tok[:idx]
		}
		for i := 0; i < repeat; i++ {
			if err := addShortFormToken(builder, tok); err != nil {
				return nil, err
			}
		}
	}
	return builder.Script()
}

// addShortFormToken appends a single short form token to builder.
func addShortFormToken(builder *ScriptBuilder, tok string) error {
	// if parses as a plain number
	if num, err := strconv.ParseInt(tok, 10, 64); err == nil {
		builder.AddInt64(num)
	} else if bts, err := parseHex(tok); err == nil {
		// Concatenate the bytes manually since the test code
		// intentionally creates scripts that are too large and
		// would cause the builder to error otherwise.
		if builder.err == nil {
			builder.script = append(builder.script, bts...)
		}
	} else if len(tok) >= 2 &&
		tok[0] == '\'' && tok[len(tok)-1] == '\'' {
		builder.AddFullData([]byte(tok[1 : len(tok)-1]))
	} else if opcode, ok := shortFormOps[tok]; ok {
		builder.AddOp(opcode)
	} else {
		return errors.Errorf("bad token %q", tok)
	}
	return nil
}

// mustParseShortForm parses the passed short form script and returns the
// resulting bytes. It panics if an error occurs. This is only used in the
// tests as a helper since the only way it can fail is if there is an error in
// the test source code.
func mustParseShortForm(script string) []byte {
	s, err := parseShortForm(script)
	if err != nil {
		panic("invalid short form script in test source: err " +
			err.Error() + ", script: " + script)
	}

	return s
}
