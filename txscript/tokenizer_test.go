// Copyright (c) 2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/kaspanet/chainwire/wire"
)

// TestScriptTokenizer ensures a wide variety of behavior provided by the script
// tokenizer performs as expected.
func TestScriptTokenizer(t *testing.T) {
	t.Parallel()

	type expectedResult struct {
		op    byte   // expected parsed opcode
		data  []byte // expected parsed data
		index int    // expected index into raw script after parsing token
	}

	type tokenizerTest struct {
		name     string           // test description
		script   []byte           // the script to tokenize
		expected []expectedResult // the expected info after parsing each token
		finalIdx int              // the expected final byte index
		err      bool             // whether a malformed script error is expected
	}

	// Add both positive and negative tests for OP_DATA_1 through OP_DATA_75.
	const numTestsHint = 100 // Make prealloc linter happy.
	tests := make([]tokenizerTest, 0, numTestsHint)
	for op := byte(OP_DATA_1); op < OP_DATA_75; op++ {
		data := bytes.Repeat([]byte{0x01}, int(op))
		tests = append(tests, tokenizerTest{
			name:     fmt.Sprintf("OP_DATA_%d", op),
			script:   append([]byte{op}, data...),
			expected: []expectedResult{{op, data, 1 + int(op)}},
			finalIdx: 1 + int(op),
		})

		// Create test that provides one less byte than the data push requires.
		tests = append(tests, tokenizerTest{
			name:     fmt.Sprintf("short OP_DATA_%d", op),
			script:   append([]byte{op}, data[1:]...),
			finalIdx: 0,
			err:      true,
		})
	}

	// Add both positive and negative tests for OP_PUSHDATA{1,2,4}.
	data := mustParseShortForm("0x01{76}")
	tests = append(tests, []tokenizerTest{{
		name:     "OP_PUSHDATA1",
		script:   mustParseShortForm("OP_PUSHDATA1 0x4c 0x01{76}"),
		expected: []expectedResult{{OP_PUSHDATA1, data, 2 + len(data)}},
		finalIdx: 2 + len(data),
	}, {
		name:     "OP_PUSHDATA1 no data length",
		script:   mustParseShortForm("OP_PUSHDATA1"),
		finalIdx: 0,
		err:      true,
	}, {
		name:     "OP_PUSHDATA1 short data by 1 byte",
		script:   mustParseShortForm("OP_PUSHDATA1 0x4c 0x01{75}"),
		finalIdx: 0,
		err:      true,
	}, {
		name:     "OP_PUSHDATA2",
		script:   mustParseShortForm("OP_PUSHDATA2 0x4c00 0x01{76}"),
		expected: []expectedResult{{OP_PUSHDATA2, data, 3 + len(data)}},
		finalIdx: 3 + len(data),
	}, {
		name:     "OP_PUSHDATA2 no data length",
		script:   mustParseShortForm("OP_PUSHDATA2"),
		finalIdx: 0,
		err:      true,
	}, {
		name:     "OP_PUSHDATA2 short data by 1 byte",
		script:   mustParseShortForm("OP_PUSHDATA2 0x4c00 0x01{75}"),
		finalIdx: 0,
		err:      true,
	}, {
		name:     "OP_PUSHDATA4",
		script:   mustParseShortForm("OP_PUSHDATA4 0x4c000000 0x01{76}"),
		expected: []expectedResult{{OP_PUSHDATA4, data, 5 + len(data)}},
		finalIdx: 5 + len(data),
	}, {
		name:     "OP_PUSHDATA4 no data length",
		script:   mustParseShortForm("OP_PUSHDATA4"),
		finalIdx: 0,
		err:      true,
	}, {
		name:     "OP_PUSHDATA4 short data by 1 byte",
		script:   mustParseShortForm("OP_PUSHDATA4 0x4c000000 0x01{75}"),
		finalIdx: 0,
		err:      true,
	}, {
		name:     "OP_PUSHDATA4 huge declared length",
		script:   mustParseShortForm("OP_PUSHDATA4 0xffffffff 0x01"),
		finalIdx: 0,
		err:      true,
	}}...)

	// Add tests for OP_0, and OP_1 through OP_16 (small integers/true/false).
	opcodes := []byte{OP_0}
	for op := byte(OP_1); op < OP_16; op++ {
		opcodes = append(opcodes, op)
	}
	for _, op := range opcodes {
		tests = append(tests, tokenizerTest{
			name:     fmt.Sprintf("OP_%d", op),
			script:   []byte{op},
			expected: []expectedResult{{op, nil, 1}},
			finalIdx: 1,
		})
	}

	// Add various positive and negative tests for multi-opcode scripts.
	tests = append(tests, []tokenizerTest{{
		name:     "empty script",
		script:   nil,
		finalIdx: 0,
	}, {
		name:   "pay-to-pubkey-hash",
		script: mustParseShortForm("DUP HASH160 DATA_20 0x01{20} EQUALVERIFY CHECKSIG"),
		expected: []expectedResult{
			{OP_DUP, nil, 1}, {OP_HASH160, nil, 2},
			{OP_DATA_20, mustParseShortForm("0x01{20}"), 23},
			{OP_EQUALVERIFY, nil, 24}, {OP_CHECKSIG, nil, 25},
		},
		finalIdx: 25,
	}, {
		name:   "almost pay-to-pubkey-hash (short data)",
		script: mustParseShortForm("DUP HASH160 DATA_20 0x01{17} EQUALVERIFY CHECKSIG"),
		expected: []expectedResult{
			{OP_DUP, nil, 1}, {OP_HASH160, nil, 2},
		},
		finalIdx: 2,
		err:      true,
	}, {
		name:   "almost pay-to-pubkey-hash (overlapped data)",
		script: mustParseShortForm("DUP HASH160 DATA_20 0x01{19} EQUALVERIFY CHECKSIG"),
		expected: []expectedResult{
			{OP_DUP, nil, 1}, {OP_HASH160, nil, 2},
			{OP_DATA_20, mustParseShortForm("0x01{19} EQUALVERIFY"), 23},
			{OP_CHECKSIG, nil, 24},
		},
		finalIdx: 24,
	}, {
		name:   "pay-to-script-hash",
		script: mustParseShortForm("HASH160 DATA_20 0x01{20} EQUAL"),
		expected: []expectedResult{
			{OP_HASH160, nil, 1},
			{OP_DATA_20, mustParseShortForm("0x01{20}"), 22},
			{OP_EQUAL, nil, 23},
		},
		finalIdx: 23,
	}, {
		name:   "almost pay-to-script-hash (short data)",
		script: mustParseShortForm("HASH160 DATA_20 0x01{18} EQUAL"),
		expected: []expectedResult{
			{OP_HASH160, nil, 1},
		},
		finalIdx: 1,
		err:      true,
	}, {
		name:   "almost pay-to-script-hash (overlapped data)",
		script: mustParseShortForm("HASH160 DATA_20 0x01{19} EQUAL"),
		expected: []expectedResult{
			{OP_HASH160, nil, 1},
			{OP_DATA_20, mustParseShortForm("0x01{19} EQUAL"), 22},
		},
		finalIdx: 22,
	}}...)

	for _, test := range tests {
		tokenizer := MakeScriptTokenizer(test.script)
		var opcodeNum int
		for tokenizer.Next() {
			// Ensure Next never returns true when there is an error set.
			if err := tokenizer.Err(); err != nil {
				t.Fatalf("%q: Next returned true when tokenizer has err: %v",
					test.name, err)
			}

			// Ensure the test data expects a token to be parsed.
			op := tokenizer.Opcode()
			data := tokenizer.Data()
			if opcodeNum >= len(test.expected) {
				t.Fatalf("%q: unexpected token '%d' (data: '%x')", test.name,
					op, data)
			}
			expected := &test.expected[opcodeNum]

			// Ensure the opcode and data are the expected values.
			if op != expected.op {
				t.Fatalf("%q: unexpected opcode -- got %v, want %v", test.name,
					op, expected.op)
			}
			if !bytes.Equal(data, expected.data) {
				t.Fatalf("%q: unexpected data -- got %x, want %x", test.name,
					data, expected.data)
			}

			tokenizerIdx := tokenizer.ByteIndex()
			if tokenizerIdx != expected.index {
				t.Fatalf("%q: unexpected byte index -- got %d, want %d",
					test.name, tokenizerIdx, expected.index)
			}

			opcodeNum++
		}

		// Ensure the tokenizer claims it is done. This should be the case
		// regardless of whether or not there was a parse error.
		if !tokenizer.Done() {
			t.Fatalf("%q: tokenizer claims it is not done", test.name)
		}

		// Ensure the error is as expected.
		err := tokenizer.Err()
		if test.err {
			if !wire.IsErrorCode(err, wire.ErrMalformedScript) {
				t.Fatalf("%q: unexpected tokenizer err -- got %v, want %v",
					test.name, err, wire.ErrMalformedScript)
			}
		} else if err != nil {
			t.Fatalf("%q: unexpected tokenizer err -- got %v, want nil",
				test.name, err)
		}

		// Ensure the final index is the expected value.
		tokenizerIdx := tokenizer.ByteIndex()
		if tokenizerIdx != test.finalIdx {
			t.Fatalf("%q: unexpected final byte index -- got %d, want %d",
				test.name, tokenizerIdx, test.finalIdx)
		}
	}
}

// TestScriptTokenizerStopsAfterError ensures a parse failure ends iteration
// and leaves the last parsed instruction in place.
func TestScriptTokenizerStopsAfterError(t *testing.T) {
	t.Parallel()

	script := mustParseShortForm("1 DATA_2 0xaa")
	tokenizer := MakeScriptTokenizer(script)
	if !tokenizer.Next() || tokenizer.Opcode() != OP_1 {
		t.Fatalf("first instruction not yielded")
	}
	if tokenizer.Next() {
		t.Fatalf("truncated push yielded an instruction")
	}
	if tokenizer.Next() {
		t.Fatalf("Next succeeded after an error")
	}

	// The last successfully parsed instruction is left in place.
	if tokenizer.Opcode() != OP_1 || tokenizer.ByteIndex() != 1 {
		t.Fatalf("tokenizer state changed by the failure: opcode %d, index %d",
			tokenizer.Opcode(), tokenizer.ByteIndex())
	}
	if !bytes.Equal(tokenizer.Script(), script) {
		t.Fatalf("Script: got %x, want %x", tokenizer.Script(), script)
	}
}

// TestScriptTokenizerInitialState ensures the accessors of a tokenizer that
// has not yielded an instruction report an empty state.
func TestScriptTokenizerInitialState(t *testing.T) {
	t.Parallel()

	scripts := [][]byte{nil, mustParseShortForm("DUP HASH160"), {OP_DATA_2, 0xaa}}
	for i, script := range scripts {
		tokenizer := MakeScriptTokenizer(script)
		if tokenizer.Opcode() != OP_0 || tokenizer.Data() != nil {
			t.Errorf("#%d: opcode %d data %x before Next", i,
				tokenizer.Opcode(), tokenizer.Data())
		}
	}

	// A failed first Next leaves the same empty state.
	tokenizer := MakeScriptTokenizer([]byte{OP_DATA_2, 0xaa})
	if tokenizer.Next() {
		t.Fatalf("truncated push yielded an instruction")
	}
	if tokenizer.Opcode() != OP_0 || tokenizer.Err() == nil {
		t.Errorf("opcode %d err %v after a failed first Next",
			tokenizer.Opcode(), tokenizer.Err())
	}
}
