package txscript

import (
	"bytes"
	"testing"

	"github.com/kaspanet/chainwire/util/chainhash"
	"github.com/kaspanet/chainwire/wire"
	"github.com/pkg/errors"
)

type verifyCall struct {
	scriptSig    []byte
	scriptPubKey []byte
	amount       int64
	txBytes      []byte
	inputIndex   uint32
	flags        ScriptFlags
}

// recordingVerifier records every call and fails the inputs listed in fail.
type recordingVerifier struct {
	calls []verifyCall
	fail  map[uint32]error
}

func (v *recordingVerifier) Verify(scriptSig, scriptPubKey []byte, amount int64,
	txBytes []byte, inputIndex uint32, flags ScriptFlags) error {

	v.calls = append(v.calls, verifyCall{scriptSig, scriptPubKey, amount,
		txBytes, inputIndex, flags})
	return v.fail[inputIndex]
}

// verifyTestTx returns a two input transaction and the outputs it spends.
func verifyTestTx() (*wire.MsgTx, []*wire.TxOut) {
	tx := wire.NewMsgTx(2)
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x01}, 0),
		[]byte{OP_1}, nil))
	tx.AddTxIn(wire.NewTxIn(wire.NewOutPoint(&chainhash.Hash{0x02}, 1),
		nil, [][]byte{{0x30, 0x01}, {0x02}}))
	tx.AddTxOut(wire.NewTxOut(5000, hexToBytes("0014751e76e8199196d454941c45d1b3a323f1433bd6")))

	prevOuts := []*wire.TxOut{
		wire.NewTxOut(3000, hexToBytes("76a914ad06dd6ddee55cbca9a9e3713bd7587509a3056488ac")),
		wire.NewTxOut(4000, hexToBytes("0014751e76e8199196d454941c45d1b3a323f1433bd6")),
	}
	return tx, prevOuts
}

// TestVerifyTransaction ensures every input is handed to the verifier with
// the same serialized transaction and its own previous output.
func TestVerifyTransaction(t *testing.T) {
	t.Parallel()

	tx, prevOuts := verifyTestTx()
	verifier := &recordingVerifier{}
	err := VerifyTransaction(verifier, tx, prevOuts, StandardVerifyFlags)
	if err != nil {
		t.Fatalf("VerifyTransaction: unexpected error: %v", err)
	}

	if len(verifier.calls) != len(tx.TxIn) {
		t.Fatalf("VerifyTransaction: got %d calls, want %d",
			len(verifier.calls), len(tx.TxIn))
	}
	wantTxBytes := tx.Bytes()
	for i, call := range verifier.calls {
		if call.inputIndex != uint32(i) {
			t.Errorf("call #%d: input index %d", i, call.inputIndex)
		}
		if !bytes.Equal(call.txBytes, wantTxBytes) {
			t.Errorf("call #%d: wrong transaction bytes", i)
		}
		if !bytes.Equal(call.scriptSig, tx.TxIn[i].SignatureScript) {
			t.Errorf("call #%d: wrong signature script %x", i, call.scriptSig)
		}
		if !bytes.Equal(call.scriptPubKey, prevOuts[i].PkScript) ||
			call.amount != prevOuts[i].Value {
			t.Errorf("call #%d: wrong previous output", i)
		}
		if call.flags != StandardVerifyFlags {
			t.Errorf("call #%d: flags got %s, want %s", i, call.flags,
				StandardVerifyFlags)
		}
	}

	// The same byte slice is reused for every input.
	if &verifier.calls[0].txBytes[0] != &verifier.calls[1].txBytes[0] {
		t.Errorf("VerifyTransaction serialized the transaction more than once")
	}
}

// TestVerifyTransactionErrors ensures verification failures are reported
// with the failing input.
func TestVerifyTransactionErrors(t *testing.T) {
	t.Parallel()

	errBadSig := errors.New("signature mismatch")
	tx, prevOuts := verifyTestTx()

	tests := []struct {
		name      string
		prevOuts  []*wire.TxOut
		flags     ScriptFlags
		fail      map[uint32]error
		code      VerifyErrorCode
		index     uint32
		wantCalls int
	}{
		{
			name:      "second input fails",
			prevOuts:  prevOuts,
			flags:     MandatoryVerifyFlags,
			fail:      map[uint32]error{1: errBadSig},
			code:      ErrVerifyScript,
			index:     1,
			wantCalls: 2,
		},
		{
			name:      "first input fails",
			prevOuts:  prevOuts,
			flags:     ScriptBip16,
			fail:      map[uint32]error{0: errBadSig, 1: errBadSig},
			code:      ErrVerifyScript,
			index:     0,
			wantCalls: 1,
		},
		{
			name:     "verifier reports its own code",
			prevOuts: prevOuts,
			flags:    ScriptVerifyAll,
			fail: map[uint32]error{1: VerifyError{
				ErrorCode:   ErrVerifyAmountRequired,
				Description: "amount required",
			}},
			code:      ErrVerifyAmountRequired,
			index:     1,
			wantCalls: 2,
		},
		{
			name:     "previous outputs do not match inputs",
			prevOuts: prevOuts[:1],
			flags:    ScriptBip16,
			code:     ErrVerifyTxIndex,
		},
		{
			name:      "missing previous output",
			prevOuts:  []*wire.TxOut{prevOuts[0], nil},
			flags:     ScriptBip16,
			code:      ErrVerifyTxIndex,
			index:     1,
			wantCalls: 1,
		},
		{
			name:     "unknown flag",
			prevOuts: prevOuts,
			flags:    ScriptBip16 | 1<<3,
			code:     ErrVerifyInvalidFlags,
		},
		{
			name:     "witness without p2sh",
			prevOuts: prevOuts,
			flags:    ScriptVerifyWitness,
			code:     ErrVerifyInvalidFlags,
		},
	}

	for _, test := range tests {
		verifier := &recordingVerifier{fail: test.fail}
		err := VerifyTransaction(verifier, tx, test.prevOuts, test.flags)
		if !IsVerifyErrorCode(err, test.code) {
			t.Errorf("%s: wrong error got: %v, want: %v", test.name, err,
				test.code)
			continue
		}
		var verr VerifyError
		if errors.As(err, &verr) && verr.InputIndex != test.index {
			t.Errorf("%s: wrong input index got: %d, want: %d", test.name,
				verr.InputIndex, test.index)
		}
		if len(verifier.calls) != test.wantCalls {
			t.Errorf("%s: got %d verifier calls, want %d", test.name,
				len(verifier.calls), test.wantCalls)
		}
		if test.fail != nil && test.code == ErrVerifyScript &&
			!errors.Is(err, errBadSig) {
			t.Errorf("%s: verifier error not wrapped: %v", test.name, err)
		}
	}
}

// TestVerifierFunc ensures plain functions can act as a Verifier.
func TestVerifierFunc(t *testing.T) {
	t.Parallel()

	tx, prevOuts := verifyTestTx()
	var amounts []int64
	verifier := VerifierFunc(func(scriptSig, scriptPubKey []byte, amount int64,
		txBytes []byte, inputIndex uint32, flags ScriptFlags) error {

		amounts = append(amounts, amount)
		return nil
	})
	if err := VerifyTransaction(verifier, tx, prevOuts, ScriptVerifyNone); err != nil {
		t.Fatalf("VerifyTransaction: unexpected error: %v", err)
	}
	if len(amounts) != 2 || amounts[0] != 3000 || amounts[1] != 4000 {
		t.Errorf("VerifyTransaction: wrong amounts %v", amounts)
	}
}

// TestScriptFlagsString ensures flags print as their libbitcoinconsensus
// names.
func TestScriptFlagsString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ScriptFlags
		want string
	}{
		{ScriptVerifyNone, "NONE"},
		{ScriptBip16, "P2SH"},
		{StandardVerifyFlags, "P2SH,STRICTENC,DERSIG,NULLDUMMY," +
			"CHECKLOCKTIMEVERIFY,CHECKSEQUENCEVERIFY,WITNESS"},
		{ScriptBip16 | 1<<3, "P2SH,0x8"},
		{1 << 20, "0x100000"},
	}

	for i, test := range tests {
		if got := test.in.String(); got != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, got, test.want)
		}
	}
}

// TestVerifyErrorCodeStringer tests the stringized output for the
// VerifyErrorCode type.
func TestVerifyErrorCodeStringer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   VerifyErrorCode
		want string
	}{
		{ErrVerifyScript, "ErrVerifyScript"},
		{ErrVerifyTxIndex, "ErrVerifyTxIndex"},
		{ErrVerifyTxSizeMismatch, "ErrVerifyTxSizeMismatch"},
		{ErrVerifyTxDeserialize, "ErrVerifyTxDeserialize"},
		{ErrVerifyAmountRequired, "ErrVerifyAmountRequired"},
		{ErrVerifyInvalidFlags, "ErrVerifyInvalidFlags"},
		{0xffff, "Unknown VerifyErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numVerifyErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}
