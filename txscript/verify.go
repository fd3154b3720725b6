package txscript

import (
	"fmt"

	"github.com/kaspanet/chainwire/infrastructure/logger"
	"github.com/kaspanet/chainwire/wire"
	"github.com/pkg/errors"
)

// ScriptFlags is a bitmask defining additional operations or tests that will
// be done when executing a script pair. The bit values are the ones used by
// libbitcoinconsensus so they can be handed to a binding unchanged.
type ScriptFlags uint32

const (
	// ScriptVerifyNone applies no additional rules.
	ScriptVerifyNone ScriptFlags = 0

	// ScriptBip16 evaluates pay-to-script-hash redeem scripts.
	ScriptBip16 ScriptFlags = 1 << 0

	// ScriptVerifyStrictEncoding enforces strict signature and public key
	// encodings.
	ScriptVerifyStrictEncoding ScriptFlags = 1 << 1

	// ScriptVerifyDERSignatures enforces strict DER signatures (BIP66).
	ScriptVerifyDERSignatures ScriptFlags = 1 << 2

	// ScriptVerifyNullDummy requires the extra OP_CHECKMULTISIG stack item
	// to be empty (BIP147).
	ScriptVerifyNullDummy ScriptFlags = 1 << 4

	// ScriptVerifyCheckLockTimeVerify enables OP_CHECKLOCKTIMEVERIFY
	// (BIP65).
	ScriptVerifyCheckLockTimeVerify ScriptFlags = 1 << 9

	// ScriptVerifyCheckSequenceVerify enables OP_CHECKSEQUENCEVERIFY
	// (BIP112).
	ScriptVerifyCheckSequenceVerify ScriptFlags = 1 << 10

	// ScriptVerifyWitness evaluates witness programs (BIP141).
	ScriptVerifyWitness ScriptFlags = 1 << 11

	// ScriptVerifyAll is every flag a Verifier is expected to understand.
	ScriptVerifyAll = ScriptBip16 | ScriptVerifyStrictEncoding |
		ScriptVerifyDERSignatures | ScriptVerifyNullDummy |
		ScriptVerifyCheckLockTimeVerify | ScriptVerifyCheckSequenceVerify |
		ScriptVerifyWitness
)

var scriptFlagNames = []struct {
	flag ScriptFlags
	name string
}{
	{ScriptBip16, "P2SH"},
	{ScriptVerifyStrictEncoding, "STRICTENC"},
	{ScriptVerifyDERSignatures, "DERSIG"},
	{ScriptVerifyNullDummy, "NULLDUMMY"},
	{ScriptVerifyCheckLockTimeVerify, "CHECKLOCKTIMEVERIFY"},
	{ScriptVerifyCheckSequenceVerify, "CHECKSEQUENCEVERIFY"},
	{ScriptVerifyWitness, "WITNESS"},
}

// String returns the flags as a comma separated list of names.
func (f ScriptFlags) String() string {
	if f == ScriptVerifyNone {
		return "NONE"
	}
	var s string
	for _, fn := range scriptFlagNames {
		if f&fn.flag == 0 {
			continue
		}
		if s != "" {
			s += ","
		}
		s += fn.name
		f &^= fn.flag
	}
	if f != 0 {
		if s != "" {
			s += ","
		}
		s += fmt.Sprintf("0x%x", uint32(f))
	}
	return s
}

// Verifier executes a single input's scripts against the transaction that
// spends it. txBytes is the consensus encoding of the whole spending
// transaction, including witness data when it has any. amount is the value of
// the output being spent, which witness programs commit to.
//
// A Verifier returns nil when the input is valid. Implementations are
// typically bindings to libbitcoinconsensus.
type Verifier interface {
	Verify(scriptSig, scriptPubKey []byte, amount int64, txBytes []byte,
		inputIndex uint32, flags ScriptFlags) error
}

// VerifierFunc is an adapter to allow the use of ordinary functions as
// Verifiers.
type VerifierFunc func(scriptSig, scriptPubKey []byte, amount int64,
	txBytes []byte, inputIndex uint32, flags ScriptFlags) error

// Verify calls f(scriptSig, scriptPubKey, amount, txBytes, inputIndex, flags).
func (f VerifierFunc) Verify(scriptSig, scriptPubKey []byte, amount int64,
	txBytes []byte, inputIndex uint32, flags ScriptFlags) error {

	return f(scriptSig, scriptPubKey, amount, txBytes, inputIndex, flags)
}

// VerifyErrorCode identifies a kind of verification failure.
type VerifyErrorCode int

// These constants are used to identify a specific VerifyError.
const (
	// ErrVerifyScript indicates the verifier rejected an input's scripts.
	ErrVerifyScript VerifyErrorCode = iota

	// ErrVerifyTxIndex indicates the input index is out of range or the
	// previous outputs do not line up with the inputs.
	ErrVerifyTxIndex

	// ErrVerifyTxSizeMismatch indicates the verifier decoded a transaction
	// of a different size than it was given.
	ErrVerifyTxSizeMismatch

	// ErrVerifyTxDeserialize indicates the verifier could not decode the
	// transaction.
	ErrVerifyTxDeserialize

	// ErrVerifyAmountRequired indicates the verifier needs the spent
	// amount and it was not supplied.
	ErrVerifyAmountRequired

	// ErrVerifyInvalidFlags indicates the flags hold unknown bits or an
	// unsupported combination.
	ErrVerifyInvalidFlags

	// numVerifyErrorCodes is the maximum error code number used in tests.
	numVerifyErrorCodes
)

// Map of VerifyErrorCode values back to their constant names for pretty
// printing.
var verifyErrorCodeStrings = map[VerifyErrorCode]string{
	ErrVerifyScript:         "ErrVerifyScript",
	ErrVerifyTxIndex:        "ErrVerifyTxIndex",
	ErrVerifyTxSizeMismatch: "ErrVerifyTxSizeMismatch",
	ErrVerifyTxDeserialize:  "ErrVerifyTxDeserialize",
	ErrVerifyAmountRequired: "ErrVerifyAmountRequired",
	ErrVerifyInvalidFlags:   "ErrVerifyInvalidFlags",
}

// String returns the VerifyErrorCode as a human-readable name.
func (e VerifyErrorCode) String() string {
	if s := verifyErrorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown VerifyErrorCode (%d)", int(e))
}

// VerifyError describes the failure of an input to verify. Err holds the
// error returned by the Verifier, if any.
type VerifyError struct {
	ErrorCode   VerifyErrorCode
	InputIndex  uint32
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e VerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("input %d: %s: %s", e.InputIndex, e.Description, e.Err)
	}
	return fmt.Sprintf("input %d: %s", e.InputIndex, e.Description)
}

// Unwrap returns the error reported by the Verifier.
func (e VerifyError) Unwrap() error {
	return e.Err
}

// IsVerifyErrorCode returns whether err is a VerifyError, possibly wrapped,
// with the given code.
func IsVerifyErrorCode(err error, c VerifyErrorCode) bool {
	var verr VerifyError
	return errors.As(err, &verr) && verr.ErrorCode == c
}

// checkFlags ensures flags only hold known bits and that witness evaluation
// is requested together with pay-to-script-hash evaluation.
func checkFlags(flags ScriptFlags) error {
	if flags&^ScriptVerifyAll != 0 {
		return VerifyError{
			ErrorCode:   ErrVerifyInvalidFlags,
			Description: fmt.Sprintf("unknown script flags %s", flags&^ScriptVerifyAll),
		}
	}
	if flags&ScriptVerifyWitness != 0 && flags&ScriptBip16 == 0 {
		return VerifyError{
			ErrorCode:   ErrVerifyInvalidFlags,
			Description: "WITNESS requires P2SH",
		}
	}
	return nil
}

// VerifyTransaction verifies every input of tx with verifier. prevOuts holds
// the outputs being spent, one per input and in input order. The transaction
// is serialized once and the same bytes are handed to the verifier for every
// input. The first failing input stops verification and is reported as a
// VerifyError.
func VerifyTransaction(verifier Verifier, tx *wire.MsgTx, prevOuts []*wire.TxOut, flags ScriptFlags) error {
	if err := checkFlags(flags); err != nil {
		return err
	}
	if len(prevOuts) != len(tx.TxIn) {
		return VerifyError{
			ErrorCode: ErrVerifyTxIndex,
			Description: fmt.Sprintf("transaction has %d inputs but %d "+
				"previous outputs were given", len(tx.TxIn), len(prevOuts)),
		}
	}

	txBytes := tx.Bytes()
	log.Tracef("%s", logger.NewLogClosure(func() string {
		return fmt.Sprintf("verifying %d inputs of %s with flags %s",
			len(tx.TxIn), tx.TxHash(), flags)
	}))

	for i, txIn := range tx.TxIn {
		prevOut := prevOuts[i]
		if prevOut == nil {
			return VerifyError{
				ErrorCode:   ErrVerifyTxIndex,
				InputIndex:  uint32(i),
				Description: "missing previous output",
			}
		}

		err := verifier.Verify(txIn.SignatureScript, prevOut.PkScript,
			prevOut.Value, txBytes, uint32(i), flags)
		if err == nil {
			continue
		}

		var verr VerifyError
		if errors.As(err, &verr) {
			verr.InputIndex = uint32(i)
			return verr
		}
		return VerifyError{
			ErrorCode:   ErrVerifyScript,
			InputIndex:  uint32(i),
			Description: "script verification failed",
			Err:         err,
		}
	}

	return nil
}
