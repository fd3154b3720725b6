// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package txscript implements the bitcoin transaction script language.

Scripts are plain byte slices. This package tokenizes them, classifies them
against the standard locking script templates, builds them with minimal push
encodings and converts between locking scripts and addresses. Scripts are not
executed here: transaction verification is delegated to an external Verifier,
such as a binding to libbitcoinconsensus.

Script Tokenizing

MakeScriptTokenizer returns a tokenizer which yields one instruction per call
to Next without allocating. A push that declares more bytes than the script
holds stops the tokenizer and Err returns a wire.CodecError with the
ErrMalformedScript code. Instructions yielded before the failure are
unaffected, which lets callers display the well formed prefix of a script.

	tokenizer := txscript.MakeScriptTokenizer(script)
	for tokenizer.Next() {
		fmt.Println(tokenizer.Opcode(), tokenizer.Data())
	}
	if err := tokenizer.Err(); err != nil {
		return err
	}

Script Classes

GetScriptClass returns the standard template a locking script matches. The
recognized templates are pay-to-pubkey, pay-to-pubkey-hash, pay-to-script-hash,
version 0 pay-to-witness-pubkey-hash and pay-to-witness-script-hash, witness
programs of future versions, bare multisig and null data.
*/
package txscript
