// Copyright (c) 2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package bech32 applies the BIP 173 bech32 format on top of the
github.com/btcsuite/btcd/btcutil/bech32 codec, enforcing the 90 character
limit on both directions and rejecting bech32m checksums.

Bech32 strings consist of a human-readable part (hrp), followed by the
separator 1, then a checksummed data part encoded using the 32 characters
"qpzry9x8gf2tvdw0s3jn54khce6mua7l".

Decoding never panics; malformed input is reported through an Error whose
ErrorCode identifies the kind of failure.

More info: https://github.com/bitcoin/bips/blob/master/bip-0173.mediawiki
*/
package bech32
