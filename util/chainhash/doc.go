// Package chainhash provides the fixed-width digest types used to identify
// transactions and blocks (Hash, the double sha256 of the consensus
// encoding) and to build address payloads (Hash160, ripemd160 of sha256).
//
// Digests are value types and compare by bytes. Their textual form is the
// hexadecimal encoding of the byte-reversed digest, matching how block and
// transaction identifiers are conventionally displayed.
package chainhash
