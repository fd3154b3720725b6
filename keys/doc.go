/*
Package keys implements the signing capability used when building and
checking transactions.

The consensus code in this module never touches key material directly. It
depends on the Signer interface for producing signatures and on
VerifySignature for checking them, so callers may plug in hardware or remote
signers in place of the in-memory PrivateKey provided here.

Keys are secp256k1 keys. Signatures are DER-encoded ECDSA signatures over a
32-byte message hash.
*/
package keys
