/*
Package psbt implements the global map of a BIP-174 partially signed
transaction.

A PSBT starts with the magic bytes "psbt" and a 0xff separator, followed by
key-value maps. Each entry is

	<compact size key length><key type><key data><compact size value length><value>

and a map ends with a single 0x00 byte. The global map carries the unsigned
transaction, the version of the format, the extended public keys the signers
derive from and any entries this package does not interpret.

Decoding fails closed: a global map without an unsigned transaction, with a
duplicated key, with data under a key type that takes none or with an unsigned
transaction that carries signatures is rejected with an Error describing the
violation.
*/
package psbt
