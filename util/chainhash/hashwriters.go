package chainhash

import (
	"crypto/sha256"
	"hash"
)

// sha256Writer feeds written bytes into a running SHA-256 state. Write never
// fails.
type sha256Writer struct {
	state hash.Hash
}

func (w sha256Writer) Write(p []byte) (int, error) {
	return w.state.Write(p)
}

// HashWriter computes the single SHA-256 of everything written to it, so an
// encoder can stream into it instead of building a buffer first. Writing b
// and calling Finalize equals HashH(b).
type HashWriter struct {
	sha256Writer
}

// NewHashWriter returns an empty HashWriter.
func NewHashWriter() *HashWriter {
	return &HashWriter{sha256Writer{sha256.New()}}
}

// Finalize returns the hash of the bytes written so far.
func (h *HashWriter) Finalize() Hash {
	var res Hash
	h.state.Sum(res[:0])
	return res
}

// DoubleHashWriter is HashWriter for SHA-256d, the hash behind transaction
// and block identifiers. Writing b and calling Finalize equals DoubleHashH(b).
type DoubleHashWriter struct {
	sha256Writer
}

// NewDoubleHashWriter returns an empty DoubleHashWriter.
func NewDoubleHashWriter() *DoubleHashWriter {
	return &DoubleHashWriter{sha256Writer{sha256.New()}}
}

// Finalize returns the double hash of the bytes written so far.
func (h *DoubleHashWriter) Finalize() Hash {
	var first [HashSize]byte
	h.state.Sum(first[:0])
	return sha256.Sum256(first[:])
}
