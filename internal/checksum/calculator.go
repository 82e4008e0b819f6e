package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// SHA256 creates hashing readers using SHA-256.
// It is a zero-size type and is safe for concurrent use.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// Reader wraps r with a streaming SHA-256.
func (c SHA256) Reader(r io.Reader) *Reader {
	return &Reader{r: r, h: sha256.New()}
}

// Reader hashes every byte read through it.
type Reader struct {
	r io.Reader
	h hash.Hash
}

func (r *Reader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if n > 0 {
		r.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the hex digest of the bytes read so far.
// Callers that need a digest of the whole input must drain the reader first.
func (r *Reader) Sum() string {
	return hex.EncodeToString(r.h.Sum(nil))
}

// Drain reads and hashes whatever remains of the underlying reader.
func (r *Reader) Drain() error {
	_, err := io.Copy(io.Discard, r)
	return err
}
