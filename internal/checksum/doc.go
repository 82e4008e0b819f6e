// Package checksum fingerprints source files with SHA-256.
//
// Jobs stream their input through a Reader so the digest is computed in the
// same pass as parsing; the file is never read twice. The hex digest is stored
// with each import run so a later reader can tell which file a run loaded.
//
//	r := checksum.New().Reader(f)
//	records, err := parse(r)
//	digest := r.Sum()
//
// # Thread Safety
//
// SHA256 is safe for concurrent use. A Reader is not.
package checksum
