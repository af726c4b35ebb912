package easyecies

import (
	"bytes"
	"io"

	"github.com/regnull/easyecies/pbe"
)

const (
	deterministicIterations = 1536

	// DeterministicReaderSize is the number of bytes a deterministic reader
	// yields by default, enough for any key generation.
	DeterministicReaderSize = 4224
)

type deterministicReader struct {
	r *bytes.Reader
}

// NewDeterministicReader returns a reader of DeterministicReaderSize bytes
// derived from seed with PBKDF2. The same seed always yields the same bytes.
// It must not be used where real randomness is required, such as ephemeral
// encryption.
func NewDeterministicReader(seed string) io.Reader {
	return NewDeterministicReaderSize(seed, DeterministicReaderSize)
}

// NewDeterministicReaderSize is like NewDeterministicReader with the given
// number of bytes.
func NewDeterministicReaderSize(seed string, size int) io.Reader {
	b := pbe.DeriveKeyBytesIter(seed, deterministicIterations, size)
	return &deterministicReader{r: bytes.NewReader(b)}
}

// Read fills p completely or fails with ErrRandomExhausted, it never
// returns a short read.
func (d *deterministicReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if d.r.Len() < len(p) {
		return 0, ErrRandomExhausted
	}
	return d.r.Read(p)
}
