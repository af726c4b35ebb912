package easyecies

import (
	"encoding/binary"
	"hash"
)

// kdf2 is the KDF2 function of ISO 18033-2: the output is
// H(secret || counter || otherInfo) for counter = 1, 2, ..., with the
// counter encoded as a 32 bit big endian integer, truncated to length bytes.
func kdf2(newHash func() hash.Hash, secret, otherInfo []byte, length int) []byte {
	h := newHash()
	out := make([]byte, 0, length+h.Size())
	var counter [4]byte
	for i := uint32(1); len(out) < length; i++ {
		binary.BigEndian.PutUint32(counter[:], i)
		h.Reset()
		h.Write(secret)
		h.Write(counter[:])
		h.Write(otherInfo)
		out = h.Sum(out)
	}
	clear(out[length:cap(out)])
	return out[:length]
}
