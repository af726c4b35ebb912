package pbe

import (
	"hash"
	"unicode/utf16"
)

// Diversifier IDs of PKCS#12 v1.0 Appendix B.3.
const (
	pkcs12KeyID = 1
	pkcs12IVID  = 2
	pkcs12MACID = 3
)

// bmpString encodes s as a NUL terminated big endian UTF-16 string. An
// empty password yields no bytes.
func bmpString(s string) []byte {
	if s == "" {
		return nil
	}
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, 2*len(units)+2)
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return append(out, 0, 0)
}

// pkcs12Derive implements the key derivation of PKCS#12 v1.0 Appendix B.2
// (RFC 7292), returning size bytes for the given diversifier ID.
func pkcs12Derive(newHash func() hash.Hash, id byte, salt, password []byte, iterations, size int) []byte {
	h := newHash()
	u := h.Size()
	v := h.BlockSize()

	d := make([]byte, v)
	for i := range d {
		d[i] = id
	}
	s := fillBlocks(salt, v)
	p := fillBlocks(password, v)
	i := append(s, p...)
	defer clear(i)

	out := make([]byte, 0, size+u)
	b := make([]byte, v)
	for len(out) < size {
		h.Reset()
		h.Write(d)
		h.Write(i)
		a := h.Sum(nil)
		for r := 1; r < iterations; r++ {
			h.Reset()
			h.Write(a)
			a = h.Sum(a[:0])
		}
		out = append(out, a...)
		if len(out) >= size {
			break
		}
		for j := range b {
			b[j] = a[j%u]
		}
		for j := 0; j < len(i); j += v {
			addOne(i[j:j+v], b)
		}
	}
	clear(out[size:])
	return out[:size]
}

// fillBlocks repeats b up to the next multiple of v bytes.
func fillBlocks(b []byte, v int) []byte {
	if len(b) == 0 {
		return nil
	}
	n := v * ((len(b) + v - 1) / v)
	out := make([]byte, n)
	for i := range out {
		out[i] = b[i%len(b)]
	}
	return out
}

// addOne sets block = (block + b + 1) mod 2^(8*len(block)).
func addOne(block, b []byte) {
	carry := uint16(1)
	for k := len(block) - 1; k >= 0; k-- {
		carry += uint16(block[k]) + uint16(b[k])
		block[k] = byte(carry)
		carry >>= 8
	}
}
