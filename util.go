package easyecies

import "math/big"

// zeroInt overwrites the words backing x and sets it to zero.
func zeroInt(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}

// Overhead returns the number of bytes an envelope adds to the plaintext
// for keys on the given curve.
func Overhead(curve *Curve) int {
	return curve.CompressedLen() + ParamsFor(curve.KeySize()).TagLen()
}

// PlainTextLength returns plain text length for an envelope of the given
// length, produced for a key on the given curve.
func PlainTextLength(curve *Curve, envelopeLength int) int {
	n := envelopeLength - Overhead(curve)
	if n < 0 {
		return 0
	}
	return n
}
