package easyecies

import (
	"crypto/elliptic"
	"math/big"
)

// Points are passed around in affine coordinates, the point at infinity
// is represented as (0, 0). The group law comes from the curve's
// elliptic.Curve implementation. Inputs that are neither on the curve nor
// the point at infinity give the point at infinity.

// IsOnCurve reports whether the given (x, y) lies on the curve.
func (c *Curve) IsOnCurve(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	if x.Sign() < 0 || x.Cmp(c.p) >= 0 ||
		y.Sign() < 0 || y.Cmp(c.p) >= 0 {
		return false
	}
	return c.ec.IsOnCurve(x, y)
}

// polynomial returns x³ + ax + b mod p.
func polynomial(x, a, b, p *big.Int) *big.Int {
	x3 := new(big.Int).Mul(x, x)
	x3.Mul(x3, x)

	ax := new(big.Int).Mul(a, x)
	x3.Add(x3, ax)
	x3.Add(x3, b)
	x3.Mod(x3, p)
	return x3
}

func (c *Curve) isPoint(x, y *big.Int) bool {
	if x == nil || y == nil {
		return false
	}
	return x.Sign() == 0 && y.Sign() == 0 || c.IsOnCurve(x, y)
}

// Add returns the sum of (x1,y1) and (x2,y2).
func (c *Curve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	if !c.isPoint(x1, y1) || !c.isPoint(x2, y2) {
		return new(big.Int), new(big.Int)
	}
	return c.ec.Add(x1, y1, x2, y2)
}

// Double returns 2*(x,y).
func (c *Curve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	if !c.isPoint(x1, y1) {
		return new(big.Int), new(big.Int)
	}
	return c.ec.Double(x1, y1)
}

// ScalarMult returns k*(Bx,By) where k is a number in big-endian form.
func (c *Curve) ScalarMult(bx, by *big.Int, k []byte) (*big.Int, *big.Int) {
	if !c.isPoint(bx, by) {
		return new(big.Int), new(big.Int)
	}
	return ladder(c.ec, c.n, bx, by, k)
}

// ScalarBaseMult returns k*G, where G is the base point of the group
// and k is an integer in big-endian form.
func (c *Curve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	return ladder(c.ec, c.n, c.gx, c.gy, k)
}

// ladder computes k*(x, y) on a curve of prime order n with a Montgomery
// ladder. k is reduced mod n and every multiplication runs n.BitLen()
// steps of exactly one addition and one doubling, whatever the value
// of k.
func ladder(curve elliptic.Curve, n, x, y *big.Int, k []byte) (*big.Int, *big.Int) {
	s := new(big.Int).SetBytes(k)
	defer zeroInt(s)
	if s.Cmp(n) >= 0 {
		s.Mod(s, n)
	}

	// r[1] - r[0] = (x, y) after every step.
	r := [2][2]*big.Int{
		{new(big.Int), new(big.Int)},
		{new(big.Int).Set(x), new(big.Int).Set(y)},
	}
	for i := n.BitLen() - 1; i >= 0; i-- {
		bit := s.Bit(i)
		sx, sy := curve.Add(r[0][0], r[0][1], r[1][0], r[1][1])
		dx, dy := curve.Double(r[bit][0], r[bit][1])
		r[1-bit] = [2]*big.Int{sx, sy}
		r[bit] = [2]*big.Int{dx, dy}
	}
	return r[0][0], r[0][1]
}

// Marshal converts a point into the uncompressed form 0x04 || X || Y.
func (c *Curve) Marshal(x, y *big.Int) []byte {
	ret := make([]byte, 1+2*c.byteLen)
	ret[0] = 4
	x.FillBytes(ret[1 : 1+c.byteLen])
	y.FillBytes(ret[1+c.byteLen:])
	return ret
}

// MarshalCompressed converts a point into the compressed form
// (0x02 or 0x03 depending on the parity of y) || X.
func (c *Curve) MarshalCompressed(x, y *big.Int) []byte {
	ret := make([]byte, 1+c.byteLen)
	ret[0] = 2 | byte(y.Bit(0))
	x.FillBytes(ret[1:])
	return ret
}

// CompressedLen returns the length of a compressed point encoding.
func (c *Curve) CompressedLen() int {
	return 1 + c.byteLen
}

// Unmarshal converts a point, serialized by Marshal or MarshalCompressed,
// into an (x, y) pair. It fails if the point is not on the curve or is
// the point at infinity.
func (c *Curve) Unmarshal(data []byte) (x, y *big.Int, err error) {
	switch {
	case len(data) == 1+2*c.byteLen && data[0] == 4:
		x = new(big.Int).SetBytes(data[1 : 1+c.byteLen])
		y = new(big.Int).SetBytes(data[1+c.byteLen:])
		if !c.IsOnCurve(x, y) {
			return nil, nil, ErrInvalidPublicKey
		}
		return x, y, nil
	case len(data) == 1+c.byteLen && (data[0] == 2 || data[0] == 3):
		x = new(big.Int).SetBytes(data[1:])
		if x.Cmp(c.p) >= 0 {
			return nil, nil, ErrInvalidPublicKey
		}
		y = new(big.Int).ModSqrt(polynomial(x, c.a, c.b, c.p), c.p)
		if y == nil {
			return nil, nil, ErrInvalidPublicKey
		}
		if byte(y.Bit(0)) != data[0]&1 {
			y.Sub(c.p, y)
		}
		if !c.IsOnCurve(x, y) {
			return nil, nil, ErrInvalidPublicKey
		}
		return x, y, nil
	}
	return nil, nil, ErrInvalidPublicKey
}
