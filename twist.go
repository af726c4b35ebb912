package easyecies

import (
	"crypto/elliptic"
	"math/big"
)

// twistedCurve implements an r1 domain through its t1 twist
// y² = x³ - 3x + b·z⁶, which crypto/elliptic.CurveParams can compute on.
// (x, y) on r1 maps to (x·z², y·z³) on t1. The point at infinity (0, 0)
// maps to itself.
type twistedCurve struct {
	params  *elliptic.CurveParams
	twisted *elliptic.CurveParams

	z2, z3       *big.Int
	zinv2, zinv3 *big.Int
}

var _ elliptic.Curve = (*twistedCurve)(nil)

func newTwistedCurve(name string, p, a, b, gx, gy, n, z *big.Int) *twistedCurve {
	zinv := new(big.Int).ModInverse(z, p)
	if zinv == nil {
		panic("easyecies: twist constant of " + name + " is not invertible")
	}
	w := &twistedCurve{
		params: &elliptic.CurveParams{
			P:       p,
			N:       n,
			B:       b,
			Gx:      gx,
			Gy:      gy,
			BitSize: p.BitLen(),
			Name:    name,
		},
		z2:    new(big.Int).Exp(z, big.NewInt(2), p),
		z3:    new(big.Int).Exp(z, big.NewInt(3), p),
		zinv2: new(big.Int).Exp(zinv, big.NewInt(2), p),
		zinv3: new(big.Int).Exp(zinv, big.NewInt(3), p),
	}

	// a·z⁴ must be -3.
	az4 := new(big.Int).Mul(a, w.z2)
	az4.Mul(az4, w.z2)
	az4.Add(az4, big.NewInt(3))
	if az4.Mod(az4, p).Sign() != 0 {
		panic("easyecies: twist constant of " + name + " does not give a = -3")
	}

	tb := new(big.Int).Mul(b, w.z3)
	tb.Mul(tb, w.z3)
	tb.Mod(tb, p)
	tgx, tgy := w.toTwisted(gx, gy)
	w.twisted = &elliptic.CurveParams{
		P:       p,
		N:       n,
		B:       tb,
		Gx:      tgx,
		Gy:      tgy,
		BitSize: p.BitLen(),
		Name:    name[:len(name)-2] + "t1",
	}
	return w
}

func (w *twistedCurve) toTwisted(x, y *big.Int) (*big.Int, *big.Int) {
	var tx, ty big.Int
	tx.Mul(x, w.z2)
	tx.Mod(&tx, w.params.P)
	ty.Mul(y, w.z3)
	ty.Mod(&ty, w.params.P)
	return &tx, &ty
}

func (w *twistedCurve) fromTwisted(tx, ty *big.Int) (*big.Int, *big.Int) {
	var x, y big.Int
	x.Mul(tx, w.zinv2)
	x.Mod(&x, w.params.P)
	y.Mul(ty, w.zinv3)
	y.Mod(&y, w.params.P)
	return &x, &y
}

// Params describes the r1 domain. Its generic methods assume a = -3 and
// must not be called on it.
func (w *twistedCurve) Params() *elliptic.CurveParams {
	return w.params
}

func (w *twistedCurve) IsOnCurve(x, y *big.Int) bool {
	if x.Sign() < 0 || x.Cmp(w.params.P) >= 0 ||
		y.Sign() < 0 || y.Cmp(w.params.P) >= 0 {
		return false
	}
	return w.twisted.IsOnCurve(w.toTwisted(x, y))
}

func (w *twistedCurve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	tx1, ty1 := w.toTwisted(x1, y1)
	tx2, ty2 := w.toTwisted(x2, y2)
	return w.fromTwisted(w.twisted.Add(tx1, ty1, tx2, ty2))
}

func (w *twistedCurve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	return w.fromTwisted(w.twisted.Double(w.toTwisted(x1, y1)))
}

func (w *twistedCurve) ScalarMult(bx, by *big.Int, k []byte) (*big.Int, *big.Int) {
	tx, ty := w.toTwisted(bx, by)
	return w.fromTwisted(ladder(w.twisted, w.params.N, tx, ty, k))
}

func (w *twistedCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	return w.fromTwisted(ladder(w.twisted, w.params.N, w.twisted.Gx, w.twisted.Gy, k))
}
