package easyecies

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"sort"

	"github.com/ProtonMail/go-crypto/brainpool"
)

// DefaultKeySize is the key size (in bits) used when none is given,
// it selects brainpoolP320r1.
const DefaultKeySize = 320

// Curve is an elliptic curve domain y² = x³ + ax + b over GF(p) with
// base point G of prime order n. Curves are created once from a static
// table and never modified, so they are safe for concurrent use.
type Curve struct {
	id      string
	name    string
	keySize int
	byteLen int
	p, a, b *big.Int
	gx, gy  *big.Int
	n       *big.Int

	// ec does the point arithmetic.
	ec elliptic.Curve
}

// CurveParams holds a copy of the domain parameters of a curve.
type CurveParams struct {
	P       *big.Int
	A       *big.Int
	B       *big.Int
	Gx, Gy  *big.Int
	N       *big.Int
	BitSize int
	Name    string
}

type curveDefinition struct {
	id      string
	name    string
	keySize int
	p, a, b string
	gx, gy  string
	n       string
	z       string
}

// libraryCurves lists the domains implemented by
// github.com/ProtonMail/go-crypto/brainpool. The others use
// twistedCurve.
var libraryCurves = map[string]func() elliptic.Curve{
	"brainpoolP256r1": brainpool.P256r1,
	"brainpoolP384r1": brainpool.P384r1,
	"brainpoolP512r1": brainpool.P512r1,
}

var (
	curvesByID   = map[string]*Curve{}
	curvesBySize = map[int]*Curve{}
	curvesByName = map[string]*Curve{}
	allCurves    []*Curve
)

func init() {
	for _, def := range curveTable {
		registerCurve(def.build())
	}
	sort.Slice(allCurves, func(i, j int) bool {
		return allCurves[i].keySize < allCurves[j].keySize
	})
}

func registerCurve(c *Curve) {
	if _, ok := curvesByID[c.id]; ok {
		panic("easyecies: duplicate curve id " + c.id)
	}
	if _, ok := curvesBySize[c.keySize]; ok {
		panic(fmt.Sprintf("easyecies: duplicate curve key size %d", c.keySize))
	}
	params := c.ec.Params()
	if params.P.Cmp(c.p) != 0 || params.N.Cmp(c.n) != 0 ||
		params.Gx.Cmp(c.gx) != 0 || params.Gy.Cmp(c.gy) != 0 {
		panic("easyecies: domain parameters of " + c.name + " do not match its implementation")
	}
	if !c.IsOnCurve(c.gx, c.gy) {
		panic("easyecies: base point of " + c.name + " is not on the curve")
	}
	curvesByID[c.id] = c
	curvesBySize[c.keySize] = c
	curvesByName[c.name] = c
	allCurves = append(allCurves, c)
}

func (def curveDefinition) build() *Curve {
	p := mustHex(def.p)
	c := &Curve{
		id:      def.id,
		name:    def.name,
		keySize: def.keySize,
		byteLen: (p.BitLen() + 7) / 8,
		p:       p,
		a:       mustHex(def.a),
		b:       mustHex(def.b),
		gx:      mustHex(def.gx),
		gy:      mustHex(def.gy),
		n:       mustHex(def.n),
	}
	if newCurve, ok := libraryCurves[def.name]; ok {
		c.ec = newCurve()
	} else {
		c.ec = newTwistedCurve(c.name, c.p, c.a, c.b, c.gx, c.gy, c.n, mustHex(def.z))
	}
	return c
}

func mustHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("easyecies: bad curve constant " + s)
	}
	return v
}

// LookupCurve returns the curve with the given identifier (its OID).
func LookupCurve(id string) (*Curve, error) {
	c, ok := curvesByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown id %q", ErrDomainNotFound, id)
	}
	return c, nil
}

// LookupCurveBySize returns the curve for the given key size in bits.
func LookupCurveBySize(keySize int) (*Curve, error) {
	c, ok := curvesBySize[keySize]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported key size %d", ErrDomainNotFound, keySize)
	}
	return c, nil
}

// LookupCurveByName returns the curve with the given standard name,
// e.g. "brainpoolP320r1".
func LookupCurveByName(name string) (*Curve, error) {
	c, ok := curvesByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown name %q", ErrDomainNotFound, name)
	}
	return c, nil
}

// DefaultCurve returns the curve selected by DefaultKeySize.
func DefaultCurve() *Curve {
	return curvesBySize[DefaultKeySize]
}

// Curves returns all registered curves ordered by key size.
func Curves() []*Curve {
	out := make([]*Curve, len(allCurves))
	copy(out, allCurves)
	return out
}

// ID returns the unique identifier of the curve.
func (c *Curve) ID() string {
	return c.id
}

// Name returns the standard name of the curve.
func (c *Curve) Name() string {
	return c.name
}

// KeySize returns the key size in bits.
func (c *Curve) KeySize() int {
	return c.keySize
}

// ByteLen returns the length in bytes of a field element (and of a
// private scalar).
func (c *Curve) ByteLen() int {
	return c.byteLen
}

// String returns the curve name.
func (c *Curve) String() string {
	return c.name
}

// Params returns a copy of the domain parameters.
func (c *Curve) Params() *CurveParams {
	return &CurveParams{
		P:       new(big.Int).Set(c.p),
		A:       new(big.Int).Set(c.a),
		B:       new(big.Int).Set(c.b),
		Gx:      new(big.Int).Set(c.gx),
		Gy:      new(big.Int).Set(c.gy),
		N:       new(big.Int).Set(c.n),
		BitSize: c.keySize,
		Name:    c.name,
	}
}
