package easyecies

import (
	"bytes"
	"math/big"
)

// PublicKey represents elliptic curve cryptography public key.
type PublicKey struct {
	curve *Curve
	x, y  *big.Int
}

// NewPublicKeyFromBytes creates a public key from its compressed or
// uncompressed encoding. The point must be on the curve.
func NewPublicKeyFromBytes(curve *Curve, b []byte) (*PublicKey, error) {
	if curve == nil {
		return nil, ErrDomainNotFound
	}
	x, y, err := curve.Unmarshal(b)
	if err != nil {
		return nil, err
	}
	return &PublicKey{curve: curve, x: x, y: y}, nil
}

// NewPublicKeyFromPoint creates a public key from the point coordinates.
func NewPublicKeyFromPoint(curve *Curve, x, y *big.Int) (*PublicKey, error) {
	if curve == nil {
		return nil, ErrDomainNotFound
	}
	if !curve.IsOnCurve(x, y) {
		return nil, ErrInvalidPublicKey
	}
	return &PublicKey{curve: curve, x: new(big.Int).Set(x), y: new(big.Int).Set(y)}, nil
}

// Bytes returns the uncompressed encoding 0x04 || X || Y.
func (pbk *PublicKey) Bytes() []byte {
	return pbk.curve.Marshal(pbk.x, pbk.y)
}

// CompressedBytes returns the public key in SEC compressed format. The result
// is 1 + ByteLen bytes long.
func (pbk *PublicKey) CompressedBytes() []byte {
	return pbk.curve.MarshalCompressed(pbk.x, pbk.y)
}

// Curve returns the elliptic curve for this public key.
func (pbk *PublicKey) Curve() *Curve {
	return pbk.curve
}

// Algorithm returns the identifier of the curve domain of this key.
func (pbk *PublicKey) Algorithm() string {
	return pbk.curve.ID()
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return new(big.Int).Set(pbk.x)
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return new(big.Int).Set(pbk.y)
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.curve == other.curve &&
		pbk.x.Cmp(other.x) == 0 &&
		pbk.y.Cmp(other.y) == 0
}

// EqualSerializedCompressed returns true if this key is equal to the other,
// given as serialized compressed representation.
func (pbk *PublicKey) EqualSerializedCompressed(other []byte) bool {
	return bytes.Equal(pbk.CompressedBytes(), other)
}

// EncryptEphemeral encrypts plaintext to this key, see EncryptEphemeral.
func (pbk *PublicKey) EncryptEphemeral(plaintext []byte) ([]byte, error) {
	return EncryptEphemeral(plaintext, pbk)
}
