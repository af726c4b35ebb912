package easyecies

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/tyler-smith/go-bip39"
)

// PrivateKey represents elliptic curve cryptography private key.
type PrivateKey struct {
	curve *Curve
	d     *big.Int
}

// NewPrivateKey creates a new random private key on the given curve, reading
// randomness from random. If random is nil, crypto/rand is used.
func NewPrivateKey(curve *Curve, random io.Reader) (*PrivateKey, error) {
	if curve == nil {
		return nil, ErrDomainNotFound
	}
	if random == nil {
		random = rand.Reader
	}
	d, err := randScalar(curve, random)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private key: %w", err)
	}
	return &PrivateKey{curve: curve, d: d}, nil
}

// randScalar draws a scalar in [1, n-1] by rejection sampling.
func randScalar(curve *Curve, random io.Reader) (*big.Int, error) {
	bitLen := curve.n.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	defer clear(buf)
	excess := uint(len(buf)*8 - bitLen)
	for {
		if _, err := io.ReadFull(random, buf); err != nil {
			return nil, err
		}
		buf[0] &= 0xff >> excess
		d := new(big.Int).SetBytes(buf)
		if d.Sign() > 0 && d.Cmp(curve.n) < 0 {
			return d, nil
		}
	}
}

// NewPrivateKeyFromSecret creates a private key on the given curve from secret.
// The secret must be in [1, n-1].
func NewPrivateKeyFromSecret(curve *Curve, secret *big.Int) (*PrivateKey, error) {
	if curve == nil {
		return nil, ErrDomainNotFound
	}
	if secret == nil || secret.Sign() <= 0 || secret.Cmp(curve.n) >= 0 {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{curve: curve, d: new(big.Int).Set(secret)}, nil
}

// NewPrivateKeyFromBytes creates a private key from its raw encoding, as
// returned by Bytes.
func NewPrivateKeyFromBytes(curve *Curve, b []byte) (*PrivateKey, error) {
	if curve == nil {
		return nil, ErrDomainNotFound
	}
	if len(b) != curve.ByteLen() {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, curve.ByteLen(), len(b))
	}
	return NewPrivateKeyFromSecret(curve, new(big.Int).SetBytes(b))
}

// NewPrivateKeyFromMnemonic creates private key on given curve from a mnemonic phrase.
// Only 224 and 256 bit keys can be created from mnemonic.
func NewPrivateKeyFromMnemonic(curve *Curve, mnemonic string) (*PrivateKey, error) {
	if curve == nil {
		return nil, ErrDomainNotFound
	}
	if !mnemonicSupported(curve) {
		return nil, ErrUnsupportedCurve
	}
	b, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, err
	}
	defer clear(b)
	return NewPrivateKeyFromBytes(curve, b)
}

// BIP-39 entropy is at most 256 bits.
func mnemonicSupported(curve *Curve) bool {
	return curve.KeySize() == 224 || curve.KeySize() == 256
}

// Curve returns the curve of this key.
func (pk *PrivateKey) Curve() *Curve {
	return pk.curve
}

// Algorithm returns the identifier of the curve domain of this key.
func (pk *PrivateKey) Algorithm() string {
	return pk.curve.ID()
}

// Secret returns a copy of the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(pk.d)
}

// Bytes returns the secret as a big endian number, padded to the
// curve's byte length.
func (pk *PrivateKey) Bytes() []byte {
	return pk.d.FillBytes(make([]byte, pk.curve.ByteLen()))
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	x, y := pk.curve.ScalarBaseMult(pk.Bytes())
	return &PublicKey{curve: pk.curve, x: x, y: y}
}

// Mnemonic returns a mnemonic phrase which can be used to recover this private key.
func (pk *PrivateKey) Mnemonic() (string, error) {
	if !mnemonicSupported(pk.curve) {
		return "", ErrUnsupportedCurve
	}
	return bip39.NewMnemonic(pk.Bytes())
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil {
		return false
	}
	return pk.curve == other.curve && pk.d.Cmp(other.d) == 0
}

// Destroy zeroes the secret. The key must not be used afterwards.
func (pk *PrivateKey) Destroy() {
	zeroInt(pk.d)
}

// DecryptEphemeral decrypts an envelope addressed to this key,
// see DecryptEphemeral.
func (pk *PrivateKey) DecryptEphemeral(envelope []byte) ([]byte, error) {
	return DecryptEphemeral(envelope, pk)
}

// sharedSecret returns the x coordinate of d*Q, padded to the curve's
// byte length.
func (pk *PrivateKey) sharedSecret(counterParty *PublicKey) ([]byte, error) {
	if pk.curve != counterParty.curve {
		return nil, ErrDifferentCurves
	}
	k := pk.Bytes()
	defer clear(k)
	x, y := pk.curve.ScalarMult(counterParty.x, counterParty.y, k)
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, ErrInvalidPublicKey
	}
	return x.FillBytes(make([]byte, pk.curve.ByteLen())), nil
}
