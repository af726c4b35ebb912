package easyecies

import (
	"crypto/rand"
	"fmt"
	"io"
)

// KeyPair holds a private key and a public key on the same curve.
type KeyPair struct {
	private *PrivateKey
	public  *PublicKey
}

// NewKeyPair creates a key pair. Both keys must be given and must be on
// the same curve.
func NewKeyPair(private *PrivateKey, public *PublicKey) (*KeyPair, error) {
	if private == nil {
		return nil, ErrInvalidPrivateKey
	}
	if public == nil {
		return nil, ErrInvalidPublicKey
	}
	if private.Algorithm() != public.Algorithm() {
		return nil, ErrDifferentCurves
	}
	return &KeyPair{private: private, public: public}, nil
}

// GenerateKeyPair creates a new key pair for the given key size, reading
// randomness from random. Pass a reader from NewDeterministicReader to get
// the same key pair for the same seed.
func GenerateKeyPair(keySize int, random io.Reader) (*KeyPair, error) {
	curve, err := LookupCurveBySize(keySize)
	if err != nil {
		return nil, err
	}
	if random == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	private, err := NewPrivateKey(curve, random)
	if err != nil {
		return nil, err
	}
	return &KeyPair{private: private, public: private.PublicKey()}, nil
}

// GenerateDefaultKeyPair creates a new random key pair of DefaultKeySize.
func GenerateDefaultKeyPair() (*KeyPair, error) {
	return GenerateKeyPair(DefaultKeySize, rand.Reader)
}

// Private returns the private key.
func (kp *KeyPair) Private() *PrivateKey {
	return kp.private
}

// Public returns the public key.
func (kp *KeyPair) Public() *PublicKey {
	return kp.public
}

// Curve returns the curve of the key pair.
func (kp *KeyPair) Curve() *Curve {
	return kp.private.Curve()
}
