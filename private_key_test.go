package easyecies

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func Test_PrivateKey_NewRandom(t *testing.T) {
	assert := assert.New(t)

	for _, c := range Curves() {
		pk, err := NewPrivateKey(c, nil)
		assert.NoError(err)
		assert.NotNil(pk)
		assert.Same(c, pk.Curve())
		assert.Equal(c.ID(), pk.Algorithm())
		assert.Equal(1, pk.Secret().Sign())
		assert.Equal(-1, pk.Secret().Cmp(c.Params().N))
	}
}

func Test_PrivateKey_NewPrivateKeyFromSecret(t *testing.T) {
	assert := assert.New(t)

	c := DefaultCurve()
	_, err := NewPrivateKeyFromSecret(c, big.NewInt(0))
	assert.ErrorIs(err, ErrInvalidPrivateKey)
	_, err = NewPrivateKeyFromSecret(c, c.Params().N)
	assert.ErrorIs(err, ErrInvalidPrivateKey)
	_, err = NewPrivateKeyFromSecret(c, nil)
	assert.ErrorIs(err, ErrInvalidPrivateKey)
	_, err = NewPrivateKeyFromSecret(nil, big.NewInt(1))
	assert.ErrorIs(err, ErrDomainNotFound)

	secret := big.NewInt(12345)
	pk, err := NewPrivateKeyFromSecret(c, secret)
	assert.NoError(err)
	secret.SetInt64(1)
	assert.EqualValues(12345, pk.Secret().Int64())
}

func Test_PrivateKey_Bytes(t *testing.T) {
	assert := assert.New(t)

	for _, c := range Curves() {
		pk, err := NewPrivateKeyFromSecret(c, big.NewInt(5001))
		require.NoError(t, err)
		b := pk.Bytes()
		assert.Len(b, c.ByteLen())

		pk1, err := NewPrivateKeyFromBytes(c, b)
		assert.NoError(err)
		assert.True(pk.Equal(pk1))

		_, err = NewPrivateKeyFromBytes(c, b[1:])
		assert.ErrorIs(err, ErrInvalidPrivateKey)
	}
}

func Test_PrivateKey_Mnemonic(t *testing.T) {
	assert := assert.New(t)

	for _, c := range Curves() {
		pk, err := NewPrivateKey(c, nil)
		require.NoError(t, err)
		mnemonic, err := pk.Mnemonic()
		if c.KeySize() > 256 {
			assert.ErrorIs(err, ErrUnsupportedCurve)
			_, err = NewPrivateKeyFromMnemonic(c, "abandon abandon")
			assert.ErrorIs(err, ErrUnsupportedCurve)
			continue
		}
		assert.NoError(err)
		assert.Len(strings.Fields(mnemonic), c.KeySize()*3/32)

		pk1, err := NewPrivateKeyFromMnemonic(c, mnemonic)
		assert.NoError(err)
		assert.True(pk.Equal(pk1))
	}

	c, err := LookupCurveBySize(256)
	require.NoError(t, err)
	_, err = NewPrivateKeyFromMnemonic(c, "not a valid mnemonic")
	assert.Error(err)
}

func Test_PrivateKey_Equal(t *testing.T) {
	assert := assert.New(t)

	c256, _ := LookupCurveBySize(256)
	c384, _ := LookupCurveBySize(384)
	a, _ := NewPrivateKeyFromSecret(c256, big.NewInt(7))
	b, _ := NewPrivateKeyFromSecret(c256, big.NewInt(7))
	c, _ := NewPrivateKeyFromSecret(c384, big.NewInt(7))
	assert.True(a.Equal(b))
	assert.False(a.Equal(c))
	assert.False(a.Equal(nil))
}

func Test_PrivateKey_Destroy(t *testing.T) {
	assert := assert.New(t)

	pk, err := NewPrivateKey(DefaultCurve(), nil)
	require.NoError(t, err)
	pk.Destroy()
	assert.Equal(0, pk.Secret().Sign())
	assert.True(bytes.Equal(make([]byte, DefaultCurve().ByteLen()), pk.Bytes()))
}

func Test_randScalar_Rejects(t *testing.T) {
	assert := assert.New(t)

	c, err := LookupCurveBySize(256)
	require.NoError(t, err)
	// All ones is above the order and is rejected, zero is rejected,
	// the third candidate is accepted.
	src := append(bytes.Repeat([]byte{0xff}, 32), make([]byte, 32)...)
	src = append(src, bytes.Repeat([]byte{0x01}, 32)...)
	d, err := randScalar(c, bytes.NewReader(src))
	assert.NoError(err)
	assert.Equal(bytes.Repeat([]byte{0x01}, 32), d.FillBytes(make([]byte, 32)))
}
