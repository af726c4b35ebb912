package pbe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncryptDecrypt(t *testing.T) {
	assert := assert.New(t)

	for _, n := range []int{0, 1, 15, 16, 17, 64, 1000} {
		plain := bytes.Repeat([]byte{0x5a}, n)
		encrypted, err := Encrypt(plain, "pw1")
		require.NoError(t, err)
		assert.Equal(0, (len(encrypted)-saltPrefixLen-tagLen)%16)
		assert.Greater(len(encrypted), n+saltPrefixLen+tagLen)

		decrypted, err := Decrypt(encrypted, "pw1")
		assert.NoError(err)
		assert.Equal(n, len(decrypted))
		assert.True(bytes.Equal(plain, decrypted))
	}
}

func Test_Encrypt_FreshSalt(t *testing.T) {
	assert := assert.New(t)

	e1, err := Encrypt([]byte("some data"), "pw")
	assert.NoError(err)
	e2, err := Encrypt([]byte("some data"), "pw")
	assert.NoError(err)
	assert.NotEqual(e1, e2)
}

func Test_Decrypt_WrongPassword(t *testing.T) {
	assert := assert.New(t)

	encrypted, err := Encrypt([]byte("some data"), "pw1")
	require.NoError(t, err)

	for _, pwd := range []string{"pw2", "", "pw1 ", "PW1"} {
		decrypted, err := Decrypt(encrypted, pwd)
		assert.ErrorIs(err, ErrInvalidCipherBytes)
		assert.Nil(decrypted)
	}
}

func Test_Decrypt_EmptyPassword(t *testing.T) {
	assert := assert.New(t)

	encrypted, err := Encrypt([]byte("some data"), "")
	require.NoError(t, err)
	decrypted, err := Decrypt(encrypted, "")
	assert.NoError(err)
	assert.Equal([]byte("some data"), decrypted)
}

func Test_Decrypt_Tampered(t *testing.T) {
	assert := assert.New(t)

	encrypted, err := Encrypt([]byte("some data"), "pw1")
	require.NoError(t, err)

	for i := 0; i < len(encrypted); i++ {
		tampered := bytes.Clone(encrypted)
		tampered[i] ^= 0x01
		_, err := Decrypt(tampered, "pw1")
		assert.ErrorIs(err, ErrInvalidCipherBytes)
	}

	_, err = Decrypt(encrypted[:len(encrypted)-1], "pw1")
	assert.ErrorIs(err, ErrInvalidCipherBytes)
	_, err = Decrypt(nil, "pw1")
	assert.ErrorIs(err, ErrInvalidCipherBytes)
}

func Test_pkcs7(t *testing.T) {
	assert := assert.New(t)

	padded := pkcs7Pad([]byte{1, 2, 3}, 16)
	assert.Len(padded, 16)
	assert.Equal(byte(13), padded[15])
	unpadded, ok := pkcs7Unpad(padded, 16)
	assert.True(ok)
	assert.Equal([]byte{1, 2, 3}, unpadded)

	padded = pkcs7Pad(nil, 16)
	assert.Equal(bytes.Repeat([]byte{16}, 16), padded)

	padded[15] = 0
	_, ok = pkcs7Unpad(padded, 16)
	assert.False(ok)
	padded[15] = 17
	_, ok = pkcs7Unpad(padded, 16)
	assert.False(ok)
}
