package easyecies

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParamsFor(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(512, ParamsFor(256).MACKeyBits)
	assert.Equal(576, ParamsFor(512).MACKeyBits)

	for _, keySize := range keySizes {
		p := ParamsFor(keySize)
		assert.Equal(keySize, p.KeySize)
		assert.Equal(512, p.KDFDigestBits)
		assert.Equal(256, p.CipherKeyBits)
		assert.Equal(keySize, p.MACDigestBits)
		assert.Equal(p.MACKeyBits/8, p.NewMACHash().BlockSize())
		assert.GreaterOrEqual(p.NewMACHash().Size(), p.TagLen())
		assert.Equal(p.KDFDigestBits/8, p.NewKDFHash().Size())
	}
}

func Test_ParamsFor_Fallback(t *testing.T) {
	assert := assert.New(t)

	p := ParamsFor(100)
	assert.Equal(512, p.KeySize)
	assert.Equal(576, p.MACKeyBits)

	_, ok := LookupParams(100)
	assert.False(ok)
	p, ok = LookupParams(384)
	assert.True(ok)
	assert.Equal(832, p.MACKeyBits)
}

func Test_ParamsFor_MAC320(t *testing.T) {
	assert := assert.New(t)

	// Full SHA-512 output cut to 40 bytes, not a 320-bit digest.
	p := ParamsFor(320)
	assert.Equal(sha512.Size, p.NewMACHash().Size())
	assert.Equal(40, p.TagLen())

	key := []byte("mac key")
	msg := []byte("hello, world")
	ref := hmac.New(sha512.New, key)
	ref.Write(msg)
	ref.Write(encodingParam)
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(encodingParam))*8)
	ref.Write(l[:])
	assert.Equal(ref.Sum(nil)[:40], computeTag(p, key, msg))
}
