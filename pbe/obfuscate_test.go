package pbe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ObfuscateDeobfuscate(t *testing.T) {
	assert := assert.New(t)

	for _, n := range []int{0, 1, 6, 100} {
		plain := bytes.Repeat([]byte("x"), n)
		obfuscated, err := Obfuscate(plain)
		assert.NoError(err)
		assert.Len(obfuscated, n+ObfuscationSaltLen)
		if n > 16 {
			assert.NotEqual(plain, obfuscated[ObfuscationSaltLen:])
		}

		deobfuscated, err := Deobfuscate(obfuscated)
		assert.NoError(err)
		assert.True(bytes.Equal(plain, deobfuscated))
	}
}

func Test_Deobfuscate_TooShort(t *testing.T) {
	assert := assert.New(t)

	_, err := Deobfuscate([]byte{1, 2, 3})
	assert.ErrorIs(err, ErrInvalidCipherBytes)
}
