package pbe

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20"
)

// ObfuscationSaltLen is the number of clear salt bytes in front of
// obfuscated data.
const ObfuscationSaltLen = 6

// Obfuscate scrambles b with a keystream keyed by a random salt, which is
// prepended to the result. This hides bytes from casual inspection only,
// anyone can reverse it with Deobfuscate.
func Obfuscate(b []byte) ([]byte, error) {
	out := make([]byte, ObfuscationSaltLen+len(b))
	if _, err := rand.Read(out[:ObfuscationSaltLen]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %v", err)
	}
	if err := xorSalted(out[:ObfuscationSaltLen], out[ObfuscationSaltLen:], b); err != nil {
		return nil, err
	}
	return out, nil
}

// Deobfuscate reverses Obfuscate.
func Deobfuscate(b []byte) ([]byte, error) {
	if len(b) < ObfuscationSaltLen {
		return nil, fmt.Errorf("%w: obfuscated data too short", ErrInvalidCipherBytes)
	}
	out := make([]byte, len(b)-ObfuscationSaltLen)
	if err := xorSalted(b[:ObfuscationSaltLen], out, b[ObfuscationSaltLen:]); err != nil {
		return nil, err
	}
	return out, nil
}

func xorSalted(salt, dst, src []byte) error {
	key := blake2b.Sum256(salt)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %v", err)
	}
	c.XORKeyStream(dst, src)
	return nil
}
