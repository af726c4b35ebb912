// Package pbe derives keys and passwords from human passwords, encrypts
// byte blobs under a password and obfuscates bytes.
//
// Encrypt output is the 12 random salt bytes, the AES-256-CBC ciphertext
// and an HMAC-SHA256 tag over both. The tag lets Decrypt reject a wrong
// password before unpadding.
package pbe

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count of DeriveKeyBytes.
	DefaultIterations = 1 << 14

	// emptyPepper replaces an empty password, pepper is appended to every
	// password. An empty password therefore still derives a key that is
	// not trivially guessable from the output alone, but anyone who knows
	// these constants can reproduce it.
	emptyPepper = "Xp/)l|/}@km+uSwysKx^|H/[G]475ol87@TV@-nC"
	pepper      = "/oWqyx}a.|*}%LQr+-qR*@+K{8VLNB2i9>w2i@;K"
)

var kdfSalt = []byte{
	0x56, 0xd6, 0xf7, 0x6a, 0x4f, 0xf5, 0x42, 0x88, 0x92, 0x25, 0x9f, 0x91, 0x32, 0x34, 0x51, 0x4e,
	0xd2, 0xea, 0x6c, 0x98, 0xc7, 0x5c, 0x34, 0x41, 0x0d, 0x8f, 0xab, 0x3c, 0xd3, 0x24, 0x9a, 0xa5,
	0x76, 0xd8, 0x3c, 0x06, 0xff, 0x78, 0xd8, 0x55, 0x90, 0xf4, 0xe1, 0x00, 0x7b, 0x08, 0xd9, 0x71,
	0xc7, 0xeb, 0x40, 0x62, 0xe8, 0x7c, 0xe5, 0x26, 0x94, 0x6a, 0x78, 0xb7, 0xfc, 0xb6, 0x63, 0xed,
}

// DeriveKeyBytes derives keyLen bytes from password with PBKDF2-SHA256 and
// DefaultIterations.
func DeriveKeyBytes(password string, keyLen int) []byte {
	return DeriveKeyBytesIter(password, DefaultIterations, keyLen)
}

// DeriveKeyBytesIter derives keyLen bytes from password with PBKDF2-SHA256.
// The salt is fixed, so the result depends on the password only.
func DeriveKeyBytesIter(password string, iterations int, keyLen int) []byte {
	if password == "" {
		password = emptyPepper
	}
	password += pepper
	return pbkdf2.Key([]byte(password), kdfSalt, iterations, keyLen, sha256.New)
}

// DerivePassword derives a password of the given length (in characters)
// from password. Every character is in the range U+0000 to U+00FF.
func DerivePassword(password string, length int) string {
	key := DeriveKeyBytes(password, length)
	runes := make([]rune, len(key))
	for i, b := range key {
		runes[i] = rune(b)
	}
	clear(key)
	return string(runes)
}
