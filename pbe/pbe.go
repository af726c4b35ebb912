package pbe

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

const (
	saltPrefixLen  = 12
	pbeIterations  = 1 << 12
	cipherKeyLen   = 32
	macKeyLen      = 32
	tagLen         = sha256.Size
	minCipherBytes = saltPrefixLen + aes.BlockSize + tagLen
)

// ErrInvalidCipherBytes is returned by Decrypt for any input that does not
// decrypt under the given password. The cause is never reported.
var ErrInvalidCipherBytes = fmt.Errorf("invalid cipher bytes")

// saltSuffix completes the random salt prefix to a 64 byte salt.
var saltSuffix = []byte{
	0x34, 0x00, 0xa0, 0x66, 0x54, 0xde, 0x79, 0x88, 0x66, 0x75, 0xc4, 0xec, 0xc1, 0x59, 0xdd, 0x58,
	0x3b, 0x2e, 0x37, 0x24, 0xb0, 0x76, 0xd0, 0x04, 0xb6, 0x43, 0xf8, 0x8d, 0x88, 0x5c, 0x84, 0x05,
	0xd8, 0x1e, 0xd3, 0xa0, 0xab, 0x1b, 0xe9, 0x24, 0xa7, 0xa6, 0x9b, 0xd9, 0x8d, 0xd2, 0x05, 0x7c,
	0xf0, 0x5f, 0xfc, 0x1d,
}

type pbeKeys struct {
	key    []byte
	iv     []byte
	macKey []byte
}

func deriveKeys(prefix []byte, password string) *pbeKeys {
	salt := make([]byte, 0, len(prefix)+len(saltSuffix))
	salt = append(salt, prefix...)
	salt = append(salt, saltSuffix...)
	pwd := bmpString(password)
	defer clear(pwd)
	return &pbeKeys{
		key:    pkcs12Derive(sha256.New, pkcs12KeyID, salt, pwd, pbeIterations, cipherKeyLen),
		iv:     pkcs12Derive(sha256.New, pkcs12IVID, salt, pwd, pbeIterations, aes.BlockSize),
		macKey: pkcs12Derive(sha256.New, pkcs12MACID, salt, pwd, pbeIterations, macKeyLen),
	}
}

func (k *pbeKeys) destroy() {
	clear(k.key)
	clear(k.iv)
	clear(k.macKey)
}

func (k *pbeKeys) tag(prefix, ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, k.macKey)
	mac.Write(prefix)
	mac.Write(ciphertext)
	return mac.Sum(nil)
}

// Encrypt encrypts b under password with AES-256-CBC. Key and IV are derived
// with the PKCS#12 scheme from the password and a salt made of 12 random
// bytes and a fixed suffix. The result is
// salt prefix || ciphertext || HMAC-SHA256(salt prefix || ciphertext).
func Encrypt(b []byte, password string) ([]byte, error) {
	prefix := make([]byte, saltPrefixLen)
	if _, err := rand.Read(prefix); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %v", err)
	}
	keys := deriveKeys(prefix, password)
	defer keys.destroy()

	block, err := aes.NewCipher(keys.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %v", err)
	}
	padded := pkcs7Pad(b, aes.BlockSize)
	defer clear(padded)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, keys.iv).CryptBlocks(ciphertext, padded)

	out := make([]byte, 0, saltPrefixLen+len(ciphertext)+tagLen)
	out = append(out, prefix...)
	out = append(out, ciphertext...)
	out = append(out, keys.tag(prefix, ciphertext)...)
	return out, nil
}

// Decrypt reverses Encrypt. Any failure, including a wrong password,
// returns ErrInvalidCipherBytes.
func Decrypt(b []byte, password string) ([]byte, error) {
	if len(b) < minCipherBytes || (len(b)-saltPrefixLen-tagLen)%aes.BlockSize != 0 {
		return nil, ErrInvalidCipherBytes
	}
	prefix := b[:saltPrefixLen]
	ciphertext := b[saltPrefixLen : len(b)-tagLen]
	tag := b[len(b)-tagLen:]

	keys := deriveKeys(prefix, password)
	defer keys.destroy()

	if !hmac.Equal(keys.tag(prefix, ciphertext), tag) {
		return nil, ErrInvalidCipherBytes
	}

	block, err := aes.NewCipher(keys.key)
	if err != nil {
		return nil, ErrInvalidCipherBytes
	}
	padded := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, keys.iv).CryptBlocks(padded, ciphertext)
	plain, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok {
		clear(padded)
		return nil, ErrInvalidCipherBytes
	}
	return plain, nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(bytes.Clone(b), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, bool) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, false
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, false
		}
	}
	return b[:len(b)-n], true
}
