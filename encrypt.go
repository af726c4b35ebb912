package easyecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// derivationParam is mixed into the key derivation, encodingParam into the
// MAC. Both are fixed, changing either breaks every existing envelope.
var (
	derivationParam = []byte{
		0xb0, 0x15, 0x6a, 0x6d, 0x51, 0x84, 0x34, 0x0b, 0xd4, 0x68, 0x40, 0x14, 0x1e, 0x0f, 0x7d, 0xe6,
		0x22, 0x18, 0xee, 0x00, 0xc4, 0x90, 0x11, 0x07, 0xe8, 0x83, 0x61, 0xc0, 0x34, 0xd8, 0xf0, 0xe5,
		0xd2, 0xa1, 0xc1, 0x28, 0x61, 0xb8, 0x0a, 0x9a, 0x19, 0x36, 0x81, 0x1e, 0xbc, 0xae, 0x02, 0x77,
		0xa5, 0x52, 0x7b, 0xd9, 0xc5, 0x54, 0x77, 0x12, 0xc1, 0x83, 0x78, 0x1e, 0x61, 0x72, 0x4e, 0x83,
	}
	encodingParam = []byte{
		0x22, 0x68, 0xb4, 0xb8, 0xf1, 0x32, 0xc5, 0xb4, 0x66, 0x05, 0xd1, 0x9f, 0xc8, 0x5e, 0x13, 0xdb,
		0x2c, 0xdf, 0x11, 0x8a, 0xc8, 0xf3, 0x7d, 0x60, 0x4e, 0x21, 0xa9, 0xad, 0x32, 0x92, 0x23, 0x44,
		0x25, 0xb1, 0x00, 0xe9, 0xbb, 0x6c, 0x01, 0x18, 0x87, 0x8e, 0x4c, 0x2c, 0xc0, 0xb9, 0x84, 0xf0,
		0x92, 0xf4, 0x51, 0x24, 0x3a, 0x77, 0xe6, 0x32, 0x44, 0x0b, 0x11, 0x04, 0x44, 0xf1, 0x65, 0x88,
	}
)

// EncryptEphemeral encrypts plaintext to the receiver's public key, using
// a fresh ephemeral key pair drawn from crypto/rand.
//
// The result is V || C || T, where V is the compressed ephemeral public key,
// C is the AES-256-CTR ciphertext (same length as plaintext) and T is the
// truncated HMAC tag over C.
func EncryptEphemeral(plaintext []byte, receiver *PublicKey) ([]byte, error) {
	return EncryptEphemeralWithRand(rand.Reader, plaintext, receiver)
}

// EncryptEphemeralWithRand is like EncryptEphemeral, but takes the ephemeral
// key from the given random source.
func EncryptEphemeralWithRand(random io.Reader, plaintext []byte, receiver *PublicKey) ([]byte, error) {
	if random == nil {
		return nil, fmt.Errorf("random source must not be nil")
	}
	if receiver == nil || receiver.curve == nil {
		return nil, ErrInvalidPublicKey
	}
	params, ok := LookupParams(receiver.curve.KeySize())
	if !ok {
		return nil, fmt.Errorf("%w: no parameters for key size %d", ErrDomainNotFound, receiver.curve.KeySize())
	}

	ephemeral, err := NewPrivateKey(receiver.curve, random)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	defer ephemeral.Destroy()

	v := ephemeral.PublicKey().CompressedBytes()
	z, err := ephemeral.sharedSecret(receiver)
	if err != nil {
		return nil, err
	}
	defer clear(z)

	encKey, macKey := deriveKeys(params, v, z)
	defer clear(encKey)
	defer clear(macKey)

	out := make([]byte, len(v)+len(plaintext)+params.TagLen())
	copy(out, v)
	c := out[len(v) : len(v)+len(plaintext)]
	if err := xorKeyStream(encKey, c, plaintext); err != nil {
		return nil, err
	}
	copy(out[len(v)+len(plaintext):], computeTag(params, macKey, c))
	return out, nil
}

// DecryptEphemeral decrypts the envelope produced by EncryptEphemeral using
// the receiver's private key. The tag is verified before anything is
// decrypted, a mismatch yields ErrAuthenticationFailure.
func DecryptEphemeral(envelope []byte, receiver *PrivateKey) ([]byte, error) {
	if receiver == nil || receiver.curve == nil {
		return nil, ErrInvalidPrivateKey
	}
	curve := receiver.curve
	params, ok := LookupParams(curve.KeySize())
	if !ok {
		return nil, fmt.Errorf("%w: no parameters for key size %d", ErrDomainNotFound, curve.KeySize())
	}

	vLen := curve.CompressedLen()
	tagLen := params.TagLen()
	if len(envelope) < vLen+tagLen {
		return nil, fmt.Errorf("%w: %d bytes, at least %d required", ErrMalformedEnvelope, len(envelope), vLen+tagLen)
	}
	v := envelope[:vLen]
	c := envelope[vLen : len(envelope)-tagLen]
	t := envelope[len(envelope)-tagLen:]

	ephemeral, err := NewPublicKeyFromBytes(curve, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	z, err := receiver.sharedSecret(ephemeral)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	defer clear(z)

	encKey, macKey := deriveKeys(params, v, z)
	defer clear(encKey)
	defer clear(macKey)

	if !hmac.Equal(computeTag(params, macKey, c), t) {
		return nil, ErrAuthenticationFailure
	}

	plaintext := make([]byte, len(c))
	if err := xorKeyStream(encKey, plaintext, c); err != nil {
		return nil, err
	}
	return plaintext, nil
}

// deriveKeys runs KDF2 over V || Z and splits the output into the cipher
// key and the MAC key.
func deriveKeys(params Params, v, z []byte) (encKey, macKey []byte) {
	secret := make([]byte, 0, len(v)+len(z))
	secret = append(secret, v...)
	secret = append(secret, z...)
	defer clear(secret)

	k := kdf2(params.NewKDFHash, secret, derivationParam, params.CipherKeyLen()+params.MACKeyLen())
	return k[:params.CipherKeyLen()], k[params.CipherKeyLen():]
}

// xorKeyStream applies AES-256-CTR. The key is never reused, so the IV is
// all zeros.
func xorKeyStream(key, dst, src []byte) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %v", err)
	}
	iv := make([]byte, aes.BlockSize)
	cipher.NewCTR(block, iv).XORKeyStream(dst, src)
	return nil
}

// computeTag returns HMAC(macKey, c || encodingParam || bitlen(encodingParam)),
// truncated to the tag length.
func computeTag(params Params, macKey, c []byte) []byte {
	mac := hmac.New(params.NewMACHash, macKey)
	mac.Write(c)
	mac.Write(encodingParam)
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(encodingParam))*8)
	mac.Write(l[:])
	return mac.Sum(nil)[:params.TagLen()]
}
