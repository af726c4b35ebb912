package easyecies

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"
)

const (
	// KDFDigestBits is the output size of the key derivation digest, the same
	// for every key size.
	KDFDigestBits = 512

	// CipherKeyBits is the AES key size used by the engine.
	CipherKeyBits = 256
)

// Params selects the digest, MAC and cipher sizes used with keys of
// a given size. MAC key length is the block size of the MAC digest.
type Params struct {
	KeySize       int
	KDFDigestBits int
	MACDigestBits int
	MACKeyBits    int
	CipherKeyBits int

	newMAC func() hash.Hash
}

// NewKDFHash returns a new hash for the key derivation function.
func (p Params) NewKDFHash() hash.Hash {
	return sha3.New512()
}

// NewMACHash returns a new hash for the HMAC. The tag is truncated to
// MACDigestBits.
func (p Params) NewMACHash() hash.Hash {
	return p.newMAC()
}

// MACKeyLen returns the MAC key length in bytes.
func (p Params) MACKeyLen() int {
	return p.MACKeyBits / 8
}

// TagLen returns the MAC tag length in bytes.
func (p Params) TagLen() int {
	return p.MACDigestBits / 8
}

// CipherKeyLen returns the cipher key length in bytes.
func (p Params) CipherKeyLen() int {
	return p.CipherKeyBits / 8
}

var paramsTable = map[int]Params{
	224: {
		KeySize:       224,
		KDFDigestBits: KDFDigestBits,
		MACDigestBits: 224,
		MACKeyBits:    1024,
		CipherKeyBits: CipherKeyBits,
		newMAC:        sha512.New512_224,
	},
	256: {
		KeySize:       256,
		KDFDigestBits: KDFDigestBits,
		MACDigestBits: 256,
		MACKeyBits:    512,
		CipherKeyBits: CipherKeyBits,
		newMAC:        sha256.New,
	},
	// The tag is plain SHA-512 HMAC output truncated to 320 bits. This is
	// not SHA-512/320 from FIPS 180-4, which uses its own initial hash
	// value and gives different tags.
	320: {
		KeySize:       320,
		KDFDigestBits: KDFDigestBits,
		MACDigestBits: 320,
		MACKeyBits:    1024,
		CipherKeyBits: CipherKeyBits,
		newMAC:        sha512.New,
	},
	384: {
		KeySize:       384,
		KDFDigestBits: KDFDigestBits,
		MACDigestBits: 384,
		MACKeyBits:    832,
		CipherKeyBits: CipherKeyBits,
		newMAC:        sha3.New384,
	},
	512: {
		KeySize:       512,
		KDFDigestBits: KDFDigestBits,
		MACDigestBits: 512,
		MACKeyBits:    576,
		CipherKeyBits: CipherKeyBits,
		newMAC:        sha3.New512,
	},
}

// ParamsFor returns the parameters for the given key size. Unknown key sizes
// get the 512 bit record. Use LookupParams to reject them instead.
func ParamsFor(keySize int) Params {
	if p, ok := paramsTable[keySize]; ok {
		return p
	}
	return paramsTable[512]
}

// LookupParams returns the parameters for the given key size, and false if
// the key size is not in the table.
func LookupParams(keySize int) (Params, bool) {
	p, ok := paramsTable[keySize]
	return p, ok
}
