package easyecies

import (
	"crypto/sha256"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ripemd160"
)

// fingerprintVersion is the leading byte of a decoded fingerprint.
const fingerprintVersion = 0x45

// Hash256 returns sha256(sha256(data)).
func Hash256(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// Hash160 returns ripemd160(sha256(data)).
func Hash160(data []byte) []byte {
	h := sha256.Sum256(data)
	r := ripemd160.New()
	r.Write(h[:])
	return r.Sum(nil)
}

// Fingerprint returns a short printable identifier of the key: base58 of
// version || Hash160(compressed key) || checksum, where the checksum is the
// first four bytes of Hash256 over the preceding bytes.
func (pbk *PublicKey) Fingerprint() string {
	payload := append([]byte{fingerprintVersion}, Hash160(pbk.CompressedBytes())...)
	payload = append(payload, Hash256(payload)[:4]...)
	return base58.Encode(payload)
}

// CheckFingerprint reports whether s is a well formed fingerprint.
func CheckFingerprint(s string) bool {
	b := base58.Decode(s)
	if len(b) != 1+20+4 || b[0] != fingerprintVersion {
		return false
	}
	sum := Hash256(b[:21])
	for i := 0; i < 4; i++ {
		if sum[i] != b[21+i] {
			return false
		}
	}
	return true
}
