package keystore

import (
	"encoding/binary"
	"fmt"
)

// SecretKey is raw key material tagged with its algorithm name. For
// elliptic curve keys the algorithm is the curve identifier.
type SecretKey struct {
	Algorithm string
	Encoded   []byte
}

// MarshalBinary encodes the key as
// [uint32 little endian len(algorithm)] [algorithm] [encoded key].
func (k SecretKey) MarshalBinary() ([]byte, error) {
	out := make([]byte, 4, 4+len(k.Algorithm)+len(k.Encoded))
	binary.LittleEndian.PutUint32(out, uint32(len(k.Algorithm)))
	out = append(out, k.Algorithm...)
	out = append(out, k.Encoded...)
	return out, nil
}

// UnmarshalBinary decodes a key encoded by MarshalBinary.
func (k *SecretKey) UnmarshalBinary(b []byte) error {
	if len(b) < 4 {
		return fmt.Errorf("%w: key entry too short", ErrKeyStorage)
	}
	n := binary.LittleEndian.Uint32(b)
	if uint64(n) > uint64(len(b)-4) {
		return fmt.Errorf("%w: bad algorithm length %d", ErrKeyStorage, n)
	}
	k.Algorithm = string(b[4 : 4+n])
	k.Encoded = append([]byte(nil), b[4+n:]...)
	return nil
}
