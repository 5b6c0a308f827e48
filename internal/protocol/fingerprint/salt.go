package fingerprint

import (
	"encoding/binary"
	"fmt"
)

// SaltSize is the encoded length of a salt.
const SaltSize = 8

// EncodeUint64 returns v as 8 little-endian bytes.
func EncodeUint64(v uint64) [SaltSize]byte {
	var out [SaltSize]byte
	binary.LittleEndian.PutUint64(out[:], v)
	return out
}

// DecodeUint64 reads a little-endian u64. b must be exactly 8 bytes.
func DecodeUint64(b []byte) (uint64, error) {
	if len(b) != SaltSize {
		return 0, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidLength, SaltSize, len(b))
	}
	return binary.LittleEndian.Uint64(b), nil
}
