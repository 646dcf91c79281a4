// Package crypto provides hashing primitives for picoin-core.
package crypto

import (
	"errors"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"

	"github.com/picoin-tech/picoin-core/pkg/types"
)

// ErrInvalidInput indicates malformed input to the hash provider.
var ErrInvalidInput = errors.New("hash input is nil")

// Digest computes the SHA3-512 digest of the input data. This is the
// identifier digest: coin IDs and transaction IDs are rendered from it as
// 128 hex characters. Deterministic for equal input. A nil slice is
// rejected; an empty slice is valid input.
func Digest(data []byte) (types.Digest, error) {
	if data == nil {
		return types.Digest{}, ErrInvalidInput
	}
	return sha3.Sum512(data), nil
}

// Checksum computes a BLAKE3-256 checksum of the input data. Used by the
// journal stores to detect corrupt records on read.
func Checksum(data []byte) [32]byte {
	return blake3.Sum256(data)
}
