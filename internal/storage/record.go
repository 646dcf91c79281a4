package storage

import (
	"errors"

	"github.com/picoin-tech/picoin-core/pkg/crypto"
)

// ErrCorruptRecord indicates a stored record whose checksum does not match
// its payload.
var ErrCorruptRecord = errors.New("corrupt record")

const checksumSize = 32

// Seal prepends a BLAKE3 checksum to a record payload. Journal stores seal
// every record so corruption is detected on read rather than surfacing as
// garbage JSON.
func Seal(payload []byte) []byte {
	sum := crypto.Checksum(payload)
	out := make([]byte, checksumSize+len(payload))
	copy(out, sum[:])
	copy(out[checksumSize:], payload)
	return out
}

// Open verifies and strips the checksum from a sealed record, returning the
// payload. Returns ErrCorruptRecord if the record is truncated or the
// checksum does not match.
func Open(sealed []byte) ([]byte, error) {
	if len(sealed) < checksumSize {
		return nil, ErrCorruptRecord
	}
	payload := sealed[checksumSize:]
	sum := crypto.Checksum(payload)
	for i := 0; i < checksumSize; i++ {
		if sealed[i] != sum[i] {
			return nil, ErrCorruptRecord
		}
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}
