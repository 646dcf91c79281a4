// Package types defines core primitive types for picoin-core.
package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DigestSize is the length of a digest in bytes (512-bit).
const DigestSize = 64

// HexDigestLen is the length of a hex-encoded digest.
const HexDigestLen = DigestSize * 2

// Digest represents a 512-bit digest value.
type Digest [DigestSize]byte

// CoinID identifies a minted coin, derived at issuance.
type CoinID Digest

// TxID identifies a transaction, derived at construction.
type TxID Digest

// IsZero returns true if the digest is all zeros.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String returns the hex-encoded digest (128 characters).
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Bytes returns a copy of the digest as a byte slice.
func (d Digest) Bytes() []byte {
	b := make([]byte, DigestSize)
	copy(b, d[:])
	return b
}

// MarshalJSON encodes the digest as a hex string.
func (d Digest) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a hex string into a digest.
func (d *Digest) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Digest{}
		return nil
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid digest hex: %w", err)
	}
	if len(decoded) != DigestSize {
		return fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(decoded))
	}
	copy(d[:], decoded)
	return nil
}

// HexToDigest converts a hex string to a Digest.
// Returns an error if the string is not exactly 128 hex characters.
func HexToDigest(s string) (Digest, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Digest{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != DigestSize {
		return Digest{}, fmt.Errorf("digest must be %d bytes, got %d", DigestSize, len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// WellFormedID reports whether s has the shape of a digest-derived
// identifier: exactly 128 hex characters.
func WellFormedID(s string) bool {
	_, err := HexToDigest(s)
	return err == nil
}

// IsZero returns true if the coin ID is all zeros.
func (c CoinID) IsZero() bool {
	return Digest(c).IsZero()
}

// String returns the hex-encoded coin ID.
func (c CoinID) String() string {
	return Digest(c).String()
}

// MarshalJSON encodes the coin ID as a hex string.
func (c CoinID) MarshalJSON() ([]byte, error) {
	return Digest(c).MarshalJSON()
}

// UnmarshalJSON decodes a hex string into a coin ID.
func (c *CoinID) UnmarshalJSON(data []byte) error {
	return (*Digest)(c).UnmarshalJSON(data)
}

// IsZero returns true if the transaction ID is all zeros.
func (t TxID) IsZero() bool {
	return Digest(t).IsZero()
}

// String returns the hex-encoded transaction ID.
func (t TxID) String() string {
	return Digest(t).String()
}

// MarshalJSON encodes the transaction ID as a hex string.
func (t TxID) MarshalJSON() ([]byte, error) {
	return Digest(t).MarshalJSON()
}

// UnmarshalJSON decodes a hex string into a transaction ID.
func (t *TxID) UnmarshalJSON(data []byte) error {
	return (*Digest)(t).UnmarshalJSON(data)
}
