package crypto

import (
	"errors"
	"testing"

	"github.com/picoin-tech/picoin-core/pkg/types"
)

func TestDigest_Deterministic(t *testing.T) {
	data := []byte("deterministic test input")

	d1, err := Digest(data)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	d2, err := Digest(data)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if d1 != d2 {
		t.Errorf("Digest is not deterministic: %s != %s", d1, d2)
	}
}

func TestDigest_HexLength(t *testing.T) {
	d, err := Digest([]byte("picoin"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if len(d.String()) != types.HexDigestLen {
		t.Errorf("hex length = %d, want %d", len(d.String()), types.HexDigestLen)
	}
}

func TestDigest_DifferentInputs(t *testing.T) {
	d1, err := Digest([]byte("input one"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	d2, err := Digest([]byte("input two"))
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if d1 == d2 {
		t.Error("different inputs produced identical digests")
	}
}

func TestDigest_NilInput(t *testing.T) {
	_, err := Digest(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Digest(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestDigest_EmptyInput(t *testing.T) {
	d, err := Digest([]byte{})
	if err != nil {
		t.Fatalf("Digest(empty) error = %v, want nil", err)
	}
	if d.IsZero() {
		t.Error("Digest(empty) should not be the zero digest")
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	data := []byte("journal record")
	c1 := Checksum(data)
	c2 := Checksum(data)
	if c1 != c2 {
		t.Error("Checksum is not deterministic")
	}

	c3 := Checksum([]byte("other record"))
	if c1 == c3 {
		t.Error("different inputs produced identical checksums")
	}
}
