package storage

import (
	"testing"
)

func TestPrefixDB_Isolation(t *testing.T) {
	inner := NewMemory()
	a := NewPrefixDB(inner, []byte("ledger/"))
	b := NewPrefixDB(inner, []byte("proc/"))

	if err := a.Put([]byte("k"), []byte("from-a")); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := b.Put([]byte("k"), []byte("from-b")); err != nil {
		t.Fatalf("Put b: %v", err)
	}

	gotA, err := a.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get a: %v", err)
	}
	if string(gotA) != "from-a" {
		t.Errorf("a.Get = %q, want from-a", gotA)
	}

	gotB, err := b.Get([]byte("k"))
	if err != nil {
		t.Fatalf("Get b: %v", err)
	}
	if string(gotB) != "from-b" {
		t.Errorf("b.Get = %q, want from-b", gotB)
	}

	// Delete in one namespace must not touch the other.
	if err := a.Delete([]byte("k")); err != nil {
		t.Fatalf("Delete a: %v", err)
	}
	if _, err := a.Get([]byte("k")); err == nil {
		t.Error("a.Get should fail after delete")
	}
	if _, err := b.Get([]byte("k")); err != nil {
		t.Errorf("b.Get should still succeed: %v", err)
	}
}

func TestPrefixDB_ForEach_StripsPrefix(t *testing.T) {
	inner := NewMemory()
	p := NewPrefixDB(inner, []byte("ns/"))

	if err := p.Put([]byte("c/1"), []byte("v1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := p.Put([]byte("c/2"), []byte("v2")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := inner.Put([]byte("other/c/3"), []byte("v3")); err != nil {
		t.Fatalf("Put inner: %v", err)
	}

	seen := make(map[string]string)
	err := p.ForEach([]byte("c/"), func(key, value []byte) error {
		seen[string(key)] = string(value)
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("ForEach visited %d keys, want 2", len(seen))
	}
	if seen["c/1"] != "v1" || seen["c/2"] != "v2" {
		t.Errorf("unexpected keys/values: %v", seen)
	}
}
