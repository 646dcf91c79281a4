package storage

import (
	"fmt"
	"sync"
	"testing"
)

// dbTest exercises a DB implementation through the shared interface.
func dbTest(t *testing.T, db DB) {
	t.Helper()

	key := []byte("k/one")
	value := []byte("first value")

	// Missing key.
	if _, err := db.Get(key); err == nil {
		t.Fatal("expected error for missing key")
	}
	has, err := db.Has(key)
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if has {
		t.Fatal("expected Has=false before Put")
	}

	// Put then Get.
	if err := db.Put(key, value); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := db.Get(key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get = %q, want %q", got, value)
	}

	// Overwrite.
	if err := db.Put(key, []byte("second value")); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err = db.Get(key)
	if err != nil {
		t.Fatalf("Get after overwrite: %v", err)
	}
	if string(got) != "second value" {
		t.Errorf("Get after overwrite = %q", got)
	}

	// Delete.
	if err := db.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get(key); err == nil {
		t.Fatal("expected error after Delete")
	}
}

func TestMemoryDB(t *testing.T) {
	dbTest(t, NewMemory())
}

func TestMemoryDB_ForEach(t *testing.T) {
	db := NewMemory()
	for i := 0; i < 5; i++ {
		if err := db.Put([]byte(fmt.Sprintf("a/%d", i)), []byte("v")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	if err := db.Put([]byte("b/0"), []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	count := 0
	err := db.ForEach([]byte("a/"), func(key, value []byte) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if count != 5 {
		t.Errorf("ForEach visited %d keys, want 5", count)
	}
}

func TestMemoryDB_ConcurrentAccess(t *testing.T) {
	db := NewMemory()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := []byte(fmt.Sprintf("g%d/%d", g, i))
				if err := db.Put(key, []byte("v")); err != nil {
					t.Errorf("Put: %v", err)
					return
				}
				if _, err := db.Get(key); err != nil {
					t.Errorf("Get: %v", err)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestBadgerDB(t *testing.T) {
	db, err := NewBadger(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	defer db.Close()

	dbTest(t, db)
}

func TestBadgerDB_ForEach(t *testing.T) {
	db, err := NewBadger(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadger: %v", err)
	}
	defer db.Close()

	for i := 0; i < 3; i++ {
		if err := db.Put([]byte(fmt.Sprintf("x/%d", i)), []byte("v")); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	count := 0
	err = db.ForEach([]byte("x/"), func(key, value []byte) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if count != 3 {
		t.Errorf("ForEach visited %d keys, want 3", count)
	}
}
