package ledger

import (
	"testing"
	"time"

	"github.com/picoin-tech/picoin-core/internal/storage"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

func testCoin(id byte, amount types.Amount) *Coin {
	var cid types.CoinID
	cid[0] = id
	return &Coin{
		ID:       cid,
		Amount:   amount,
		Origin:   types.OriginMining,
		IssuedAt: time.Unix(1700000000, 0).UTC(),
	}
}

func TestStore_PutGetHas(t *testing.T) {
	store := NewStore(storage.NewMemory())
	coin := testCoin(0x01, 500)

	has, err := store.Has(coin.ID)
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if has {
		t.Fatal("expected Has=false before Put")
	}

	if err := store.Put(coin); err != nil {
		t.Fatalf("Put: %v", err)
	}

	has, err = store.Has(coin.ID)
	if err != nil {
		t.Fatalf("Has: %v", err)
	}
	if !has {
		t.Fatal("expected Has=true after Put")
	}

	got, err := store.Get(coin.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != coin.ID {
		t.Errorf("ID = %s, want %s", got.ID, coin.ID)
	}
	if got.Amount != coin.Amount {
		t.Errorf("Amount = %d, want %d", got.Amount, coin.Amount)
	}
	if got.Origin != coin.Origin {
		t.Errorf("Origin = %q, want %q", got.Origin, coin.Origin)
	}
	if !got.IssuedAt.Equal(coin.IssuedAt) {
		t.Errorf("IssuedAt = %v, want %v", got.IssuedAt, coin.IssuedAt)
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	store := NewStore(storage.NewMemory())
	if _, err := store.Get(types.CoinID{0xFF}); err == nil {
		t.Fatal("expected error for non-existent coin")
	}
}

func TestStore_List(t *testing.T) {
	store := NewStore(storage.NewMemory())

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("List on empty store = %d entries", len(entries))
	}

	for i := byte(1); i <= 3; i++ {
		if err := store.Put(testCoin(i, types.Amount(i)*100)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	entries, err = store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("List = %d entries, want 3", len(entries))
	}
}

func TestStore_SkipsCorruptRecords(t *testing.T) {
	db := storage.NewMemory()
	store := NewStore(db)

	if err := store.Put(testCoin(0x01, 100)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Write a record that fails the checksum check.
	var bad types.CoinID
	bad[0] = 0x02
	key := append([]byte("c/"), bad[:]...)
	if err := db.Put(key, []byte("not a sealed record")); err != nil {
		t.Fatalf("raw Put: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List = %d entries, want 1 (corrupt skipped)", len(entries))
	}

	if _, err := store.Get(bad); err == nil {
		t.Error("Get on corrupt record should fail")
	}
}
