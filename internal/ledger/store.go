package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/picoin-tech/picoin-core/internal/storage"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

var prefixCoin = []byte("c/") // c/<coinID(64)> -> sealed Coin JSON

// Store journals minted coins. An observer of the ledger, not part of its
// invariant: a failed journal write never unwinds a mint.
type Store struct {
	db storage.DB
}

// NewStore creates a mint journal over the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// Put stores a minted coin record.
func (s *Store) Put(c *Coin) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("coin marshal: %w", err)
	}
	return s.db.Put(coinKey(c.ID), storage.Seal(data))
}

// Get retrieves a minted coin record by ID.
func (s *Store) Get(id types.CoinID) (*Coin, error) {
	raw, err := s.db.Get(coinKey(id))
	if err != nil {
		return nil, fmt.Errorf("coin get: %w", err)
	}
	data, err := storage.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("coin %s: %w", id, err)
	}
	var c Coin
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("coin unmarshal: %w", err)
	}
	return &c, nil
}

// Has checks if a coin record exists.
func (s *Store) Has(id types.CoinID) (bool, error) {
	return s.db.Has(coinKey(id))
}

// ForEach iterates over all journaled coins. Corrupt records are skipped.
// Return a non-nil error from fn to stop iteration early.
func (s *Store) ForEach(fn func(*Coin) error) error {
	return s.db.ForEach(prefixCoin, func(key, value []byte) error {
		data, err := storage.Open(value)
		if err != nil {
			return nil // Corrupt record, skip.
		}
		var c Coin
		if err := json.Unmarshal(data, &c); err != nil {
			return nil
		}
		return fn(&c)
	})
}

// List returns all journaled coins.
func (s *Store) List() ([]*Coin, error) {
	var coins []*Coin
	err := s.ForEach(func(c *Coin) error {
		coins = append(coins, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if coins == nil {
		coins = []*Coin{}
	}
	return coins, nil
}

func coinKey(id types.CoinID) []byte {
	key := make([]byte, len(prefixCoin)+types.DigestSize)
	copy(key, prefixCoin)
	copy(key[len(prefixCoin):], id[:])
	return key
}
