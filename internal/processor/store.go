package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/picoin-tech/picoin-core/internal/storage"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

var prefixTx = []byte("x/") // x/<txID(64)> -> sealed Record JSON

// Record is the journaled form of a settled transaction.
type Record struct {
	ID        types.TxID   `json:"id"`
	Sender    string       `json:"sender"`
	Receiver  string       `json:"receiver"`
	Amount    types.Amount `json:"amount"`
	Origin    types.Origin `json:"origin"`
	CreatedAt time.Time    `json:"created_at"`
	SettledAt time.Time    `json:"settled_at"`
}

// Store journals settled transactions. It is also the default Settler:
// settlement bookkeeping is the journal write.
type Store struct {
	db storage.DB
}

// NewStore creates a settlement journal over the given database.
func NewStore(db storage.DB) *Store {
	return &Store{db: db}
}

// Settle writes the settlement record for a verified transaction. Honors
// context cancellation only before the write begins; a settlement that has
// started runs to completion.
func (s *Store) Settle(ctx context.Context, t *Transaction) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return s.Put(t)
}

// Put stores a settlement record for the transaction.
func (s *Store) Put(t *Transaction) error {
	rec := Record{
		ID:        t.ID,
		Sender:    t.Sender,
		Receiver:  t.Receiver,
		Amount:    t.Amount,
		Origin:    t.Origin,
		CreatedAt: t.CreatedAt,
		SettledAt: time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("record marshal: %w", err)
	}
	return s.db.Put(txKey(t.ID), storage.Seal(data))
}

// Get retrieves a settlement record by transaction ID.
func (s *Store) Get(id types.TxID) (*Record, error) {
	raw, err := s.db.Get(txKey(id))
	if err != nil {
		return nil, fmt.Errorf("record get: %w", err)
	}
	data, err := storage.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("record unmarshal: %w", err)
	}
	return &rec, nil
}

// Has checks if a settlement record exists.
func (s *Store) Has(id types.TxID) (bool, error) {
	return s.db.Has(txKey(id))
}

// ForEach iterates over all settlement records. Corrupt records are
// skipped. Return a non-nil error from fn to stop iteration early.
func (s *Store) ForEach(fn func(*Record) error) error {
	return s.db.ForEach(prefixTx, func(key, value []byte) error {
		data, err := storage.Open(value)
		if err != nil {
			return nil // Corrupt record, skip.
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil
		}
		return fn(&rec)
	})
}

func txKey(id types.TxID) []byte {
	key := make([]byte, len(prefixTx)+types.DigestSize)
	copy(key, prefixTx)
	copy(key[len(prefixTx):], id[:])
	return key
}
