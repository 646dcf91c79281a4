// Package processor drives transactions through their lifecycle: pending,
// verified, then a terminal completed or failed.
package processor

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/picoin-tech/picoin-core/pkg/crypto"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Processor errors.
var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Failure reasons recorded on terminal failed transactions. The reason is
// preserved for inspection; the original design collapsed both cases into a
// bare failed status.
const (
	ReasonOriginRejected   = "origin rejected"
	ReasonSettlementFailed = "settlement failed"
)

// Status is a transaction lifecycle state.
type Status uint8

const (
	StatusPending Status = iota
	StatusVerified
	StatusCompleted
	StatusFailed
)

// String returns the status label.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusVerified:
		return "verified"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Terminal returns true for completed and failed: no further transitions
// are permitted from either.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Transaction records a transfer of value between two parties. Fields
// other than the status are immutable after construction; the status is
// written only by the processor goroutine that owns the transaction.
type Transaction struct {
	ID        types.TxID
	Sender    string
	Receiver  string
	Amount    types.Amount
	Origin    types.Origin
	CreatedAt time.Time

	mu         sync.Mutex
	status     Status
	failReason string

	inflight atomic.Bool
}

// NewTransaction creates a pending transaction. Construction fails with
// ErrInvalidTransaction for a zero amount or missing parties; the declared
// origin is not policy-checked here — that is the processor's verification
// step, which produces a failed status rather than a construction error.
func NewTransaction(sender, receiver string, amount types.Amount, origin types.Origin) (*Transaction, error) {
	if sender == "" {
		return nil, fmt.Errorf("%w: sender is empty", ErrInvalidTransaction)
	}
	if receiver == "" {
		return nil, fmt.Errorf("%w: receiver is empty", ErrInvalidTransaction)
	}
	if amount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}

	created := time.Now().UTC()
	id, err := deriveTxID(sender, receiver, amount, origin, created)
	if err != nil {
		return nil, fmt.Errorf("derive tx id: %w", err)
	}

	return &Transaction{
		ID:        id,
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		Origin:    origin,
		CreatedAt: created,
		status:    StatusPending,
	}, nil
}

// Status returns the current lifecycle state.
func (t *Transaction) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// FailReason returns the recorded failure reason, empty unless the
// transaction is failed.
func (t *Transaction) FailReason() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failReason
}

// transition moves the transaction to the given state, enforcing the
// lifecycle: pending -> verified -> completed, with failed reachable from
// pending (verification) and verified (settlement). Terminal states admit
// nothing.
func (t *Transaction) transition(to Status) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	allowed := false
	switch t.status {
	case StatusPending:
		allowed = to == StatusVerified || to == StatusFailed
	case StatusVerified:
		allowed = to == StatusCompleted || to == StatusFailed
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.status, to)
	}
	t.status = to
	return nil
}

// fail marks the transaction failed with the given reason.
func (t *Transaction) fail(reason string) error {
	if err := t.transition(StatusFailed); err != nil {
		return err
	}
	t.mu.Lock()
	t.failReason = reason
	t.mu.Unlock()
	return nil
}

// deriveTxID computes a transaction identifier from the transfer
// parameters, the creation time, and a random freshness token.
func deriveTxID(sender, receiver string, amount types.Amount, origin types.Origin, created time.Time) (types.TxID, error) {
	nonce := uuid.New()

	buf := make([]byte, 0, len(sender)+len(receiver)+len(origin)+len(nonce)+16)
	buf = append(buf, sender...)
	buf = append(buf, 0)
	buf = append(buf, receiver...)
	buf = append(buf, 0)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(amount))
	buf = append(buf, origin...)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(created.UnixNano()))
	buf = append(buf, nonce[:]...)

	d, err := crypto.Digest(buf)
	if err != nil {
		return types.TxID{}, err
	}
	return types.TxID(d), nil
}
