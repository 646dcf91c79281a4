package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/picoin-tech/picoin-core/internal/log"
	"github.com/picoin-tech/picoin-core/internal/verify"
)

// Settler finalizes a verified transaction: ledger bookkeeping or an
// external settlement call. A settlement error sends the transaction to
// failed; the processor never retries — resubmission is the caller's
// responsibility, with a fresh transaction.
type Settler interface {
	Settle(ctx context.Context, t *Transaction) error
}

// Dashboard receives completed transactions. Notification is
// fire-and-forget: a dashboard failure never changes transaction status.
type Dashboard interface {
	LogTransaction(t *Transaction)
}

// Processor runs transactions through verification and settlement. It
// holds no supply bookkeeping of its own — the ledger's atomic mint is the
// only gate on supply, so transaction-level and ledger-level accounting
// cannot diverge.
type Processor struct {
	verifier *verify.Verifier
	settler  Settler

	mu        sync.RWMutex
	dashboard Dashboard

	logger zerolog.Logger
}

// New creates a processor with the given origin gate and settler. A nil
// settler settles trivially.
func New(v *verify.Verifier, settler Settler) *Processor {
	if v == nil {
		v = verify.New(nil)
	}
	if settler == nil {
		settler = noopSettler{}
	}
	return &Processor{
		verifier: v,
		settler:  settler,
		logger:   log.Processor,
	}
}

// SetDashboard installs the dashboard collaborator.
func (p *Processor) SetDashboard(d Dashboard) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dashboard = d
}

// Process drives a single transaction to a terminal state. Returns true
// iff the terminal state is completed. Verification and settlement
// failures are recorded as failed status and returned as false, not as
// errors; the error return is reserved for hard faults — a nil
// transaction, or an attempt to process one that is already terminal or
// currently in flight.
func (p *Processor) Process(ctx context.Context, t *Transaction) (bool, error) {
	if t == nil {
		return false, fmt.Errorf("%w: nil transaction", ErrInvalidTransaction)
	}

	// One goroutine owns a transaction's transitions at a time.
	if !t.inflight.CompareAndSwap(false, true) {
		return false, fmt.Errorf("%w: transaction %s is already being processed", ErrInvalidTransition, t.ID)
	}
	defer t.inflight.Store(false)

	if t.Status().Terminal() {
		return false, fmt.Errorf("%w: transaction %s is %s", ErrInvalidTransition, t.ID, t.Status())
	}

	// Verification gate.
	if !p.verifier.VerifyOrigin(t.Origin, t.ID.String(), t.Amount) {
		if err := t.fail(ReasonOriginRejected); err != nil {
			return false, err
		}
		p.logger.Debug().
			Str("tx", t.ID.String()).
			Str("origin", t.Origin.String()).
			Msg("origin rejected")
		return false, nil
	}
	if err := t.transition(StatusVerified); err != nil {
		return false, err
	}

	// Settlement. Once begun, the transaction always reaches a terminal
	// state; cancellation mid-settlement is not supported.
	if err := p.settler.Settle(ctx, t); err != nil {
		if ferr := t.fail(fmt.Sprintf("%s: %v", ReasonSettlementFailed, err)); ferr != nil {
			return false, ferr
		}
		p.logger.Warn().
			Str("tx", t.ID.String()).
			Err(err).
			Msg("settlement failed")
		return false, nil
	}
	if err := t.transition(StatusCompleted); err != nil {
		return false, err
	}

	p.logger.Debug().
		Str("tx", t.ID.String()).
		Str("amount", t.Amount.String()).
		Str("sender", t.Sender).
		Str("receiver", t.Receiver).
		Msg("completed")

	p.mu.RLock()
	d := p.dashboard
	p.mu.RUnlock()
	if d != nil {
		go d.LogTransaction(t)
	}

	return true, nil
}

// ProcessBatch runs each transaction through the single-transaction state
// machine independently and concurrently. The result has the same length
// and order as the input; one transaction's failure does not abort or
// block the others. Hard faults on an item are logged and reported as
// false for that index.
func (p *Processor) ProcessBatch(ctx context.Context, txs []*Transaction) []bool {
	results := make([]bool, len(txs))

	var wg sync.WaitGroup
	for i, t := range txs {
		wg.Add(1)
		go func(i int, t *Transaction) {
			defer wg.Done()
			ok, err := p.Process(ctx, t)
			if err != nil {
				p.logger.Warn().Int("index", i).Err(err).Msg("batch item fault")
				return
			}
			results[i] = ok
		}(i, t)
	}
	wg.Wait()

	return results
}

// noopSettler settles without side effects.
type noopSettler struct{}

func (noopSettler) Settle(ctx context.Context, t *Transaction) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
