// Package ledger implements the capped supply ledger: the single source of
// truth for how much has ever been minted.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/picoin-tech/picoin-core/internal/log"
	"github.com/picoin-tech/picoin-core/internal/verify"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Ledger errors.
var (
	ErrInvalidAmount     = errors.New("mint amount must be positive")
	ErrSupplyCapExceeded = errors.New("mint would exceed supply cap")
)

// RateProvider supplies the effective USD rate per whole coin. The pricing
// collaborator boundary: any positive rate is accepted, absence means the
// fixed constant.
type RateProvider interface {
	AdjustedValue() float64
}

// Ledger enforces the global supply cap. All coin creation funnels through
// Mint, whose check-and-increment runs under a single mutex: the issued
// total is the only shared mutable scalar in the core, and no coin is
// observable without its amount reflected in the total.
type Ledger struct {
	mu     sync.Mutex
	issued types.Amount
	seq    uint64

	cap      types.Amount
	verifier *verify.Verifier
	defRate  float64

	rates   RateProvider // optional
	journal *Store       // optional
	logger  zerolog.Logger
}

// New creates a ledger with the given cap and origin gate. A nil verifier
// falls back to the full declared origin set.
func New(cap types.Amount, v *verify.Verifier, defaultRate float64) *Ledger {
	if v == nil {
		v = verify.New(nil)
	}
	return &Ledger{
		cap:      cap,
		verifier: v,
		defRate:  defaultRate,
		logger:   log.Ledger,
	}
}

// SetRates installs a pricing collaborator for USD conversion.
func (l *Ledger) SetRates(r RateProvider) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rates = r
}

// SetJournal installs a mint journal. Journal failures are logged and
// never unwind a mint.
func (l *Ledger) SetJournal(s *Store) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.journal = s
}

// Mint creates a new coin against the cap. Fails with ErrInvalidOrigin for
// origins outside the approved set, ErrInvalidAmount for a zero amount,
// and ErrSupplyCapExceeded when the cap would be breached — in which case
// the issued total is left unchanged.
func (l *Ledger) Mint(amount types.Amount, origin types.Origin) (*Coin, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if !l.verifier.ApprovedOrigin(origin) {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidOrigin, origin)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if amount > l.cap-l.issued {
		return nil, fmt.Errorf("%w: issued %s, requested %s, cap %s",
			ErrSupplyCapExceeded, l.issued, amount, l.cap)
	}

	l.seq++
	id, err := deriveCoinID(amount, origin, l.seq)
	if err != nil {
		return nil, fmt.Errorf("derive coin id: %w", err)
	}

	coin := &Coin{
		ID:       id,
		Amount:   amount,
		Origin:   origin,
		IssuedAt: time.Now().UTC(),
	}
	l.issued += amount

	if l.journal != nil {
		if err := l.journal.Put(coin); err != nil {
			l.logger.Warn().Err(err).Str("coin", id.String()).Msg("mint journal write failed")
		}
	}

	l.logger.Debug().
		Str("coin", id.String()).
		Str("amount", amount.String()).
		Str("origin", origin.String()).
		Str("issued", l.issued.String()).
		Msg("minted")

	return coin, nil
}

// TotalIssued returns the cumulative minted amount.
func (l *Ledger) TotalIssued() types.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.issued
}

// Cap returns the fixed supply cap.
func (l *Ledger) Cap() types.Amount {
	return l.cap
}

// Remaining returns the amount still mintable under the cap.
func (l *Ledger) Remaining() types.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cap - l.issued
}

// USDValue returns the USD value of an amount at the effective rate.
func (l *Ledger) USDValue(amount types.Amount) float64 {
	l.mu.Lock()
	rates := l.rates
	l.mu.Unlock()

	rate := l.defRate
	if rates != nil {
		if v := rates.AdjustedValue(); v > 0 {
			rate = v
		}
	}
	return amount.Coins() * rate
}

// Reset zeroes the issued total and issuance sequence. Test-only: nothing
// in the transaction-processing path reaches this.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued = 0
	l.seq = 0
}
