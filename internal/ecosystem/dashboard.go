// Package ecosystem hosts the collaborators that observe completed
// transactions: the dashboard feed with its analytics, and the merchant
// and service-provider pricing participants.
package ecosystem

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/picoin-tech/picoin-core/internal/log"
	"github.com/picoin-tech/picoin-core/internal/processor"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Analytics is a point-in-time snapshot of the dashboard aggregates.
type Analytics struct {
	Transactions   uint64
	TotalVolume    types.Amount
	VolumeByOrigin map[types.Origin]types.Amount
}

// Dashboard aggregates completed transactions from an event feed. Logging
// a transaction is fire-and-forget: the send is non-blocking, and a full
// feed drops the event with a warning rather than stalling the processor.
type Dashboard struct {
	events chan *processor.Transaction
	done   chan struct{}
	once   sync.Once

	mu       sync.RWMutex
	txCount  uint64
	volume   types.Amount
	byOrigin map[types.Origin]types.Amount

	metrics *Metrics // optional
	logger  zerolog.Logger
}

// NewDashboard creates a dashboard with the given feed buffer size and
// starts its aggregator. Metrics may be nil.
func NewDashboard(buffer int, metrics *Metrics) *Dashboard {
	if buffer <= 0 {
		buffer = 256
	}
	d := &Dashboard{
		events:   make(chan *processor.Transaction, buffer),
		done:     make(chan struct{}),
		byOrigin: make(map[types.Origin]types.Amount),
		metrics:  metrics,
		logger:   log.Dashboard,
	}
	go d.run()
	return d
}

// LogTransaction feeds a completed transaction to the dashboard. Never
// blocks and never errors; events arriving after Close or into a full
// buffer are dropped.
func (d *Dashboard) LogTransaction(t *processor.Transaction) {
	if t == nil {
		return
	}
	select {
	case <-d.done:
		return
	default:
	}
	select {
	case d.events <- t:
	default:
		d.logger.Warn().Str("tx", t.ID.String()).Msg("dashboard feed full, event dropped")
	}
}

// Analytics returns a snapshot of the aggregates.
func (d *Dashboard) Analytics() Analytics {
	d.mu.RLock()
	defer d.mu.RUnlock()

	byOrigin := make(map[types.Origin]types.Amount, len(d.byOrigin))
	for o, v := range d.byOrigin {
		byOrigin[o] = v
	}
	return Analytics{
		Transactions:   d.txCount,
		TotalVolume:    d.volume,
		VolumeByOrigin: byOrigin,
	}
}

// Close stops the aggregator. Safe to call more than once.
func (d *Dashboard) Close() {
	d.once.Do(func() {
		close(d.done)
	})
}

func (d *Dashboard) run() {
	for {
		select {
		case t := <-d.events:
			d.aggregate(t)
		case <-d.done:
			// Drain anything already buffered, then stop.
			for {
				select {
				case t := <-d.events:
					d.aggregate(t)
				default:
					return
				}
			}
		}
	}
}

func (d *Dashboard) aggregate(t *processor.Transaction) {
	d.mu.Lock()
	d.txCount++
	d.volume += t.Amount
	d.byOrigin[t.Origin] += t.Amount
	d.mu.Unlock()

	if d.metrics != nil {
		d.metrics.ObserveTransaction(t.Amount)
	}

	d.logger.Debug().
		Str("tx", t.ID.String()).
		Str("amount", t.Amount.String()).
		Str("origin", t.Origin.String()).
		Msg("transaction logged")
}
