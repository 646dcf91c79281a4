package ecosystem

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Metrics provides observability for the ecosystem dashboard.
type Metrics struct {
	TransactionsTotal prometheus.Counter
	VolumeTotal       prometheus.Counter
	SupplyIssued      prometheus.Gauge
}

// NewMetrics creates a Metrics instance registered against reg. A nil
// registerer uses the default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		TransactionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "picoin_transactions_completed_total",
			Help: "Total number of completed transactions logged to the dashboard",
		}),
		VolumeTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "picoin_transaction_volume_coins_total",
			Help: "Total completed transaction volume in whole coins",
		}),
		SupplyIssued: factory.NewGauge(prometheus.GaugeOpts{
			Name: "picoin_supply_issued_coins",
			Help: "Cumulative minted supply in whole coins",
		}),
	}
}

// ObserveTransaction records a completed transaction.
func (m *Metrics) ObserveTransaction(amount types.Amount) {
	m.TransactionsTotal.Inc()
	m.VolumeTotal.Add(amount.Coins())
}

// SetSupplyIssued records the current cumulative minted supply.
func (m *Metrics) SetSupplyIssued(total types.Amount) {
	m.SupplyIssued.Set(total.Coins())
}
