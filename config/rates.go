package config

import (
	"sync"
)

// RateManager serves the USD conversion rate at the pricing-collaborator
// boundary. The effective rate is the base rate discounted by the current
// anomaly rate; absent any adjustment the fixed BaseUSDRate constant
// applies. Safe for concurrent use.
type RateManager struct {
	mu          sync.RWMutex
	baseUSD     float64
	anomalyRate float64
}

// NewRateManager creates a rate manager. Non-positive base rates fall back
// to the fixed BaseUSDRate constant.
func NewRateManager(baseUSD float64) *RateManager {
	if baseUSD <= 0 {
		baseUSD = BaseUSDRate
	}
	return &RateManager{baseUSD: baseUSD}
}

// Adjust applies collaborator-proposed settings. Recognized keys:
//
//	"usd_rate"     — replaces the base rate; non-positive values ignored
//	"anomaly_rate" — discount factor in [0, 1); out-of-range values ignored
//
// Unknown keys are ignored.
func (m *RateManager) Adjust(settings map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := settings["usd_rate"]; ok && v > 0 {
		m.baseUSD = v
	}
	if v, ok := settings["anomaly_rate"]; ok && v >= 0 && v < 1 {
		m.anomalyRate = v
	}
}

// BaseRate returns the current base USD rate per whole coin.
func (m *RateManager) BaseRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.baseUSD
}

// AnomalyRate returns the current anomaly discount factor.
func (m *RateManager) AnomalyRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.anomalyRate
}

// AdjustedValue returns the effective USD rate per whole coin after the
// anomaly discount.
func (m *RateManager) AdjustedValue() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.baseUSD * (1 - m.anomalyRate)
}
