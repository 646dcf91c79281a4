package config

import (
	"sync"
	"testing"
)

func TestRateManager_FixedConstant(t *testing.T) {
	m := NewRateManager(0)
	if m.BaseRate() != BaseUSDRate {
		t.Errorf("BaseRate = %v, want %v", m.BaseRate(), BaseUSDRate)
	}
	if m.AdjustedValue() != BaseUSDRate {
		t.Errorf("AdjustedValue = %v, want %v", m.AdjustedValue(), BaseUSDRate)
	}
}

func TestRateManager_AnomalyDiscount(t *testing.T) {
	m := NewRateManager(BaseUSDRate)
	m.Adjust(map[string]float64{"anomaly_rate": 0.05})

	want := BaseUSDRate * 0.95
	if got := m.AdjustedValue(); got != want {
		t.Errorf("AdjustedValue = %v, want %v", got, want)
	}
	if m.AnomalyRate() != 0.05 {
		t.Errorf("AnomalyRate = %v, want 0.05", m.AnomalyRate())
	}
}

func TestRateManager_IgnoresBadProposals(t *testing.T) {
	m := NewRateManager(100)

	m.Adjust(map[string]float64{"usd_rate": -5})
	if m.BaseRate() != 100 {
		t.Errorf("negative rate proposal should be ignored, BaseRate = %v", m.BaseRate())
	}

	m.Adjust(map[string]float64{"anomaly_rate": 2})
	if m.AnomalyRate() != 0 {
		t.Errorf("out-of-range anomaly should be ignored, AnomalyRate = %v", m.AnomalyRate())
	}

	m.Adjust(map[string]float64{"unknown": 1})
	if m.BaseRate() != 100 || m.AnomalyRate() != 0 {
		t.Error("unknown key must not change state")
	}

	m.Adjust(map[string]float64{"usd_rate": 200})
	if m.BaseRate() != 200 {
		t.Errorf("positive rate proposal should apply, BaseRate = %v", m.BaseRate())
	}
}

func TestRateManager_ConcurrentAdjust(t *testing.T) {
	m := NewRateManager(BaseUSDRate)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			m.Adjust(map[string]float64{"anomaly_rate": 0.01})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = m.AdjustedValue()
			_ = m.BaseRate()
		}
	}()
	wg.Wait()

	want := BaseUSDRate * 0.99
	if got := m.AdjustedValue(); got != want {
		t.Errorf("AdjustedValue = %v, want %v", got, want)
	}
}
