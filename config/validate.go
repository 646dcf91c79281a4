package config

import (
	"fmt"
)

// Validate checks runtime node config for obvious operator mistakes.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if cfg.Store != StoreMemory && cfg.Store != StoreBadger {
		return fmt.Errorf("store.backend must be %q or %q", StoreMemory, StoreBadger)
	}
	if cfg.Store == StoreBadger && cfg.DataDir == "" {
		return fmt.Errorf("store.backend=badger requires datadir")
	}
	if cfg.Cap == 0 {
		return fmt.Errorf("supply.cap must be positive")
	}
	if cfg.Cap > SupplyCap {
		return fmt.Errorf("supply.cap exceeds the policy maximum %s", SupplyCap)
	}

	// Configured origins must be a subset of the declared closed set.
	if _, err := cfg.ApprovedOrigins(); err != nil {
		return fmt.Errorf("origins: %w", err)
	}

	if cfg.Rates.BaseUSD <= 0 {
		return fmt.Errorf("rate.usd must be positive")
	}
	if cfg.Rates.AnomalyRate < 0 || cfg.Rates.AnomalyRate >= 1 {
		return fmt.Errorf("rate.anomaly must be in [0, 1)")
	}

	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}

	return nil
}
