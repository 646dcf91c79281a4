// Package config handles application configuration.
//
// Configuration is split into two categories:
//   - Policy constants: the supply cap, coin symbol, and base conversion
//     rate — fixed for the life of a process
//   - Node settings: runtime configuration (storage backend, logging,
//     rate adjustment), can vary per deployment
package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/picoin-tech/picoin-core/pkg/types"
)

// CoinSymbol is the ticker symbol for the unit.
const CoinSymbol = "PI"

// SupplyCap is the maximum cumulative amount that may ever be minted:
// 100 billion coins, in base units.
const SupplyCap types.Amount = 100_000_000_000 * types.CoinPrecision

// BaseUSDRate is the fixed USD conversion constant per whole coin, used
// when no pricing collaborator has provided a rate.
const BaseUSDRate = 314159.0

// StoreBackend selects the journal storage implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreBadger StoreBackend = "badger"
)

// Config holds node-specific runtime configuration.
type Config struct {
	// Core
	DataDir string       `conf:"datadir"`
	Store   StoreBackend `conf:"store.backend"`

	// Policy (read once at startup, immutable for the process unless an
	// explicit administrative reset occurs)
	Cap     types.Amount `conf:"supply.cap"`
	Origins []string     `conf:"origins"`

	// Rates
	Rates RateConfig

	// Logging
	Log LogConfig
}

// RateConfig holds USD conversion settings.
type RateConfig struct {
	BaseUSD     float64 `conf:"rate.usd"`
	AnomalyRate float64 `conf:"rate.anomaly"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	File  string `conf:"log.file"`
	JSON  bool   `conf:"log.json"`
}

// DefaultDataDir returns the platform-specific default data directory.
//
//	Linux:   ~/.picoin
//	macOS:   ~/Library/Application Support/Picoin
//	Windows: %APPDATA%\Picoin
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".picoin"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Picoin")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			return filepath.Join(appData, "Picoin")
		}
		return filepath.Join(home, "AppData", "Roaming", "Picoin")
	default:
		return filepath.Join(home, ".picoin")
	}
}

// JournalDir returns the journal database directory.
func (c *Config) JournalDir() string {
	return filepath.Join(c.DataDir, "journal")
}

// LogsDir returns the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ConfigFile returns the config file path.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "picoin.conf")
}

// ApprovedOrigins parses the configured origin labels into the typed set.
// An empty configuration falls back to the full declared set.
func (c *Config) ApprovedOrigins() ([]types.Origin, error) {
	if len(c.Origins) == 0 {
		out := make([]types.Origin, len(types.ApprovedOrigins))
		copy(out, types.ApprovedOrigins)
		return out, nil
	}
	out := make([]types.Origin, 0, len(c.Origins))
	for _, s := range c.Origins {
		o, err := types.ParseOrigin(s)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}
