package config

import "github.com/picoin-tech/picoin-core/pkg/types"

// Default returns the default node configuration.
func Default() *Config {
	origins := make([]string, 0, len(types.ApprovedOrigins))
	for _, o := range types.ApprovedOrigins {
		origins = append(origins, o.String())
	}
	return &Config{
		DataDir: DefaultDataDir(),
		Store:   StoreMemory,
		Cap:     SupplyCap,
		Origins: origins,
		Rates: RateConfig{
			BaseUSD:     BaseUSDRate,
			AnomalyRate: 0,
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
			JSON:  false,
		},
	}
}
