package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CoinPrecision is the number of base units per whole coin.
const CoinPrecision = 100_000_000

// Amount is a quantity of coin in base units.
//
// One whole coin is CoinPrecision base units. The supply cap of
// 100 billion coins is 10^19 base units, which fits in uint64.
type Amount uint64

// AmountFromCoins converts a whole-coin value to base units.
// Returns an error for negative, NaN, infinite, or overflowing values.
func AmountFromCoins(coins float64) (Amount, error) {
	if math.IsNaN(coins) || math.IsInf(coins, 0) {
		return 0, fmt.Errorf("invalid coin value %v", coins)
	}
	if coins < 0 {
		return 0, fmt.Errorf("coin value must be non-negative, got %v", coins)
	}
	base := coins * CoinPrecision
	if base > math.MaxUint64 {
		return 0, fmt.Errorf("coin value %v overflows base units", coins)
	}
	return Amount(math.Round(base)), nil
}

// Coins returns the amount as a whole-coin value.
func (a Amount) Coins() float64 {
	return float64(a) / CoinPrecision
}

// String formats the amount as a decimal coin value, e.g. "5.00000000".
func (a Amount) String() string {
	whole := uint64(a) / CoinPrecision
	frac := uint64(a) % CoinPrecision
	return strconv.FormatUint(whole, 10) + "." + fmt.Sprintf("%08d", frac)
}

// ParseAmount parses a decimal coin value ("5", "0.001") into base units.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return AmountFromCoins(v)
}
