package ledger

import (
	"encoding/binary"
	"time"

	"github.com/google/uuid"

	"github.com/picoin-tech/picoin-core/pkg/crypto"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

// Coin is an immutable unit of value tied to an approved origin. Coins are
// created only through Ledger.Mint; each coin contributed exactly its
// amount to the issued total at mint time, and supply is append-only (no
// burn path back out of the total).
type Coin struct {
	ID       types.CoinID `json:"id"`
	Amount   types.Amount `json:"amount"`
	Origin   types.Origin `json:"origin"`
	IssuedAt time.Time    `json:"issued_at"`
}

// USDValue returns the coin's value at the given USD rate per whole coin.
func (c *Coin) USDValue(rate float64) float64 {
	return c.Amount.Coins() * rate
}

// deriveCoinID computes a coin identifier from the mint parameters, a
// random freshness token, and the issuance sequence number, so two mints
// of the same amount and origin are never confusable.
func deriveCoinID(amount types.Amount, origin types.Origin, seq uint64) (types.CoinID, error) {
	nonce := uuid.New()

	buf := make([]byte, 0, 8+len(origin)+len(nonce)+8)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(amount))
	buf = append(buf, origin...)
	buf = append(buf, nonce[:]...)
	buf = binary.LittleEndian.AppendUint64(buf, seq)

	d, err := crypto.Digest(buf)
	if err != nil {
		return types.CoinID{}, err
	}
	return types.CoinID(d), nil
}
