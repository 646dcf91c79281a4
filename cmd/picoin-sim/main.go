// Command picoin-sim runs end-to-end ecosystem simulations against an
// in-process coin stack.
//
// Usage: picoin-sim [--scenario=merchant|p2p|service|all] [--conf=FILE]
//
// Each scenario wires the full stack (config, storage, ledger, verifier,
// processor, dashboard), mints coins from approved origins, settles
// transactions through the journal, and prints ecosystem analytics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/picoin-tech/picoin-core/config"
	"github.com/picoin-tech/picoin-core/internal/ecosystem"
	"github.com/picoin-tech/picoin-core/internal/ledger"
	klog "github.com/picoin-tech/picoin-core/internal/log"
	"github.com/picoin-tech/picoin-core/internal/processor"
	"github.com/picoin-tech/picoin-core/internal/storage"
	"github.com/picoin-tech/picoin-core/internal/verify"
	"github.com/picoin-tech/picoin-core/pkg/types"
)

const analyticsSettle = 250 * time.Millisecond

// stack groups all components one simulation needs.
type stack struct {
	cfg       *config.Config
	db        storage.DB
	rates     *config.RateManager
	verifier  *verify.Verifier
	ledger    *ledger.Ledger
	processor *processor.Processor
	metrics   *ecosystem.Metrics
	dashboard *ecosystem.Dashboard
}

func main() {
	scenario := flag.String("scenario", "all", "scenario to run: merchant, p2p, service, or all")
	confFile := flag.String("conf", "", "optional picoin.conf file")
	flag.Parse()

	cfg := config.Default()
	if *confFile != "" {
		values, err := config.LoadFile(*confFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := config.ApplyFileConfig(cfg, values); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := klog.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := klog.WithComponent("sim")

	s, err := buildStack(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("build stack")
	}
	defer s.close()

	ctx := context.Background()
	run := func(name string, fn func(context.Context, *stack) error) {
		logger.Info().Str("scenario", name).Msg("starting scenario")
		if err := fn(ctx, s); err != nil {
			logger.Fatal().Err(err).Str("scenario", name).Msg("scenario failed")
		}
	}

	switch *scenario {
	case "merchant":
		run("merchant", runMerchant)
	case "p2p":
		run("p2p", runP2P)
	case "service":
		run("service", runService)
	case "all":
		run("merchant", runMerchant)
		run("p2p", runP2P)
		run("service", runService)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", *scenario)
		os.Exit(1)
	}

	s.metrics.SetSupplyIssued(s.ledger.TotalIssued())
	printAnalytics(s)
	logger.Info().
		Str("issued", s.ledger.TotalIssued().String()).
		Str("remaining", s.ledger.Remaining().String()).
		Msg("simulation complete")
}

// buildStack wires storage, rates, verifier, ledger, processor and
// dashboard from the resolved configuration.
func buildStack(cfg *config.Config) (*stack, error) {
	var db storage.DB
	switch cfg.Store {
	case config.StoreBadger:
		bdb, err := storage.NewBadger(cfg.JournalDir())
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		db = bdb
	default:
		db = storage.NewMemory()
	}

	origins, err := cfg.ApprovedOrigins()
	if err != nil {
		db.Close()
		return nil, err
	}

	rates := config.NewRateManager(cfg.Rates.BaseUSD)
	if cfg.Rates.AnomalyRate > 0 {
		rates.Adjust(map[string]float64{"anomaly_rate": cfg.Rates.AnomalyRate})
	}

	verifier := verify.New(origins)

	l := ledger.New(cfg.Cap, verifier, cfg.Rates.BaseUSD)
	l.SetRates(rates)
	l.SetJournal(ledger.NewStore(storage.NewPrefixDB(db, []byte("ledger/"))))

	settler := processor.NewStore(storage.NewPrefixDB(db, []byte("proc/")))
	proc := processor.New(verifier, settler)

	metrics := ecosystem.NewMetrics(nil)
	dash := ecosystem.NewDashboard(64, metrics)
	proc.SetDashboard(dash)

	return &stack{
		cfg:       cfg,
		db:        db,
		rates:     rates,
		verifier:  verifier,
		ledger:    l,
		processor: proc,
		metrics:   metrics,
		dashboard: dash,
	}, nil
}

func (s *stack) close() {
	s.dashboard.Close()
	if err := s.db.Close(); err != nil {
		klog.Warn().Err(err).Msg("close journal")
	}
}

// runMerchant simulates a shop: price a catalog, mint a customer's coin
// from a p2p origin, verify it, and settle the purchase.
func runMerchant(ctx context.Context, s *stack) error {
	logger := klog.WithComponent("merchant")

	shop := ecosystem.NewMerchant("PiTech Shop")
	laptop, err := types.AmountFromCoins(0.001)
	if err != nil {
		return err
	}
	phone, err := types.AmountFromCoins(0.0005)
	if err != nil {
		return err
	}
	shop.SetPrice("Laptop", laptop)
	shop.SetPrice("Phone", phone)
	logger.Info().Interface("products", shop.Products()).Msg("catalog priced")

	// Customer holds coin acquired peer-to-peer.
	coin, err := s.ledger.Mint(laptop, types.OriginP2P)
	if err != nil {
		return fmt.Errorf("mint customer coin: %w", err)
	}
	if !s.verifier.VerifyOrigin(coin.Origin, coin.ID.String(), coin.Amount) {
		return fmt.Errorf("customer coin rejected: origin %s", coin.Origin)
	}
	logger.Info().
		Str("coin", coin.ID.String()).
		Str("amount", coin.Amount.String()).
		Float64("usd", s.ledger.USDValue(coin.Amount)).
		Msg("customer coin verified")

	tx, err := processor.NewTransaction("customer", shop.Name, laptop, types.OriginP2P)
	if err != nil {
		return err
	}
	ok, err := s.processor.Process(ctx, tx)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn().Str("reason", tx.FailReason()).Msg("purchase failed")
		return nil
	}
	logger.Info().Str("tx", tx.ID.String()).Msg("purchase completed")

	s.rates.Adjust(map[string]float64{"anomaly_rate": 0.05})
	logger.Info().Float64("usd_value", s.rates.AdjustedValue()).Msg("rate adjusted")
	return nil
}

// runP2P simulates a trading floor: match buyers against sellers by
// amount, batch-verify the matched offers, and settle the trades as an
// independent batch.
func runP2P(ctx context.Context, s *stack) error {
	logger := klog.WithComponent("p2p")

	type offer struct {
		seller string
		coin   *ledger.Coin
	}
	type match struct {
		buyer  string
		seller string
		amount types.Amount
		coinID types.CoinID
	}

	offerAmounts := []float64{5.0, 3.0, 1.0}
	sellers := []string{"user1", "user2", "user3"}
	offers := make([]offer, 0, len(offerAmounts))
	for i, coins := range offerAmounts {
		amount, err := types.AmountFromCoins(coins)
		if err != nil {
			return err
		}
		c, err := s.ledger.Mint(amount, types.OriginP2P)
		if err != nil {
			return fmt.Errorf("mint offer for %s: %w", sellers[i], err)
		}
		offers = append(offers, offer{seller: sellers[i], coin: c})
	}

	buyers := []struct {
		name  string
		coins float64
	}{
		{"buyer1", 5.0},
		{"buyer2", 3.0},
	}

	// Match by amount, first fit.
	var matches []match
	for _, b := range buyers {
		want, err := types.AmountFromCoins(b.coins)
		if err != nil {
			return err
		}
		for i, o := range offers {
			if o.coin != nil && o.coin.Amount == want {
				matches = append(matches, match{
					buyer:  b.name,
					seller: o.seller,
					amount: want,
					coinID: o.coin.ID,
				})
				offers[i].coin = nil
				break
			}
		}
	}
	logger.Info().Int("matches", len(matches)).Msg("trades matched")

	claims := make([]verify.Claim, len(matches))
	for i, m := range matches {
		claims[i] = verify.Claim{
			Source: string(types.OriginP2P),
			ID:     m.coinID.String(),
			Amount: m.amount,
		}
	}
	verified := s.verifier.BatchVerify(claims)

	var txs []*processor.Transaction
	for i, m := range matches {
		if !verified[i] {
			logger.Warn().Str("buyer", m.buyer).Msg("match rejected by verifier")
			continue
		}
		tx, err := processor.NewTransaction(m.buyer, m.seller, m.amount, types.OriginP2P)
		if err != nil {
			return err
		}
		txs = append(txs, tx)
	}

	results := s.processor.ProcessBatch(ctx, txs)
	for i, ok := range results {
		if ok {
			logger.Info().Int("trade", i+1).Str("tx", txs[i].ID.String()).Msg("trade completed")
		} else {
			logger.Warn().Int("trade", i+1).Str("reason", txs[i].FailReason()).Msg("trade failed")
		}
	}

	s.rates.Adjust(map[string]float64{"anomaly_rate": 0.03})
	logger.Info().Float64("usd_value", s.rates.AdjustedValue()).Msg("rate adjusted")
	return nil
}

// runService simulates a freelancer: quote hourly rates, compute a wage,
// mint the client's coin from the rewards origin, and settle the payment.
func runService(ctx context.Context, s *stack) error {
	logger := klog.WithComponent("service")

	freelancer := ecosystem.NewServiceProvider("PiDev Freelancer")
	coding, err := types.AmountFromCoins(0.0001)
	if err != nil {
		return err
	}
	design, err := types.AmountFromCoins(0.00008)
	if err != nil {
		return err
	}
	freelancer.SetRate("Coding", coding)
	freelancer.SetRate("Design", design)
	logger.Info().Interface("rates", freelancer.Services()).Msg("rates set")

	const hours = 10
	total, err := freelancer.CalculatePayment("Coding", hours)
	if err != nil {
		return err
	}
	logger.Info().
		Uint32("hours", hours).
		Str("total", total.String()).
		Float64("usd", s.ledger.USDValue(total)).
		Msg("wage calculated")

	coin, err := s.ledger.Mint(total, types.OriginRewards)
	if err != nil {
		return fmt.Errorf("mint client coin: %w", err)
	}
	if !s.verifier.VerifyOrigin(coin.Origin, coin.ID.String(), coin.Amount) {
		return fmt.Errorf("client coin rejected: origin %s", coin.Origin)
	}

	tx, err := processor.NewTransaction("client", freelancer.Name, total, types.OriginRewards)
	if err != nil {
		return err
	}
	ok, err := s.processor.Process(ctx, tx)
	if err != nil {
		return err
	}
	if !ok {
		logger.Warn().Str("reason", tx.FailReason()).Msg("payment failed")
		return nil
	}
	logger.Info().Str("tx", tx.ID.String()).Msg("payment completed")

	s.rates.Adjust(map[string]float64{"anomaly_rate": 0.02})
	logger.Info().Float64("usd_value", s.rates.AdjustedValue()).Msg("rate adjusted")
	return nil
}

// printAnalytics waits briefly for the dashboard to drain its event
// buffer, then reports aggregate figures.
func printAnalytics(s *stack) {
	time.Sleep(analyticsSettle)
	a := s.dashboard.Analytics()
	klog.Info().
		Uint64("transactions", a.Transactions).
		Str("volume", a.TotalVolume.String()).
		Interface("by_origin", a.VolumeByOrigin).
		Msg("ecosystem analytics")
}
