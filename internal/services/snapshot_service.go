package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stocklens/stocklens/internal/models"
	"github.com/stocklens/stocklens/internal/portfolio"
)

// SnapshotService runs the whole pipeline: fetch prices and
// fundamentals for a set of holdings, derive per-holding metrics, roll
// them up by sector and portfolio, and stamp the result. Provider
// failures degrade to missing fields; the only error it returns is
// malformed input.
type SnapshotService struct {
	prices *PriceService
	stats  *StatsService
	log    zerolog.Logger
}

// NewSnapshotService builds the orchestrator on top of the two batch
// sources.
func NewSnapshotService(prices *PriceService, stats *StatsService, log zerolog.Logger) *SnapshotService {
	return &SnapshotService{
		prices: prices,
		stats:  stats,
		log:    log.With().Str("component", "snapshot").Logger(),
	}
}

// Build produces the snapshot bundle for the given holdings.
//
// The two batch fetches are independent and run concurrently; the
// derivation steps after them are strictly sequential because each
// consumes the previous step's output.
func (s *SnapshotService) Build(ctx context.Context, holdings []models.Holding) (*models.PortfolioSnapshot, error) {
	if err := models.ValidateHoldings(holdings); err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(holdings))
	pairs := make([]TickerExchange, 0, len(holdings))
	for _, h := range holdings {
		tickers = append(tickers, h.Ticker)
		pairs = append(pairs, TickerExchange{Ticker: h.Ticker, Exchange: h.Exchange})
	}

	var (
		priceMap map[string]float64
		statsMap map[string]models.MarketData
		wg       sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		priceMap = s.prices.GetPrices(ctx, tickers)
	}()
	go func() {
		defer wg.Done()
		statsMap = s.stats.GetStats(ctx, pairs)
	}()
	wg.Wait()

	snapshots := make([]models.Snapshot, 0, len(holdings))
	for _, h := range holdings {
		md := statsMap[h.Ticker]
		if price, ok := priceMap[h.Ticker]; ok {
			p := price
			md.CurrentPrice = &p
		}
		snapshots = append(snapshots, portfolio.Derive(h, md))
	}

	sectorTotals := portfolio.SectorTotals(snapshots)
	summary := portfolio.Summarize(sectorTotals)
	portfolio.ApplyPortfolioPercentages(snapshots, sectorTotals, summary.TotalInvestment)

	s.log.Debug().
		Int("holdings", len(snapshots)).
		Int("pricesResolved", len(priceMap)).
		Int("statsResolved", len(statsMap)).
		Float64("totalInvestment", summary.TotalInvestment).
		Msg("Snapshot built")

	return &models.PortfolioSnapshot{
		Holdings:     snapshots,
		SectorTotals: sectorTotals,
		Summary:      summary,
		LastUpdated:  time.Now().UTC(),
	}, nil
}
