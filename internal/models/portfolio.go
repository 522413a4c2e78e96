package models

import (
	"fmt"
	"time"
)

// Exchange identifies the stock exchange a holding trades on.
type Exchange string

const (
	ExchangeNSE    Exchange = "NSE"
	ExchangeBSE    Exchange = "BSE"
	ExchangeNASDAQ Exchange = "NASDAQ"
	ExchangeNYSE   Exchange = "NYSE"
)

// Valid reports whether the exchange is one of the supported venues.
func (e Exchange) Valid() bool {
	switch e {
	case ExchangeNSE, ExchangeBSE, ExchangeNASDAQ, ExchangeNYSE:
		return true
	}
	return false
}

// Holding is a static position supplied by the caller. It is never
// mutated; everything derived from it lives on Snapshot.
type Holding struct {
	Sector        string   `json:"sector" binding:"required"`
	Particulars   string   `json:"particulars" binding:"required"`
	PurchasePrice float64  `json:"purchasePrice" binding:"required,gt=0"`
	Quantity      int      `json:"quantity" binding:"required,gt=0"`
	Exchange      Exchange `json:"exchange" binding:"required,oneof=NSE BSE NASDAQ NYSE"`
	Ticker        string   `json:"ticker" binding:"required"`
}

// MarketData holds the values fetched from the external providers.
// A nil field means the provider could not supply it; that is distinct
// from zero at every later stage.
type MarketData struct {
	CurrentPrice   *float64 `json:"currentPrice,omitempty"`
	PERatio        *float64 `json:"peRatio,omitempty"`
	LatestEarnings *float64 `json:"latestEarnings,omitempty"`
}

// Snapshot is a holding enriched with market data and derived metrics.
// Investment and PortfolioPercentage are always present; the pointer
// fields stay nil whenever the price lookup failed.
type Snapshot struct {
	Holding
	Investment          float64  `json:"investment"`
	PortfolioPercentage float64  `json:"portfolioPercentage"`
	CurrentPrice        *float64 `json:"currentPrice,omitempty"`
	PresentValue        *float64 `json:"presentValue,omitempty"`
	GainLoss            *float64 `json:"gainLoss,omitempty"`
	GainLossPercentage  *float64 `json:"gainLossPercentage,omitempty"`
	PERatio             *float64 `json:"peRatio,omitempty"`
	LatestEarnings      *float64 `json:"latestEarnings,omitempty"`
}

// SectorTotal aggregates the snapshots of one sector. Unlike the
// per-holding fields these are plain numbers: a missing present value
// counts as 0 in the sums so sector rows always render.
type SectorTotal struct {
	Sector              string  `json:"sector"`
	Investment          float64 `json:"investment"`
	PresentValue        float64 `json:"presentValue"`
	GainLoss            float64 `json:"gainLoss"`
	GainLossPercentage  float64 `json:"gainLossPercentage"`
	PortfolioPercentage float64 `json:"portfolioPercentage"`
}

// PortfolioSummary is the portfolio-wide rollup of the sector totals.
type PortfolioSummary struct {
	TotalInvestment         float64 `json:"totalInvestment"`
	TotalPresentValue       float64 `json:"totalPresentValue"`
	TotalGainLoss           float64 `json:"totalGainLoss"`
	TotalGainLossPercentage float64 `json:"totalGainLossPercentage"`
}

// PortfolioSnapshot is the full response bundle for one request.
type PortfolioSnapshot struct {
	Holdings     []Snapshot       `json:"holdings"`
	SectorTotals []SectorTotal    `json:"sectorTotals"`
	Summary      PortfolioSummary `json:"summary"`
	LastUpdated  time.Time        `json:"lastUpdated"`
}

// ValidationError identifies the holding record and field that failed
// validation so the caller can point at the exact offender.
type ValidationError struct {
	Index   int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("holding %d: %s", e.Index, e.Message)
}

// Validate checks a single holding against the schema invariants.
func (h Holding) Validate() error {
	switch {
	case h.Sector == "":
		return fmt.Errorf("sector is required")
	case h.Particulars == "":
		return fmt.Errorf("particulars is required")
	case h.PurchasePrice <= 0:
		return fmt.Errorf("purchasePrice must be positive")
	case h.Quantity <= 0:
		return fmt.Errorf("quantity must be positive")
	case !h.Exchange.Valid():
		return fmt.Errorf("exchange must be one of NSE, BSE, NASDAQ, NYSE")
	case h.Ticker == "":
		return fmt.Errorf("ticker is required")
	}
	return nil
}

// ValidateHoldings validates every record and the uniqueness of tickers
// within the request. The first problem found is returned.
func ValidateHoldings(holdings []Holding) error {
	seen := make(map[string]struct{}, len(holdings))
	for i, h := range holdings {
		if err := h.Validate(); err != nil {
			return &ValidationError{Index: i, Field: fieldOf(err), Message: err.Error()}
		}
		if _, dup := seen[h.Ticker]; dup {
			return &ValidationError{Index: i, Field: "ticker", Message: fmt.Sprintf("duplicate ticker %q", h.Ticker)}
		}
		seen[h.Ticker] = struct{}{}
	}
	return nil
}

func fieldOf(err error) string {
	msg := err.Error()
	for i, r := range msg {
		if r == ' ' {
			return msg[:i]
		}
	}
	return msg
}
