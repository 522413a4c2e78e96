// Package quotes contains the clients for the external market data
// providers. Callers only see the two interfaces below; the concrete
// client behind each one can be swapped without touching the services.
package quotes

import (
	"context"

	"github.com/stocklens/stocklens/internal/models"
)

// PriceProvider resolves a single ticker to its current price.
type PriceProvider interface {
	Name() string
	Quote(ctx context.Context, ticker string) (float64, error)
}

// StatsProvider resolves a ticker and its exchange to fundamentals.
// Fields the provider cannot supply are left nil; that is not an error.
type StatsProvider interface {
	Name() string
	Stats(ctx context.Context, ticker string, exchange models.Exchange) (models.MarketData, error)
}
