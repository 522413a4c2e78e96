package data

import "github.com/stocklens/stocklens/internal/models"

// DefaultHoldings returns the built-in portfolio used when a request
// does not supply its own holdings. The slice is rebuilt on every call
// so callers can never mutate the seed.
func DefaultHoldings() []models.Holding {
	return []models.Holding{
		{
			Sector:        "Technology",
			Particulars:   "Infosys Ltd",
			PurchasePrice: 1450.75,
			Quantity:      15,
			Exchange:      models.ExchangeNSE,
			Ticker:        "INFY.NS",
		},
		{
			Sector:        "Technology",
			Particulars:   "Tata Consultancy Services Ltd",
			PurchasePrice: 3250.50,
			Quantity:      8,
			Exchange:      models.ExchangeNSE,
			Ticker:        "TCS.NS",
		},
		{
			Sector:        "Technology",
			Particulars:   "Microsoft Corporation",
			PurchasePrice: 320.75,
			Quantity:      5,
			Exchange:      models.ExchangeNASDAQ,
			Ticker:        "MSFT",
		},
		{
			Sector:        "Finance",
			Particulars:   "HDFC Bank Ltd",
			PurchasePrice: 1620.25,
			Quantity:      12,
			Exchange:      models.ExchangeNSE,
			Ticker:        "HDFCBANK.NS",
		},
		{
			Sector:        "Finance",
			Particulars:   "ICICI Bank Ltd",
			PurchasePrice: 875.50,
			Quantity:      20,
			Exchange:      models.ExchangeNSE,
			Ticker:        "ICICIBANK.NS",
		},
		{
			Sector:        "Healthcare",
			Particulars:   "Dr. Reddy's Laboratories Ltd",
			PurchasePrice: 4750.25,
			Quantity:      4,
			Exchange:      models.ExchangeNSE,
			Ticker:        "DRREDDY.NS",
		},
		{
			Sector:        "Healthcare",
			Particulars:   "Pfizer Inc",
			PurchasePrice: 42.75,
			Quantity:      10,
			Exchange:      models.ExchangeNYSE,
			Ticker:        "PFE",
		},
		{
			Sector:        "Consumer Goods",
			Particulars:   "Hindustan Unilever Ltd",
			PurchasePrice: 2450.75,
			Quantity:      7,
			Exchange:      models.ExchangeBSE,
			Ticker:        "HINDUNILVR.BO",
		},
		{
			Sector:        "Consumer Goods",
			Particulars:   "ITC Ltd",
			PurchasePrice: 375.25,
			Quantity:      30,
			Exchange:      models.ExchangeNSE,
			Ticker:        "ITC.NS",
		},
	}
}
