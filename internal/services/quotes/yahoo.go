package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultYahooBaseURL is the public quote endpoint host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooClient fetches current prices from the Yahoo Finance quote API.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYahooClient builds a client against baseURL. The timeout bounds
// every request so a hung provider can never stall a batch.
func NewYahooClient(baseURL string, timeout time.Duration) *YahooClient {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *YahooClient) Name() string { return "yahoo" }

type yahooQuoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string   `json:"symbol"`
			RegularMarketPrice *float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// Quote returns the regular market price for ticker. A missing or
// non-positive price is an error; the caller treats any error as
// "price unavailable" for this ticker only.
func (c *YahooClient) Quote(ctx context.Context, ticker string) (float64, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(ticker))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote request for %s returned status %d", ticker, resp.StatusCode)
	}

	var body yahooQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding quote response for %s: %w", ticker, err)
	}

	results := body.QuoteResponse.Result
	if len(results) == 0 || results[0].RegularMarketPrice == nil {
		return 0, fmt.Errorf("no price data for %s", ticker)
	}

	price := *results[0].RegularMarketPrice
	if price <= 0 {
		return 0, fmt.Errorf("non-positive price %.2f for %s", price, ticker)
	}

	return price, nil
}
