package quotes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yahooServer(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewYahooClient(srv.URL, time.Second)
}

func TestYahooQuoteParsesPrice(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v7/finance/quote", r.URL.Path)
		assert.Equal(t, "INFY.NS", r.URL.Query().Get("symbols"))
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"INFY.NS","regularMarketPrice":1502.35}],"error":null}}`)
	})

	price, err := client.Quote(context.Background(), "INFY.NS")
	require.NoError(t, err)
	assert.Equal(t, 1502.35, price)
}

func TestYahooQuoteMissingPriceField(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"XXX"}],"error":null}}`)
	})

	_, err := client.Quote(context.Background(), "XXX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price data")
}

func TestYahooQuoteEmptyResult(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[],"error":null}}`)
	})

	_, err := client.Quote(context.Background(), "UNKNOWN")
	assert.Error(t, err)
}

func TestYahooQuoteNonPositivePrice(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"quoteResponse":{"result":[{"symbol":"XXX","regularMarketPrice":0}],"error":null}}`)
	})

	_, err := client.Quote(context.Background(), "XXX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-positive")
}

func TestYahooQuoteServerError(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Quote(context.Background(), "XXX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestYahooQuoteMalformedBody(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>rate limited</html>`)
	})

	_, err := client.Quote(context.Background(), "XXX")
	assert.Error(t, err)
}

func TestYahooQuoteHonorsContextTimeout(t *testing.T) {
	client := yahooServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Quote(ctx, "SLOW")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 150*time.Millisecond)
}
