package quotes

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/stocklens/stocklens/internal/models"
)

// DefaultGoogleBaseURL is the public Google Finance host.
const DefaultGoogleBaseURL = "https://www.google.com"

// browserUserAgent is sent with scrape requests; the quote page serves
// a stripped-down variant to unknown clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// CSS classes of the "about" stat rows on the quote page.
const (
	statRowClass   = "gyFHrc"
	statLabelClass = "mfs7Fc"
	statValueClass = "P6K39c"
)

// GoogleClient scrapes P/E ratio and EPS from the Google Finance quote
// page for a ticker.
type GoogleClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogleClient builds a scraping client against baseURL with a
// bounded per-request timeout.
func NewGoogleClient(baseURL string, timeout time.Duration) *GoogleClient {
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}
	return &GoogleClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *GoogleClient) Name() string { return "google" }

// QuotePath maps a ticker and exchange to the quote page path. Tickers
// carrying an NSE/BSE suffix (".NS"/".BO") win over the exchange field,
// matching how the Indian listings are keyed in the holdings data.
func QuotePath(ticker string, exchange models.Exchange) string {
	switch {
	case strings.HasSuffix(ticker, ".NS"):
		return fmt.Sprintf("/finance/quote/%s:NSE", strings.TrimSuffix(ticker, ".NS"))
	case strings.HasSuffix(ticker, ".BO"):
		return fmt.Sprintf("/finance/quote/%s:BSE", strings.TrimSuffix(ticker, ".BO"))
	case exchange == models.ExchangeNASDAQ || exchange == models.ExchangeNYSE:
		return fmt.Sprintf("/finance/quote/%s:%s", ticker, exchange)
	}
	return fmt.Sprintf("/finance/quote/%s", ticker)
}

// Stats fetches the quote page and extracts the P/E ratio and EPS
// figures. Absent rows leave the corresponding field nil.
func (c *GoogleClient) Stats(ctx context.Context, ticker string, exchange models.Exchange) (models.MarketData, error) {
	endpoint := c.baseURL + QuotePath(ticker, exchange)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.MarketData{}, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.MarketData{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.MarketData{}, fmt.Errorf("stats request for %s returned status %d", ticker, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return models.MarketData{}, fmt.Errorf("parsing stats page for %s: %w", ticker, err)
	}

	return extractStats(doc), nil
}

// extractStats walks the parsed page collecting the labeled stat rows.
func extractStats(doc *html.Node) models.MarketData {
	var md models.MarketData

	for _, row := range findAllByClass(doc, statRowClass) {
		label := textOfClass(row, statLabelClass)
		value := textOfClass(row, statValueClass)
		if label == "" || value == "" {
			continue
		}

		num, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
		if err != nil {
			continue
		}

		switch {
		case strings.Contains(label, "P/E ratio"):
			pe := num
			md.PERatio = &pe
		case strings.Contains(label, "EPS"):
			eps := num
			md.LatestEarnings = &eps
		}
	}

	return md
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, class) {
			found = append(found, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

func textOfClass(n *html.Node, class string) string {
	nodes := findAllByClass(n, class)
	if len(nodes) == 0 {
		return ""
	}
	return strings.TrimSpace(nodeText(nodes[0]))
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
