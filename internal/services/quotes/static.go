package quotes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/stocklens/stocklens/internal/models"
)

// StaticStats serves fundamentals from a local sqlite lookup table
// instead of a live scrape. Useful for development and for markets
// where scraping is not an option; it satisfies the same StatsProvider
// contract as GoogleClient.
type StaticStats struct {
	db *sql.DB
}

// NewStaticStats opens the sqlite database at path and ensures the
// lookup table exists.
func NewStaticStats(path string) (*StaticStats, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening stats db: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS stock_stats (
			ticker          TEXT NOT NULL,
			exchange        TEXT NOT NULL,
			pe_ratio        REAL,
			latest_earnings REAL,
			PRIMARY KEY (ticker, exchange)
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating stock_stats table: %w", err)
	}

	return &StaticStats{db: db}, nil
}

func (s *StaticStats) Name() string { return "static" }

// Stats looks the ticker up in the table. An absent row means "no data
// known", which is an empty result rather than a failure.
func (s *StaticStats) Stats(ctx context.Context, ticker string, exchange models.Exchange) (models.MarketData, error) {
	const query = `
		SELECT pe_ratio, latest_earnings
		FROM stock_stats
		WHERE ticker = ? AND exchange = ?`

	var pe, earnings sql.NullFloat64
	err := s.db.QueryRowContext(ctx, query, ticker, string(exchange)).Scan(&pe, &earnings)
	if errors.Is(err, sql.ErrNoRows) {
		return models.MarketData{}, nil
	}
	if err != nil {
		return models.MarketData{}, fmt.Errorf("querying stats for %s: %w", ticker, err)
	}

	var md models.MarketData
	if pe.Valid && pe.Float64 > 0 {
		v := pe.Float64
		md.PERatio = &v
	}
	if earnings.Valid {
		v := earnings.Float64
		md.LatestEarnings = &v
	}
	return md, nil
}

// Upsert stores or replaces the fundamentals row for a ticker. Nil
// fields are stored as NULL.
func (s *StaticStats) Upsert(ctx context.Context, ticker string, exchange models.Exchange, md models.MarketData) error {
	const query = `
		INSERT INTO stock_stats (ticker, exchange, pe_ratio, latest_earnings)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (ticker, exchange) DO UPDATE SET
			pe_ratio = excluded.pe_ratio,
			latest_earnings = excluded.latest_earnings`

	var pe, earnings any
	if md.PERatio != nil {
		pe = *md.PERatio
	}
	if md.LatestEarnings != nil {
		earnings = *md.LatestEarnings
	}

	_, err := s.db.ExecContext(ctx, query, ticker, string(exchange), pe, earnings)
	return err
}

// Close releases the database handle.
func (s *StaticStats) Close() error {
	return s.db.Close()
}
