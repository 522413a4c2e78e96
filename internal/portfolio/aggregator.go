// Package portfolio holds the pure math of the snapshot pipeline:
// per-holding derivation, sector rollups, the portfolio summary and the
// final percentage pass. No I/O happens here; given the same inputs the
// output is always the same.
package portfolio

import "github.com/stocklens/stocklens/internal/models"

// Derive builds the snapshot for one holding from whatever market data
// was resolved for it. Investment is always computed; the dependent
// chain presentValue -> gainLoss -> gainLossPercentage is only computed
// while its input is present, so an unresolved price leaves the whole
// chain nil instead of zero.
func Derive(h models.Holding, md models.MarketData) models.Snapshot {
	s := models.Snapshot{
		Holding:        h,
		Investment:     h.PurchasePrice * float64(h.Quantity),
		CurrentPrice:   md.CurrentPrice,
		PERatio:        md.PERatio,
		LatestEarnings: md.LatestEarnings,
	}

	if md.CurrentPrice != nil {
		pv := *md.CurrentPrice * float64(h.Quantity)
		s.PresentValue = &pv

		gl := pv - s.Investment
		s.GainLoss = &gl

		// Investment is positive under the holding invariants; the
		// guard keeps degenerate input from producing Inf.
		if s.Investment > 0 {
			pct := gl / s.Investment * 100
			s.GainLossPercentage = &pct
		}
	}

	return s
}

// SectorTotals groups snapshots by sector, preserving the order in
// which sectors are first seen. A holding whose presentValue or
// gainLoss is unresolved contributes 0 to the sector sums; sector rows
// always carry numbers even when every price lookup failed.
func SectorTotals(snapshots []models.Snapshot) []models.SectorTotal {
	totals := make([]models.SectorTotal, 0)
	index := make(map[string]int)

	for _, s := range snapshots {
		i, ok := index[s.Sector]
		if !ok {
			i = len(totals)
			index[s.Sector] = i
			totals = append(totals, models.SectorTotal{Sector: s.Sector})
		}

		totals[i].Investment += s.Investment
		if s.PresentValue != nil {
			totals[i].PresentValue += *s.PresentValue
		}
		if s.GainLoss != nil {
			totals[i].GainLoss += *s.GainLoss
		}
	}

	for i := range totals {
		if totals[i].Investment > 0 {
			totals[i].GainLossPercentage = totals[i].GainLoss / totals[i].Investment * 100
		}
	}

	return totals
}

// Summarize rolls the sector totals up into the portfolio summary.
func Summarize(sectorTotals []models.SectorTotal) models.PortfolioSummary {
	var summary models.PortfolioSummary
	for _, st := range sectorTotals {
		summary.TotalInvestment += st.Investment
		summary.TotalPresentValue += st.PresentValue
		summary.TotalGainLoss += st.GainLoss
	}
	if summary.TotalInvestment > 0 {
		summary.TotalGainLossPercentage = summary.TotalGainLoss / summary.TotalInvestment * 100
	}
	return summary
}

// ApplyPortfolioPercentages fills in the weight of every snapshot and
// sector total relative to the whole portfolio. It runs as a second
// pass because the grand total is only known after Summarize.
func ApplyPortfolioPercentages(snapshots []models.Snapshot, sectorTotals []models.SectorTotal, totalInvestment float64) {
	if totalInvestment <= 0 {
		return
	}
	for i := range snapshots {
		snapshots[i].PortfolioPercentage = snapshots[i].Investment / totalInvestment * 100
	}
	for i := range sectorTotals {
		sectorTotals[i].PortfolioPercentage = sectorTotals[i].Investment / totalInvestment * 100
	}
}
