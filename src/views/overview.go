package views

import (
	"sort"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/utils"
)

const maxTopPositions = 10

// Overview builds the summary view: the totals cards, the top
// positions by weight, and the average-return-by-ticker bar chart.
func Overview(holdings *models.HoldingsTable, totals models.PortfolioTotals) *models.OverviewView {
	view := &models.OverviewView{
		Totals:          totals,
		TopPositions:    []models.TopPosition{},
		ReturnsByTicker: []models.BarPoint{},
	}

	// Top positions by weight, descending; rows without a weight sink
	// to the bottom and fall off the top-10 cut.
	rows := make([]models.HoldingRow, len(holdings.Rows))
	copy(rows, holdings.Rows)
	sort.SliceStable(rows, func(i, j int) bool {
		return numericLess(rows[j].Weight, rows[i].Weight)
	})
	for i := 0; i < len(rows) && i < maxTopPositions; i++ {
		r := rows[i]
		view.TopPositions = append(view.TopPositions, models.TopPosition{
			Ticker:          r.Ticker,
			Stock:           r.Stock,
			CurrentValueAUD: r.CurrentValueAUD,
			WeightPct:       asPercent(r.Weight),
			TotalReturn:     r.TotalReturn,
			VsSP500:         r.VsSP500,
			VsAntiPortfolio: r.VsAntiPortfolio,
		})
	}

	if !holdings.HasColumn(models.ColTicker) || !holdings.HasColumn(models.ColTotalReturn) {
		view.ChartCaption = "Couldn't find 'Ticker' and 'Total Return' columns to chart."
		return view
	}

	// Mean Total Return per ticker, descending.
	sums := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, r := range holdings.Rows {
		if r.TotalReturn == nil {
			continue
		}
		if _, seen := counts[r.Ticker]; !seen {
			order = append(order, r.Ticker)
		}
		sums[r.Ticker] += *r.TotalReturn
		counts[r.Ticker]++
	}
	for _, ticker := range order {
		view.ReturnsByTicker = append(view.ReturnsByTicker, models.BarPoint{
			Ticker: ticker,
			Value:  sums[ticker] / float64(counts[ticker]),
		})
	}
	sort.SliceStable(view.ReturnsByTicker, func(i, j int) bool {
		return view.ReturnsByTicker[i].Value > view.ReturnsByTicker[j].Value
	})

	return view
}

// numericLess orders by value with nil always last.
func numericLess(a, b *float64) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return *a < *b
}

// asPercent renders a ratio as a rounded percentage, preserving nil.
func asPercent(v *float64) *float64 {
	if v == nil {
		return nil
	}
	pct := utils.RoundFloat(*v*100, 2)
	return &pct
}
