package views

import (
	"sort"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

// Sortable columns offered by the Holdings view, in display order.
// Only the ones actually present in the upload are exposed; when none
// survive, sorting falls back to Ticker.
var holdingsSortCandidates = []string{
	models.ColWeight,
	models.ColTotalReturn,
	models.ColVsSP500,
	models.ColVsAntiPortfolio,
	models.ColStockReturn,
	models.ColDividendReturn,
}

// FilterValues enumerates the ticker and month values selectable in
// the Holdings view. The frontend defaults its multi-selects to all of
// them.
func FilterValues(holdings *models.HoldingsTable) models.HoldingsFilters {
	filters := models.HoldingsFilters{
		Tickers:     []string{},
		Months:      []string{},
		SortColumns: []string{},
	}

	if holdings.HasColumn(models.ColTicker) {
		filters.Tickers = uniqueSorted(holdings.Rows, func(r models.HoldingRow) string { return r.Ticker })
	}
	if holdings.HasColumn(models.ColMonthKey) {
		filters.Months = uniqueSorted(holdings.Rows, func(r models.HoldingRow) string { return r.MonthKey })
	}

	for _, col := range holdingsSortCandidates {
		if holdings.HasColumn(col) {
			filters.SortColumns = append(filters.SortColumns, col)
		}
	}
	if len(filters.SortColumns) == 0 {
		filters.SortColumns = []string{models.ColTicker}
	}
	return filters
}

// Holdings builds the filterable, sortable holdings table view. An
// empty filter selection means "everything", mirroring the dashboard's
// default-all multi-selects.
func Holdings(holdings *models.HoldingsTable, query models.HoldingsQuery) *models.HoldingsView {
	filters := FilterValues(holdings)

	sortBy := query.SortBy
	if !contains(filters.SortColumns, sortBy) {
		sortBy = filters.SortColumns[0]
	}

	tickerSet := toSet(query.Tickers)
	monthSet := toSet(query.Months)

	rows := []models.HoldingsViewRow{}
	for _, r := range holdings.Rows {
		if len(tickerSet) > 0 && !tickerSet[r.Ticker] {
			continue
		}
		if len(monthSet) > 0 && !monthSet[r.MonthKey] {
			continue
		}
		rows = append(rows, models.HoldingsViewRow{
			HoldingRow: r,
			WeightPct:  asPercent(r.Weight),
		})
	}

	// Single-column sort, descending, the way the dashboard table works.
	if sortBy == models.ColTicker {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Ticker > rows[j].Ticker
		})
	} else {
		sort.SliceStable(rows, func(i, j int) bool {
			return numericLess(rows[j].NumericField(sortBy), rows[i].NumericField(sortBy))
		})
	}

	return &models.HoldingsView{
		Filters: filters,
		SortBy:  sortBy,
		Columns: holdings.Columns,
		Rows:    rows,
	}
}

func uniqueSorted(rows []models.HoldingRow, key func(models.HoldingRow) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v := key(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = true
		}
	}
	return set
}

func contains(values []string, v string) bool {
	for _, c := range values {
		if c == v {
			return true
		}
	}
	return false
}
