package views

import (
	"sort"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

// Benchmarks builds the cumulative-return view over both benchmark
// series. Monthly returns compound into a running (1+r) product minus
// one per benchmark; the table pivots the result to one column per
// benchmark indexed by MonthKey.
func Benchmarks(sp, anti *models.BenchmarkTable) *models.BenchmarksView {
	view := &models.BenchmarksView{
		Table:  []models.BenchmarkPivotRow{},
		Series: []models.ChartSeries{},
	}

	// Concatenate, keeping only rows usable for compounding.
	var rows []models.BenchmarkRow
	for _, t := range []*models.BenchmarkTable{sp, anti} {
		if t == nil {
			continue
		}
		for _, r := range t.Rows {
			if r.MonthKey == "" || r.TotalReturn == nil {
				continue
			}
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		view.Caption = "No benchmark data found."
		return view
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MonthKey < rows[j].MonthKey
	})

	// Running compounded return per benchmark, in month order.
	growth := map[string]float64{}
	cumulative := make([]float64, len(rows))
	for i, r := range rows {
		g, ok := growth[r.Benchmark]
		if !ok {
			g = 1
		}
		g *= 1 + *r.TotalReturn
		growth[r.Benchmark] = g
		cumulative[i] = g - 1
	}

	// Pivot: one row per MonthKey, one column per benchmark; when a
	// benchmark has several observations in a month the last one wins.
	labels := []string{}
	byMonth := map[string]map[string]*float64{}
	monthKeys := []string{}
	for i, r := range rows {
		if _, ok := byMonth[r.MonthKey]; !ok {
			byMonth[r.MonthKey] = map[string]*float64{}
			monthKeys = append(monthKeys, r.MonthKey)
		}
		if !contains(labels, r.Benchmark) {
			labels = append(labels, r.Benchmark)
		}
		v := cumulative[i]
		byMonth[r.MonthKey][r.Benchmark] = &v
	}
	sort.Strings(monthKeys)

	for _, mk := range monthKeys {
		pivotRow := models.BenchmarkPivotRow{
			MonthKey:   mk,
			Cumulative: map[string]*float64{},
		}
		for _, label := range labels {
			pivotRow.Cumulative[label] = byMonth[mk][label]
		}
		view.Table = append(view.Table, pivotRow)
	}

	// One line per benchmark; months the benchmark never observed are
	// simply skipped rather than plotted as gaps.
	for _, label := range labels {
		series := models.ChartSeries{Label: "Cumulative Return: " + label, Points: []models.ChartPoint{}}
		for _, mk := range monthKeys {
			if v := byMonth[mk][label]; v != nil {
				series.Points = append(series.Points, models.ChartPoint{MonthKey: mk, Value: *v})
			}
		}
		view.Series = append(view.Series, series)
	}

	return view
}
