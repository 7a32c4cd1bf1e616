package views

import (
	"sort"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

// Attribution compares the club's monthly return against both
// benchmarks. The club series is the equal-weight mean of per-position
// Total Return within each month; that matches the tracker sheet's
// per-line return convention rather than a value-weighted composite.
func Attribution(holdings *models.HoldingsTable, sp, anti *models.BenchmarkTable) *models.AttributionView {
	view := &models.AttributionView{
		Rows:   []models.AttributionRow{},
		Series: []models.ChartSeries{},
	}

	if !holdings.HasColumn(models.ColMonthKey) || !holdings.HasColumn(models.ColTotalReturn) {
		view.Caption = "Need 'Month' and 'Total Return' in Holdings to compute month-level comparison."
		return view
	}

	// Club Total Return: mean per month across positions.
	sums := map[string]float64{}
	counts := map[string]int{}
	var months []string
	for _, r := range holdings.Rows {
		if r.MonthKey == "" || r.TotalReturn == nil {
			continue
		}
		if _, seen := counts[r.MonthKey]; !seen {
			months = append(months, r.MonthKey)
		}
		sums[r.MonthKey] += *r.TotalReturn
		counts[r.MonthKey]++
	}
	sort.Strings(months)

	spByMonth := benchmarkReturns(sp)
	antiByMonth := benchmarkReturns(anti)

	for _, mk := range months {
		club := sums[mk] / float64(counts[mk])
		row := models.AttributionRow{
			MonthKey:         mk,
			ClubTotalReturn:  club,
			SP500TotalReturn: spByMonth[mk],
			AntiTotalReturn:  antiByMonth[mk],
		}
		// Excess returns are left undefined when the benchmark month
		// is missing; the table renders those as placeholders.
		if row.SP500TotalReturn != nil {
			diff := club - *row.SP500TotalReturn
			row.ClubVsSP500 = &diff
		}
		if row.AntiTotalReturn != nil {
			diff := club - *row.AntiTotalReturn
			row.ClubVsAnti = &diff
		}
		view.Rows = append(view.Rows, row)
	}

	clubSeries := models.ChartSeries{Label: "Club Total Return (Avg across positions)", Points: []models.ChartPoint{}}
	spSeries := models.ChartSeries{Label: "Excess Return vs S&P500", Points: []models.ChartPoint{}}
	antiSeries := models.ChartSeries{Label: "Excess Return vs Anti-Portfolio", Points: []models.ChartPoint{}}
	for _, row := range view.Rows {
		clubSeries.Points = append(clubSeries.Points, models.ChartPoint{MonthKey: row.MonthKey, Value: row.ClubTotalReturn})
		if row.ClubVsSP500 != nil {
			spSeries.Points = append(spSeries.Points, models.ChartPoint{MonthKey: row.MonthKey, Value: *row.ClubVsSP500})
		}
		if row.ClubVsAnti != nil {
			antiSeries.Points = append(antiSeries.Points, models.ChartPoint{MonthKey: row.MonthKey, Value: *row.ClubVsAnti})
		}
	}
	view.Series = append(view.Series, clubSeries, spSeries, antiSeries)

	return view
}

func benchmarkReturns(t *models.BenchmarkTable) map[string]*float64 {
	if t == nil {
		return map[string]*float64{}
	}
	return t.ReturnsByMonth()
}
