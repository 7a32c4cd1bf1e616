package metrics

import (
	"time"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

// Derive computes the latest-snapshot portfolio totals from the
// normalized Holdings table and stamps each row's Weight. Missing
// inputs propagate as nil, never as zero: a workbook without the
// Initial Investment column simply has an undefined total cost, and a
// zero or undefined total value leaves every Weight undefined rather
// than dividing by zero.
//
// The Weight pass mutates the table in place and overwrites any prior
// computation, the one permitted mutation after normalization.
func Derive(holdings *models.HoldingsTable, baseCurrency string) models.PortfolioTotals {
	totals := models.PortfolioTotals{
		AsAt:         time.Now().Format("02 Jan 2006"),
		BaseCurrency: baseCurrency,
	}

	totals.TotalCost = sumColumn(holdings, models.ColInitialInvestmentAUD)
	totals.TotalValue = sumColumn(holdings, models.ColCurrentValueAUD)
	totals.TotalPL = sumColumn(holdings, models.ColOverallReturnAUD)

	if totals.TotalPL != nil && totals.TotalCost != nil && *totals.TotalCost != 0 {
		ratio := *totals.TotalPL / *totals.TotalCost
		totals.TotalReturn = &ratio
	}

	applyWeights(holdings, totals.TotalValue)
	return totals
}

// sumColumn sums the present values of a numeric column. The sum is
// nil only when the column itself is absent from the upload; a present
// column whose every cell failed coercion sums to zero, matching the
// "sum over rows with a value present" contract.
func sumColumn(holdings *models.HoldingsTable, col string) *float64 {
	if !holdings.HasColumn(col) {
		return nil
	}
	var total float64
	for i := range holdings.Rows {
		if v := holdings.Rows[i].NumericField(col); v != nil {
			total += *v
		}
	}
	return &total
}

func applyWeights(holdings *models.HoldingsTable, totalValue *float64) {
	defined := totalValue != nil && *totalValue != 0 && holdings.HasColumn(models.ColCurrentValueAUD)

	for i := range holdings.Rows {
		holdings.Rows[i].Weight = nil
		if !defined {
			continue
		}
		if v := holdings.Rows[i].CurrentValueAUD; v != nil {
			w := *v / *totalValue
			holdings.Rows[i].Weight = &w
		}
	}
	holdings.AddColumn(models.ColWeight)
}
