package normalize

import (
	"strings"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/security/validation"
)

// Holdings normalizes the raw Holdings sheet:
//  1. keep only allow-listed columns that are present,
//  2. drop rows where every present identifier (Ticker, Stock) is empty,
//  3. derive MonthKey when a Month column exists,
//  4. coerce the numeric-designated columns, nil on failure.
//
// It never fails; a structurally unreadable sheet is caught upstream
// by the loader.
func Holdings(raw *models.RawTable) *models.HoldingsTable {
	out := &models.HoldingsTable{}
	if raw.Empty() {
		return out
	}

	colIdx := make(map[string]int, len(models.HoldingsAllowList))
	for _, name := range models.HoldingsAllowList {
		if i := raw.ColumnIndex(name); i >= 0 {
			colIdx[name] = i
			out.Columns = append(out.Columns, name)
		}
	}

	var idCols []string
	for _, name := range models.HoldingIdentifierColumns {
		if _, ok := colIdx[name]; ok {
			idCols = append(idCols, name)
		}
	}

	_, hasMonth := colIdx[models.ColMonth]
	if hasMonth {
		out.AddColumn(models.ColMonthKey)
	}

	dropped := 0
	for i := range raw.Rows {
		cell := func(name string) (string, bool) {
			idx, ok := colIdx[name]
			if !ok {
				return "", false
			}
			return raw.Cell(i, idx), true
		}

		// Rows without any identifying key are blank padding in the
		// tracker sheet, not positions.
		if len(idCols) > 0 {
			empty := true
			for _, name := range idCols {
				if v, _ := cell(name); strings.TrimSpace(v) != "" {
					empty = false
					break
				}
			}
			if empty {
				dropped++
				continue
			}
		}

		var row models.HoldingRow
		if v, ok := cell(models.ColMonth); ok {
			row.Month = validation.CleanCell(v)
			row.MonthKey = MonthKey(v)
		}
		if v, ok := cell(models.ColStock); ok {
			row.Stock = validation.CleanIdentifier(v)
		}
		if v, ok := cell(models.ColTicker); ok {
			row.Ticker = validation.CleanIdentifier(v)
		}
		if v, ok := cell(models.ColQuoteCurrency); ok {
			row.QuoteCurrency = validation.CleanCell(v)
		}

		for _, name := range models.HoldingsNumericColumns {
			v, ok := cell(name)
			if !ok {
				continue
			}
			setNumericField(&row, name, ParseNumeric(v))
		}

		out.Rows = append(out.Rows, row)
	}

	if dropped > 0 {
		logger.L.Debug("Dropped holdings rows without identifiers", "count", dropped)
	}
	return out
}

func setNumericField(row *models.HoldingRow, col string, v *float64) {
	switch col {
	case models.ColTotalReturn:
		row.TotalReturn = v
	case models.ColVsAntiPortfolio:
		row.VsAntiPortfolio = v
	case models.ColVsSP500:
		row.VsSP500 = v
	case models.ColStockReturn:
		row.StockReturn = v
	case models.ColCurrencyReturn:
		row.CurrencyReturn = v
	case models.ColDividendReturn:
		row.DividendReturn = v
	case models.ColCurrentValueAUD:
		row.CurrentValueAUD = v
	case models.ColInitialInvestmentAUD:
		row.InitialInvestmentAUD = v
	case models.ColOverallReturnAUD:
		row.OverallReturnAUD = v
	case models.ColQty:
		row.Qty = v
	case models.ColDividendsUSD:
		row.DividendsUSD = v
	case models.ColBuyPriceUSD:
		row.BuyPriceUSD = v
	case models.ColCurrentPriceUSD:
		row.CurrentPriceUSD = v
	case models.ColCurrentValueUSD:
		row.CurrentValueUSD = v
	case models.ColFXAtTrade:
		row.FXAtTrade = v
	case models.ColFXNow:
		row.FXNow = v
	}
}
