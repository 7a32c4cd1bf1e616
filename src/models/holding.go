package models

// Column names as they appear in the club's tracker workbook. The
// normalizer matches headers against these literally, so the quirks of
// the source sheet (the "Curent" typo, the trailing asterisk) are kept.
const (
	ColMonth                = "Month"
	ColStock                = "Stock"
	ColTicker               = "Ticker"
	ColTotalReturn          = "Total Return"
	ColVsAntiPortfolio      = "vs Anti-Portfolio"
	ColVsSP500              = "vs S&P500"
	ColStockReturn          = "Stock Return"
	ColCurrencyReturn       = "Currency Return"
	ColDividendReturn       = "Dividend Return"
	ColCurrentValueAUD      = "Current Value $A"
	ColInitialInvestmentAUD = "Initial Investment $A"
	ColOverallReturnAUD     = "Overall Return $A (incl. Dividends)"
	ColQty                  = "Qty"
	ColDividendsUSD         = "Dividends USD"
	ColBuyPriceUSD          = "Buy Price USD"
	ColCurrentPriceUSD      = "Curent Price USD"
	ColCurrentValueUSD      = "Current Value USD"
	ColQuoteCurrency        = "QuoteCurrency"
	ColFXAtTrade            = "AUD/USD at Trade*"
	ColFXNow                = "AUD/USD Now"

	// Derived columns, never read from the workbook.
	ColMonthKey = "MonthKey"
	ColWeight   = "Weight"
)

// HoldingsAllowList is the fixed set of Holdings columns the normalizer
// retains. Anything else in the sheet is silently dropped.
var HoldingsAllowList = []string{
	ColMonth, ColStock, ColTicker,
	ColTotalReturn, ColVsAntiPortfolio, ColVsSP500,
	ColStockReturn, ColCurrencyReturn, ColDividendReturn,
	ColCurrentValueAUD, ColInitialInvestmentAUD, ColOverallReturnAUD,
	ColQty, ColDividendsUSD, ColBuyPriceUSD, ColCurrentPriceUSD,
	ColCurrentValueUSD, ColQuoteCurrency, ColFXAtTrade, ColFXNow,
}

// HoldingsNumericColumns are coerced to numbers; cells that do not
// parse become nil rather than an error.
var HoldingsNumericColumns = []string{
	ColTotalReturn, ColVsAntiPortfolio, ColVsSP500,
	ColStockReturn, ColCurrencyReturn, ColDividendReturn,
	ColCurrentValueAUD, ColInitialInvestmentAUD, ColOverallReturnAUD,
	ColQty, ColDividendsUSD, ColBuyPriceUSD, ColCurrentPriceUSD,
	ColCurrentValueUSD, ColFXAtTrade, ColFXNow,
}

// HoldingIdentifierColumns are the keys used to drop blank rows. A row
// survives if any identifier column present in the sheet is non-empty.
var HoldingIdentifierColumns = []string{ColTicker, ColStock}

// HoldingRow is one position-month entry from the Holdings sheet.
// Numeric fields are pointers: nil means the column was absent or the
// cell failed coercion, and it marshals to JSON null so the frontend
// can render a placeholder instead of a fake zero.
type HoldingRow struct {
	Month    string `json:"month"`
	Stock    string `json:"stock"`
	Ticker   string `json:"ticker"`
	MonthKey string `json:"month_key"`

	TotalReturn          *float64 `json:"total_return"`
	VsAntiPortfolio      *float64 `json:"vs_anti_portfolio"`
	VsSP500              *float64 `json:"vs_sp500"`
	StockReturn          *float64 `json:"stock_return"`
	CurrencyReturn       *float64 `json:"currency_return"`
	DividendReturn       *float64 `json:"dividend_return"`
	CurrentValueAUD      *float64 `json:"current_value_aud"`
	InitialInvestmentAUD *float64 `json:"initial_investment_aud"`
	OverallReturnAUD     *float64 `json:"overall_return_aud"`
	Qty                  *float64 `json:"qty"`
	DividendsUSD         *float64 `json:"dividends_usd"`
	BuyPriceUSD          *float64 `json:"buy_price_usd"`
	CurrentPriceUSD      *float64 `json:"current_price_usd"`
	CurrentValueUSD      *float64 `json:"current_value_usd"`
	QuoteCurrency        string   `json:"quote_currency"`
	FXAtTrade            *float64 `json:"fx_at_trade"`
	FXNow                *float64 `json:"fx_now"`

	// Weight is derived by the metrics pass, not loaded.
	Weight *float64 `json:"weight"`
}

// NumericField returns the named numeric column of the row, including
// the derived Weight. Unknown names return nil.
func (h *HoldingRow) NumericField(col string) *float64 {
	switch col {
	case ColTotalReturn:
		return h.TotalReturn
	case ColVsAntiPortfolio:
		return h.VsAntiPortfolio
	case ColVsSP500:
		return h.VsSP500
	case ColStockReturn:
		return h.StockReturn
	case ColCurrencyReturn:
		return h.CurrencyReturn
	case ColDividendReturn:
		return h.DividendReturn
	case ColCurrentValueAUD:
		return h.CurrentValueAUD
	case ColInitialInvestmentAUD:
		return h.InitialInvestmentAUD
	case ColOverallReturnAUD:
		return h.OverallReturnAUD
	case ColQty:
		return h.Qty
	case ColDividendsUSD:
		return h.DividendsUSD
	case ColBuyPriceUSD:
		return h.BuyPriceUSD
	case ColCurrentPriceUSD:
		return h.CurrentPriceUSD
	case ColCurrentValueUSD:
		return h.CurrentValueUSD
	case ColFXAtTrade:
		return h.FXAtTrade
	case ColFXNow:
		return h.FXNow
	case ColWeight:
		return h.Weight
	}
	return nil
}

// HoldingsTable is the normalized Holdings sheet. Columns lists the
// allow-listed columns that were actually present in the upload (plus
// MonthKey/Weight once derived), so downstream code can distinguish
// "column absent" from "every value missing".
type HoldingsTable struct {
	Columns []string     `json:"columns"`
	Rows    []HoldingRow `json:"rows"`
}

func (t *HoldingsTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn records a derived column, once.
func (t *HoldingsTable) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}
