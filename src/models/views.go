package models

// View payloads returned to the dashboard frontend. These carry no
// business logic of their own; they are the JSON shape of the four
// dashboard views built in src/views.

// PortfolioTotals are the latest-snapshot summary metrics shown as
// cards on the Overview. Nil means the underlying column was missing
// or the ratio is undefined (e.g. zero cost), never zero.
type PortfolioTotals struct {
	AsAt         string   `json:"as_at"`
	BaseCurrency string   `json:"base_currency"`
	TotalCost    *float64 `json:"total_cost"`
	TotalValue   *float64 `json:"total_value"`
	TotalPL      *float64 `json:"total_pl"`
	TotalReturn  *float64 `json:"total_return"`
}

// TopPosition is one row of the Overview "top positions by weight" table.
type TopPosition struct {
	Ticker          string   `json:"ticker"`
	Stock           string   `json:"stock"`
	CurrentValueAUD *float64 `json:"current_value_aud"`
	WeightPct       *float64 `json:"weight_pct"`
	TotalReturn     *float64 `json:"total_return"`
	VsSP500         *float64 `json:"vs_sp500"`
	VsAntiPortfolio *float64 `json:"vs_anti_portfolio"`
}

// BarPoint is one bar of the returns-by-ticker chart.
type BarPoint struct {
	Ticker string  `json:"ticker"`
	Value  float64 `json:"value"`
}

type OverviewView struct {
	Totals          PortfolioTotals `json:"totals"`
	TopPositions    []TopPosition   `json:"top_positions"`
	ReturnsByTicker []BarPoint      `json:"returns_by_ticker"`
	ChartCaption    string          `json:"chart_caption,omitempty"`
}

// HoldingsQuery carries the session-transient filter controls of the
// Holdings view. Empty slices mean "all values selected".
type HoldingsQuery struct {
	Tickers []string
	Months  []string
	SortBy  string
}

// HoldingsFilters enumerates the selectable filter values so the
// frontend can populate its multi-selects with everything selected.
type HoldingsFilters struct {
	Tickers     []string `json:"tickers"`
	Months      []string `json:"months"`
	SortColumns []string `json:"sort_columns"`
}

// HoldingsViewRow is a HoldingRow plus the percentage rendering of
// Weight the table displays.
type HoldingsViewRow struct {
	HoldingRow
	WeightPct *float64 `json:"weight_pct"`
}

type HoldingsView struct {
	Filters HoldingsFilters   `json:"filters"`
	SortBy  string            `json:"sort_by"`
	Columns []string          `json:"columns"`
	Rows    []HoldingsViewRow `json:"rows"`
}

// ChartPoint is one observation of a monthly line chart.
type ChartPoint struct {
	MonthKey string  `json:"month_key"`
	Value    float64 `json:"value"`
}

// ChartSeries is a labelled line; months with no value are simply
// absent rather than carried as gaps.
type ChartSeries struct {
	Label  string       `json:"label"`
	Points []ChartPoint `json:"points"`
}

// BenchmarkPivotRow is one row of the Benchmarks table: the cumulative
// compounded return of each benchmark at that month, nil where a
// benchmark has no observation yet.
type BenchmarkPivotRow struct {
	MonthKey   string              `json:"month_key"`
	Cumulative map[string]*float64 `json:"cumulative"`
}

type BenchmarksView struct {
	Table   []BenchmarkPivotRow `json:"table"`
	Series  []ChartSeries       `json:"series"`
	Caption string              `json:"caption,omitempty"`
}

// AttributionRow compares the club's equal-weight average monthly
// return with both benchmarks for one month.
type AttributionRow struct {
	MonthKey         string   `json:"month_key"`
	ClubTotalReturn  float64  `json:"club_total_return"`
	SP500TotalReturn *float64 `json:"sp500_total_return"`
	AntiTotalReturn  *float64 `json:"anti_total_return"`
	ClubVsSP500      *float64 `json:"club_vs_sp500"`
	ClubVsAnti       *float64 `json:"club_vs_anti"`
}

type AttributionView struct {
	Rows    []AttributionRow `json:"rows"`
	Series  []ChartSeries    `json:"series"`
	Caption string           `json:"caption,omitempty"`
}

// SessionMeta describes an upload session: which sheets the workbook
// carried and what the Holdings view can filter on.
type SessionMeta struct {
	SessionID     string          `json:"session_id"`
	CreatedAt     string          `json:"created_at"`
	SheetNames    []string        `json:"sheet_names"`
	HoldingRows   int             `json:"holding_rows"`
	BenchmarkRows int             `json:"benchmark_rows"`
	Filters       HoldingsFilters `json:"filters"`
	Totals        PortfolioTotals `json:"totals"`
}
