package models

// The two benchmark series the workbook can carry. The labels double
// as the expected sheet names.
const (
	BenchmarkSP500         = "S&P500"
	BenchmarkAntiPortfolio = "Anti-Portfolio"
)

// BenchmarkRow is one monthly observation of a benchmark series.
// Rows only exist with a non-empty MonthKey; the normalizer discards
// anything it cannot key by month.
type BenchmarkRow struct {
	Month       string   `json:"month"`
	MonthKey    string   `json:"month_key"`
	TotalReturn *float64 `json:"total_return"`
	Benchmark   string   `json:"benchmark"`
}

// BenchmarkTable is the canonical 4-column benchmark series. It is
// always well-formed, even when the source sheet was missing: Label is
// set and Rows is empty.
type BenchmarkTable struct {
	Label string         `json:"label"`
	Rows  []BenchmarkRow `json:"rows"`
}

// ReturnsByMonth collapses the series to MonthKey -> Total Return for
// month-level joins. Duplicate months keep the last observation.
func (t *BenchmarkTable) ReturnsByMonth() map[string]*float64 {
	out := make(map[string]*float64, len(t.Rows))
	for _, r := range t.Rows {
		out[r.MonthKey] = r.TotalReturn
	}
	return out
}
