package normalize

import (
	"strings"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/security/validation"
)

// Benchmark normalizes a raw benchmark sheet into the canonical
// (Month, MonthKey, Total Return, Benchmark) series. Benchmark sheets
// vary more than Holdings does, so column discovery is heuristic:
//
//	month column:  literal "Month", else the first column
//	return column: literal "Total Return", else the first column whose
//	               name contains "return" (any case), else the second
//	               column, else the first
//
// Rows that yield an empty MonthKey are discarded; they cannot join
// against anything downstream. An absent or empty sheet produces an
// empty series, never an error.
func Benchmark(raw *models.RawTable, label string) *models.BenchmarkTable {
	out := &models.BenchmarkTable{Label: label}
	if raw.Empty() {
		return out
	}

	monthIdx := raw.ColumnIndex(models.ColMonth)
	if monthIdx < 0 {
		monthIdx = 0
	}

	returnIdx := raw.ColumnIndex(models.ColTotalReturn)
	if returnIdx < 0 {
		for i, c := range raw.Columns {
			if strings.Contains(strings.ToLower(c), "return") {
				returnIdx = i
				break
			}
		}
	}
	if returnIdx < 0 {
		if len(raw.Columns) > 1 {
			returnIdx = 1
		} else {
			returnIdx = 0
		}
	}

	for i := range raw.Rows {
		month := raw.Cell(i, monthIdx)
		key := MonthKey(month)
		if key == "" {
			continue
		}
		out.Rows = append(out.Rows, models.BenchmarkRow{
			Month:       validation.CleanCell(month),
			MonthKey:    key,
			TotalReturn: ParseNumeric(raw.Cell(i, returnIdx)),
			Benchmark:   label,
		})
	}
	return out
}
