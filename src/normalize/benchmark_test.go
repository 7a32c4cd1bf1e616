package normalize

import (
	"testing"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

func TestBenchmarkAbsentOrEmpty(t *testing.T) {
	t.Run("nil table", func(t *testing.T) {
		out := Benchmark(nil, models.BenchmarkSP500)
		if out.Label != models.BenchmarkSP500 {
			t.Errorf("label = %q", out.Label)
		}
		if len(out.Rows) != 0 {
			t.Errorf("expected empty series, got %d rows", len(out.Rows))
		}
	})

	t.Run("header only", func(t *testing.T) {
		raw := &models.RawTable{Columns: []string{"Month", "Total Return"}}
		out := Benchmark(raw, models.BenchmarkAntiPortfolio)
		if len(out.Rows) != 0 {
			t.Errorf("expected empty series, got %d rows", len(out.Rows))
		}
	})
}

func TestBenchmarkColumnHeuristics(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		row     []string
		want    float64
	}{
		{
			name:    "literal total return",
			columns: []string{"Month", "Total Return"},
			row:     []string{"2024-01-01", "0.05"},
			want:    0.05,
		},
		{
			name:    "name containing return",
			columns: []string{"Month", "Notes", "Monthly Return %"},
			row:     []string{"2024-01-01", "fine month", "0.07"},
			want:    0.07,
		},
		{
			name:    "second column positional fallback",
			columns: []string{"Period", "Value"},
			row:     []string{"2024-01-01", "0.03"},
			want:    0.03,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := &models.RawTable{Columns: tt.columns, Rows: [][]string{tt.row}}
			out := Benchmark(raw, models.BenchmarkSP500)
			if len(out.Rows) != 1 {
				t.Fatalf("expected 1 row, got %d", len(out.Rows))
			}
			got := out.Rows[0].TotalReturn
			if got == nil || *got != tt.want {
				t.Errorf("Total Return = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("single column falls back to itself", func(t *testing.T) {
		raw := &models.RawTable{
			Columns: []string{"Month"},
			Rows:    [][]string{{"2024-01-01"}},
		}
		out := Benchmark(raw, models.BenchmarkSP500)
		if len(out.Rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(out.Rows))
		}
		// The month cell is not numeric, so the return coerces to nil.
		if out.Rows[0].TotalReturn != nil {
			t.Errorf("expected nil return, got %v", *out.Rows[0].TotalReturn)
		}
	})
}

func TestBenchmarkRowContract(t *testing.T) {
	raw := &models.RawTable{
		Columns: []string{"Month", "Total Return"},
		Rows: [][]string{
			{"2024-01-01", "0.05"},
			{"", "0.06"},          // no month key: discarded
			{"2024-02-01", "bad"}, // return fails coercion: kept as nil
		},
	}

	out := Benchmark(raw, models.BenchmarkAntiPortfolio)

	if len(out.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out.Rows))
	}
	for _, r := range out.Rows {
		if r.MonthKey == "" {
			t.Error("rows with empty MonthKey must be discarded")
		}
		if r.Benchmark != models.BenchmarkAntiPortfolio {
			t.Errorf("row not stamped with label: %q", r.Benchmark)
		}
	}
	if out.Rows[0].MonthKey != "2024-01" {
		t.Errorf("MonthKey = %q, want 2024-01", out.Rows[0].MonthKey)
	}
	if out.Rows[1].TotalReturn != nil {
		t.Error("failed coercion must yield nil, not drop the row")
	}
}
