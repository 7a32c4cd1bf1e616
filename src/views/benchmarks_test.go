package views

import (
	"math"
	"testing"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

func benchmarkSeries(label string, returns map[string]float64, order []string) *models.BenchmarkTable {
	t := &models.BenchmarkTable{Label: label}
	for _, mk := range order {
		r := returns[mk]
		t.Rows = append(t.Rows, models.BenchmarkRow{
			Month:       mk,
			MonthKey:    mk,
			TotalReturn: &r,
			Benchmark:   label,
		})
	}
	return t
}

func TestBenchmarksCumulativeCompounding(t *testing.T) {
	months := []string{"2024-01", "2024-02", "2024-03"}
	sp := benchmarkSeries(models.BenchmarkSP500, map[string]float64{
		"2024-01": 0.10,
		"2024-02": -0.05,
		"2024-03": 0.02,
	}, months)

	view := Benchmarks(sp, &models.BenchmarkTable{Label: models.BenchmarkAntiPortfolio})

	if view.Caption != "" {
		t.Fatalf("unexpected caption: %q", view.Caption)
	}
	if len(view.Table) != 3 {
		t.Fatalf("expected 3 pivot rows, got %d", len(view.Table))
	}

	// Compound, not additive: (1+r) running product minus one.
	want := []float64{0.10, 0.045, 0.0659}
	for i, mk := range months {
		got := view.Table[i].Cumulative[models.BenchmarkSP500]
		if got == nil {
			t.Fatalf("month %s missing cumulative value", mk)
		}
		if math.Abs(*got-want[i]) > 1e-9 {
			t.Errorf("month %s cumulative = %v, want %v", mk, *got, want[i])
		}
	}
}

func TestBenchmarksPivotAndSeries(t *testing.T) {
	sp := benchmarkSeries(models.BenchmarkSP500, map[string]float64{
		"2024-01": 0.10,
		"2024-02": 0.10,
	}, []string{"2024-01", "2024-02"})
	// Anti series starts one month late.
	anti := benchmarkSeries(models.BenchmarkAntiPortfolio, map[string]float64{
		"2024-02": 0.02,
	}, []string{"2024-02"})

	view := Benchmarks(sp, anti)

	if len(view.Table) != 2 {
		t.Fatalf("expected 2 pivot rows, got %d", len(view.Table))
	}
	if view.Table[0].Cumulative[models.BenchmarkAntiPortfolio] != nil {
		t.Error("anti benchmark has no January observation; pivot cell must be nil")
	}
	if v := view.Table[1].Cumulative[models.BenchmarkAntiPortfolio]; v == nil || math.Abs(*v-0.02) > 1e-9 {
		t.Errorf("anti February cumulative = %v, want 0.02", v)
	}

	if len(view.Series) != 2 {
		t.Fatalf("expected one series per benchmark, got %d", len(view.Series))
	}
	// The late-starting series has no gap point, just fewer points.
	if len(view.Series[0].Points) != 2 || len(view.Series[1].Points) != 1 {
		t.Errorf("series point counts = %d, %d; want 2, 1", len(view.Series[0].Points), len(view.Series[1].Points))
	}
}

func TestBenchmarksSortsByMonthKey(t *testing.T) {
	sp := benchmarkSeries(models.BenchmarkSP500, map[string]float64{
		"2024-02": 0.10,
		"2024-01": 0.10,
	}, []string{"2024-02", "2024-01"})

	view := Benchmarks(sp, nil)

	if view.Table[0].MonthKey != "2024-01" || view.Table[1].MonthKey != "2024-02" {
		t.Errorf("pivot rows not month-sorted: %s, %s", view.Table[0].MonthKey, view.Table[1].MonthKey)
	}
	// Compounding must follow month order, not sheet order.
	if v := view.Table[1].Cumulative[models.BenchmarkSP500]; v == nil || math.Abs(*v-0.21) > 1e-9 {
		t.Errorf("February cumulative = %v, want 0.21", v)
	}
}

func TestBenchmarksEmpty(t *testing.T) {
	missingReturn := &models.BenchmarkTable{
		Label: models.BenchmarkSP500,
		Rows: []models.BenchmarkRow{
			{Month: "2024-01", MonthKey: "2024-01", TotalReturn: nil, Benchmark: models.BenchmarkSP500},
		},
	}

	view := Benchmarks(missingReturn, nil)

	if view.Caption == "" {
		t.Error("expected a caption when no usable benchmark rows exist")
	}
	if len(view.Table) != 0 || len(view.Series) != 0 {
		t.Error("empty view must carry no table rows or series")
	}
}
