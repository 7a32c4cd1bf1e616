package services

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/xuri/excelize/v2"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/workbook"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func newTestService() DashboardService {
	c := cache.New(time.Minute, time.Minute)
	return NewDashboardService(workbook.NewLoader(c), c, time.Minute, "AUD")
}

// clubWorkbook builds a small but complete tracker workbook covering
// all three sheets.
func clubWorkbook(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), workbook.SheetHoldings); err != nil {
		t.Fatalf("renaming sheet: %v", err)
	}
	holdings := [][]interface{}{
		{"Month", "Ticker", "Stock", "Current Value $A", "Initial Investment $A", "Overall Return $A (incl. Dividends)", "Total Return"},
		{"2024-01-15", "AAPL", "Apple", 6000, 5000, 1000, 0.20},
		{"2024-01-15", "MSFT", "Microsoft", 4000, 5000, -1000, -0.20},
	}
	writeRows(t, f, workbook.SheetHoldings, holdings)

	if _, err := f.NewSheet(workbook.SheetSP500); err != nil {
		t.Fatalf("adding sheet: %v", err)
	}
	writeRows(t, f, workbook.SheetSP500, [][]interface{}{
		{"Month", "Total Return"},
		{"2024-01-01", 0.05},
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serializing workbook: %v", err)
	}
	return buf.Bytes()
}

// holdingsOnlyWorkbook builds a workbook whose only sheet has the
// given rows under the Holdings name.
func holdingsOnlyWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), workbook.SheetHoldings); err != nil {
		t.Fatalf("renaming sheet: %v", err)
	}
	writeRows(t, f, workbook.SheetHoldings, rows)
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serializing workbook: %v", err)
	}
	return buf.Bytes()
}

func writeRows(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("writing row: %v", err)
		}
	}
}

func TestProcessUploadAndViews(t *testing.T) {
	svc := newTestService()
	data := clubWorkbook(t)

	result, err := svc.ProcessUpload(bytes.NewReader(data), "club.xlsx", int64(len(data)))
	if err != nil {
		t.Fatalf("ProcessUpload: %v", err)
	}
	if result.SessionID == "" {
		t.Fatal("no session ID returned")
	}
	if result.HoldingRows != 2 {
		t.Errorf("holding rows = %d, want 2", result.HoldingRows)
	}
	if result.BenchmarkRows != 1 {
		t.Errorf("benchmark rows = %d, want 1", result.BenchmarkRows)
	}
	if result.Overview == nil || len(result.Overview.TopPositions) != 2 {
		t.Fatalf("overview payload incomplete: %+v", result.Overview)
	}

	meta, err := svc.GetSessionMeta(result.SessionID)
	if err != nil {
		t.Fatalf("GetSessionMeta: %v", err)
	}
	if meta.Totals.TotalValue == nil || *meta.Totals.TotalValue != 10000 {
		t.Errorf("total value = %v, want 10000", meta.Totals.TotalValue)
	}
	if meta.Totals.BaseCurrency != "AUD" {
		t.Errorf("base currency = %q", meta.Totals.BaseCurrency)
	}

	overview, err := svc.GetOverview(result.SessionID)
	if err != nil {
		t.Fatalf("GetOverview: %v", err)
	}
	if overview.TopPositions[0].Ticker != "AAPL" {
		t.Errorf("top position = %q, want AAPL (largest weight)", overview.TopPositions[0].Ticker)
	}

	holdingsView, err := svc.GetHoldings(result.SessionID, models.HoldingsQuery{Tickers: []string{"MSFT"}})
	if err != nil {
		t.Fatalf("GetHoldings: %v", err)
	}
	if len(holdingsView.Rows) != 1 || holdingsView.Rows[0].Ticker != "MSFT" {
		t.Errorf("filtered holdings = %+v", holdingsView.Rows)
	}

	benchmarks, err := svc.GetBenchmarks(result.SessionID)
	if err != nil {
		t.Fatalf("GetBenchmarks: %v", err)
	}
	if len(benchmarks.Table) != 1 {
		t.Errorf("benchmark pivot rows = %d, want 1", len(benchmarks.Table))
	}

	attribution, err := svc.GetAttribution(result.SessionID)
	if err != nil {
		t.Fatalf("GetAttribution: %v", err)
	}
	if len(attribution.Rows) != 1 {
		t.Fatalf("attribution rows = %d, want 1", len(attribution.Rows))
	}
	// Club mean is (0.20 + -0.20) / 2 = 0, excess vs S&P500 is -0.05.
	row := attribution.Rows[0]
	if row.ClubTotalReturn != 0 {
		t.Errorf("club return = %v, want 0", row.ClubTotalReturn)
	}
	if row.ClubVsSP500 == nil || *row.ClubVsSP500 != -0.05 {
		t.Errorf("club vs S&P500 = %v, want -0.05", row.ClubVsSP500)
	}
}

func TestProcessUploadHoldingsMissing(t *testing.T) {
	t.Run("no holdings sheet", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetName(f.GetSheetName(0), "Notes"); err != nil {
			t.Fatalf("renaming sheet: %v", err)
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			t.Fatalf("serializing workbook: %v", err)
		}

		_, err := newTestService().ProcessUpload(&buf, "notes.xlsx", int64(buf.Len()))
		if !errors.Is(err, ErrHoldingsMissing) {
			t.Errorf("err = %v, want ErrHoldingsMissing", err)
		}
	})

	t.Run("header only", func(t *testing.T) {
		data := holdingsOnlyWorkbook(t, [][]interface{}{
			{"Ticker", "Stock"},
		})

		_, err := newTestService().ProcessUpload(bytes.NewReader(data), "empty.xlsx", int64(len(data)))
		if !errors.Is(err, ErrHoldingsMissing) {
			t.Errorf("err = %v, want ErrHoldingsMissing", err)
		}
	})

	t.Run("rows without identifiers", func(t *testing.T) {
		data := holdingsOnlyWorkbook(t, [][]interface{}{
			{"Ticker", "Stock", "Units"},
			{"", "", 10},
		})

		_, err := newTestService().ProcessUpload(bytes.NewReader(data), "blank.xlsx", int64(len(data)))
		if !errors.Is(err, ErrHoldingsMissing) {
			t.Errorf("err = %v, want ErrHoldingsMissing", err)
		}
	})
}

func TestProcessUploadMalformed(t *testing.T) {
	_, err := newTestService().ProcessUpload(bytes.NewReader([]byte("junk")), "junk.xlsx", 4)
	if !errors.Is(err, ErrParsingFailed) {
		t.Errorf("err = %v, want ErrParsingFailed", err)
	}
}

func TestSessionNotFound(t *testing.T) {
	svc := newTestService()

	if _, err := svc.GetOverview("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetOverview err = %v, want ErrSessionNotFound", err)
	}
	if _, err := svc.GetSessionMeta("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSessionMeta err = %v, want ErrSessionNotFound", err)
	}
}
