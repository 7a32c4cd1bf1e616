package workbook

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/xuri/excelize/v2"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

// Sheet names the dashboard knows about. Sheets with any other name
// are ignored, per the tracker workbook convention.
const (
	SheetHoldings      = "Holdings"
	SheetSP500         = models.BenchmarkSP500
	SheetAntiPortfolio = models.BenchmarkAntiPortfolio
)

// ErrMalformedWorkbook marks bytes that do not open as a valid .xlsx
// workbook. It is fatal for the upload and surfaced to the user.
var ErrMalformedWorkbook = errors.New("malformed workbook")

// Workbook is the result of opening one upload: the three known sheets
// (nil when absent) plus every sheet name actually present.
type Workbook struct {
	SheetNames    []string
	Holdings      *models.RawTable
	SP500         *models.RawTable
	AntiPortfolio *models.RawTable
}

// Loader opens workbooks and memoizes the result keyed by the SHA-256
// of the exact input bytes, so re-rendering the same upload never
// re-parses. Safe because parsing is pure and the result is read-only
// downstream.
type Loader struct {
	parseCache *cache.Cache
}

func NewLoader(parseCache *cache.Cache) *Loader {
	return &Loader{parseCache: parseCache}
}

// Load opens the workbook bytes and extracts the known sheets.
func (l *Loader) Load(data []byte) (*Workbook, error) {
	key := "wb_" + contentKey(data)
	if cached, found := l.parseCache.Get(key); found {
		logger.L.Debug("Workbook parse cache hit", "key", key)
		return cached.(*Workbook), nil
	}

	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWorkbook, err)
	}
	defer f.Close()

	wb := &Workbook{SheetNames: f.GetSheetList()}

	wb.Holdings, err = readSheet(f, wb.SheetNames, SheetHoldings)
	if err != nil {
		return nil, err
	}
	wb.SP500, err = readSheet(f, wb.SheetNames, SheetSP500)
	if err != nil {
		return nil, err
	}
	wb.AntiPortfolio, err = readSheet(f, wb.SheetNames, SheetAntiPortfolio)
	if err != nil {
		return nil, err
	}

	l.parseCache.Set(key, wb, cache.DefaultExpiration)
	logger.L.Info("Workbook parsed", "sheets", len(wb.SheetNames), "duration", time.Since(startTime))
	return wb, nil
}

// readSheet extracts one named sheet as a RawTable, or nil when the
// sheet is not in the workbook. The first row is the header; headers
// are trimmed but otherwise kept verbatim so column matching stays
// literal.
func readSheet(f *excelize.File, sheetNames []string, name string) (*models.RawTable, error) {
	present := false
	for _, s := range sheetNames {
		if s == name {
			present = true
			break
		}
	}
	if !present {
		return nil, nil
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet %q: %v", ErrMalformedWorkbook, name, err)
	}
	if len(rows) == 0 {
		return &models.RawTable{}, nil
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
	}

	table := &models.RawTable{Columns: columns}
	for _, row := range rows[1:] {
		// Pad ragged rows so every row spans the header width.
		cells := make([]string, len(columns))
		copy(cells, row)
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

func contentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
