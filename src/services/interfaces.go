package services

import (
	"errors"
	"io"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
)

// UploadResult is the response to a single ProcessUpload call. The
// Overview payload rides along so the frontend can paint the default
// view without a second round trip.
type UploadResult struct {
	SessionID     string               `json:"session_id"`
	SheetNames    []string             `json:"sheet_names"`
	HoldingRows   int                  `json:"holding_rows"`
	BenchmarkRows int                  `json:"benchmark_rows"`
	Overview      *models.OverviewView `json:"overview"`
}

// Define common service errors
var (
	ErrParsingFailed   = errors.New("workbook parsing failed")
	ErrHoldingsMissing = errors.New("workbook has no non-empty 'Holdings' sheet")
	ErrSessionNotFound = errors.New("session not found or expired")
)

// DashboardService defines the interface for the core dashboard logic:
// turning one uploaded workbook into an in-memory session and serving
// the four views from it.
type DashboardService interface {
	ProcessUpload(fileReader io.Reader, filename string, filesize int64) (*UploadResult, error)
	GetSessionMeta(sessionID string) (*models.SessionMeta, error)
	GetOverview(sessionID string) (*models.OverviewView, error)
	GetHoldings(sessionID string, query models.HoldingsQuery) (*models.HoldingsView, error)
	GetBenchmarks(sessionID string) (*models.BenchmarksView, error)
	GetAttribution(sessionID string) (*models.AttributionView, error)
}
