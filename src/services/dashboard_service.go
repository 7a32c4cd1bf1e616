package services

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/metrics"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/normalize"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/views"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/workbook"
)

const sessionKeyPrefix = "session_"

// session holds everything derived from one upload. The normalized
// tables are built once at upload time; the views recompute their
// presentation from them on every request, since filters and sort are
// session-transient controls rather than stored state.
type session struct {
	ID            string
	CreatedAt     time.Time
	SheetNames    []string
	Holdings      *models.HoldingsTable
	SP500         *models.BenchmarkTable
	AntiPortfolio *models.BenchmarkTable
	Totals        models.PortfolioTotals
}

type dashboardServiceImpl struct {
	loader       *workbook.Loader
	sessionCache *cache.Cache
	sessionTTL   time.Duration
	baseCurrency string
}

func NewDashboardService(loader *workbook.Loader, sessionCache *cache.Cache, sessionTTL time.Duration, baseCurrency string) DashboardService {
	return &dashboardServiceImpl{
		loader:       loader,
		sessionCache: sessionCache,
		sessionTTL:   sessionTTL,
		baseCurrency: baseCurrency,
	}
}

// ProcessUpload runs the whole pipeline for one workbook: load (memoized
// on content), normalize the three sheets, derive totals and weights,
// and park the result as a session the view endpoints can read.
func (s *dashboardServiceImpl) ProcessUpload(fileReader io.Reader, filename string, filesize int64) (*UploadResult, error) {
	overallStartTime := time.Now()
	logger.L.Info("ProcessUpload START", "filename", filename, "filesize", filesize)

	data, err := io.ReadAll(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading upload: %v", ErrParsingFailed, err)
	}

	wb, err := s.loader.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	if wb.Holdings.Empty() {
		return nil, ErrHoldingsMissing
	}

	holdings := normalize.Holdings(wb.Holdings)
	if len(holdings.Rows) == 0 {
		return nil, ErrHoldingsMissing
	}
	sp := normalize.Benchmark(wb.SP500, models.BenchmarkSP500)
	anti := normalize.Benchmark(wb.AntiPortfolio, models.BenchmarkAntiPortfolio)

	totals := metrics.Derive(holdings, s.baseCurrency)

	sess := &session{
		ID:            uuid.New().String(),
		CreatedAt:     time.Now(),
		SheetNames:    wb.SheetNames,
		Holdings:      holdings,
		SP500:         sp,
		AntiPortfolio: anti,
		Totals:        totals,
	}
	s.sessionCache.Set(sessionKeyPrefix+sess.ID, sess, s.sessionTTL)

	logger.L.Info("ProcessUpload END",
		"sessionID", sess.ID,
		"holdingRows", len(holdings.Rows),
		"benchmarkRows", len(sp.Rows)+len(anti.Rows),
		"duration", time.Since(overallStartTime))

	return &UploadResult{
		SessionID:     sess.ID,
		SheetNames:    wb.SheetNames,
		HoldingRows:   len(holdings.Rows),
		BenchmarkRows: len(sp.Rows) + len(anti.Rows),
		Overview:      views.Overview(holdings, totals),
	}, nil
}

func (s *dashboardServiceImpl) getSession(sessionID string) (*session, error) {
	if cached, found := s.sessionCache.Get(sessionKeyPrefix + sessionID); found {
		return cached.(*session), nil
	}
	return nil, ErrSessionNotFound
}

func (s *dashboardServiceImpl) GetSessionMeta(sessionID string) (*models.SessionMeta, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return &models.SessionMeta{
		SessionID:     sess.ID,
		CreatedAt:     sess.CreatedAt.Format(time.RFC3339),
		SheetNames:    sess.SheetNames,
		HoldingRows:   len(sess.Holdings.Rows),
		BenchmarkRows: len(sess.SP500.Rows) + len(sess.AntiPortfolio.Rows),
		Filters:       views.FilterValues(sess.Holdings),
		Totals:        sess.Totals,
	}, nil
}

func (s *dashboardServiceImpl) GetOverview(sessionID string) (*models.OverviewView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return views.Overview(sess.Holdings, sess.Totals), nil
}

func (s *dashboardServiceImpl) GetHoldings(sessionID string, query models.HoldingsQuery) (*models.HoldingsView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return views.Holdings(sess.Holdings, query), nil
}

func (s *dashboardServiceImpl) GetBenchmarks(sessionID string) (*models.BenchmarksView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return views.Benchmarks(sess.SP500, sess.AntiPortfolio), nil
}

func (s *dashboardServiceImpl) GetAttribution(sessionID string) (*models.AttributionView, error) {
	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}
	return views.Attribution(sess.Holdings, sess.SP500, sess.AntiPortfolio), nil
}
