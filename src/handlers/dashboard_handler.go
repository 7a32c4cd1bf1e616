package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/logger"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/models"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/services"
	"github.com/vikashsharma4westpac-stack/investing-club-dashboard/src/utils"
)

// DashboardHandler serves the four dashboard views for an upload session.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: service,
	}
}

func (h *DashboardHandler) HandleGetSessionMeta(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	meta, err := h.dashboardService.GetSessionMeta(sessionID)
	if err != nil {
		h.sendServiceError(w, r, sessionID, err)
		return
	}
	writeJSONWithETag(w, r, meta)
}

func (h *DashboardHandler) HandleGetOverview(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := h.dashboardService.GetOverview(sessionID)
	if err != nil {
		h.sendServiceError(w, r, sessionID, err)
		return
	}
	writeJSONWithETag(w, r, view)
}

// HandleGetHoldings serves the filterable holdings table. Filters come
// in as comma-separated query params; absent params mean "all values".
func (h *DashboardHandler) HandleGetHoldings(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	query := models.HoldingsQuery{
		Tickers: splitQueryList(r.URL.Query().Get("tickers")),
		Months:  splitQueryList(r.URL.Query().Get("months")),
		SortBy:  r.URL.Query().Get("sort_by"),
	}
	view, err := h.dashboardService.GetHoldings(sessionID, query)
	if err != nil {
		h.sendServiceError(w, r, sessionID, err)
		return
	}
	writeJSONWithETag(w, r, view)
}

func (h *DashboardHandler) HandleGetBenchmarks(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := h.dashboardService.GetBenchmarks(sessionID)
	if err != nil {
		h.sendServiceError(w, r, sessionID, err)
		return
	}
	writeJSONWithETag(w, r, view)
}

func (h *DashboardHandler) HandleGetAttribution(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	view, err := h.dashboardService.GetAttribution(sessionID)
	if err != nil {
		h.sendServiceError(w, r, sessionID, err)
		return
	}
	writeJSONWithETag(w, r, view)
}

func (h *DashboardHandler) sendServiceError(w http.ResponseWriter, r *http.Request, sessionID string, err error) {
	ctxLogger := logger.FromContext(r.Context())
	if errors.Is(err, services.ErrSessionNotFound) {
		ctxLogger.Debug("Session not found", "sessionID", sessionID)
		utils.SendJSONError(w, "Session not found or expired. Upload your workbook again.", http.StatusNotFound)
		return
	}
	ctxLogger.Error("Dashboard view retrieval failed", "sessionID", sessionID, "error", err)
	utils.SendJSONError(w, "Failed to retrieve view data.", http.StatusInternalServerError)
}

// writeJSONWithETag writes v as JSON with an ETag so unchanged views
// short-circuit to 304 on refresh.
func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Cache-Control", "no-cache, private")

	currentETag, etagErr := utils.GenerateETag(v)
	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else {
		logger.FromContext(r.Context()).Warn("Proceeding without ETag check due to ETag generation error or empty ETag", "error", etagErr)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("Error encoding JSON view response", "error", err)
	}
}

func splitQueryList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
