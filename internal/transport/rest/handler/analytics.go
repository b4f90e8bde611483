package handler

import (
	"net/http"
	"time"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/model"
	"feedbackpro/internal/service"
	"feedbackpro/internal/transport/rest/middleware"
)

// AnalyticsHandler serves the dashboard rollup
type AnalyticsHandler struct {
	analyticsSvc *service.AnalyticsService
	countCache   cache.ResponseCountCache
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsSvc *service.AnalyticsService, countCache cache.ResponseCountCache) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsSvc: analyticsSvc,
		countCache:   countCache,
	}
}

// Summary handles GET /v1/analytics/summary?from=2026-08-01&to=2026-08-31.
// Missing bounds leave the window open on that side.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	window, err := parseWindow(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.analyticsSvc.Summary(r.Context(), accountID, window)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// LiveCounts handles GET /v1/analytics/live — the Redis fast path for
// per-survey response counters on the dashboard.
func (h *AnalyticsHandler) LiveCounts(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	counts, err := h.countCache.GetTop(r.Context(), accountID, 20)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if counts == nil {
		counts = []cache.SurveyCount{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"counts": counts})
}

func parseWindow(r *http.Request) (model.Window, error) {
	var window model.Window

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			return window, err
		}
		window.Start = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			return window, err
		}
		// Inclusive end of day
		window.End = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return window, nil
}
