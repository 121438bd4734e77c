package handler

import (
	"net/http"
	"strconv"
	"time"

	"mindpath/internal/service"
	"mindpath/internal/transport/rest/middleware"
)

// OpsHandler handles operational monitoring endpoints
type OpsHandler struct {
	monitorSvc *service.MonitorService
}

// NewOpsHandler creates a new ops handler
func NewOpsHandler(monitorSvc *service.MonitorService) *OpsHandler {
	return &OpsHandler{monitorSvc: monitorSvc}
}

// FallbackSummary handles GET /v1/ops/fallbacks?toolId=...&hours=24
func (h *OpsHandler) FallbackSummary(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdvisorID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	toolID := r.URL.Query().Get("toolId")
	if toolID == "" {
		writeError(w, http.StatusBadRequest, "toolId is required")
		return
	}

	hours := 24
	if v := r.URL.Query().Get("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			hours = n
		}
	}
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	summary, err := h.monitorSvc.Summary(r.Context(), toolID, since)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// RecentFallbacks handles GET /v1/ops/fallbacks/recent?limit=50
func (h *OpsHandler) RecentFallbacks(w http.ResponseWriter, r *http.Request) {
	if middleware.GetAdvisorID(r.Context()) == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := int64(50)
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.monitorSvc.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
