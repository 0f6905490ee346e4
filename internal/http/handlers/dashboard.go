package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cellmon/internal/fleet"
)

// DashboardHandlers serve the monitoring API over the fleet service.
type DashboardHandlers struct {
	svc    *fleet.Service
	logger *zap.Logger
}

// NewDashboardHandlers returns handlers bound to the fleet service.
func NewDashboardHandlers(svc *fleet.Service, logger *zap.Logger) *DashboardHandlers {
	return &DashboardHandlers{
		svc:    svc,
		logger: logger,
	}
}

// Overview handles GET /api/overview.
func (h *DashboardHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Snapshot()
	autoEnabled, interval := h.svc.AutoRefresh()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"aggregates":      snap.Aggregates(),
		"cell_count":      len(snap.Cells),
		"sequence":        snap.Sequence,
		"taken_at":        snap.TakenAt,
		"auto_refresh":    autoEnabled,
		"refresh_seconds": int(interval / time.Second),
	})
}

// Cells handles GET /api/cells.
func (h *DashboardHandlers) Cells(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Snapshot())
}

// Refresh handles POST /api/refresh.
func (h *DashboardHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	snap := h.svc.Refresh()
	h.logger.Info("manual refresh", zap.Uint64("sequence", snap.Sequence))
	writeJSON(w, http.StatusOK, snap)
}

// SetRoster handles PUT /api/roster.
func (h *DashboardHandlers) SetRoster(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Roster []string `json:"roster"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	snap, err := h.svc.SetRoster(req.Roster)
	if err != nil {
		if errors.Is(err, fleet.ErrRosterSize) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to set roster", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to set roster")
		return
	}

	h.logger.Info("roster replaced", zap.Int("cells", len(snap.Cells)))
	writeJSON(w, http.StatusOK, snap)
}

// SetAutoRefresh handles PUT /api/autorefresh.
func (h *DashboardHandlers) SetAutoRefresh(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Enabled         bool `json:"enabled"`
		IntervalSeconds *int `json:"interval_seconds"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	_, current := h.svc.AutoRefresh()
	interval := current
	if req.IntervalSeconds != nil {
		interval = time.Duration(*req.IntervalSeconds) * time.Second
	}

	if err := h.svc.SetAutoRefresh(req.Enabled, interval); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enabled":          req.Enabled,
		"interval_seconds": int(interval / time.Second),
	})
}
