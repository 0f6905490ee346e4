package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cellmon/internal/export"
	"cellmon/internal/fleet"
)

// ExportHandlers serve snapshot downloads.
type ExportHandlers struct {
	svc    *fleet.Service
	logger *zap.Logger
	now    func() time.Time
}

// NewExportHandlers returns export handlers.
func NewExportHandlers(svc *fleet.Service, logger *zap.Logger) *ExportHandlers {
	return &ExportHandlers{
		svc:    svc,
		logger: logger,
		now:    time.Now,
	}
}

// CSV handles GET /api/export/csv.
func (h *ExportHandlers) CSV(w http.ResponseWriter, r *http.Request) {
	rows := export.Rows(h.svc.Snapshot())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", attachment(export.Filename("csv", h.now().UTC())))
	if err := export.WriteCSV(w, rows); err != nil {
		h.logger.Error("failed to write csv export", zap.Error(err))
	}
}

// JSON handles GET /api/export/json.
func (h *ExportHandlers) JSON(w http.ResponseWriter, r *http.Request) {
	rows := export.Rows(h.svc.Snapshot())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(export.Filename("json", h.now().UTC())))
	if err := export.WriteJSON(w, rows); err != nil {
		h.logger.Error("failed to write json export", zap.Error(err))
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
