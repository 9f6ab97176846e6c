package handler

import (
	"log/slog"
	"net/http"

	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/model"
	"github.com/BigFrankV/proyecto-cuentas-claras-sub008/internal/stats"
)

// StatsHandler reports payment attempt counters
type StatsHandler struct {
	reader stats.Reader
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(reader stats.Reader) *StatsHandler {
	return &StatsHandler{reader: reader}
}

// Attempts handles GET /v1/payments/attempts/stats
func (h *StatsHandler) Attempts(w http.ResponseWriter, r *http.Request) {
	counters, err := h.reader.Total(r.Context())
	if err != nil {
		slog.Error("failed to read payment attempt stats", slog.String("error", err.Error()))
		WriteError(w, model.NewInternalError("failed to read payment attempt stats"))
		return
	}
	WriteData(w, http.StatusOK, counters)
}
