package handler

import (
	"net/http"
	"time"

	"github.com/vaultpass/passgen-go/internal/service"
)

// StatsHandler handles HTTP requests for usage statistics.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.StatsService) *StatsHandler {
	return &StatsHandler{service: svc}
}

// HandleStats handles GET /api/v1/stats requests. The optional since query
// parameter is an RFC 3339 timestamp.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse("since must be an RFC 3339 timestamp"))
			return
		}
		since = &t
	}

	stats, err := h.service.Stats(r.Context(), since)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
