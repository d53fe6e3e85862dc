package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type statsResponse struct {
	Key            string `json:"key"`
	TotalDonated   uint64 `json:"total_donated"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
	Available      uint64 `json:"available"`
	DonorCount     uint64 `json:"donor_count"`
	State          string `json:"state"`
	Settled        bool   `json:"settled"`
	Deadline       int64  `json:"deadline"`
}

// handleStats returns the balances and derived lifecycle state of a
// campaign. Unknown campaigns result in HTTP 404.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, r, "stats", err)
		return
	}
	h.writeJSON(w, http.StatusOK, statsResponse{
		Key:            stats.Key,
		TotalDonated:   stats.TotalDonated,
		TotalWithdrawn: stats.TotalWithdrawn,
		Available:      stats.Available,
		DonorCount:     stats.DonorCount,
		State:          string(stats.State),
		Settled:        stats.Settled,
		Deadline:       stats.Deadline,
	})
}
