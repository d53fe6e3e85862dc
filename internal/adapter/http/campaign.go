package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fund-ledger/internal/core/domain"
)

type initializeRequest struct {
	FundWallet string `json:"fund_wallet"`
	Deadline   int64  `json:"deadline"`
}

type campaignResponse struct {
	Key            string `json:"key"`
	Authority      string `json:"authority"`
	FundWallet     string `json:"fund_wallet"`
	TotalDonated   uint64 `json:"total_donated"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
	Available      uint64 `json:"available"`
	DonorCount     uint64 `json:"donor_count"`
	IsActive       bool   `json:"is_active"`
	State          string `json:"state"`
	Deadline       int64  `json:"deadline"`
	CreatedAt      int64  `json:"created_at"`
}

func toCampaignResponse(c *domain.Campaign, now int64) campaignResponse {
	return campaignResponse{
		Key:            c.Key,
		Authority:      string(c.Authority),
		FundWallet:     string(c.FundWallet),
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		Available:      c.Available(),
		DonorCount:     c.DonorCount,
		IsActive:       c.IsActive,
		State:          string(c.State(now)),
		Deadline:       c.Deadline,
		CreatedAt:      c.CreatedAt,
	}
}

// handleInitialize creates the caller's campaign. The caller becomes the
// authority. The deadline is given in seconds since the epoch.
func (h *Handler) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.svc.Initialize(r.Context(), actorFrom(r.Context()), domain.Address(req.FundWallet), req.Deadline)
	if err != nil {
		h.writeError(w, r, "initialize", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toCampaignResponse(c, h.svc.Now().Unix()))
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCampaign(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.writeError(w, r, "get campaign", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c, h.svc.Now().Unix()))
}

// handleToggle pauses an active campaign or resumes a paused one.
func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.ToggleActive(r.Context(), chi.URLParam(r, "key"), actorFrom(r.Context()))
	if err != nil {
		h.writeError(w, r, "toggle", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c, h.svc.Now().Unix()))
}
