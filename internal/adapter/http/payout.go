package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fund-ledger/internal/core/domain"
)

type withdrawRequest struct {
	Amount uint64 `json:"amount"`
}

type refundRequest struct {
	Donor  string `json:"donor"`
	Amount uint64 `json:"amount"`
}

func (h *Handler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req withdrawRequest
	if !h.decode(w, r, &req) {
		return
	}
	c, err := h.svc.Withdraw(r.Context(), chi.URLParam(r, "key"), actorFrom(r.Context()), req.Amount)
	if err != nil {
		h.writeError(w, r, "withdraw", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c, h.svc.Now().Unix()))
}

// handleRefund returns funds to a donor. A missing donor is rejected here
// rather than being sent to the transfer service.
func (h *Handler) handleRefund(w http.ResponseWriter, r *http.Request) {
	var req refundRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Donor == "" {
		http.Error(w, "missing donor", http.StatusBadRequest)
		return
	}
	c, err := h.svc.Refund(r.Context(), chi.URLParam(r, "key"), actorFrom(r.Context()), domain.Address(req.Donor), req.Amount)
	if err != nil {
		h.writeError(w, r, "refund", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c, h.svc.Now().Unix()))
}
