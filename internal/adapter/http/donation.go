package httpadapter

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

const anonymous = "Anonymous"

type donateRequest struct {
	Amount     uint64 `json:"amount"`
	Message    string `json:"message"`
	Anonymous  bool   `json:"anonymous"`
	FundWallet string `json:"fund_wallet,omitempty"`
}

type entryResponse struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Actor          string `json:"actor"`
	Counterparty   string `json:"counterparty"`
	Amount         uint64 `json:"amount"`
	Message        string `json:"message,omitempty"`
	Anonymous      bool   `json:"anonymous"`
	TotalDonated   uint64 `json:"total_donated"`
	TotalWithdrawn uint64 `json:"total_withdrawn"`
	CreatedAt      int64  `json:"created_at"`
}

type entriesResponse struct {
	Entries []entryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// toEntryResponse hides the donor of an anonymous donation.
func toEntryResponse(e domain.Entry) entryResponse {
	actor := string(e.Actor)
	if e.Anonymous {
		actor = anonymous
	}
	return entryResponse{
		ID:             e.ID.String(),
		Kind:           string(e.Kind),
		Actor:          actor,
		Counterparty:   string(e.Counterparty),
		Amount:         e.Amount,
		Message:        e.Message,
		Anonymous:      e.Anonymous,
		TotalDonated:   e.TotalDonated,
		TotalWithdrawn: e.TotalWithdrawn,
		CreatedAt:      e.CreatedAt,
	}
}

// handleDonate moves the requested amount from the caller to the fund
// wallet. The response is the updated campaign.
func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if !h.decode(w, r, &req) {
		return
	}
	// storage text columns cannot hold NUL
	if strings.ContainsRune(req.Message, 0) {
		http.Error(w, "message contains a NUL character", http.StatusBadRequest)
		return
	}
	c, err := h.svc.Donate(r.Context(), chi.URLParam(r, "key"), domain.DonateParams{
		Donor:      actorFrom(r.Context()),
		Amount:     req.Amount,
		Message:    req.Message,
		Anonymous:  req.Anonymous,
		FundWallet: domain.Address(req.FundWallet),
	})
	if err != nil {
		h.writeError(w, r, "donate", err)
		return
	}
	h.writeJSON(w, http.StatusOK, toCampaignResponse(c, h.svc.Now().Unix()))
}

// handleListDonations returns the donation history, newest first. It
// accepts optional `donor` and `limit` query parameters.
func (h *Handler) handleListDonations(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	filter.Kind = domain.EntryDonation
	h.listEntries(w, r, filter)
}

// handleListEntries returns the whole journal, optionally narrowed by
// `kind`, `actor` and `limit`.
func (h *Handler) handleListEntries(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseFilter(w, r)
	if !ok {
		return
	}
	switch kind := domain.EntryKind(r.URL.Query().Get("kind")); kind {
	case "", domain.EntryDonation, domain.EntryWithdrawal, domain.EntryRefund:
		filter.Kind = kind
	default:
		http.Error(w, "invalid kind", http.StatusBadRequest)
		return
	}
	h.listEntries(w, r, filter)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request, filter port.EntryFilter) {
	entries, err := h.svc.ListEntries(r.Context(), chi.URLParam(r, "key"), filter)
	if err != nil {
		h.writeError(w, r, "list entries", err)
		return
	}
	resp := entriesResponse{Entries: make([]entryResponse, 0, len(entries)), Total: len(entries)}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(e))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func parseFilter(w http.ResponseWriter, r *http.Request) (port.EntryFilter, bool) {
	q := r.URL.Query()
	filter := port.EntryFilter{Actor: domain.Address(q.Get("actor"))}
	if donor := q.Get("donor"); donor != "" {
		filter.Actor = domain.Address(donor)
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return filter, false
		}
		filter.Limit = limit
	}
	return filter, true
}
