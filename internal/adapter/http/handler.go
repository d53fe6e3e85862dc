package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

type ctxKey struct{}

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// Mutating routes require a bearer token that the Authenticator resolves to
// the acting address; read routes are public.
type Handler struct {
	svc    port.LedgerUseCase
	auth   port.Authenticator
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. metrics, when
// not nil, is mounted at /metrics.
func NewHandler(svc port.LedgerUseCase, auth port.Authenticator, metrics http.Handler, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, auth: auth, logger: logger}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Route("/api/v1/campaigns", func(r chi.Router) {
		r.With(h.authenticate).Post("/", h.handleInitialize)
		r.Route("/{key}", func(r chi.Router) {
			r.Get("/", h.handleGetCampaign)
			r.Get("/stats", h.handleStats)
			r.Get("/donations", h.handleListDonations)
			r.Get("/entries", h.handleListEntries)

			r.Group(func(r chi.Router) {
				r.Use(h.authenticate)
				r.Post("/donations", h.handleDonate)
				r.Post("/withdrawals", h.handleWithdraw)
				r.Post("/refunds", h.handleRefund)
				r.Post("/toggle", h.handleToggle)
			})
		})
	})
	if metrics != nil {
		r.Handle("/metrics", metrics)
	}
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// authenticate resolves the bearer token into the acting address and
// stores it on the request context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		actor, err := h.auth.Authenticate(r.Context(), token)
		if err != nil {
			h.logger.Debug("authentication failed", slog.Any("error", err))
			http.Error(w, "invalid bearer token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, actor)))
	})
}

func actorFrom(ctx context.Context) domain.Address {
	actor, _ := ctx.Value(ctxKey{}).(domain.Address)
	return actor
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status line is already out
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps ledger errors to HTTP statuses. Rejections carry their
// message; anything unexpected is logged and reported as a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(op+" error", slog.Any("error", err), slog.String("request_id", middleware.GetReqID(r.Context())))
		http.Error(w, "internal error", status)
		return
	}
	if status == http.StatusBadGateway {
		h.logger.Warn(op+" transfer error", slog.Any("error", err))
		http.Error(w, domain.ErrTransferFailed.Error(), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrCampaignNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCampaignExists), errors.Is(err, domain.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransferFailed):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidFundWallet),
		errors.Is(err, domain.ErrDeadlineInPast),
		errors.Is(err, domain.ErrCampaignTooLong),
		errors.Is(err, domain.ErrCampaignExpired),
		errors.Is(err, domain.ErrWithdrawalBeforeDeadline),
		errors.Is(err, domain.ErrDonationTooSmall),
		errors.Is(err, domain.ErrDonationTooLarge),
		errors.Is(err, domain.ErrMessageTooLong),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrZeroAmount),
		errors.Is(err, domain.ErrCampaignInactive):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
