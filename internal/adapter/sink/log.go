package sink

import (
	"context"
	"log/slog"

	"fund-ledger/internal/core/domain"
)

// Log writes every event as a human readable line to a structured logger.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

func (s *Log) Emit(ctx context.Context, ev domain.Event) {
	s.logger.InfoContext(ctx, ev.String(),
		slog.String("event", string(ev.Kind)),
		slog.String("campaign", ev.CampaignKey),
		slog.String("actor", string(ev.Actor)),
		slog.Uint64("amount", ev.Amount),
		slog.Uint64("total_donated", ev.TotalDonated),
		slog.Uint64("total_withdrawn", ev.TotalWithdrawn),
	)
}
