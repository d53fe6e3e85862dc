package sink

import (
	"context"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

// Multi fans an event out to several sinks in order.
type Multi []port.EventSink

func (m Multi) Emit(ctx context.Context, ev domain.Event) {
	for _, s := range m {
		s.Emit(ctx, ev)
	}
}
