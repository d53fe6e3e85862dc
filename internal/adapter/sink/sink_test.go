package sink

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port/mocks"
)

func donation(amount uint64) domain.Event {
	return domain.Event{
		Kind:         domain.EventDonated,
		CampaignKey:  "k",
		Actor:        "alice",
		Amount:       amount,
		Message:      "thanks",
		TotalDonated: amount,
	}
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	ctx := context.Background()

	m.Emit(ctx, donation(100_000))
	m.Emit(ctx, donation(200_000))
	m.Emit(ctx, domain.Event{Kind: domain.EventToggled, CampaignKey: "k"})

	require.Equal(t, float64(2), testutil.ToFloat64(m.operations.WithLabelValues("donate")))
	require.Equal(t, float64(300_000), testutil.ToFloat64(m.amount.WithLabelValues("donate")))
	require.Equal(t, float64(1), testutil.ToFloat64(m.operations.WithLabelValues("toggle")))
	// toggles move no value
	require.Equal(t, 1, testutil.CollectAndCount(m.amount))
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	NewLog(slog.New(slog.NewTextHandler(&buf, nil))).Emit(context.Background(), donation(100_000))

	out := buf.String()
	require.Contains(t, out, "Donation received: 100000 lamports - Message: thanks")
	require.Contains(t, out, "campaign=k")
	require.Contains(t, out, "event=donate")
}

func TestMultiFansOutInOrder(t *testing.T) {
	first := mocks.NewMockEventSink(t)
	second := mocks.NewMockEventSink(t)
	ev := donation(100_000)

	var order []string
	first.EXPECT().Emit(mock.Anything, ev).Run(func(context.Context, domain.Event) {
		order = append(order, "first")
	}).Once()
	second.EXPECT().Emit(mock.Anything, ev).Run(func(context.Context, domain.Event) {
		order = append(order, "second")
	}).Once()

	Multi{first, second}.Emit(context.Background(), ev)
	require.Equal(t, []string{"first", "second"}, order)
}
