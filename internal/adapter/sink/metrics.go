package sink

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fund-ledger/internal/core/domain"
)

const metricNamePrefix = "fund_ledger_"

// Metrics counts committed operations and the value they moved.
type Metrics struct {
	operations *prometheus.CounterVec
	amount     *prometheus.CounterVec
}

// NewMetrics registers the ledger counters with registry.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: metricNamePrefix + "operations_total",
			Help: "Total number of committed ledger operations",
		}, []string{"op"}),
		amount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: metricNamePrefix + "amount_total",
			Help: "Total lamports moved by committed ledger operations",
		}, []string{"op"}),
	}
}

func (m *Metrics) Emit(_ context.Context, ev domain.Event) {
	op := string(ev.Kind)
	m.operations.WithLabelValues(op).Inc()
	if ev.Amount > 0 {
		m.amount.WithLabelValues(op).Add(float64(ev.Amount))
	}
}
