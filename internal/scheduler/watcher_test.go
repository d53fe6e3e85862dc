package scheduler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fund-ledger/internal/adapter/memory"
	"fund-ledger/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// syncBuffer guards log output written from the scheduler goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func seed(t *testing.T, repo *memory.CampaignRepository, donated uint64) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), domain.Campaign{
		Key:          "k",
		Authority:    "authority",
		FundWallet:   "treasury",
		TotalDonated: donated,
		DonorCount:   1,
		IsActive:     true,
		Deadline:     2000,
		CreatedAt:    1000,
		Version:      1,
	}))
}

func newTestWatcher(t *testing.T, repo *memory.CampaignRepository, out io.Writer) *Watcher {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	w, err := NewWatcher(repo, prometheus.NewRegistry(), logger, 10*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, w.Stop()) })
	return w
}

func TestCheckReportsExpiryAndSettlement(t *testing.T) {
	repo := memory.NewCampaignRepository()
	seed(t, repo, 500_000)
	var out syncBuffer
	w := newTestWatcher(t, repo, &out)
	ctx := context.Background()

	w.now = func() time.Time { return time.Unix(1500, 0) }
	require.NoError(t, w.Check(ctx))
	require.Contains(t, out.String(), "campaign observed")
	require.Equal(t, float64(500_000), testutil.ToFloat64(w.donated.WithLabelValues("k")))
	require.Equal(t, float64(1), testutil.ToFloat64(w.state.WithLabelValues("k", "active")))

	w.now = func() time.Time { return time.Unix(2000, 0) }
	require.NoError(t, w.Check(ctx))
	require.Contains(t, out.String(), "campaign state changed")
	require.NotContains(t, out.String(), "campaign settled")
	require.Equal(t, float64(0), testutil.ToFloat64(w.state.WithLabelValues("k", "active")))
	require.Equal(t, float64(1), testutil.ToFloat64(w.state.WithLabelValues("k", "expired")))

	_, err := repo.Mutate(ctx, "k", func(c *domain.Campaign) (*domain.Entry, error) {
		c.ApplyPayout(500_000)
		return nil, nil
	})
	require.NoError(t, err)
	require.NoError(t, w.Check(ctx))
	require.Contains(t, out.String(), "campaign settled")
	require.Equal(t, float64(500_000), testutil.ToFloat64(w.withdrawn.WithLabelValues("k")))
}

func TestCheckReportsPause(t *testing.T) {
	repo := memory.NewCampaignRepository()
	seed(t, repo, 0)
	var out syncBuffer
	w := newTestWatcher(t, repo, &out)
	w.now = func() time.Time { return time.Unix(1500, 0) }
	ctx := context.Background()

	require.NoError(t, w.Check(ctx))
	_, err := repo.Mutate(ctx, "k", func(c *domain.Campaign) (*domain.Entry, error) {
		return nil, c.Toggle("authority")
	})
	require.NoError(t, err)
	require.NoError(t, w.Check(ctx))

	require.Contains(t, out.String(), "to=paused")
	require.Equal(t, float64(1), testutil.ToFloat64(w.state.WithLabelValues("k", "paused")))
}

func TestStartRunsPeriodically(t *testing.T) {
	repo := memory.NewCampaignRepository()
	seed(t, repo, 300_000)
	var out syncBuffer
	w := newTestWatcher(t, repo, &out)

	w.Start()
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(w.donated.WithLabelValues("k")) == 300_000
	}, time.Second, 10*time.Millisecond)
}
