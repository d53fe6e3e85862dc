package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

const jobName = "campaign_state_watcher"

var states = []domain.State{domain.StateActive, domain.StatePaused, domain.StateExpired}

type observation struct {
	state   domain.State
	settled bool
}

// Watcher periodically derives the lifecycle state of every campaign. It
// reports state changes that happen through the passage of time (expiry,
// settlement) and keeps balance gauges current. It never writes to the
// repository.
type Watcher struct {
	scheduler gocron.Scheduler
	repo      port.CampaignRepository
	logger    *slog.Logger
	interval  time.Duration
	now       func() time.Time

	mu   sync.Mutex
	seen map[string]observation

	donated   *prometheus.GaugeVec
	withdrawn *prometheus.GaugeVec
	donors    *prometheus.GaugeVec
	state     *prometheus.GaugeVec
}

// NewWatcher creates a watcher that runs every interval once started.
func NewWatcher(repo port.CampaignRepository, registry prometheus.Registerer, logger *slog.Logger, interval time.Duration) (*Watcher, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	factory := promauto.With(registry)
	w := &Watcher{
		scheduler: s,
		repo:      repo,
		logger:    logger.With("job", jobName),
		interval:  interval,
		now:       time.Now,
		seen:      make(map[string]observation),
		donated: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fund_ledger_campaign_total_donated",
			Help: "Lamports donated to the campaign",
		}, []string{"campaign"}),
		withdrawn: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fund_ledger_campaign_total_withdrawn",
			Help: "Lamports withdrawn or refunded from the campaign",
		}, []string{"campaign"}),
		donors: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fund_ledger_campaign_donor_count",
			Help: "Number of accepted donations",
		}, []string{"campaign"}),
		state: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fund_ledger_campaign_state",
			Help: "1 for the campaign's current lifecycle state, 0 otherwise",
		}, []string{"campaign", "state"}),
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.run),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, err
	}
	return w, nil
}

// Start begins periodic checks.
func (w *Watcher) Start() {
	w.scheduler.Start()
	w.logger.Info("watcher started", slog.Duration("interval", w.interval))
}

// Stop waits for a running check to finish and stops the scheduler.
func (w *Watcher) Stop() error {
	return w.scheduler.Shutdown()
}

func (w *Watcher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()
	if err := w.Check(ctx); err != nil {
		w.logger.Error("campaign check failed", slog.Any("error", err))
	}
}

// Check runs a single pass over all campaigns.
func (w *Watcher) Check(ctx context.Context) error {
	campaigns, err := w.repo.List(ctx)
	if err != nil {
		return err
	}
	now := w.now().Unix()

	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range campaigns {
		c := &campaigns[i]
		cur := observation{state: c.State(now), settled: c.Settled(now)}
		prev, known := w.seen[c.Key]
		w.seen[c.Key] = cur
		w.record(c, cur.state)

		attrs := []any{
			slog.String("campaign", c.Key),
			slog.Uint64("total_donated", c.TotalDonated),
			slog.Uint64("total_withdrawn", c.TotalWithdrawn),
		}
		if !known {
			w.logger.Debug("campaign observed", append(attrs, slog.String("state", string(cur.state)))...)
			continue
		}
		if prev.state != cur.state {
			w.logger.Info("campaign state changed",
				append(attrs, slog.String("from", string(prev.state)), slog.String("to", string(cur.state)))...)
		}
		if cur.settled && !prev.settled {
			w.logger.Info("campaign settled", attrs...)
		}
	}
	return nil
}

func (w *Watcher) record(c *domain.Campaign, cur domain.State) {
	w.donated.WithLabelValues(c.Key).Set(float64(c.TotalDonated))
	w.withdrawn.WithLabelValues(c.Key).Set(float64(c.TotalWithdrawn))
	w.donors.WithLabelValues(c.Key).Set(float64(c.DonorCount))
	for _, s := range states {
		v := 0.0
		if s == cur {
			v = 1
		}
		w.state.WithLabelValues(c.Key, string(s)).Set(v)
	}
}
