package memory

import (
	"context"
	"sort"
	"sync"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository in process memory.
// A single mutex makes it a single-writer store. Nothing survives a restart.
type CampaignRepository struct {
	mu        sync.Mutex
	campaigns map[string]domain.Campaign
	entries   map[string][]domain.Entry
}

// NewCampaignRepository returns an empty repository.
func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{
		campaigns: make(map[string]domain.Campaign),
		entries:   make(map[string][]domain.Entry),
	}
}

func (r *CampaignRepository) Create(_ context.Context, c domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.campaigns[c.Key]; ok {
		return domain.ErrCampaignExists
	}
	r.campaigns[c.Key] = c
	return nil
}

func (r *CampaignRepository) Get(_ context.Context, key string) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[key]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CampaignRepository) List(_ context.Context) ([]domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Campaign, 0, len(r.campaigns))
	for _, c := range r.campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Mutate holds the store lock for the whole of fn, so fn observes and
// replaces the latest version. fn works on a copy; an error leaves the
// stored record untouched.
func (r *CampaignRepository) Mutate(_ context.Context, key string, fn port.MutateFunc) (*domain.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.campaigns[key]
	if !ok {
		return nil, domain.ErrCampaignNotFound
	}
	entry, err := fn(&c)
	if err != nil {
		return nil, err
	}
	c.Version++
	r.campaigns[key] = c
	if entry != nil {
		r.entries[key] = append(r.entries[key], *entry)
	}
	return &c, nil
}

func (r *CampaignRepository) ListEntries(_ context.Context, key string, filter port.EntryFilter) ([]domain.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.entries[key]
	out := make([]domain.Entry, 0)
	for i := len(all) - 1; i >= 0; i-- {
		if !filter.Match(all[i]) {
			continue
		}
		out = append(out, all[i])
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}
