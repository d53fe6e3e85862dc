package port

import (
	"context"

	"fund-ledger/internal/core/domain"
)

// MutateFunc receives the locked campaign record and changes it in place.
// It returns the journal entry to persist alongside the change, or nil when
// the change books no movement. Returning an error discards the change.
type MutateFunc func(c *domain.Campaign) (*domain.Entry, error)

// CampaignRepository defines the persistence layer for campaigns. It is an
// outbound port in hexagonal architecture. Implementations must serialise
// concurrent mutations of the same campaign and apply each MutateFunc
// atomically together with its journal entry.
type CampaignRepository interface {
	// Create stores a new campaign. It returns domain.ErrCampaignExists
	// when the key is already taken.
	Create(ctx context.Context, c domain.Campaign) error
	// Get returns the campaign stored under key, or nil when there is none.
	Get(ctx context.Context, key string) (*domain.Campaign, error)
	// List returns every stored campaign.
	List(ctx context.Context) ([]domain.Campaign, error)
	// Mutate locks the campaign, runs fn and commits the result. It returns
	// the committed record. domain.ErrCampaignNotFound is returned for an
	// unknown key.
	Mutate(ctx context.Context, key string, fn MutateFunc) (*domain.Campaign, error)
	// ListEntries returns journal entries of a campaign, newest first.
	ListEntries(ctx context.Context, key string, filter EntryFilter) ([]domain.Entry, error)
}

// EntryFilter narrows a journal query. Zero fields match everything.
type EntryFilter struct {
	Kind  domain.EntryKind
	Actor domain.Address
	Limit int
}

// Match reports whether e passes the Kind and Actor constraints.
func (f EntryFilter) Match(e domain.Entry) bool {
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if f.Actor != "" && e.Actor != f.Actor {
		return false
	}
	return true
}
