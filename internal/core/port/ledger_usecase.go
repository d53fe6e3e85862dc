package port

import (
	"context"
	"time"

	"fund-ledger/internal/core/domain"
)

// LedgerUseCase defines the business operations exposed by the campaign
// ledger. This interface represents the primary port into the application
// domain. Every mutating operation is all-or-nothing: either the checks,
// the transfer and the accumulator update all take effect, or none do.
type LedgerUseCase interface {
	// Initialize creates the campaign owned by authority. The storage key is
	// derived from the authority and returned on the campaign.
	Initialize(ctx context.Context, authority, fundWallet domain.Address, deadline int64) (*domain.Campaign, error)

	// Donate moves p.Amount from the donor to the fund wallet and books it.
	Donate(ctx context.Context, key string, p domain.DonateParams) (*domain.Campaign, error)

	// Withdraw moves amount from the fund wallet to the authority. Only
	// allowed after the deadline.
	Withdraw(ctx context.Context, key string, caller domain.Address, amount uint64) (*domain.Campaign, error)

	// Refund moves amount from the fund wallet back to donor. Allowed at
	// any time, authority only.
	Refund(ctx context.Context, key string, caller, donor domain.Address, amount uint64) (*domain.Campaign, error)

	// ToggleActive pauses or resumes donations.
	ToggleActive(ctx context.Context, key string, caller domain.Address) (*domain.Campaign, error)

	GetCampaign(ctx context.Context, key string) (*domain.Campaign, error)
	ListEntries(ctx context.Context, key string, filter EntryFilter) ([]domain.Entry, error)
	Stats(ctx context.Context, key string) (*StatsResp, error)

	// Now is the ledger clock that campaign state is derived from.
	Now() time.Time
}

// StatsResp summarises a campaign's balances and derived lifecycle state.
type StatsResp struct {
	Key            string
	TotalDonated   uint64
	TotalWithdrawn uint64
	Available      uint64
	DonorCount     uint64
	State          domain.State
	Settled        bool
	Deadline       int64
}
