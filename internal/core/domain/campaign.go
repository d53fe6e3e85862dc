package domain

import (
	"fmt"
	"math/bits"
	"strings"
)

// Amounts are stored in the smallest indivisible unit (lamports).
const (
	MinDonation         uint64 = 100_000
	MaxDonation         uint64 = 500_000_000_000
	MaxMessageLength           = 280
	MaxCampaignDuration int64  = 180 * 24 * 60 * 60
)

// Address identifies an account: a campaign authority, a donor or a
// treasury wallet. The ledger only ever compares addresses.
type Address string

// State is the lifecycle state of a campaign. Expired is derived from the
// clock and never stored.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateActive        State = "active"
	StatePaused        State = "paused"
	StateExpired       State = "expired"
)

// Campaign is the custody record of a single fundraising campaign.
// Authority, FundWallet and Deadline are fixed at creation. TotalWithdrawn
// never exceeds TotalDonated.
type Campaign struct {
	Key            string
	Authority      Address
	FundWallet     Address
	TotalDonated   uint64
	TotalWithdrawn uint64
	DonorCount     uint64
	IsActive       bool
	Deadline       int64 // seconds since epoch
	CreatedAt      int64
	Version        uint64 // bumped by storage on every committed mutation
}

// NewCampaign validates the creation parameters and returns an active
// campaign with zeroed accumulators.
func NewCampaign(key string, authority, fundWallet Address, deadline, now int64) (*Campaign, error) {
	if strings.TrimSpace(string(fundWallet)) == "" {
		return nil, ErrInvalidFundWallet
	}
	if deadline <= now {
		return nil, ErrDeadlineInPast
	}
	if deadline > now+MaxCampaignDuration {
		return nil, ErrCampaignTooLong
	}
	return &Campaign{
		Key:        key,
		Authority:  authority,
		FundWallet: fundWallet,
		IsActive:   true,
		Deadline:   deadline,
		CreatedAt:  now,
	}, nil
}

// Available returns the balance still held by the fund wallet on behalf of
// the campaign. It floors at zero.
func (c *Campaign) Available() uint64 {
	if c.TotalWithdrawn >= c.TotalDonated {
		return 0
	}
	return c.TotalDonated - c.TotalWithdrawn
}

// State derives the lifecycle state at now.
func (c *Campaign) State(now int64) State {
	switch {
	case now >= c.Deadline:
		return StateExpired
	case c.IsActive:
		return StateActive
	default:
		return StatePaused
	}
}

// Settled reports whether the campaign has expired and every donated unit
// has left the fund wallet.
func (c *Campaign) Settled(now int64) bool {
	return c.State(now) == StateExpired && c.TotalWithdrawn == c.TotalDonated
}

// DonateParams carries the caller supplied part of a donation. FundWallet is
// optional; when set it must match the wallet on record.
type DonateParams struct {
	Donor      Address
	Amount     uint64
	Message    string
	Anonymous  bool
	FundWallet Address
}

// CheckDonate runs the donation preconditions in order. The first failing
// check wins. It has no side effects.
func (c *Campaign) CheckDonate(p DonateParams, now int64) error {
	if p.FundWallet != "" && p.FundWallet != c.FundWallet {
		return ErrInvalidFundWallet
	}
	if !c.IsActive {
		return ErrCampaignInactive
	}
	if now >= c.Deadline {
		return ErrCampaignExpired
	}
	if p.Amount < MinDonation {
		return ErrDonationTooSmall
	}
	if p.Amount > MaxDonation {
		return ErrDonationTooLarge
	}
	if MessageLength(p.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// ApplyDonation records an accepted donation. It must only be called after
// the value transfer succeeded. Overflow is an unrecoverable defect.
func (c *Campaign) ApplyDonation(amount uint64) {
	sum, carry := bits.Add64(c.TotalDonated, amount, 0)
	if carry != 0 {
		panic(fmt.Sprintf("domain: total donated overflow (%d + %d)", c.TotalDonated, amount))
	}
	count, carry := bits.Add64(c.DonorCount, 1, 0)
	if carry != 0 {
		panic("domain: donor count overflow")
	}
	c.TotalDonated = sum
	c.DonorCount = count
}

// CheckWithdraw validates a withdrawal to the authority. Withdrawals are
// only permitted once the deadline has passed.
func (c *Campaign) CheckWithdraw(caller Address, amount uint64, now int64) error {
	if caller != c.Authority {
		return ErrUnauthorized
	}
	if now < c.Deadline {
		return ErrWithdrawalBeforeDeadline
	}
	return c.checkPayout(amount)
}

// CheckRefund validates a refund from the fund wallet to a donor. Refunds
// have no deadline restriction.
func (c *Campaign) CheckRefund(caller Address, amount uint64) error {
	if caller != c.Authority {
		return ErrUnauthorized
	}
	return c.checkPayout(amount)
}

func (c *Campaign) checkPayout(amount uint64) error {
	if amount > c.Available() {
		return ErrInsufficientFunds
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	return nil
}

// ApplyPayout books a withdrawal or a refund. Both reduce the available
// balance through TotalWithdrawn.
func (c *Campaign) ApplyPayout(amount uint64) {
	sum, carry := bits.Add64(c.TotalWithdrawn, amount, 0)
	if carry != 0 || sum > c.TotalDonated {
		panic(fmt.Sprintf("domain: payout of %d exceeds donated total (%d withdrawn, %d donated)",
			amount, c.TotalWithdrawn, c.TotalDonated))
	}
	c.TotalWithdrawn = sum
}

// Toggle flips IsActive. Only the authority may pause or resume.
func (c *Campaign) Toggle(caller Address) error {
	if caller != c.Authority {
		return ErrUnauthorized
	}
	c.IsActive = !c.IsActive
	return nil
}
