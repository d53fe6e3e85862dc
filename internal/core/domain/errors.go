package domain

import "errors"

// Authorization errors.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidFundWallet = errors.New("invalid fund wallet")
)

// Timing errors.
var (
	ErrDeadlineInPast           = errors.New("deadline must be in the future")
	ErrCampaignTooLong          = errors.New("campaign duration exceeds 180 days")
	ErrCampaignExpired          = errors.New("campaign has expired")
	ErrWithdrawalBeforeDeadline = errors.New("withdrawal not allowed before deadline")
)

// Bounds errors.
var (
	ErrDonationTooSmall  = errors.New("donation below minimum")
	ErrDonationTooLarge  = errors.New("donation above maximum")
	ErrMessageTooLong    = errors.New("message exceeds 280 characters")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrZeroAmount        = errors.New("amount must be greater than zero")
)

var ErrCampaignInactive = errors.New("campaign is not active")

// ErrTransferFailed wraps any failure reported by the value transfer service.
var ErrTransferFailed = errors.New("transfer failed")

// Storage errors.
var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignExists   = errors.New("campaign already exists")
	ErrConcurrentUpdate = errors.New("campaign was modified concurrently")
)
