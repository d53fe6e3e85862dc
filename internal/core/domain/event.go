package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// EntryKind classifies a movement of value recorded in the campaign journal.
type EntryKind string

const (
	EntryDonation   EntryKind = "donation"
	EntryWithdrawal EntryKind = "withdrawal"
	EntryRefund     EntryKind = "refund"
)

// Entry is a journal record of one accepted movement. It is written in the
// same storage transaction as the accumulator update it describes.
type Entry struct {
	ID             uuid.UUID
	CampaignKey    string
	Kind           EntryKind
	Actor          Address // who invoked the operation
	Counterparty   Address // receiving account
	Amount         uint64
	Message        string // donations only
	Anonymous      bool   // donations only
	TotalDonated   uint64
	TotalWithdrawn uint64
	CreatedAt      int64
}

// NewEntry builds a journal entry from the campaign state after the
// movement has been applied.
func NewEntry(c *Campaign, kind EntryKind, actor, counterparty Address, amount uint64, now int64) Entry {
	return Entry{
		ID:             uuid.New(),
		CampaignKey:    c.Key,
		Kind:           kind,
		Actor:          actor,
		Counterparty:   counterparty,
		Amount:         amount,
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		CreatedAt:      now,
	}
}

// EventKind names the operation an Event reports.
type EventKind string

const (
	EventInitialized EventKind = "initialize"
	EventDonated     EventKind = "donate"
	EventWithdrawn   EventKind = "withdraw"
	EventRefunded    EventKind = "refund"
	EventToggled     EventKind = "toggle"
)

// Event is the auditable signal emitted after a committed operation. It is
// never read back by the ledger.
type Event struct {
	Kind           EventKind
	CampaignKey    string
	Actor          Address
	Counterparty   Address
	Amount         uint64
	Message        string
	TotalDonated   uint64
	TotalWithdrawn uint64
	IsActive       bool
	At             int64
}

// String renders the event as a human readable log line.
func (e Event) String() string {
	switch e.Kind {
	case EventInitialized:
		return fmt.Sprintf("Campaign initialized: authority %s, fund wallet %s", e.Actor, e.Counterparty)
	case EventDonated:
		return fmt.Sprintf("Donation received: %d lamports - Message: %s (donor %s, total %d)",
			e.Amount, e.Message, e.Actor, e.TotalDonated)
	case EventWithdrawn:
		return fmt.Sprintf("Withdrawal: %d lamports to %s (total withdrawn %d)", e.Amount, e.Counterparty, e.TotalWithdrawn)
	case EventRefunded:
		return fmt.Sprintf("Refund: %d lamports to %s (total withdrawn %d)", e.Amount, e.Counterparty, e.TotalWithdrawn)
	case EventToggled:
		return fmt.Sprintf("Campaign active set to %t", e.IsActive)
	default:
		return string(e.Kind)
	}
}
