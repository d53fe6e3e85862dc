package badger

import (
	"encoding/binary"

	"github.com/google/uuid"

	"fund-ledger/internal/core/domain"
)

const (
	campaignPrefix = "campaign/"
	entryPrefix    = "entry/"
)

// campaignRecord is the CBOR layout of a stored campaign.
type campaignRecord struct {
	Key            string `cbor:"1,keyasint"`
	Authority      string `cbor:"2,keyasint"`
	FundWallet     string `cbor:"3,keyasint"`
	TotalDonated   uint64 `cbor:"4,keyasint"`
	TotalWithdrawn uint64 `cbor:"5,keyasint"`
	DonorCount     uint64 `cbor:"6,keyasint"`
	IsActive       bool   `cbor:"7,keyasint"`
	Deadline       int64  `cbor:"8,keyasint"`
	CreatedAt      int64  `cbor:"9,keyasint"`
	Version        uint64 `cbor:"10,keyasint"`
}

// entryRecord is the CBOR layout of a stored journal entry.
type entryRecord struct {
	ID             []byte `cbor:"1,keyasint"`
	Kind           string `cbor:"2,keyasint"`
	Actor          string `cbor:"3,keyasint"`
	Counterparty   string `cbor:"4,keyasint"`
	Amount         uint64 `cbor:"5,keyasint"`
	Message        string `cbor:"6,keyasint,omitempty"`
	Anonymous      bool   `cbor:"7,keyasint,omitempty"`
	TotalDonated   uint64 `cbor:"8,keyasint"`
	TotalWithdrawn uint64 `cbor:"9,keyasint"`
	CreatedAt      int64  `cbor:"10,keyasint"`
}

func campaignKey(key string) []byte {
	return []byte(campaignPrefix + key)
}

func entryKeyPrefix(key string) []byte {
	return []byte(entryPrefix + key + "/")
}

// entryKey orders entries by the campaign version that booked them.
func entryKey(key string, version uint64) []byte {
	k := entryKeyPrefix(key)
	return binary.BigEndian.AppendUint64(k, version)
}

func toCampaignRecord(c domain.Campaign) campaignRecord {
	return campaignRecord{
		Key:            c.Key,
		Authority:      string(c.Authority),
		FundWallet:     string(c.FundWallet),
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		DonorCount:     c.DonorCount,
		IsActive:       c.IsActive,
		Deadline:       c.Deadline,
		CreatedAt:      c.CreatedAt,
		Version:        c.Version,
	}
}

func (r campaignRecord) toDomain() domain.Campaign {
	return domain.Campaign{
		Key:            r.Key,
		Authority:      domain.Address(r.Authority),
		FundWallet:     domain.Address(r.FundWallet),
		TotalDonated:   r.TotalDonated,
		TotalWithdrawn: r.TotalWithdrawn,
		DonorCount:     r.DonorCount,
		IsActive:       r.IsActive,
		Deadline:       r.Deadline,
		CreatedAt:      r.CreatedAt,
		Version:        r.Version,
	}
}

func toEntryRecord(e domain.Entry) entryRecord {
	return entryRecord{
		ID:             e.ID[:],
		Kind:           string(e.Kind),
		Actor:          string(e.Actor),
		Counterparty:   string(e.Counterparty),
		Amount:         e.Amount,
		Message:        e.Message,
		Anonymous:      e.Anonymous,
		TotalDonated:   e.TotalDonated,
		TotalWithdrawn: e.TotalWithdrawn,
		CreatedAt:      e.CreatedAt,
	}
}

func (r entryRecord) toDomain(campaign string) (domain.Entry, error) {
	id, err := uuid.FromBytes(r.ID)
	if err != nil {
		return domain.Entry{}, err
	}
	return domain.Entry{
		ID:             id,
		CampaignKey:    campaign,
		Kind:           domain.EntryKind(r.Kind),
		Actor:          domain.Address(r.Actor),
		Counterparty:   domain.Address(r.Counterparty),
		Amount:         r.Amount,
		Message:        r.Message,
		Anonymous:      r.Anonymous,
		TotalDonated:   r.TotalDonated,
		TotalWithdrawn: r.TotalWithdrawn,
		CreatedAt:      r.CreatedAt,
	}, nil
}
