package domain

import "github.com/google/uuid"

// KeyStrategy derives the storage key of the campaign owned by authority.
// The scheme is opaque to the ledger.
type KeyStrategy interface {
	CampaignKey(authority Address) string
}

// SeededKeys derives name-based (v5) UUIDs from a deployment seed and the
// authority, so the same authority always maps to the same record.
type SeededKeys struct {
	namespace uuid.UUID
}

// NewSeededKeys returns a strategy namespaced by seed.
func NewSeededKeys(seed string) SeededKeys {
	return SeededKeys{namespace: uuid.NewSHA1(uuid.NameSpaceURL, []byte("fund-ledger:"+seed))}
}

func (k SeededKeys) CampaignKey(authority Address) string {
	return uuid.NewSHA1(k.namespace, []byte("campaign:"+string(authority))).String()
}
