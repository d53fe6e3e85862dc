package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

// CampaignRepository implements port.CampaignRepository on an embedded
// badger store. Every mutation is one read-write badger transaction;
// badger's conflict detection rejects a commit when another writer changed
// the campaign in between.
type CampaignRepository struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens the store in dir, or an in-memory store when dir is empty.
func Open(dir string, logger *slog.Logger) (*CampaignRepository, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.
		WithLogger(newBadgerLogger(logger)).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &CampaignRepository{db: db, logger: logger}, nil
}

// Close releases the underlying store.
func (r *CampaignRepository) Close() error {
	return r.db.Close()
}

func (r *CampaignRepository) Create(_ context.Context, c domain.Campaign) error {
	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(campaignKey(c.Key))
		if err == nil {
			return domain.ErrCampaignExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return r.putCampaign(txn, c)
	})
}

func (r *CampaignRepository) Get(_ context.Context, key string) (*domain.Campaign, error) {
	var out *domain.Campaign
	err := r.db.View(func(txn *badger.Txn) error {
		c, err := r.loadCampaign(txn, key)
		out = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CampaignRepository) List(_ context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(campaignPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			var rec campaignRecord
			if err := it.Item().Value(func(val []byte) error {
				return cbor.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			out = append(out, rec.toDomain())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CampaignRepository) Mutate(_ context.Context, key string, fn port.MutateFunc) (*domain.Campaign, error) {
	var out domain.Campaign
	err := r.db.Update(func(txn *badger.Txn) error {
		c, err := r.loadCampaign(txn, key)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrCampaignNotFound
		}
		entry, err := fn(c)
		if err != nil {
			return err
		}
		c.Version++
		if err = r.putCampaign(txn, *c); err != nil {
			return err
		}
		if entry != nil {
			val, err := cbor.Marshal(toEntryRecord(*entry))
			if err != nil {
				return err
			}
			if err = txn.Set(entryKey(key, c.Version), val); err != nil {
				return err
			}
		}
		out = *c
		return nil
	})
	if errors.Is(err, badger.ErrConflict) {
		return nil, domain.ErrConcurrentUpdate
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CampaignRepository) ListEntries(_ context.Context, key string, filter port.EntryFilter) ([]domain.Entry, error) {
	out := make([]domain.Entry, 0)
	prefix := entryKeyPrefix(key)
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()
		// Reverse iteration has to start past the last key of the prefix.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			var rec entryRecord
			if err := it.Item().Value(func(val []byte) error {
				return cbor.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			e, err := rec.toDomain(key)
			if err != nil {
				return err
			}
			if !filter.Match(e) {
				continue
			}
			out = append(out, e)
			if filter.Limit > 0 && len(out) == filter.Limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CampaignRepository) loadCampaign(txn *badger.Txn, key string) (*domain.Campaign, error) {
	item, err := txn.Get(campaignKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec campaignRecord
	if err = item.Value(func(val []byte) error {
		return cbor.Unmarshal(val, &rec)
	}); err != nil {
		return nil, err
	}
	c := rec.toDomain()
	return &c, nil
}

func (r *CampaignRepository) putCampaign(txn *badger.Txn, c domain.Campaign) error {
	val, err := cbor.Marshal(toCampaignRecord(c))
	if err != nil {
		return err
	}
	return txn.Set(campaignKey(c.Key), val)
}
