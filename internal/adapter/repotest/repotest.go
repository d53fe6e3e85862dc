// Package repotest holds behaviour tests shared by every
// port.CampaignRepository implementation.
package repotest

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

// Campaign returns a fresh campaign stored under key.
func Campaign(key string) domain.Campaign {
	return domain.Campaign{
		Key:        key,
		Authority:  "authority",
		FundWallet: "treasury",
		IsActive:   true,
		Deadline:   2_000_000,
		CreatedAt:  1_000_000,
		Version:    1,
	}
}

func donate(amount uint64, donor domain.Address, msg string) port.MutateFunc {
	return func(c *domain.Campaign) (*domain.Entry, error) {
		c.ApplyDonation(amount)
		e := domain.NewEntry(c, domain.EntryDonation, donor, c.FundWallet, amount, 1_000_100)
		e.Message = msg
		return &e, nil
	}
}

// Run exercises repo. newRepo must return an empty repository.
func Run(t *testing.T, newRepo func(t *testing.T) port.CampaignRepository) {
	t.Run("CreateAndGet", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		got, err := repo.Get(ctx, "missing")
		require.NoError(t, err)
		require.Nil(t, got)

		require.NoError(t, repo.Create(ctx, Campaign("a")))
		require.ErrorIs(t, repo.Create(ctx, Campaign("a")), domain.ErrCampaignExists)

		got, err = repo.Get(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, Campaign("a"), *got)
	})

	t.Run("List", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Campaign("b")))
		require.NoError(t, repo.Create(ctx, Campaign("a")))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "a", all[0].Key)
		require.Equal(t, "b", all[1].Key)
	})

	t.Run("MutateCommits", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Campaign("a")))

		c, err := repo.Mutate(ctx, "a", donate(100_000, "d1", "first"))
		require.NoError(t, err)
		require.Equal(t, uint64(100_000), c.TotalDonated)
		require.Equal(t, uint64(2), c.Version)

		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, *c, *got)
	})

	t.Run("MutateErrorDiscards", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Campaign("a")))

		boom := errors.New("boom")
		_, err := repo.Mutate(ctx, "a", func(c *domain.Campaign) (*domain.Entry, error) {
			c.ApplyDonation(500_000)
			return nil, boom
		})
		require.ErrorIs(t, err, boom)

		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, Campaign("a"), *got)

		entries, err := repo.ListEntries(ctx, "a", port.EntryFilter{})
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("MutateUnknown", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Mutate(context.Background(), "missing", donate(1, "d", ""))
		require.ErrorIs(t, err, domain.ErrCampaignNotFound)
	})

	t.Run("MutateWithoutEntry", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Campaign("a")))

		c, err := repo.Mutate(ctx, "a", func(c *domain.Campaign) (*domain.Entry, error) {
			return nil, c.Toggle("authority")
		})
		require.NoError(t, err)
		require.False(t, c.IsActive)

		entries, err := repo.ListEntries(ctx, "a", port.EntryFilter{})
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("ListEntries", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Campaign("a")))
		require.NoError(t, repo.Create(ctx, Campaign("b")))

		_, err := repo.Mutate(ctx, "a", donate(100_000, "d1", "one"))
		require.NoError(t, err)
		_, err = repo.Mutate(ctx, "a", donate(200_000, "d2", "two"))
		require.NoError(t, err)
		_, err = repo.Mutate(ctx, "b", donate(300_000, "d1", "other campaign"))
		require.NoError(t, err)
		_, err = repo.Mutate(ctx, "a", func(c *domain.Campaign) (*domain.Entry, error) {
			c.ApplyPayout(50_000)
			e := domain.NewEntry(c, domain.EntryRefund, "authority", "d1", 50_000, 1_000_200)
			return &e, nil
		})
		require.NoError(t, err)

		entries, err := repo.ListEntries(ctx, "a", port.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, domain.EntryRefund, entries[0].Kind)
		require.Equal(t, uint64(50_000), entries[0].TotalWithdrawn)
		require.Equal(t, "two", entries[1].Message)
		require.Equal(t, "one", entries[2].Message)
		require.Equal(t, "a", entries[2].CampaignKey)
		require.Equal(t, uint64(100_000), entries[2].TotalDonated)

		donations, err := repo.ListEntries(ctx, "a", port.EntryFilter{Kind: domain.EntryDonation, Actor: "d1"})
		require.NoError(t, err)
		require.Len(t, donations, 1)
		require.Equal(t, "one", donations[0].Message)

		limited, err := repo.ListEntries(ctx, "a", port.EntryFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, limited, 2)
		require.Equal(t, entries[0].ID, limited[0].ID)
	})

	t.Run("ConcurrentMutations", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.Create(ctx, Campaign("a")))

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			committed uint64
		)
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := repo.Mutate(ctx, "a", donate(100_000, "d", ""))
				if err == nil {
					mu.Lock()
					committed++
					mu.Unlock()
					return
				}
				// optimistic stores may reject a loser, but never lose an update
				if !errors.Is(err, domain.ErrConcurrentUpdate) {
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		got, err := repo.Get(ctx, "a")
		require.NoError(t, err)
		require.Equal(t, committed, got.DonorCount)
		require.Equal(t, committed*100_000, got.TotalDonated)
	})
}
