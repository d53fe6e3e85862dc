package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fund-ledger/internal/adapter/memory"
	"fund-ledger/internal/adapter/transfer"
	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
	"fund-ledger/internal/core/port/mocks"
)

const (
	authority domain.Address = "authority"
	wallet    domain.Address = "treasury"
	donor     domain.Address = "donor"
	start     int64          = 1_000_000
	deadline  int64          = start + 3600
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type nopSink struct{}

func (nopSink) Emit(context.Context, domain.Event) {}

// clock is a settable wall clock shared with the use case.
type clock struct {
	mu  sync.Mutex
	now int64
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Unix(c.now, 0)
}

func (c *clock) Set(sec int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = sec
}

// fixture wires the use case to the in-memory repository and transfer book.
type fixture struct {
	svc   *LedgerUseCase
	repo  *memory.CampaignRepository
	book  *transfer.Book
	clock *clock
	key   string
}

func newFixture(t *testing.T, balances map[string]uint64) *fixture {
	t.Helper()
	f := &fixture{
		repo:  memory.NewCampaignRepository(),
		book:  transfer.NewBook(discardLogger(), balances),
		clock: &clock{now: start},
	}
	f.svc = NewLedgerUseCase(f.repo, f.book, nopSink{}, domain.NewSeededKeys("test"), discardLogger(), WithClock(f.clock.Now))
	c, err := f.svc.Initialize(context.Background(), authority, wallet, deadline)
	require.NoError(t, err)
	f.key = c.Key
	return f
}

// mockedRepo returns a repository mock whose Mutate behaves like a real
// repository around a single stored campaign.
func mockedRepo(t *testing.T, c domain.Campaign, commitErr error) (*mocks.MockCampaignRepository, *domain.Campaign) {
	repo := mocks.NewMockCampaignRepository(t)
	stored := c
	repo.EXPECT().
		Mutate(mock.Anything, c.Key, mock.Anything).
		RunAndReturn(func(ctx context.Context, key string, fn port.MutateFunc) (*domain.Campaign, error) {
			work := stored
			if _, err := fn(&work); err != nil {
				return nil, err
			}
			if commitErr != nil {
				return nil, commitErr
			}
			work.Version++
			stored = work
			return &work, nil
		})
	return repo, &stored
}

func testCampaign() domain.Campaign {
	return domain.Campaign{
		Key:        "k",
		Authority:  authority,
		FundWallet: wallet,
		IsActive:   true,
		Deadline:   deadline,
		CreatedAt:  start,
		Version:    1,
	}
}

// TestDonateTransferFailureLeavesStateUntouched ensures accumulators are
// only updated after the transfer reported success.
func TestDonateTransferFailureLeavesStateUntouched(t *testing.T) {
	repo, stored := mockedRepo(t, testCampaign(), nil)
	tr := mocks.NewMockTransferer(t)
	sink := mocks.NewMockEventSink(t)

	tr.EXPECT().
		Transfer(mock.Anything, donor, wallet, domain.MinDonation).
		Return(errors.New("node unavailable"))

	svc := NewLedgerUseCase(repo, tr, sink, domain.NewSeededKeys("test"), discardLogger(),
		WithClock(func() time.Time { return time.Unix(start, 0) }))

	_, err := svc.Donate(context.Background(), "k", domain.DonateParams{Donor: donor, Amount: domain.MinDonation})
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	require.Equal(t, testCampaign(), *stored)
}

// TestRejectedDonationNeverReachesTransfer ensures precondition failures
// are detected before any external call.
func TestRejectedDonationNeverReachesTransfer(t *testing.T) {
	repo, stored := mockedRepo(t, testCampaign(), nil)
	tr := mocks.NewMockTransferer(t)
	sink := mocks.NewMockEventSink(t)

	svc := NewLedgerUseCase(repo, tr, sink, domain.NewSeededKeys("test"), discardLogger(),
		WithClock(func() time.Time { return time.Unix(start, 0) }))

	_, err := svc.Donate(context.Background(), "k", domain.DonateParams{Donor: donor, Amount: 99_999})
	require.ErrorIs(t, err, domain.ErrDonationTooSmall)
	require.Equal(t, testCampaign(), *stored)
	tr.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestCommitFailureReversesTransfer ensures a transfer that cannot be
// booked is compensated exactly once.
func TestCommitFailureReversesTransfer(t *testing.T) {
	repo, stored := mockedRepo(t, testCampaign(), domain.ErrConcurrentUpdate)
	tr := mocks.NewMockTransferer(t)
	sink := mocks.NewMockEventSink(t)

	tr.EXPECT().Transfer(mock.Anything, donor, wallet, domain.MinDonation).Return(nil).Once()
	tr.EXPECT().Transfer(mock.Anything, wallet, donor, domain.MinDonation).Return(nil).Once()

	svc := NewLedgerUseCase(repo, tr, sink, domain.NewSeededKeys("test"), discardLogger(),
		WithClock(func() time.Time { return time.Unix(start, 0) }))

	_, err := svc.Donate(context.Background(), "k", domain.DonateParams{Donor: donor, Amount: domain.MinDonation})
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	require.Equal(t, uint64(0), stored.TotalDonated)
}

// TestFailedReversalIsLoggedAsError ensures a compensation that cannot be
// carried out is reported for manual reconciliation.
func TestFailedReversalIsLoggedAsError(t *testing.T) {
	repo, stored := mockedRepo(t, testCampaign(), domain.ErrConcurrentUpdate)
	tr := mocks.NewMockTransferer(t)
	sink := mocks.NewMockEventSink(t)

	tr.EXPECT().Transfer(mock.Anything, donor, wallet, domain.MinDonation).Return(nil).Once()
	tr.EXPECT().Transfer(mock.Anything, wallet, donor, domain.MinDonation).Return(errors.New("node unavailable")).Once()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewLedgerUseCase(repo, tr, sink, domain.NewSeededKeys("test"), logger,
		WithClock(func() time.Time { return time.Unix(start, 0) }))

	_, err := svc.Donate(context.Background(), "k", domain.DonateParams{Donor: donor, Amount: domain.MinDonation})
	require.ErrorIs(t, err, domain.ErrConcurrentUpdate)
	require.Equal(t, uint64(0), stored.TotalDonated)

	out := logs.String()
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "reversing transfer failed")
	require.Contains(t, out, "error=\"node unavailable\"")
	require.Contains(t, out, "amount=100000")
	require.NotContains(t, out, "transfer reversed")
}

// TestDonateEmitsEvent ensures a committed donation is reported with the
// resulting total.
func TestDonateEmitsEvent(t *testing.T) {
	repo, _ := mockedRepo(t, testCampaign(), nil)
	tr := mocks.NewMockTransferer(t)
	sink := mocks.NewMockEventSink(t)

	tr.EXPECT().Transfer(mock.Anything, donor, wallet, uint64(250_000)).Return(nil)
	sink.EXPECT().
		Emit(mock.Anything, mock.MatchedBy(func(ev domain.Event) bool {
			return ev.Kind == domain.EventDonated && ev.Amount == 250_000 &&
				ev.TotalDonated == 250_000 && ev.Message == "good luck" && ev.Actor == donor
		})).
		Return()

	svc := NewLedgerUseCase(repo, tr, sink, domain.NewSeededKeys("test"), discardLogger(),
		WithClock(func() time.Time { return time.Unix(start, 0) }))

	c, err := svc.Donate(context.Background(), "k", domain.DonateParams{Donor: donor, Amount: 250_000, Message: "good luck"})
	require.NoError(t, err)
	require.Equal(t, uint64(1), c.DonorCount)
}

func TestListEntriesLimit(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	c := testCampaign()
	repo.EXPECT().Get(mock.Anything, "k").Return(&c, nil)
	repo.EXPECT().ListEntries(mock.Anything, "k", port.EntryFilter{Limit: 50}).Return(nil, nil).Once()
	repo.EXPECT().ListEntries(mock.Anything, "k", port.EntryFilter{Limit: 100, Actor: donor}).Return(nil, nil).Once()

	svc := NewLedgerUseCase(repo, mocks.NewMockTransferer(t), nopSink{}, domain.NewSeededKeys("test"), discardLogger())

	_, err := svc.ListEntries(context.Background(), "k", port.EntryFilter{})
	require.NoError(t, err)
	_, err = svc.ListEntries(context.Background(), "k", port.EntryFilter{Limit: 1000, Actor: donor})
	require.NoError(t, err)
}

func TestGetUnknownCampaign(t *testing.T) {
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().Get(mock.Anything, "missing").Return(nil, nil)

	svc := NewLedgerUseCase(repo, mocks.NewMockTransferer(t), nopSink{}, domain.NewSeededKeys("test"), discardLogger())
	_, err := svc.GetCampaign(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestInitializeTwice(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Initialize(context.Background(), authority, wallet, deadline)
	require.ErrorIs(t, err, domain.ErrCampaignExists)

	_, err = f.svc.Initialize(context.Background(), "other", wallet, start)
	require.ErrorIs(t, err, domain.ErrDeadlineInPast)
}

// TestCampaignLifecycle walks a campaign through donations, a pause,
// expiry, a refund and the final withdrawal.
func TestCampaignLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, map[string]uint64{string(donor): 10_000_000})

	c, err := f.svc.Donate(ctx, f.key, domain.DonateParams{Donor: donor, Amount: 1_000_000, Message: "hi"})
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), c.TotalDonated)
	require.Equal(t, uint64(1_000_000), f.book.Balance(wallet))

	// identical donations are booked twice
	_, err = f.svc.Donate(ctx, f.key, domain.DonateParams{Donor: donor, Amount: 1_000_000, Message: "hi"})
	require.NoError(t, err)

	_, err = f.svc.Withdraw(ctx, f.key, authority, 500_000)
	require.ErrorIs(t, err, domain.ErrWithdrawalBeforeDeadline)

	_, err = f.svc.ToggleActive(ctx, f.key, donor)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	c, err = f.svc.ToggleActive(ctx, f.key, authority)
	require.NoError(t, err)
	require.False(t, c.IsActive)

	_, err = f.svc.Donate(ctx, f.key, domain.DonateParams{Donor: donor, Amount: 1_000_000})
	require.ErrorIs(t, err, domain.ErrCampaignInactive)

	c, err = f.svc.Refund(ctx, f.key, authority, donor, 400_000)
	require.NoError(t, err)
	require.Equal(t, uint64(400_000), c.TotalWithdrawn)
	require.Equal(t, uint64(8_400_000), f.book.Balance(donor))

	f.clock.Set(deadline)
	stats, err := f.svc.Stats(ctx, f.key)
	require.NoError(t, err)
	require.Equal(t, domain.StateExpired, stats.State)
	require.Equal(t, uint64(1_600_000), stats.Available)
	require.False(t, stats.Settled)

	_, err = f.svc.Withdraw(ctx, f.key, donor, 1)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = f.svc.Withdraw(ctx, f.key, authority, 1_600_001)
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	c, err = f.svc.Withdraw(ctx, f.key, authority, 1_600_000)
	require.NoError(t, err)
	require.Equal(t, c.TotalDonated, c.TotalWithdrawn)
	require.Equal(t, uint64(1_600_000), f.book.Balance(authority))
	require.Equal(t, uint64(0), f.book.Balance(wallet))

	stats, err = f.svc.Stats(ctx, f.key)
	require.NoError(t, err)
	require.True(t, stats.Settled)

	entries, err := f.svc.ListEntries(ctx, f.key, port.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)
	require.Equal(t, domain.EntryWithdrawal, entries[0].Kind)
	require.Equal(t, domain.EntryRefund, entries[1].Kind)
	require.Equal(t, domain.EntryDonation, entries[3].Kind)
	require.Equal(t, "hi", entries[3].Message)
}

// TestAuthorityAsFundWallet checks that a campaign paying into its own
// authority can still be refunded, withdrawn and settled.
func TestAuthorityAsFundWallet(t *testing.T) {
	ctx := context.Background()
	const founder domain.Address = "founder"
	f := newFixture(t, map[string]uint64{string(donor): 10_000_000})

	c, err := f.svc.Initialize(ctx, founder, founder, deadline)
	require.NoError(t, err)

	_, err = f.svc.Donate(ctx, c.Key, domain.DonateParams{Donor: donor, Amount: 1_000_000})
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), f.book.Balance(founder))

	c, err = f.svc.Refund(ctx, c.Key, founder, founder, 100_000)
	require.NoError(t, err)
	require.Equal(t, uint64(100_000), c.TotalWithdrawn)

	f.clock.Set(deadline)
	c, err = f.svc.Withdraw(ctx, c.Key, founder, 900_000)
	require.NoError(t, err)
	require.Equal(t, c.TotalDonated, c.TotalWithdrawn)
	require.Equal(t, uint64(1_000_000), f.book.Balance(founder))

	stats, err := f.svc.Stats(ctx, c.Key)
	require.NoError(t, err)
	require.True(t, stats.Settled)
}

// TestDonationTransferFailureWithRealBook checks that a donor without
// funds leaves both the book and the ledger unchanged.
func TestDonationTransferFailureWithRealBook(t *testing.T) {
	f := newFixture(t, map[string]uint64{string(donor): 50_000})
	_, err := f.svc.Donate(context.Background(), f.key, domain.DonateParams{Donor: donor, Amount: domain.MinDonation})
	require.ErrorIs(t, err, domain.ErrTransferFailed)
	require.ErrorIs(t, err, transfer.ErrInsufficientBalance)

	c, err := f.svc.GetCampaign(context.Background(), f.key)
	require.NoError(t, err)
	require.Zero(t, c.TotalDonated)
	require.Zero(t, c.DonorCount)
	require.Equal(t, uint64(50_000), f.book.Balance(donor))
}

// TestConcurrentDonations ensures concurrent donations are all booked
// without losing updates.
func TestConcurrentDonations(t *testing.T) {
	f := newFixture(t, map[string]uint64{string(donor): 100 * domain.MinDonation})

	count := 10
	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func() {
			defer wg.Done()
			_, _ = f.svc.Donate(context.Background(), f.key, domain.DonateParams{Donor: donor, Amount: domain.MinDonation})
		}()
	}
	wg.Wait()

	c, err := f.svc.GetCampaign(context.Background(), f.key)
	require.NoError(t, err)
	require.Equal(t, uint64(count), c.DonorCount)
	require.Equal(t, uint64(count)*domain.MinDonation, c.TotalDonated)
	require.Equal(t, c.TotalDonated, f.book.Balance(wallet))
}

// TestRandomOperationSequences drives random operations and checks the
// ledger invariants after every step.
func TestRandomOperationSequences(t *testing.T) {
	donors := []domain.Address{"d1", "d2", "d3"}
	balances := map[string]uint64{}
	for _, d := range donors {
		balances[string(d)] = 50 * domain.MaxDonation
	}
	f := newFixture(t, balances)
	ctx := context.Background()
	r := rand.New(rand.NewSource(42))

	initial, err := f.svc.GetCampaign(ctx, f.key)
	require.NoError(t, err)
	var donations uint64

	for step := 0; step < 500; step++ {
		if step == 250 {
			f.clock.Set(deadline)
		}
		d := donors[r.Intn(len(donors))]
		amount := uint64(r.Int63n(int64(2 * domain.MinDonation * 10)))
		callers := []domain.Address{authority, d}
		caller := callers[r.Intn(len(callers))]

		switch r.Intn(4) {
		case 0:
			if _, err := f.svc.Donate(ctx, f.key, domain.DonateParams{Donor: d, Amount: amount}); err == nil {
				donations++
			}
		case 1:
			_, _ = f.svc.Withdraw(ctx, f.key, caller, amount)
		case 2:
			_, _ = f.svc.Refund(ctx, f.key, caller, d, amount)
		case 3:
			_, _ = f.svc.ToggleActive(ctx, f.key, caller)
		}

		c, err := f.svc.GetCampaign(ctx, f.key)
		require.NoError(t, err)
		require.LessOrEqual(t, c.TotalWithdrawn, c.TotalDonated, "step %d", step)
		require.Equal(t, donations, c.DonorCount, "step %d", step)
		require.Equal(t, initial.Authority, c.Authority)
		require.Equal(t, initial.FundWallet, c.FundWallet)
		require.Equal(t, initial.Deadline, c.Deadline)
		require.Equal(t, c.Available(), f.book.Balance(wallet), "step %d", step)
	}
}
