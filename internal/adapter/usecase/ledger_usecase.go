package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

const (
	defaultEntryLimit = 50
	maxEntryLimit     = 100
)

// LedgerUseCase provides the campaign ledger operations. It orchestrates the
// domain checks, the value transfer service and the repository so that each
// operation either takes effect completely or not at all.
type LedgerUseCase struct {
	repo     port.CampaignRepository
	transfer port.Transferer
	sink     port.EventSink
	keys     domain.KeyStrategy
	logger   *slog.Logger
	tracer   trace.Tracer

	// now is the wall clock. Campaign timing is evaluated in whole seconds.
	now func() time.Time
}

// Option customises a LedgerUseCase.
type Option func(*LedgerUseCase)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(u *LedgerUseCase) { u.now = now }
}

// WithTracer replaces the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(u *LedgerUseCase) { u.tracer = tracer }
}

// NewLedgerUseCase creates a new usecase with the provided collaborators.
func NewLedgerUseCase(
	repo port.CampaignRepository,
	transfer port.Transferer,
	sink port.EventSink,
	keys domain.KeyStrategy,
	logger *slog.Logger,
	opts ...Option,
) *LedgerUseCase {
	u := &LedgerUseCase{
		repo:     repo,
		transfer: transfer,
		sink:     sink,
		keys:     keys,
		logger:   logger,
		tracer:   otel.Tracer("fund-ledger/usecase"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Initialize creates the campaign owned by authority under its derived key.
func (u *LedgerUseCase) Initialize(ctx context.Context, authority, fundWallet domain.Address, deadline int64) (*domain.Campaign, error) {
	ctx, span := u.tracer.Start(ctx, "ledger.initialize",
		trace.WithAttributes(attribute.Int64("campaign.deadline", deadline)))
	defer span.End()

	now := u.clock()
	c, err := domain.NewCampaign(u.keys.CampaignKey(authority), authority, fundWallet, deadline, now)
	if err != nil {
		return nil, fail(span, err)
	}
	c.Version = 1
	if err = u.repo.Create(ctx, *c); err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.String("campaign.key", c.Key))
	u.sink.Emit(ctx, domain.Event{
		Kind:         domain.EventInitialized,
		CampaignKey:  c.Key,
		Actor:        authority,
		Counterparty: fundWallet,
		IsActive:     c.IsActive,
		At:           now,
	})
	return c, nil
}

// Donate checks the donation, moves the funds from the donor to the fund
// wallet and books them. Identical donations are booked independently.
func (u *LedgerUseCase) Donate(ctx context.Context, key string, p domain.DonateParams) (*domain.Campaign, error) {
	ctx, span := u.startOp(ctx, "donate", key, p.Amount)
	defer span.End()

	now := u.clock()
	c, err := u.apply(ctx, key,
		func(c *domain.Campaign) (movement, error) {
			if err := c.CheckDonate(p, now); err != nil {
				return movement{}, err
			}
			return movement{from: p.Donor, to: c.FundWallet, amount: p.Amount}, nil
		},
		func(c *domain.Campaign, mv movement) *domain.Entry {
			c.ApplyDonation(mv.amount)
			e := domain.NewEntry(c, domain.EntryDonation, p.Donor, mv.to, mv.amount, now)
			e.Message = p.Message
			e.Anonymous = p.Anonymous
			return &e
		})
	if err != nil {
		return nil, fail(span, err)
	}
	u.sink.Emit(ctx, domain.Event{
		Kind:           domain.EventDonated,
		CampaignKey:    key,
		Actor:          p.Donor,
		Counterparty:   c.FundWallet,
		Amount:         p.Amount,
		Message:        p.Message,
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		IsActive:       c.IsActive,
		At:             now,
	})
	return c, nil
}

// Withdraw pays amount out of the fund wallet to the authority.
func (u *LedgerUseCase) Withdraw(ctx context.Context, key string, caller domain.Address, amount uint64) (*domain.Campaign, error) {
	ctx, span := u.startOp(ctx, "withdraw", key, amount)
	defer span.End()

	now := u.clock()
	c, err := u.apply(ctx, key,
		func(c *domain.Campaign) (movement, error) {
			if err := c.CheckWithdraw(caller, amount, now); err != nil {
				return movement{}, err
			}
			return movement{from: c.FundWallet, to: c.Authority, amount: amount}, nil
		},
		func(c *domain.Campaign, mv movement) *domain.Entry {
			c.ApplyPayout(mv.amount)
			e := domain.NewEntry(c, domain.EntryWithdrawal, caller, mv.to, mv.amount, now)
			return &e
		})
	if err != nil {
		return nil, fail(span, err)
	}
	u.emitPayout(ctx, domain.EventWithdrawn, c, caller, c.Authority, amount, now)
	return c, nil
}

// Refund pays amount out of the fund wallet back to donor. Refunds are
// booked against TotalWithdrawn exactly like withdrawals.
func (u *LedgerUseCase) Refund(ctx context.Context, key string, caller, donor domain.Address, amount uint64) (*domain.Campaign, error) {
	ctx, span := u.startOp(ctx, "refund", key, amount)
	defer span.End()

	now := u.clock()
	c, err := u.apply(ctx, key,
		func(c *domain.Campaign) (movement, error) {
			if err := c.CheckRefund(caller, amount); err != nil {
				return movement{}, err
			}
			return movement{from: c.FundWallet, to: donor, amount: amount}, nil
		},
		func(c *domain.Campaign, mv movement) *domain.Entry {
			c.ApplyPayout(mv.amount)
			e := domain.NewEntry(c, domain.EntryRefund, caller, mv.to, mv.amount, now)
			return &e
		})
	if err != nil {
		return nil, fail(span, err)
	}
	u.emitPayout(ctx, domain.EventRefunded, c, caller, donor, amount, now)
	return c, nil
}

// ToggleActive flips whether the campaign accepts donations.
func (u *LedgerUseCase) ToggleActive(ctx context.Context, key string, caller domain.Address) (*domain.Campaign, error) {
	ctx, span := u.startOp(ctx, "toggle", key, 0)
	defer span.End()

	now := u.clock()
	c, err := u.apply(ctx, key,
		func(c *domain.Campaign) (movement, error) {
			return movement{}, c.Toggle(caller)
		},
		func(*domain.Campaign, movement) *domain.Entry { return nil })
	if err != nil {
		return nil, fail(span, err)
	}
	u.sink.Emit(ctx, domain.Event{
		Kind:           domain.EventToggled,
		CampaignKey:    key,
		Actor:          caller,
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		IsActive:       c.IsActive,
		At:             now,
	})
	return c, nil
}

// GetCampaign returns the stored campaign or domain.ErrCampaignNotFound.
func (u *LedgerUseCase) GetCampaign(ctx context.Context, key string) (*domain.Campaign, error) {
	c, err := u.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

// ListEntries returns the campaign journal, newest first. The limit
// defaults to 50 and is capped at 100.
func (u *LedgerUseCase) ListEntries(ctx context.Context, key string, filter port.EntryFilter) ([]domain.Entry, error) {
	if _, err := u.GetCampaign(ctx, key); err != nil {
		return nil, err
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultEntryLimit
	case filter.Limit > maxEntryLimit:
		filter.Limit = maxEntryLimit
	}
	return u.repo.ListEntries(ctx, key, filter)
}

// Stats summarises balances and the derived lifecycle state.
func (u *LedgerUseCase) Stats(ctx context.Context, key string) (*port.StatsResp, error) {
	c, err := u.GetCampaign(ctx, key)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	return &port.StatsResp{
		Key:            c.Key,
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		Available:      c.Available(),
		DonorCount:     c.DonorCount,
		State:          c.State(now),
		Settled:        c.Settled(now),
		Deadline:       c.Deadline,
	}, nil
}

// movement is the transfer an operation performs once its checks pass. A
// zero amount means no transfer.
type movement struct {
	from, to domain.Address
	amount   uint64
}

// apply runs one operation inside a repository mutation: check, then
// transfer, then book. Accumulators are only touched after the transfer
// reported success. If the transfer went through but the mutation could not
// be committed, the transfer is reversed.
func (u *LedgerUseCase) apply(
	ctx context.Context,
	key string,
	check func(c *domain.Campaign) (movement, error),
	book func(c *domain.Campaign, mv movement) *domain.Entry,
) (*domain.Campaign, error) {
	var (
		done        movement
		transferred bool
	)
	c, err := u.repo.Mutate(ctx, key, func(c *domain.Campaign) (*domain.Entry, error) {
		mv, err := check(c)
		if err != nil {
			return nil, err
		}
		if mv.amount > 0 {
			if err = u.transfer.Transfer(ctx, mv.from, mv.to, mv.amount); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrTransferFailed, err)
			}
			done, transferred = mv, true
		}
		return book(c, mv), nil
	})
	if err != nil && transferred {
		u.compensate(ctx, key, done, err)
	}
	return c, err
}

func (u *LedgerUseCase) compensate(ctx context.Context, key string, mv movement, cause error) {
	ctx = context.WithoutCancel(ctx)
	attrs := []any{
		slog.String("campaign", key),
		slog.String("from", string(mv.to)),
		slog.String("to", string(mv.from)),
		slog.Uint64("amount", mv.amount),
		slog.Any("cause", cause),
	}
	if err := u.transfer.Transfer(ctx, mv.to, mv.from, mv.amount); err != nil {
		u.logger.ErrorContext(ctx, "reversing transfer failed, manual reconciliation required",
			append(attrs, slog.Any("error", err))...)
		return
	}
	u.logger.WarnContext(ctx, "commit failed after transfer, transfer reversed", attrs...)
}

func (u *LedgerUseCase) emitPayout(ctx context.Context, kind domain.EventKind, c *domain.Campaign, caller, to domain.Address, amount uint64, now int64) {
	u.sink.Emit(ctx, domain.Event{
		Kind:           kind,
		CampaignKey:    c.Key,
		Actor:          caller,
		Counterparty:   to,
		Amount:         amount,
		TotalDonated:   c.TotalDonated,
		TotalWithdrawn: c.TotalWithdrawn,
		IsActive:       c.IsActive,
		At:             now,
	})
}

func (u *LedgerUseCase) startOp(ctx context.Context, op, key string, amount uint64) (context.Context, trace.Span) {
	return u.tracer.Start(ctx, "ledger."+op, trace.WithAttributes(
		attribute.String("campaign.key", key),
		attribute.String("amount", fmt.Sprint(amount)),
	))
}

// Now returns the ledger clock truncated to whole seconds.
func (u *LedgerUseCase) Now() time.Time {
	return time.Unix(u.clock(), 0)
}

func (u *LedgerUseCase) clock() int64 {
	return u.now().Unix()
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	if !isRejection(err) {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// isRejection reports whether err is an ordinary precondition rejection as
// opposed to a collaborator or storage failure.
func isRejection(err error) bool {
	for _, target := range []error{
		domain.ErrUnauthorized, domain.ErrInvalidFundWallet,
		domain.ErrDeadlineInPast, domain.ErrCampaignTooLong, domain.ErrCampaignExpired, domain.ErrWithdrawalBeforeDeadline,
		domain.ErrDonationTooSmall, domain.ErrDonationTooLarge, domain.ErrMessageTooLong,
		domain.ErrInsufficientFunds, domain.ErrZeroAmount, domain.ErrCampaignInactive,
		domain.ErrCampaignNotFound, domain.ErrCampaignExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
