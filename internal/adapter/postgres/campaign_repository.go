package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
)

// serializationFailure is the SQLSTATE postgres reports when a serializable
// transaction loses against a concurrent one.
const serializationFailure = "40001"

const campaignColumns = `key, authority, fund_wallet, total_donated, total_withdrawn, donor_count, is_active, deadline, created_at, version`

// CampaignRepository implements port.CampaignRepository using pgxpool for PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Create inserts a new campaign row.
func (r *CampaignRepository) Create(ctx context.Context, c domain.Campaign) error {
	args, err := campaignArgs(c)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) ON CONFLICT (key) DO NOTHING`, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCampaignExists
	}
	return nil
}

// Get returns a campaign by key.
func (r *CampaignRepository) Get(ctx context.Context, key string) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE key = $1`, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all campaigns ordered by key.
func (r *CampaignRepository) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY key`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		c, err := scanCampaign(row)
		if err != nil {
			return domain.Campaign{}, err
		}
		return *c, nil
	})
}

// Mutate locks the campaign row in a serializable transaction, applies fn
// and writes the result together with its journal entry.
func (r *CampaignRepository) Mutate(ctx context.Context, key string, fn port.MutateFunc) (*domain.Campaign, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, err
	}
	defer func() {
		// no-op once committed
		_ = tx.Rollback(ctx)
	}()

	// lock campaign
	c, err := scanCampaign(tx.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE key = $1 FOR UPDATE`, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, mapTxError(err)
	}
	prev := c.Version

	entry, err := fn(c)
	if err != nil {
		return nil, err
	}
	c.Version++

	args, err := campaignArgs(*c)
	if err != nil {
		return nil, err
	}
	// args[3:6] are the accumulators, args[9] the new version
	tag, err := tx.Exec(ctx, `UPDATE campaigns SET total_donated = $2, total_withdrawn = $3, donor_count = $4,
is_active = $5, version = $6 WHERE key = $1 AND version = $7`,
		c.Key, args[3], args[4], args[5], c.IsActive, args[9], int64(prev))
	if err != nil {
		return nil, mapTxError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrConcurrentUpdate
	}
	if entry != nil {
		if err = insertEntry(ctx, tx, *entry); err != nil {
			return nil, mapTxError(err)
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, mapTxError(err)
	}
	return c, nil
}

// ListEntries returns journal entries newest first.
func (r *CampaignRepository) ListEntries(ctx context.Context, key string, filter port.EntryFilter) ([]domain.Entry, error) {
	var (
		where = []string{"campaign_key = $1"}
		args  = []interface{}{key}
	)
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}
	if filter.Actor != "" {
		args = append(args, string(filter.Actor))
		where = append(where, fmt.Sprintf("actor = $%d", len(args)))
	}
	query := `SELECT id, campaign_key, kind, actor, counterparty, amount, message, anonymous, total_donated, total_withdrawn, created_at
FROM ledger_entries WHERE ` + strings.Join(where, " AND ") + ` ORDER BY seq DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Entry, error) {
		var (
			e                          domain.Entry
			amount, donated, withdrawn int64
			kind, actor, counterparty  string
		)
		err := row.Scan(&e.ID, &e.CampaignKey, &kind, &actor, &counterparty, &amount, &e.Message, &e.Anonymous, &donated, &withdrawn, &e.CreatedAt)
		e.Kind = domain.EntryKind(kind)
		e.Actor = domain.Address(actor)
		e.Counterparty = domain.Address(counterparty)
		e.Amount, e.TotalDonated, e.TotalWithdrawn = uint64(amount), uint64(donated), uint64(withdrawn)
		return e, err
	})
}

func insertEntry(ctx context.Context, tx pgx.Tx, e domain.Entry) error {
	amount, err := toInt64(e.Amount)
	if err != nil {
		return err
	}
	donated, err := toInt64(e.TotalDonated)
	if err != nil {
		return err
	}
	withdrawn, err := toInt64(e.TotalWithdrawn)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `INSERT INTO ledger_entries
(id, campaign_key, kind, actor, counterparty, amount, message, anonymous, total_donated, total_withdrawn, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		e.ID, e.CampaignKey, string(e.Kind), string(e.Actor), string(e.Counterparty), amount, e.Message, e.Anonymous, donated, withdrawn, e.CreatedAt)
	return err
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c                               domain.Campaign
		authority, wallet               string
		donated, withdrawn, count, vers int64
	)
	err := row.Scan(&c.Key, &authority, &wallet, &donated, &withdrawn, &count, &c.IsActive, &c.Deadline, &c.CreatedAt, &vers)
	if err != nil {
		return nil, err
	}
	c.Authority = domain.Address(authority)
	c.FundWallet = domain.Address(wallet)
	c.TotalDonated = uint64(donated)
	c.TotalWithdrawn = uint64(withdrawn)
	c.DonorCount = uint64(count)
	c.Version = uint64(vers)
	return &c, nil
}

// campaignArgs returns the campaign columns in campaignColumns order.
func campaignArgs(c domain.Campaign) ([]interface{}, error) {
	out := []interface{}{c.Key, string(c.Authority), string(c.FundWallet)}
	for _, v := range []uint64{c.TotalDonated, c.TotalWithdrawn, c.DonorCount} {
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	vers, err := toInt64(c.Version)
	if err != nil {
		return nil, err
	}
	return append(out, c.IsActive, c.Deadline, c.CreatedAt, vers), nil
}

// toInt64 guards the BIGINT columns. Realistic totals stay far below the limit.
func toInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("value %d does not fit a BIGINT column", v)
	}
	return int64(v), nil
}

func mapTxError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == serializationFailure {
		return fmt.Errorf("%w: %w", domain.ErrConcurrentUpdate, err)
	}
	return err
}
