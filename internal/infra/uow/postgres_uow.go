package uow

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"dealspot/internal/domain/deal"
	"dealspot/internal/domain/redemption"
	"dealspot/internal/infra/db"
	"dealspot/internal/infra/repository"
	"dealspot/internal/pkg/errs"
	"dealspot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxRetries     = 3
	baseRetryDelay = 10 * time.Millisecond

	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

type PostgresUoW struct {
	pool  *pgxpool.Pool
	reads shared.CommandReads
}

func NewPostgresUoW(pool *pgxpool.Pool) *PostgresUoW {
	return &PostgresUoW{
		pool:  pool,
		reads: newCommandReads(pool),
	}
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{}, fn)
}

func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return errs.Wrap(err, "failed to begin read-only transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return u.reads
}

// runInTxWithOptions retries the whole closure on serialization failures and
// deadlocks. The closure must therefore be safe to re-execute from the top.
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(calculateBackoff(attempt)):
			}
		}

		err := u.attemptTx(ctx, opts, fn)
		if err == nil {
			return nil
		}
		if !isRetryablePgErr(err) {
			return err
		}
		lastErr = err
	}
	return errs.Wrap(lastErr, "transaction retries exhausted")
}

func (u *PostgresUoW) attemptTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, newPgTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit transaction")
	}
	return nil
}

func isRetryablePgErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgErrCodeSerializationFailure || pgErr.Code == pgErrCodeDeadlockDetected
}

func calculateBackoff(attempt int) time.Duration {
	backoff := baseRetryDelay * time.Duration(1<<uint(attempt-1))
	// Jitter up to the full backoff spreads out retries of colliding
	// transactions that would otherwise deadlock again in lockstep.
	return backoff + time.Duration(cryptoRandInt63n(int64(backoff)))
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return n / 2
	}
	return v.Int64()
}

// pgTx binds repositories to a single transaction so eligibility reads and
// the ledger append observe one snapshot.
type pgTx struct {
	tx          pgx.Tx
	deals       shared.DealRepository
	redemptions shared.RedemptionRepository
	reads       shared.CommandReads
}

func newPgTx(tx pgx.Tx) *pgTx {
	return &pgTx{tx: tx}
}

func (t *pgTx) Deals() shared.DealRepository {
	if t.deals == nil {
		t.deals = repository.NewDealRepository(t.tx)
	}
	return t.deals
}

func (t *pgTx) Redemptions() shared.RedemptionRepository {
	if t.redemptions == nil {
		t.redemptions = repository.NewRedemptionRepository(t.tx)
	}
	return t.redemptions
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.reads == nil {
		t.reads = newCommandReads(t.tx)
	}
	return t.reads
}

type commandReads struct {
	deals       *repository.DealRepository
	redemptions *repository.RedemptionRepository
}

func newCommandReads(dbtx db.DBTX) *commandReads {
	return &commandReads{
		deals:       repository.NewDealRepository(dbtx),
		redemptions: repository.NewRedemptionRepository(dbtx),
	}
}

func (r *commandReads) DealByID(ctx context.Context, id uuid.UUID) (*deal.Deal, error) {
	return r.deals.FindByID(ctx, id)
}

func (r *commandReads) QuotaState(ctx context.Context, userID, dealID uuid.UUID) (*redemption.QuotaState, error) {
	globalCount, err := r.redemptions.CountActiveForDeal(ctx, dealID)
	if err != nil {
		return nil, err
	}
	userCount, err := r.redemptions.CountActiveForUserAndDeal(ctx, userID, dealID)
	if err != nil {
		return nil, err
	}
	lastRedeemedAt, err := r.redemptions.MostRecentActiveForUserAndDeal(ctx, userID, dealID)
	if err != nil {
		return nil, err
	}
	return &redemption.QuotaState{
		GlobalCount:    globalCount,
		UserCount:      userCount,
		LastRedeemedAt: lastRedeemedAt,
	}, nil
}
