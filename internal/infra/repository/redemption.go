package repository

import (
	"context"
	"time"

	"dealspot/internal/domain/redemption"
	"dealspot/internal/infra"
	"dealspot/internal/infra/db"
	"dealspot/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RedemptionRepository struct {
	db db.DBTX
}

func NewRedemptionRepository(dbtx db.DBTX) *RedemptionRepository {
	return &RedemptionRepository{db: dbtx}
}

func (r *RedemptionRepository) Append(ctx context.Context, rec *redemption.Redemption) (uuid.UUID, error) {
	const query = `
		INSERT INTO redemptions (id, deal_id, vendor_id, user_id, status, source, redeemed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		rec.ID(), rec.DealID(), rec.VendorID(), rec.UserID(),
		rec.Status().String(), rec.Source(), rec.RedeemedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to append redemption", err)
	}
	return id, nil
}

func (r *RedemptionRepository) Void(ctx context.Context, rec *redemption.Redemption) error {
	const query = `
		UPDATE redemptions
		SET status = $2, voided_at = $3, void_reason = $4
		WHERE id = $1 AND status = 'redeemed'`

	tag, err := r.db.Exec(ctx, query,
		rec.ID(), rec.Status().String(),
		pgconv.TimePtrToPgtype(rec.VoidedAt()),
		pgconv.StringPtrToPgtype(rec.VoidReason()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to void redemption", err)
	}
	// Zero rows means either a missing row or a concurrent void; the status
	// guard in the WHERE clause keeps voiding idempotent at the storage level.
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("redemption not voidable", nil, infra.KindConflict)
	}
	return nil
}

func (r *RedemptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*redemption.Redemption, error) {
	const query = `
		SELECT id, deal_id, vendor_id, user_id, status, source, redeemed_at, voided_at, void_reason
		FROM redemptions
		WHERE id = $1`

	var (
		recID      uuid.UUID
		dealID     uuid.UUID
		vendorID   uuid.UUID
		userID     uuid.UUID
		status     string
		source     string
		redeemedAt time.Time
		voidedAt   pgtype.Timestamptz
		voidReason pgtype.Text
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&recID, &dealID, &vendorID, &userID, &status, &source, &redeemedAt, &voidedAt, &voidReason,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("redemption not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find redemption", err)
	}

	st, err := redemption.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct redemption", err)
	}
	return redemption.Reconstruct(
		recID, dealID, vendorID, userID, st, source, redeemedAt,
		pgconv.TimePtrFromPgtype(voidedAt),
		pgconv.StringPtrFromPgtype(voidReason),
	), nil
}

func (r *RedemptionRepository) CountActiveForDeal(ctx context.Context, dealID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM redemptions
		WHERE deal_id = $1 AND status = 'redeemed'`

	var count int64
	if err := r.db.QueryRow(ctx, query, dealID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count deal redemptions", err)
	}
	return count, nil
}

func (r *RedemptionRepository) CountActiveForUserAndDeal(ctx context.Context, userID, dealID uuid.UUID) (int64, error) {
	const query = `
		SELECT COUNT(*) FROM redemptions
		WHERE user_id = $1 AND deal_id = $2 AND status = 'redeemed'`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID, dealID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count user redemptions", err)
	}
	return count, nil
}

func (r *RedemptionRepository) MostRecentActiveForUserAndDeal(ctx context.Context, userID, dealID uuid.UUID) (*time.Time, error) {
	const query = `
		SELECT redeemed_at FROM redemptions
		WHERE user_id = $1 AND deal_id = $2 AND status = 'redeemed'
		ORDER BY redeemed_at DESC
		LIMIT 1`

	var redeemedAt time.Time
	err := r.db.QueryRow(ctx, query, userID, dealID).Scan(&redeemedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find last redemption", err)
	}
	return &redeemedAt, nil
}
