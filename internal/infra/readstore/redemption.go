package readstore

import (
	"context"
	"time"

	"dealspot/internal/infra"
	"dealspot/internal/infra/db"
	"dealspot/internal/pkg/pgconv"
	"dealspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const redemptionViewColumns = `
	r.id, r.deal_id, d.title, r.vendor_id, r.user_id, r.status, r.source,
	r.redeemed_at, r.voided_at, r.void_reason`

type RedemptionReadStore struct {
	db db.DBTX
}

func NewRedemptionReadStore(dbtx db.DBTX) *RedemptionReadStore {
	return &RedemptionReadStore{db: dbtx}
}

func (s *RedemptionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RedemptionView, error) {
	query := `
		SELECT` + redemptionViewColumns + `
		FROM redemptions r
		JOIN deals d ON d.id = r.deal_id
		WHERE r.id = $1`

	view, err := scanRedemptionView(s.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("redemption not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find redemption view", err)
	}
	return view, nil
}

func (s *RedemptionReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.RedemptionView, error) {
	query := `
		SELECT` + redemptionViewColumns + `
		FROM redemptions r
		JOIN deals d ON d.id = r.deal_id
		WHERE r.user_id = $1
		ORDER BY r.redeemed_at DESC, r.id DESC
		LIMIT $2`

	return s.list(ctx, query, userID, limit)
}

func (s *RedemptionReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastRedeemedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RedemptionView, error) {
	query := `
		SELECT` + redemptionViewColumns + `
		FROM redemptions r
		JOIN deals d ON d.id = r.deal_id
		WHERE r.user_id = $1
		  AND (r.redeemed_at, r.id) < ($2, $3)
		ORDER BY r.redeemed_at DESC, r.id DESC
		LIMIT $4`

	return s.list(ctx, query, userID, lastRedeemedAt, lastID, limit)
}

func (s *RedemptionReadStore) FindByVendorFirstPage(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*queries.RedemptionView, error) {
	query := `
		SELECT` + redemptionViewColumns + `
		FROM redemptions r
		JOIN deals d ON d.id = r.deal_id
		WHERE r.vendor_id = $1
		ORDER BY r.redeemed_at DESC, r.id DESC
		LIMIT $2`

	return s.list(ctx, query, vendorID, limit)
}

func (s *RedemptionReadStore) FindByVendorKeyset(ctx context.Context, vendorID uuid.UUID, lastRedeemedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RedemptionView, error) {
	query := `
		SELECT` + redemptionViewColumns + `
		FROM redemptions r
		JOIN deals d ON d.id = r.deal_id
		WHERE r.vendor_id = $1
		  AND (r.redeemed_at, r.id) < ($2, $3)
		ORDER BY r.redeemed_at DESC, r.id DESC
		LIMIT $4`

	return s.list(ctx, query, vendorID, lastRedeemedAt, lastID, limit)
}

func (s *RedemptionReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.RedemptionView, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list redemptions", err)
	}
	defer rows.Close()

	var views []*queries.RedemptionView
	for rows.Next() {
		view, err := scanRedemptionView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan redemption view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate redemptions", err)
	}
	return views, nil
}

func scanRedemptionView(row pgx.Row) (*queries.RedemptionView, error) {
	var (
		v          queries.RedemptionView
		voidedAt   pgtype.Timestamptz
		voidReason pgtype.Text
	)
	err := row.Scan(
		&v.ID, &v.DealID, &v.DealTitle, &v.VendorID, &v.UserID, &v.Status, &v.Source,
		&v.RedeemedAt, &voidedAt, &voidReason,
	)
	if err != nil {
		return nil, err
	}
	v.VoidedAt = pgconv.TimePtrFromPgtype(voidedAt)
	v.VoidReason = pgconv.StringPtrFromPgtype(voidReason)
	return &v, nil
}
