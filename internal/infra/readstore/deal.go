package readstore

import (
	"context"
	"time"

	"dealspot/internal/infra"
	"dealspot/internal/infra/db"
	"dealspot/internal/pkg/pgconv"
	"dealspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DealReadStore struct {
	db db.DBTX
}

func NewDealReadStore(dbtx db.DBTX) *DealReadStore {
	return &DealReadStore{db: dbtx}
}

func (s *DealReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.DealView, error) {
	const query = `
		SELECT id, vendor_id, title, description, fine_print, category, city, image_url,
		       discount_kind, discount_value, tier, is_pass_locked, status, is_active,
		       starts_at, ends_at, max_redemptions_total, max_redemptions_per_user,
		       redemption_frequency, custom_redemption_days, cooldown_hours,
		       created_at, updated_at
		FROM deals
		WHERE id = $1 AND deleted_at IS NULL`

	var (
		v             queries.DealView
		imageURL      pgtype.Text
		discountValue pgtype.Numeric
		isPassLocked  bool
		startsAt      pgtype.Timestamptz
		endsAt        pgtype.Timestamptz
		maxTotal      pgtype.Int4
		customDays    pgtype.Int4
		cooldownHours pgtype.Int4
	)
	err := s.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.VendorID, &v.Title, &v.Description, &v.FinePrint, &v.Category, &v.City, &imageURL,
		&v.DiscountKind, &discountValue, &v.Tier, &isPassLocked, &v.Status, &v.IsActive,
		&startsAt, &endsAt, &maxTotal, &v.MaxRedemptionsPerUser,
		&v.RedemptionFrequency, &customDays, &cooldownHours,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("deal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deal view", err)
	}

	v.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	v.DiscountValue, err = pgconv.Float64PtrFromNumeric(discountValue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert deal discount value", err)
	}
	v.StartsAt = pgconv.TimePtrFromPgtype(startsAt)
	v.EndsAt = pgconv.TimePtrFromPgtype(endsAt)
	v.MaxRedemptionsTotal = pgconv.Int32PtrFromPgtype(maxTotal)
	v.CustomRedemptionDays = pgconv.Int32PtrFromPgtype(customDays)
	v.CooldownHours = pgconv.Int32PtrFromPgtype(cooldownHours)
	return &v, nil
}

const publishedDealsBase = `
	SELECT id, vendor_id, title, category, city, discount_kind, discount_value, tier, ends_at, created_at
	FROM deals
	WHERE status = 'published'
	  AND deleted_at IS NULL
	  AND (starts_at IS NULL OR starts_at <= $1)
	  AND (ends_at IS NULL OR ends_at >= $1)
	  AND ($2::text IS NULL OR city = $2)
	  AND ($3::text IS NULL OR category = $3)
	  AND ($4::text IS NULL OR tier = $4)`

// FindPublishedFirstPage lists browsable deals. Deals whose window has
// already closed are filtered here even if a write has not flipped their
// stored status yet.
func (s *DealReadStore) FindPublishedFirstPage(ctx context.Context, filter queries.DealFilter, redeemableAt time.Time, limit int32) ([]*queries.DealListItem, error) {
	query := publishedDealsBase + `
		ORDER BY created_at DESC, id DESC
		LIMIT $5`

	return s.listDeals(ctx, query, redeemableAt, filter.City, filter.Category, filter.Tier, limit)
}

// FindPublishedKeyset continues a browse listing after the (created_at, id)
// pair of the previous page's last row.
func (s *DealReadStore) FindPublishedKeyset(ctx context.Context, filter queries.DealFilter, redeemableAt time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.DealListItem, error) {
	query := publishedDealsBase + `
		  AND (created_at, id) < ($5, $6)
		ORDER BY created_at DESC, id DESC
		LIMIT $7`

	return s.listDeals(ctx, query, redeemableAt, filter.City, filter.Category, filter.Tier, lastCreatedAt, lastID, limit)
}

func (s *DealReadStore) listDeals(ctx context.Context, query string, args ...any) ([]*queries.DealListItem, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list published deals", err)
	}
	defer rows.Close()

	var items []*queries.DealListItem
	for rows.Next() {
		var (
			item          queries.DealListItem
			discountValue pgtype.Numeric
			endsAt        pgtype.Timestamptz
		)
		if err := rows.Scan(
			&item.ID, &item.VendorID, &item.Title, &item.Category, &item.City,
			&item.DiscountKind, &discountValue, &item.Tier, &endsAt, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan deal list item", err)
		}
		item.DiscountValue, err = pgconv.Float64PtrFromNumeric(discountValue)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert deal discount value", err)
		}
		item.EndsAt = pgconv.TimePtrFromPgtype(endsAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate deal list", err)
	}
	return items, nil
}

func (s *DealReadStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*queries.DealListItem, error) {
	const query = `
		SELECT id, vendor_id, title, category, city, discount_kind, discount_value, tier, ends_at, created_at
		FROM deals
		WHERE vendor_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	return s.listDeals(ctx, query, vendorID, limit)
}
