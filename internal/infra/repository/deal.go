package repository

import (
	"context"

	"dealspot/internal/domain/deal"
	"dealspot/internal/infra"
	"dealspot/internal/infra/db"
	"dealspot/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const dealColumns = `
	id, vendor_id, title, description, fine_print, category, city, image_url,
	discount_kind, discount_value, tier, is_pass_locked, status, is_active,
	starts_at, ends_at, max_redemptions_total, max_redemptions_per_user,
	redemption_frequency, custom_redemption_days, cooldown_hours,
	deleted_at, created_at, updated_at`

type DealRepository struct {
	db db.DBTX
}

func NewDealRepository(dbtx db.DBTX) *DealRepository {
	return &DealRepository{db: dbtx}
}

const dealInsertQuery = `
	INSERT INTO deals (
		id, vendor_id, title, description, fine_print, category, city, image_url,
		discount_kind, discount_value, tier, is_pass_locked, status, is_active,
		starts_at, ends_at, max_redemptions_total, max_redemptions_per_user,
		redemption_frequency, custom_redemption_days, cooldown_hours,
		deleted_at, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18,
		$19, $20, $21,
		$22, $23, $24
	)
	RETURNING id`

// created_at is written once at insert time, so the UPDATE binds one fewer
// placeholder. Placeholders must stay contiguous: Postgres rejects a prepared
// statement whose parameter list skips a number.
const dealUpdateQuery = `
	UPDATE deals SET
		title = $3, description = $4, fine_print = $5, category = $6, city = $7,
		image_url = $8, discount_kind = $9, discount_value = $10, tier = $11,
		is_pass_locked = $12, status = $13, is_active = $14, starts_at = $15,
		ends_at = $16, max_redemptions_total = $17, max_redemptions_per_user = $18,
		redemption_frequency = $19, custom_redemption_days = $20, cooldown_hours = $21,
		deleted_at = $22, updated_at = $23
	WHERE id = $1 AND vendor_id = $2`

func (r *DealRepository) Create(ctx context.Context, d *deal.Deal) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, dealInsertQuery, dealInsertArgs(d)...).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create deal", err)
	}
	return id, nil
}

func (r *DealRepository) Update(ctx context.Context, d *deal.Deal) error {
	tag, err := r.db.Exec(ctx, dealUpdateQuery, dealUpdateArgs(d)...)
	if err != nil {
		return infra.WrapRepoErr("failed to update deal", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("deal not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *DealRepository) FindByID(ctx context.Context, id uuid.UUID) (*deal.Deal, error) {
	query := `SELECT` + dealColumns + ` FROM deals WHERE id = $1`
	return r.scanDeal(r.db.QueryRow(ctx, query, id))
}

// FindByIDForUpdate locks the deal row for the duration of the enclosing
// transaction. The redemption command relies on this to serialize quota
// checks against the same deal.
func (r *DealRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*deal.Deal, error) {
	query := `SELECT` + dealColumns + ` FROM deals WHERE id = $1 FOR UPDATE`
	return r.scanDeal(r.db.QueryRow(ctx, query, id))
}

func (r *DealRepository) scanDeal(row pgx.Row) (*deal.Deal, error) {
	var (
		s             deal.State
		imageURL      pgtype.Text
		discountValue pgtype.Numeric
		startsAt      pgtype.Timestamptz
		endsAt        pgtype.Timestamptz
		maxTotal      pgtype.Int4
		customDays    pgtype.Int4
		cooldownHours pgtype.Int4
		deletedAt     pgtype.Timestamptz
	)

	err := row.Scan(
		&s.ID, &s.VendorID, &s.Title, &s.Description, &s.FinePrint, &s.Category, &s.City, &imageURL,
		&s.DiscountKind, &discountValue, &s.Tier, &s.IsPassLocked, &s.Status, &s.IsActive,
		&startsAt, &endsAt, &maxTotal, &s.MaxPerUser,
		&s.Frequency, &customDays, &cooldownHours,
		&deletedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("deal not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find deal", err)
	}

	s.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	s.DiscountValue, err = pgconv.Float64PtrFromNumeric(discountValue)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert deal discount value", err)
	}
	s.StartsAt = pgconv.TimePtrFromPgtype(startsAt)
	s.EndsAt = pgconv.TimePtrFromPgtype(endsAt)
	s.MaxTotal = pgconv.Int32PtrFromPgtype(maxTotal)
	s.CustomDays = pgconv.Int32PtrFromPgtype(customDays)
	s.CooldownHours = pgconv.Int32PtrFromPgtype(cooldownHours)
	s.DeletedAt = pgconv.TimePtrFromPgtype(deletedAt)

	entity, err := deal.Reconstruct(s)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reconstruct deal", err)
	}
	return entity, nil
}

// dealArgs covers the column values shared by INSERT and UPDATE, in
// placeholder order through deleted_at.
func dealArgs(d *deal.Deal) []any {
	return []any{
		d.ID(),
		d.VendorID(),
		d.Title(),
		d.Description(),
		d.FinePrint(),
		d.Category(),
		d.City(),
		pgconv.StringPtrToPgtype(d.ImageURL()),
		d.Discount().Kind().String(),
		d.Discount().Value(),
		d.Tier().String(),
		d.IsPassLocked(),
		d.Status().String(),
		d.IsActive(),
		pgconv.TimePtrToPgtype(d.Window().StartsAt()),
		pgconv.TimePtrToPgtype(d.Window().EndsAt()),
		pgconv.Int32PtrToPgtype(d.Policy().MaxTotal()),
		d.Policy().MaxPerUser(),
		d.Policy().Frequency().String(),
		pgconv.Int32PtrToPgtype(d.Policy().CustomDays()),
		pgconv.Int32PtrToPgtype(d.Policy().CooldownHours()),
		pgconv.TimePtrToPgtype(d.DeletedAt()),
	}
}

func dealInsertArgs(d *deal.Deal) []any {
	return append(dealArgs(d), d.CreatedAt(), d.UpdatedAt())
}

func dealUpdateArgs(d *deal.Deal) []any {
	return append(dealArgs(d), d.UpdatedAt())
}
