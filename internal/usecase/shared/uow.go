package shared

import (
	"context"
	"time"

	"dealspot/internal/domain/deal"
	"dealspot/internal/domain/redemption"
	"dealspot/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Non-transactional reads for validation and previews
	CommandReads() CommandReads
}

// Tx exposes the repositories bound to one transaction. Eligibility reads
// and the subsequent ledger write must share this handle so they see the
// same snapshot.
type Tx interface {
	Deals() DealRepository
	Redemptions() RedemptionRepository
	Reads() CommandReads
}

type DealRepository interface {
	Create(ctx context.Context, d *deal.Deal) (uuid.UUID, error)
	Update(ctx context.Context, d *deal.Deal) error
	// FindByIDForUpdate takes a row lock on the deal so concurrent
	// redemptions of a capped deal serialize on it.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*deal.Deal, error)
}

// RedemptionRepository is the ledger. Counting queries exclude voided rows;
// they are the source of truth for quota state.
type RedemptionRepository interface {
	Append(ctx context.Context, r *redemption.Redemption) (uuid.UUID, error)
	Void(ctx context.Context, r *redemption.Redemption) error
	FindByID(ctx context.Context, id uuid.UUID) (*redemption.Redemption, error)
	CountActiveForDeal(ctx context.Context, dealID uuid.UUID) (int64, error)
	CountActiveForUserAndDeal(ctx context.Context, userID, dealID uuid.UUID) (int64, error)
	MostRecentActiveForUserAndDeal(ctx context.Context, userID, dealID uuid.UUID) (*time.Time, error)
}

type CommandReads interface {
	DealByID(ctx context.Context, id uuid.UUID) (*deal.Deal, error)
	QuotaState(ctx context.Context, userID, dealID uuid.UUID) (*redemption.QuotaState, error)
}
