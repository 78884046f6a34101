package queries

import (
	"context"
	"time"

	"dealspot/internal/infra"
	"dealspot/internal/pkg/clock"
	"dealspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrDealViewNotFound = errs.New("deal not found")

const defaultListLimit = 50

type DealQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*DealView, error)
	ListPublished(ctx context.Context, filter DealFilter, after *Cursor, limit int) ([]*DealListItem, *Cursor, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]*DealListItem, error)
}

type DealViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DealView, error)
	FindPublishedFirstPage(ctx context.Context, filter DealFilter, redeemableAt time.Time, limit int32) ([]*DealListItem, error)
	FindPublishedKeyset(ctx context.Context, filter DealFilter, redeemableAt time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*DealListItem, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*DealListItem, error)
}

type dealQueriesImpl struct {
	repo  DealViewRepo
	clock clock.Clock
}

func NewDealQueries(repo DealViewRepo, clock clock.Clock) DealQueries {
	return &dealQueriesImpl{repo: repo, clock: clock}
}

func (q *dealQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*DealView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDealViewNotFound
		}
		return nil, err
	}
	// Lazy expiry: a published deal whose window has closed reads as expired
	// even before a write has flipped the stored status.
	now := q.clock.Now()
	if view.Status == "published" && view.EndsAt != nil && now.After(*view.EndsAt) {
		view.Status = "expired"
		view.IsActive = false
	}
	return view, nil
}

func (q *dealQueriesImpl) ListPublished(ctx context.Context, filter DealFilter, cursor *Cursor, limit int) ([]*DealListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	now := q.clock.Now()

	var rows []*DealListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindPublishedFirstPage(ctx, filter, now, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindPublishedKeyset(ctx, filter, now, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *dealQueriesImpl) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit int) ([]*DealListItem, error) {
	return q.repo.FindByVendorID(ctx, vendorID, int32(ValidateLimit(limit)))
}
