package queries

import (
	"context"
	"time"

	"dealspot/internal/domain/user"
	"dealspot/internal/infra"
	"dealspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRedemptionViewNotFound = errs.New("redemption not found")
	ErrRedemptionForbidden    = errs.New("redemption belongs to another account")
)

type RedemptionQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*RedemptionView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, after *Cursor, limit int) ([]*RedemptionView, *Cursor, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, after *Cursor, limit int) ([]*RedemptionView, *Cursor, error)
}

type RedemptionViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RedemptionView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*RedemptionView, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastRedeemedAt time.Time, lastID uuid.UUID, limit int32) ([]*RedemptionView, error)
	FindByVendorFirstPage(ctx context.Context, vendorID uuid.UUID, limit int32) ([]*RedemptionView, error)
	FindByVendorKeyset(ctx context.Context, vendorID uuid.UUID, lastRedeemedAt time.Time, lastID uuid.UUID, limit int32) ([]*RedemptionView, error)
}

type redemptionQueriesImpl struct {
	repo RedemptionViewRepo
}

func NewRedemptionQueries(repo RedemptionViewRepo) RedemptionQueries {
	return &redemptionQueriesImpl{repo: repo}
}

// GetByID lets consumers see their own rows, vendors the rows of their own
// deals, and admins everything.
func (q *redemptionQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*RedemptionView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRedemptionViewNotFound
		}
		return nil, err
	}

	switch actorRole {
	case user.RoleAdmin:
		return view, nil
	case user.RoleVendor:
		if view.VendorID != actorID {
			return nil, ErrRedemptionForbidden
		}
		return view, nil
	default:
		if view.UserID != actorID {
			return nil, ErrRedemptionForbidden
		}
		return view, nil
	}
}

func (q *redemptionQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*RedemptionView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*RedemptionView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByUserFirstPage(ctx, userID, int32(limit+1))
	} else {
		lastRedeemedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByUserKeyset(ctx, userID, lastRedeemedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	return pageRedemptions(rows, limit)
}

func (q *redemptionQueriesImpl) ListByVendor(ctx context.Context, vendorID uuid.UUID, cursor *Cursor, limit int) ([]*RedemptionView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*RedemptionView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByVendorFirstPage(ctx, vendorID, int32(limit+1))
	} else {
		lastRedeemedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByVendorKeyset(ctx, vendorID, lastRedeemedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	return pageRedemptions(rows, limit)
}

func pageRedemptions(rows []*RedemptionView, limit int) ([]*RedemptionView, *Cursor, error) {
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.RedeemedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
