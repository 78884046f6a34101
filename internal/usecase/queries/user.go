package queries

import (
	"context"

	"dealspot/internal/infra"
	"dealspot/internal/pkg/errs"
	"dealspot/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrUserViewNotFound = errs.New("user not found")

type UserQueries interface {
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error)
}

type userQueriesImpl struct {
	users shared.UserRepository
}

func NewUserQueries(users shared.UserRepository) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*AuthorizedUserView, error) {
	u, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserViewNotFound
		}
		return nil, err
	}
	return &AuthorizedUserView{
		ID:       u.ID(),
		Email:    u.Email().String(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}, nil
}
