package shared

import (
	"context"
	"time"

	"dealspot/internal/domain/user"

	"github.com/google/uuid"
)

// MembershipProvider answers tier gating. Implementations must fail closed:
// unknown users and lookup errors read as not a member.
type MembershipProvider interface {
	IsActiveMember(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) (uuid.UUID, error)
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
