package repository

import (
	"context"
	"time"

	"dealspot/internal/infra"
	"dealspot/internal/infra/db"
	"dealspot/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// MembershipRepository answers the single question the eligibility rules ask
// about memberships. Absence of a row means no membership, which fails closed
// for member-tier deals.
type MembershipRepository struct {
	db db.DBTX
}

func NewMembershipRepository(dbtx db.DBTX) *MembershipRepository {
	return &MembershipRepository{db: dbtx}
}

func (r *MembershipRepository) IsActiveMember(ctx context.Context, userID uuid.UUID, at time.Time) (bool, error) {
	const query = `
		SELECT active AND (expires_at IS NULL OR expires_at > $2)
		FROM memberships
		WHERE user_id = $1`

	var active bool
	err := r.db.QueryRow(ctx, query, userID, at).Scan(&active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check membership", err)
	}
	return active, nil
}
